package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mj1618/windows-mcp/internal/model"
)

// DiffDocument is one observed change between two captures.
type DiffDocument struct {
	StateID    string             `yaml:"state_id"              json:"state_id"`
	FocusedApp *model.AppRecord   `yaml:"focused_app,omitempty" json:"focused_app,omitempty"`
	Diff       model.SnapshotDiff `yaml:"diff"                  json:"diff"`
}

// Text implements Texter.
func (d DiffDocument) Text() string {
	return FormatDiff(d.Diff)
}

// FormatDiff renders a snapshot diff, one line per change, with a summary
// line at the end.
func FormatDiff(d model.SnapshotDiff) string {
	var b strings.Builder
	for _, el := range d.Added {
		fmt.Fprintf(&b, "+ %s\n", FormatElement(el))
	}
	for _, el := range d.Removed {
		fmt.Fprintf(&b, "- %s\n", FormatElement(el))
	}
	for _, c := range d.Changed {
		fields := make([]string, 0, len(c.Changes))
		for name := range c.Changes {
			fields = append(fields, name)
		}
		sort.Strings(fields)
		parts := make([]string, len(fields))
		for i, name := range fields {
			parts[i] = fmt.Sprintf("%s %s -> %s", name, c.Changes[name][0], c.Changes[name][1])
		}
		fmt.Fprintf(&b, "~ [%d] %s %q %s\n", c.ID, c.ControlType, c.Name, strings.Join(parts, "; "))
	}
	fmt.Fprintf(&b, "%d added, %d removed, %d changed, %d unchanged\n",
		len(d.Added), len(d.Removed), len(d.Changed), d.UnchangedCount)
	return b.String()
}
