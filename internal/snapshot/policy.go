package snapshot

import (
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/platform"
)

// HardExcluded names shell surfaces that never appear in a snapshot. Entries
// match a top-level window's class name or title exactly. Configuration can
// add to this set but not remove from it.
var HardExcluded = []string{
	"Progman",
	"Shell_TrayWnd",
	"Shell_SecondaryTrayWnd",
	"Microsoft.UI.Content.PopupWindowSiteBridge",
	"Windows.UI.Core.CoreWindow",
	"Program Manager",
	"Taskbar",
}

// DefaultAvoided names windows that are skipped unless configured otherwise,
// such as the agent's own UI.
var DefaultAvoided = []string{
	"AgentUI",
	"Recording toolbar",
}

// DefaultTimeout bounds a single capture.
const DefaultTimeout = 8 * time.Second

// Partition is the role table that decides which sequence an element joins.
type Partition struct {
	Interactive []model.ControlType
	Informative []model.ControlType
}

// DefaultPartition returns the built-in role table.
func DefaultPartition() Partition {
	return Partition{
		Interactive: []model.ControlType{
			model.ControlButton,
			model.ControlCheckBox,
			model.ControlComboBox,
			model.ControlDataItem,
			model.ControlDocument,
			model.ControlEdit,
			model.ControlHeaderItem,
			model.ControlHyperlink,
			model.ControlListItem,
			model.ControlMenuItem,
			model.ControlRadioButton,
			model.ControlSlider,
			model.ControlSpinner,
			model.ControlSplitButton,
			model.ControlTabItem,
			model.ControlTreeItem,
		},
		Informative: []model.ControlType{
			model.ControlText,
			model.ControlImage,
			model.ControlProgressBar,
			model.ControlStatusBar,
			model.ControlToolTip,
			model.ControlHeader,
			model.ControlTitleBar,
		},
	}
}

// Validate rejects a table that lists a control type in both sets.
func (p Partition) Validate() error {
	interactive := make(map[model.ControlType]bool, len(p.Interactive))
	for _, ct := range p.Interactive {
		interactive[ct] = true
	}
	for _, ct := range p.Informative {
		if interactive[ct] {
			return fmt.Errorf("control type %s is listed as both interactive and informative", ct)
		}
	}
	return nil
}

// Policy controls one capture.
type Policy struct {
	Excluded  []string // merged with HardExcluded
	Avoided   []string
	Partition Partition
	Timeout   time.Duration

	interactive map[model.ControlType]bool
	informative map[model.ControlType]bool
	skip        map[string]bool
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		Avoided:   append([]string(nil), DefaultAvoided...),
		Partition: DefaultPartition(),
		Timeout:   DefaultTimeout,
	}
}

// compile builds the lookup sets. It is called once per capture so a Policy
// stays a plain value.
func (p Policy) compile() (Policy, error) {
	if err := p.Partition.Validate(); err != nil {
		return p, err
	}
	if p.Timeout <= 0 {
		p.Timeout = DefaultTimeout
	}
	p.interactive = make(map[model.ControlType]bool, len(p.Partition.Interactive))
	for _, ct := range p.Partition.Interactive {
		p.interactive[ct] = true
	}
	p.informative = make(map[model.ControlType]bool, len(p.Partition.Informative))
	for _, ct := range p.Partition.Informative {
		p.informative[ct] = true
	}
	p.skip = p.skipSet()
	return p, nil
}

func (p Policy) skipSet() map[string]bool {
	skip := make(map[string]bool)
	for _, set := range [][]string{HardExcluded, p.Excluded, p.Avoided} {
		for _, name := range set {
			if name = strings.TrimSpace(name); name != "" {
				skip[name] = true
			}
		}
	}
	return skip
}

// Skips reports whether a top-level window is excluded or avoided.
func (p Policy) Skips(n platform.Node) bool {
	skip := p.skip
	if skip == nil {
		skip = p.skipSet()
	}
	return skip[n.ClassName] || skip[n.Name]
}
