// Package output renders desktop states for the CLI and the MCP tools.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Format represents the output format.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatText

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// Stdout is where Print writes.
var Stdout io.Writer = os.Stdout

// ParseFormat validates a format name. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (want text, yaml or json)", s)
	}
}

// Texter is implemented by values with their own text rendering.
type Texter interface {
	Text() string
}

// Print serializes v to Stdout in the current output format.
func Print(v any) error {
	return Fprint(Stdout, OutputFormat, PrettyOutput, v)
}

// Fprint serializes v to w. Text output uses v's Text method when it has
// one and falls back to YAML otherwise.
func Fprint(w io.Writer, f Format, pretty bool, v any) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, v, pretty)
	case FormatYAML:
		return WriteYAML(w, v)
	case FormatText, "":
		if t, ok := v.(Texter); ok {
			_, err := io.WriteString(w, t.Text())
			return err
		}
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", f)
	}
}
