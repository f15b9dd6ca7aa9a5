// Package fixture replays a desktop described in a YAML file. It backs the
// --fixture flag and the tests of every package above the platform layer.
package fixture

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/platform"
	"gopkg.in/yaml.v3"
)

// Window is a node of the fixture tree. Top-level entries are windows;
// nested entries are their controls.
type Window struct {
	Handle   uint64     `yaml:"handle,omitempty"`
	Class    string     `yaml:"class,omitempty"`
	Type     string     `yaml:"type,omitempty"`
	Name     string     `yaml:"name,omitempty"`
	PID      int        `yaml:"pid,omitempty"`
	Status   string     `yaml:"status,omitempty"`
	Bounds   model.Rect `yaml:"bounds"`
	Hidden   bool       `yaml:"hidden,omitempty"`
	Disabled bool       `yaml:"disabled,omitempty"`
	Scroll   string     `yaml:"scroll,omitempty"`
	Children []Window   `yaml:"children,omitempty"`
}

// Desktop is the root of a fixture file.
type Desktop struct {
	VirtualScreen model.Rect        `yaml:"virtual_screen"`
	Foreground    uint64            `yaml:"foreground,omitempty"`
	Clipboard     string            `yaml:"clipboard,omitempty"`
	CaptureDelay  time.Duration     `yaml:"capture_delay,omitempty"` // added to every tree walk
	IgnoreCancel  bool              `yaml:"ignore_cancel,omitempty"` // walk keeps sleeping after ctx is done
	NoScreenshot  bool              `yaml:"no_screenshot,omitempty"`
	Shell         map[string]string `yaml:"shell,omitempty"` // command -> output; others exit 1
	Windows       []Window          `yaml:"windows"`
}

//go:embed sample.yaml
var sampleYAML []byte

// Sample returns the built-in demo desktop: a focused Notepad, a Calculator,
// a minimized Explorer window, plus shell windows that are always excluded.
func Sample() *Desktop {
	d, err := Parse(sampleYAML)
	if err != nil {
		panic(err)
	}
	return d
}

// Load reads and validates a fixture file. The name "sample" selects the
// built-in desktop.
func Load(path string) (*Desktop, error) {
	if path == "sample" {
		return Parse(sampleYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates fixture YAML.
func Parse(data []byte) (*Desktop, error) {
	var d Desktop
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if d.VirtualScreen.Empty() {
		return nil, fmt.Errorf("parse fixture: virtual_screen must have a positive size")
	}
	handles := make(map[uint64]bool)
	for i := range d.Windows {
		if err := validateWindow(d.Windows[i], true, handles); err != nil {
			return nil, fmt.Errorf("parse fixture: window %d: %w", i, err)
		}
	}
	return &d, nil
}

func validateWindow(w Window, topLevel bool, handles map[uint64]bool) error {
	if topLevel && w.Handle == 0 {
		return fmt.Errorf("top-level window %q needs a handle", w.Name)
	}
	if w.Handle != 0 {
		if handles[w.Handle] {
			return fmt.Errorf("duplicate handle %d", w.Handle)
		}
		handles[w.Handle] = true
	}
	if w.Type != "" {
		if _, err := model.ParseControlType(w.Type); err != nil {
			return err
		}
	}
	switch model.ScrollAxes(w.Scroll) {
	case model.ScrollNone, model.ScrollVertical, model.ScrollHorizontal, model.ScrollBoth:
	default:
		return fmt.Errorf("unknown scroll axes %q", w.Scroll)
	}
	switch model.AppStatus(w.Status) {
	case "", model.AppNormal, model.AppMinimized, model.AppMaximized:
	default:
		return fmt.Errorf("unknown status %q", w.Status)
	}
	if w.Bounds.Width < 0 || w.Bounds.Height < 0 {
		return fmt.Errorf("%q has negative size", w.Name)
	}
	for _, c := range w.Children {
		if err := validateWindow(c, false, handles); err != nil {
			return err
		}
	}
	return nil
}

// node converts a fixture window into a platform node. pid and enabled are
// inherited from the parent.
func (w Window) node(pid int, parentEnabled bool) platform.Node {
	if w.PID != 0 {
		pid = w.PID
	}
	n := platform.Node{
		Handle:     w.Handle,
		ClassName:  w.Class,
		Name:       w.Name,
		Bounds:     w.Bounds,
		Visible:    !w.Hidden,
		Enabled:    parentEnabled && !w.Disabled,
		ScrollAxes: model.ScrollAxes(w.Scroll),
		ProcessID:  pid,
		Status:     model.AppStatus(w.Status),
	}
	if w.Type != "" {
		n.ControlType, _ = model.ParseControlType(w.Type)
	}
	if n.Status == "" {
		n.Status = model.AppNormal
	}
	for _, c := range w.Children {
		n.Children = append(n.Children, c.node(pid, n.Enabled))
	}
	return n
}

// Provider returns a platform provider that replays this desktop. Every
// backend is set unless the fixture disables screenshots; the returned
// Backend also records input for inspection.
func (d *Desktop) Provider() (*platform.Provider, *Backend) {
	b := newBackend(d)
	p := &platform.Provider{
		Reader:           b,
		WindowManager:    b,
		Screenshotter:    b,
		ClipboardManager: b,
		Launcher:         b,
		Shell:            b,
		Inputter:         b,
	}
	if d.NoScreenshot {
		p.Screenshotter = nil
	}
	return p, b
}
