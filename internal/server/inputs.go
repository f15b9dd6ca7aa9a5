package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/windows-mcp/internal/output"
	"github.com/mj1618/windows-mcp/internal/platform"
)

// MaxWait bounds Wait-Tool.
const MaxWait = 300.0

// Loc is an [x, y] screen position.
type Loc []int

func (l Loc) validate(field string) error {
	if len(l) != 2 {
		return fmt.Errorf("%s must be [x, y], got %d values", field, len(l))
	}
	return nil
}

func (l Loc) xy() (int, int) { return l[0], l[1] }

type StateInput struct {
	UseVision bool   `json:"use_vision"`
	Annotate  bool   `json:"annotate"`
	Format    string `json:"format"`
}

func (in StateInput) Validate() error {
	_, err := output.ParseFormat(in.Format)
	return err
}

type AppsInput struct{}

func (AppsInput) Validate() error { return nil }

type NameInput struct {
	Name string `json:"name"`
}

func (in NameInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

type ClipboardInput struct {
	Mode string `json:"mode"`
	Text string `json:"text"`
}

func (in ClipboardInput) Validate() error {
	switch in.Mode {
	case "copy":
		if in.Text == "" {
			return errors.New("text is required for copy")
		}
	case "paste":
	default:
		return fmt.Errorf("mode must be copy or paste, got %q", in.Mode)
	}
	return nil
}

type WaitInput struct {
	Duration float64 `json:"duration"`
}

func (in WaitInput) Validate() error {
	if in.Duration < 0 || in.Duration > MaxWait {
		return fmt.Errorf("duration must be between 0 and %g seconds, got %g", MaxWait, in.Duration)
	}
	return nil
}

type PowershellInput struct {
	Command string `json:"command"`
}

func (in PowershellInput) Validate() error {
	if strings.TrimSpace(in.Command) == "" {
		return errors.New("command is required")
	}
	return nil
}

type ClickInput struct {
	Loc    Loc    `json:"loc"`
	Button string `json:"button"`
	Clicks int    `json:"clicks"`
}

func (in ClickInput) Validate() error {
	if err := in.Loc.validate("loc"); err != nil {
		return err
	}
	if _, err := platform.ParseMouseButton(in.Button); err != nil {
		return err
	}
	if in.Clicks < 0 || in.Clicks > 3 {
		return fmt.Errorf("clicks must be 1, 2 or 3, got %d", in.Clicks)
	}
	return nil
}

// count returns the click count, defaulting to one.
func (in ClickInput) count() int {
	return max(in.Clicks, 1)
}

type TypeInput struct {
	Loc   Loc    `json:"loc"`
	Text  string `json:"text"`
	Clear bool   `json:"clear"`
}

func (in TypeInput) Validate() error {
	if err := in.Loc.validate("loc"); err != nil {
		return err
	}
	if in.Text == "" {
		return errors.New("text is required")
	}
	return nil
}

type ScrollInput struct {
	Loc        Loc    `json:"loc"`
	Type       string `json:"type"`
	Direction  string `json:"direction"`
	WheelTimes int    `json:"wheel_times"`
}

func (in ScrollInput) Validate() error {
	if len(in.Loc) > 0 {
		if err := in.Loc.validate("loc"); err != nil {
			return err
		}
	}
	if _, _, err := platform.ParseScroll(in.Type, in.Direction); err != nil {
		return err
	}
	if in.WheelTimes < 0 || in.WheelTimes > 50 {
		return fmt.Errorf("wheel_times must be between 1 and 50, got %d", in.WheelTimes)
	}
	return nil
}

type DragInput struct {
	FromLoc Loc `json:"from_loc"`
	ToLoc   Loc `json:"to_loc"`
}

func (in DragInput) Validate() error {
	if err := in.FromLoc.validate("from_loc"); err != nil {
		return err
	}
	return in.ToLoc.validate("to_loc")
}

type MoveInput struct {
	ToLoc Loc `json:"to_loc"`
}

func (in MoveInput) Validate() error {
	return in.ToLoc.validate("to_loc")
}

type ShortcutInput struct {
	Shortcut []string `json:"shortcut"`
}

func (in ShortcutInput) Validate() error {
	if len(in.Shortcut) == 0 {
		return errors.New("shortcut needs at least one key")
	}
	for _, k := range in.Shortcut {
		if strings.TrimSpace(k) == "" {
			return errors.New("shortcut contains an empty key")
		}
	}
	return nil
}

func (in ShortcutInput) keys() []string {
	keys := make([]string, len(in.Shortcut))
	for i, k := range in.Shortcut {
		keys[i] = strings.ToLower(strings.TrimSpace(k))
	}
	return keys
}

type KeyInput struct {
	Key string `json:"key"`
}

func (in KeyInput) Validate() error {
	_, err := platform.ParseKeyCombo(in.Key)
	return err
}
