package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/windows-mcp/internal/model"
)

// Placeholders rendered for empty sections.
const (
	NoFocusedApp   = "None"
	NoApps         = "No opened apps found."
	NoInteractive  = "No interactive elements found."
	NoInformative  = "No informative elements found."
	NoScrollable   = "No scrollable elements found."
	sectionFocused = "Focused App:"
	sectionApps    = "Opened Apps:"
	sectionInter   = "List of Interactive Elements:"
	sectionInfo    = "List of Informative Elements:"
	sectionScroll  = "List of Scrollable Elements:"
)

// FormatState renders a desktop state as text. Sections always appear in
// the same order and empty ones carry a placeholder, so the same state
// always formats to the same bytes. The screenshot is never part of the
// text. A nil state formats as an empty desktop.
func FormatState(state *model.DesktopState) string {
	if state == nil {
		state = &model.DesktopState{}
	}
	var b strings.Builder

	b.WriteString(sectionFocused + "\n")
	if state.ActiveApp == nil {
		b.WriteString(NoFocusedApp + "\n")
	} else {
		b.WriteString(FormatApp(*state.ActiveApp) + "\n")
	}

	b.WriteString("\n" + sectionApps + "\n")
	if len(state.Apps) == 0 {
		b.WriteString(NoApps + "\n")
	}
	for _, app := range state.Apps {
		b.WriteString("- " + FormatApp(app) + "\n")
	}

	sections := []struct {
		title       string
		placeholder string
		records     []model.ElementRecord
	}{
		{sectionInter, NoInteractive, state.Snapshot.Interactive},
		{sectionInfo, NoInformative, state.Snapshot.Informative},
		{sectionScroll, NoScrollable, state.Snapshot.Scrollable},
	}
	for _, s := range sections {
		b.WriteString("\n" + s.title + "\n")
		if len(s.records) == 0 {
			b.WriteString(s.placeholder + "\n")
		}
		for _, el := range s.records {
			b.WriteString(FormatElement(el) + "\n")
		}
	}
	return b.String()
}

// FormatApp renders one app on a single line.
func FormatApp(app model.AppRecord) string {
	line := fmt.Sprintf("%q pid=%d status=%s bounds %s", app.DisplayName(), app.ProcessID, app.Status, app.Bounds)
	if app.IsFocused {
		line += " focused"
	}
	return line
}

// FormatElement renders one record with everything needed to act on it:
// its ID, type, name, owning app, click point, and bounds.
func FormatElement(el model.ElementRecord) string {
	line := fmt.Sprintf("[%d] %s %q app=%q at (%d,%d) bounds %s",
		el.ID, el.ControlType, el.Name, el.App, el.Center.X, el.Center.Y, el.Bounds)
	if el.Scrollable && el.ScrollAxes != model.ScrollNone {
		line += " scroll=" + string(el.ScrollAxes)
	}
	return line
}

// StateDocument is the structured (yaml/json) form of a desktop state.
// Slices are never nil so empty sections encode as [] rather than null.
type StateDocument struct {
	ID              string                `yaml:"id"                   json:"id"`
	CapturedAt      time.Time             `yaml:"captured_at"          json:"captured_at"`
	FocusedApp      *model.AppRecord      `yaml:"focused_app"          json:"focused_app"`
	Apps            []model.AppRecord     `yaml:"apps"                 json:"apps"`
	Interactive     []model.ElementRecord `yaml:"interactive"          json:"interactive"`
	Informative     []model.ElementRecord `yaml:"informative"          json:"informative"`
	Scrollable      []model.ElementRecord `yaml:"scrollable"           json:"scrollable"`
	VirtualScreen   model.Rect            `yaml:"virtual_screen"       json:"virtual_screen"`
	CoordinateSpace string                `yaml:"coordinate_space"     json:"coordinate_space"`
	Screenshot      *model.Screenshot     `yaml:"screenshot,omitempty" json:"screenshot,omitempty"`

	state *model.DesktopState
}

// NewStateDocument wraps a state for printing.
func NewStateDocument(state *model.DesktopState) StateDocument {
	if state == nil {
		state = &model.DesktopState{}
	}
	return StateDocument{
		ID:              state.ID,
		CapturedAt:      state.CapturedAt,
		FocusedApp:      state.ActiveApp,
		Apps:            nonNil(state.Apps),
		Interactive:     nonNil(state.Snapshot.Interactive),
		Informative:     nonNil(state.Snapshot.Informative),
		Scrollable:      nonNil(state.Snapshot.Scrollable),
		VirtualScreen:   state.Snapshot.VirtualScreen,
		CoordinateSpace: state.Snapshot.CoordinateSpace,
		Screenshot:      state.Screenshot,
		state:           state,
	}
}

// Text implements Texter.
func (d StateDocument) Text() string {
	return FormatState(d.state)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
