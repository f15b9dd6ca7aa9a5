package output

import (
	"strings"
	"testing"
	"time"

	"github.com/mj1618/windows-mcp/internal/model"
)

func sampleState() *model.DesktopState {
	notepad := model.AppRecord{
		Title:     "Untitled - Notepad",
		ProcessID: 4242,
		Handle:    100,
		Bounds:    model.Rect{X: 100, Y: 100, Width: 800, Height: 600},
		Status:    model.AppNormal,
		IsFocused: true,
	}
	return &model.DesktopState{
		ID:         "5f0c",
		CapturedAt: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		Apps: []model.AppRecord{
			notepad,
			{Title: "Documents", ProcessID: 3100, Handle: 600, Status: model.AppMinimized},
		},
		ActiveApp: &notepad,
		Snapshot: model.TreeSnapshot{
			Interactive: []model.ElementRecord{{
				ID: 1, Name: "Save", ControlType: model.ControlButton, App: "Untitled - Notepad",
				Bounds: model.Rect{X: 120, Y: 120, Width: 80, Height: 24}, Center: model.Point{X: 160, Y: 132},
				Interactable: true,
			}},
			Informative: []model.ElementRecord{{
				ID: 2, Name: `Say "hi"`, ControlType: model.ControlText, App: "Untitled - Notepad",
				Bounds: model.Rect{X: 108, Y: 668, Width: 784, Height: 24}, Center: model.Point{X: 500, Y: 680},
				Informative: true,
			}},
			Scrollable: []model.ElementRecord{{
				ID: 3, ControlType: model.ControlPane, App: "Untitled - Notepad",
				Bounds: model.Rect{X: 108, Y: 160, Width: 784, Height: 500}, Center: model.Point{X: 500, Y: 410},
				Scrollable: true, ScrollAxes: model.ScrollVertical,
			}},
			VirtualScreen:   model.Rect{Width: 1920, Height: 1080},
			CoordinateSpace: model.CoordinatePhysical,
		},
	}
}

func TestFormatState(t *testing.T) {
	want := `Focused App:
"Untitled - Notepad" pid=4242 status=normal bounds (100,100,800,600) focused

Opened Apps:
- "Untitled - Notepad" pid=4242 status=normal bounds (100,100,800,600) focused
- "Documents" pid=3100 status=minimized bounds (0,0,0,0)

List of Interactive Elements:
[1] Button "Save" app="Untitled - Notepad" at (160,132) bounds (120,120,80,24)

List of Informative Elements:
[2] Text "Say \"hi\"" app="Untitled - Notepad" at (500,680) bounds (108,668,784,24)

List of Scrollable Elements:
[3] Pane "" app="Untitled - Notepad" at (500,410) bounds (108,160,784,500) scroll=vertical
`
	got := FormatState(sampleState())
	if got != want {
		t.Errorf("FormatState mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatState_Placeholders(t *testing.T) {
	got := FormatState(&model.DesktopState{})
	for _, want := range []string{
		"Focused App:\nNone\n",
		"Opened Apps:\nNo opened apps found.\n",
		"List of Interactive Elements:\nNo interactive elements found.\n",
		"List of Informative Elements:\nNo informative elements found.\n",
		"List of Scrollable Elements:\nNo scrollable elements found.\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if FormatState(nil) != got {
		t.Error("nil state should format like an empty state")
	}
}

func TestFormatState_SectionOrder(t *testing.T) {
	got := FormatState(sampleState())
	last := -1
	for _, header := range []string{sectionFocused, sectionApps, sectionInter, sectionInfo, sectionScroll} {
		i := strings.Index(got, header)
		if i <= last {
			t.Fatalf("section %q out of order", header)
		}
		last = i
	}
}

func TestFormatState_Idempotent(t *testing.T) {
	state := sampleState()
	if FormatState(state) != FormatState(state) {
		t.Error("formatting the same state twice gave different text")
	}
}

func TestFormatElement_NameWithNewline(t *testing.T) {
	line := FormatElement(model.ElementRecord{ID: 9, Name: "two\nlines", ControlType: model.ControlText})
	if strings.Contains(line, "\n") {
		t.Errorf("element line contains a raw newline: %q", line)
	}
}

func TestNewStateDocument_EmptySlices(t *testing.T) {
	var b strings.Builder
	if err := WriteJSON(&b, NewStateDocument(&model.DesktopState{}), false); err != nil {
		t.Fatal(err)
	}
	got := b.String()
	for _, key := range []string{`"apps":[]`, `"interactive":[]`, `"informative":[]`, `"scrollable":[]`, `"focused_app":null`} {
		if !strings.Contains(got, key) {
			t.Errorf("json missing %s: %s", key, got)
		}
	}
	if strings.Contains(got, "screenshot") {
		t.Errorf("screenshot should be omitted without vision: %s", got)
	}
}
