package platform

import (
	"context"
	"image"

	"github.com/mj1618/windows-mcp/internal/model"
)

// Node is one element of the raw window tree as reported by the OS, before
// exclusion and partitioning.
type Node struct {
	Handle      uint64
	ClassName   string
	ControlType model.ControlType // empty means derive from ClassName
	Name        string
	Bounds      model.Rect // physical pixels, virtual-screen origin
	Visible     bool
	Enabled     bool
	ScrollAxes  model.ScrollAxes
	ProcessID   int
	Status      model.AppStatus // top-level windows only
	Children    []Node
}

// Type returns the node's control type, deriving it from the class name
// when the platform did not report one.
func (n Node) Type() model.ControlType {
	if n.ControlType != "" {
		return n.ControlType
	}
	return model.ControlTypeForClass(n.ClassName)
}

// Reader reads the element tree of the whole desktop.
type Reader interface {
	// Windows returns every top-level window in z-order, topmost first,
	// each with its full descendant tree.
	Windows(ctx context.Context) ([]Node, error)

	// VirtualScreen returns the rectangle spanning all monitors.
	VirtualScreen(ctx context.Context) (model.Rect, error)
}

// WindowManager lists and activates top-level windows.
type WindowManager interface {
	// TopLevelWindows returns top-level windows in z-order without children.
	TopLevelWindows(ctx context.Context) ([]Node, error)

	// ForegroundWindow returns the handle of the window with input focus,
	// or 0 when there is none.
	ForegroundWindow(ctx context.Context) (uint64, error)

	// Activate restores the window if minimized and brings it to the foreground.
	Activate(ctx context.Context, handle uint64) error
}

// Screenshotter captures screenshots.
type Screenshotter interface {
	// CaptureScreen captures the whole virtual screen at physical resolution.
	CaptureScreen(ctx context.Context) (image.Image, error)
}

// ClipboardManager reads and writes the system clipboard as text.
type ClipboardManager interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// Launcher starts applications by name.
type Launcher interface {
	Launch(ctx context.Context, name string) error
}

// Shell runs commands in the system shell.
type Shell interface {
	// Run executes command and returns its combined output and exit status.
	// A non-zero status is not an error; err reports failure to run at all.
	Run(ctx context.Context, command string) (output string, status int, err error)
}

// Inputter simulates mouse and keyboard input.
type Inputter interface {
	Click(x, y int, button MouseButton, count int) error
	MoveMouse(x, y int) error
	Scroll(x, y int, axis ScrollAxis, direction ScrollDirection, wheelTimes int) error
	Drag(fromX, fromY, toX, toY int) error
	TypeText(x, y int, text string, clear bool) error
	KeyCombo(keys []string) error
}
