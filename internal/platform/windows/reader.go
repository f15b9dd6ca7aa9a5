//go:build windows

package windows

import (
	"context"
	"strings"

	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/platform"
	winsys "golang.org/x/sys/windows"
)

// Walk limits guard against window trees that change or loop mid-walk.
const (
	maxDepth    = 32
	maxChildren = 4096
)

// Reader walks the Win32 window tree with GetWindow, top-level windows in
// z-order and children in sibling order.
type Reader struct{}

// NewReader creates a new Windows tree reader.
func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) Windows(ctx context.Context) ([]platform.Node, error) {
	var nodes []platform.Node
	desktop, _, _ := procGetDesktopWindow.Call()
	for h := getWindow(desktop, gwChild); h != 0; h = getWindow(h, gwHwndNext) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := describe(h, true)
		if n.Visible {
			n.Children = children(ctx, h, 1)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (r *Reader) VirtualScreen(_ context.Context) (model.Rect, error) {
	return model.Rect{
		X:      systemMetric(smXVirtualScreen),
		Y:      systemMetric(smYVirtualScreen),
		Width:  systemMetric(smCXVirtualScreen),
		Height: systemMetric(smCYVirtualScreen),
	}, nil
}

func children(ctx context.Context, parent uintptr, depth int) []platform.Node {
	if depth > maxDepth || ctx.Err() != nil {
		return nil
	}
	var nodes []platform.Node
	for h := getWindow(parent, gwChild); h != 0 && len(nodes) < maxChildren; h = getWindow(h, gwHwndNext) {
		n := describe(h, false)
		if n.Visible {
			n.Children = children(ctx, h, depth+1)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// describe reads one window without its children.
func describe(h uintptr, topLevel bool) platform.Node {
	class := className(h)
	style := windowLong(h, gwlStyle)
	n := platform.Node{
		Handle:     uint64(h),
		ClassName:  class,
		Name:       strings.TrimSpace(windowText(h)),
		Visible:    boolCall(procIsWindowVisible, h),
		Enabled:    boolCall(procIsWindowEnabled, h),
		ScrollAxes: model.CombineScrollAxes(style&wsVScroll != 0, style&wsHScroll != 0),
		ProcessID:  processID(h),
	}
	if r, ok := windowRect(h); ok {
		n.Bounds = rectFrom(r)
	}
	if strings.EqualFold(class, "Button") {
		n.ControlType = buttonType(style)
	}
	if topLevel {
		n.ControlType = model.ControlWindow
		n.Status = windowStatus(h)
	}
	return n
}

// buttonType refines the Button class by its BS_* style.
func buttonType(style uint32) model.ControlType {
	switch style & bsTypeMask {
	case 0x2, 0x3, 0x5, 0x6: // BS_CHECKBOX, BS_AUTOCHECKBOX, BS_3STATE, BS_AUTO3STATE
		return model.ControlCheckBox
	case 0x4, 0x9: // BS_RADIOBUTTON, BS_AUTORADIOBUTTON
		return model.ControlRadioButton
	case 0x7: // BS_GROUPBOX
		return model.ControlGroup
	default:
		return model.ControlButton
	}
}

func windowStatus(h uintptr) model.AppStatus {
	switch {
	case boolCall(procIsIconic, h):
		return model.AppMinimized
	case boolCall(procIsZoomed, h):
		return model.AppMaximized
	default:
		return model.AppNormal
	}
}

func rectFrom(r winsys.Rect) model.Rect {
	return model.Rect{
		X:      int(r.Left),
		Y:      int(r.Top),
		Width:  max(0, int(r.Right-r.Left)),
		Height: max(0, int(r.Bottom-r.Top)),
	}
}
