//go:build windows

package windows

import (
	"context"
	"fmt"

	"github.com/mj1618/windows-mcp/internal/platform"
)

// WindowManager lists and activates top-level windows.
type WindowManager struct{}

// NewWindowManager creates a new Windows window manager.
func NewWindowManager() *WindowManager {
	return &WindowManager{}
}

// TopLevelWindows skips tool windows, which never show in the taskbar.
func (m *WindowManager) TopLevelWindows(ctx context.Context) ([]platform.Node, error) {
	var nodes []platform.Node
	desktop, _, _ := procGetDesktopWindow.Call()
	for h := getWindow(desktop, gwChild); h != 0; h = getWindow(h, gwHwndNext) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if windowLong(h, gwlExStyle)&wsExToolWindow != 0 {
			continue
		}
		nodes = append(nodes, describe(h, true))
	}
	return nodes, nil
}

func (m *WindowManager) ForegroundWindow(_ context.Context) (uint64, error) {
	h, _, _ := procGetForegroundWindow.Call()
	return uint64(h), nil
}

func (m *WindowManager) Activate(_ context.Context, handle uint64) error {
	h := uintptr(handle)
	if boolCall(procIsIconic, h) {
		procShowWindow.Call(h, swRestore)
	}
	if r, _, err := procSetForegroundWindow.Call(h); r == 0 {
		return fmt.Errorf("SetForegroundWindow: %w", err)
	}
	return nil
}
