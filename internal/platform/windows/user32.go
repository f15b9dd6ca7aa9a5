//go:build windows

package windows

import (
	"fmt"
	"unsafe"

	winsys "golang.org/x/sys/windows"
)

var (
	user32   = winsys.NewLazySystemDLL("user32.dll")
	gdi32    = winsys.NewLazySystemDLL("gdi32.dll")
	kernel32 = winsys.NewLazySystemDLL("kernel32.dll")

	procGetDesktopWindow              = user32.NewProc("GetDesktopWindow")
	procGetWindow                     = user32.NewProc("GetWindow")
	procGetClassNameW                 = user32.NewProc("GetClassNameW")
	procGetWindowTextW                = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW          = user32.NewProc("GetWindowTextLengthW")
	procGetWindowRect                 = user32.NewProc("GetWindowRect")
	procGetWindowLongW                = user32.NewProc("GetWindowLongW")
	procGetWindowThreadProcessId      = user32.NewProc("GetWindowThreadProcessId")
	procIsWindowVisible               = user32.NewProc("IsWindowVisible")
	procIsWindowEnabled               = user32.NewProc("IsWindowEnabled")
	procIsIconic                      = user32.NewProc("IsIconic")
	procIsZoomed                      = user32.NewProc("IsZoomed")
	procGetForegroundWindow           = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow           = user32.NewProc("SetForegroundWindow")
	procShowWindow                    = user32.NewProc("ShowWindow")
	procGetSystemMetrics              = user32.NewProc("GetSystemMetrics")
	procSetProcessDpiAwarenessContext = user32.NewProc("SetProcessDpiAwarenessContext")
	procGetDC                         = user32.NewProc("GetDC")
	procReleaseDC                     = user32.NewProc("ReleaseDC")
	procOpenClipboard                 = user32.NewProc("OpenClipboard")
	procCloseClipboard                = user32.NewProc("CloseClipboard")
	procEmptyClipboard                = user32.NewProc("EmptyClipboard")
	procGetClipboardData              = user32.NewProc("GetClipboardData")
	procSetClipboardData              = user32.NewProc("SetClipboardData")

	procCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = gdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject           = gdi32.NewProc("SelectObject")
	procBitBlt                 = gdi32.NewProc("BitBlt")
	procGetDIBits              = gdi32.NewProc("GetDIBits")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
	procDeleteDC               = gdi32.NewProc("DeleteDC")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
)

const (
	gwHwndNext = 2
	gwChild    = 5

	gwlStyle   = -16
	gwlExStyle = -20

	wsHScroll      = 0x00100000
	wsVScroll      = 0x00200000
	wsExToolWindow = 0x00000080

	bsTypeMask = 0x0F

	swRestore = 9

	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCXVirtualScreen = 78
	smCYVirtualScreen = 79
)

// dpiAwarenessPerMonitorV2 is DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 (-4).
var dpiAwarenessPerMonitorV2 = ^uintptr(3)

// enableDPIAwareness makes every coordinate the process sees physical
// pixels. Windows versions without the call keep their default.
func enableDPIAwareness() error {
	if procSetProcessDpiAwarenessContext.Find() != nil {
		return nil
	}
	r, _, err := procSetProcessDpiAwarenessContext.Call(dpiAwarenessPerMonitorV2)
	// ERROR_ACCESS_DENIED means awareness was already set, e.g. by a manifest.
	if r == 0 && err != winsys.ERROR_ACCESS_DENIED {
		return fmt.Errorf("SetProcessDpiAwarenessContext: %w", err)
	}
	return nil
}

func getWindow(hwnd, cmd uintptr) uintptr {
	r, _, _ := procGetWindow.Call(hwnd, cmd)
	return r
}

func boolCall(p *winsys.LazyProc, hwnd uintptr) bool {
	r, _, _ := p.Call(hwnd)
	return r != 0
}

func className(hwnd uintptr) string {
	buf := make([]uint16, 256)
	n, _, _ := procGetClassNameW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return winsys.UTF16ToString(buf[:n])
}

func windowText(hwnd uintptr) string {
	size, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if size == 0 {
		return ""
	}
	buf := make([]uint16, size+1)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return winsys.UTF16ToString(buf[:n])
}

func windowRect(hwnd uintptr) (winsys.Rect, bool) {
	var r winsys.Rect
	ok, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	return r, ok != 0
}

func windowLong(hwnd uintptr, index int32) uint32 {
	r, _, _ := procGetWindowLongW.Call(hwnd, uintptr(index))
	return uint32(r)
}

func processID(hwnd uintptr) int {
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	return int(pid)
}

func systemMetric(index uintptr) int {
	r, _, _ := procGetSystemMetrics.Call(index)
	return int(int32(r))
}
