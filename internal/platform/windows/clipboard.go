//go:build windows

package windows

import (
	"context"
	"fmt"
	"runtime"
	"time"
	"unsafe"

	winsys "golang.org/x/sys/windows"
)

const (
	cfUnicodeText = 13
	gmemMoveable  = 0x0002
)

// Clipboard implements platform.ClipboardManager with the Win32 clipboard.
type Clipboard struct{}

// NewClipboard returns a new Clipboard instance.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// open retries briefly because another process may hold the clipboard.
// The caller must stay on the locked OS thread until it closes.
func (c *Clipboard) open(ctx context.Context) error {
	var err error
	for attempt := 0; attempt < 10; attempt++ {
		var r uintptr
		if r, _, err = procOpenClipboard.Call(0); r != 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(20 * time.Millisecond):
		}
	}
	return fmt.Errorf("OpenClipboard: %w", err)
}

// ReadText returns the clipboard text, or "" when it holds no text.
func (c *Clipboard) ReadText(ctx context.Context) (string, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if err := c.open(ctx); err != nil {
		return "", err
	}
	defer procCloseClipboard.Call()

	h, _, _ := procGetClipboardData.Call(cfUnicodeText)
	if h == 0 {
		return "", nil
	}
	p, _, err := procGlobalLock.Call(h)
	if p == 0 {
		return "", fmt.Errorf("GlobalLock: %w", err)
	}
	defer procGlobalUnlock.Call(h)
	return winsys.UTF16PtrToString((*uint16)(unsafe.Pointer(p))), nil
}

// WriteText replaces the clipboard contents with text.
func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	data, err := winsys.UTF16FromString(text)
	if err != nil {
		return fmt.Errorf("encode clipboard text: %w", err)
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if err := c.open(ctx); err != nil {
		return err
	}
	defer procCloseClipboard.Call()

	if r, _, err := procEmptyClipboard.Call(); r == 0 {
		return fmt.Errorf("EmptyClipboard: %w", err)
	}
	h, _, err := procGlobalAlloc.Call(gmemMoveable, uintptr(len(data)*2))
	if h == 0 {
		return fmt.Errorf("GlobalAlloc: %w", err)
	}
	p, _, err := procGlobalLock.Call(h)
	if p == 0 {
		procGlobalFree.Call(h)
		return fmt.Errorf("GlobalLock: %w", err)
	}
	copy(unsafe.Slice((*uint16)(unsafe.Pointer(p)), len(data)), data)
	procGlobalUnlock.Call(h)

	// On success the system owns the memory.
	if r, _, err := procSetClipboardData.Call(cfUnicodeText, h); r == 0 {
		procGlobalFree.Call(h)
		return fmt.Errorf("SetClipboardData: %w", err)
	}
	return nil
}
