package fixture

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"
	"time"

	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/platform"
)

// Backend is the live state of a replayed desktop. It implements every
// platform interface and is safe for concurrent use.
type Backend struct {
	mu         sync.Mutex
	desktop    Desktop
	foreground uint64
	clipboard  string
	nextHandle uint64
	launched   []string
	events     []string
}

func newBackend(d *Desktop) *Backend {
	b := &Backend{
		desktop:    *d,
		foreground: d.Foreground,
		clipboard:  d.Clipboard,
	}
	b.desktop.Windows = append([]Window(nil), d.Windows...)
	b.nextHandle = maxHandle(d.Windows)
	return b
}

// maxHandle is the largest handle anywhere in the tree, children included.
func maxHandle(windows []Window) uint64 {
	var m uint64
	for _, w := range windows {
		m = max(m, w.Handle, maxHandle(w.Children))
	}
	return m
}

func (b *Backend) wait(ctx context.Context) error {
	delay := b.desktop.CaptureDelay
	if delay <= 0 {
		return nil
	}
	if b.desktop.IgnoreCancel {
		time.Sleep(delay)
		return nil
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Backend) Windows(ctx context.Context) ([]platform.Node, error) {
	if err := b.wait(ctx); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	nodes := make([]platform.Node, 0, len(b.desktop.Windows))
	for _, w := range b.desktop.Windows {
		nodes = append(nodes, w.node(0, true))
	}
	return nodes, nil
}

func (b *Backend) VirtualScreen(_ context.Context) (model.Rect, error) {
	return b.desktop.VirtualScreen, nil
}

func (b *Backend) TopLevelWindows(_ context.Context) ([]platform.Node, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	nodes := make([]platform.Node, 0, len(b.desktop.Windows))
	for _, w := range b.desktop.Windows {
		n := w.node(0, true)
		n.Children = nil
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (b *Backend) ForegroundWindow(_ context.Context) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.foreground, nil
}

func (b *Backend) Activate(_ context.Context, handle uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.desktop.Windows {
		w := &b.desktop.Windows[i]
		if w.Handle != handle {
			continue
		}
		if w.Status == string(model.AppMinimized) {
			w.Status = string(model.AppNormal)
		}
		b.foreground = handle
		// Activation raises the window to the top of the z-order.
		raised := *w
		copy(b.desktop.Windows[1:i+1], b.desktop.Windows[:i])
		b.desktop.Windows[0] = raised
		return nil
	}
	return fmt.Errorf("no window with handle %d", handle)
}

func (b *Backend) CaptureScreen(_ context.Context) (image.Image, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	screen := b.desktop.VirtualScreen
	img := image.NewRGBA(image.Rect(0, 0, screen.Width, screen.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 0x20, G: 0x40, B: 0x60, A: 0xff}), image.Point{}, draw.Src)
	// Paint bottom-most windows first so the z-order matches.
	for i := len(b.desktop.Windows) - 1; i >= 0; i-- {
		w := b.desktop.Windows[i]
		if w.Hidden {
			continue
		}
		r := w.Bounds.Clip(screen)
		if r.Empty() {
			continue
		}
		shade := uint8(0x80 + (w.Handle*37)%0x70)
		dst := image.Rect(r.X-screen.X, r.Y-screen.Y, r.X-screen.X+r.Width, r.Y-screen.Y+r.Height)
		draw.Draw(img, dst, image.NewUniform(color.RGBA{R: shade, G: shade, B: shade, A: 0xff}), image.Point{}, draw.Src)
	}
	return img, nil
}

func (b *Backend) ReadText(_ context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.clipboard, nil
}

func (b *Backend) WriteText(_ context.Context, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clipboard = text
	return nil
}

// Launch opens a new, empty, focused window titled after the app.
func (b *Backend) Launch(_ context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextHandle++
	screen := b.desktop.VirtualScreen
	w := Window{
		Handle: b.nextHandle,
		Class:  "ApplicationFrameWindow",
		Name:   name,
		PID:    int(b.nextHandle) * 10,
		Status: string(model.AppNormal),
		Bounds: model.Rect{X: screen.X + 40, Y: screen.Y + 40, Width: screen.Width / 2, Height: screen.Height / 2},
	}
	b.desktop.Windows = append([]Window{w}, b.desktop.Windows...)
	b.foreground = w.Handle
	b.launched = append(b.launched, name)
	return nil
}

// Run answers from the fixture's shell table. Unknown commands exit 1.
func (b *Backend) Run(_ context.Context, command string) (string, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, fmt.Sprintf("shell %q", command))
	if out, ok := b.desktop.Shell[command]; ok {
		return out, 0, nil
	}
	return fmt.Sprintf("The term '%s' is not recognized as a cmdlet.", command), 1, nil
}

func (b *Backend) record(format string, args ...any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, fmt.Sprintf(format, args...))
	return nil
}

func (b *Backend) Click(x, y int, button platform.MouseButton, count int) error {
	return b.record("click %d,%d %s x%d", x, y, button, count)
}

func (b *Backend) MoveMouse(x, y int) error {
	return b.record("move %d,%d", x, y)
}

func (b *Backend) Scroll(x, y int, axis platform.ScrollAxis, direction platform.ScrollDirection, wheelTimes int) error {
	return b.record("scroll %d,%d %s %s x%d", x, y, axis, direction, wheelTimes)
}

func (b *Backend) Drag(fromX, fromY, toX, toY int) error {
	return b.record("drag %d,%d -> %d,%d", fromX, fromY, toX, toY)
}

func (b *Backend) TypeText(x, y int, text string, clear bool) error {
	return b.record("type %d,%d %q clear=%v", x, y, text, clear)
}

func (b *Backend) KeyCombo(keys []string) error {
	return b.record("keys %s", strings.Join(keys, "+"))
}

// Events returns the input recorded so far, oldest first.
func (b *Backend) Events() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.events...)
}

// Launched returns the names passed to Launch.
func (b *Backend) Launched() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.launched...)
}
