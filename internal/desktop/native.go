package desktop

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/platform"
	"github.com/mj1618/windows-mcp/internal/snapshot"
	"golang.org/x/sync/errgroup"
)

// Native produces desktop states from a real (or replayed) platform provider.
type Native struct {
	provider *platform.Provider
	policy   snapshot.Policy
	now      func() time.Time
	newID    func() string
}

// NewNative wraps a provider. The provider must have a Reader.
func NewNative(p *platform.Provider, policy snapshot.Policy) *Native {
	if policy.Timeout <= 0 {
		policy.Timeout = snapshot.DefaultTimeout
	}
	return &Native{
		provider: p,
		policy:   policy,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// State captures the tree, the app list, and optionally a screenshot
// concurrently under a single deadline.
func (d *Native) State(ctx context.Context, opts StateOptions) (*model.DesktopState, error) {
	if opts.Vision && d.provider.Screenshotter == nil {
		return nil, fmt.Errorf("%w: screenshots are %v", ErrStateUnavailable, ErrNotAvailable)
	}

	ctx, cancel := context.WithTimeout(ctx, d.policy.Timeout)
	defer cancel()

	var (
		snap model.TreeSnapshot
		apps []model.AppRecord
		shot image.Image
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = snapshot.Capture(gctx, d.provider.Reader, d.policy)
		return err
	})
	g.Go(func() error {
		var err error
		apps, err = bounded(gctx, func() ([]model.AppRecord, error) { return d.Apps(gctx) })
		if err != nil {
			return fmt.Errorf("list apps: %w", err)
		}
		return nil
	})
	if opts.Vision {
		g.Go(func() error {
			var err error
			shot, err = bounded(gctx, func() (image.Image, error) { return d.provider.Screenshotter.CaptureScreen(gctx) })
			if err != nil {
				return fmt.Errorf("capture screenshot: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, classify(ctx, err)
	}

	state := &model.DesktopState{
		ID:         d.newID(),
		CapturedAt: d.now(),
		Snapshot:   snap,
		Apps:       apps,
	}
	for i := range apps {
		if apps[i].IsFocused {
			active := apps[i]
			state.ActiveApp = &active
			break
		}
	}
	if shot != nil {
		state.Screenshot = model.NewScreenshot(shot)
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return state, nil
}

// Apps lists visible, titled top-level windows that the policy does not
// skip. The app owning the foreground window is marked focused; if no app
// owns it, none is.
func (d *Native) Apps(ctx context.Context) ([]model.AppRecord, error) {
	wm := d.provider.WindowManager
	if wm == nil {
		return nil, fmt.Errorf("window listing is %w", ErrNotAvailable)
	}
	windows, err := wm.TopLevelWindows(ctx)
	if err != nil {
		return nil, err
	}
	// A failed foreground query leaves focus unresolved rather than failing.
	fg, err := wm.ForegroundWindow(ctx)
	if err != nil {
		fg = 0
	}

	apps := []model.AppRecord{}
	for _, w := range windows {
		if !w.Visible || w.Name == "" || d.policy.Skips(w) {
			continue
		}
		status := w.Status
		if status == "" {
			status = model.AppNormal
		}
		apps = append(apps, model.AppRecord{
			Title:     w.Name,
			ClassName: w.ClassName,
			ProcessID: w.ProcessID,
			Handle:    w.Handle,
			Bounds:    w.Bounds,
			Status:    status,
			IsFocused: fg != 0 && w.Handle == fg,
		})
	}
	return apps, nil
}

func (d *Native) Screen(ctx context.Context) (model.Rect, error) {
	return d.provider.Reader.VirtualScreen(ctx)
}

func (d *Native) Switch(ctx context.Context, name string) (model.AppRecord, error) {
	apps, err := d.Apps(ctx)
	if err != nil {
		return model.AppRecord{}, err
	}
	app, err := MatchApp(apps, name)
	if err != nil {
		return model.AppRecord{}, err
	}
	if err := d.provider.WindowManager.Activate(ctx, app.Handle); err != nil {
		return model.AppRecord{}, fmt.Errorf("activate %q: %w", app.Title, err)
	}
	app.IsFocused = true
	if app.Status == model.AppMinimized {
		app.Status = model.AppNormal
	}
	return app, nil
}

func (d *Native) Launch(ctx context.Context, name string) error {
	if d.provider.Launcher == nil {
		return fmt.Errorf("launching apps is %w", ErrNotAvailable)
	}
	return d.provider.Launcher.Launch(ctx, name)
}

func (d *Native) ReadClipboard(ctx context.Context) (string, error) {
	if d.provider.ClipboardManager == nil {
		return "", fmt.Errorf("clipboard is %w", ErrNotAvailable)
	}
	return d.provider.ClipboardManager.ReadText(ctx)
}

func (d *Native) WriteClipboard(ctx context.Context, text string) error {
	if d.provider.ClipboardManager == nil {
		return fmt.Errorf("clipboard is %w", ErrNotAvailable)
	}
	return d.provider.ClipboardManager.WriteText(ctx, text)
}

func (d *Native) RunShell(ctx context.Context, command string) (string, int, error) {
	if d.provider.Shell == nil {
		return "", 0, fmt.Errorf("shell is %w", ErrNotAvailable)
	}
	return d.provider.Shell.Run(ctx, command)
}

func (d *Native) Inputter() platform.Inputter {
	return d.provider.Inputter
}

// bounded runs fn in its own goroutine and gives up when ctx is done, for
// platform calls that may not watch their context.
func bounded[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()
	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// classify maps deadline failures onto ErrCaptureTimeout, leaving caller
// cancellation and other errors untouched.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, snapshot.ErrCaptureTimeout) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", snapshot.ErrCaptureTimeout, err)
	}
	return err
}
