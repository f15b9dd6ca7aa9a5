// Package desktop assembles desktop states from a platform provider and
// carries the per-process session that tool handlers share.
package desktop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/platform"
	"github.com/mj1618/windows-mcp/internal/snapshot"
)

var (
	// ErrStateUnavailable means the platform cannot produce a desktop state
	// at all. Callers should report it rather than retry.
	ErrStateUnavailable = errors.New("desktop state unavailable")

	// ErrNotAvailable means the platform lacks one specific capability.
	ErrNotAvailable = errors.New("not available on this platform")

	// ErrAppNotFound means no open app matched a requested name.
	ErrAppNotFound = errors.New("no matching app")
)

// StateOptions selects optional parts of a state query.
type StateOptions struct {
	Vision bool // attach a screenshot
}

// Desktop is the capability surface tool handlers work against.
type Desktop interface {
	// State captures a fresh desktop state.
	State(ctx context.Context, opts StateOptions) (*model.DesktopState, error)
	// Apps lists open apps with focus resolved.
	Apps(ctx context.Context) ([]model.AppRecord, error)
	// Screen returns the current virtual screen rectangle.
	Screen(ctx context.Context) (model.Rect, error)
	// Switch brings the best-matching app to the foreground.
	Switch(ctx context.Context, name string) (model.AppRecord, error)
	Launch(ctx context.Context, name string) error
	ReadClipboard(ctx context.Context) (string, error)
	WriteClipboard(ctx context.Context, text string) error
	RunShell(ctx context.Context, command string) (string, int, error)
	// Inputter returns the input backend, or nil when there is none.
	Inputter() platform.Inputter
}

// New selects the desktop variant once at startup: Native when a provider
// with a tree reader is available, Unsupported otherwise.
func New(p *platform.Provider, err error, policy snapshot.Policy) Desktop {
	if err != nil {
		return Unsupported{Reason: err}
	}
	if p == nil || p.Reader == nil {
		return Unsupported{Reason: errors.New("platform provides no element tree reader")}
	}
	return NewNative(p, policy)
}

// MatchApp picks the app whose title best matches name: an exact match,
// then a prefix match, then a substring match, all case-insensitive.
// Earlier apps (higher in z-order) win ties.
func MatchApp(apps []model.AppRecord, name string) (model.AppRecord, error) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return model.AppRecord{}, fmt.Errorf("%w: empty name", ErrAppNotFound)
	}
	matchers := []func(title string) bool{
		func(title string) bool { return title == q },
		func(title string) bool { return strings.HasPrefix(title, q) },
		func(title string) bool { return strings.Contains(title, q) },
	}
	for _, match := range matchers {
		for _, app := range apps {
			if match(strings.ToLower(app.DisplayName())) {
				return app, nil
			}
		}
	}
	return model.AppRecord{}, fmt.Errorf("%w: %q", ErrAppNotFound, name)
}
