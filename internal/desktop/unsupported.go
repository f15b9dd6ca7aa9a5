package desktop

import (
	"context"
	"fmt"

	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/platform"
)

// Unsupported is the desktop used when no platform backend could be
// created. Every operation fails with ErrStateUnavailable.
type Unsupported struct {
	Reason error
}

func (u Unsupported) err() error {
	if u.Reason == nil {
		return ErrStateUnavailable
	}
	return fmt.Errorf("%w: %v", ErrStateUnavailable, u.Reason)
}

func (u Unsupported) State(context.Context, StateOptions) (*model.DesktopState, error) {
	return nil, u.err()
}

func (u Unsupported) Apps(context.Context) ([]model.AppRecord, error) {
	return nil, u.err()
}

func (u Unsupported) Screen(context.Context) (model.Rect, error) {
	return model.Rect{}, u.err()
}

func (u Unsupported) Switch(context.Context, string) (model.AppRecord, error) {
	return model.AppRecord{}, u.err()
}

func (u Unsupported) Launch(context.Context, string) error { return u.err() }

func (u Unsupported) ReadClipboard(context.Context) (string, error) { return "", u.err() }

func (u Unsupported) WriteClipboard(context.Context, string) error { return u.err() }

func (u Unsupported) RunShell(context.Context, string) (string, int, error) {
	return "", 0, u.err()
}

func (u Unsupported) Inputter() platform.Inputter { return nil }
