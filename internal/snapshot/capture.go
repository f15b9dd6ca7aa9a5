// Package snapshot walks the desktop element tree once and partitions what it
// finds into interactive, informative, and scrollable records.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/platform"
)

// ErrCaptureTimeout is returned when the tree walk exceeds the policy
// timeout. No partial snapshot is returned with it.
var ErrCaptureTimeout = errors.New("capture timed out")

type walkResult struct {
	windows []platform.Node
	screen  model.Rect
	err     error
}

// Capture walks the element tree and returns a partitioned snapshot.
//
// The platform walk runs in its own goroutine. If the timeout elapses first,
// Capture returns ErrCaptureTimeout immediately and the walk's result, when
// it eventually arrives, is discarded.
func Capture(ctx context.Context, reader platform.Reader, policy Policy) (model.TreeSnapshot, error) {
	p, err := policy.compile()
	if err != nil {
		return model.TreeSnapshot{}, fmt.Errorf("capture policy: %w", err)
	}

	walkCtx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	done := make(chan walkResult, 1)
	go func() {
		var r walkResult
		r.screen, r.err = reader.VirtualScreen(walkCtx)
		if r.err == nil {
			r.windows, r.err = reader.Windows(walkCtx)
		}
		done <- r
	}()

	var r walkResult
	select {
	case <-walkCtx.Done():
		return model.TreeSnapshot{}, timeoutOrCancel(ctx, p)
	case r = <-done:
	}
	if r.err != nil {
		if errors.Is(r.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return model.TreeSnapshot{}, timeoutOrCancel(ctx, p)
		}
		return model.TreeSnapshot{}, fmt.Errorf("read element tree: %w", r.err)
	}

	return build(r.windows, r.screen, p), nil
}

func timeoutOrCancel(ctx context.Context, p Policy) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return fmt.Errorf("%w after %s", ErrCaptureTimeout, p.Timeout)
}

// builder accumulates records during one pre-order walk.
type builder struct {
	policy Policy
	screen model.Rect
	nextID int
	snap   model.TreeSnapshot
}

func build(windows []platform.Node, screen model.Rect, p Policy) model.TreeSnapshot {
	b := &builder{
		policy: p,
		screen: screen,
		nextID: 1,
		snap: model.TreeSnapshot{
			Interactive:     []model.ElementRecord{},
			Informative:     []model.ElementRecord{},
			Scrollable:      []model.ElementRecord{},
			VirtualScreen:   screen,
			CoordinateSpace: model.CoordinatePhysical,
		},
	}
	for _, w := range windows {
		if p.Skips(w) {
			continue
		}
		app := w.Name
		if app == "" {
			app = w.ClassName
		}
		b.visit(w, app, true)
	}
	return b.snap
}

// visit classifies n and then its children. Invisible nodes hide their
// whole subtree; a disabled node disables its descendants.
func (b *builder) visit(n platform.Node, app string, parentEnabled bool) {
	if !n.Visible {
		return
	}
	enabled := parentEnabled && n.Enabled

	if bounds := n.Bounds.Clip(b.screen); !bounds.Empty() {
		if kind, ok := b.classify(n, enabled); ok {
			b.add(n, app, bounds, kind)
		}
	}

	for _, c := range n.Children {
		b.visit(c, app, enabled)
	}
}

func (b *builder) classify(n platform.Node, enabled bool) (model.PartitionKind, bool) {
	ct := n.Type()
	interactive := b.policy.interactive[ct]
	switch {
	case interactive && enabled:
		return model.PartitionInteractive, true
	case n.ScrollAxes != model.ScrollNone:
		return model.PartitionScrollable, true
	case n.Name == "":
		return "", false
	case b.policy.informative[ct], interactive:
		// Disabled controls are still worth reading.
		return model.PartitionInformative, true
	default:
		return "", false
	}
}

func (b *builder) add(n platform.Node, app string, bounds model.Rect, kind model.PartitionKind) {
	rec := model.ElementRecord{
		ID:          b.nextID,
		Name:        n.Name,
		ControlType: n.Type(),
		App:         app,
		Bounds:      bounds,
		Center:      bounds.Center(),
	}
	b.nextID++
	switch kind {
	case model.PartitionInteractive:
		rec.Interactable = true
		b.snap.Interactive = append(b.snap.Interactive, rec)
	case model.PartitionScrollable:
		rec.Scrollable = true
		rec.ScrollAxes = n.ScrollAxes
		b.snap.Scrollable = append(b.snap.Scrollable, rec)
	case model.PartitionInformative:
		rec.Informative = true
		b.snap.Informative = append(b.snap.Informative, rec)
	}
}
