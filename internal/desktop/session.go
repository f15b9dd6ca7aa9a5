package desktop

import (
	"context"
	"errors"
	"time"

	"github.com/mj1618/windows-mcp/internal/metrics"
	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/snapshot"
	"github.com/rs/zerolog"
)

// Session is the state one server process shares across tool calls: the
// desktop it talks to, a logger, and its metrics. It is created once at
// startup and passed explicitly to every handler.
type Session struct {
	desktop Desktop
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewSession builds a session. m may be nil to disable metrics.
func NewSession(d Desktop, log zerolog.Logger, m *metrics.Metrics) *Session {
	return &Session{desktop: d, log: log, metrics: m}
}

func (s *Session) Desktop() Desktop          { return s.desktop }
func (s *Session) Log() *zerolog.Logger      { return &s.log }
func (s *Session) Metrics() *metrics.Metrics { return s.metrics }

// State captures a desktop state, logging and recording the outcome.
func (s *Session) State(ctx context.Context, opts StateOptions) (*model.DesktopState, error) {
	start := time.Now()
	state, err := s.desktop.State(ctx, opts)
	elapsed := time.Since(start)

	if err != nil {
		outcome := Outcome(err)
		s.metrics.ObserveCapture(elapsed, outcome, nil)
		s.log.Warn().Err(err).Str("outcome", outcome).Dur("elapsed", elapsed).Msg("desktop capture failed")
		return nil, err
	}

	s.metrics.ObserveCapture(elapsed, metrics.OutcomeOK, &state.Snapshot)
	ev := s.log.Debug().
		Str("state_id", state.ID).
		Int("interactive", len(state.Snapshot.Interactive)).
		Int("informative", len(state.Snapshot.Informative)).
		Int("scrollable", len(state.Snapshot.Scrollable)).
		Int("apps", len(state.Apps)).
		Bool("vision", state.Screenshot != nil).
		Dur("elapsed", elapsed)
	if state.ActiveApp == nil {
		ev = ev.Bool("focus_unresolved", true)
	}
	ev.Msg("desktop captured")
	return state, nil
}

// Outcome names the metrics outcome for a capture error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, snapshot.ErrCaptureTimeout):
		return metrics.OutcomeTimeout
	case errors.Is(err, ErrStateUnavailable):
		return metrics.OutcomeUnavailable
	default:
		return metrics.OutcomeError
	}
}
