package cmd

import (
	"github.com/mj1618/windows-mcp/internal/desktop"
	"github.com/mj1618/windows-mcp/internal/logger"
	"github.com/mj1618/windows-mcp/internal/metrics"
	"github.com/mj1618/windows-mcp/internal/platform"
	"github.com/mj1618/windows-mcp/internal/platform/fixture"
)

// newSession builds the desktop session for this process. A configured
// fixture replaces the native provider.
func newSession() (*desktop.Session, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	var d desktop.Desktop
	if cfg.Fixture != "" {
		fx, err := fixture.Load(cfg.Fixture)
		if err != nil {
			return nil, err
		}
		p, _ := fx.Provider()
		d = desktop.New(p, nil, policy)
	} else {
		p, err := platform.NewProvider()
		d = desktop.New(p, err, policy)
	}

	log := logger.WithComponent("desktop")
	if u, ok := d.(desktop.Unsupported); ok {
		log.Warn().Err(u.Reason).Msg("desktop state is unavailable; tools will report errors")
	}
	return desktop.NewSession(d, *log, metrics.New()), nil
}
