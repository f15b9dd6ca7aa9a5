//go:build windows

package windows

import "github.com/mj1618/windows-mcp/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		if err := enableDPIAwareness(); err != nil {
			return nil, err
		}
		reader := NewReader()
		return &platform.Provider{
			Reader:           reader,
			WindowManager:    NewWindowManager(),
			Screenshotter:    NewScreenshotter(),
			ClipboardManager: NewClipboard(),
			Launcher:         NewLauncher(),
			Shell:            NewShell(),
			// Input injection is not provided natively.
		}, nil
	}
}
