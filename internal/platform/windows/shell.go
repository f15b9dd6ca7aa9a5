//go:build windows

package windows

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

func powershell(ctx context.Context, command string) *exec.Cmd {
	return exec.CommandContext(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", command)
}

// Shell runs PowerShell commands.
type Shell struct{}

// NewShell creates a new PowerShell runner.
func NewShell() *Shell {
	return &Shell{}
}

func (s *Shell) Run(ctx context.Context, command string) (string, int, error) {
	out, err := powershell(ctx, command).CombinedOutput()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return strings.TrimRight(string(out), "\r\n"), 0, nil
	case errors.As(err, &exitErr):
		return strings.TrimRight(string(out), "\r\n"), exitErr.ExitCode(), nil
	default:
		return "", 0, fmt.Errorf("powershell: %w", err)
	}
}

// Launcher starts apps through Start-Process, which resolves App Paths,
// PATH entries and Start menu shortcuts.
type Launcher struct{}

// NewLauncher creates a new app launcher.
func NewLauncher() *Launcher {
	return &Launcher{}
}

func (l *Launcher) Launch(ctx context.Context, name string) error {
	command := "Start-Process -FilePath " + quote(name)
	out, err := powershell(ctx, command).CombinedOutput()
	if err != nil {
		return fmt.Errorf("launch %s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// quote makes s a single-quoted PowerShell string literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
