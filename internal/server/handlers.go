package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/windows-mcp/internal/desktop"
	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/mj1618/windows-mcp/internal/output"
	"github.com/mj1618/windows-mcp/internal/platform"
)

// errNoInput is reported when the platform has no input backend.
var errNoInput = errors.New("input dispatch is not available on this platform")

func toolError(prefix string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", prefix, err))
}

func (s *Server) handleState(ctx context.Context, in StateInput) (*mcp.CallToolResult, error) {
	format, _ := output.ParseFormat(in.Format)
	vision := in.UseVision || in.Annotate

	state, err := s.session.State(ctx, desktop.StateOptions{Vision: vision})
	if err != nil {
		return toolError("Unable to capture desktop state", err), nil
	}

	var text bytes.Buffer
	if err := output.Fprint(&text, format, true, output.NewStateDocument(state)); err != nil {
		return toolError("Unable to format desktop state", err), nil
	}
	if state.Screenshot == nil {
		return mcp.NewToolResultText(text.String()), nil
	}

	img := state.Screenshot.Image
	if in.Annotate {
		img = output.Annotate(img, state.Snapshot)
	}
	data, mime, err := output.EncodeImage(img, s.opts.Image)
	if err != nil {
		return toolError("Unable to encode screenshot", err), nil
	}
	return mcp.NewToolResultImage(text.String(), base64.StdEncoding.EncodeToString(data), mime), nil
}

func (s *Server) handleApps(ctx context.Context, _ AppsInput) (*mcp.CallToolResult, error) {
	apps, err := s.session.Desktop().Apps(ctx)
	if err != nil {
		return toolError("Unable to list apps", err), nil
	}
	if len(apps) == 0 {
		return mcp.NewToolResultText(output.NoApps), nil
	}
	lines := make([]string, len(apps))
	for i, app := range apps {
		lines[i] = output.FormatApp(app)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) handleSwitch(ctx context.Context, in NameInput) (*mcp.CallToolResult, error) {
	app, err := s.session.Desktop().Switch(ctx, in.Name)
	if err != nil {
		return toolError("Unable to switch app", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Switched to %q.", app.DisplayName())), nil
}

func (s *Server) handleLaunch(ctx context.Context, in NameInput) (*mcp.CallToolResult, error) {
	if err := s.session.Desktop().Launch(ctx, in.Name); err != nil {
		return toolError("Unable to launch app", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Launched %s.", in.Name)), nil
}

func (s *Server) handleClipboard(ctx context.Context, in ClipboardInput) (*mcp.CallToolResult, error) {
	d := s.session.Desktop()
	if in.Mode == "copy" {
		if err := d.WriteClipboard(ctx, in.Text); err != nil {
			return toolError("Unable to copy to clipboard", err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Copied %q to clipboard.", in.Text)), nil
	}
	text, err := d.ReadClipboard(ctx)
	if err != nil {
		return toolError("Unable to read clipboard", err), nil
	}
	return mcp.NewToolResultText("Clipboard content:\n" + text), nil
}

func (s *Server) handleWait(ctx context.Context, in WaitInput) (*mcp.CallToolResult, error) {
	d := time.Duration(in.Duration * float64(time.Second))
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return mcp.NewToolResultText(fmt.Sprintf("Waited for %g seconds.", in.Duration)), nil
	case <-ctx.Done():
		return toolError("Wait interrupted", ctx.Err()), nil
	}
}

func (s *Server) handlePowershell(ctx context.Context, in PowershellInput) (*mcp.CallToolResult, error) {
	out, status, err := s.session.Desktop().RunShell(ctx, in.Command)
	if err != nil {
		return toolError("Unable to run command", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Response: %s\nStatus Code: %d", out, status)), nil
}

// input returns the input backend after checking that every point lies on
// the current virtual screen.
func (s *Server) input(ctx context.Context, points ...Loc) (platform.Inputter, error) {
	d := s.session.Desktop()
	in := d.Inputter()
	if in == nil {
		return nil, errNoInput
	}
	screen, err := d.Screen(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range points {
		x, y := p.xy()
		if !screen.Contains(model.Point{X: x, Y: y}) {
			return nil, fmt.Errorf("(%d,%d) is outside the virtual screen %s", x, y, screen)
		}
	}
	return in, nil
}

func (s *Server) handleClick(ctx context.Context, in ClickInput) (*mcp.CallToolResult, error) {
	inputter, err := s.input(ctx, in.Loc)
	if err != nil {
		return toolError("Unable to click", err), nil
	}
	button, _ := platform.ParseMouseButton(in.Button)
	x, y := in.Loc.xy()
	if err := inputter.Click(x, y, button, in.count()); err != nil {
		return toolError("Unable to click", err), nil
	}
	kind := [...]string{"", "Single", "Double", "Triple"}[in.count()]
	return mcp.NewToolResultText(fmt.Sprintf("%s %s clicked at (%d,%d).", kind, button, x, y)), nil
}

func (s *Server) handleType(ctx context.Context, in TypeInput) (*mcp.CallToolResult, error) {
	inputter, err := s.input(ctx, in.Loc)
	if err != nil {
		return toolError("Unable to type", err), nil
	}
	x, y := in.Loc.xy()
	if err := inputter.TypeText(x, y, in.Text, in.Clear); err != nil {
		return toolError("Unable to type", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Typed %q at (%d,%d).", in.Text, x, y)), nil
}

func (s *Server) handleScroll(ctx context.Context, in ScrollInput) (*mcp.CallToolResult, error) {
	loc := in.Loc
	if len(loc) == 0 {
		screen, err := s.session.Desktop().Screen(ctx)
		if err != nil {
			return toolError("Unable to scroll", err), nil
		}
		c := screen.Center()
		loc = Loc{c.X, c.Y}
	}
	inputter, err := s.input(ctx, loc)
	if err != nil {
		return toolError("Unable to scroll", err), nil
	}
	axis, dir, _ := platform.ParseScroll(in.Type, in.Direction)
	times := max(in.WheelTimes, 1)
	x, y := loc.xy()
	if err := inputter.Scroll(x, y, axis, dir, times); err != nil {
		return toolError("Unable to scroll", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Scrolled %s %s by %d wheel times at (%d,%d).", axis, dir, times, x, y)), nil
}

func (s *Server) handleDrag(ctx context.Context, in DragInput) (*mcp.CallToolResult, error) {
	inputter, err := s.input(ctx, in.FromLoc, in.ToLoc)
	if err != nil {
		return toolError("Unable to drag", err), nil
	}
	fx, fy := in.FromLoc.xy()
	tx, ty := in.ToLoc.xy()
	if err := inputter.Drag(fx, fy, tx, ty); err != nil {
		return toolError("Unable to drag", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Dragged from (%d,%d) to (%d,%d).", fx, fy, tx, ty)), nil
}

func (s *Server) handleMove(ctx context.Context, in MoveInput) (*mcp.CallToolResult, error) {
	inputter, err := s.input(ctx, in.ToLoc)
	if err != nil {
		return toolError("Unable to move", err), nil
	}
	x, y := in.ToLoc.xy()
	if err := inputter.MoveMouse(x, y); err != nil {
		return toolError("Unable to move", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Moved the mouse pointer to (%d,%d).", x, y)), nil
}

func (s *Server) handleShortcut(ctx context.Context, in ShortcutInput) (*mcp.CallToolResult, error) {
	return s.pressKeys(ctx, in.keys())
}

func (s *Server) handleKey(ctx context.Context, in KeyInput) (*mcp.CallToolResult, error) {
	keys, _ := platform.ParseKeyCombo(in.Key)
	return s.pressKeys(ctx, keys)
}

func (s *Server) pressKeys(ctx context.Context, keys []string) (*mcp.CallToolResult, error) {
	inputter, err := s.input(ctx)
	if err != nil {
		return toolError("Unable to press keys", err), nil
	}
	if err := inputter.KeyCombo(keys); err != nil {
		return toolError("Unable to press keys", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Pressed %s.", strings.Join(keys, "+"))), nil
}
