package server

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Tool names.
const (
	ToolState      = "State-Tool"
	ToolApps       = "Apps-Tool"
	ToolSwitch     = "Switch-Tool"
	ToolLaunch     = "Launch-Tool"
	ToolClipboard  = "Clipboard-Tool"
	ToolWait       = "Wait-Tool"
	ToolPowershell = "Powershell-Tool"
	ToolClick      = "Click-Tool"
	ToolType       = "Type-Tool"
	ToolScroll     = "Scroll-Tool"
	ToolDrag       = "Drag-Tool"
	ToolMove       = "Move-Tool"
	ToolShortcut   = "Shortcut-Tool"
	ToolKey        = "Key-Tool"
)

type validator interface {
	Validate() error
}

// bind decodes arguments into T and validates them before calling fn.
func bind[T validator](fn func(context.Context, T) (*mcp.CallToolResult, error)) mcpserver.ToolHandlerFunc {
	return mcp.NewTypedToolHandler(func(ctx context.Context, _ mcp.CallToolRequest, args T) (*mcp.CallToolResult, error) {
		if err := args.Validate(); err != nil {
			return mcp.NewToolResultError("Invalid arguments: " + err.Error()), nil
		}
		return fn(ctx, args)
	})
}

// add registers a tool, recording its latency and outcome.
func (s *Server) add(tool mcp.Tool, h mcpserver.ToolHandlerFunc) {
	name := tool.Name
	wrapped := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		res, err := h(ctx, req)
		failed := err != nil || (res != nil && res.IsError)
		s.session.Metrics().ObserveTool(name, time.Since(start), failed)

		ev := s.session.Log().Debug()
		if failed {
			ev = s.session.Log().Warn()
		}
		ev.Str("tool", name).Dur("elapsed", time.Since(start)).Bool("failed", failed).Msg("tool call")
		return res, err
	}
	s.handlers[name] = wrapped
	s.mcp.AddTool(tool, wrapped)
}

// Call invokes a registered tool directly, bypassing the transport.
func (s *Server) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	h, ok := s.handlers[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", name)
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return h(ctx, req)
}

// Tools returns the registered tool names.
func (s *Server) Tools() []string {
	names := make([]string, 0, len(s.handlers))
	for name := range s.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func locParam(name, desc string, opts ...mcp.PropertyOption) mcp.ToolOption {
	opts = append([]mcp.PropertyOption{
		mcp.Description(desc),
		mcp.Items(map[string]any{"type": "integer"}),
		mcp.MinItems(2),
		mcp.MaxItems(2),
	}, opts...)
	return mcp.WithArray(name, opts...)
}

func (s *Server) registerTools() {
	s.add(mcp.NewTool(ToolState,
		mcp.WithDescription("Capture the desktop: focused app, open apps, and interactive, informative and scrollable elements with IDs and click coordinates. Set use_vision to attach a screenshot."),
		mcp.WithBoolean("use_vision", mcp.Description("Attach a screenshot of the virtual screen"), mcp.DefaultBool(false)),
		mcp.WithBoolean("annotate", mcp.Description("Draw element boxes and IDs on the screenshot (implies use_vision)"), mcp.DefaultBool(false)),
		mcp.WithString("format", mcp.Description("Text layout of the state"), mcp.Enum("text", "yaml", "json"), mcp.DefaultString("text")),
	), bind(s.handleState))

	s.add(mcp.NewTool(ToolApps,
		mcp.WithDescription("List open apps with window status and which one has focus"),
	), bind(s.handleApps))

	s.add(mcp.NewTool(ToolSwitch,
		mcp.WithDescription("Bring an open app to the foreground, restoring it if minimized. Matches the title exactly, then by prefix, then by substring."),
		mcp.WithString("name", mcp.Required(), mcp.Description("App title or part of it")),
	), bind(s.handleSwitch))

	s.add(mcp.NewTool(ToolLaunch,
		mcp.WithDescription("Launch an application by name or path"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Application name, e.g. notepad")),
	), bind(s.handleLaunch))

	s.add(mcp.NewTool(ToolClipboard,
		mcp.WithDescription("Copy text to the clipboard or paste (read) the clipboard text"),
		mcp.WithString("mode", mcp.Required(), mcp.Enum("copy", "paste")),
		mcp.WithString("text", mcp.Description("Text to copy, required for copy")),
	), bind(s.handleClipboard))

	s.add(mcp.NewTool(ToolWait,
		mcp.WithDescription("Pause for a number of seconds, e.g. while an app loads"),
		mcp.WithNumber("duration", mcp.Required(), mcp.Description("Seconds to wait"), mcp.Min(0), mcp.Max(MaxWait)),
	), bind(s.handleWait))

	s.add(mcp.NewTool(ToolPowershell,
		mcp.WithDescription("Run a PowerShell command and return its output and exit status"),
		mcp.WithString("command", mcp.Required(), mcp.Description("PowerShell command line")),
	), bind(s.handlePowershell))

	s.add(mcp.NewTool(ToolClick,
		mcp.WithDescription("Click at screen coordinates"),
		locParam("loc", "[x, y] in physical virtual-screen pixels", mcp.Required()),
		mcp.WithString("button", mcp.Enum("left", "right", "middle"), mcp.DefaultString("left")),
		mcp.WithNumber("clicks", mcp.Description("1 single, 2 double, 3 triple"), mcp.Min(1), mcp.Max(3), mcp.DefaultNumber(1)),
	), bind(s.handleClick))

	s.add(mcp.NewTool(ToolType,
		mcp.WithDescription("Click at coordinates and type text"),
		locParam("loc", "[x, y] of the input field", mcp.Required()),
		mcp.WithString("text", mcp.Required()),
		mcp.WithBoolean("clear", mcp.Description("Clear existing text first"), mcp.DefaultBool(false)),
	), bind(s.handleType))

	s.add(mcp.NewTool(ToolScroll,
		mcp.WithDescription("Scroll at coordinates, or at the screen center when loc is omitted"),
		locParam("loc", "[x, y] to scroll at"),
		mcp.WithString("type", mcp.Enum("vertical", "horizontal"), mcp.DefaultString("vertical")),
		mcp.WithString("direction", mcp.Required(), mcp.Enum("up", "down", "left", "right")),
		mcp.WithNumber("wheel_times", mcp.Min(1), mcp.Max(50), mcp.DefaultNumber(1)),
	), bind(s.handleScroll))

	s.add(mcp.NewTool(ToolDrag,
		mcp.WithDescription("Drag from one point to another"),
		locParam("from_loc", "[x, y] start", mcp.Required()),
		locParam("to_loc", "[x, y] end", mcp.Required()),
	), bind(s.handleDrag))

	s.add(mcp.NewTool(ToolMove,
		mcp.WithDescription("Move the mouse pointer"),
		locParam("to_loc", "[x, y] target", mcp.Required()),
	), bind(s.handleMove))

	s.add(mcp.NewTool(ToolShortcut,
		mcp.WithDescription("Press a key combination, e.g. [\"ctrl\", \"c\"]"),
		mcp.WithArray("shortcut", mcp.Required(), mcp.WithStringItems()),
	), bind(s.handleShortcut))

	s.add(mcp.NewTool(ToolKey,
		mcp.WithDescription("Press a key or a '+'-joined combination, e.g. enter or ctrl+s"),
		mcp.WithString("key", mcp.Required()),
	), bind(s.handleKey))
}
