package server

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/windows-mcp/internal/desktop"
	"github.com/mj1618/windows-mcp/internal/metrics"
	"github.com/mj1618/windows-mcp/internal/platform"
	"github.com/mj1618/windows-mcp/internal/platform/fixture"
	"github.com/mj1618/windows-mcp/internal/snapshot"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	srv     *Server
	backend *fixture.Backend
	metrics *metrics.Metrics
}

func newHarness(t *testing.T, fx *fixture.Desktop) harness {
	t.Helper()
	p, b := fx.Provider()
	m := metrics.New()
	session := desktop.NewSession(desktop.NewNative(p, snapshot.DefaultPolicy()), zerolog.Nop(), m)
	return harness{srv: New(session, Options{}), backend: b, metrics: m}
}

func (h harness) call(t *testing.T, name string, args map[string]any) (string, *mcp.CallToolResult) {
	t.Helper()
	res, err := h.srv.Call(context.Background(), name, args)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "first content is %T", res.Content[0])
	return text.Text, res
}

func TestTools_Registered(t *testing.T) {
	h := newHarness(t, fixture.Sample())
	assert.ElementsMatch(t, []string{
		ToolState, ToolApps, ToolSwitch, ToolLaunch, ToolClipboard, ToolWait, ToolPowershell,
		ToolClick, ToolType, ToolScroll, ToolDrag, ToolMove, ToolShortcut, ToolKey,
	}, h.srv.Tools())
}

func TestStateTool_Text(t *testing.T) {
	h := newHarness(t, fixture.Sample())
	text, res := h.call(t, ToolState, nil)
	assert.False(t, res.IsError)
	assert.Len(t, res.Content, 1)
	assert.True(t, strings.HasPrefix(text, "Focused App:\n\"Untitled - Notepad\""), text)
	assert.Contains(t, text, `[1] Button "Save" app="Untitled - Notepad" at (160,132) bounds (120,120,80,24)`)
	assert.Contains(t, text, "scroll=vertical")
	assert.NotContains(t, text, "Start")
	assert.NotContains(t, text, "Stop recording")

	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ToolCalls.WithLabelValues(ToolState, metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Captures.WithLabelValues(metrics.OutcomeOK)))
}

func TestStateTool_JSON(t *testing.T) {
	h := newHarness(t, fixture.Sample())
	text, _ := h.call(t, ToolState, map[string]any{"format": "json"})
	assert.Contains(t, text, `"interactive": [`)
	assert.Contains(t, text, `"coordinate_space": "physical-virtual-screen"`)
}

func TestStateTool_Vision(t *testing.T) {
	h := newHarness(t, fixture.Sample())
	_, res := h.call(t, ToolState, map[string]any{"use_vision": true, "annotate": true})
	require.Len(t, res.Content, 2)
	img, ok := res.Content[1].(mcp.ImageContent)
	require.True(t, ok, "second content is %T", res.Content[1])
	assert.Equal(t, "image/png", img.MIMEType)
	data, err := base64.StdEncoding.DecodeString(img.Data)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(data[:4]))
}

func TestStateTool_VisionUnavailable(t *testing.T) {
	fx := fixture.Sample()
	fx.NoScreenshot = true
	h := newHarness(t, fx)
	text, res := h.call(t, ToolState, map[string]any{"use_vision": true})
	assert.True(t, res.IsError)
	assert.True(t, strings.HasPrefix(text, "Unable to capture desktop state: desktop state unavailable"), text)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ToolCalls.WithLabelValues(ToolState, metrics.OutcomeError)))
}

func TestStateTool_Timeout(t *testing.T) {
	fx := fixture.Sample()
	fx.CaptureDelay = time.Second
	p, _ := fx.Provider()
	policy := snapshot.DefaultPolicy()
	policy.Timeout = 20 * time.Millisecond
	srv := New(desktop.NewSession(desktop.NewNative(p, policy), zerolog.Nop(), nil), Options{})

	res, err := srv.Call(context.Background(), ToolState, nil)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "capture timed out")
}

func TestStateTool_Unsupported(t *testing.T) {
	srv := New(desktop.NewSession(desktop.Unsupported{Reason: platform.ErrUnsupported}, zerolog.Nop(), nil), Options{})
	res, err := srv.Call(context.Background(), ToolState, nil)
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "Unable to capture desktop state")
}

func TestStateTool_BadFormat(t *testing.T) {
	h := newHarness(t, fixture.Sample())
	text, res := h.call(t, ToolState, map[string]any{"format": "xml"})
	assert.True(t, res.IsError)
	assert.Contains(t, text, "Invalid arguments")
}

func TestAppsAndSwitch(t *testing.T) {
	h := newHarness(t, fixture.Sample())
	text, _ := h.call(t, ToolApps, nil)
	lines := strings.Split(text, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "focused"))
	assert.Contains(t, lines[2], "status=minimized")

	text, res := h.call(t, ToolSwitch, map[string]any{"name": "calc"})
	assert.False(t, res.IsError)
	assert.Equal(t, `Switched to "Calculator".`, text)

	text, _ = h.call(t, ToolState, nil)
	assert.True(t, strings.HasPrefix(text, "Focused App:\n\"Calculator\""), text)

	text, res = h.call(t, ToolSwitch, map[string]any{"name": "paint"})
	assert.True(t, res.IsError)
	assert.Contains(t, text, "no matching app")

	_, res = h.call(t, ToolSwitch, map[string]any{})
	assert.True(t, res.IsError)
}

func TestLaunchClipboardPowershell(t *testing.T) {
	h := newHarness(t, fixture.Sample())

	_, res := h.call(t, ToolLaunch, map[string]any{"name": "notepad"})
	assert.False(t, res.IsError)
	assert.Equal(t, []string{"notepad"}, h.backend.Launched())

	text, _ := h.call(t, ToolClipboard, map[string]any{"mode": "paste"})
	assert.Equal(t, "Clipboard content:\nhello from the clipboard", text)
	_, res = h.call(t, ToolClipboard, map[string]any{"mode": "copy", "text": "abc"})
	assert.False(t, res.IsError)
	text, _ = h.call(t, ToolClipboard, map[string]any{"mode": "paste"})
	assert.Equal(t, "Clipboard content:\nabc", text)
	_, res = h.call(t, ToolClipboard, map[string]any{"mode": "copy"})
	assert.True(t, res.IsError)

	text, _ = h.call(t, ToolPowershell, map[string]any{"command": "Get-Date -Format yyyy"})
	assert.Equal(t, "Response: 2026\nStatus Code: 0", text)
	text, _ = h.call(t, ToolPowershell, map[string]any{"command": "Get-Nothing"})
	assert.Contains(t, text, "Status Code: 1")
}

func TestWaitTool(t *testing.T) {
	h := newHarness(t, fixture.Sample())
	text, res := h.call(t, ToolWait, map[string]any{"duration": 0.01})
	assert.False(t, res.IsError)
	assert.Equal(t, "Waited for 0.01 seconds.", text)

	text, res = h.call(t, ToolWait, map[string]any{"duration": 0})
	assert.False(t, res.IsError)
	assert.Equal(t, "Waited for 0 seconds.", text)

	_, res = h.call(t, ToolWait, map[string]any{"duration": -1})
	assert.True(t, res.IsError)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := h.srv.Call(ctx, ToolWait, map[string]any{"duration": 10})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestInputTools(t *testing.T) {
	h := newHarness(t, fixture.Sample())
	calls := []struct {
		tool string
		args map[string]any
	}{
		{ToolClick, map[string]any{"loc": []any{160, 132}}},
		{ToolClick, map[string]any{"loc": []any{10, 10}, "button": "right", "clicks": 2}},
		{ToolType, map[string]any{"loc": []any{500, 400}, "text": "hi", "clear": true}},
		{ToolScroll, map[string]any{"direction": "down", "wheel_times": 3}},
		{ToolScroll, map[string]any{"loc": []any{5, 5}, "type": "horizontal", "direction": "left"}},
		{ToolDrag, map[string]any{"from_loc": []any{1, 2}, "to_loc": []any{3, 4}}},
		{ToolMove, map[string]any{"to_loc": []any{7, 8}}},
		{ToolShortcut, map[string]any{"shortcut": []any{"Ctrl", "S"}}},
		{ToolKey, map[string]any{"key": "enter"}},
		{ToolKey, map[string]any{"key": "+"}},
		{ToolKey, map[string]any{"key": "ctrl++"}},
	}
	for _, c := range calls {
		text, res := h.call(t, c.tool, c.args)
		assert.False(t, res.IsError, "%s: %s", c.tool, text)
	}
	assert.Equal(t, []string{
		"click 160,132 left x1",
		"click 10,10 right x2",
		`type 500,400 "hi" clear=true`,
		"scroll 960,540 vertical down x3",
		"scroll 5,5 horizontal left x1",
		"drag 1,2 -> 3,4",
		"move 7,8",
		"keys ctrl+s",
		"keys enter",
		"keys +",
		"keys ctrl++",
	}, h.backend.Events())
}

func TestInputTools_Validation(t *testing.T) {
	h := newHarness(t, fixture.Sample())
	bad := []struct {
		tool string
		args map[string]any
		want string
	}{
		{ToolClick, map[string]any{"loc": []any{1}}, "loc must be [x, y]"},
		{ToolClick, map[string]any{"loc": []any{1, 1}, "clicks": 4}, "clicks must be"},
		{ToolClick, map[string]any{"loc": []any{1, 1}, "button": "thumb"}, "unknown mouse button"},
		{ToolClick, map[string]any{"loc": []any{5000, 1}}, "outside the virtual screen"},
		{ToolScroll, map[string]any{"direction": "left"}, "invalid vertical scroll direction"},
		{ToolDrag, map[string]any{"from_loc": []any{1, 1}, "to_loc": []any{-5, 1}}, "outside the virtual screen"},
		{ToolShortcut, map[string]any{"shortcut": []any{}}, "at least one key"},
		{ToolKey, map[string]any{"key": "ctrl+"}, "empty key"},
		{ToolType, map[string]any{"loc": []any{1, 1}}, "text is required"},
	}
	for _, c := range bad {
		text, res := h.call(t, c.tool, c.args)
		assert.True(t, res.IsError, c.tool)
		assert.Contains(t, text, c.want, c.tool)
	}
	assert.Empty(t, h.backend.Events())
}

func TestInputTools_NoInputter(t *testing.T) {
	p, _ := fixture.Sample().Provider()
	p.Inputter = nil
	srv := New(desktop.NewSession(desktop.NewNative(p, snapshot.DefaultPolicy()), zerolog.Nop(), nil), Options{})
	res, err := srv.Call(context.Background(), ToolClick, map[string]any{"loc": []any{1, 1}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, errNoInput.Error())
}

func TestCall_UnknownTool(t *testing.T) {
	h := newHarness(t, fixture.Sample())
	_, err := h.srv.Call(context.Background(), "Nope-Tool", nil)
	assert.Error(t, err)
}

func TestHandler_Routes(t *testing.T) {
	h := newHarness(t, fixture.Sample())
	ts := httptest.NewServer(h.srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)

	_, _ = h.srv.Call(context.Background(), ToolApps, nil)
	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "windows_mcp_tool_calls_total")

	srv := New(desktop.NewSession(desktop.Unsupported{}, zerolog.Nop(), nil), Options{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServeHTTP_Shutdown(t *testing.T) {
	h := newHarness(t, fixture.Sample())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.srv.ServeHTTP(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
