// Package server exposes a desktop session as MCP tools over stdio or the
// streamable HTTP transport.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/windows-mcp/internal/desktop"
	"github.com/mj1618/windows-mcp/internal/output"
	"github.com/mj1618/windows-mcp/internal/version"
)

const instructions = `Windows desktop automation. Call State-Tool first: it lists the focused app, ` +
	`open apps, and every interactive, informative and scrollable element with its ID and ` +
	`click coordinates. Coordinates are physical pixels on the virtual screen. State is never ` +
	`cached, so call State-Tool again after acting.`

// Options configures a Server.
type Options struct {
	Image           output.ImageOptions
	ShutdownTimeout time.Duration
}

// Server wraps the MCP server with the session it serves.
type Server struct {
	session  *desktop.Session
	opts     Options
	mcp      *mcpserver.MCPServer
	handlers map[string]mcpserver.ToolHandlerFunc
}

// New creates a server with every tool registered.
func New(session *desktop.Session, opts Options) *Server {
	if opts.Image.Format == "" {
		opts.Image = output.DefaultImageOptions()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{
		session:  session,
		opts:     opts,
		handlers: make(map[string]mcpserver.ToolHandlerFunc),
	}
	s.mcp = mcpserver.NewMCPServer(
		"windows-mcp",
		version.Version,
		mcpserver.WithInstructions(instructions),
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// ServeStdio serves MCP on in/out until ctx is done or in closes.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(s.session.Log(), "", 0))
	s.session.Log().Info().Msg("serving MCP on stdio")
	return stdio.Listen(ctx, in, out)
}

// Handler returns the HTTP routes: the MCP endpoint, metrics and a health check.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealthz)
	if m := s.session.Metrics(); m != nil {
		r.Handle("/metrics", m.Handler())
	}
	r.Handle("/mcp", mcpserver.NewStreamableHTTPServer(s.mcp))
	return r
}

// ServeHTTP listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.session.Log().Info().Str("addr", addr).Msg("serving MCP on streamable HTTP at /mcp")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, ok := s.session.Desktop().(desktop.Unsupported); ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, `{"status":"unavailable","version":%q}`+"\n", version.Version)
		return
	}
	fmt.Fprintf(w, `{"status":"ok","version":%q}`+"\n", version.Version)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.session.Log().Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}
