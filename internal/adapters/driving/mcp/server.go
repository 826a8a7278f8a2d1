package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/cookbook/internal/logger"
)

// Version is reported to clients in the initialise handshake.
const Version = "0.1.0"

// implementationName identifies the server to MCP clients.
const implementationName = "cookbook"

// shutdownTimeout bounds how long in-flight tool calls get after cancellation.
const shutdownTimeout = 10 * time.Second

// Server exposes recipe import and reference lookups as MCP tools and
// resources. The same server answers over stdio and streamable HTTP.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer registers the tools the given ports can back.
// Optional ports that are nil leave their tools unregistered.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    implementationName,
			Version: Version,
		}, nil),
	}
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves a single client on stdin/stdout until ctx ends or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler serves the MCP streamable HTTP transport. Every session shares
// the one server and so the same ports.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP listens on addr until ctx is cancelled, then drains open
// sessions for up to shutdownTimeout. A listen failure is returned.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("MCP listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mcp serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("mcp shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
