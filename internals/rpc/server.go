package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"

	"go.lsp.dev/jsonrpc2"

	"github.com/jadenj13/gitpress/internals/gh"
)

// Server is the host-process side of the bridge: it dispatches incoming
// commands through a Registry and can push fire-and-forget notifications
// to the webview.
type Server struct {
	reg *Registry
	log *slog.Logger

	mu   sync.Mutex
	conn jsonrpc2.Conn
}

func NewServer(reg *Registry, log *slog.Logger) *Server {
	return &Server{reg: reg, log: log}
}

// Serve runs the connection over rwc until the stream closes or ctx is
// cancelled. In-flight calls from the peer reject when the stream goes
// away.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	// Async dispatch: a slow API call must not block other commands.
	conn.Go(ctx, jsonrpc2.AsyncHandler(s.handle))
	<-conn.Done()

	if err := conn.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	h, ok := s.reg.lookup(req.Method())
	if !ok {
		s.log.Warn("unknown command", "command", req.Method())
		return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
	}

	result, err := h(ctx, req.Params())
	if err != nil {
		apiErr := gh.Classify(err)
		s.log.Warn("command failed",
			"command", req.Method(),
			"kind", string(apiErr.Kind),
			"err", apiErr.Message,
		)
		return reply(ctx, Result{Error: apiErr}, nil)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return reply(ctx, Result{Error: &gh.Error{Kind: gh.KindUnknown, Message: err.Error()}}, nil)
	}
	return reply(ctx, Result{Data: data}, nil)
}

// Notify pushes a notification to the webview. No response is expected;
// delivery failures are logged and dropped.
func (s *Server) Notify(ctx context.Context, command string, payload any) {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return
	}
	if err := conn.Notify(ctx, command, payload); err != nil {
		s.log.Warn("notify failed", "command", command, "err", err)
	}
}
