// Package rpc bridges the privileged host process and the sandboxed
// editor UI. Calls travel as JSON-RPC over a duplex stream, which gives
// per-call-id correlation: concurrent calls of the same command resolve
// independently, and closing the stream rejects everything in flight.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jadenj13/gitpress/internals/gh"
)

// Handler executes one command. Returned errors are classified and
// shipped to the caller inside the result envelope; they never become
// transport-level failures.
type Handler func(ctx context.Context, params json.RawMessage) (any, error)

// Registry maps command names to handlers. Exactly one handler may serve
// a command.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

func (r *Registry) Register(command string, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.handlers[command]; dup {
		return fmt.Errorf("rpc: handler for %q already registered", command)
	}
	r.handlers[command] = h
	return nil
}

func (r *Registry) lookup(command string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[command]
	return h, ok
}

// Handle registers a handler with typed params and result. Malformed
// params surface to the caller as an UNKNOWN failure, not a decode
// panic.
func Handle[P, R any](r *Registry, command string, fn func(context.Context, P) (R, error)) error {
	return r.Register(command, func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params P
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &params); err != nil {
				return nil, &gh.Error{
					Kind:    gh.KindUnknown,
					Message: fmt.Sprintf("bad params for %s: %v", command, err),
				}
			}
		}
		return fn(ctx, params)
	})
}

// Result is the wire envelope for every response: exactly one of Data
// and Error is populated.
type Result struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error *gh.Error       `json:"error,omitempty"`
}
