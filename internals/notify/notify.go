// Package notify fans user-facing feedback out to whoever is listening:
// the webview (as toasts) and, optionally, a Slack channel.
package notify

import (
	"context"

	"github.com/jadenj13/gitpress/internals/rpc"
)

type Notifier interface {
	Success(ctx context.Context, message string)
	Error(ctx context.Context, message string)
}

// Toaster pushes show_success/show_error notifications over the RPC
// bridge.
type Toaster struct {
	server *rpc.Server
}

func NewToaster(server *rpc.Server) *Toaster {
	return &Toaster{server: server}
}

func (t *Toaster) Success(ctx context.Context, message string) {
	t.server.Notify(ctx, rpc.NotifyShowSuccess, rpc.ToastParams{Message: message})
}

func (t *Toaster) Error(ctx context.Context, message string) {
	t.server.Notify(ctx, rpc.NotifyShowError, rpc.ToastParams{Message: message})
}

// Multi forwards to every notifier in order.
type Multi []Notifier

func (m Multi) Success(ctx context.Context, message string) {
	for _, n := range m {
		n.Success(ctx, message)
	}
}

func (m Multi) Error(ctx context.Context, message string) {
	for _, n := range m {
		n.Error(ctx, message)
	}
}
