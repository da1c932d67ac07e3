package rpc

import (
	"context"
	"encoding/json"
	"io"

	"go.lsp.dev/jsonrpc2"
)

// NotifyFunc receives host-pushed notifications on the webview side.
type NotifyFunc func(command string, payload json.RawMessage)

// Caller is the webview side of the bridge. Each Call is correlated by
// its JSON-RPC id, so concurrent calls of the same command cannot
// satisfy each other; when the connection drops, every pending call
// returns an error instead of hanging.
type Caller struct {
	conn     jsonrpc2.Conn
	onNotify NotifyFunc
}

func NewCaller(ctx context.Context, rwc io.ReadWriteCloser, onNotify NotifyFunc) *Caller {
	c := &Caller{
		conn:     jsonrpc2.NewConn(jsonrpc2.NewStream(rwc)),
		onNotify: onNotify,
	}
	c.conn.Go(ctx, c.handle)
	return c
}

func (c *Caller) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if c.onNotify != nil {
		c.onNotify(req.Method(), req.Params())
	}
	return reply(ctx, nil, nil)
}

func (c *Caller) Close() error          { return c.conn.Close() }
func (c *Caller) Done() <-chan struct{} { return c.conn.Done() }

// Call invokes a command and decodes its result envelope. A populated
// error variant comes back as the error; transport failures (including
// disposal with the call in flight) surface unwrapped.
func Call[R any](ctx context.Context, c *Caller, command string, params any) (R, error) {
	var zero R
	var res Result
	if _, err := c.conn.Call(ctx, command, params, &res); err != nil {
		return zero, err
	}
	if res.Error != nil {
		return zero, res.Error
	}
	var out R
	if len(res.Data) > 0 {
		if err := json.Unmarshal(res.Data, &out); err != nil {
			return zero, err
		}
	}
	return out, nil
}
