package subscription

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldsync/internal/store"
)

// Global holds the position-independent queries, registered once per
// connection.
type Global struct {
	tables []string

	registered bool
	handles    []store.Handle
}

func NewGlobal(tables []string) *Global {
	return &Global{tables: tables}
}

// Register subscribes every table unless that already happened for the
// current connection. It reports whether registration ran.
func (g *Global) Register(ctx context.Context, sub store.Subscriber) bool {
	if g.registered {
		return false
	}
	g.registered = true

	for _, table := range g.tables {
		q := store.All(table)
		h, err := sub.Subscribe(q)
		if err != nil {
			slog.WarnContext(ctx, "subscribing", "query", q.String(), "error", err)
			continue
		}
		g.handles = append(g.handles, h)
	}

	slog.DebugContext(ctx, "registered global subscriptions", "count", len(g.handles))
	return true
}

func (g *Global) Registered() bool {
	return g.registered
}

func (g *Global) Handles() int {
	return len(g.handles)
}

// Reset releases every subscription and clears the registered latch so the
// next connection registers again. It is safe to call repeatedly.
func (g *Global) Reset(ctx context.Context) {
	el := errors.NewErrorList()
	for _, h := range g.handles {
		el.Add(h.Unsubscribe())
	}
	if err := el.Err(); err != nil {
		slog.WarnContext(ctx, "releasing global subscriptions", "error", err)
	}
	g.handles = nil
	g.registered = false
}
