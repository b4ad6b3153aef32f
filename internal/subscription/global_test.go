package subscription

import (
	"context"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestGlobal_RegisterOnce(t *testing.T) {
	ctx := context.Background()
	sub := newRecordingSubscriber()
	g := NewGlobal([]string{"item_definition", "player"})

	testutil.AssertEqual(t, "first register", g.Register(ctx, sub), true)
	testutil.AssertEqual(t, "second register", g.Register(ctx, sub), false)
	testutil.AssertEqual(t, "subscriptions", len(sub.subscribed), 2)
	testutil.AssertEqual(t, "first table", sub.subscribed[0].Table, "item_definition")
	testutil.AssertEqual(t, "unfiltered", sub.subscribed[0].Filter == nil, true)

	g.Reset(ctx)
	g.Reset(ctx)
	testutil.AssertEqual(t, "unsubscribed", len(sub.unsubscribed), 2)
	testutil.AssertEqual(t, "registered after reset", g.Registered(), false)

	testutil.AssertEqual(t, "register after reset", g.Register(ctx, sub), true)
	testutil.AssertEqual(t, "subscriptions after reset", len(sub.subscribed), 4)
}

func TestGlobal_PartialFailure(t *testing.T) {
	sub := newRecordingSubscriber("recipe")
	g := NewGlobal([]string{"item_definition", "recipe", "player"})

	g.Register(context.Background(), sub)

	testutil.AssertEqual(t, "registered", g.Registered(), true)
	testutil.AssertEqual(t, "handles", g.Handles(), 2)
}
