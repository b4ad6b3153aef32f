package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-worldsync/internal/store"
)

const testPrefix = "world"

// startBroker runs an embedded server and a RowStore on it for the duration
// of the test.
func startBroker(t *testing.T) (*NatsServer, *RowStore) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	srv, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}
	srvDone := make(chan struct{})
	go func() {
		defer close(srvDone)
		if err := srv.Start(ctx); err != nil {
			t.Errorf("server: %v", err)
		}
	}()
	select {
	case <-srv.Ready():
	case <-time.After(5 * time.Second):
		t.Fatalf("server not ready")
	}

	conn, err := nats.Connect(srv.ClientURL())
	if err != nil {
		t.Fatalf("connecting store: %v", err)
	}
	rs := NewRowStore(conn, testPrefix)
	go func() {
		if err := rs.Start(ctx); err != nil {
			t.Errorf("row store: %v", err)
		}
	}()
	select {
	case <-rs.Ready():
	case <-time.After(5 * time.Second):
		t.Fatalf("row store not ready")
	}

	t.Cleanup(func() {
		cancel()
		conn.Close()
		<-srvDone
	})
	return srv, rs
}

func nextEvent(t *testing.T, events <-chan store.Event) store.Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for event")
	}
	return store.Event{}
}

func expectNoEvent(t *testing.T, events <-chan store.Event) {
	t.Helper()
	select {
	case ev := <-events:
		t.Fatalf("unexpected %s event for %s", ev.Op, ev.Table)
	case <-time.After(100 * time.Millisecond):
	}
}
