package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-worldsync/internal/store"
)

// fakeStream records queries and lets tests push events one at a time.
type fakeStream struct {
	events chan store.Event

	mu           sync.Mutex
	subscribed   []store.Query
	unsubscribed []store.Query
}

func newFakeStream() *fakeStream {
	return &fakeStream{events: make(chan store.Event)}
}

func (f *fakeStream) Events() <-chan store.Event {
	return f.events
}

func (f *fakeStream) Subscribe(q store.Query) (store.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.subscribed = append(f.subscribed, q)
	return &fakeHandle{owner: f, query: q}, nil
}

// live is the number of handles not yet released.
func (f *fakeStream) live() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribed) - len(f.unsubscribed)
}

func (f *fakeStream) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribed), len(f.unsubscribed)
}

// liveChunks returns the chunks that still hold at least one handle.
func (f *fakeStream) liveChunks() map[int64]int {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := map[int64]int{}
	for _, q := range f.subscribed {
		if q.Filter != nil {
			out[q.Filter.Value]++
		}
	}
	for _, q := range f.unsubscribed {
		if q.Filter != nil {
			out[q.Filter.Value]--
			if out[q.Filter.Value] == 0 {
				delete(out, q.Filter.Value)
			}
		}
	}
	return out
}

type fakeHandle struct {
	owner *fakeStream
	query store.Query
	done  bool
}

func (h *fakeHandle) Query() store.Query {
	return h.query
}

func (h *fakeHandle) Unsubscribe() error {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()

	if h.done {
		return nil
	}
	h.done = true
	h.owner.unsubscribed = append(h.owner.unsubscribed, h.query)
	return nil
}

// push hands ev to the session loop and waits until it has been applied.
func push(t *testing.T, s *Session, f *fakeStream, ev store.Event) {
	t.Helper()

	select {
	case f.events <- ev:
	case <-time.After(time.Second):
		t.Fatalf("session did not take %s event for %s", ev.Op, ev.Table)
	}
	barrier(t, s)
}

// barrier returns once the loop has finished everything queued before it.
func barrier(t *testing.T, s *Session) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.do(ctx, func(context.Context) {}); err != nil {
		t.Fatalf("waiting for session: %v", err)
	}
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
