package subscription

import (
	"errors"

	"github.com/pixil98/go-worldsync/internal/store"
)

var errRejected = errors.New("query rejected")

// recordingSubscriber records every query and can be told to reject tables.
type recordingSubscriber struct {
	fail map[string]bool

	subscribed   []store.Query
	unsubscribed []store.Query
}

func newRecordingSubscriber(fail ...string) *recordingSubscriber {
	r := &recordingSubscriber{fail: map[string]bool{}}
	for _, t := range fail {
		r.fail[t] = true
	}
	return r
}

func (r *recordingSubscriber) Subscribe(q store.Query) (store.Handle, error) {
	if r.fail[q.Table] {
		return nil, errRejected
	}
	r.subscribed = append(r.subscribed, q)
	return &recordingHandle{owner: r, query: q}, nil
}

func (r *recordingSubscriber) reset() {
	r.subscribed = nil
	r.unsubscribed = nil
}

type recordingHandle struct {
	owner *recordingSubscriber
	query store.Query
	done  bool
}

func (h *recordingHandle) Query() store.Query {
	return h.query
}

func (h *recordingHandle) Unsubscribe() error {
	if h.done {
		return errors.New("already unsubscribed")
	}
	h.done = true
	h.owner.unsubscribed = append(h.owner.unsubscribed, h.query)
	return nil
}

// recordingEvictor records evicted chunks.
type recordingEvictor struct {
	evicted []uint32
}

func (e *recordingEvictor) EvictChunk(idx uint32) int {
	e.evicted = append(e.evicted, idx)
	return 0
}

func chunksOf(qs []store.Query) map[int64]int {
	out := map[int64]int{}
	for _, q := range qs {
		if q.Filter != nil {
			out[q.Filter.Value]++
		}
	}
	return out
}
