package subscription

import (
	"context"
	"log/slog"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldsync/internal/chunk"
	"github.com/pixil98/go-worldsync/internal/store"
)

// Evictor drops cached rows of a chunk that has left view.
type Evictor interface {
	EvictChunk(uint32) int
}

// Churn counts the work one viewport application caused.
type Churn struct {
	// Added and Removed count chunks.
	Added   int
	Removed int
	// Subscribed and Unsubscribed count individual queries.
	Subscribed   int
	Unsubscribed int
}

func (c Churn) Empty() bool {
	return c == Churn{}
}

// Spatial keeps one group of per-table subscriptions for every chunk in view.
type Spatial struct {
	tables  []string
	evictor Evictor
	sub     store.Subscriber

	current chunk.Set
	handles map[uint32][]store.Handle
}

// NewSpatial builds a diff engine subscribing tables per chunk. evictor may
// be nil when the store itself emits deletes for rows leaving a query.
func NewSpatial(tables []string, evictor Evictor) *Spatial {
	return &Spatial{
		tables:  tables,
		evictor: evictor,
		current: chunk.Set{},
		handles: map[uint32][]store.Handle{},
	}
}

// Bind sets the subscriber used for the connection now active.
func (s *Spatial) Bind(sub store.Subscriber) {
	s.sub = sub
}

// Apply moves the subscribed chunk set to next, touching only the chunks that
// entered or left it. Failures are logged; a chunk is kept with whatever
// subscriptions succeeded.
func (s *Spatial) Apply(ctx context.Context, next chunk.Set) Churn {
	var churn Churn

	if s.sub == nil {
		slog.WarnContext(ctx, "applying viewport without a connection", "chunks", next.Len())
		return churn
	}

	if next.Len() == 0 {
		if s.current.Len() == 0 {
			return churn
		}
		for _, idx := range s.current.Sorted() {
			churn.Unsubscribed += s.release(ctx, idx)
			churn.Removed++
		}
		s.current = chunk.Set{}
		return churn
	}

	added := next.Difference(s.current)
	removed := s.current.Difference(next)
	if added.Len() == 0 && removed.Len() == 0 {
		return churn
	}

	for _, idx := range removed.Sorted() {
		churn.Unsubscribed += s.release(ctx, idx)
		churn.Removed++
	}

	for _, idx := range added.Sorted() {
		churn.Subscribed += s.subscribe(ctx, idx)
		churn.Added++
	}

	s.current = next.Clone()

	slog.DebugContext(ctx, "applied viewport",
		"chunks", s.current.Len(),
		"added", churn.Added,
		"removed", churn.Removed,
	)
	return churn
}

func (s *Spatial) subscribe(ctx context.Context, idx uint32) int {
	handles := make([]store.Handle, 0, len(s.tables))
	for _, table := range s.tables {
		q := store.InChunk(table, idx)
		h, err := s.sub.Subscribe(q)
		if err != nil {
			slog.WarnContext(ctx, "subscribing", "query", q.String(), "error", err)
			continue
		}
		handles = append(handles, h)
	}
	s.handles[idx] = handles
	return len(handles)
}

func (s *Spatial) release(ctx context.Context, idx uint32) int {
	handles := s.handles[idx]
	delete(s.handles, idx)

	el := errors.NewErrorList()
	for _, h := range handles {
		el.Add(h.Unsubscribe())
	}
	if err := el.Err(); err != nil {
		slog.WarnContext(ctx, "releasing chunk", "chunk", idx, "error", err)
	}
	if s.evictor != nil {
		s.evictor.EvictChunk(idx)
	}
	return len(handles)
}

// Active reports whether idx is in the subscribed set.
func (s *Spatial) Active(idx uint32) bool {
	return s.current.Contains(idx)
}

// Chunks returns a copy of the subscribed set.
func (s *Spatial) Chunks() chunk.Set {
	return s.current.Clone()
}

// Handles is the number of live spatial subscriptions.
func (s *Spatial) Handles() int {
	n := 0
	for _, hs := range s.handles {
		n += len(hs)
	}
	return n
}

// Reset releases every subscription and forgets the subscriber. It is safe to
// call repeatedly.
func (s *Spatial) Reset(ctx context.Context) {
	for _, idx := range s.current.Sorted() {
		s.release(ctx, idx)
	}
	s.current = chunk.Set{}
	s.handles = map[uint32][]store.Handle{}
	s.sub = nil
}
