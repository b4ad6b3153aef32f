package cache

import (
	"fmt"
	"sync"

	"github.com/pixil98/go-worldsync/internal/store"
	"github.com/vmihailenco/msgpack/v5"
)

// Row is a cached entity record. Differs is the kind's change filter: it
// reports whether the receiver is materially different from the other row.
type Row[R any] interface {
	Key() string
	Differs(R) bool
}

type spatialRow interface {
	Chunk() uint32
}

// Table holds the latest known row for every identity of one entity kind.
// Rows are values; an update replaces the entry, never mutates it.
type Table[R Row[R]] struct {
	name string
	gate func(uint32) bool

	mu   sync.RWMutex
	rows map[string]R
}

func NewTable[R Row[R]](name string) *Table[R] {
	return &Table[R]{
		name: name,
		rows: map[string]R{},
	}
}

func (t *Table[R]) Name() string {
	return t.name
}

// Get returns the row stored under key.
func (t *Table[R]) Get(key string) (R, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, ok := t.rows[key]
	return r, ok
}

// All returns a copy of every row, safe to iterate while the table changes.
func (t *Table[R]) All() map[string]R {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]R, len(t.rows))
	for k, v := range t.rows {
		out[k] = v
	}
	return out
}

func (t *Table[R]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.rows)
}

// Insert stores r under its key.
func (t *Table[R]) Insert(r R) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows[r.Key()] = r
}

// Update replaces the cached row with r if the change filter reports a
// material difference. An update for an identity that was never inserted is
// stored as an insert. The returned op is OpInsert, OpUpdate or zero when the
// row was left alone.
func (t *Table[R]) Update(old, r R) store.Op {
	t.mu.Lock()
	defer t.mu.Unlock()

	if old.Key() != r.Key() {
		delete(t.rows, old.Key())
	}

	existing, ok := t.rows[r.Key()]
	if !ok {
		t.rows[r.Key()] = r
		return store.OpInsert
	}
	// Compare against the cached row rather than old so that sub-threshold
	// changes cannot accumulate unseen.
	if !r.Differs(existing) {
		return 0
	}
	t.rows[r.Key()] = r
	return store.OpUpdate
}

// Delete removes the row with r's key, reporting whether one was present.
func (t *Table[R]) Delete(r R) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[r.Key()]; !ok {
		return false
	}
	delete(t.rows, r.Key())
	return true
}

// Clear drops every row.
func (t *Table[R]) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rows = map[string]R{}
}

// EvictChunk drops every row that lives in the chunk, returning the count.
// Tables of non-spatial rows are left untouched.
func (t *Table[R]) EvictChunk(idx uint32) int {
	var zero R
	if _, ok := any(zero).(spatialRow); !ok {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for k, r := range t.rows {
		if any(r).(spatialRow).Chunk() == idx {
			delete(t.rows, k)
			n++
		}
	}
	return n
}

func (t *Table[R]) admitted(r R) bool {
	if t.gate == nil {
		return true
	}
	sr, ok := any(r).(spatialRow)
	if !ok {
		return true
	}
	return t.gate(sr.Chunk())
}

// apply decodes ev and folds it into the table. It returns the effective op
// (zero when nothing changed) and the row it applied to.
func (t *Table[R]) apply(ev store.Event) (store.Op, any, error) {
	switch ev.Op {
	case store.OpInsert:
		r, err := decode[R](ev.New)
		if err != nil {
			return 0, nil, err
		}
		if !t.admitted(r) {
			return 0, nil, nil
		}
		t.Insert(r)
		return store.OpInsert, r, nil

	case store.OpUpdate:
		old, err := decode[R](ev.Old)
		if err != nil {
			return 0, nil, err
		}
		r, err := decode[R](ev.New)
		if err != nil {
			return 0, nil, err
		}
		// A row that moved into a chunk we no longer watch has left view.
		if !t.admitted(r) {
			if t.Delete(old) {
				return store.OpDelete, old, nil
			}
			return 0, nil, nil
		}
		op := t.Update(old, r)
		return op, r, nil

	case store.OpDelete:
		old, err := decode[R](ev.Old)
		if err != nil {
			return 0, nil, err
		}
		if !t.Delete(old) {
			return 0, nil, nil
		}
		return store.OpDelete, old, nil

	default:
		return 0, nil, fmt.Errorf("%w: %s", store.ErrUnknownOp, ev.Op)
	}
}

func decode[R any](b []byte) (R, error) {
	var r R
	if err := msgpack.Unmarshal(b, &r); err != nil {
		return r, fmt.Errorf("decoding row: %w", err)
	}
	return r, nil
}
