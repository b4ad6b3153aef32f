package store

import (
	"fmt"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
)

// ChunkColumn is the partition key every spatial table is filtered on.
const ChunkColumn = "chunk_index"

// Query selects one table, optionally narrowed by an equality filter on a
// partition key.
type Query struct {
	Table  string  `msgpack:"table"`
	Filter *Filter `msgpack:"filter,omitempty"`
}

type Filter struct {
	Column string `msgpack:"column"`
	Value  int64  `msgpack:"value"`
}

// All selects every row of a table.
func All(table string) Query {
	return Query{Table: table}
}

// InChunk selects the rows of a table that live in the given chunk.
func InChunk(table string, idx uint32) Query {
	return Query{Table: table, Filter: &Filter{Column: ChunkColumn, Value: int64(idx)}}
}

func (q Query) String() string {
	if q.Filter == nil {
		return fmt.Sprintf("SELECT * FROM %s", q.Table)
	}
	return fmt.Sprintf("SELECT * FROM %s WHERE %s = %s", q.Table, q.Filter.Column, strconv.FormatInt(q.Filter.Value, 10))
}

// Matches reports whether a row published under the given partition would be
// selected by q. A nil partition marks a row of an unpartitioned table.
func (q Query) Matches(table string, partition *Filter) bool {
	if q.Table != table {
		return false
	}
	if q.Filter == nil {
		return true
	}
	return partition != nil && *partition == *q.Filter
}

// Handle is one active query. Unsubscribe must be safe to call more than once.
type Handle interface {
	Query() Query
	Unsubscribe() error
}

// Subscriber creates queries against the remote store. Rows selected by the
// query are delivered as Events on the store's ordered event stream.
type Subscriber interface {
	Subscribe(Query) (Handle, error)
}

// Op is the kind of row change.
type Op uint8

const (
	OpInsert Op = iota + 1
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// Event is a single row change. Old is set for updates and deletes, New for
// inserts and updates. Rows are msgpack encoded.
type Event struct {
	Op    Op                 `msgpack:"op"`
	Table string             `msgpack:"table"`
	Old   msgpack.RawMessage `msgpack:"old,omitempty"`
	New   msgpack.RawMessage `msgpack:"new,omitempty"`
}

func (e Event) Validate() error {
	switch e.Op {
	case OpInsert:
		if len(e.New) == 0 {
			return ErrMissingRow
		}
	case OpUpdate:
		if len(e.Old) == 0 || len(e.New) == 0 {
			return ErrMissingRow
		}
	case OpDelete:
		if len(e.Old) == 0 {
			return ErrMissingRow
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOp, e.Op)
	}
	if e.Table == "" {
		return ErrMissingTable
	}
	return nil
}

// Encode marshals the event for the wire.
func (e Event) Encode() ([]byte, error) {
	b, err := msgpack.Marshal(&e)
	if err != nil {
		return nil, fmt.Errorf("encoding %s event for %s: %w", e.Op, e.Table, err)
	}
	return b, nil
}

// DecodeEvent unmarshals and validates an event read off the wire.
func DecodeEvent(data []byte) (Event, error) {
	var e Event
	if err := msgpack.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("decoding event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Insert builds an insert event for row.
func Insert(table string, row any) (Event, error) {
	b, err := msgpack.Marshal(row)
	if err != nil {
		return Event{}, fmt.Errorf("encoding %s row: %w", table, err)
	}
	return Event{Op: OpInsert, Table: table, New: b}, nil
}

// Update builds an update event replacing old with row.
func Update(table string, old, row any) (Event, error) {
	ob, err := msgpack.Marshal(old)
	if err != nil {
		return Event{}, fmt.Errorf("encoding %s row: %w", table, err)
	}
	nb, err := msgpack.Marshal(row)
	if err != nil {
		return Event{}, fmt.Errorf("encoding %s row: %w", table, err)
	}
	return Event{Op: OpUpdate, Table: table, Old: ob, New: nb}, nil
}

// Delete builds a delete event for row.
func Delete(table string, row any) (Event, error) {
	b, err := msgpack.Marshal(row)
	if err != nil {
		return Event{}, fmt.Errorf("encoding %s row: %w", table, err)
	}
	return Event{Op: OpDelete, Table: table, Old: b}, nil
}

// Stream is a live connection to the store: it creates queries and delivers
// every change they select on one ordered channel.
type Stream interface {
	Subscriber
	Events() <-chan Event
}
