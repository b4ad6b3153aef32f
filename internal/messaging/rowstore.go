package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-worldsync/internal/store"
	"github.com/vmihailenco/msgpack/v5"
)

// Row is a record the dev store can hold.
type Row interface {
	Key() string
}

type chunked interface {
	Chunk() uint32
}

type storedRow struct {
	partition *store.Filter
	data      msgpack.RawMessage
}

// RowStore is an in-memory authoritative store. It retains the current rows
// of every table, publishes each change on the row's subject and answers
// subscribe requests by replaying matching rows. It backs the embedded dev
// broker and integration tests.
type RowStore struct {
	conn     *nats.Conn
	subjects Subjects
	ready    chan struct{}

	mu   sync.Mutex
	rows map[string]map[string]storedRow
}

func NewRowStore(conn *nats.Conn, prefix string) *RowStore {
	return &RowStore{
		conn:     conn,
		subjects: Subjects{Prefix: prefix},
		ready:    make(chan struct{}),
		rows:     map[string]map[string]storedRow{},
	}
}

func partitionOf(row any) *store.Filter {
	if c, ok := row.(chunked); ok {
		return &store.Filter{Column: store.ChunkColumn, Value: int64(c.Chunk())}
	}
	return nil
}

func encodeRow(table string, row any) (msgpack.RawMessage, error) {
	b, err := msgpack.Marshal(row)
	if err != nil {
		return nil, fmt.Errorf("encoding %s row: %w", table, err)
	}
	return b, nil
}

// Insert stores row and publishes an insert.
func (s *RowStore) Insert(table string, row Row) error {
	data, err := encodeRow(table, row)
	if err != nil {
		return err
	}
	return s.write(store.OpInsert, table, row.Key(), partitionOf(row), data)
}

// Update replaces the row with row's key and publishes an update.
func (s *RowStore) Update(table string, row Row) error {
	data, err := encodeRow(table, row)
	if err != nil {
		return err
	}
	return s.write(store.OpUpdate, table, row.Key(), partitionOf(row), data)
}

// Delete removes the row with row's key and publishes a delete.
func (s *RowStore) Delete(table string, row Row) error {
	return s.write(store.OpDelete, table, row.Key(), nil, nil)
}

// Len is the number of rows held for table.
func (s *RowStore) Len(table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.rows[table])
}

func (s *RowStore) write(op store.Op, table, key string, partition *store.Filter, data msgpack.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.rows[table]
	if !ok {
		rows = map[string]storedRow{}
		s.rows[table] = rows
	}
	prev, existed := rows[key]

	switch op {
	case store.OpInsert:
		if existed {
			return fmt.Errorf("%s row %q: %w", table, key, ErrRowExists)
		}
		rows[key] = storedRow{partition: partition, data: data}
		return s.publish(s.subjects.Row(table, partition), store.Event{Op: op, Table: table, New: data})

	case store.OpUpdate:
		if !existed {
			return fmt.Errorf("%s row %q: %w", table, key, ErrRowNotFound)
		}
		rows[key] = storedRow{partition: partition, data: data}
		ev := store.Event{Op: op, Table: table, Old: prev.data, New: data}
		if err := s.publish(s.subjects.Row(table, prev.partition), ev); err != nil {
			return err
		}
		// A row that changed partition must also reach watchers of the new one.
		if !samePartition(prev.partition, partition) {
			return s.publish(s.subjects.Row(table, partition), ev)
		}
		return nil

	case store.OpDelete:
		if !existed {
			return fmt.Errorf("%s row %q: %w", table, key, ErrRowNotFound)
		}
		delete(rows, key)
		return s.publish(s.subjects.Row(table, prev.partition), store.Event{Op: op, Table: table, Old: prev.data})

	default:
		return fmt.Errorf("%w: %s", store.ErrUnknownOp, op)
	}
}

func samePartition(a, b *store.Filter) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *RowStore) publish(subject string, ev store.Event) error {
	b, err := ev.Encode()
	if err != nil {
		return err
	}
	if err := s.conn.Publish(subject, b); err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}
	return nil
}

// Start answers subscribe and write requests until ctx is cancelled.
func (s *RowStore) Start(ctx context.Context) error {
	subReq, err := s.conn.Subscribe(s.subjects.Subscribe(), func(msg *nats.Msg) {
		var req SubscribeRequest
		if err := msgpack.Unmarshal(msg.Data, &req); err != nil {
			slog.WarnContext(ctx, "decoding subscribe request", "error", err)
			return
		}
		if err := s.replay(req.Query); err != nil {
			slog.WarnContext(ctx, "replaying rows", "query", req.Query.String(), "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", s.subjects.Subscribe(), err)
	}
	defer func() { _ = subReq.Unsubscribe() }()

	writeReq, err := s.conn.Subscribe(s.subjects.Write(), func(msg *nats.Msg) {
		var req WriteRequest
		if err := msgpack.Unmarshal(msg.Data, &req); err != nil {
			slog.WarnContext(ctx, "decoding write request", "error", err)
			return
		}
		if err := s.write(req.Op, req.Table, req.Key, req.Partition, req.Row); err != nil {
			slog.WarnContext(ctx, "writing row", "table", req.Table, "key", req.Key, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", s.subjects.Write(), err)
	}
	defer func() { _ = writeReq.Unsubscribe() }()

	if err := s.conn.Flush(); err != nil {
		return fmt.Errorf("flushing store subscriptions: %w", err)
	}
	close(s.ready)

	<-ctx.Done()
	return nil
}

// Ready is closed once the store is answering requests.
func (s *RowStore) Ready() <-chan struct{} {
	return s.ready
}

// replay publishes every row matching q as an insert on q's subject.
func (s *RowStore) replay(q store.Query) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subject := s.subjects.Query(q)
	for _, r := range s.rows[q.Table] {
		if !q.Matches(q.Table, r.partition) {
			continue
		}
		target := subject
		if q.Filter == nil {
			target = s.subjects.Row(q.Table, r.partition)
		}
		if err := s.publish(target, store.Event{Op: store.OpInsert, Table: q.Table, New: r.data}); err != nil {
			return err
		}
	}
	return nil
}
