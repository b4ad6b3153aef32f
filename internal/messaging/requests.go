package messaging

import (
	"github.com/pixil98/go-worldsync/internal/store"
	"github.com/vmihailenco/msgpack/v5"
)

// SubscribeRequest asks the store to replay the rows currently matching a
// query as inserts on the query's subject.
type SubscribeRequest struct {
	ID    string      `msgpack:"id"`
	Query store.Query `msgpack:"query"`
}

// WriteRequest changes one row in the dev store.
type WriteRequest struct {
	Op        store.Op           `msgpack:"op"`
	Table     string             `msgpack:"table"`
	Key       string             `msgpack:"key"`
	Partition *store.Filter      `msgpack:"partition,omitempty"`
	Row       msgpack.RawMessage `msgpack:"row,omitempty"`
}
