package messaging

import (
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-worldsync/internal/entity"
	"github.com/pixil98/go-worldsync/internal/store"
	"github.com/vmihailenco/msgpack/v5"
)

func decodeTree(t *testing.T, b []byte) entity.Tree {
	t.Helper()
	var tree entity.Tree
	if err := msgpack.Unmarshal(b, &tree); err != nil {
		t.Fatalf("decoding tree: %v", err)
	}
	return tree
}

func TestClient_ReceivesChangesForQuery(t *testing.T) {
	srv, rs := startBroker(t)

	c, err := Dial(srv.ClientURL(), testPrefix)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	defer c.Close()

	if _, err := c.Subscribe(store.InChunk(entity.TableTree, 3)); err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	if err := c.Flush(); err != nil {
		t.Fatalf("flushing: %v", err)
	}

	inView := entity.Tree{ID: 1, ChunkIndex: 3, Health: 100}
	outOfView := entity.Tree{ID: 2, ChunkIndex: 4, Health: 100}
	if err := rs.Insert(entity.TableTree, outOfView); err != nil {
		t.Fatalf("inserting: %v", err)
	}
	if err := rs.Insert(entity.TableTree, inView); err != nil {
		t.Fatalf("inserting: %v", err)
	}

	ev := nextEvent(t, c.Events())
	testutil.AssertEqual(t, "op", ev.Op, store.OpInsert)
	testutil.AssertEqual(t, "row", decodeTree(t, ev.New), inView)

	hit := inView
	hit.Health = 70
	if err := rs.Update(entity.TableTree, hit); err != nil {
		t.Fatalf("updating: %v", err)
	}
	ev = nextEvent(t, c.Events())
	testutil.AssertEqual(t, "op", ev.Op, store.OpUpdate)
	testutil.AssertEqual(t, "old", decodeTree(t, ev.Old), inView)
	testutil.AssertEqual(t, "new", decodeTree(t, ev.New), hit)

	if err := rs.Delete(entity.TableTree, hit); err != nil {
		t.Fatalf("deleting: %v", err)
	}
	ev = nextEvent(t, c.Events())
	testutil.AssertEqual(t, "op", ev.Op, store.OpDelete)
	testutil.AssertEqual(t, "deleted", decodeTree(t, ev.Old), hit)

	expectNoEvent(t, c.Events())
}

func TestClient_ReplaysExistingRows(t *testing.T) {
	srv, rs := startBroker(t)

	def := entity.ItemDefinition{ID: 9, Name: "Wood"}
	if err := rs.Insert(entity.TableItemDefinition, def); err != nil {
		t.Fatalf("inserting: %v", err)
	}
	if err := rs.Insert(entity.TableTree, entity.Tree{ID: 5, ChunkIndex: 0}); err != nil {
		t.Fatalf("inserting: %v", err)
	}

	c, err := Dial(srv.ClientURL(), testPrefix)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	defer c.Close()

	if _, err := c.Subscribe(store.All(entity.TableItemDefinition)); err != nil {
		t.Fatalf("subscribing: %v", err)
	}

	ev := nextEvent(t, c.Events())
	testutil.AssertEqual(t, "op", ev.Op, store.OpInsert)
	testutil.AssertEqual(t, "table", ev.Table, entity.TableItemDefinition)

	var got entity.ItemDefinition
	if err := msgpack.Unmarshal(ev.New, &got); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	testutil.AssertEqual(t, "row", got, def)

	expectNoEvent(t, c.Events())
}

func TestClient_UnsubscribeIsIdempotent(t *testing.T) {
	srv, rs := startBroker(t)

	c, err := Dial(srv.ClientURL(), testPrefix)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	defer c.Close()

	h, err := c.Subscribe(store.InChunk(entity.TableStone, 1))
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}

	if err := h.Unsubscribe(); err != nil {
		t.Fatalf("first unsubscribe: %v", err)
	}
	if err := h.Unsubscribe(); err != nil {
		t.Fatalf("second unsubscribe: %v", err)
	}
	if err := c.Flush(); err != nil {
		t.Fatalf("flushing: %v", err)
	}

	if err := rs.Insert(entity.TableStone, entity.Stone{ID: 1, ChunkIndex: 1}); err != nil {
		t.Fatalf("inserting: %v", err)
	}
	expectNoEvent(t, c.Events())

	c.Close()
	h2, err := c.Subscribe(store.InChunk(entity.TableStone, 2))
	testutil.AssertEqual(t, "subscribe after close", h2 == nil, true)
	testutil.AssertErrorContains(t, err, "subscribing to world.stone.chunk_index.2")
}
