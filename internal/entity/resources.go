package entity

import "strconv"

type Tree struct {
	ID         uint64   `json:"id" msgpack:"id"`
	Position   Position `json:"position" msgpack:"position"`
	ChunkIndex uint32   `json:"chunk_index" msgpack:"chunk_index"`
	TreeType   string   `json:"tree_type" msgpack:"tree_type"`
	Health     uint32   `json:"health" msgpack:"health"`
	RespawnAt  int64    `json:"respawn_at" msgpack:"respawn_at"`
	LastHitAt  int64    `json:"last_hit_at" msgpack:"last_hit_at"`
}

func (t Tree) Key() string { return strconv.FormatUint(t.ID, 10) }
func (t Tree) Chunk() uint32 { return t.ChunkIndex }

func (t Tree) Differs(o Tree) bool {
	return t.Position != o.Position ||
		t.Health != o.Health ||
		t.RespawnAt != o.RespawnAt ||
		t.TreeType != o.TreeType
}

type Stone struct {
	ID         uint64   `json:"id" msgpack:"id"`
	Position   Position `json:"position" msgpack:"position"`
	ChunkIndex uint32   `json:"chunk_index" msgpack:"chunk_index"`
	Health     uint32   `json:"health" msgpack:"health"`
	RespawnAt  int64    `json:"respawn_at" msgpack:"respawn_at"`
	LastHitAt  int64    `json:"last_hit_at" msgpack:"last_hit_at"`
}

func (s Stone) Key() string { return strconv.FormatUint(s.ID, 10) }
func (s Stone) Chunk() uint32 { return s.ChunkIndex }

func (s Stone) Differs(o Stone) bool {
	return s.Position != o.Position ||
		s.Health != o.Health ||
		s.RespawnAt != o.RespawnAt
}

// Resource is a harvestable plant. A non-zero RespawnAt means it has been
// picked and is waiting to grow back.
type Resource struct {
	ID           uint64   `json:"id" msgpack:"id"`
	ResourceType string   `json:"resource_type" msgpack:"resource_type"`
	Position     Position `json:"position" msgpack:"position"`
	ChunkIndex   uint32   `json:"chunk_index" msgpack:"chunk_index"`
	RespawnAt    int64    `json:"respawn_at" msgpack:"respawn_at"`
}

func (r Resource) Key() string { return strconv.FormatUint(r.ID, 10) }
func (r Resource) Chunk() uint32 { return r.ChunkIndex }

func (r Resource) Harvested() bool { return r.RespawnAt != 0 }

func (r Resource) Differs(o Resource) bool {
	return r.Position != o.Position ||
		r.RespawnAt != o.RespawnAt ||
		r.ResourceType != o.ResourceType
}
