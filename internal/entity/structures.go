package entity

import "strconv"

type Campfire struct {
	ID         uint64   `json:"id" msgpack:"id"`
	Position   Position `json:"position" msgpack:"position"`
	ChunkIndex uint32   `json:"chunk_index" msgpack:"chunk_index"`
	PlacedBy   string   `json:"placed_by" msgpack:"placed_by"`
	Health     float32  `json:"health" msgpack:"health"`
	IsBurning  bool     `json:"is_burning" msgpack:"is_burning"`
}

func (c Campfire) Key() string { return strconv.FormatUint(c.ID, 10) }
func (c Campfire) Chunk() uint32 { return c.ChunkIndex }
func (c Campfire) Placer() string { return c.PlacedBy }
func (c Campfire) Differs(o Campfire) bool {
	return c.Position != o.Position ||
		roundedDiff(c.Health, o.Health) ||
		c.IsBurning != o.IsBurning ||
		c.PlacedBy != o.PlacedBy
}

type WoodenStorageBox struct {
	ID         uint64   `json:"id" msgpack:"id"`
	Position   Position `json:"position" msgpack:"position"`
	ChunkIndex uint32   `json:"chunk_index" msgpack:"chunk_index"`
	PlacedBy   string   `json:"placed_by" msgpack:"placed_by"`
	Health     float32  `json:"health" msgpack:"health"`
}

func (b WoodenStorageBox) Key() string { return strconv.FormatUint(b.ID, 10) }
func (b WoodenStorageBox) Chunk() uint32 { return b.ChunkIndex }
func (b WoodenStorageBox) Placer() string { return b.PlacedBy }
func (b WoodenStorageBox) Differs(o WoodenStorageBox) bool {
	return b.Position != o.Position ||
		roundedDiff(b.Health, o.Health) ||
		b.PlacedBy != o.PlacedBy
}

type SleepingBag struct {
	ID         uint64   `json:"id" msgpack:"id"`
	Position   Position `json:"position" msgpack:"position"`
	ChunkIndex uint32   `json:"chunk_index" msgpack:"chunk_index"`
	PlacedBy   string   `json:"placed_by" msgpack:"placed_by"`
	Health     float32  `json:"health" msgpack:"health"`
}

func (s SleepingBag) Key() string { return strconv.FormatUint(s.ID, 10) }
func (s SleepingBag) Chunk() uint32 { return s.ChunkIndex }
func (s SleepingBag) Placer() string { return s.PlacedBy }
func (s SleepingBag) Differs(o SleepingBag) bool {
	return s.Position != o.Position ||
		roundedDiff(s.Health, o.Health) ||
		s.PlacedBy != o.PlacedBy
}

type Stash struct {
	ID         uint64   `json:"id" msgpack:"id"`
	Position   Position `json:"position" msgpack:"position"`
	ChunkIndex uint32   `json:"chunk_index" msgpack:"chunk_index"`
	PlacedBy   string   `json:"placed_by" msgpack:"placed_by"`
	Health     float32  `json:"health" msgpack:"health"`
	IsHidden   bool     `json:"is_hidden" msgpack:"is_hidden"`
}

func (s Stash) Key() string { return strconv.FormatUint(s.ID, 10) }
func (s Stash) Chunk() uint32 { return s.ChunkIndex }
func (s Stash) Placer() string { return s.PlacedBy }
func (s Stash) Differs(o Stash) bool {
	return s.Position != o.Position ||
		roundedDiff(s.Health, o.Health) ||
		s.IsHidden != o.IsHidden ||
		s.PlacedBy != o.PlacedBy
}
