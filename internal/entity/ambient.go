package entity

import "strconv"

type DroppedItem struct {
	ID         uint64   `json:"id" msgpack:"id"`
	ItemDefID  uint64   `json:"item_def_id" msgpack:"item_def_id"`
	Quantity   uint32   `json:"quantity" msgpack:"quantity"`
	Position   Position `json:"position" msgpack:"position"`
	ChunkIndex uint32   `json:"chunk_index" msgpack:"chunk_index"`
	CreatedAt  int64    `json:"created_at" msgpack:"created_at"`
}

func (d DroppedItem) Key() string { return strconv.FormatUint(d.ID, 10) }
func (d DroppedItem) Chunk() uint32 { return d.ChunkIndex }
func (d DroppedItem) Differs(o DroppedItem) bool { return d != o }

// Cloud drifts across the world. The server moves clouds on a fixed cadence
// so clients interpolate between samples.
type Cloud struct {
	ID         uint64   `json:"id" msgpack:"id"`
	Position   Position `json:"position" msgpack:"position"`
	ChunkIndex uint32   `json:"chunk_index" msgpack:"chunk_index"`
	Width      float32  `json:"width" msgpack:"width"`
	Height     float32  `json:"height" msgpack:"height"`
	Rotation   float32  `json:"rotation" msgpack:"rotation"`
	Opacity    float32  `json:"opacity" msgpack:"opacity"`
	Shape      string   `json:"shape" msgpack:"shape"`
}

func (c Cloud) Key() string { return strconv.FormatUint(c.ID, 10) }
func (c Cloud) Chunk() uint32 { return c.ChunkIndex }
func (c Cloud) Differs(o Cloud) bool { return c != o }
