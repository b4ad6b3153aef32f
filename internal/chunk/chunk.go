package chunk

import (
	"fmt"
	"math"
	"slices"

	"github.com/pixil98/go-errors"
)

// Tiling is the world-to-chunk partitioning shared with the server. It must
// match the server's values exactly or subscriptions select the wrong rows.
type Tiling struct {
	Size   float64 `json:"chunk_size"`
	Width  int     `json:"width_chunks"`
	Height int     `json:"height_chunks"`
}

func (t Tiling) Validate() error {
	el := errors.NewErrorList()

	if t.Size <= 0 {
		el.Add(fmt.Errorf("chunk_size must be positive"))
	}
	if t.Width <= 0 {
		el.Add(fmt.Errorf("width_chunks must be positive"))
	}
	if t.Height <= 0 {
		el.Add(fmt.Errorf("height_chunks must be positive"))
	}

	return el.Err()
}

// Version fingerprints the tiling so both sides can compare contracts.
func (t Tiling) Version() string {
	return fmt.Sprintf("%gx%dx%d", t.Size, t.Width, t.Height)
}

// Count is the total number of chunks in the world.
func (t Tiling) Count() int {
	return t.Width * t.Height
}

// Index returns the row-major chunk index containing the point.
func (t Tiling) Index(x, y float64) uint32 {
	cx := clamp(int(math.Floor(x/t.Size)), 0, t.Width-1)
	cy := clamp(int(math.Floor(y/t.Size)), 0, t.Height-1)
	return uint32(cy*t.Width + cx)
}

// Indices returns every chunk the viewport overlaps. A nil viewport or one
// lying entirely outside the world yields an empty set.
func (t Tiling) Indices(vp *Viewport) Set {
	set := Set{}
	if vp == nil || t.Size <= 0 {
		return set
	}

	minCX := max(int(math.Floor(vp.MinX/t.Size)), 0)
	maxCX := min(int(math.Floor(vp.MaxX/t.Size)), t.Width-1)
	minCY := max(int(math.Floor(vp.MinY/t.Size)), 0)
	maxCY := min(int(math.Floor(vp.MaxY/t.Size)), t.Height-1)

	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			set[uint32(cy*t.Width+cx)] = struct{}{}
		}
	}
	return set
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Viewport is an axis-aligned rectangle in world coordinates.
type Viewport struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// ViewportAround builds a viewport centred on (cx, cy).
func ViewportAround(cx, cy, halfW, halfH float64) *Viewport {
	return &Viewport{
		MinX: cx - halfW,
		MinY: cy - halfH,
		MaxX: cx + halfW,
		MaxY: cy + halfH,
	}
}

func (v Viewport) Center() (float64, float64) {
	return (v.MinX + v.MaxX) / 2, (v.MinY + v.MaxY) / 2
}

// Set is a set of chunk indices.
type Set map[uint32]struct{}

func NewSet(indices ...uint32) Set {
	s := make(Set, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

func (s Set) Contains(idx uint32) bool {
	_, ok := s[idx]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Difference returns the indices in s that are not in other.
func (s Set) Difference(other Set) Set {
	out := Set{}
	for idx := range s {
		if !other.Contains(idx) {
			out[idx] = struct{}{}
		}
	}
	return out
}

func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for idx := range s {
		if !other.Contains(idx) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for idx := range s {
		out[idx] = struct{}{}
	}
	return out
}

// Sorted returns the indices in ascending order.
func (s Set) Sorted() []uint32 {
	out := make([]uint32, 0, len(s))
	for idx := range s {
		out = append(out, idx)
	}
	slices.Sort(out)
	return out
}
