package chunk

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestTiling_Indices(t *testing.T) {
	tiling := Tiling{Size: 1000, Width: 10, Height: 10}

	tests := map[string]struct {
		vp  *Viewport
		exp []uint32
	}{
		"nil viewport": {
			vp:  nil,
			exp: []uint32{},
		},
		"single chunk": {
			vp:  &Viewport{MinX: 100, MinY: 100, MaxX: 200, MaxY: 200},
			exp: []uint32{0},
		},
		"straddles x boundary": {
			vp:  &Viewport{MinX: 950, MinY: 50, MaxX: 1050, MaxY: 150},
			exp: []uint32{0, 1},
		},
		"straddles both boundaries": {
			vp:  &Viewport{MinX: 1950, MinY: 950, MaxX: 2050, MaxY: 1050},
			exp: []uint32{1, 2, 11, 12},
		},
		"clamped to world": {
			vp:  &Viewport{MinX: -500, MinY: -500, MaxX: 500, MaxY: 500},
			exp: []uint32{0},
		},
		"clamped at far edge": {
			vp:  &Viewport{MinX: 9500, MinY: 9500, MaxX: 12000, MaxY: 12000},
			exp: []uint32{99},
		},
		"entirely outside world": {
			vp:  &Viewport{MinX: 20000, MinY: 20000, MaxX: 21000, MaxY: 21000},
			exp: []uint32{},
		},
		"entirely negative": {
			vp:  &Viewport{MinX: -3000, MinY: 0, MaxX: -2000, MaxY: 100},
			exp: []uint32{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := tiling.Indices(tt.vp).Sorted()
			testutil.AssertEqual(t, "indices", got, tt.exp)
		})
	}
}

func TestTiling_IndicesCoverage(t *testing.T) {
	tiling := Tiling{Size: 64, Width: 8, Height: 6}

	viewports := []Viewport{
		{MinX: 0, MinY: 0, MaxX: 63.9, MaxY: 63.9},
		{MinX: 30, MinY: 70, MaxX: 300, MaxY: 200},
		{MinX: -10, MinY: 300, MaxX: 600, MaxY: 500},
		{MinX: 128, MinY: 128, MaxX: 128, MaxY: 128},
	}

	for _, vp := range viewports {
		got := tiling.Indices(&vp)

		for cy := 0; cy < tiling.Height; cy++ {
			for cx := 0; cx < tiling.Width; cx++ {
				x0, y0 := float64(cx)*tiling.Size, float64(cy)*tiling.Size
				x1, y1 := x0+tiling.Size, y0+tiling.Size
				intersects := vp.MinX < x1 && vp.MaxX >= x0 && vp.MinY < y1 && vp.MaxY >= y0
				idx := uint32(cy*tiling.Width + cx)
				if got.Contains(idx) != intersects {
					t.Errorf("viewport %+v chunk %d: got %v, expected %v", vp, idx, got.Contains(idx), intersects)
				}
			}
		}
	}
}

func TestTiling_Index(t *testing.T) {
	tiling := Tiling{Size: 1000, Width: 10, Height: 10}

	tests := map[string]struct {
		x, y float64
		exp  uint32
	}{
		"origin":         {x: 0, y: 0, exp: 0},
		"second column":  {x: 1000, y: 0, exp: 1},
		"second row":     {x: 0, y: 1000, exp: 10},
		"inside":         {x: 3500, y: 2100, exp: 23},
		"negative clamp": {x: -1, y: -1, exp: 0},
		"beyond clamp":   {x: 99999, y: 99999, exp: 99},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "index", tiling.Index(tt.x, tt.y), tt.exp)
		})
	}
}

func TestTiling_Validate(t *testing.T) {
	tests := map[string]struct {
		tiling  Tiling
		expErrs []string
	}{
		"valid": {
			tiling: Tiling{Size: 1000, Width: 10, Height: 10},
		},
		"all zero": {
			tiling:  Tiling{},
			expErrs: []string{"chunk_size must be positive", "width_chunks must be positive", "height_chunks must be positive"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.tiling.Validate()
			if len(tt.expErrs) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			for _, e := range tt.expErrs {
				testutil.AssertErrorContains(t, err, e)
			}
		})
	}
}

func TestSet_Difference(t *testing.T) {
	a := NewSet(1, 2, 3)
	b := NewSet(2, 3, 4)

	testutil.AssertEqual(t, "a-b", a.Difference(b).Sorted(), []uint32{1})
	testutil.AssertEqual(t, "b-a", b.Difference(a).Sorted(), []uint32{4})
	testutil.AssertEqual(t, "equal", a.Equal(b), false)
	testutil.AssertEqual(t, "clone equal", a.Equal(a.Clone()), true)
}
