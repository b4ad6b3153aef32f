package interp

import "time"

// Rendered is a row paired with the position to draw it at.
type Rendered[R any] struct {
	Row R
	Pos Vec
}

// Engine tracks interpolation state for every entity of one kind.
type Engine[R any] struct {
	policy  Policy
	sample  func(R) Sample
	differs func(a, b R) bool

	tracks  map[string]*Track
	out     map[string]Rendered[R]
	version uint64
}

// NewEngine builds an engine. sample extracts position and marker from a
// row; differs reports whether a row changed in a way renderers care about.
func NewEngine[R any](policy Policy, sample func(R) Sample, differs func(a, b R) bool) *Engine[R] {
	return &Engine[R]{
		policy:  policy,
		sample:  sample,
		differs: differs,
		tracks:  map[string]*Track{},
		out:     map[string]Rendered[R]{},
	}
}

// Advance folds the current authoritative rows into the tracked state and
// returns the render-ready view at now. The returned map must not be
// modified; when nothing changed since the last call the same map is
// returned.
func (e *Engine[R]) Advance(now time.Time, rows map[string]R) map[string]Rendered[R] {
	window := e.policy.Window()
	next := make(map[string]Rendered[R], len(rows))
	changed := len(rows) != len(e.out)

	for key, row := range rows {
		s := e.sample(row)

		tr, ok := e.tracks[key]
		if !ok {
			tr = &Track{Source: s.Pos, Target: s.Pos, Server: s.Pos, Marker: s.Marker}
			e.tracks[key] = tr
		} else {
			if s.Reset {
				tr.Marker = 0
				tr.active = false
			}
			if e.policy.Triggered(*tr, s) {
				// Start from where the entity is drawn now, not from the
				// previous authoritative position, to avoid a visible jump.
				tr.Source = tr.At(now, window)
				tr.Target = s.Pos
				tr.Start = now
				tr.active = true
				tr.Marker = s.Marker
			}
			tr.Server = s.Pos
		}

		pos := tr.At(now, window)
		if prev, ok := e.out[key]; ok && prev.Pos == pos && !e.differs(row, prev.Row) {
			next[key] = prev
			continue
		}
		next[key] = Rendered[R]{Row: row, Pos: pos}
		changed = true
	}

	for key := range e.tracks {
		if _, ok := rows[key]; !ok {
			delete(e.tracks, key)
			changed = true
		}
	}

	if changed {
		e.out = next
		e.version++
	}
	return e.out
}

// Track returns a copy of the state held for key.
func (e *Engine[R]) Track(key string) (Track, bool) {
	tr, ok := e.tracks[key]
	if !ok {
		return Track{}, false
	}
	return *tr, true
}

// Len is the number of tracked entities.
func (e *Engine[R]) Len() int {
	return len(e.tracks)
}

// Version increments every time Advance returns a new map.
func (e *Engine[R]) Version() uint64 {
	return e.version
}

// Reset drops all tracked state.
func (e *Engine[R]) Reset() {
	e.tracks = map[string]*Track{}
	e.out = map[string]Rendered[R]{}
	e.version++
}
