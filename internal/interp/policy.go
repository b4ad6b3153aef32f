package interp

import "time"

const (
	DefaultCadenceInterval   = 5000 * time.Millisecond
	DefaultKnockbackDuration = 150 * time.Millisecond
)

// Sample is what an engine needs from one authoritative row.
type Sample struct {
	Pos    Vec
	Marker int64
	// Reset drops any running transition and the remembered marker before
	// the sample is evaluated, so the next marker counts as new.
	Reset bool
}

// Policy decides when a sample starts a new transition and how long it runs.
type Policy interface {
	Window() time.Duration
	Triggered(t Track, s Sample) bool
}

// Cadence smooths entities the server moves on a fixed interval. Every new
// authoritative position starts a transition lasting one interval.
type Cadence struct {
	Interval time.Duration
}

func (c Cadence) Window() time.Duration {
	return c.Interval
}

func (c Cadence) Triggered(t Track, s Sample) bool {
	return s.Pos != t.Server
}

// Knockback smooths instantaneous displacement caused by a hit. Only a new
// hit marker starts a transition; ordinary movement renders immediately.
type Knockback struct {
	Duration time.Duration
}

func (k Knockback) Window() time.Duration {
	return k.Duration
}

func (k Knockback) Triggered(t Track, s Sample) bool {
	return s.Marker != 0 && s.Marker != t.Marker
}
