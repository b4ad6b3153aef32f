package interp

import "time"

// Vec is a 2D world-space position.
type Vec struct {
	X float64
	Y float64
}

// Lerp returns the point a fraction t of the way from a to b. t is clamped to
// [0, 1] so callers can never render past the target.
func Lerp(a, b Vec, t float64) Vec {
	t = Clamp01(t)
	if t == 1 {
		return b
	}
	return Vec{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Progress is the clamped fraction of window elapsed between start and now.
// A non-positive window is always complete.
func Progress(start, now time.Time, window time.Duration) float64 {
	if window <= 0 {
		return 1
	}
	return Clamp01(float64(now.Sub(start)) / float64(window))
}

// Track is the interpolation state of one entity.
type Track struct {
	// Source and Target bound the running transition.
	Source Vec
	Target Vec
	// Server is the latest authoritative position.
	Server Vec
	Start  time.Time
	// Marker is the last event marker seen, zero when none.
	Marker int64

	active bool
}

// At returns the position to display at now. Once the window has elapsed the
// authoritative position is shown as is.
func (t Track) At(now time.Time, window time.Duration) Vec {
	if !t.active || now.Sub(t.Start) >= window {
		return t.Server
	}
	return Lerp(t.Source, t.Target, Progress(t.Start, now, window))
}

// Transitioning reports whether a transition is running at now.
func (t Track) Transitioning(now time.Time, window time.Duration) bool {
	return t.active && now.Sub(t.Start) < window
}
