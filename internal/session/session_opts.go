package session

import "time"

type SessionOpt func(*Session)

// WithView sets the screen size in world units and the margin loaded beyond
// each edge.
func WithView(width, height, buffer float64) SessionOpt {
	return func(s *Session) {
		s.halfW = width/2 + buffer
		s.halfH = height/2 + buffer
	}
}

// WithMoveThreshold sets how far the local player may drift from the centre
// of the applied viewport before it is recomputed.
func WithMoveThreshold(d float64) SessionOpt {
	return func(s *Session) {
		s.threshold = d
	}
}

// WithDebounce sets the delay between a viewport request and its
// application. Zero applies requests immediately.
func WithDebounce(d time.Duration) SessionOpt {
	return func(s *Session) {
		s.debounce = d
	}
}
