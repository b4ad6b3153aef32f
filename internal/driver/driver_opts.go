package driver

import "time"

type FrameDriverOpt func(*FrameDriver)

func WithFrameInterval(interval time.Duration) FrameDriverOpt {
	return func(d *FrameDriver) {
		d.frameInterval = interval
	}
}

// WithSlowFrame sets how long a frame may take before it is logged. It
// defaults to four frame intervals.
func WithSlowFrame(threshold time.Duration) FrameDriverOpt {
	return func(d *FrameDriver) {
		d.slowFrame = threshold
	}
}
