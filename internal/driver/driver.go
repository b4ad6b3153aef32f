package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultFrameInterval = 16 * time.Millisecond
)

// Manager is advanced once per frame.
type Manager interface {
	Tick(context.Context) error
}

// FrameDriver ticks its managers at a fixed frame rate.
type FrameDriver struct {
	frameInterval time.Duration
	managers      []Manager
	slowFrame     time.Duration
}

func NewFrameDriver(managers []Manager, opts ...FrameDriverOpt) *FrameDriver {
	d := &FrameDriver{
		frameInterval: DefaultFrameInterval,
		managers:      managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.slowFrame == 0 {
		d.slowFrame = 4 * d.frameInterval
	}

	return d
}

func (d *FrameDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			start := time.Now()
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
			if elapsed := time.Since(start); elapsed > d.slowFrame {
				slog.WarnContext(ctx, "slow frame", "elapsed", elapsed, "interval", d.frameInterval)
			}
		}
	}
}

func (d *FrameDriver) Tick(ctx context.Context) error {
	for i, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return fmt.Errorf("ticking manager %d: %w", i, err)
		}
	}
	return nil
}
