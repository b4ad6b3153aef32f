package driver

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingManager struct {
	ticks atomic.Int64
	err   error
}

func (m *countingManager) Tick(context.Context) error {
	m.ticks.Add(1)
	return m.err
}

func TestFrameDriver_Tick(t *testing.T) {
	errBoom := errors.New("boom")

	tests := map[string]struct {
		managers []*countingManager
		expTicks []int64
		expErr   string
	}{
		"all managers ticked": {
			managers: []*countingManager{{}, {}},
			expTicks: []int64{1, 1},
		},
		"error stops the frame": {
			managers: []*countingManager{{err: errBoom}, {}},
			expTicks: []int64{1, 0},
			expErr:   "ticking manager 0: boom",
		},
		"no managers": {},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			managers := make([]Manager, len(tt.managers))
			for i, m := range tt.managers {
				managers[i] = m
			}

			err := NewFrameDriver(managers).Tick(context.Background())
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for i, m := range tt.managers {
				testutil.AssertEqual(t, "ticks", m.ticks.Load(), tt.expTicks[i])
			}
		})
	}
}

func TestFrameDriver_Start(t *testing.T) {
	m := &countingManager{}
	d := NewFrameDriver([]Manager{m}, WithFrameInterval(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for m.ticks.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("driver ticked %d times", m.ticks.Load())
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("driver returned %v", err)
	}
}

func TestFrameDriver_StartStopsOnError(t *testing.T) {
	m := &countingManager{err: errors.New("render failed")}
	d := NewFrameDriver([]Manager{m}, WithFrameInterval(time.Millisecond))

	done := make(chan error, 1)
	go func() { done <- d.Start(context.Background()) }()

	select {
	case err := <-done:
		testutil.AssertErrorContains(t, err, "render failed")
	case <-time.After(2 * time.Second):
		t.Fatalf("driver did not stop")
	}
}
