package session

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-worldsync/internal/cache"
	"github.com/pixil98/go-worldsync/internal/chunk"
	"github.com/pixil98/go-worldsync/internal/entity"
	"github.com/pixil98/go-worldsync/internal/store"
	"github.com/pixil98/go-worldsync/internal/subscription"
)

const (
	DefaultDebounce      = 250 * time.Millisecond
	DefaultMoveThreshold = 400
	DefaultViewWidth     = 1920
	DefaultViewHeight    = 1080
	DefaultViewBuffer    = 600
)

// Session owns the cache and every subscription for one player. All cache
// mutation and subscription bookkeeping happen on the goroutine running
// Start; other goroutines reach it through Connect, Disconnect and
// SetViewport.
type Session struct {
	tiling  chunk.Tiling
	cache   *cache.Cache
	spatial *subscription.Spatial
	global  *subscription.Global

	halfW     float64
	halfH     float64
	threshold float64
	debounce  time.Duration

	ops     chan func(context.Context)
	stopped chan struct{}

	// Owned by the loop.
	stream  store.Stream
	events  <-chan store.Event
	view    *chunk.Viewport
	pending *chunk.Viewport
	timer   *time.Timer

	mu     sync.RWMutex
	status Status
}

func New(tiling chunk.Tiling, c *cache.Cache, opts ...SessionOpt) *Session {
	s := &Session{
		tiling:    tiling,
		cache:     c,
		spatial:   subscription.NewSpatial(entity.SpatialTables, c),
		global:    subscription.NewGlobal(entity.GlobalTables),
		threshold: DefaultMoveThreshold,
		debounce:  DefaultDebounce,
		ops:       make(chan func(context.Context)),
		stopped:   make(chan struct{}),
	}
	WithView(DefaultViewWidth, DefaultViewHeight, DefaultViewBuffer)(s)

	for _, opt := range opts {
		opt(s)
	}

	// Late events for chunks that already left view must not repopulate them.
	c.SetChunkGate(s.spatial.Active)

	return s
}

// Start runs the session loop until ctx is cancelled, then releases every
// subscription.
func (s *Session) Start(ctx context.Context) error {
	defer close(s.stopped)

	for {
		select {
		case <-ctx.Done():
			s.teardown(ctx, nil)
			return nil

		case op := <-s.ops:
			op(ctx)

		case ev, ok := <-s.events:
			if !ok {
				slog.WarnContext(ctx, "event stream closed")
				s.teardown(ctx, ErrStreamClosed)
				continue
			}
			s.apply(ctx, ev)

		case <-s.timerC():
			s.timer = nil
			s.flush(ctx)
		}
	}
}

// do runs op on the loop and waits for it to finish.
func (s *Session) do(ctx context.Context, op func(context.Context)) error {
	done := make(chan struct{})
	wrapped := func(ctx context.Context) {
		op(ctx)
		close(done)
	}

	select {
	case s.ops <- wrapped:
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Connect makes stream the active connection. Any previous connection is torn
// down first. Global queries are registered and the last known viewport is
// applied again.
func (s *Session) Connect(ctx context.Context, stream store.Stream) error {
	s.setStatus(func(st *Status) {
		st.State = StateConnecting
	})
	return s.do(ctx, func(ctx context.Context) {
		s.connect(ctx, stream)
	})
}

// Disconnect releases every subscription and empties the cache. cause, when
// not nil, is kept for display. Disconnecting twice is harmless.
func (s *Session) Disconnect(ctx context.Context, cause error) error {
	return s.do(ctx, func(ctx context.Context) {
		s.teardown(ctx, cause)
	})
}

// SetViewport requests the chunks covering vp. Requests are debounced and
// only the latest one is applied.
func (s *Session) SetViewport(ctx context.Context, vp chunk.Viewport) error {
	return s.do(ctx, func(ctx context.Context) {
		s.request(ctx, vp)
	})
}

func (s *Session) Status() Status {
	s.mu.RLock()
	st := s.status
	s.mu.RUnlock()

	st.PlayerRegistered = s.cache.PlayerRegistered()
	st.Generation = s.cache.Generation()
	return st
}

func (s *Session) Cache() *cache.Cache {
	return s.cache
}

func (s *Session) setStatus(fn func(*Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.status)
}

func (s *Session) connect(ctx context.Context, stream store.Stream) {
	if s.stream != nil {
		s.teardown(ctx, nil)
	}

	instance := uuid.NewString()

	s.global.Reset(ctx)
	s.spatial.Reset(ctx)
	drain(stream.Events())

	s.stream = stream
	s.events = stream.Events()
	s.spatial.Bind(stream)
	s.global.Register(ctx, stream)

	if s.view != nil {
		s.applyViewport(ctx, *s.view)
	}

	s.setStatus(func(st *Status) {
		st.State = StateConnected
		st.Instance = instance
		st.Err = nil
		st.Chunks = s.spatial.Chunks().Len()
	})

	slog.InfoContext(ctx, "session connected",
		"instance", instance,
		"tiling", s.tiling.Version(),
		"globals", s.global.Handles(),
	)
}

// drain discards events buffered from an earlier connection.
func drain(events <-chan store.Event) {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (s *Session) teardown(ctx context.Context, cause error) {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.pending != nil {
		s.view = s.pending
		s.pending = nil
	}

	wasConnected := s.stream != nil

	s.spatial.Reset(ctx)
	s.global.Reset(ctx)
	s.cache.Reset()
	s.stream = nil
	s.events = nil

	s.setStatus(func(st *Status) {
		st.State = StateDisconnected
		st.Instance = ""
		st.Chunks = 0
		if cause != nil {
			st.Err = cause
		}
	})

	if wasConnected {
		slog.InfoContext(ctx, "session disconnected", "cause", cause)
	}
}

func (s *Session) apply(ctx context.Context, ev store.Event) {
	if err := s.cache.Apply(ev); err != nil {
		slog.WarnContext(ctx, "applying event", "table", ev.Table, "op", ev.Op.String(), "error", err)
		return
	}
	if ev.Table == entity.TablePlayer {
		s.follow(ctx)
	}
}

// follow requests a new viewport once the local player has moved far enough
// from the centre of the current one.
func (s *Session) follow(ctx context.Context) {
	p, ok := s.cache.LocalPlayer()
	if !ok {
		return
	}
	x, y := float64(p.Position.X), float64(p.Position.Y)

	if s.view != nil {
		cx, cy := s.view.Center()
		if math.Hypot(x-cx, y-cy) <= s.threshold {
			return
		}
	}
	s.request(ctx, *chunk.ViewportAround(x, y, s.halfW, s.halfH))
}

func (s *Session) request(ctx context.Context, vp chunk.Viewport) {
	s.pending = &vp
	if s.debounce <= 0 {
		s.flush(ctx)
		return
	}
	if s.timer == nil {
		s.timer = time.NewTimer(s.debounce)
	}
}

func (s *Session) timerC() <-chan time.Time {
	if s.timer == nil {
		return nil
	}
	return s.timer.C
}

func (s *Session) flush(ctx context.Context) {
	if s.pending == nil {
		return
	}
	vp := *s.pending
	s.pending = nil
	s.applyViewport(ctx, vp)
}

func (s *Session) applyViewport(ctx context.Context, vp chunk.Viewport) {
	s.view = &vp
	if s.stream == nil {
		return
	}

	churn := s.spatial.Apply(ctx, s.tiling.Indices(&vp))
	if churn.Empty() {
		return
	}

	s.setStatus(func(st *Status) {
		st.Chunks = s.spatial.Chunks().Len()
	})
}
