package scene

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pixil98/go-worldsync/internal/cache"
	"github.com/pixil98/go-worldsync/internal/entity"
	"github.com/pixil98/go-worldsync/internal/interp"
)

type (
	Clouds  = map[string]interp.Rendered[entity.Cloud]
	Players = map[string]interp.Rendered[entity.Player]
)

// Manager turns the cache into render-ready snapshots once per frame. Tick
// must be called from one goroutine; the snapshot readers are safe from any.
type Manager struct {
	cache *cache.Cache
	clock func() time.Time

	cloudInterval     time.Duration
	knockbackDuration time.Duration

	clouds  *interp.Engine[entity.Cloud]
	players *interp.Engine[entity.Player]

	cloudVersion  uint64
	playerVersion uint64

	cloudView  atomic.Pointer[Clouds]
	playerView atomic.Pointer[Players]
	frames     atomic.Uint64
}

func NewManager(c *cache.Cache, opts ...ManagerOpt) *Manager {
	m := &Manager{
		cache:             c,
		clock:             time.Now,
		cloudInterval:     interp.DefaultCadenceInterval,
		knockbackDuration: interp.DefaultKnockbackDuration,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.clouds = interp.NewEngine(interp.Cadence{Interval: m.cloudInterval}, cloudSample,
		func(a, b entity.Cloud) bool { return a.Differs(b) })
	m.players = interp.NewEngine(interp.Knockback{Duration: m.knockbackDuration}, playerSample,
		func(a, b entity.Player) bool { return a.Differs(b) })

	return m
}

func cloudSample(c entity.Cloud) interp.Sample {
	return interp.Sample{Pos: vec(c.Position)}
}

// playerSample keys transitions on the hit timestamp. A player with no hit
// recorded, as after a respawn, forgets the previous one so the next hit
// always animates.
func playerSample(p entity.Player) interp.Sample {
	return interp.Sample{
		Pos:    vec(p.Position),
		Marker: p.LastHitTime,
		Reset:  p.LastHitTime == 0,
	}
}

func vec(p entity.Position) interp.Vec {
	return interp.Vec{X: float64(p.X), Y: float64(p.Y)}
}

// Tick advances every engine to the current time and publishes the result.
// Snapshots are replaced only when their contents changed.
func (m *Manager) Tick(ctx context.Context) error {
	now := m.clock()

	clouds := m.clouds.Advance(now, m.cache.Clouds.All())
	if v := m.clouds.Version(); v != m.cloudVersion {
		m.cloudVersion = v
		m.cloudView.Store(&clouds)
	}

	players := m.players.Advance(now, m.cache.Players.All())
	if v := m.players.Version(); v != m.playerVersion {
		m.playerVersion = v
		m.playerView.Store(&players)
	}

	m.frames.Add(1)
	return nil
}

// Clouds returns the latest cloud snapshot. It must not be modified.
func (m *Manager) Clouds() Clouds {
	if v := m.cloudView.Load(); v != nil {
		return *v
	}
	return Clouds{}
}

// Players returns the latest player snapshot. It must not be modified.
func (m *Manager) Players() Players {
	if v := m.playerView.Load(); v != nil {
		return *v
	}
	return Players{}
}

// Frames is the number of ticks run so far.
func (m *Manager) Frames() uint64 {
	return m.frames.Load()
}
