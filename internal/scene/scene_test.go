package scene

import (
	"context"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-worldsync/internal/cache"
	"github.com/pixil98/go-worldsync/internal/entity"
	"github.com/pixil98/go-worldsync/internal/identity"
	"github.com/pixil98/go-worldsync/internal/interp"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestManager(t *testing.T) (*Manager, *cache.Cache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := cache.New(identity.FromToken("scene-test"))
	m := NewManager(c,
		WithCloudInterval(5*time.Second),
		WithKnockbackDuration(150*time.Millisecond),
		WithClock(clock.Now),
	)
	return m, c, clock
}

func tick(t *testing.T, m *Manager) {
	t.Helper()
	if err := m.Tick(context.Background()); err != nil {
		t.Fatalf("ticking: %v", err)
	}
}

func TestManager_CloudCadence(t *testing.T) {
	m, c, clock := newTestManager(t)

	cloud := entity.Cloud{ID: 1, Position: entity.Position{X: 0, Y: 0}, Opacity: 0.5}
	c.Clouds.Insert(cloud)
	tick(t, m)
	testutil.AssertEqual(t, "first sighting", m.Clouds()["1"].Pos, interp.Vec{X: 0, Y: 0})

	cloud.Position = entity.Position{X: 100, Y: 0}
	c.Clouds.Insert(cloud)

	tests := []struct {
		name  string
		after time.Duration
		exp   interp.Vec
	}{
		{name: "sample arrives", after: 0, exp: interp.Vec{X: 0, Y: 0}},
		{name: "halfway", after: 2500 * time.Millisecond, exp: interp.Vec{X: 50, Y: 0}},
		{name: "window elapsed", after: 2500 * time.Millisecond, exp: interp.Vec{X: 100, Y: 0}},
		{name: "clamped", after: time.Second, exp: interp.Vec{X: 100, Y: 0}},
	}

	for _, tt := range tests {
		clock.advance(tt.after)
		tick(t, m)
		testutil.AssertEqual(t, tt.name, m.Clouds()["1"].Pos, tt.exp)
	}

	testutil.AssertEqual(t, "row", m.Clouds()["1"].Row, cloud)
}

func TestManager_PlayerKnockback(t *testing.T) {
	m, c, clock := newTestManager(t)

	p := entity.Player{Identity: "a", Position: entity.Position{X: 10, Y: 10}, Health: 100}
	c.Players.Insert(p)
	tick(t, m)

	p.Position = entity.Position{X: 20, Y: 10}
	c.Players.Insert(p)
	tick(t, m)
	testutil.AssertEqual(t, "walking is not smoothed", m.Players()["a"].Pos, interp.Vec{X: 20, Y: 10})

	p.Position = entity.Position{X: 40, Y: 10}
	p.LastHitTime = 5
	c.Players.Insert(p)
	tick(t, m)
	testutil.AssertEqual(t, "hit starts", m.Players()["a"].Pos, interp.Vec{X: 20, Y: 10})

	clock.advance(75 * time.Millisecond)
	tick(t, m)
	testutil.AssertEqual(t, "hit halfway", m.Players()["a"].Pos, interp.Vec{X: 30, Y: 10})

	clock.advance(75 * time.Millisecond)
	tick(t, m)
	testutil.AssertEqual(t, "hit done", m.Players()["a"].Pos, interp.Vec{X: 40, Y: 10})

	p.Position = entity.Position{X: 50, Y: 10}
	c.Players.Insert(p)
	tick(t, m)
	testutil.AssertEqual(t, "same marker", m.Players()["a"].Pos, interp.Vec{X: 50, Y: 10})
}

func TestManager_RespawnClearsMarker(t *testing.T) {
	m, c, clock := newTestManager(t)

	p := entity.Player{Identity: "a", Position: entity.Position{X: 0, Y: 0}, LastHitTime: 5}
	c.Players.Insert(p)
	tick(t, m)

	p.LastHitTime = 0
	p.Position = entity.Position{X: 500, Y: 500}
	c.Players.Insert(p)
	tick(t, m)
	testutil.AssertEqual(t, "respawn", m.Players()["a"].Pos, interp.Vec{X: 500, Y: 500})

	// The server reuses the timestamp; after a respawn it still counts as a new hit.
	p.LastHitTime = 5
	p.Position = entity.Position{X: 600, Y: 500}
	c.Players.Insert(p)
	clock.advance(time.Second)
	tick(t, m)
	testutil.AssertEqual(t, "hit after respawn", m.Players()["a"].Pos, interp.Vec{X: 500, Y: 500})

	clock.advance(150 * time.Millisecond)
	tick(t, m)
	testutil.AssertEqual(t, "hit done", m.Players()["a"].Pos, interp.Vec{X: 600, Y: 500})
}

func TestManager_Snapshots(t *testing.T) {
	m, c, _ := newTestManager(t)

	testutil.AssertEqual(t, "empty clouds", len(m.Clouds()), 0)
	testutil.AssertEqual(t, "empty players", len(m.Players()), 0)

	c.Clouds.Insert(entity.Cloud{ID: 1})
	c.Clouds.Insert(entity.Cloud{ID: 2})
	tick(t, m)
	snap := m.Clouds()
	testutil.AssertEqual(t, "clouds", len(snap), 2)

	c.Clouds.Delete(entity.Cloud{ID: 1})
	tick(t, m)
	testutil.AssertEqual(t, "after removal", len(m.Clouds()), 1)
	testutil.AssertEqual(t, "earlier snapshot untouched", len(snap), 2)

	c.Reset()
	tick(t, m)
	testutil.AssertEqual(t, "after reset", len(m.Clouds()), 0)
	testutil.AssertEqual(t, "frames", m.Frames(), uint64(3))
}
