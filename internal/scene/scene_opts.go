package scene

import "time"

type ManagerOpt func(*Manager)

// WithCloudInterval sets how often the server moves clouds. It must match the
// server's schedule.
func WithCloudInterval(d time.Duration) ManagerOpt {
	return func(m *Manager) {
		m.cloudInterval = d
	}
}

func WithKnockbackDuration(d time.Duration) ManagerOpt {
	return func(m *Manager) {
		m.knockbackDuration = d
	}
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) ManagerOpt {
	return func(m *Manager) {
		m.clock = clock
	}
}
