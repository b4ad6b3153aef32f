package entity

import "math"

// PositionEpsilon is the movement below which a player update is treated as
// float jitter.
const PositionEpsilon = 0.01

type Player struct {
	Identity    string   `json:"identity" msgpack:"identity"`
	Username    string   `json:"username" msgpack:"username"`
	Position    Position `json:"position" msgpack:"position"`
	Direction   string   `json:"direction" msgpack:"direction"`
	Health      float32  `json:"health" msgpack:"health"`
	Stamina     float32  `json:"stamina" msgpack:"stamina"`
	Hunger      float32  `json:"hunger" msgpack:"hunger"`
	Thirst      float32  `json:"thirst" msgpack:"thirst"`
	Warmth      float32  `json:"warmth" msgpack:"warmth"`
	IsSprinting bool     `json:"is_sprinting" msgpack:"is_sprinting"`
	IsDead      bool     `json:"is_dead" msgpack:"is_dead"`
	IsOnline    bool     `json:"is_online" msgpack:"is_online"`
	// LastHitTime is the server timestamp in microseconds of the most recent
	// hit taken, zero when none has been recorded since spawning.
	LastHitTime int64 `json:"last_hit_time" msgpack:"last_hit_time"`
	LastUpdate  int64 `json:"last_update" msgpack:"last_update"`
}

func (p Player) Key() string {
	return p.Identity
}

// Differs compares only the state that is visible to a renderer. Timestamps
// like LastUpdate change on every server tick and are ignored.
func (p Player) Differs(o Player) bool {
	if moved(p.Position, o.Position, PositionEpsilon) {
		return true
	}
	if roundedDiff(p.Health, o.Health) ||
		roundedDiff(p.Stamina, o.Stamina) ||
		roundedDiff(p.Hunger, o.Hunger) ||
		roundedDiff(p.Thirst, o.Thirst) ||
		roundedDiff(p.Warmth, o.Warmth) {
		return true
	}
	return p.IsSprinting != o.IsSprinting ||
		p.Direction != o.Direction ||
		p.IsDead != o.IsDead ||
		p.IsOnline != o.IsOnline ||
		p.LastHitTime != o.LastHitTime ||
		p.Username != o.Username
}

func moved(a, b Position, eps float64) bool {
	return math.Abs(float64(a.X-b.X)) > eps || math.Abs(float64(a.Y-b.Y)) > eps
}

func roundedDiff(a, b float32) bool {
	return math.Round(float64(a)) != math.Round(float64(b))
}
