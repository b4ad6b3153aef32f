package entity

import "strconv"

type Message struct {
	ID     uint64 `json:"id" msgpack:"id"`
	Sender string `json:"sender" msgpack:"sender"`
	Text   string `json:"text" msgpack:"text"`
	SentAt int64  `json:"sent_at" msgpack:"sent_at"`
}

func (m Message) Key() string { return strconv.FormatUint(m.ID, 10) }
func (m Message) Differs(o Message) bool { return m != o }

// PlayerPin is the map marker a player has placed.
type PlayerPin struct {
	PlayerIdentity string   `json:"player_identity" msgpack:"player_identity"`
	Pin            Position `json:"pin" msgpack:"pin"`
}

func (p PlayerPin) Key() string { return p.PlayerIdentity }
func (p PlayerPin) Differs(o PlayerPin) bool { return p != o }

// ActiveConnection is keyed by identity and connection id since one identity
// may hold several connections.
type ActiveConnection struct {
	Identity     string `json:"identity" msgpack:"identity"`
	ConnectionID string `json:"connection_id" msgpack:"connection_id"`
	ConnectedAt  int64  `json:"connected_at" msgpack:"connected_at"`
}

func (c ActiveConnection) Key() string { return c.Identity + ":" + c.ConnectionID }
func (c ActiveConnection) Differs(o ActiveConnection) bool { return c != o }
