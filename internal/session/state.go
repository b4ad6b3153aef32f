package session

import "fmt"

// State is the connection state shown to the player.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Status is a point in time view of the session for display.
type Status struct {
	State State
	// Instance identifies the current connection. It is empty while
	// disconnected.
	Instance         string
	Err              error
	Chunks           int
	PlayerRegistered bool
	Generation       uint64
}
