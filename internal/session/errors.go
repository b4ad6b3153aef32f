package session

import "errors"

var (
	ErrStopped      = errors.New("session stopped")
	ErrStreamClosed = errors.New("event stream closed")
)
