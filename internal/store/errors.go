package store

import "errors"

var (
	ErrMissingRow   = errors.New("event is missing a row")
	ErrMissingTable = errors.New("event is missing a table")
	ErrUnknownOp    = errors.New("unknown event op")
	ErrNotConnected = errors.New("store not connected")
)
