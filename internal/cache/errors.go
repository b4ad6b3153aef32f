package cache

import "errors"

var ErrUnknownTable = errors.New("unknown table")
