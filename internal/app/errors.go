package service

import (
	"errors"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted     = errors.New("service not started")
	ErrUnknownChannel = errors.New("unknown channel")
	ErrDuplicateBatch = errors.New("duplicate batch")
)
