// Package repository defines the cut-flow store interface and errors.
package repository

import "errors"

// ErrUnknownChannel indicates a read for a channel with no recorded batches.
var ErrUnknownChannel = errors.New("unknown channel")
