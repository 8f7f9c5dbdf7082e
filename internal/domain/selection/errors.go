package selection

import "errors"

// Sentinel kinds for selection input errors.
var (
	ErrBatchMismatch = errors.New("batch collections are not aligned")
)
