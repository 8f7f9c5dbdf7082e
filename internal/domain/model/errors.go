package model

import "errors"

// Sentinel kinds for batch bookkeeping errors.
var (
	ErrDuplicateStep = errors.New("selection step already recorded")
	ErrStepMismatch  = errors.New("selection step order mismatch")
	ErrFlagLength    = errors.New("category flag length mismatch")
	ErrFlagMismatch  = errors.New("category flag order mismatch")
)
