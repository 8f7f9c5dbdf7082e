package model

import "fmt"

// StepMasks is the ordered cut-flow audit trail: one named boolean mask per
// selection step, per event, per pair. Every entry is the logical AND of the
// previous entry and one new predicate, so for any fixed pair the recorded
// values are monotonically non-increasing along the step order. Entries are
// only ever appended, never rewritten.
type StepMasks struct {
	order []string
	masks map[string][][]bool
}

// NewStepMasks returns an empty audit trail.
func NewStepMasks() *StepMasks {
	return &StepMasks{masks: make(map[string][][]bool)}
}

// Add records the cumulative mask for a new step: the previous cumulative
// mask ANDed with the given predicate mask. The predicate is evaluated for
// every pair regardless of earlier steps, so the trail stays complete.
func (s *StepMasks) Add(name string, predicate [][]bool) error {
	if _, ok := s.masks[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateStep, name)
	}

	cumulative := make([][]bool, len(predicate))
	prev := s.last()
	for i, row := range predicate {
		cumulative[i] = make([]bool, len(row))
		copy(cumulative[i], row)
		if prev != nil {
			for j := range row {
				cumulative[i][j] = cumulative[i][j] && prev[i][j]
			}
		}
	}

	s.order = append(s.order, name)
	s.masks[name] = cumulative
	return nil
}

// Names returns the step names in recording order.
func (s *StepMasks) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Mask returns the cumulative mask recorded under the given step name.
func (s *StepMasks) Mask(name string) ([][]bool, bool) {
	m, ok := s.masks[name]
	return m, ok
}

// Final returns the cumulative mask of the last recorded step, or nil when
// no step was recorded yet.
func (s *StepMasks) Final() [][]bool {
	return s.last()
}

// PassCount returns the number of true entries recorded for a step.
func (s *StepMasks) PassCount(name string) int64 {
	m, ok := s.masks[name]
	if !ok {
		return 0
	}
	var n int64
	for _, row := range m {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// Append concatenates another trail with identical step names onto this one,
// event-wise. Used when sub-batch results are stitched back together.
func (s *StepMasks) Append(other *StepMasks) error {
	if len(s.order) == 0 {
		s.order = append(s.order, other.order...)
		for _, name := range other.order {
			s.masks[name] = other.masks[name]
		}
		return nil
	}
	if len(s.order) != len(other.order) {
		return ErrStepMismatch
	}
	for i, name := range s.order {
		if other.order[i] != name {
			return fmt.Errorf("%w: %s vs %s", ErrStepMismatch, name, other.order[i])
		}
		s.masks[name] = append(s.masks[name], other.masks[name]...)
	}
	return nil
}

func (s *StepMasks) last() [][]bool {
	if len(s.order) == 0 {
		return nil
	}
	return s.masks[s.order[len(s.order)-1]]
}
