package model

// Selection is the structured result of one selection call over a batch:
// exactly one pair slot per event (the empty sentinel when nothing
// survived), the ordered cut-flow audit trail, and the event-level
// category flags. These are the only values that escape to consumers.
type Selection struct {
	Pairs []Pair
	Steps *StepMasks
	Flags *Flags
}

// Events returns the number of events covered by the selection.
func (s *Selection) Events() int {
	return len(s.Pairs)
}

// SelectedCount returns the number of events with a valid selected pair.
func (s *Selection) SelectedCount() int64 {
	var n int64
	for _, p := range s.Pairs {
		if p.Valid() {
			n++
		}
	}
	return n
}

// ConcatSelections stitches sub-batch results back together in order.
// Permitted because events carry no cross-event dependency: splitting a
// batch and concatenating the parts must not change any result.
func ConcatSelections(parts ...*Selection) (*Selection, error) {
	out := &Selection{
		Steps: NewStepMasks(),
		Flags: NewFlags(0),
	}
	for _, part := range parts {
		out.Pairs = append(out.Pairs, part.Pairs...)
		if err := out.Steps.Append(part.Steps); err != nil {
			return nil, err
		}
		if err := out.Flags.Append(part.Flags); err != nil {
			return nil, err
		}
	}
	return out, nil
}
