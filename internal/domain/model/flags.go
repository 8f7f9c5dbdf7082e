package model

import "fmt"

// Flags holds the per-event category booleans. Every flag is defined for
// every event; events without a surviving pair carry false everywhere.
type Flags struct {
	order  []string
	events int
	byName map[string][]bool
}

// NewFlags returns an empty flag set for the given number of events.
func NewFlags(events int) *Flags {
	return &Flags{events: events, byName: make(map[string][]bool)}
}

// Set records a flag. The value slice must cover every event.
func (f *Flags) Set(name string, values []bool) error {
	if len(values) != f.events {
		return fmt.Errorf("%w: flag %s has %d values for %d events",
			ErrFlagLength, name, len(values), f.events)
	}
	if _, ok := f.byName[name]; !ok {
		f.order = append(f.order, name)
	}
	f.byName[name] = values
	return nil
}

// Names returns the flag names in recording order.
func (f *Flags) Names() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Get returns the per-event values of a flag. Unknown names yield an
// all-false slice so a flag read never produces an undefined state.
func (f *Flags) Get(name string) []bool {
	if v, ok := f.byName[name]; ok {
		return v
	}
	return make([]bool, f.events)
}

// Events returns the number of events covered.
func (f *Flags) Events() int {
	return f.events
}

// TrueCount returns the number of events for which a flag is set.
func (f *Flags) TrueCount(name string) int64 {
	var n int64
	for _, v := range f.byName[name] {
		if v {
			n++
		}
	}
	return n
}

// Append concatenates another flag set with identical names onto this one.
func (f *Flags) Append(other *Flags) error {
	if len(f.order) == 0 && f.events == 0 {
		f.order = append(f.order, other.order...)
		for _, name := range other.order {
			f.byName[name] = other.byName[name]
		}
		f.events = other.events
		return nil
	}
	if len(f.order) != len(other.order) {
		return ErrFlagMismatch
	}
	for i, name := range f.order {
		if other.order[i] != name {
			return fmt.Errorf("%w: %s vs %s", ErrFlagMismatch, name, other.order[i])
		}
		f.byName[name] = append(f.byName[name], other.byName[name]...)
	}
	f.events += other.events
	return nil
}
