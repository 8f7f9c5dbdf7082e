package service

import "sync"

// seenSet is a bounded, thread-safe set of batch IDs. When full, the oldest
// entry is evicted so memory stays flat over a long run.
type seenSet struct {
	mu    sync.Mutex
	max   int
	order []string
	head  int
	ids   map[string]struct{}
}

func newSeenSet(max int) *seenSet {
	if max < 1 {
		max = 1
	}
	return &seenSet{
		max: max,
		ids: make(map[string]struct{}, max),
	}
}

// seenAndRecord reports whether id was already present and records it if not.
func (s *seenSet) seenAndRecord(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return true
	}
	if len(s.order) < s.max {
		s.order = append(s.order, id)
	} else {
		delete(s.ids, s.order[s.head])
		s.order[s.head] = id
		s.head = (s.head + 1) % s.max
	}
	s.ids[id] = struct{}{}
	return false
}

// unrecord removes an id, allowing the batch to be retried after a failure.
func (s *seenSet) unrecord(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

func (s *seenSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
