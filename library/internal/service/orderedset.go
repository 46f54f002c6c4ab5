package service

// orderedSet keeps keys in first-insertion order.
type orderedSet[K comparable] struct {
	index map[K]struct{}
	keys  []K
}

func newOrderedSet[K comparable]() *orderedSet[K] {
	return &orderedSet[K]{index: make(map[K]struct{})}
}

// Add reports whether key was not present before.
func (s *orderedSet[K]) Add(key K) bool {
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = struct{}{}
	s.keys = append(s.keys, key)
	return true
}

func (s *orderedSet[K]) Len() int {
	return len(s.keys)
}

func (s *orderedSet[K]) Keys() []K {
	out := make([]K, len(s.keys))
	copy(out, s.keys)
	return out
}
