package utils

// Set is an insertion-tracking set of comparable keys. Not safe for concurrent use.
type Set[K comparable] struct {
	seen map[K]struct{}
}

// NewSet creates an empty Set.
func NewSet[K comparable]() *Set[K] {
	return &Set[K]{seen: make(map[K]struct{})}
}

// Add returns true if the key was newly added, false if already present.
func (s *Set[K]) Add(key K) bool {
	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Contains returns true if the key has already been added.
func (s *Set[K]) Contains(key K) bool {
	_, exists := s.seen[key]
	return exists
}

// Size returns the number of unique keys tracked.
func (s *Set[K]) Size() int {
	return len(s.seen)
}
