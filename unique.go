package rssfixer

// KeySet records keys already emitted during one extraction run so that
// duplicates are dropped while first occurrences keep their position.
// A KeySet is not safe for concurrent use and must not be shared across runs.
type KeySet struct {
	seen map[string]struct{}
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{seen: make(map[string]struct{})}
}

// Add records key and reports whether it was new.
func (s *KeySet) Add(key string) bool {
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}

// Len returns the number of distinct keys recorded.
func (s *KeySet) Len() int {
	return len(s.seen)
}
