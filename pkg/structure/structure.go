package structure

// Entry pairs a registry key with its descriptor.
type Entry struct {
	Key        string
	Descriptor Descriptor
}

// Structure is an insertion-ordered mapping from registry key to descriptor.
// Re-setting an existing key replaces the descriptor but keeps the position
// of the first insertion. The zero value is ready to use.
type Structure struct {
	keys    []string
	entries map[string]Descriptor
}

// New builds a structure from entries, in order.
func New(entries ...Entry) *Structure {
	s := &Structure{}
	for _, entry := range entries {
		s.Set(entry.Key, entry.Descriptor)
	}
	return s
}

// Set stores the descriptor under key. Last write wins.
func (s *Structure) Set(key string, d Descriptor) {
	if s.entries == nil {
		s.entries = make(map[string]Descriptor)
	}
	if _, exists := s.entries[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.entries[key] = d
}

// Get returns the descriptor stored under key.
func (s *Structure) Get(key string) (Descriptor, bool) {
	if s == nil || s.entries == nil {
		return Descriptor{}, false
	}
	d, ok := s.entries[key]
	return d, ok
}

// Has reports whether key is present.
func (s *Structure) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Delete removes key, preserving the order of the remaining entries.
func (s *Structure) Delete(key string) {
	if s == nil || s.entries == nil {
		return
	}
	if _, ok := s.entries[key]; !ok {
		return
	}
	delete(s.entries, key)
	for idx, existing := range s.keys {
		if existing == key {
			s.keys = append(s.keys[:idx:idx], s.keys[idx+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (s *Structure) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Empty reports whether the structure holds no entries.
func (s *Structure) Empty() bool {
	return s.Len() == 0
}

// Keys returns the keys in insertion order.
func (s *Structure) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Entries returns the entries in insertion order.
func (s *Structure) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, 0, len(s.keys))
	for _, key := range s.keys {
		out = append(out, Entry{Key: key, Descriptor: s.entries[key]})
	}
	return out
}

// Each visits entries in insertion order until fn returns false.
func (s *Structure) Each(fn func(key string, d Descriptor) bool) {
	if s == nil || fn == nil {
		return
	}
	for _, key := range s.keys {
		if !fn(key, s.entries[key]) {
			return
		}
	}
}

// Clone returns a deep copy.
func (s *Structure) Clone() *Structure {
	out := &Structure{}
	if s == nil {
		return out
	}
	for _, key := range s.keys {
		out.Set(key, s.entries[key].Clone())
	}
	return out
}
