package store

// MemoryKV keeps entries in process memory. It backs the session when the
// database cannot be opened, and the tests.
type MemoryKV struct {
	entries map[string]string
}

// NewMemoryKV returns an empty in-memory store
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{entries: make(map[string]string)}
}

// Get returns ErrMissing for unknown keys
func (m *MemoryKV) Get(key string) (string, error) {
	v, ok := m.entries[key]
	if !ok {
		return "", ErrMissing
	}
	return v, nil
}

// Set stores a value
func (m *MemoryKV) Set(key, value string) error {
	m.entries[key] = value
	return nil
}
