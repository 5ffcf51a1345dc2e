package attributes

// Store is read/write access to a flat namespace of string-keyed,
// string-valued attributes. Implementations are not safe for concurrent
// mutation.
type Store interface {
	// Get returns the value stored under the exact key.
	Get(key string) (string, bool)

	// Set stores value under key, replacing any previous value.
	Set(key, value string)
}

// Map is a Store backed by a plain map.
type Map map[string]string

// Get returns the value stored under key.
func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Set stores value under key.
func (m Map) Set(key, value string) {
	m[key] = value
}
