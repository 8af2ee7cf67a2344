package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithIDFunc replaces the identifier generator. Tests use this for
// deterministic ids; production keeps the random UUID default.
func WithIDFunc(fn func() string) Option {
	return func(s *MemoryStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}
