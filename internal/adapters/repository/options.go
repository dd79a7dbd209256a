package repository

import "time"

// DefaultCapacity bounds the store when no capacity is configured.
const DefaultCapacity = 256

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithCapacity sets how many artifacts are kept before the oldest is evicted.
func WithCapacity(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *InMemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator replaces the uuid generator, for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *InMemoryStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}
