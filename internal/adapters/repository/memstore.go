package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/fastfishy/pkg/metrics"
)

// InMemoryStore is a bounded, process-local Store. When full, the oldest
// artifact is evicted first.
type InMemoryStore struct {
	mu       sync.RWMutex
	capacity int
	byID     map[string]Artifact
	order    []string // insertion order, oldest first
	now      func() time.Time
	newID    func() string
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty store.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		capacity: DefaultCapacity,
		byID:     make(map[string]Artifact),
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores a copy of a under a fresh id.
func (s *InMemoryStore) Put(ctx context.Context, a Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(a.Data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyArtifact, a.Filename)
	}

	a.ID = s.newID()
	a.Size = len(a.Data)
	a.CreatedAt = s.now()
	a.Data = append([]byte(nil), a.Data...)

	s.mu.Lock()
	for len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.byID, oldest)
	}
	s.byID[a.ID] = a
	s.order = append(s.order, a.ID)
	n := len(s.order)
	s.mu.Unlock()

	metrics.UpdateArtifactsStored(n)
	return a.ID, nil
}

// Get returns the artifact stored under id.
func (s *InMemoryStore) Get(ctx context.Context, id string) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	s.mu.RLock()
	a, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return Artifact{}, fmt.Errorf("%w: %s", ErrArtifactNotFound, id)
	}
	return a, nil
}

// Count returns the number of artifacts held.
func (s *InMemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
