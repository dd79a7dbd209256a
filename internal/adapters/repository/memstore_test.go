package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func artifact(name string) Artifact {
	return Artifact{Filename: name, ContentType: "text/csv", Data: []byte("a,b\n1,2\n")}
}

func TestInMemoryStore_BasicOperations(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewInMemoryStore(WithClock(func() time.Time { return at }))

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	in := artifact("pairs.csv")
	id, err := store.Put(ctx, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected an id")
	}

	// Mutating the caller's buffer must not change the stored copy.
	in.Data[0] = 'X'

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != id || got.Filename != "pairs.csv" || got.ContentType != "text/csv" {
		t.Errorf("unexpected artifact %+v", got)
	}
	if string(got.Data) != "a,b\n1,2\n" {
		t.Errorf("stored data changed: %q", got.Data)
	}
	if got.Size != len(got.Data) {
		t.Errorf("expected size %d, got %d", len(got.Data), got.Size)
	}
	if !got.CreatedAt.Equal(at) {
		t.Errorf("expected created at %v, got %v", at, got.CreatedAt)
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestInMemoryStore_Errors(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrArtifactNotFound) {
		t.Errorf("expected ErrArtifactNotFound, got %v", err)
	}
	if _, err := store.Put(ctx, Artifact{Filename: "empty.pdf"}); !errors.Is(err, ErrEmptyArtifact) {
		t.Errorf("expected ErrEmptyArtifact, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := store.Put(cancelled, artifact("late.csv")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestInMemoryStore_EvictsOldestFirst(t *testing.T) {
	ctx := context.Background()
	next := 0
	store := NewInMemoryStore(
		WithCapacity(2),
		WithIDGenerator(func() string { next++; return fmt.Sprintf("id-%d", next) }),
	)

	for _, name := range []string{"a.csv", "b.csv", "c.csv"} {
		if _, err := store.Put(ctx, artifact(name)); err != nil {
			t.Fatalf("put %s: %v", name, err)
		}
	}

	if count := store.Count(ctx); count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if _, err := store.Get(ctx, "id-1"); !errors.Is(err, ErrArtifactNotFound) {
		t.Errorf("expected oldest artifact to be evicted, got %v", err)
	}
	for _, id := range []string{"id-2", "id-3"} {
		if _, err := store.Get(ctx, id); err != nil {
			t.Errorf("expected %s to be kept: %v", id, err)
		}
	}
}

func TestInMemoryStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(WithCapacity(50))

	var wg sync.WaitGroup
	ids := make(chan string, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := store.Put(ctx, artifact(fmt.Sprintf("%d.csv", i)))
			if err != nil {
				t.Errorf("put: %v", err)
				return
			}
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
	}
	if count := store.Count(ctx); count != 50 {
		t.Errorf("expected count 50, got %d", count)
	}
}
