// Package repository keeps generated reports and label sheets for download.
package repository

import (
	"context"
	"time"
)

// Artifact is a generated file held for download.
type Artifact struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
	Data        []byte    `json:"-"`
}

// Store provides read/write access to generated artifacts.
type Store interface {
	// Put stores a and returns its assigned id.
	Put(ctx context.Context, a Artifact) (string, error)
	// Get returns the artifact with id. Returns ErrArtifactNotFound if unknown
	// or already evicted.
	Get(ctx context.Context, id string) (Artifact, error)
	// Count returns the number of artifacts currently held.
	Count(ctx context.Context) int
}
