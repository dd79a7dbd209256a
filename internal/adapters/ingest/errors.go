package ingest

import "errors"

// Sentinel errors for report ingestion.
var (
	// ErrNoText is returned when a document yields no extractable text.
	ErrNoText = errors.New("ingest: no extractable text")
	// ErrNoEvents is returned when no event line could be recognised.
	ErrNoEvents = errors.New("ingest: no events found")
	// ErrInvalidRecord marks an externally extracted row that cannot become an event.
	ErrInvalidRecord = errors.New("ingest: invalid event record")
)
