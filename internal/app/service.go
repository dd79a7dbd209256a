// Package service wires the combination and award engines to document
// ingestion, rendering and the artifact store. It backs both the HTTP API
// and the command line.
package service

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/fastfishy/internal/adapters/repository"
	"github.com/okian/fastfishy/internal/domain/combine"
	"github.com/okian/fastfishy/pkg/logger"
)

// Content types of generated artifacts.
const (
	ContentTypeCSV  = "text/csv"
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ArtifactRef points at a stored artifact.
type ArtifactRef struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// Service runs the engines. All engine calls are read-only over their inputs
// and safe for concurrent use.
type Service struct {
	mu sync.RWMutex

	lanes           int
	aggressiveness  int
	parallelism     int
	recordedWinners bool

	artifacts repository.Store
	now       func() time.Time

	started bool

	// Counters reported by GetStats.
	reports atomic.Int64
	tables  atomic.Int64
	labels  atomic.Int64

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		lanes:          combine.DefaultLanes,
		aggressiveness: combine.DefaultAggressiveness,
		parallelism:    runtime.NumCPU(),
		now:            time.Now,
		logger:         nil, // resolved in Start
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start resolves the logger. Engines can be called before Start; they log
// through a no-op logger until then.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.started = true
	s.logger.Info(ctx, "meet service started",
		logger.Int("lanes", s.lanes),
		logger.Int("aggressiveness", s.aggressiveness),
		logger.Int("parallelism", s.parallelism),
		logger.Bool("artifacts", s.artifacts != nil),
		logger.Bool("recordedWinners", s.recordedWinners),
	)
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "meet service stopped")
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Nop()
	}
	return s.logger
}

// combiner builds a Combiner from the service defaults overridden by opts.
func (s *Service) combiner(opts ...combine.Option) *combine.Combiner {
	base := []combine.Option{combine.WithLanes(s.lanes), combine.WithAggressiveness(s.aggressiveness)}
	return combine.New(append(base, opts...)...)
}

// store renders with write and keeps the result when an artifact store is
// configured. Without a store it returns nil.
func (s *Service) store(ctx context.Context, filename, contentType string, write func(*bytes.Buffer) error) (*ArtifactRef, error) {
	if s.artifacts == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", filename, err)
	}
	id, err := s.artifacts.Put(ctx, repository.Artifact{Filename: filename, ContentType: contentType, Data: buf.Bytes()})
	if err != nil {
		return nil, fmt.Errorf("store %s: %w", filename, err)
	}
	return &ArtifactRef{ID: id, Filename: filename, ContentType: contentType}, nil
}

// Artifact returns a stored artifact by id.
func (s *Service) Artifact(ctx context.Context, id string) (repository.Artifact, error) {
	if s.artifacts == nil {
		return repository.Artifact{}, fmt.Errorf("%w: %s", repository.ErrArtifactNotFound, id)
	}
	return s.artifacts.Get(ctx, id)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"lanes":           s.lanes,
		"aggressiveness":  s.aggressiveness,
		"parallelism":     s.parallelism,
		"recordedWinners": s.recordedWinners,
		"reportsCombined": s.reports.Load(),
		"tablesLoaded":    s.tables.Load(),
		"labelsEmitted":   s.labels.Load(),
	}
	if s.artifacts != nil {
		stats["artifacts"] = s.artifacts.Count(context.Background())
	}
	return stats
}

func stamp(t time.Time) string {
	return t.Format("20060102_150405")
}

func sinceMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
