package service

import (
	"github.com/okian/fastfishy/internal/adapters/repository"
	"github.com/okian/fastfishy/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLanes sets the default pool lane count for combinations.
func WithLanes(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.lanes = n
		}
	}
}

// WithAggressiveness sets the default minimum remainder for combinations.
func WithAggressiveness(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.aggressiveness = n
		}
	}
}

// WithParallelism bounds concurrent meet evaluations in Season.
func WithParallelism(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithArtifactStore enables rendering of downloadable files into store.
func WithArtifactStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.artifacts = store
		}
	}
}

// WithRecordedWinners seeds Fast Fishy winners from Meet<k>-Label cells.
func WithRecordedWinners(enabled bool) Option {
	return func(s *Service) {
		s.recordedWinners = enabled
	}
}
