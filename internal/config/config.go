// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers a YAML file and environment variables on top of New().
// - Validation failures wrap ErrInvalidConfig; source failures wrap ErrLoadConfig.
package config

import (
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// Lanes is the pool's lane count used by the combination engine.
	Lanes int `koanf:"lanes" validate:"gte=1"`

	// Aggressiveness is the minimum leftover-swimmer count an event needs
	// before it is worth combining.
	Aggressiveness int `koanf:"aggressiveness" validate:"gte=0"`

	// MaxUploadMB caps multipart uploads on the HTTP API.
	MaxUploadMB int `koanf:"max_upload_mb" validate:"gte=1"`

	// ArtifactCapacity bounds the number of generated files kept for download.
	ArtifactCapacity int `koanf:"artifact_capacity" validate:"gte=1"`

	// Parallelism limits concurrent meet evaluations in a season run.
	Parallelism int `koanf:"parallelism" validate:"gte=1"`

	// RecordWinnerLabels seeds Fast Fishy winners from Meet<k>-Label cells.
	RecordWinnerLabels bool `koanf:"record_winner_labels"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		Lanes:            6,
		Aggressiveness:   1,
		MaxUploadMB:      20,
		ArtifactCapacity: 256,
		Parallelism:      runtime.NumCPU(),
	}
}

// MaxUploadBytes returns MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
