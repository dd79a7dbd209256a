// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/fastfishy/internal/adapters/ingest"
	"github.com/okian/fastfishy/internal/adapters/repository"
	"github.com/okian/fastfishy/internal/adapters/tabular"
	service "github.com/okian/fastfishy/internal/app"
	"github.com/okian/fastfishy/internal/domain/combine"
	"github.com/okian/fastfishy/internal/domain/history"
	"github.com/okian/fastfishy/internal/domain/model"
)

// DefaultMaxUploadBytes caps request bodies when no limit is configured.
const DefaultMaxUploadBytes int64 = 20 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CombineUpload(ctx context.Context, filename string, data []byte, opts ...combine.Option) (*service.ComboResult, error)
	CombineReport(ctx context.Context, title string, events []model.Event, opts ...combine.Option) (*service.ComboResult, error)

	LoadHistory(ctx context.Context, filename string, data []byte) (*history.Table, error)
	Meets(ctx context.Context, t *history.Table) ([]model.Meet, error)
	Award(ctx context.Context, kind string, t *history.Table, meet string) (*service.AwardResult, error)
	Season(ctx context.Context, t *history.Table) ([]service.AwardResult, error)

	Artifact(ctx context.Context, id string) (repository.Artifact, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	comboHandler    *ComboHandler
	awardsHandler   *AwardsHandler
	artifactHandler *ArtifactHandler
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	maxUploadBytes int64
}

// WithMaxUploadBytes caps the size of request bodies.
func WithMaxUploadBytes(n int64) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxUploadBytes = n
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	cfg := serverConfig{maxUploadBytes: DefaultMaxUploadBytes}
	for _, opt := range opts {
		opt(&cfg)
	}
	up := uploader{maxBytes: cfg.maxUploadBytes}
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		comboHandler:    NewComboHandler(deps, up),
		awardsHandler:   NewAwardsHandler(deps, up),
		artifactHandler: NewArtifactHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/combos", MetricsMiddleware(s.comboHandler.HandlePostCombos, "combos"))
	mux.HandleFunc("/meets", MetricsMiddleware(s.awardsHandler.HandlePostMeets, "meets"))
	mux.HandleFunc("/awards/{kind}", MetricsMiddleware(s.awardsHandler.HandlePostAward, "awards"))
	mux.HandleFunc("/season", MetricsMiddleware(s.awardsHandler.HandlePostSeason, "season"))
	mux.HandleFunc("/artifacts/{id}", MetricsMiddleware(s.artifactHandler.HandleGetArtifact, "artifacts"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service and adapter errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", err)
	case errors.Is(err, service.ErrUnknownMeet),
		errors.Is(err, service.ErrUnknownAward),
		errors.Is(err, repository.ErrArtifactNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, ErrMissingFile),
		errors.Is(err, ErrMissingMeet),
		errors.Is(err, service.ErrUnsupportedFile),
		errors.Is(err, tabular.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, ingest.ErrNoText),
		errors.Is(err, ingest.ErrNoEvents),
		errors.Is(err, ingest.ErrInvalidRecord),
		errors.Is(err, tabular.ErrEmpty),
		errors.Is(err, history.ErrInvalidTable):
		writeError(w, http.StatusUnprocessableEntity, "unprocessable", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
