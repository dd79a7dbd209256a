package api

import (
	"net/http"

	service "github.com/okian/fastfishy/internal/app"
	"github.com/okian/fastfishy/internal/domain/history"
	"github.com/okian/fastfishy/internal/domain/model"
)

type meetsResponse struct {
	Meets []model.Meet `json:"meets"`
}

type seasonResponse struct {
	Results []service.AwardResult `json:"results"`
}

// AwardsHandler handles history uploads and award evaluation.
type AwardsHandler struct {
	deps Dependencies
	up   uploader
}

// NewAwardsHandler creates a new awards handler.
func NewAwardsHandler(deps Dependencies, up uploader) *AwardsHandler {
	return &AwardsHandler{deps: deps, up: up}
}

// HandlePostMeets handles POST /meets and lists the meets holding data.
func (h *AwardsHandler) HandlePostMeets(w http.ResponseWriter, r *http.Request) {
	t, ok := h.table(w, r)
	if !ok {
		return
	}
	meets, err := h.deps.Meets(r.Context(), t)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meetsResponse{Meets: meets})
}

// HandlePostAward handles POST /awards/{kind}?meet=MeetN.
func (h *AwardsHandler) HandlePostAward(w http.ResponseWriter, r *http.Request) {
	t, ok := h.table(w, r)
	if !ok {
		return
	}
	meet := r.URL.Query().Get("meet")
	if meet == "" {
		writeServiceError(w, ErrMissingMeet)
		return
	}
	res, err := h.deps.Award(r.Context(), r.PathValue("kind"), t, meet)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandlePostSeason handles POST /season: Fast Fishy for every meet.
func (h *AwardsHandler) HandlePostSeason(w http.ResponseWriter, r *http.Request) {
	t, ok := h.table(w, r)
	if !ok {
		return
	}
	results, err := h.deps.Season(r.Context(), t)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, seasonResponse{Results: results})
}

// table checks the method and loads the uploaded history table. On failure
// the response has already been written.
func (h *AwardsHandler) table(w http.ResponseWriter, r *http.Request) (*history.Table, bool) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return nil, false
	}
	up, err := h.up.read(w, r)
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	t, err := h.deps.LoadHistory(r.Context(), up.Filename, up.Data)
	if err != nil {
		writeServiceError(w, err)
		return nil, false
	}
	return t, true
}
