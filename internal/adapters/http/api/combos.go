package api

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/okian/fastfishy/internal/adapters/ingest"
	"github.com/okian/fastfishy/internal/domain/combine"
	"github.com/okian/fastfishy/internal/domain/model"
)

// comboRequest mirrors the OpenAPI schema for JSON POST /combos.
type comboRequest struct {
	Title          string        `json:"title"`
	Lanes          *int          `json:"lanes,omitempty"`
	Aggressiveness *int          `json:"aggressiveness,omitempty"`
	Events         []model.Event `json:"events"`
}

// ComboHandler handles combination requests.
type ComboHandler struct {
	deps Dependencies
	up   uploader
}

// NewComboHandler creates a new combo handler.
func NewComboHandler(deps Dependencies, up uploader) *ComboHandler {
	return &ComboHandler{deps: deps, up: up}
}

// HandlePostCombos handles POST /combos. It accepts either a multipart
// upload of a Session Report or event table, or a JSON list of events.
func (h *ComboHandler) HandlePostCombos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		h.postJSON(w, r)
		return
	}

	up, err := h.up.read(w, r)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	opts, err := comboOptions(r.FormValue("lanes"), r.FormValue("aggressiveness"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	res, err := h.deps.CombineUpload(r.Context(), up.Filename, up.Data, opts...)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *ComboHandler) postJSON(w http.ResponseWriter, r *http.Request) {
	var req comboRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.up.maxBytes)).Decode(&req); err != nil {
		writeServiceError(w, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if len(req.Events) == 0 {
		writeServiceError(w, fmt.Errorf("%w: %w", ErrBadRequest, ingest.ErrNoEvents))
		return
	}
	var opts []combine.Option
	if req.Lanes != nil {
		if *req.Lanes < 1 {
			writeServiceError(w, fmt.Errorf("%w: lanes must be positive", ErrBadRequest))
			return
		}
		opts = append(opts, combine.WithLanes(*req.Lanes))
	}
	if req.Aggressiveness != nil {
		if *req.Aggressiveness < 0 {
			writeServiceError(w, fmt.Errorf("%w: aggressiveness must not be negative", ErrBadRequest))
			return
		}
		opts = append(opts, combine.WithAggressiveness(*req.Aggressiveness))
	}
	title := req.Title
	if title == "" {
		title = ingest.DefaultMeetTitle
	}
	res, err := h.deps.CombineReport(r.Context(), title, req.Events, opts...)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// comboOptions parses the optional lanes and aggressiveness form fields.
func comboOptions(lanes, aggressiveness string) ([]combine.Option, error) {
	var opts []combine.Option
	if lanes != "" {
		n, err := strconv.Atoi(lanes)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: invalid lanes %q", ErrBadRequest, lanes)
		}
		opts = append(opts, combine.WithLanes(n))
	}
	if aggressiveness != "" {
		n, err := strconv.Atoi(aggressiveness)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: invalid aggressiveness %q", ErrBadRequest, aggressiveness)
		}
		opts = append(opts, combine.WithAggressiveness(n))
	}
	return opts, nil
}
