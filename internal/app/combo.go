package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/okian/fastfishy/internal/adapters/ingest"
	"github.com/okian/fastfishy/internal/adapters/render"
	"github.com/okian/fastfishy/internal/adapters/tabular"
	"github.com/okian/fastfishy/internal/domain/combine"
	"github.com/okian/fastfishy/internal/domain/model"
	"github.com/okian/fastfishy/pkg/logger"
	"github.com/okian/fastfishy/pkg/metrics"
)

// ComboResult is the outcome of one combination run.
type ComboResult struct {
	Title          string                 `json:"title"`
	Lanes          int                    `json:"lanes"`
	Aggressiveness int                    `json:"aggressiveness"`
	Events         []model.Event          `json:"events"`
	Verdicts       []model.Verdict        `json:"verdicts"`
	Pairs          []model.CombinablePair `json:"pairs"`
	Skipped        int                    `json:"skipped"`
	Artifacts      []ArtifactRef          `json:"artifacts,omitempty"`
}

// verdict metric label for rows that are not evaluated (male or mixed events).
const verdictPassThrough = "pass_through"

// ParseDocument turns an uploaded Session Report (PDF) or extracted event
// table (CSV/XLSX) into a report. Tables take their title from filename.
func (s *Service) ParseDocument(ctx context.Context, filename string, data []byte) (*ingest.SessionReport, error) {
	rep, err := parseDocument(filename, data)
	if err != nil {
		metrics.RecordDocumentIngested(metrics.KindReport, metrics.OutcomeError)
		metrics.RecordErrorByComponent("ingest", errorType(err))
		s.log().Warn(ctx, "report rejected", logger.String("file", filename), logger.Error(err))
		return nil, err
	}
	metrics.RecordDocumentIngested(metrics.KindReport, metrics.OutcomeOK)
	metrics.RecordEventsParsed(len(rep.Events), rep.Skipped)
	s.log().Debug(ctx, "report parsed",
		logger.String("file", filename),
		logger.String("title", rep.Title),
		logger.Int("events", len(rep.Events)),
		logger.Int("skipped", rep.Skipped),
	)
	return rep, nil
}

func parseDocument(filename string, data []byte) (*ingest.SessionReport, error) {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return ingest.ParseBytes(data)
	}
	format, err := tabular.FormatFromName(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFile, err)
	}
	sheet, err := tabular.ReadSheet(bytes.NewReader(data), format, ingest.ColNumber)
	if err != nil {
		return nil, err
	}
	events, skipped, err := ingest.BuildEvents(sheet.Header, sheet.Rows)
	if err != nil {
		return nil, err
	}
	metrics.RecordRowsSkipped("invalid_event", skipped)
	return &ingest.SessionReport{
		Title:   strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)),
		Events:  events,
		Skipped: skipped,
	}, nil
}

// CombineDocument reads a report from disk and combines it.
func (s *Service) CombineDocument(ctx context.Context, path string, opts ...combine.Option) (*ComboResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.CombineUpload(ctx, filepath.Base(path), data, opts...)
}

// CombineUpload parses an uploaded document and combines its events.
func (s *Service) CombineUpload(ctx context.Context, filename string, data []byte, opts ...combine.Option) (*ComboResult, error) {
	rep, err := s.ParseDocument(ctx, filename, data)
	if err != nil {
		return nil, err
	}
	res, err := s.CombineReport(ctx, rep.Title, rep.Events, opts...)
	if err != nil {
		return nil, err
	}
	res.Skipped = rep.Skipped
	return res, nil
}

// CombineReport runs the combination engine over events in document order.
// opts override the service's lanes and aggressiveness for this run.
func (s *Service) CombineReport(ctx context.Context, title string, events []model.Event, opts ...combine.Option) (*ComboResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	c := s.combiner(opts...)
	res := &ComboResult{
		Title:          title,
		Lanes:          c.Lanes(),
		Aggressiveness: c.Aggressiveness(),
		Events:         events,
		Pairs:          c.Combine(events),
		Verdicts:       c.EvaluateAll(events),
	}
	if res.Pairs == nil {
		res.Pairs = make([]model.CombinablePair, 0)
	}
	metrics.RecordEngineLatency(metrics.EngineCombine, sinceMs(start))
	metrics.RecordPairsFound(len(res.Pairs))
	for _, v := range res.Verdicts {
		metrics.RecordVerdict(verdictLabel(v))
	}
	s.reports.Add(1)

	if err := s.comboArtifacts(ctx, res); err != nil {
		return nil, err
	}

	s.log().Info(ctx, "events combined",
		logger.String("title", title),
		logger.Int("events", len(events)),
		logger.Int("pairs", len(res.Pairs)),
		logger.Int("lanes", res.Lanes),
		logger.Int("aggressiveness", res.Aggressiveness),
	)
	return res, nil
}

func (s *Service) comboArtifacts(ctx context.Context, res *ComboResult) error {
	now := s.now()
	ts := stamp(now)
	outputs := []struct {
		name, contentType string
		write             func(*bytes.Buffer) error
	}{
		{"combinable_" + ts + ".csv", ContentTypeCSV, func(b *bytes.Buffer) error { return render.WritePairsCSV(b, res.Pairs) }},
		{"combinable_" + ts + ".pdf", ContentTypePDF, func(b *bytes.Buffer) error {
			return render.WritePairsPDF(b, res.Pairs, res.Title, now)
		}},
		{"events_" + ts + ".csv", ContentTypeCSV, func(b *bytes.Buffer) error { return render.WriteVerdictsCSV(b, res.Verdicts) }},
	}
	for _, o := range outputs {
		ref, err := s.store(ctx, o.name, o.contentType, o.write)
		if err != nil {
			return err
		}
		if ref != nil {
			res.Artifacts = append(res.Artifacts, *ref)
		}
	}
	return nil
}

func verdictLabel(v model.Verdict) string {
	switch v.CanCombine {
	case model.CanCombineYes:
		return "combined"
	case model.CanCombineNo:
		return v.Reason
	}
	return verdictPassThrough
}

func errorType(err error) string {
	switch {
	case errors.Is(err, ingest.ErrNoText):
		return "no_text"
	case errors.Is(err, ingest.ErrNoEvents):
		return "no_events"
	case errors.Is(err, ingest.ErrInvalidRecord):
		return "invalid_record"
	case errors.Is(err, ErrUnsupportedFile), errors.Is(err, tabular.ErrUnsupportedFormat):
		return "unsupported"
	}
	return "other"
}
