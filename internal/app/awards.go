package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/fastfishy/internal/adapters/render"
	"github.com/okian/fastfishy/internal/adapters/tabular"
	"github.com/okian/fastfishy/internal/domain/awards"
	"github.com/okian/fastfishy/internal/domain/history"
	"github.com/okian/fastfishy/internal/domain/model"
	"github.com/okian/fastfishy/pkg/logger"
	"github.com/okian/fastfishy/pkg/metrics"
)

// Award kinds.
const (
	KindImprovements = "improvements"
	KindTripleDrops  = "triple-drops"
	KindFastFishy    = "fast-fishy"
)

// label metric value for per-swim improvement labels, whose category is the event.
const awardImprovement = "Improvement"

// AwardResult is the outcome of one award engine for one meet.
type AwardResult struct {
	Kind      string                       `json:"kind"`
	Meet      model.Meet                   `json:"meet"`
	Labels    []model.AwardLabel           `json:"labels"`
	Rankings  map[string][]model.RankEntry `json:"rankings,omitempty"`
	AgeGroups []string                     `json:"age_groups,omitempty"`
	// Winners lists, per age group, the Fast Fishy winners of earlier meets.
	Winners   map[string][]string `json:"previous_winners,omitempty"`
	Artifacts []ArtifactRef       `json:"artifacts,omitempty"`
}

// LoadHistory parses an uploaded history table.
func (s *Service) LoadHistory(ctx context.Context, filename string, data []byte) (*history.Table, error) {
	format, err := tabular.FormatFromName(filename)
	if err != nil {
		metrics.RecordDocumentIngested(metrics.KindHistory, metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFile, err)
	}
	t, err := tabular.Read(bytes.NewReader(data), format)
	if err != nil {
		metrics.RecordDocumentIngested(metrics.KindHistory, metrics.OutcomeError)
		metrics.RecordErrorByComponent("tabular", "read")
		s.log().Warn(ctx, "history rejected", logger.String("file", filename), logger.Error(err))
		return nil, err
	}
	metrics.RecordDocumentIngested(metrics.KindHistory, metrics.OutcomeOK)
	s.tables.Add(1)
	s.log().Debug(ctx, "history loaded",
		logger.String("file", filename),
		logger.Int("rows", t.Len()),
		logger.Int("meets", len(t.Meets())),
	)
	return t, nil
}

// LoadHistoryFile reads a history table from disk.
func (s *Service) LoadHistoryFile(ctx context.Context, path string) (*history.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.LoadHistory(ctx, filepath.Base(path), data)
}

// Meets returns the meets of t that hold at least one numeric result.
func (s *Service) Meets(_ context.Context, t *history.Table) ([]model.Meet, error) {
	if t == nil {
		return nil, ErrNoHistory
	}
	meets := t.MeetsWithData()
	if meets == nil {
		meets = make([]model.Meet, 0)
	}
	return meets, nil
}

// Award dispatches to the engine named by kind.
func (s *Service) Award(ctx context.Context, kind string, t *history.Table, meet string) (*AwardResult, error) {
	switch kind {
	case KindImprovements:
		return s.Improvements(ctx, t, meet)
	case KindTripleDrops:
		return s.TripleDrops(ctx, t, meet)
	case KindFastFishy:
		return s.FastFishy(ctx, t, meet)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAward, kind)
}

// Improvements labels every improved swim at meet.
func (s *Service) Improvements(ctx context.Context, t *history.Table, meet string) (*AwardResult, error) {
	m, err := s.resolveMeet(ctx, t, meet)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	labels := awards.Improvements(t, meet)
	metrics.RecordEngineLatency(metrics.EngineImprovement, sinceMs(start))
	return s.finish(ctx, &AwardResult{Kind: KindImprovements, Meet: m, Labels: labels}, labelsOf(labels))
}

// TripleDrops labels swimmers who improved in at least three events at meet.
func (s *Service) TripleDrops(ctx context.Context, t *history.Table, meet string) (*AwardResult, error) {
	m, err := s.resolveMeet(ctx, t, meet)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	labels := awards.TripleDrops(t, meet)
	metrics.RecordEngineLatency(metrics.EngineTripleDrop, sinceMs(start))
	return s.finish(ctx, &AwardResult{Kind: KindTripleDrops, Meet: m, Labels: labels}, labelsOf(labels))
}

// FastFishy awards the largest cumulative drop per age group at meet.
func (s *Service) FastFishy(ctx context.Context, t *history.Table, meet string) (*AwardResult, error) {
	m, err := s.resolveMeet(ctx, t, meet)
	if err != nil {
		return nil, err
	}
	res := s.fastFishy(t, meet)
	res.Meet = m
	return s.finish(ctx, res, labelsOf(res.Labels))
}

func (s *Service) fastFishy(t *history.Table, meet string) *AwardResult {
	var opts []awards.FastFishyOption
	if s.recordedWinners {
		opts = append(opts, awards.WithRecordedWinners())
	}
	start := time.Now()
	ff := awards.FastFishy(t, meet, opts...)
	metrics.RecordEngineLatency(metrics.EngineFastFishy, sinceMs(start))
	return &AwardResult{
		Kind:      KindFastFishy,
		Labels:    ff.Labels,
		Rankings:  ff.Rankings,
		AgeGroups: ff.AgeGroups,
		Winners:   awards.Winners(t, meet, opts...),
	}
}

// Season evaluates Fast Fishy for every meet with data. Meets are evaluated
// concurrently over the shared table; results keep meet order.
func (s *Service) Season(ctx context.Context, t *history.Table) ([]AwardResult, error) {
	meets, err := s.Meets(ctx, t)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out := make([]AwardResult, len(meets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, m := range meets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := s.fastFishy(t, m.ID)
			res.Meet = m
			out[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	metrics.RecordEngineLatency(metrics.EngineSeason, sinceMs(start))

	total := 0
	for _, r := range out {
		total += len(r.Labels)
		for award, n := range labelsOf(r.Labels) {
			metrics.RecordLabelsEmitted(award, n)
		}
	}
	s.labels.Add(int64(total))
	s.log().Info(ctx, "season evaluated",
		logger.Int("meets", len(meets)),
		logger.Int("labels", total),
		logger.Duration("elapsed", time.Since(start)),
	)
	return out, nil
}

// LabelSheet renders labels onto an Avery 5160 sheet and stores it.
func (s *Service) LabelSheet(ctx context.Context, labels []model.AwardLabel) (*ArtifactRef, error) {
	return s.store(ctx, "labels_"+stamp(s.now())+".pdf", ContentTypePDF, func(b *bytes.Buffer) error {
		return render.WriteLabelSheet(b, labels)
	})
}

func (s *Service) resolveMeet(ctx context.Context, t *history.Table, meet string) (model.Meet, error) {
	if err := ctx.Err(); err != nil {
		return model.Meet{}, err
	}
	if t == nil {
		return model.Meet{}, ErrNoHistory
	}
	m, ok := t.Meet(meet)
	if !ok {
		return model.Meet{}, fmt.Errorf("%w: %q", ErrUnknownMeet, meet)
	}
	return m, nil
}

// finish records label metrics and attaches rendered artifacts.
func (s *Service) finish(ctx context.Context, res *AwardResult, counts map[string]int) (*AwardResult, error) {
	for award, n := range counts {
		metrics.RecordLabelsEmitted(award, n)
	}
	s.labels.Add(int64(len(res.Labels)))

	prefix := res.Kind + "_" + res.Meet.ID + "_" + stamp(s.now())
	outputs := []struct {
		name, contentType string
		write             func(*bytes.Buffer) error
	}{
		{prefix + "_labels.pdf", ContentTypePDF, func(b *bytes.Buffer) error { return render.WriteLabelSheet(b, res.Labels) }},
		{prefix + ".csv", ContentTypeCSV, func(b *bytes.Buffer) error { return render.WriteLabelsCSV(b, res.Labels) }},
		{prefix + ".xlsx", ContentTypeXLSX, func(b *bytes.Buffer) error {
			return render.WriteLabelsXLSX(b, res.Labels, res.Rankings, res.AgeGroups)
		}},
	}
	for _, o := range outputs {
		ref, err := s.store(ctx, o.name, o.contentType, o.write)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			res.Artifacts = append(res.Artifacts, *ref)
		}
	}

	s.log().Info(ctx, "awards evaluated",
		logger.String("kind", res.Kind),
		logger.String("meet", res.Meet.ID),
		logger.Int("labels", len(res.Labels)),
	)
	return res, nil
}

// labelsOf counts labels per award, ignoring the age group suffix.
func labelsOf(labels []model.AwardLabel) map[string]int {
	counts := map[string]int{}
	for _, l := range labels {
		switch {
		case l.IsFastFishy():
			counts[model.CategoryFastFishy]++
		case strings.HasPrefix(l.Category, model.CategoryHonorableMention):
			counts[model.CategoryHonorableMention]++
		case l.Category == model.CategoryTripleDrop:
			counts[model.CategoryTripleDrop]++
		default:
			counts[awardImprovement]++
		}
	}
	return counts
}
