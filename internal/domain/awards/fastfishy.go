package awards

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/fastfishy/internal/domain/history"
	"github.com/okian/fastfishy/internal/domain/model"
	"github.com/okian/fastfishy/internal/domain/swimtime"
)

// FastFishyResult is the outcome of the Fast Fishy engine for one meet.
type FastFishyResult struct {
	Meet string `json:"meet"`
	// Labels holds, per age group, the Fast Fishy label followed by the
	// Honorable Mentions of earlier winners.
	Labels []model.AwardLabel `json:"labels"`
	// Rankings lists every candidate per age group, highest total drop first.
	Rankings map[string][]model.RankEntry `json:"rankings"`
	// AgeGroups is the order in which age groups were evaluated.
	AgeGroups []string `json:"age_groups"`
	// Winners maps age group to the swimmer key awarded at this meet.
	Winners map[string]string `json:"winners"`
}

func emptyResult(meet string) FastFishyResult {
	return FastFishyResult{
		Meet:      meet,
		Labels:    make([]model.AwardLabel, 0),
		Rankings:  map[string][]model.RankEntry{},
		AgeGroups: make([]string, 0),
		Winners:   map[string]string{},
	}
}

// FastFishyOption configures the Fast Fishy engine.
type FastFishyOption func(*fastFishyConfig)

type fastFishyConfig struct {
	recordedWinners bool
}

// WithRecordedWinners also treats "Meet<k>-Label" cells reading "Fast Fishy"
// as wins at meet k when accumulating earlier winners.
func WithRecordedWinners() FastFishyOption {
	return func(c *fastFishyConfig) { c.recordedWinners = true }
}

// FastFishy awards, per age group, the swimmer with the largest cumulative
// drop at meet against their best earlier result. Swimmers who won at an
// earlier meet are passed over (and given an Honorable Mention) unless they
// are the only candidate in the age group.
func FastFishy(t *history.Table, meet string, opts ...FastFishyOption) FastFishyResult {
	cfg := fastFishyConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if t == nil {
		return emptyResult(meet)
	}
	prior := t.PriorMeets(meet)
	if len(prior) == 0 {
		return emptyResult(meet)
	}
	return evaluateMeet(t, meet, accumulateWinners(t, prior, cfg))
}

// Winners returns the swimmer keys, per age group, that won Fast Fishy at any
// meet strictly before meet. Keys are sorted within each age group.
func Winners(t *history.Table, meet string, opts ...FastFishyOption) map[string][]string {
	cfg := fastFishyConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	out := map[string][]string{}
	if t == nil {
		return out
	}
	for age, keys := range accumulateWinners(t, t.PriorMeets(meet), cfg) {
		list := make([]string, 0, len(keys))
		for k := range keys {
			list = append(list, k)
		}
		sort.Strings(list)
		out[age] = list
	}
	return out
}

// winnerSet holds swimmer keys per age group. A step of the fold never
// mutates the set it was given; with returns an extended copy.
type winnerSet map[string]map[string]struct{}

func (w winnerSet) has(age, key string) bool {
	_, ok := w[age][key]
	return ok
}

func (w winnerSet) with(age, key string) winnerSet {
	if w.has(age, key) {
		return w
	}
	out := make(winnerSet, len(w)+1)
	for a, keys := range w {
		out[a] = keys
	}
	group := make(map[string]struct{}, len(w[age])+1)
	for k := range w[age] {
		group[k] = struct{}{}
	}
	group[key] = struct{}{}
	out[age] = group
	return out
}

// accumulateWinners folds over prior meets in chronological order. The
// winner of each meet is computed with the history and the winners that
// precede it, then added to the accumulator carried into the next meet.
func accumulateWinners(t *history.Table, prior []model.Meet, cfg fastFishyConfig) winnerSet {
	acc := winnerSet{}
	for _, m := range prior {
		step := evaluateMeet(t, m.ID, acc)
		for _, age := range step.AgeGroups {
			if key, ok := step.Winners[age]; ok {
				acc = acc.with(age, key)
			}
		}
		if cfg.recordedWinners {
			acc = withRecorded(t, m.ID, acc)
		}
	}
	return acc
}

func withRecorded(t *history.Table, meet string, acc winnerSet) winnerSet {
	if !t.HasColumns(meet, history.FieldLabel) {
		return acc
	}
	for _, row := range t.Rows() {
		label, ok := row.MeetValue(meet, history.FieldLabel)
		if !ok || !strings.HasPrefix(label, model.CategoryFastFishy) {
			continue
		}
		if key := row.SwimmerKey(); key != "" {
			acc = acc.with(row.AgeGroup(), key)
		}
	}
	return acc
}

type fishyCandidate struct {
	key      string
	name     string
	date     string
	meetName string
	total    float64
}

// evaluateMeet computes one meet's outcome given the winners of earlier meets.
func evaluateMeet(t *history.Table, meet string, winners winnerSet) FastFishyResult {
	res := emptyResult(meet)
	if len(t.PriorMeets(meet)) == 0 {
		return res
	}
	if !t.HasColumns(meet, history.FieldImproved, history.FieldResult, history.FieldDate, history.FieldName) {
		return res
	}

	groups := map[string][]*fishyCandidate{}
	index := map[string]map[string]*fishyCandidate{}

	for _, row := range t.Rows() {
		if !row.Improved(meet) {
			continue
		}
		current, ok := row.ResultAt(meet)
		if !ok {
			continue
		}
		base, ok := t.BestPriorResult(row, meet)
		if !ok {
			continue
		}
		drop := base.Seconds - current.Seconds
		if drop <= 0 {
			continue
		}

		age, key := row.AgeGroup(), row.SwimmerKey()
		if index[age] == nil {
			index[age] = map[string]*fishyCandidate{}
		}
		c, ok := index[age][key]
		if !ok {
			date, _ := row.MeetValue(meet, history.FieldDate)
			meetName, _ := row.MeetValue(meet, history.FieldName)
			c = &fishyCandidate{key: key, name: row.DisplayName(), date: date, meetName: meetName}
			index[age][key] = c
			groups[age] = append(groups[age], c)
		}
		c.total += drop
	}

	for age := range groups {
		res.AgeGroups = append(res.AgeGroups, age)
	}
	sort.Strings(res.AgeGroups)

	for _, age := range res.AgeGroups {
		list := groups[age]
		sort.SliceStable(list, func(i, j int) bool { return list[i].total > list[j].total })

		ranking := make([]model.RankEntry, 0, len(list))
		for _, c := range list {
			ranking = append(ranking, model.RankEntry{Name: c.name, TotalDrop: c.total, Display: swimtime.FormatTotalDrop(c.total)})
		}
		res.Rankings[age] = ranking

		winner := selectWinner(list, age, winners)
		if winner != nil {
			res.Winners[age] = winner.key
			res.Labels = append(res.Labels, fishyLabel(winner, model.CategoryFastFishy, age))
		}
		for _, c := range list {
			if c != winner && winners.has(age, c.key) {
				res.Labels = append(res.Labels, fishyLabel(c, model.CategoryHonorableMention, age))
			}
		}
	}
	return res
}

// selectWinner picks the first candidate, by rank, that has not won before.
// A lone candidate always wins.
func selectWinner(ranked []*fishyCandidate, age string, winners winnerSet) *fishyCandidate {
	if len(ranked) == 1 {
		return ranked[0]
	}
	for _, c := range ranked {
		if !winners.has(age, c.key) {
			return c
		}
	}
	return nil
}

func fishyLabel(c *fishyCandidate, category, age string) model.AwardLabel {
	return model.AwardLabel{
		Name:     c.name,
		Category: category + " - " + age,
		Detail:   fmt.Sprintf("Total time drop: %s", swimtime.FormatTotalDrop(c.total)),
		Date:     c.date,
		MeetName: c.meetName,
		AgeGroup: age,
	}
}
