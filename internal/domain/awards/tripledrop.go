package awards

import (
	"sort"
	"strconv"
	"strings"

	"github.com/okian/fastfishy/internal/domain/history"
	"github.com/okian/fastfishy/internal/domain/model"
)

// MinTripleDropEvents is the number of distinct improved events that earns a Triple Drop.
const MinTripleDropEvents = 3

// TripleDrops returns one label per swimmer who improved in at least
// MinTripleDropEvents distinct events at meet, ordered by swimmer key.
func TripleDrops(t *history.Table, meet string) []model.AwardLabel {
	labels := make([]model.AwardLabel, 0)
	if t == nil || !t.HasColumns(meet, history.FieldImproved, history.FieldDate, history.FieldName, history.FieldResultSec) {
		return labels
	}

	type tally struct {
		first  history.Row
		events map[string]struct{}
	}
	tallies := map[string]*tally{}
	var keys []string

	for i, row := range t.Rows() {
		if !row.Improved(meet) {
			continue
		}
		key := row.SwimmerKey()
		if key == "" {
			continue
		}
		tl, ok := tallies[key]
		if !ok {
			tl = &tally{first: row, events: map[string]struct{}{}}
			tallies[key] = tl
			keys = append(keys, key)
		}
		event := row.EventName()
		if event == "" {
			event = "#" + strconv.Itoa(i)
		}
		tl.events[event] = struct{}{}
	}

	sort.Strings(keys)
	for _, key := range keys {
		tl := tallies[key]
		if len(tl.events) < MinTripleDropEvents {
			continue
		}
		row := tl.first
		age := history.NormalizeAgeGroup(row.AgeGroup())
		team := row.Team()
		date, _ := row.MeetValue(meet, history.FieldDate)
		meetName, _ := row.MeetValue(meet, history.FieldName)

		labels = append(labels, model.AwardLabel{
			Name:     row.DisplayName(),
			Category: model.CategoryTripleDrop,
			Detail:   joinNonEmpty(" - ", age, team),
			Date:     date,
			MeetName: meetName,
			AgeGroup: age,
			Team:     team,
		})
	}
	return labels
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
