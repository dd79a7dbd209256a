package awards

import (
	"fmt"

	"github.com/okian/fastfishy/internal/domain/history"
	"github.com/okian/fastfishy/internal/domain/model"
	"github.com/okian/fastfishy/internal/domain/swimtime"
)

// Improvements returns one label per row flagged Improved at meet that has an
// earlier valid result. The baseline is the most recent prior result, not the
// fastest. A non-positive recomputed drop is still reported, as "0.00s".
func Improvements(t *history.Table, meet string) []model.AwardLabel {
	labels := make([]model.AwardLabel, 0)
	if t == nil || !t.HasColumns(meet, history.FieldImproved, history.FieldResult, history.FieldDate, history.FieldName) {
		return labels
	}

	for _, row := range t.Rows() {
		if !row.Improved(meet) {
			continue
		}
		current, ok := row.ResultAt(meet)
		if !ok {
			continue
		}
		prior, ok := t.PriorResult(row, meet)
		if !ok {
			continue
		}

		date, _ := row.MeetValue(meet, history.FieldDate)
		meetName, _ := row.MeetValue(meet, history.FieldName)
		labels = append(labels, model.AwardLabel{
			Name:     row.DisplayName(),
			Category: row.EventName(),
			Detail:   fmt.Sprintf("Previous best: %s (%s)", prior.Raw, swimtime.FormatDrop(prior.Seconds-current.Seconds)),
			Date:     date,
			MeetName: meetName,
			AgeGroup: row.AgeGroup(),
			Team:     row.Team(),
		})
	}
	return labels
}
