package history

import (
	"github.com/okian/fastfishy/internal/domain/swimtime"
)

// Result is a parsed historical result.
type Result struct {
	Meet    string
	Seconds float64
	Raw     string // cleaned display string, e.g. "1:05.00"
}

// ResultAt parses the "<meet>-Result" cell.
func (r Row) ResultAt(meet string) (Result, bool) {
	raw, ok := r.MeetValue(meet, FieldResult)
	if !ok {
		return Result{}, false
	}
	secs, err := swimtime.ParseSeconds(raw)
	if err != nil {
		return Result{}, false
	}
	return Result{Meet: meet, Seconds: secs, Raw: swimtime.Clean(raw)}, true
}

// PriorResult returns the most recent valid result strictly before meet, by
// chronological meet order.
func (t *Table) PriorResult(r Row, meet string) (Result, bool) {
	prior := t.PriorMeets(meet)
	for i := len(prior) - 1; i >= 0; i-- {
		if res, ok := r.ResultAt(prior[i].ID); ok {
			return res, true
		}
	}
	return Result{}, false
}

// BestPriorResult returns the fastest valid result strictly before meet.
// Ties keep the earlier meet.
func (t *Table) BestPriorResult(r Row, meet string) (Result, bool) {
	var best Result
	found := false
	for _, m := range t.PriorMeets(meet) {
		res, ok := r.ResultAt(m.ID)
		if !ok {
			continue
		}
		if !found || res.Seconds < best.Seconds {
			best = res
			found = true
		}
	}
	return best, found
}
