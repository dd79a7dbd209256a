package awards_test

import (
	"fmt"
	"strconv"

	"github.com/okian/fastfishy/internal/domain/history"
	"github.com/okian/fastfishy/internal/domain/swimtime"
)

// swim is one swimmer/event row across meets 1..n.
type swim struct {
	last, first, age, distance, stroke, team string
	results                                  map[int]string
	improved                                 map[int]bool
	labels                                   map[int]string
}

func buildTable(meets int, withLabels bool, swims ...swim) *history.Table {
	header := []string{"LastName", "FirstName", "LastName_FirstName", "AgeGroup", "EventDistance", "EventStroke", "Team"}
	for k := 1; k <= meets; k++ {
		p := fmt.Sprintf("Meet%d-", k)
		header = append(header, p+"Result", p+"ResultSec", p+"Improved", p+"Date", p+"Name")
		if withLabels {
			header = append(header, p+"Label")
		}
	}

	records := make([][]string, 0, len(swims))
	for _, s := range swims {
		rec := []string{s.last, s.first, s.last + "_" + s.first, s.age, s.distance, s.stroke, s.team}
		for k := 1; k <= meets; k++ {
			res := s.results[k]
			sec := ""
			if v, err := swimtime.ParseSeconds(res); err == nil {
				sec = strconv.FormatFloat(v, 'f', 2, 64)
			}
			improved := ""
			if res != "" {
				improved = strconv.FormatBool(s.improved[k])
			}
			rec = append(rec, res, sec, improved, fmt.Sprintf("2025-06-%02d", k), fmt.Sprintf("Meet %d", k))
			if withLabels {
				rec = append(rec, s.labels[k])
			}
		}
		records = append(records, rec)
	}

	t, err := history.NewTable(header, records)
	if err != nil {
		panic(err)
	}
	return t
}
