// Package history models the wide per-swimmer result table, one column group
// per historical meet, and answers prior-result queries against it.
package history

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/fastfishy/internal/domain/model"
)

// Per-meet column fields, as in "Meet3-Result".
const (
	FieldResult    = "Result"
	FieldResultSec = "ResultSec"
	FieldImproved  = "Improved"
	FieldDate      = "Date"
	FieldName      = "Name"
	FieldLabel     = "Label"
)

// Swimmer identity columns.
const (
	ColLastName      = "LastName"
	ColFirstName     = "FirstName"
	ColLastFirst     = "LastName_FirstName"
	ColAgeGroup      = "AgeGroup"
	ColEventDistance = "EventDistance"
	ColEventStroke   = "EventStroke"
	ColTeam          = "Team"
)

var meetColumn = regexp.MustCompile(`^Meet(\d+)-(Result|ResultSec|Improved|Date|Name|Label)$`)

// Table is an immutable, read-only view of the wide result table. It is safe
// to share between goroutines.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
	meets   []model.Meet
}

// Row is one swimmer/event line of the table.
type Row struct {
	table *Table
	cells []string
}

// NewTable validates the header and builds a Table. Short rows are padded
// with missing cells; rows longer than the header are a structural error.
func NewTable(header []string, records [][]string) (*Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidTable)
	}

	t := &Table{
		columns: make([]string, len(header)),
		index:   make(map[string]int, len(header)),
	}
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			continue
		}
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrInvalidTable, name)
		}
		t.columns[i] = name
		t.index[name] = i
	}

	t.rows = make([]Row, 0, len(records))
	for n, rec := range records {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d", ErrInvalidTable, n+1, len(rec), len(header))
		}
		cells := make([]string, len(header))
		copy(cells, rec)
		t.rows = append(t.rows, Row{table: t, cells: cells})
	}

	meets, err := t.discoverMeets()
	if err != nil {
		return nil, err
	}
	t.meets = meets
	return t, nil
}

// discoverMeets lists the meets that carry a Result or ResultSec column. A
// group with only a name, date or label is not a meet.
func (t *Table) discoverMeets() ([]model.Meet, error) {
	byNumber := map[int]string{}
	for _, col := range t.columns {
		m := meetColumn.FindStringSubmatch(col)
		if m == nil || (m[2] != FieldResult && m[2] != FieldResultSec) {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		id := "Meet" + m[1]
		if prev, ok := byNumber[n]; ok && prev != id {
			return nil, fmt.Errorf("%w: meet columns %q and %q share number %d", ErrInvalidTable, prev, id, n)
		}
		byNumber[n] = id
	}

	meets := make([]model.Meet, 0, len(byNumber))
	for n, id := range byNumber {
		meets = append(meets, model.Meet{
			ID:     id,
			Number: n,
			Name:   t.firstValue(id + "-" + FieldName),
			Date:   t.firstValue(id + "-" + FieldDate),
		})
	}
	sort.Slice(meets, func(i, j int) bool { return meets[i].Number < meets[j].Number })
	return meets, nil
}

func (t *Table) firstValue(col string) string {
	for _, r := range t.rows {
		if v, ok := r.Value(col); ok {
			return v
		}
	}
	return ""
}

// Columns returns the header names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Rows returns the table rows in input order.
func (t *Table) Rows() []Row { return t.rows }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(col string) bool {
	_, ok := t.index[col]
	return ok
}

// HasColumns reports whether every "<meet>-<field>" column exists.
func (t *Table) HasColumns(meet string, fields ...string) bool {
	for _, f := range fields {
		if !t.HasColumn(meet + "-" + f) {
			return false
		}
	}
	return true
}

// Meets returns all meets in chronological (numeric) order.
func (t *Table) Meets() []model.Meet {
	out := make([]model.Meet, len(t.meets))
	copy(out, t.meets)
	return out
}

// Meet looks up a meet by id.
func (t *Table) Meet(id string) (model.Meet, bool) {
	for _, m := range t.meets {
		if m.ID == id {
			return m, true
		}
	}
	return model.Meet{}, false
}

// PriorMeets returns the meets strictly before id in chronological order.
// An unknown id has no prior meets.
func (t *Table) PriorMeets(id string) []model.Meet {
	target, ok := t.Meet(id)
	if !ok {
		return nil
	}
	var out []model.Meet
	for _, m := range t.meets {
		if m.Number < target.Number {
			out = append(out, m)
		}
	}
	return out
}

// MeetsWithData returns the meets whose ResultSec column holds at least one
// numeric value.
func (t *Table) MeetsWithData() []model.Meet {
	var out []model.Meet
	for _, m := range t.meets {
		col := m.ID + "-" + FieldResultSec
		if !t.HasColumn(col) {
			continue
		}
		for _, r := range t.rows {
			v, ok := r.Value(col)
			if !ok {
				continue
			}
			if _, err := strconv.ParseFloat(v, 64); err == nil {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
