package history

import (
	"strconv"
	"strings"
)

// missing marks cell values that spreadsheet exports use for empty cells.
var missing = map[string]bool{
	"":    true,
	"nan": true,
	"NaN": true,
	"NaT": true,
	"NA":  true,
	"N/A": true,
}

// Value returns the trimmed cell for col and whether it holds data.
func (r Row) Value(col string) (string, bool) {
	i, ok := r.table.index[col]
	if !ok || i >= len(r.cells) {
		return "", false
	}
	v := strings.TrimSpace(r.cells[i])
	if missing[v] {
		return "", false
	}
	return v, true
}

// MeetValue returns the cell of the "<meet>-<field>" column.
func (r Row) MeetValue(meet, field string) (string, bool) {
	return r.Value(meet + "-" + field)
}

func (r Row) str(col string) string {
	v, _ := r.Value(col)
	return v
}

// Improved reports the input-supplied personal-best flag for meet.
func (r Row) Improved(meet string) bool {
	v, ok := r.MeetValue(meet, FieldImproved)
	if !ok {
		return false
	}
	switch strings.ToLower(v) {
	case "yes", "y":
		return true
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f != 0
	}
	return false
}

// LastName returns the swimmer's last name.
func (r Row) LastName() string { return r.str(ColLastName) }

// FirstName returns the swimmer's first name.
func (r Row) FirstName() string { return r.str(ColFirstName) }

// DisplayName renders "Last, First".
func (r Row) DisplayName() string {
	last, first := r.LastName(), r.FirstName()
	switch {
	case last == "":
		return first
	case first == "":
		return last
	}
	return last + ", " + first
}

// SwimmerKey identifies the swimmer across rows. The LastName_FirstName
// column wins when present.
func (r Row) SwimmerKey() string {
	if v, ok := r.Value(ColLastFirst); ok {
		return v
	}
	return r.DisplayName()
}

// AgeGroup returns the raw age group.
func (r Row) AgeGroup() string { return r.str(ColAgeGroup) }

// Team returns the swimmer's team.
func (r Row) Team() string { return r.str(ColTeam) }

// EventName joins distance and stroke, e.g. "50yd Free".
func (r Row) EventName() string {
	return strings.TrimSpace(r.str(ColEventDistance) + " " + r.str(ColEventStroke))
}

// NormalizeAgeGroup strips leading zeros from each side of a numeric age
// range: "09-10" becomes "9-10". Other labels are returned trimmed.
func NormalizeAgeGroup(age string) string {
	age = strings.TrimSpace(age)
	parts := strings.Split(age, "-")
	if len(parts) != 2 {
		return age
	}
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if !isDigits(p) {
			return age
		}
		trimmed := strings.TrimLeft(p, "0")
		if trimmed == "" {
			trimmed = "0"
		}
		parts[i] = trimmed
	}
	return parts[0] + "-" + parts[1]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
