// Package ingest turns Session Report documents into ordered event lists.
package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/fastfishy/internal/domain/model"
)

// DefaultMeetTitle is used when no "Session Report ... Page" header is found.
const DefaultMeetTitle = "Today's Meet"

// SessionReport is the parsed content of one report.
type SessionReport struct {
	Title  string        `json:"title"`
	Events []model.Event `json:"events"`
	// Skipped counts event-shaped lines whose category could not be split.
	Skipped int `json:"skipped"`
}

var (
	eventLine = regexp.MustCompile(`^(\d+)\s+(Mixed|Girls|Boys|Women|Men)\s+(.+?)\s+(\d+)\s+(\d+)\s+(\d{1,2}:\d{2}\s*[AP]M)$`)

	// Age groups as printed: "6 & Under", "13 & Over", "9-10", "11-12", "15-18".
	// Text extraction often glues the distance straight onto the age group,
	// e.g. "9-1025yd Free", so the numeric forms are bounded to two digits.
	ageThenDistance = regexp.MustCompile(`^(\d{1,2}\s*&\s*(?i:under|over|up|u|o)|\d{1,2}\s*-\s*\d{1,2})\s*(\d{2,4}(?:yd|m))\s*(.+)$`)

	// Free-text age groups ("Open", "Senior") followed by a spaced distance.
	spacedDistance = regexp.MustCompile(`^(.+?)\s+(\d{2,4}(?:yd|m))\s+(.+)$`)
)

// ParseText parses the plain text of a whole report.
func ParseText(text string) *SessionReport {
	return ParseLines(strings.Split(text, "\n"))
}

// ParseLines parses report lines in document order. Lines that do not look
// like events are ignored; the last "Session Report ... Page" header wins
// as the meet title.
func ParseLines(lines []string) *SessionReport {
	rep := &SessionReport{Title: DefaultMeetTitle, Events: make([]model.Event, 0)}
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if title, ok := meetTitle(line); ok {
			rep.Title = title
		}

		m := eventLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		age, distance, stroke, ok := splitCategory(m[3])
		if !ok {
			rep.Skipped++
			continue
		}
		gender, _ := model.ParseGender(m[2])
		entries, _ := strconv.Atoi(m[4])
		heats, _ := strconv.Atoi(m[5])
		rep.Events = append(rep.Events, model.Event{
			Number:   m[1],
			Gender:   gender,
			AgeGroup: age,
			Distance: distance,
			Stroke:   stroke,
			Entries:  entries,
			Heats:    heats,
		})
	}
	return rep
}

func meetTitle(line string) (string, bool) {
	const marker = "Session Report"
	start := strings.Index(line, marker)
	if start < 0 {
		return "", false
	}
	rest := line[start+len(marker):]
	end := strings.Index(rest, "Page")
	if end < 0 {
		return "", false
	}
	title := strings.ReplaceAll(rest[:end], "—", "-")
	title = strings.Trim(title, " -–")
	if title == "" {
		return "", false
	}
	return title, true
}

// splitCategory separates "9-10 50yd Freestyle" (spaced or glued) into age
// group, distance and stroke.
func splitCategory(s string) (age, distance, stroke string, ok bool) {
	s = strings.TrimSpace(s)
	m := ageThenDistance.FindStringSubmatch(s)
	if m == nil {
		m = spacedDistance.FindStringSubmatch(s)
	}
	if m == nil {
		return "", "", "", false
	}
	return strings.Join(strings.Fields(m[1]), " "), m[2], strings.TrimSpace(m[3]), true
}
