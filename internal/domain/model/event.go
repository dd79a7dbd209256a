// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Gender is the gender bracket printed on a session report event line.
type Gender string

// Known genders.
const (
	Mixed Gender = "Mixed"
	Girls Gender = "Girls"
	Boys  Gender = "Boys"
	Women Gender = "Women"
	Men   Gender = "Men"
)

// ParseGender maps a report token onto a Gender (case-insensitive).
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mixed":
		return Mixed, nil
	case "girls":
		return Girls, nil
	case "boys":
		return Boys, nil
	case "women":
		return Women, nil
	case "men":
		return Men, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// IsFemale reports whether g is Girls or Women.
func (g Gender) IsFemale() bool { return g == Girls || g == Women }

// IsMale reports whether g is Boys or Men.
func (g Gender) IsMale() bool { return g == Boys || g == Men }

// Event is one scheduled race at a meet. Events are immutable once built and
// their order in a slice is the document order.
type Event struct {
	Number   string `json:"number"` // kept verbatim for cross-referencing
	Gender   Gender `json:"gender"`
	AgeGroup string `json:"age_group"`
	Distance string `json:"distance"`
	Stroke   string `json:"stroke"`
	Entries  int    `json:"entries"`
	Heats    int    `json:"heats"`
}

// SameCategory reports exact-string equality of age group, distance and stroke.
func (e Event) SameCategory(o Event) bool {
	return e.AgeGroup == o.AgeGroup && e.Distance == o.Distance && e.Stroke == o.Stroke
}

// Remainder is the number of swimmers left after filling whole heats.
func (e Event) Remainder(lanes int) int {
	if lanes <= 0 {
		return 0
	}
	return e.Entries % lanes
}

// Label renders "<Gender> <AgeGroup>", e.g. "Girls 9-10".
func (e Event) Label() string {
	return strings.TrimSpace(string(e.Gender) + " " + e.AgeGroup)
}

// CombinablePair is a female event whose remainder heat can be swum together
// with the remainder heat of a male event.
type CombinablePair struct {
	Female          Event `json:"female"`
	Male            Event `json:"male"`
	FemaleRemainder int   `json:"female_remainder"`
	MaleRemainder   int   `json:"male_remainder"`
}

// FemaleHeat is the heat of the female event that gets combined (its last one).
func (p CombinablePair) FemaleHeat() int { return p.Female.Heats }

// MaleHeat is the heat of the male event that gets combined. The remainder
// swimmers of the male event are seeded into its first heat.
func (p CombinablePair) MaleHeat() int { return 1 }

// Verdict values for the Can Combine? column.
const (
	CanCombineYes = "Yes"
	CanCombineNo  = "No"
)

// Verdict is one row of the per-event combinability report.
type Verdict struct {
	Event      Event  `json:"event"`
	CanCombine string `json:"can_combine"` // "", "Yes" or "No"
	Reason     string `json:"reason"`
	// Partner is the event number of the paired event, when there is one.
	Partner string `json:"partner,omitempty"`
	// FollowUp marks a claimed male event re-emitted right after its partner.
	FollowUp bool `json:"follow_up,omitempty"`
}
