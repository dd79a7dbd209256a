package model

import "strings"

// Award categories shared by the label engines.
const (
	CategoryFastFishy        = "Fast Fishy"
	CategoryHonorableMention = "Honorable Mention"
	CategoryTripleDrop       = "Triple Drop"
)

// AwardLabel is the common output shape of every award engine.
// AgeGroup and Team are optional and only set where the engine knows them.
type AwardLabel struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Detail   string `json:"detail"`
	Date     string `json:"date"`
	MeetName string `json:"meet_name"`
	AgeGroup string `json:"age_group,omitempty"`
	Team     string `json:"team,omitempty"`
}

// Lines returns the five printable label lines.
func (l AwardLabel) Lines() []string {
	return []string{l.Name, l.Category, l.Detail, l.Date, l.MeetName}
}

// IsFastFishy reports whether the label awards Fast Fishy.
func (l AwardLabel) IsFastFishy() bool {
	return strings.HasPrefix(l.Category, CategoryFastFishy)
}

// RankEntry is one swimmer's cumulative drop within an age group.
type RankEntry struct {
	Name      string  `json:"name"`
	TotalDrop float64 `json:"total_drop"`
	Display   string  `json:"drop"`
}

// Meet identifies one historical meet column group.
type Meet struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Name   string `json:"name,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Display combines the declared name and date, falling back to the raw id.
func (m Meet) Display() string {
	switch {
	case m.Name != "" && m.Date != "":
		return m.Name + " — " + m.Date
	case m.Name != "":
		return m.Name
	case m.Date != "":
		return m.Date
	}
	return m.ID
}
