package combine

import (
	"fmt"

	"github.com/okian/fastfishy/internal/domain/model"
)

// Default combination settings.
const (
	DefaultLanes          = 6
	DefaultAggressiveness = 1
)

// Reasons reported by EvaluateAll for events that cannot be combined.
const (
	ReasonNoCounterpart    = "No male counterpart"
	ReasonZeroEntries      = "One event has 0 entries"
	ReasonFillsAllLanes    = "One event fills all lanes"
	ReasonTooManyRemainder = "Too many remainder swimmers"
	ReasonTooConservative  = "Combo strategy too conservative"
)

// Combiner finds combinable event pairs. It holds configuration only and is
// safe for concurrent use.
type Combiner struct {
	lanes          int
	aggressiveness int
}

// New creates a Combiner with default lanes and aggressiveness.
func New(opts ...Option) *Combiner {
	c := &Combiner{
		lanes:          DefaultLanes,
		aggressiveness: DefaultAggressiveness,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lanes returns the configured lane count.
func (c *Combiner) Lanes() int { return c.lanes }

// Aggressiveness returns the configured minimum remainder.
func (c *Combiner) Aggressiveness() int { return c.aggressiveness }

// Combine returns the greedy first-fit pairings in document order. Each male
// event is claimed by at most one female event.
func (c *Combiner) Combine(events []model.Event) []model.CombinablePair {
	pairs, _ := c.run(events)
	return pairs
}

// EvaluateAll returns one verdict per event, plus a follow-up row after every
// successful pairing for the claimed male event.
func (c *Combiner) EvaluateAll(events []model.Event) []model.Verdict {
	_, rows := c.run(events)
	return rows
}

// Combine is a shorthand for New(WithLanes, WithAggressiveness).Combine.
func Combine(events []model.Event, lanes, aggressiveness int) []model.CombinablePair {
	return New(WithLanes(lanes), WithAggressiveness(aggressiveness)).Combine(events)
}

// EvaluateAll is a shorthand for New(WithLanes, WithAggressiveness).EvaluateAll.
func EvaluateAll(events []model.Event, lanes, aggressiveness int) []model.Verdict {
	return New(WithLanes(lanes), WithAggressiveness(aggressiveness)).EvaluateAll(events)
}

// candidate is the outcome of scanning for one female event's partner.
type candidate struct {
	partner int // index into events, -1 when none
	r1, r2  int
	reason  string
}

func (c *Combiner) run(events []model.Event) ([]model.CombinablePair, []model.Verdict) {
	claimed := make([]bool, len(events))
	claimedBy := make(map[int]int)

	var pairs []model.CombinablePair
	rows := make([]model.Verdict, 0, len(events))

	for i, e1 := range events {
		if !e1.Gender.IsFemale() {
			v := model.Verdict{Event: e1}
			if f, ok := claimedBy[i]; ok {
				v.Partner = events[f].Number
			}
			rows = append(rows, v)
			continue
		}

		m := c.match(events, i, claimed)
		if m.partner < 0 {
			rows = append(rows, model.Verdict{Event: e1, CanCombine: model.CanCombineNo, Reason: m.reason})
			continue
		}

		e2 := events[m.partner]
		claimed[m.partner] = true
		claimedBy[m.partner] = i

		pairs = append(pairs, model.CombinablePair{
			Female:          e1,
			Male:            e2,
			FemaleRemainder: m.r1,
			MaleRemainder:   m.r2,
		})
		rows = append(rows,
			model.Verdict{
				Event:      e1,
				CanCombine: model.CanCombineYes,
				Reason:     swimmers(m.r1),
				Partner:    e2.Number,
			},
			model.Verdict{
				Event:      e2,
				CanCombine: model.CanCombineYes,
				Reason:     swimmers(m.r2),
				Partner:    e1.Number,
				FollowUp:   true,
			},
		)
	}
	return pairs, rows
}

// match scans strictly later events for the first unclaimed male event of the
// same category that can share a heat with events[i]. When none succeeds the
// reason of the first rejected candidate is reported.
func (c *Combiner) match(events []model.Event, i int, claimed []bool) candidate {
	e1 := events[i]
	out := candidate{partner: -1, reason: ReasonNoCounterpart}
	rejected := false

	for j := i + 1; j < len(events); j++ {
		e2 := events[j]
		if !e2.Gender.IsMale() || !e1.SameCategory(e2) || claimed[j] {
			continue
		}

		r1, r2 := e1.Remainder(c.lanes), e2.Remainder(c.lanes)
		reason := c.reject(e1, e2, r1, r2)
		if reason == "" {
			return candidate{partner: j, r1: r1, r2: r2}
		}
		if !rejected {
			out.reason = reason
			rejected = true
		}
	}
	return out
}

func (c *Combiner) reject(e1, e2 model.Event, r1, r2 int) string {
	switch {
	case e1.Entries < 1 || e2.Entries < 1:
		return ReasonZeroEntries
	case r1 == 0 || r2 == 0:
		return ReasonFillsAllLanes
	case r1+r2 > c.lanes:
		return ReasonTooManyRemainder
	case r1 < c.aggressiveness || r2 < c.aggressiveness:
		return ReasonTooConservative
	}
	return ""
}

func swimmers(n int) string {
	return fmt.Sprintf("%d swimmers", n)
}
