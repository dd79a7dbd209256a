package combine_test

import (
	"testing"

	"github.com/okian/fastfishy/internal/domain/combine"
	"github.com/okian/fastfishy/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func ev(num string, g model.Gender, age string, entries int) model.Event {
	return model.Event{Number: num, Gender: g, AgeGroup: age, Distance: "50yd", Stroke: "Free", Entries: entries, Heats: (entries + 5) / 6}
}

func TestCombine(t *testing.T) {
	Convey("Given a combiner with six lanes", t, func() {
		c := combine.New(combine.WithLanes(6))

		Convey("When girls have 13 entries and boys have 11", func() {
			events := []model.Event{
				ev("1", model.Girls, "9-10", 13),
				ev("2", model.Boys, "9-10", 11),
			}
			pairs := c.Combine(events)

			Convey("Then the remainders 1 and 5 share one heat", func() {
				So(pairs, ShouldHaveLength, 1)
				So(pairs[0].Female.Number, ShouldEqual, "1")
				So(pairs[0].Male.Number, ShouldEqual, "2")
				So(pairs[0].FemaleRemainder, ShouldEqual, 1)
				So(pairs[0].MaleRemainder, ShouldEqual, 5)
			})
		})

		Convey("When the girls event fills all lanes exactly", func() {
			events := []model.Event{
				ev("1", model.Girls, "9-10", 12),
				ev("2", model.Boys, "9-10", 11),
			}

			Convey("Then there is no pair and the verdict says why", func() {
				So(c.Combine(events), ShouldBeEmpty)
				rows := c.EvaluateAll(events)
				So(rows, ShouldHaveLength, 2)
				So(rows[0].CanCombine, ShouldEqual, model.CanCombineNo)
				So(rows[0].Reason, ShouldEqual, combine.ReasonFillsAllLanes)
				So(rows[1].CanCombine, ShouldEqual, "")
				So(rows[1].Reason, ShouldEqual, "")
			})
		})

		Convey("When remainders together need two heats", func() {
			events := []model.Event{
				ev("1", model.Girls, "9-10", 10),
				ev("2", model.Boys, "9-10", 9),
			}

			Convey("Then it reports too many remainder swimmers", func() {
				So(c.Combine(events), ShouldBeEmpty)
				So(c.EvaluateAll(events)[0].Reason, ShouldEqual, combine.ReasonTooManyRemainder)
			})
		})

		Convey("When the male event comes first in the document", func() {
			events := []model.Event{
				ev("1", model.Boys, "9-10", 11),
				ev("2", model.Girls, "9-10", 13),
			}

			Convey("Then pairing is not attempted backward", func() {
				So(c.Combine(events), ShouldBeEmpty)
				So(c.EvaluateAll(events)[1].Reason, ShouldEqual, combine.ReasonNoCounterpart)
			})
		})

		Convey("When categories differ", func() {
			events := []model.Event{
				ev("1", model.Girls, "9-10", 13),
				ev("2", model.Boys, "11-12", 11),
			}

			Convey("Then there is no counterpart", func() {
				So(c.Combine(events), ShouldBeEmpty)
				So(c.EvaluateAll(events)[0].Reason, ShouldEqual, combine.ReasonNoCounterpart)
			})
		})

		Convey("When one event has no entries", func() {
			events := []model.Event{
				ev("1", model.Women, "Open", 0),
				ev("2", model.Men, "Open", 3),
			}

			Convey("Then it reports zero entries", func() {
				So(c.Combine(events), ShouldBeEmpty)
				So(c.EvaluateAll(events)[0].Reason, ShouldEqual, combine.ReasonZeroEntries)
			})
		})

		Convey("When two female events compete for one male event", func() {
			events := []model.Event{
				ev("1", model.Girls, "9-10", 7),
				ev("2", model.Girls, "9-10", 8),
				ev("3", model.Boys, "9-10", 8),
			}
			pairs := c.Combine(events)

			Convey("Then the first female event claims it", func() {
				So(pairs, ShouldHaveLength, 1)
				So(pairs[0].Female.Number, ShouldEqual, "1")
				So(pairs[0].Male.Number, ShouldEqual, "3")
			})

			Convey("And the second female event sees no free counterpart", func() {
				rows := c.EvaluateAll(events)
				So(rows[2].Event.Number, ShouldEqual, "2")
				So(rows[2].Reason, ShouldEqual, combine.ReasonNoCounterpart)
			})
		})

		Convey("When a rejected candidate is followed by a fitting one", func() {
			events := []model.Event{
				ev("1", model.Girls, "9-10", 8),
				ev("2", model.Boys, "9-10", 11),
				ev("3", model.Boys, "9-10", 9),
			}
			pairs := c.Combine(events)

			Convey("Then scanning continues to the fitting event", func() {
				So(pairs, ShouldHaveLength, 1)
				So(pairs[0].Male.Number, ShouldEqual, "3")
			})
		})
	})
}

func TestAggressiveness(t *testing.T) {
	Convey("Given remainders of 1 and 2", t, func() {
		events := []model.Event{
			ev("1", model.Girls, "8 & Under", 7),
			ev("2", model.Boys, "8 & Under", 8),
		}

		Convey("When aggressiveness is the default", func() {
			So(combine.Combine(events, 6, 1), ShouldHaveLength, 1)
		})

		Convey("When aggressiveness requires at least 2 swimmers per remainder", func() {
			So(combine.Combine(events, 6, 2), ShouldBeEmpty)
			rows := combine.EvaluateAll(events, 6, 2)
			So(rows[0].Reason, ShouldEqual, combine.ReasonTooConservative)
		})

		Convey("When invalid settings are supplied", func() {
			c := combine.New(combine.WithLanes(0), combine.WithAggressiveness(-3))

			Convey("Then defaults are kept", func() {
				So(c.Lanes(), ShouldEqual, combine.DefaultLanes)
				So(c.Aggressiveness(), ShouldEqual, combine.DefaultAggressiveness)
			})
		})
	})
}

func TestEvaluateAllProperties(t *testing.T) {
	Convey("Given a mixed program of events", t, func() {
		events := []model.Event{
			ev("1", model.Mixed, "6 & Under", 4),
			ev("2", model.Girls, "9-10", 13),
			ev("3", model.Boys, "9-10", 11),
			ev("4", model.Girls, "11-12", 5),
			ev("5", model.Boys, "11-12", 1),
			ev("6", model.Women, "13 & Over", 6),
			ev("7", model.Men, "13 & Over", 2),
			ev("8", model.Boys, "15-16", 4),
		}
		c := combine.New()
		pairs := c.Combine(events)
		rows := c.EvaluateAll(events)

		Convey("Then rows equal events plus follow-ups", func() {
			So(pairs, ShouldHaveLength, 2)
			So(rows, ShouldHaveLength, len(events)+len(pairs))
		})

		Convey("Then each claimed male event follows its partner", func() {
			So(rows[1].Event.Number, ShouldEqual, "2")
			So(rows[1].Reason, ShouldEqual, "1 swimmers")
			So(rows[2].Event.Number, ShouldEqual, "3")
			So(rows[2].FollowUp, ShouldBeTrue)
			So(rows[2].Partner, ShouldEqual, "2")
			So(rows[2].Reason, ShouldEqual, "5 swimmers")
			So(rows[3].Event.Number, ShouldEqual, "3")
			So(rows[3].FollowUp, ShouldBeFalse)
			So(rows[3].CanCombine, ShouldEqual, "")
		})

		Convey("Then every pair satisfies the remainder invariants", func() {
			seen := map[string]bool{}
			for _, p := range pairs {
				So(p.Female.Gender.IsFemale(), ShouldBeTrue)
				So(p.Male.Gender.IsMale(), ShouldBeTrue)
				So(p.Female.SameCategory(p.Male), ShouldBeTrue)
				So(p.FemaleRemainder, ShouldBeGreaterThan, 0)
				So(p.MaleRemainder, ShouldBeGreaterThan, 0)
				So(p.FemaleRemainder+p.MaleRemainder, ShouldBeLessThanOrEqualTo, c.Lanes())
				So(seen[p.Male.Number], ShouldBeFalse)
				seen[p.Male.Number] = true
			}
		})

		Convey("Then Yes verdicts on female rows match the pairs", func() {
			yes := 0
			for _, r := range rows {
				if r.CanCombine == model.CanCombineYes && !r.FollowUp {
					yes++
				}
			}
			So(yes, ShouldEqual, len(pairs))
		})

		Convey("Then evaluation is idempotent", func() {
			So(c.EvaluateAll(events), ShouldResemble, rows)
			So(c.Combine(events), ShouldResemble, pairs)
		})
	})
}
