package awards_test

import (
	"testing"

	"github.com/okian/fastfishy/internal/domain/awards"
	. "github.com/smartystreets/goconvey/convey"
)

func TestImprovements(t *testing.T) {
	Convey("Given a swimmer who improved from 1:05.00 to 1:02.50", t, func() {
		tbl := buildTable(2, false, swim{
			last: "Fish", first: "Nemo", age: "9-10", distance: "100yd", stroke: "Free", team: "Reef",
			results:  map[int]string{1: "1:05.00", 2: "1:02.50"},
			improved: map[int]bool{2: true},
		})

		Convey("When computing improvements for Meet2", func() {
			labels := awards.Improvements(tbl, "Meet2")

			Convey("Then the label reports the previous time and the drop", func() {
				So(labels, ShouldHaveLength, 1)
				So(labels[0].Name, ShouldEqual, "Fish, Nemo")
				So(labels[0].Category, ShouldEqual, "100yd Free")
				So(labels[0].Detail, ShouldEqual, "Previous best: 1:05.00 (-2.50)")
				So(labels[0].Date, ShouldEqual, "2025-06-02")
				So(labels[0].MeetName, ShouldEqual, "Meet 2")
			})
		})

		Convey("When computing improvements for the first meet", func() {
			Convey("Then there is no history to compare against", func() {
				So(awards.Improvements(tbl, "Meet1"), ShouldBeEmpty)
			})
		})

		Convey("When the meet column group is missing", func() {
			So(awards.Improvements(tbl, "Meet7"), ShouldBeEmpty)
			So(awards.Improvements(nil, "Meet2"), ShouldBeEmpty)
		})
	})

	Convey("Given an Improved flag that contradicts the recomputed times", t, func() {
		tbl := buildTable(2, false, swim{
			last: "Tang", first: "Blue", age: "11-12", distance: "50yd", stroke: "Back",
			results:  map[int]string{1: "35.00", 2: "35.40"},
			improved: map[int]bool{2: true},
		})

		Convey("Then the label is kept with a zero drop", func() {
			labels := awards.Improvements(tbl, "Meet2")
			So(labels, ShouldHaveLength, 1)
			So(labels[0].Detail, ShouldEqual, "Previous best: 35.00 (0.00s)")
		})
	})

	Convey("Given rows that cannot yield a label", t, func() {
		tbl := buildTable(3, false,
			swim{last: "A", first: "NoFlag", age: "9-10", distance: "50yd", stroke: "Free",
				results: map[int]string{1: "40.00", 3: "38.00"}},
			swim{last: "B", first: "BadTime", age: "9-10", distance: "50yd", stroke: "Free",
				results: map[int]string{1: "40.00", 3: "DQ"}, improved: map[int]bool{3: true}},
			swim{last: "C", first: "Recent", age: "9-10", distance: "50yd", stroke: "Free",
				results: map[int]string{1: "39.00", 2: "41.00", 3: "40.00"}, improved: map[int]bool{3: true}},
		)

		Convey("Then only the valid improved row is labelled, against its most recent time", func() {
			labels := awards.Improvements(tbl, "Meet3")
			So(labels, ShouldHaveLength, 1)
			So(labels[0].Name, ShouldEqual, "C, Recent")
			So(labels[0].Detail, ShouldEqual, "Previous best: 41.00 (-1.00)")
		})
	})
}
