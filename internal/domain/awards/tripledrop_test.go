package awards_test

import (
	"testing"

	"github.com/okian/fastfishy/internal/domain/awards"
	"github.com/okian/fastfishy/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func improvedAt3(last, first, age, stroke string) swim {
	return swim{
		last: last, first: first, age: age, distance: "50yd", stroke: stroke, team: "Reef",
		results:  map[int]string{1: "40.00", 3: "38.00"},
		improved: map[int]bool{3: true},
	}
}

func TestTripleDrops(t *testing.T) {
	Convey("Given swimmers improving in several events at Meet3", t, func() {
		tbl := buildTable(3, false,
			improvedAt3("Fish", "Nemo", "09-10", "Free"),
			improvedAt3("Fish", "Nemo", "09-10", "Back"),
			improvedAt3("Fish", "Nemo", "09-10", "Fly"),
			improvedAt3("Fish", "Nemo", "09-10", "Breast"),
			improvedAt3("Tang", "Dory", "11-12", "Free"),
			improvedAt3("Tang", "Dory", "11-12", "Back"),
			improvedAt3("Eel", "Moray", "13-14", "Free"),
			improvedAt3("Eel", "Moray", "13-14", "Free"),
			improvedAt3("Eel", "Moray", "13-14", "Back"),
		)

		Convey("When computing triple drops", func() {
			labels := awards.TripleDrops(tbl, "Meet3")

			Convey("Then exactly one label is emitted per qualifying swimmer", func() {
				So(labels, ShouldHaveLength, 1)
				So(labels[0].Name, ShouldEqual, "Fish, Nemo")
				So(labels[0].Category, ShouldEqual, model.CategoryTripleDrop)
			})

			Convey("Then the age group is normalized and the team carried", func() {
				So(labels[0].AgeGroup, ShouldEqual, "9-10")
				So(labels[0].Team, ShouldEqual, "Reef")
				So(labels[0].Detail, ShouldEqual, "9-10 - Reef")
				So(labels[0].Date, ShouldEqual, "2025-06-03")
				So(labels[0].MeetName, ShouldEqual, "Meet 3")
			})
		})

		Convey("When the meet has no column group", func() {
			So(awards.TripleDrops(tbl, "Meet4"), ShouldBeEmpty)
		})

		Convey("When repeated", func() {
			So(awards.TripleDrops(tbl, "Meet3"), ShouldResemble, awards.TripleDrops(tbl, "Meet3"))
		})
	})
}
