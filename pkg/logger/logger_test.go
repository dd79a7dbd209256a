package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	convey.Convey("Given the global logger", t, func() {
		convey.Convey("When initialized for stdout", func() {
			convey.So(Init(), convey.ShouldBeNil)
			defer func() { _ = Sync() }()

			convey.Convey("Then Get returns it", func() {
				convey.So(Get(), convey.ShouldNotBeNil)
				convey.So(Named("test"), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When initialized with a nil writer", func() {
			convey.So(InitWithWriter(nil), convey.ShouldNotBeNil)
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	convey.Convey("Given a logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		convey.So(InitWithWriter(&buf), convey.ShouldBeNil)
		ctx := context.Background()

		convey.Convey("When logging with typed fields", func() {
			Named("ingest").Info(ctx, "parsed report",
				String("title", "Summer Splash"),
				Int("events", 12),
				Float64("drop", 2.5),
				Bool("improved", true),
				Duration("took", 1500*time.Millisecond),
				Error(errors.New("boom")),
			)
			out := buf.String()

			convey.Convey("Then every field and the caller appear in the record", func() {
				convey.So(out, convey.ShouldContainSubstring, "msg=\"parsed report\"")
				convey.So(out, convey.ShouldContainSubstring, "component=ingest")
				convey.So(out, convey.ShouldContainSubstring, "title=\"Summer Splash\"")
				convey.So(out, convey.ShouldContainSubstring, "events=12")
				convey.So(out, convey.ShouldContainSubstring, "drop=2.5")
				convey.So(out, convey.ShouldContainSubstring, "improved=true")
				convey.So(out, convey.ShouldContainSubstring, "took=1.5s")
				convey.So(out, convey.ShouldContainSubstring, "error=boom")
				convey.So(out, convey.ShouldContainSubstring, "source=logger_test.go:")
			})
		})

		convey.Convey("When the level is raised to warn", func() {
			convey.So(SetLevelString("WARN"), convey.ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Debug(ctx, "hidden too")
			Get().Warn(ctx, "shown")

			convey.Convey("Then lower records are dropped", func() {
				convey.So(buf.String(), convey.ShouldNotContainSubstring, "hidden")
				convey.So(buf.String(), convey.ShouldContainSubstring, "shown")
			})
		})

		convey.Convey("When an unknown level is requested", func() {
			convey.So(SetLevelString("chatty"), convey.ShouldNotBeNil)
		})
	})
}

func TestNop(t *testing.T) {
	convey.Convey("Given a no-op logger", t, func() {
		l := Nop().Named("quiet")
		convey.So(func() { l.Error(context.Background(), "dropped") }, convey.ShouldNotPanic)
	})
}
