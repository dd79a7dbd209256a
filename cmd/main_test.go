package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/okian/fastfishy/internal/config"
	"github.com/okian/fastfishy/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given configuration from the environment", t, func() {
		_ = os.Setenv("FASTFISHY_LANES", "8")
		_ = os.Setenv("FASTFISHY_ARTIFACT_CAPACITY", "4")
		defer func() {
			_ = os.Unsetenv("FASTFISHY_LANES")
			_ = os.Unsetenv("FASTFISHY_ARTIFACT_CAPACITY")
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cfg, err := config.Load(ctx)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When the service and routes are wired", func() {
			svc := newService(cfg, logger.Get())
			convey.So(svc.Start(ctx), convey.ShouldBeNil)
			defer svc.Stop()
			mux := newMux(ctx, cfg, svc)

			convey.Convey("Then the service carries the configured lanes", func() {
				convey.So(svc.GetStats()["lanes"], convey.ShouldEqual, 8)
				convey.So(svc.GetStats()["artifacts"], convey.ShouldEqual, 0)
			})

			convey.Convey("And the API and docs routes answer", func() {
				for _, path := range []string{"/healthz", "/stats", "/metrics", "/api-docs", "/openapi.yaml"} {
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})
		})
	})
}

func TestMainApplicationErrorHandling(t *testing.T) {
	convey.Convey("Given an invalid configuration", t, func() {
		_ = os.Setenv("FASTFISHY_LANES", "0")
		defer func() { _ = os.Unsetenv("FASTFISHY_LANES") }()

		convey.Convey("Then run fails before serving", func() {
			err := run(context.Background())
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "Lanes")
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then a single update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})

		convey.Convey("And the loop stops with its context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})
	})
}
