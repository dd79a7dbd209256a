package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/fastfishy/internal/adapters/http/api"
	"github.com/okian/fastfishy/internal/adapters/repository"
	service "github.com/okian/fastfishy/internal/app"
	"github.com/okian/fastfishy/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const eventsCSV = `Event #,Gender,Age Group,Distance,Stroke,Entries,Heats
1,Girls,9-10,50yd,Free,13,3
2,Boys,9-10,50yd,Free,11,2
`

const historyCSV = `LastName,FirstName,LastName_FirstName,AgeGroup,EventDistance,EventStroke,Team,Meet1-Result,Meet1-ResultSec,Meet1-Improved,Meet1-Date,Meet1-Name,Meet2-Result,Meet2-ResultSec,Meet2-Improved,Meet2-Date,Meet2-Name
Fish,Nemo,Fish_Nemo,9-10,50yd,Free,Reef,40.00,40.00,,2025-06-01,Meet 1,37.00,37.00,true,2025-06-08,Meet 2
`

func newMux(opts ...api.ServerOption) *http.ServeMux {
	svc := service.New(service.WithArtifactStore(repository.NewInMemoryStore()))
	mux := http.NewServeMux()
	api.NewServer(svc, svc, opts...).Register(context.Background(), mux)
	return mux
}

func multipartRequest(target, filename, content string, fields map[string]string) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if filename != "" {
		part, _ := mw.CreateFormFile("file", filename)
		_, _ = part.Write([]byte(content))
	}
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux()

		Convey("Then the health endpoint reports ok", func() {
			w := serve(mux, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("Then the health endpoint serves metrics to scrapers", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set("Accept", "text/plain")
			w := serve(mux, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "fastfishy_")
		})

		Convey("Then the metrics endpoint is served", func() {
			w := serve(mux, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Then the stats endpoint returns service statistics", func() {
			w := serve(mux, httptest.NewRequest(http.MethodGet, "/stats", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
			var stats map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["lanes"], ShouldEqual, float64(6))
		})

		Convey("Then unknown paths are not found", func() {
			w := serve(mux, httptest.NewRequest(http.MethodGet, "/unknown", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then wrong methods are not found", func() {
			w := serve(mux, httptest.NewRequest(http.MethodGet, "/combos", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestCombos(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux()

		Convey("When an event table is uploaded", func() {
			w := serve(mux, multipartRequest("/combos", "reef.csv", eventsCSV, nil))

			Convey("Then the pairs and artifacts are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var res service.ComboResult
				So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
				So(res.Title, ShouldEqual, "reef")
				So(res.Pairs, ShouldHaveLength, 1)
				So(res.Artifacts, ShouldHaveLength, 3)

				Convey("And the artifacts can be downloaded", func() {
					a := res.Artifacts[0]
					dl := serve(mux, httptest.NewRequest(http.MethodGet, "/artifacts/"+a.ID, nil))
					So(dl.Code, ShouldEqual, http.StatusOK)
					So(dl.Header().Get("Content-Type"), ShouldEqual, service.ContentTypeCSV)
					So(dl.Header().Get("Content-Disposition"), ShouldContainSubstring, a.Filename)
					So(dl.Body.String(), ShouldContainSubstring, "Female Event #")
				})
			})
		})

		Convey("When form fields override the settings", func() {
			w := serve(mux, multipartRequest("/combos", "reef.csv", eventsCSV, map[string]string{"lanes": "8", "aggressiveness": "0"}))

			Convey("Then the overrides are echoed back", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var res service.ComboResult
				So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
				So(res.Lanes, ShouldEqual, 8)
				So(res.Aggressiveness, ShouldEqual, 0)
			})
		})

		Convey("When lanes is not a number", func() {
			w := serve(mux, multipartRequest("/combos", "reef.csv", eventsCSV, map[string]string{"lanes": "six"}))
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the file field is missing", func() {
			w := serve(mux, multipartRequest("/combos", "", "", map[string]string{"lanes": "6"}))
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the file type is unsupported", func() {
			w := serve(mux, multipartRequest("/combos", "reef.docx", "x", nil))
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the table has no valid events", func() {
			w := serve(mux, multipartRequest("/combos", "reef.csv", "Event #,Gender\n1,Girls\n", nil))
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
		})

		Convey("When events are posted as JSON", func() {
			body := `{"title":"Reef","lanes":6,"events":[
				{"number":"1","gender":"Girls","age_group":"9-10","distance":"50yd","stroke":"Free","entries":13,"heats":3},
				{"number":"2","gender":"Boys","age_group":"9-10","distance":"50yd","stroke":"Free","entries":11,"heats":2}]}`
			req := httptest.NewRequest(http.MethodPost, "/combos", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := serve(mux, req)

			Convey("Then the events are combined", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var res service.ComboResult
				So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
				So(res.Title, ShouldEqual, "Reef")
				So(res.Pairs, ShouldHaveLength, 1)
			})
		})

		Convey("When the JSON body has no events", func() {
			req := httptest.NewRequest(http.MethodPost, "/combos", strings.NewReader(`{"title":"Reef"}`))
			req.Header.Set("Content-Type", "application/json")
			So(serve(mux, req).Code, ShouldEqual, http.StatusBadRequest)
		})
	})

	Convey("Given a server with a tiny upload limit", t, func() {
		mux := newMux(api.WithMaxUploadBytes(64))

		Convey("When a larger file is uploaded", func() {
			w := serve(mux, multipartRequest("/combos", "reef.csv", strings.Repeat(eventsCSV, 10), nil))

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldBeIn, []int{http.StatusRequestEntityTooLarge, http.StatusBadRequest})
			})
		})
	})
}

func TestAwards(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux()

		Convey("When a history table is posted to /meets", func() {
			w := serve(mux, multipartRequest("/meets", "history.csv", historyCSV, nil))

			Convey("Then the meets with data are listed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"id":"Meet1"`)
				So(w.Body.String(), ShouldContainSubstring, `"id":"Meet2"`)
			})
		})

		Convey("When Fast Fishy is requested for Meet2", func() {
			w := serve(mux, multipartRequest("/awards/fast-fishy?meet=Meet2", "history.csv", historyCSV, nil))

			Convey("Then the label and rankings are returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var res service.AwardResult
				So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
				So(res.Kind, ShouldEqual, service.KindFastFishy)
				So(res.Labels, ShouldHaveLength, 1)
				So(res.Labels[0].Name, ShouldEqual, "Fish, Nemo")
				So(res.Rankings["9-10"], ShouldHaveLength, 1)
				So(res.Artifacts, ShouldNotBeEmpty)
			})
		})

		Convey("When improvements are requested", func() {
			w := serve(mux, multipartRequest("/awards/improvements?meet=Meet2", "history.csv", historyCSV, nil))
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "Previous best: 40.00")
		})

		Convey("When the meet parameter is missing", func() {
			w := serve(mux, multipartRequest("/awards/improvements", "history.csv", historyCSV, nil))
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the meet is unknown", func() {
			w := serve(mux, multipartRequest("/awards/triple-drops?meet=Meet7", "history.csv", historyCSV, nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the award kind is unknown", func() {
			w := serve(mux, multipartRequest("/awards/gold?meet=Meet2", "history.csv", historyCSV, nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When the season is requested", func() {
			w := serve(mux, multipartRequest("/season", "history.csv", historyCSV, nil))

			Convey("Then every meet is evaluated", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var res struct {
					Results []service.AwardResult `json:"results"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &res), ShouldBeNil)
				So(res.Results, ShouldHaveLength, 2)
			})
		})

		Convey("When the history table is malformed", func() {
			w := serve(mux, multipartRequest("/meets", "history.csv", "a,b\n1,2,3\n", nil))
			So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
		})
	})
}

func TestArtifacts(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newMux()

		Convey("When an unknown artifact is requested", func() {
			w := serve(mux, httptest.NewRequest(http.MethodGet, "/artifacts/nope", nil))
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Body.String(), ShouldContainSubstring, "not_found")
		})
	})
}
