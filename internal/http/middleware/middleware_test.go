package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/aanand-mishra/student-records/internal/logger"
	"github.com/aanand-mishra/student-records/internal/metrics"
)

func TestRequestLogger(t *testing.T) {
	Convey("Given a handler wrapped with RequestLogger", t, func() {
		var buf bytes.Buffer
		base := slog.New(slog.NewTextHandler(&buf, nil))

		var seen *slog.Logger
		h := RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = logger.FromContext(r.Context(), nil)
			w.WriteHeader(http.StatusTeapot)
		}))

		Convey("When the request has no id", func() {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then a UUID is generated and echoed", func() {
				_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
				So(err, ShouldBeNil)
			})

			Convey("And the handler sees a request logger", func() {
				So(seen, ShouldNotBeNil)
			})

			Convey("And the access line carries the status", func() {
				So(buf.String(), ShouldContainSubstring, "request served")
				So(buf.String(), ShouldContainSubstring, "status=418")
			})
		})

		Convey("When the client sends an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is kept", func() {
				So(w.Header().Get(RequestIDHeader), ShouldEqual, "abc-123")
				So(buf.String(), ShouldContainSubstring, "request_id=abc-123")
			})
		})
	})
}

func TestMetrics(t *testing.T) {
	Convey("Given a handler wrapped with Metrics", t, func() {
		m := metrics.New(nil)
		h := Metrics(m, "delete_student", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		})

		Convey("When it serves a request", func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/delete-student/x", nil))

			Convey("Then the request is counted under its status", func() {
				n, err := testutil.GatherAndCount(m.Registry(), "students_http_requests_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When metrics are disabled", func() {
			called := false
			next := func(w http.ResponseWriter, r *http.Request) { called = true }
			Metrics(nil, "index", next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then the handler still runs", func() {
				So(called, ShouldBeTrue)
			})
		})
	})
}
