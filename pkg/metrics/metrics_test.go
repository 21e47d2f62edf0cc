package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	Convey("Given fresh metrics", t, func() {
		m := New()

		Convey("A finished request is counted once", func() {
			done := m.Begin()
			So(testutil.ToFloat64(m.inflight), ShouldEqual, 1)

			done("GET", "/tasks/{id}", 404)
			So(testutil.ToFloat64(m.inflight), ShouldEqual, 0)
			So(testutil.ToFloat64(m.requests.WithLabelValues("GET", "/tasks/{id}", "404")), ShouldEqual, 1)
		})

		Convey("The handler renders the text exposition", func() {
			m.Begin()("POST", "/tasks", 201)

			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `taskapi_http_requests_total{method="POST",route="/tasks",status="201"} 1`)
			So(strings.Contains(rec.Body.String(), "go_goroutines"), ShouldBeTrue)
		})
	})
}
