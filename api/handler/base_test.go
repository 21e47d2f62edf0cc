package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/taskapi/domain"
)

func TestMapError(t *testing.T) {
	Convey("Every error kind has one status", t, func() {
		status, body := mapError(domain.ErrTaskNotFound)
		So(status, ShouldEqual, http.StatusNotFound)
		So(body, ShouldEqual, "not found")

		status, body = mapError(domain.Invalid("title is required"))
		So(status, ShouldEqual, http.StatusBadRequest)
		So(body, ShouldEqual, "title is required")

		status, body = mapError(fmt.Errorf("wrapped: %w", domain.StoreError("insert task", errors.New("duplicate key"))))
		So(status, ShouldEqual, http.StatusInternalServerError)
		So(body, ShouldEqual, "store error: wrapped: insert task: duplicate key")

		status, body = mapError(errors.New("boom"))
		So(status, ShouldEqual, http.StatusInternalServerError)
		So(body, ShouldEqual, "internal error: boom")
	})
}

func TestParseID(t *testing.T) {
	Convey("Path ids must be positive integers", t, func() {
		var ctx fasthttp.RequestCtx

		ctx.SetUserValue("id", "42")
		id, err := parseID(&ctx)
		So(err, ShouldBeNil)
		So(id, ShouldEqual, 42)

		for _, raw := range []string{"", "0", "-1", "1.5", "x", "+1", "01", "007", " 1"} {
			ctx.SetUserValue("id", raw)
			_, err := parseID(&ctx)
			So(domain.IsDomainError(err, domain.ErrCodeInvalid), ShouldBeTrue)
		}
	})
}
