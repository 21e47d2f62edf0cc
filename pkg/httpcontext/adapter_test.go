package httpcontext

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/taskapi/pkg/logger"
)

func TestAdapter(t *testing.T) {
	Convey("Given a request without a request id", t, func() {
		var ctx fasthttp.RequestCtx
		adapter := NewAdapter(0)

		stdCtx, cancel := adapter.Attach(&ctx)
		defer cancel()

		Convey("One is minted and echoed", func() {
			reqID := appLogger.RequestID(stdCtx)
			So(reqID, ShouldNotBeEmpty)
			So(string(ctx.Response.Header.Peek(HeaderRequestID)), ShouldEqual, reqID)
			So(string(ctx.Request.Header.Peek(HeaderRequestID)), ShouldEqual, reqID)
		})

		Convey("The default timeout bounds the context", func() {
			deadline, ok := stdCtx.Deadline()
			So(ok, ShouldBeTrue)
			So(time.Until(deadline).Seconds(), ShouldBeBetweenOrEqual, 4.0, 5.0)
		})
	})

	Convey("Given an inbound request id", t, func() {
		var ctx fasthttp.RequestCtx
		ctx.Request.Header.Set(HeaderRequestID, "abc")

		So(EnsureRequestID(&ctx), ShouldEqual, "abc")
		So(string(ctx.Response.Header.Peek(HeaderRequestID)), ShouldEqual, "abc")
	})
}
