package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/zap/zapcore"
)

func TestLogger(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		log := build(Config{Level: "info", Encoding: "json"}, zapcore.AddSync(&buf))

		Convey("Request ids from the context are attached", func() {
			ctx := ContextWithRequestID(context.Background(), "req-1")
			WithRequestID(ctx, log).Info("hello")
			So(log.Sync(), ShouldBeNil)

			var line map[string]interface{}
			So(json.Unmarshal(buf.Bytes(), &line), ShouldBeNil)
			So(line["msg"], ShouldEqual, "hello")
			So(line["request_id"], ShouldEqual, "req-1")
			So(line, ShouldContainKey, "timestamp")
		})

		Convey("Debug lines are dropped at info level", func() {
			log.Debug("quiet")
			So(buf.Len(), ShouldEqual, 0)
		})
	})

	Convey("An unknown level falls back to info", t, func() {
		var buf bytes.Buffer
		log := build(Config{Level: "loud", Encoding: "console"}, zapcore.AddSync(&buf))
		So(log.Core().Enabled(zapcore.InfoLevel), ShouldBeTrue)
		So(log.Core().Enabled(zapcore.DebugLevel), ShouldBeFalse)
	})

	Convey("Contexts without a request id leave the logger alone", t, func() {
		log, err := New(Config{})
		So(err, ShouldBeNil)
		So(WithRequestID(context.Background(), log), ShouldPointTo, log)
		So(RequestID(context.Background()), ShouldEqual, "")
	})
}
