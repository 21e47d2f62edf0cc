package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given registered hooks", t, func() {
		m := New(time.Second, nil)
		var order []string
		m.Register("store", func(ctx context.Context) error {
			order = append(order, "store")
			return nil
		})
		m.Register("monitor", func(ctx context.Context) error {
			order = append(order, "monitor")
			return errors.New("stuck")
		})
		m.Register("http_server", func(ctx context.Context) error {
			_, hasDeadline := ctx.Deadline()
			if !hasDeadline {
				return errors.New("no deadline")
			}
			order = append(order, "http_server")
			return nil
		})
		m.Register("ignored", nil)

		Convey("Shutdown runs them newest first and keeps going past failures", func() {
			err := m.Shutdown(context.Background())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "stuck")
			So(order, ShouldResemble, []string{"http_server", "monitor", "store"})

			Convey("A second Shutdown is a no-op", func() {
				So(m.Shutdown(context.Background()), ShouldBeNil)
				So(order, ShouldHaveLength, 3)
			})
		})
	})
}
