package monitor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakePinger struct {
	fail  atomic.Bool
	calls atomic.Int32
}

func (f *fakePinger) Ping(ctx context.Context) error {
	f.calls.Add(1)
	if f.fail.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func TestMonitor(t *testing.T) {
	Convey("Given a monitor over a healthy store", t, func() {
		target := &fakePinger{}
		m, err := New("bolt", target, time.Hour, nil)
		So(err, ShouldBeNil)

		Convey("Before any probe the store is reported offline", func() {
			So(m.Status().Online, ShouldBeFalse)
			So(m.Status().Store, ShouldEqual, "bolt")
		})

		Convey("Start probes immediately", func() {
			m.Start()
			defer m.Stop(context.Background())

			status := m.Status()
			So(status.Online, ShouldBeTrue)
			So(status.Error, ShouldBeEmpty)
			So(status.LastCheck.IsZero(), ShouldBeFalse)
			So(target.calls.Load(), ShouldEqual, 1)
		})

		Convey("A failing probe is recorded with its error", func() {
			m.Refresh()
			target.fail.Store(true)
			m.Refresh()

			status := m.Status()
			So(status.Online, ShouldBeFalse)
			So(status.Error, ShouldEqual, "connection refused")
		})
	})
}

func TestMonitorSchedule(t *testing.T) {
	Convey("A schedule the cron parser rejects is reported", t, func() {
		m, err := New("postgres", &fakePinger{}, time.Minute, nil)
		So(err, ShouldBeNil)

		err = m.schedule("@every never")
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, `schedule store probe "@every never"`)
	})
}
