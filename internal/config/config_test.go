package config

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given no DATABASE_URL", t, func() {
		t.Setenv("DATABASE_URL", "")

		Convey("Load refuses to build a config", func() {
			cfg, err := Load()
			So(cfg, ShouldBeNil)
			So(err, ShouldEqual, ErrMissingDatabaseURL)
		})
	})

	Convey("Given only DATABASE_URL", t, func() {
		t.Setenv("DATABASE_URL", " postgres://app@localhost/app ")
		for _, key := range []string{"SERVER_PORT", "SERVER_HOST", "REQUEST_TIMEOUT_SECONDS", "RUN_MIGRATIONS", "SERVER_ENABLE_METRICS"} {
			t.Setenv(key, "")
		}

		cfg, err := Load()
		So(err, ShouldBeNil)

		Convey("Defaults are applied", func() {
			So(cfg.Database.URL, ShouldEqual, "postgres://app@localhost/app")
			So(cfg.Address(), ShouldEqual, "0.0.0.0:8080")
			So(cfg.Context.RequestTimeout, ShouldEqual, 5*time.Second)
			So(cfg.Migrations.Enabled, ShouldBeFalse)
			So(cfg.HTTP.EnableMetrics, ShouldBeTrue)
		})
	})

	Convey("Given overrides", t, func() {
		t.Setenv("DATABASE_URL", "bolt://./data/app.db")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")
		t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "2m")
		t.Setenv("RUN_MIGRATIONS", "true")
		t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

		cfg, err := Load()
		So(err, ShouldBeNil)

		Convey("Bare numbers are seconds and bad values fall back", func() {
			So(cfg.HTTP.Port, ShouldEqual, "9090")
			So(cfg.Context.RequestTimeout, ShouldEqual, 3*time.Second)
			So(cfg.Context.ShutdownTimeout, ShouldEqual, 2*time.Minute)
			So(cfg.Migrations.Enabled, ShouldBeTrue)
			So(cfg.Database.MaxOpenConns, ShouldEqual, 25)
		})
	})
}
