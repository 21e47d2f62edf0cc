package store

import (
	"context"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/fastygo/taskapi/domain"
	"github.com/fastygo/taskapi/internal/config"
)

func TestParseURL(t *testing.T) {
	Convey("Connection strings select a backend", t, func() {
		target, err := ParseURL("postgres://app:secret@db:5432/app?sslmode=disable")
		So(err, ShouldBeNil)
		So(target.Driver, ShouldEqual, DriverPostgres)
		So(target.DSN, ShouldEqual, "postgres://app:secret@db:5432/app?sslmode=disable")

		target, err = ParseURL("postgresql://localhost/app")
		So(err, ShouldBeNil)
		So(target.Driver, ShouldEqual, DriverPostgres)

		target, err = ParseURL("bolt://./data/app.db")
		So(err, ShouldBeNil)
		So(target.Driver, ShouldEqual, DriverBolt)
		So(target.DSN, ShouldEqual, "./data/app.db")

		target, err = ParseURL("bolt:///var/lib/app.db")
		So(err, ShouldBeNil)
		So(target.DSN, ShouldEqual, "/var/lib/app.db")
	})

	Convey("Unusable connection strings are rejected", t, func() {
		for _, raw := range []string{"", "   ", "mysql://localhost/app", "bolt://", "::::"} {
			_, err := ParseURL(raw)
			So(err, ShouldNotBeNil)
		}
	})
}

func TestOpenBolt(t *testing.T) {
	Convey("Given a bolt connection string", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "app.db")

		s, err := Open(ctx, config.DatabaseConfig{URL: "bolt://" + path}, nil)
		So(err, ShouldBeNil)
		defer s.Close()

		Convey("Both gateways share the backend", func() {
			So(s.Driver, ShouldEqual, DriverBolt)
			So(s.Ping(ctx), ShouldBeNil)

			task, err := s.Tasks.Insert(ctx, domain.TaskInput{Title: "t"})
			So(err, ShouldBeNil)
			So(task.ID, ShouldEqual, 1)

			users, err := s.Users.List(ctx)
			So(err, ShouldBeNil)
			So(users, ShouldBeEmpty)
		})

		Convey("Ping fails after Close", func() {
			So(s.Close(), ShouldBeNil)
			So(s.Ping(ctx), ShouldNotBeNil)
		})
	})

	Convey("An unreachable postgres fails to open", t, func() {
		_, err := Open(context.Background(), config.DatabaseConfig{URL: "postgres://nobody@127.0.0.1:1/none?connect_timeout=1"}, nil)
		So(err, ShouldNotBeNil)
	})

	Convey("A nil store is not usable", t, func() {
		var s *Store
		So(s.Ping(context.Background()), ShouldNotBeNil)
		So(s.Close(), ShouldBeNil)
	})
}
