package domain

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDomainErrors(t *testing.T) {
	Convey("Given a store failure", t, func() {
		cause := errors.New("connection refused")
		err := StoreError("list tasks", cause)

		Convey("It carries the STORE code and the cause", func() {
			So(IsDomainError(err, ErrCodeStore), ShouldBeTrue)
			So(IsDomainError(err, ErrCodeNotFound), ShouldBeFalse)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "list tasks: connection refused")
		})

		Convey("Wrapping it again keeps the classification", func() {
			wrapped := fmt.Errorf("handler: %w", err)
			So(IsDomainError(wrapped, ErrCodeStore), ShouldBeTrue)
		})
	})

	Convey("Given a validation error", t, func() {
		err := Invalid("%s is required", "title")

		Convey("The message is client facing", func() {
			So(err.Error(), ShouldEqual, "title is required")
			So(IsDomainError(err, ErrCodeInvalid), ShouldBeTrue)
		})
	})

	Convey("A nil error pointer is safe to print and unwrap", t, func() {
		var err *Error
		So(err.Error(), ShouldEqual, "")
		So(err.Unwrap(), ShouldBeNil)
	})

	Convey("Plain errors carry no domain code", t, func() {
		So(IsDomainError(errors.New("boom"), ErrCodeStore), ShouldBeFalse)
		So(IsDomainError(nil, ErrCodeNotFound), ShouldBeFalse)
	})
}
