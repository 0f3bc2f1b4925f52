package model

import (
	"context"
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestLifecycle(t *testing.T) {
	convey.Convey("Given the lifecycle table", t, func() {
		ctx := context.Background()

		convey.Convey("Then compare is allowed only from pending", func() {
			convey.So(checkTransition(ctx, TagPending, EventCompare), convey.ShouldBeNil)
			convey.So(errors.Is(checkTransition(ctx, TagFinalized, EventCompare), ErrAlreadyFinalized), convey.ShouldBeTrue)
		})

		convey.Convey("Then unknown events are never allowed", func() {
			for _, from := range []Tag{TagPending, TagFinalized} {
				err := checkTransition(ctx, from, "reopen")
				convey.So(errors.Is(err, ErrInvalidTransition), convey.ShouldBeTrue)
				convey.So(errors.Is(err, ErrAlreadyFinalized), convey.ShouldBeFalse)
			}
		})
	})
}
