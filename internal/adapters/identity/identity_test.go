package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/scoresync/internal/adapters/identity"
	"github.com/smartystreets/goconvey/convey"
)

func TestMemoryResolver(t *testing.T) {
	convey.Convey("Given a resolver with one cabinet and one card", t, func() {
		ctx := context.Background()
		r := identity.NewMemoryResolver()
		r.AddCabinet("PCB-001", 7)
		r.AddPlayer("CARD-001", 42)

		convey.Convey("When known references are resolved", func() {
			loc, errCab := r.ResolveCabinet(ctx, "PCB-001")
			player, errPlayer := r.ResolvePlayer(ctx, "CARD-001")

			convey.Convey("Then the registered ids come back", func() {
				convey.So(errCab, convey.ShouldBeNil)
				convey.So(loc, convey.ShouldEqual, 7)
				convey.So(errPlayer, convey.ShouldBeNil)
				convey.So(player, convey.ShouldEqual, 42)
			})
		})

		convey.Convey("When an unknown cabinet is resolved", func() {
			_, err := r.ResolveCabinet(ctx, "PCB-BOGUS")

			convey.Convey("Then the sentinel identifies the failure", func() {
				convey.So(errors.Is(err, identity.ErrUnknownCabinet), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "PCB-BOGUS")
			})
		})

		convey.Convey("When an unknown card is resolved", func() {
			_, err := r.ResolvePlayer(ctx, "CARD-BOGUS")

			convey.Convey("Then the sentinel identifies the failure", func() {
				convey.So(errors.Is(err, identity.ErrUnknownPlayer), convey.ShouldBeTrue)
			})
		})
	})
}
