package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/scoresync/internal/adapters/catalog"
	"github.com/okian/scoresync/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestMemoryCatalog(t *testing.T) {
	convey.Convey("Given a catalog with one chart", t, func() {
		ctx := context.Background()
		ref := model.ChartRef{Game: "sdvx", Version: 6, SongID: 1234, Chart: 2}

		c := catalog.NewMemoryCatalog()
		c.AddChart(ref, 900)

		convey.Convey("When the chart is resolved", func() {
			key, err := c.ResolveChart(ctx, ref)

			convey.Convey("Then the music key comes back", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(key, convey.ShouldEqual, 900)
			})
		})

		convey.Convey("When any field of the reference differs", func() {
			other := ref
			other.Chart = 3

			_, err := c.ResolveChart(ctx, other)

			convey.Convey("Then the chart is unknown", func() {
				convey.So(errors.Is(err, catalog.ErrUnknownChart), convey.ShouldBeTrue)
			})
		})
	})
}
