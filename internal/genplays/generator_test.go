package genplays_test

import (
	"bytes"
	"testing"

	"github.com/okian/scoresync/internal/adapters/vendor"
	"github.com/okian/scoresync/internal/genplays"
	"github.com/smartystreets/goconvey/convey"
)

func TestWrite(t *testing.T) {
	convey.Convey("Given the fake export generator", t, func() {
		convey.Convey("When plays are generated", func() {
			var buf bytes.Buffer
			err := genplays.Write(&buf, genplays.Config{NumPlays: 200, NumSongs: 10})
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the output parses as a vendor export", func() {
				subs, perr := vendor.ParseExport(&buf, "sdvx", 6)
				convey.So(perr, convey.ShouldBeNil)
				convey.So(subs, convey.ShouldHaveLength, 200)

				for _, sub := range subs {
					convey.So(sub.Points, convey.ShouldBeBetweenOrEqual, 0, 10_000_000)
					convey.So(sub.ClearType.Valid(), convey.ShouldBeTrue)
					convey.So(sub.Grade.Valid(), convey.ShouldBeTrue)
					convey.So(sub.Chart.SongID, convey.ShouldBeBetweenOrEqual, 1, 10)
					convey.So(sub.Chart.Chart, convey.ShouldBeBetweenOrEqual, 0, 2)
					convey.So(sub.ReportedUpdateAt.After(sub.PlayedAt), convey.ShouldBeTrue)
				}
			})
		})

		convey.Convey("When the play count is not positive", func() {
			var buf bytes.Buffer
			err := genplays.Write(&buf, genplays.Config{NumPlays: 0})

			convey.Convey("Then generation is refused", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(buf.Len(), convey.ShouldEqual, 0)
			})
		})
	})
}
