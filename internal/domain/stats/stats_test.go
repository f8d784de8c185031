package stats_test

import (
	"errors"
	"testing"

	"github.com/okian/scoresync/internal/domain/stats"
	"github.com/smartystreets/goconvey/convey"
)

func TestCodecRoundTrip(t *testing.T) {
	convey.Convey("Given a play stats snapshot", t, func() {
		s := stats.PlayStats{
			BtnRate:  198.7,
			LongRate: 200,
			VolRate:  185.3,
			Critical: 1204,
			Near:     37,
			Error:    5,
		}

		convey.Convey("When encoded and decoded", func() {
			blob, err := stats.Encode(s)
			convey.So(err, convey.ShouldBeNil)

			got, err := stats.Decode(blob)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the round trip is exact", func() {
				convey.So(got, convey.ShouldResemble, s)
			})
		})

		convey.Convey("When the snapshot carries an opaque vendor blob", func() {
			s.Extra = []byte{0x00, 0x01, 0xFE, 0xFF, 0x7F}
			blob, err := stats.Encode(s)
			convey.So(err, convey.ShouldBeNil)

			got, err := stats.Decode(blob)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the bytes survive verbatim", func() {
				convey.So(got.Extra, convey.ShouldResemble, s.Extra)
				convey.So(got, convey.ShouldResemble, s)
			})
		})
	})
}

func TestDecodeEdgeCases(t *testing.T) {
	convey.Convey("Given stored blobs in unexpected shapes", t, func() {
		convey.Convey("When the blob is nil", func() {
			got, err := stats.Decode(nil)

			convey.Convey("Then it decodes to the zero snapshot", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(got, convey.ShouldResemble, stats.PlayStats{})
			})
		})

		convey.Convey("When the blob is not JSON", func() {
			_, err := stats.Decode([]byte("not json"))

			convey.Convey("Then it fails with the decode sentinel", func() {
				convey.So(errors.Is(err, stats.ErrDecode), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the envelope version is unknown", func() {
			_, err := stats.Decode([]byte(`{"v":99,"stats":{}}`))

			convey.Convey("Then it fails with the decode sentinel", func() {
				convey.So(errors.Is(err, stats.ErrDecode), convey.ShouldBeTrue)
			})
		})
	})
}
