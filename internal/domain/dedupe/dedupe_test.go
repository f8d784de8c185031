package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/scoresync/internal/domain/dedupe"
	"github.com/okian/scoresync/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPlayKey(t *testing.T) {
	Convey("Given two plays", t, func() {
		chart := model.ChartRef{Game: "sdvx", Version: 6, SongID: 42, Chart: 1}
		at := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

		Convey("Then identical plays produce identical keys", func() {
			So(dedupe.PlayKey("card-1", chart, at), ShouldEqual, dedupe.PlayKey("card-1", chart, at))
		})

		Convey("Then any differing component changes the key", func() {
			base := dedupe.PlayKey("card-1", chart, at)
			So(dedupe.PlayKey("card-2", chart, at), ShouldNotEqual, base)

			other := chart
			other.Chart = 2
			So(dedupe.PlayKey("card-1", other, at), ShouldNotEqual, base)
			So(dedupe.PlayKey("card-1", chart, at.Add(time.Second)), ShouldNotEqual, base)
		})
	})
}

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new in-memory deduper", t, func() {
		ctx := context.Background()

		Convey("When recording keys", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the key is new", func() {
				seen := d.SeenAndRecord(ctx, "play-1")

				Convey("Then it is recorded", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the key was already recorded", func() {
				d.SeenAndRecord(ctx, "play-1")
				seen := d.SeenAndRecord(ctx, "play-1")

				Convey("Then it reports seen without growing", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})
		})

		Convey("When unrecording a key", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(ctx, "play-1")
			d.Unrecord(ctx, "play-1")

			Convey("Then the key can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "play-1"), ShouldBeFalse)
			})
		})

		Convey("When the bound is reached", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
			for i := 0; i < 3; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("play-%d", i))
			}
			d.SeenAndRecord(ctx, "play-3")

			Convey("Then the oldest key is evicted", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "play-0"), ShouldBeFalse) // evicted, treated as new
				So(d.SeenAndRecord(ctx, "play-3"), ShouldBeTrue)
			})
		})

		Convey("When accessed concurrently", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func(n int) {
					defer wg.Done()
					for j := 0; j < 100; j++ {
						d.SeenAndRecord(ctx, fmt.Sprintf("g%d-p%d", n, j))
					}
				}(i)
			}
			wg.Wait()

			Convey("Then every key is tracked exactly once", func() {
				So(d.Size(), ShouldEqual, 1000)
			})
		})
	})
}
