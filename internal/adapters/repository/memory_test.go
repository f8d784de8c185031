package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/scoresync/internal/adapters/repository"
	"github.com/okian/scoresync/internal/domain/model"
	"github.com/okian/scoresync/internal/domain/rank"
	"github.com/okian/scoresync/internal/domain/stats"
	"github.com/smartystreets/goconvey/convey"
)

func record(points int, locationID int64) model.BestScoreRecord {
	return model.BestScoreRecord{
		Points:        points,
		ClearType:     rank.ClearCleared,
		Grade:         rank.GradeA,
		Stats:         stats.PlayStats{BtnRate: float64(points) / 100000},
		FirstSeenAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		LastUpdatedAt: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
		LocationID:    locationID,
	}
}

func TestMemoryStoreBest(t *testing.T) {
	convey.Convey("Given an empty memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()

		convey.Convey("When reading a pair that never played", func() {
			_, err := store.ReadBest(ctx, 1, 10)

			convey.Convey("Then it reports not found", func() {
				convey.So(errors.Is(err, repository.ErrNotFound), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When writing the first record", func() {
			rec := record(8_000_000, 5)
			convey.So(store.WriteBest(ctx, 1, 10, rec, repository.WriteHighScore), convey.ShouldBeNil)

			got, err := store.ReadBest(ctx, 1, 10)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the row is stored verbatim", func() {
				convey.So(got, convey.ShouldResemble, rec)
				convey.So(store.Count(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When a high-score write lands on an existing row", func() {
			old := record(8_000_000, 5)
			convey.So(store.WriteBest(ctx, 1, 10, old, repository.WriteHighScore), convey.ShouldBeNil)

			higher := record(9_000_000, 6)
			higher.ClearType = rank.ClearHard
			convey.So(store.WriteBest(ctx, 1, 10, higher, repository.WriteHighScore), convey.ShouldBeNil)

			got, err := store.ReadBest(ctx, 1, 10)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the row follows the new high score", func() {
				convey.So(got.Points, convey.ShouldEqual, 9_000_000)
				convey.So(got.ClearType, convey.ShouldEqual, rank.ClearHard)
				convey.So(got.Stats, convey.ShouldResemble, higher.Stats)
				convey.So(got.LocationID, convey.ShouldEqual, 6)
			})
		})

		convey.Convey("When an accumulate write lands on an existing row", func() {
			old := record(9_000_000, 5)
			convey.So(store.WriteBest(ctx, 1, 10, old, repository.WriteHighScore), convey.ShouldBeNil)

			tie := record(9_000_000, 6)
			tie.Grade = rank.GradeAAA
			tie.LastUpdatedAt = old.LastUpdatedAt.Add(time.Hour)
			convey.So(store.WriteBest(ctx, 1, 10, tie, repository.WriteAccumulate), convey.ShouldBeNil)

			got, err := store.ReadBest(ctx, 1, 10)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the cabinet of the high score does not move", func() {
				convey.So(got.LocationID, convey.ShouldEqual, 5)
			})

			convey.Convey("Then accumulated fields and last-updated still advance", func() {
				convey.So(got.Grade, convey.ShouldEqual, rank.GradeAAA)
				convey.So(got.LastUpdatedAt.Equal(tie.LastUpdatedAt), convey.ShouldBeTrue)
			})

			convey.Convey("Then the stats snapshot is untouched on a tie", func() {
				convey.So(got.Stats, convey.ShouldResemble, old.Stats)
			})
		})

		convey.Convey("When the same write is applied twice", func() {
			rec := record(8_500_000, 3)
			convey.So(store.WriteBest(ctx, 2, 20, rec, repository.WriteHighScore), convey.ShouldBeNil)
			first, err := store.ReadBest(ctx, 2, 20)
			convey.So(err, convey.ShouldBeNil)

			convey.So(store.WriteBest(ctx, 2, 20, rec, repository.WriteHighScore), convey.ShouldBeNil)
			second, err := store.ReadBest(ctx, 2, 20)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the upsert is idempotent", func() {
				convey.So(second, convey.ShouldResemble, first)
			})
		})
	})
}

func TestMemoryStoreHistory(t *testing.T) {
	convey.Convey("Given a memory store", t, func() {
		ctx := context.Background()

		convey.Convey("When history rows are appended", func() {
			store := repository.NewMemoryStore()
			e1 := model.HistoryEntry{Points: 0, IsNewRecord: true, PlayerID: 1}
			e2 := model.HistoryEntry{Points: 8_000_000, IsNewRecord: false, PlayerID: 1}
			convey.So(store.AppendHistory(ctx, 1, 10, e1), convey.ShouldBeNil)
			convey.So(store.AppendHistory(ctx, 1, 10, e2), convey.ShouldBeNil)

			convey.Convey("Then they are kept verbatim in insertion order", func() {
				got := store.History()
				convey.So(got, convey.ShouldHaveLength, 2)
				convey.So(got[0], convey.ShouldResemble, e1)
				convey.So(got[1], convey.ShouldResemble, e2)
			})
		})

		convey.Convey("When the store is configured to fail appends", func() {
			boom := errors.New("disk full")
			store := repository.NewMemoryStore(repository.WithHistoryError(boom))

			err := store.AppendHistory(ctx, 1, 10, model.HistoryEntry{})

			convey.Convey("Then the append fails and nothing is recorded", func() {
				convey.So(errors.Is(err, boom), convey.ShouldBeTrue)
				convey.So(store.History(), convey.ShouldBeEmpty)
			})
		})
	})
}
