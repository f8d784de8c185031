package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/scoresync/internal/adapters/mq/queue"
	"github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	convey.Convey("Given a bounded in-memory queue", t, func() {
		ctx := context.Background()

		convey.Convey("When batches are enqueued within capacity", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(2))

			convey.So(q.Enqueue(ctx, queue.Batch{CabinetRef: "a"}), convey.ShouldBeTrue)
			convey.So(q.Enqueue(ctx, queue.Batch{CabinetRef: "b"}), convey.ShouldBeTrue)

			convey.Convey("Then Len reflects the backlog", func() {
				convey.So(q.Len(ctx), convey.ShouldEqual, 2)
			})

			convey.Convey("Then a further enqueue is rejected, not blocked", func() {
				convey.So(q.Enqueue(ctx, queue.Batch{CabinetRef: "c"}), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the queue is closed with a backlog", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			convey.So(q.Enqueue(ctx, queue.Batch{CabinetRef: "a"}), convey.ShouldBeTrue)
			convey.So(q.Enqueue(ctx, queue.Batch{CabinetRef: "b"}), convey.ShouldBeTrue)
			convey.So(q.Close(), convey.ShouldBeNil)

			convey.Convey("Then new enqueues are rejected", func() {
				convey.So(q.Enqueue(ctx, queue.Batch{CabinetRef: "c"}), convey.ShouldBeFalse)
			})

			convey.Convey("Then queued batches are still delivered in order", func() {
				var got []string
				for b := range q.Dequeue(ctx) {
					got = append(got, b.CabinetRef)
				}
				convey.So(got, convey.ShouldResemble, []string{"a", "b"})
			})

			convey.Convey("Then closing again is a no-op", func() {
				convey.So(q.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the consumer's context is canceled", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			convey.So(q.Enqueue(ctx, queue.Batch{CabinetRef: "a"}), convey.ShouldBeTrue)

			dequeueCtx, cancel := context.WithCancel(ctx)
			out := q.Dequeue(dequeueCtx)
			cancel()
			convey.So(q.Close(), convey.ShouldBeNil)

			convey.Convey("Then the dequeue channel still closes", func() {
				deadline := time.After(time.Second)
				for {
					select {
					case _, ok := <-out:
						if !ok {
							return
						}
					case <-deadline:
						convey.So("dequeue channel did not close", convey.ShouldBeEmpty)
						return
					}
				}
			})
		})
	})
}
