package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/okian/scoresync/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMetrics(t *testing.T) {
	convey.Convey("Given the global metrics manager", t, func() {
		convey.Convey("When counters and gauges are recorded", func() {
			convey.So(func() {
				metrics.RecordBatchSynced()
				metrics.RecordBatchAborted("unknown_cabinet")
				metrics.RecordPlayProcessed()
				metrics.RecordPlaySkipped("unknown_chart")
				metrics.RecordPlayDuplicate()
				metrics.RecordNewRecord()
				metrics.RecordHistoryAppendFailure()
				metrics.RecordStoreLatency("read_best", 1.5)
				metrics.RecordBatchDuration(12)
				metrics.UpdateQueueSize(3)
				metrics.UpdateQueueCapacity(1024)
				metrics.UpdateWorkerCount(4)
				metrics.RecordQueueEnqueueError("queue_full")
			}, convey.ShouldNotPanic)

			convey.Convey("Then the scrape handler exposes them", func() {
				rec := httptest.NewRecorder()
				req := httptest.NewRequest("GET", "/metrics", nil)
				metrics.Handler().ServeHTTP(rec, req)

				convey.So(rec.Code, convey.ShouldEqual, 200)
				body, err := io.ReadAll(rec.Body)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(body), convey.ShouldContainSubstring, "scoresync_sync_batches_synced_total")
				convey.So(string(body), convey.ShouldContainSubstring, "scoresync_sync_plays_processed_total")
				convey.So(string(body), convey.ShouldContainSubstring, "scoresync_sync_queue_capacity")
			})
		})
	})
}
