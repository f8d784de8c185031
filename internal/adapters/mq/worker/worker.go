// Package worker runs the pool of goroutines that drain the batch
// queue into the sync orchestrator.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/okian/scoresync/internal/domain/model"
	"github.com/okian/scoresync/pkg/logger"
	"github.com/okian/scoresync/pkg/metrics"
)

const workerShutdownTimeout = 5 * time.Second

// Syncer drives one batch end to end.
type Syncer interface {
	Sync(ctx context.Context, cabinetRef, playerRef string, subs []model.ScoreSubmission) model.Report
}

// Queue defines how workers receive batches.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Batch
}

// Worker consumes batches and hands them to the syncer.
type Worker struct {
	queue  Queue
	syncer Syncer
	name   string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// New creates a worker with configuration options.
func New(queue Queue, syncer Syncer, opts ...Option) *Worker {
	w := &Worker{
		queue:    queue,
		syncer:   syncer,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run processes batches until ctx is canceled, the queue closes, or
// Shutdown is called.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	batches := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case b, ok := <-batches:
			if !ok {
				return
			}
			w.processBatch(ctx, b)
		}
	}
}

// Shutdown stops the worker, waiting for the in-flight batch.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker shutdown timed out: %w", ctx.Err())
	}
}

func (w *Worker) processBatch(ctx context.Context, b model.Batch) {
	start := time.Now()
	report := w.syncer.Sync(ctx, b.CabinetRef, b.PlayerRef, b.Submissions)
	metrics.RecordBatchDuration(float64(time.Since(start).Milliseconds()))

	if report.Aborted {
		w.logger.Warn(ctx, "batch aborted",
			logger.String("batchID", report.BatchID),
			logger.String("cabinet", b.CabinetRef),
			logger.Error(report.Reason),
		)
		return
	}
	w.logger.Info(ctx, "batch synced",
		logger.String("batchID", report.BatchID),
		logger.String("cabinet", b.CabinetRef),
		logger.Int("processed", report.Processed),
		logger.Int("skipped", report.Skipped),
	)
}

// Pool manages a fixed set of workers.
type Pool struct {
	workers []*Worker
	logger  logger.Logger
}

// NewPool creates workerCount workers over the queue and syncer.
func NewPool(workerCount int, queue Queue, syncer Syncer) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = New(queue, syncer, WithName("worker-"+strconv.Itoa(i)))
	}
	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Start launches all workers.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop shuts down all workers, bounding the wait per worker.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker did not stop cleanly", logger.Error(err))
		}
		cancel()
	}
}
