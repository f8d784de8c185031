// Package app wires the sync orchestrator: it resolves identities for
// one upload batch, drives the merge engine per submission, and issues
// the conditional store writes.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/scoresync/internal/adapters/catalog"
	"github.com/okian/scoresync/internal/adapters/identity"
	batchqueue "github.com/okian/scoresync/internal/adapters/mq/queue"
	workerpool "github.com/okian/scoresync/internal/adapters/mq/worker"
	"github.com/okian/scoresync/internal/adapters/repository"
	"github.com/okian/scoresync/internal/domain/dedupe"
	"github.com/okian/scoresync/internal/domain/merge"
	"github.com/okian/scoresync/internal/domain/model"
	"github.com/okian/scoresync/pkg/logger"
	"github.com/okian/scoresync/pkg/metrics"
)

const drainPollInterval = 50 * time.Millisecond

// Service implements the sync orchestrator plus the queue/worker
// machinery that feeds it.
type Service struct {
	mu sync.Mutex

	// Collaborators
	resolver identity.Resolver
	catalog  catalog.Catalog
	store    repository.Store

	// Components owned by the service
	deduper dedupe.Deduper
	queue   *batchqueue.InMemoryQueue
	pool    *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int

	started  bool
	inflight sync.WaitGroup

	logger logger.Logger
}

// New constructs a Service over its external collaborators.
func New(resolver identity.Resolver, cat catalog.Catalog, store repository.Store, opts ...Option) *Service {
	s := &Service{
		resolver:    resolver,
		catalog:     cat,
		store:       store,
		workerCount: 4,
		queueSize:   1024,
		dedupeSize:  50000,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	return s
}

// Start creates the deduper, queue and worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.queue = batchqueue.NewInMemoryQueue(
		batchqueue.WithCapacity(s.queueSize),
	)
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "sync service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop shuts down the queue and workers.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	_ = s.queue.Close()
	s.pool.Stop()
	s.started = false
	s.logger.Info(context.Background(), "sync service stopped")
}

// Enqueue submits a batch for asynchronous processing. The service
// must be started first.
func (s *Service) Enqueue(ctx context.Context, b model.Batch) bool {
	if s.queue == nil {
		return false
	}
	return s.queue.Enqueue(ctx, b)
}

// Drain blocks until the queue is empty and all in-flight batches have
// finished, or ctx is done.
func (s *Service) Drain(ctx context.Context) error {
	if s.queue == nil {
		return nil
	}
	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for s.queue.Len(ctx) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sync drives one upload batch end to end for one (cabinet, card)
// pair. Identity resolution failures abort the whole batch before any
// write; every other failure is contained to its submission and
// surfaced only through the report counts.
func (s *Service) Sync(ctx context.Context, cabinetRef, playerRef string, subs []model.ScoreSubmission) model.Report {
	s.inflight.Add(1)
	defer s.inflight.Done()

	report := model.Report{BatchID: uuid.NewString()}

	locationID, err := s.resolver.ResolveCabinet(ctx, cabinetRef)
	if err != nil {
		metrics.RecordBatchAborted(abortReason(err))
		report.Aborted = true
		report.Reason = err
		return report
	}
	playerID, err := s.resolver.ResolvePlayer(ctx, playerRef)
	if err != nil {
		metrics.RecordBatchAborted(abortReason(err))
		report.Aborted = true
		report.Reason = err
		return report
	}

	for _, sub := range subs {
		if s.syncOne(ctx, report.BatchID, playerRef, playerID, locationID, sub) {
			report.Processed++
		} else {
			report.Skipped++
		}
	}

	metrics.RecordBatchSynced()
	return report
}

// syncOne merges and persists a single submission. Returns true when
// the submission was processed, false when it was skipped.
func (s *Service) syncOne(ctx context.Context, batchID, playerRef string, playerID, locationID int64, sub model.ScoreSubmission) bool {
	key := dedupe.PlayKey(playerRef, sub.Chart, sub.PlayedAt)
	if s.deduper.SeenAndRecord(ctx, key) {
		metrics.RecordPlayDuplicate()
		metrics.RecordPlaySkipped("duplicate")
		s.logger.Debug(ctx, "play already synced, skipping",
			logger.String("batchID", batchID),
			logger.Int("songID", sub.Chart.SongID),
		)
		return false
	}

	chartKey, err := s.catalog.ResolveChart(ctx, sub.Chart)
	if err != nil {
		// The catalog may learn this chart later; let a re-upload retry.
		s.deduper.Unrecord(ctx, key)
		metrics.RecordPlaySkipped("unknown_chart")
		s.logger.Warn(ctx, "chart not in catalog, skipping play",
			logger.String("batchID", batchID),
			logger.Int("songID", sub.Chart.SongID),
			logger.Int("chart", sub.Chart.Chart),
			logger.Error(err),
		)
		return false
	}

	var existing *model.BestScoreRecord
	rec, err := s.store.ReadBest(ctx, playerID, chartKey)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// first play ever for this pair
	case err != nil:
		s.deduper.Unrecord(ctx, key)
		metrics.RecordPlaySkipped("read_failed")
		s.logger.Error(ctx, "best score read failed, skipping play",
			logger.String("batchID", batchID),
			logger.Int64("chartKey", chartKey),
			logger.Error(err),
		)
		return false
	default:
		existing = &rec
	}

	res, err := merge.Merge(existing, sub)
	if err != nil {
		metrics.RecordPlaySkipped("invalid_submission")
		s.logger.Warn(ctx, "submission rejected",
			logger.String("batchID", batchID),
			logger.Int64("chartKey", chartKey),
			logger.Error(err),
		)
		return false
	}
	res.Best.LocationID = locationID

	mode := repository.WriteAccumulate
	if res.HighScore {
		mode = repository.WriteHighScore
	}
	if err := s.store.WriteBest(ctx, playerID, chartKey, res.Best, mode); err != nil {
		s.deduper.Unrecord(ctx, key)
		metrics.RecordPlaySkipped("write_failed")
		s.logger.Error(ctx, "best score write failed, skipping play",
			logger.String("batchID", batchID),
			logger.Int64("chartKey", chartKey),
			logger.Error(err),
		)
		return false
	}
	if res.Raised {
		metrics.RecordNewRecord()
	}

	entry := res.History
	entry.LocationID = locationID
	entry.PlayerID = playerID
	if err := s.store.AppendHistory(ctx, playerID, chartKey, entry); err != nil {
		// History is best-effort; the authoritative write is committed.
		metrics.RecordHistoryAppendFailure()
		s.logger.Warn(ctx, "history append failed",
			logger.String("batchID", batchID),
			logger.Int64("chartKey", chartKey),
			logger.Error(err),
		)
	}

	metrics.RecordPlayProcessed()
	return true
}

func abortReason(err error) string {
	switch {
	case errors.Is(err, identity.ErrUnknownCabinet):
		return "unknown_cabinet"
	case errors.Is(err, identity.ErrUnknownPlayer):
		return "unknown_player"
	default:
		return "resolve_failed"
	}
}
