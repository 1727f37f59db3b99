package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-scorer/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(scoreID uuid.UUID)
}

type WorkerOptions struct {
	Concurrency  int
	QueueSize    int
	PollInterval time.Duration
	PollBatch    int
}

type worker struct {
	scoreRepo  repositories.ScoreRepository
	atsService ATSService
	jobQueue   chan uuid.UUID
	opts       WorkerOptions
	wg         sync.WaitGroup
	stopChan   chan struct{}
	stopOnce   sync.Once
}

func NewWorker(
	scoreRepo repositories.ScoreRepository,
	atsService ATSService,
	opts WorkerOptions,
) Worker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 100
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 10 * time.Second
	}
	if opts.PollBatch <= 0 {
		opts.PollBatch = 10
	}

	return &worker{
		scoreRepo:  scoreRepo,
		atsService: atsService,
		jobQueue:   make(chan uuid.UUID, opts.QueueSize),
		opts:       opts,
		stopChan:   make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Info().Int("concurrency", w.opts.Concurrency).Msg("🚀 Starting worker")

	for i := 0; i < w.opts.Concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)
}

// Stop implements Worker. It waits for in-flight jobs to finish.
func (w *worker) Stop() {
	log.Info().Msg("🛑 Stopping worker...")
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
	log.Info().Msg("✅ Worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(scoreID uuid.UUID) {
	select {
	case w.jobQueue <- scoreID:
		log.Debug().Str("score_id", scoreID.String()).Msg("📥 Job enqueued")
	case <-w.stopChan:
		log.Warn().Str("score_id", scoreID.String()).Msg("⚠️  Worker stopped, cannot enqueue job")
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Debug().Int("worker", workerID).Msg("👷 Worker stopped")
			return
		case <-ctx.Done():
			return
		case scoreID := <-w.jobQueue:
			logger := log.With().Int("worker", workerID).Str("score_id", scoreID.String()).Logger()
			if err := w.atsService.ScoreDocument(ctx, scoreID); err != nil {
				logger.Error().Err(err).Msg("❌ Failed to process job")
			} else {
				logger.Info().Msg("✅ Job completed")
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Debug().Msg("🔄 Pending jobs poller stopped")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pendingJobs, err := w.scoreRepo.FindPendingJobs(w.opts.PollBatch)
			if err != nil {
				log.Warn().Err(err).Msg("⚠️  Failed to fetch pending jobs")
				continue
			}

			if len(pendingJobs) > 0 {
				log.Info().Int("count", len(pendingJobs)).Msg("📋 Found pending jobs")
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
