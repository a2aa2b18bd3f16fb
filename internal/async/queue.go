// Package async dispatches submitted text blobs to stateless workers.
package async

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bdcommerce/order-extractor/internal/pipeline"
)

// Job is one submitted text blob. Each job is an independent unit of
// work; workers share no mutable state.
type Job struct {
	RunID       uuid.UUID
	Input       string
	SubmittedAt time.Time
}

// Queue runs pipeline passes on a fixed pool of workers and drops each
// resulting workbook into the output directory.
type Queue struct {
	proc    *pipeline.Processor
	outDir  string
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*Queue)

func WithWorkers(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.workers = n
		}
	}
}

func WithQueueSize(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}

func WithProcessTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewQueue(proc *pipeline.Processor, outDir string, logger *slog.Logger, opts ...Option) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &Queue{
		proc:    proc,
		outDir:  outDir,
		logger:  logger,
		workers: 4,
		timeout: 30 * time.Second,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *Queue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					err := q.run(ctx, job)
					cancel()

					if err != nil {
						q.logger.Error("processing failed", "worker_id", workerID, "run_id", job.RunID, "error", err)
					} else {
						q.logger.Info("processed submission", "worker_id", workerID, "run_id", job.RunID)
					}
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *Queue) run(ctx context.Context, job Job) error {
	summary, data, err := q.proc.ProcessToXLSX(ctx, job.Input)
	if err != nil {
		return err
	}
	if q.outDir == "" {
		return nil
	}
	if err := os.MkdirAll(q.outDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(q.outDir, job.RunID.String()+".xlsx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	q.logger.Info("workbook written",
		"run_id", job.RunID,
		"path", path,
		"valid", len(summary.Rows),
		"rejected", len(summary.Rejected),
	)
	return nil
}

// Enqueue submits a job. A full queue applies backpressure rather than
// dropping work.
func (q *Queue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "run_id", job.RunID)
		return nil
	}
	select {
	case q.ch <- job:
		q.logger.Info("queued submission", "run_id", job.RunID, "bytes", len(job.Input))
	default:
		q.logger.Warn("queue full, applying backpressure", "run_id", job.RunID)
		q.ch <- job
	}
	return nil
}

// Shutdown stops intake and waits for in-flight jobs to drain, or for
// ctx to expire.
func (q *Queue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}
