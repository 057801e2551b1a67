package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// WorkerPool polls the job table and dispatches jobs to registered
// handlers. Failed jobs are retried with exponential backoff and moved
// to the dead-letter table after max attempts.
type WorkerPool struct {
	repo        *Repository
	handlers    map[string]Handler
	logger      *slog.Logger
	workerCount int
	stop        chan struct{}
	wg          sync.WaitGroup
}

func NewWorkerPool(repo *Repository, handlers map[string]Handler, logger *slog.Logger, workerCount int) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 2
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkerPool{repo: repo, handlers: handlers, logger: logger, workerCount: workerCount, stop: make(chan struct{})}
}

// Start launches the worker goroutines.
func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workerCount; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

// Stop signals workers to stop and waits for them.
func (p *WorkerPool) Stop() {
	close(p.stop)
	p.wg.Wait()
}

// Enqueue marshals the payload and persists a new job.
func (p *WorkerPool) Enqueue(ctx context.Context, typ string, payload any, priority, maxAttempts int) (int64, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	j := &Job{Type: typ, Payload: b, Priority: priority, MaxAttempts: maxAttempts, ScheduledAt: time.Now()}
	return p.repo.Enqueue(ctx, j)
}

func (p *WorkerPool) worker(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.stop:
			p.logger.Info("worker stopping", "id", id)
			return
		case <-ctx.Done():
			p.logger.Info("context canceled, worker exiting", "id", id)
			return
		default:
			job, err := p.repo.FetchNext(ctx)
			if err != nil {
				p.logger.Error("fetch job", "err", err)
				time.Sleep(time.Second)
				continue
			}
			if job == nil {
				time.Sleep(500 * time.Millisecond)
				continue
			}
			p.run(ctx, job)
		}
	}
}

func (p *WorkerPool) run(ctx context.Context, job *Job) {
	h, ok := p.handlers[job.Type]
	if !ok {
		job.Status = "failed"
		job.LastError = "no handler"
		if err := p.repo.MoveToDeadLetter(ctx, job); err != nil {
			p.logger.Error("move to dead letter", "err", err, "job_id", job.ID)
		}
		return
	}

	err := h(ctx, job)
	if err == nil {
		job.Status = "done"
		if upErr := p.repo.UpdateJob(ctx, job); upErr != nil {
			p.logger.Error("mark job done", "err", upErr, "job_id", job.ID)
		}
		return
	}

	job.Attempts++
	job.LastError = err.Error()

	if job.Attempts >= job.MaxAttempts {
		job.Status = "failed"
		if err := p.repo.MoveToDeadLetter(ctx, job); err != nil {
			p.logger.Error("move to dead letter", "err", err, "job_id", job.ID)
		}
		return
	}

	t := time.Now().Add(BackoffDuration(job.Attempts))
	job.NextTryAt = &t
	job.Status = "retry"
	if err := p.repo.UpdateJob(ctx, job); err != nil {
		p.logger.Error("update job for retry", "err", err, "job_id", job.ID)
	}
}
