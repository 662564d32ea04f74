package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Job is a unit of fire and forget background work.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Dispatcher runs submitted jobs on a fixed pool of workers.
type Dispatcher struct {
	workers int
	logger  *slog.Logger

	jobs    chan Job
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
	running bool
}

// NewDispatcher constructs a dispatcher with a bounded queue.
func NewDispatcher(workers, queueSize int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}
	return &Dispatcher{
		workers: workers,
		logger:  logger,
		jobs:    make(chan Job, queueSize),
	}
}

// Start launches the workers. Jobs keep running after ctx is done until Stop.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel
	d.running = true

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop cancels in-flight jobs and waits for all workers to finish.
// Jobs still queued are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.running = false
	d.mu.Unlock()

	d.wg.Wait()
}

// Submit enqueues job without blocking. It reports false when the queue is full.
func (d *Dispatcher) Submit(job Job) bool {
	select {
	case d.jobs <- job:
		return true
	default:
		d.logger.Warn("dispatch queue full, dropping job", slog.String("job", job.Name))
		return false
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-d.jobs:
			d.handle(ctx, job)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("job panicked", slog.String("job", job.Name), slog.Any("panic", r))
		}
	}()
	if err := job.Run(ctx); err != nil {
		d.logger.Error("job failed", slog.String("job", job.Name), slog.String("error", err.Error()))
	}
}
