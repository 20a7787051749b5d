// Package worker drains the submissions queue.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/floww/internal/domain/model"
	"github.com/okian/floww/pkg/logger"
	"github.com/okian/floww/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

const poolShutdownTimeout = 30 * time.Second

// Handler processes one accepted submission.
type Handler interface {
	Handle(ctx context.Context, s model.Submission) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, s model.Submission) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, s model.Submission) error { //nolint:gocritic // hugeParam: by value like the queue
	return f(ctx, s)
}

// Queue defines how workers receive submissions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Submission
}

// Worker processes submissions until the queue is drained.
type Worker interface {
	// Run processes submissions until the queue closes or ctx is canceled.
	Run(ctx context.Context)
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue   Queue
	handler Handler
	name    string

	processed atomic.Int64
	failed    atomic.Int64

	logger logger.Logger
}

// NewInMemoryWorker creates a worker reading from queue.
func NewInMemoryWorker(queue Queue, handler Handler, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:   queue,
		handler: handler,
		name:    "worker",
		logger:  logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run drains the queue. It returns when the queue is closed and empty, or
// when ctx is canceled.
func (w *InMemoryWorker) Run(ctx context.Context) {
	for s := range w.queue.Dequeue(ctx) {
		if err := w.process(ctx, s); err != nil {
			w.logger.Error(ctx, "error processing submission",
				logger.String("submission_id", s.ID),
				logger.Error(err),
			)
		}
	}
}

func (w *InMemoryWorker) process(ctx context.Context, s model.Submission) error { //nolint:gocritic // hugeParam: by value like the queue
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := w.handler.Handle(ctx, s); err != nil {
		w.failed.Add(1)
		metrics.RecordFormSubmission(string(s.Kind), "failed")
		return fmt.Errorf("handle %s: %w", s.Kind, err)
	}
	w.processed.Add(1)
	metrics.RecordFormSubmission(string(s.Kind), "processed")
	return nil
}

// Processed returns how many submissions this worker handled successfully.
func (w *InMemoryWorker) Processed() int64 { return w.processed.Load() }

// Failed returns how many submissions this worker failed to handle.
func (w *InMemoryWorker) Failed() int64 { return w.failed.Load() }

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue

	group  *errgroup.Group
	cancel context.CancelFunc

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers. A count below one uses
// one worker per CPU.
func NewPool(workerCount int, queue Queue, handler Handler) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   queue,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewInMemoryWorker(queue, handler, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Start runs every worker in its own goroutine.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.group, ctx = errgroup.WithContext(ctx)
	for _, w := range p.workers {
		p.group.Go(func() error {
			w.Run(ctx)
			return nil
		})
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Processed returns the total number of handled submissions.
func (p *Pool) Processed() int64 {
	var n int64
	for _, w := range p.workers {
		n += w.Processed()
	}
	return n
}

// Failed returns the total number of failed submissions.
func (p *Pool) Failed() int64 {
	var n int64
	for _, w := range p.workers {
		n += w.Failed()
	}
	return n
}

// Shutdown closes the queue and waits for the workers to drain it.
// Workers still busy when ctx expires are canceled.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}
	if p.group == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		_ = p.group.Wait()
		close(done)
	}()

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-shutdownCtx.Done():
		p.cancel()
		<-done
		p.logger.Warn(ctx, "worker pool shutdown timed out")
		return fmt.Errorf("worker pool shutdown: %w", shutdownCtx.Err())
	}
}
