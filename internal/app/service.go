// Package service composes the directory, the form workflow and the
// submissions pipeline behind the dependencies of the HTTP layer.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/floww/internal/adapters/mq/queue"
	"github.com/okian/floww/internal/adapters/mq/worker"
	"github.com/okian/floww/internal/adapters/notify"
	"github.com/okian/floww/internal/adapters/repository"
	"github.com/okian/floww/internal/adapters/session"
	"github.com/okian/floww/internal/domain/forms"
	"github.com/okian/floww/pkg/logger"
	"github.com/okian/floww/pkg/metrics"
)

const (
	defaultSweepInterval = time.Minute
	stopTimeout          = 10 * time.Second
)

// Service implements the API and site dependencies.
type Service struct {
	mu sync.RWMutex

	// Core components
	directory *repository.Directory
	validator *forms.Validator
	drafts    session.Drafts
	notices   *notify.Ring
	queue     *queue.InMemoryQueue
	pool      *worker.Pool

	// Configuration
	workerCount    int
	queueSize      int
	draftCapacity  int
	draftTTL       time.Duration
	noticeCapacity int
	sweepInterval  time.Duration
	datasetPath    string
	dataset        []byte

	// State
	started  bool
	accepted map[string]int64
	stopCh   chan struct{}
	wg       sync.WaitGroup

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of submission workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the submissions queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDraftCapacity sets how many wizard drafts are kept.
func WithDraftCapacity(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.draftCapacity = size
		}
	}
}

// WithDraftTTL sets how long an untouched wizard draft survives.
func WithDraftTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.draftTTL = ttl
		}
	}
}

// WithNoticeCapacity sets how many notifications are retained.
func WithNoticeCapacity(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.noticeCapacity = size
		}
	}
}

// WithSweepInterval sets how often expired drafts are dropped.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithDatasetPath loads the directory from a YAML file instead of the seed.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithDataset loads the directory from raw YAML.
func WithDataset(raw []byte) Option {
	return func(s *Service) {
		s.dataset = raw
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:    runtime.NumCPU(),
		queueSize:      1024,
		draftCapacity:  256,
		draftTTL:       30 * time.Minute,
		noticeCapacity: 64,
		sweepInterval:  defaultSweepInterval,
		accepted:       make(map[string]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the directory and starts the submission workers.
func (s *Service) Start(ctx context.Context) error {
	const op = "service.Start"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting floww service...")

	dir, err := repository.Load(ctx,
		repository.WithDatasetPath(s.datasetPath),
		repository.WithDataset(s.dataset),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.directory = dir
	s.validator = forms.NewValidator(dir)
	s.drafts = session.NewInMemoryDrafts(
		session.WithMaxSize(s.draftCapacity),
		session.WithTTL(s.draftTTL),
	)
	s.notices = notify.NewRing(notify.WithCapacity(s.noticeCapacity))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, worker.HandlerFunc(s.handleSubmission))
	s.pool.Start(context.WithoutCancel(ctx))

	s.stopCh = make(chan struct{})
	s.wg.Add(1)
	go s.sweepDrafts(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "floww service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("draftCapacity", s.draftCapacity),
	)
	return nil
}

// Stop drains the submissions queue and stops background work.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	s.logger.Info(ctx, "stopping floww service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
	}
	close(s.stopCh)
	s.wg.Wait()

	s.started = false
	s.logger.Info(ctx, "floww service stopped",
		logger.Any("processed", s.pool.Processed()),
		logger.Any("failed", s.pool.Failed()),
	)
}

func (s *Service) sweepDrafts(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if n := s.drafts.Sweep(ctx); n > 0 {
				s.logger.Debug(ctx, "expired drafts dropped", logger.Int("count", n))
			}
		}
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]any{
		"started":        s.started,
		"workerCount":    s.workerCount,
		"queueSize":      s.queueSize,
		"draftCapacity":  s.draftCapacity,
		"noticeCapacity": s.noticeCapacity,
	}
	if s.directory == nil {
		return stats
	}

	counts := s.directory.Counts(ctx)
	accepted := make(map[string]int64, len(s.accepted))
	for k, v := range s.accepted {
		accepted[k] = v
	}
	stats["directory"] = counts
	stats["queueLength"] = s.queue.Len(ctx)
	stats["drafts"] = s.drafts.Len()
	stats["notifications"] = s.notices.Len()
	stats["accepted"] = accepted
	stats["processed"] = s.pool.Processed()
	stats["failed"] = s.pool.Failed()

	metrics.UpdateDirectory(counts.Employees, counts.Teams, counts.Projects, counts.PendingTasks)
	metrics.UpdateWorkerCount(s.pool.Size())
	return stats
}

// Ready reports whether Start completed.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func newSubmissionID() string {
	return uuid.NewString()
}
