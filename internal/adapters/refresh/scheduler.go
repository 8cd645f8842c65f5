package refresh

import (
	"context"
	"time"

	"github.com/okian/vendorboard/internal/adapters/provider"
	"github.com/okian/vendorboard/pkg/logger"
)

// defaultInterval between full refresh sweeps.
const defaultInterval = time.Hour

// Scheduler enqueues a full fetch sweep for every tracked symbol at
// startup and on each interval tick.
type Scheduler struct {
	queue    Queue
	symbols  []string
	interval time.Duration
	log      logger.Logger
}

// NewScheduler creates a scheduler over the given queue and symbols.
func NewScheduler(queue Queue, symbols []string, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		queue:    queue,
		symbols:  append([]string(nil), symbols...),
		interval: defaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get().Named("scheduler")
	}
	return s
}

// Run sweeps immediately, then on every tick until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep enqueues every (function, symbol) pair once. Drops from a full
// queue are logged, not retried; the next sweep covers them.
func (s *Scheduler) Sweep(ctx context.Context) {
	functions := []string{
		provider.FuncOverview,
		provider.FuncIncomeStatement,
		provider.FuncIntraday,
	}
	dropped := 0
	for _, symbol := range s.symbols {
		for _, fn := range functions {
			if !s.queue.Enqueue(ctx, Job{Function: fn, Symbol: symbol}) {
				dropped++
			}
		}
	}
	if dropped > 0 {
		s.log.Warn(ctx, "refresh sweep dropped jobs", logger.Int("dropped", dropped))
	} else {
		s.log.Debug(ctx, "refresh sweep enqueued", logger.Int("symbols", len(s.symbols)))
	}
}
