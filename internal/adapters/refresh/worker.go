package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/vendorboard/internal/adapters/provider"
	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/pkg/logger"
	"github.com/okian/vendorboard/pkg/metrics"
)

// Fetcher abstracts the upstream client workers call per job.
type Fetcher interface {
	Overview(ctx context.Context, symbol string) (model.CompanyOverview, error)
	IncomeStatement(ctx context.Context, symbol string) (model.IncomeStatement, error)
	Intraday(ctx context.Context, symbol string) ([]model.Bar, error)
}

// Sink receives fetched data. Implemented by the snapshot store.
type Sink interface {
	PutOverview(ctx context.Context, o model.CompanyOverview)
	PutIncome(ctx context.Context, s model.IncomeStatement)
	PutBars(ctx context.Context, symbol string, bars []model.Bar)
}

// Worker drains jobs from a queue, fetches the data and writes it to
// the sink.
type Worker struct {
	queue   Queue
	fetcher Fetcher
	sink    Sink
	name    string
	log     logger.Logger
}

// NewWorker creates a worker bound to a queue, fetcher and sink.
func NewWorker(queue Queue, fetcher Fetcher, sink Sink, opts ...WorkerOption) *Worker {
	w := &Worker{
		queue:   queue,
		fetcher: fetcher,
		sink:    sink,
		name:    "worker",
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.log == nil {
		w.log = logger.Get().Named(w.name)
	}
	return w
}

// Run processes jobs until the context is canceled or the queue closes.
func (w *Worker) Run(ctx context.Context) {
	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			metrics.RecordQueueDequeue()
			metrics.UpdateQueueSize(w.queue.Len(ctx))

			start := time.Now()
			err := w.process(ctx, job)
			metrics.RecordRefreshDuration(float64(time.Since(start).Milliseconds()))
			if err != nil {
				metrics.RecordRefreshError()
				metrics.RecordErrorByComponent("refresh", "fetch_failed")
				w.log.Warn(ctx, "refresh job failed",
					logger.String("function", job.Function),
					logger.String("symbol", job.Symbol),
					logger.Error(err))
				continue
			}
			metrics.RecordRefreshJob()
		}
	}
}

// process dispatches one job to the fetcher and sink.
func (w *Worker) process(ctx context.Context, job Job) error {
	switch job.Function {
	case provider.FuncOverview:
		o, err := w.fetcher.Overview(ctx, job.Symbol)
		if err != nil {
			return err
		}
		w.sink.PutOverview(ctx, o)
	case provider.FuncIncomeStatement:
		stmt, err := w.fetcher.IncomeStatement(ctx, job.Symbol)
		if err != nil {
			return err
		}
		w.sink.PutIncome(ctx, stmt)
	case provider.FuncIntraday:
		bars, err := w.fetcher.Intraday(ctx, job.Symbol)
		if err != nil {
			return err
		}
		w.sink.PutBars(ctx, job.Symbol, bars)
	default:
		return fmt.Errorf("unknown refresh function %q", job.Function)
	}
	return nil
}

// WorkerPool runs a fixed set of workers over one queue.
type WorkerPool struct {
	workers []*Worker
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	log     logger.Logger
}

// NewWorkerPool creates count workers sharing queue, fetcher and sink.
func NewWorkerPool(count int, queue Queue, fetcher Fetcher, sink Sink) *WorkerPool {
	if count < 1 {
		count = 1
	}
	p := &WorkerPool{
		workers: make([]*Worker, 0, count),
		log:     logger.Get().Named("refresh"),
	}
	for i := 0; i < count; i++ {
		p.workers = append(p.workers, NewWorker(queue, fetcher, sink,
			WithWorkerName(fmt.Sprintf("worker-%d", i))))
	}
	return p
}

// Start launches all workers.
func (p *WorkerPool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	metrics.UpdateWorkerCount(len(p.workers))

	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *Worker) {
			defer p.wg.Done()
			w.Run(ctx)
		}(w)
	}
	p.log.Info(ctx, "refresh workers started", logger.Int("count", len(p.workers)))
}

// Stop cancels the workers and waits for them to drain.
func (p *WorkerPool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	metrics.UpdateWorkerCount(0)
}

// Size returns the number of workers in the pool.
func (p *WorkerPool) Size() int {
	return len(p.workers)
}
