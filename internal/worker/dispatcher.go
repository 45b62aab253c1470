// Package worker выполняет события вебхуков асинхронно: ограниченная очередь и пул воркеров.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrQueueFull = errors.New("job queue is full")
	ErrStopped   = errors.New("dispatcher is stopped")
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomePanic   = "panic"
)

// Job одна доставка вебхука
type Job struct {
	Id         string
	Event      string
	DeliveryId string
	Payload    []byte
	EnqueuedAt time.Time
}

type Handler interface {
	Process(ctx context.Context, job Job) error
}

type Config struct {
	Workers    int
	QueueSize  int
	JobTimeout time.Duration
}

type Dispatcher struct {
	cfg     Config
	handler Handler
	jobs    chan Job
	log     *zap.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

func NewDispatcher(cfg Config, handler Handler, log *zap.Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	return &Dispatcher{
		cfg:     cfg,
		handler: handler,
		jobs:    make(chan Job, cfg.QueueSize),
		log:     log,
	}
}

// Start запускает воркеров. Контекст задач отменяется только если Stop не дождался очереди.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)

	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go func(worker int) {
			defer d.wg.Done()
			for job := range d.jobs {
				queueDepth.Dec()
				d.run(ctx, worker, job)
			}
		}(i)
	}

	d.log.Info("job dispatcher started",
		zap.Int("workers", d.cfg.Workers),
		zap.Int("queue_size", d.cfg.QueueSize),
		zap.Duration("job_timeout", d.cfg.JobTimeout),
	)
}

// Enqueue не блокируется: при полной очереди сразу ErrQueueFull
func (d *Dispatcher) Enqueue(job Job) error {
	if job.Id == "" {
		job.Id = uuid.NewString()
	}
	if job.EnqueuedAt.IsZero() {
		job.EnqueuedAt = time.Now()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		jobsRejected.Inc()
		return ErrStopped
	}

	select {
	case d.jobs <- job:
		queueDepth.Inc()
		d.log.Debug("job enqueued",
			zap.String("job_id", job.Id),
			zap.String("event", job.Event),
			zap.String("delivery_id", job.DeliveryId),
		)
		return nil
	default:
		jobsRejected.Inc()
		d.log.Warn("job queue is full",
			zap.String("event", job.Event),
			zap.String("delivery_id", job.DeliveryId),
		)
		return ErrQueueFull
	}
}

// Stop закрывает очередь и ждет, пока воркеры ее разберут
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.jobs)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.wg.Wait()
	}()

	select {
	case <-done:
		d.log.Info("job dispatcher stopped")
		if d.cancel != nil {
			d.cancel()
		}
		return nil
	case <-ctx.Done():
		// Прерываем оставшиеся задачи
		if d.cancel != nil {
			d.cancel()
		}
		return fmt.Errorf("stop dispatcher: %w", ctx.Err())
	}
}

func (d *Dispatcher) run(ctx context.Context, worker int, job Job) {
	start := time.Now()
	log := d.log.With(
		zap.Int("worker", worker),
		zap.String("job_id", job.Id),
		zap.String("event", job.Event),
		zap.String("delivery_id", job.DeliveryId),
	)

	if d.cfg.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.JobTimeout)
		defer cancel()
	}

	outcome := outcomeSuccess
	defer func() {
		if rec := recover(); rec != nil {
			outcome = outcomePanic
			log.Error("job panicked", zap.Any("panic", rec), zap.Stack("stack"))
		}
		jobsProcessed.WithLabelValues(job.Event, outcome).Inc()
		jobDuration.WithLabelValues(job.Event).Observe(time.Since(start).Seconds())
	}()

	if err := d.handler.Process(ctx, job); err != nil {
		outcome = outcomeFailure
		log.Error("job failed",
			zap.Duration("queued_for", start.Sub(job.EnqueuedAt)),
			zap.Error(err),
		)
		return
	}

	log.Info("job processed", zap.Duration("duration", time.Since(start)))
}
