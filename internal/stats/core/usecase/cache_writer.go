package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"cdr.dev/slog/v3"

	"presence-stats-service/internal/stats/core/ports"
)

const (
	DefaultWriteWorkers   = 4
	DefaultWriteQueueSize = 256
	DefaultWriteTimeout   = 5 * time.Second
)

// CacheWriteJob is one value to persist. When Keep is set the write only
// happens if Keep reports false for the value currently stored.
type CacheWriteJob struct {
	Key   string
	Value []byte
	Keep  func(current []byte) bool
}

type CacheWriterOptions struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

// CacheWriter persists computed buckets in the background so readers never
// wait on the cache. Jobs that do not fit in the queue are dropped; the
// next reader recomputes them.
type CacheWriter struct {
	cache   ports.BucketCachePort
	log     slog.Logger
	metrics *Metrics
	timeout time.Duration

	mu      sync.RWMutex
	closed  bool
	jobs    chan CacheWriteJob
	workers sync.WaitGroup

	// inflight counts accepted jobs not yet attempted.
	pendingMu sync.Mutex
	idle      *sync.Cond
	inflight  int
}

func NewCacheWriter(cache ports.BucketCachePort, log slog.Logger, metrics *Metrics, opts CacheWriterOptions) *CacheWriter {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWriteWorkers
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultWriteQueueSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultWriteTimeout
	}
	w := &CacheWriter{
		cache:   cache,
		log:     log,
		metrics: metrics,
		timeout: opts.Timeout,
		jobs:    make(chan CacheWriteJob, opts.QueueSize),
	}
	w.idle = sync.NewCond(&w.pendingMu)
	w.workers.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go w.run()
	}
	return w
}

// Submit enqueues the job without blocking. It reports whether the job was
// accepted.
func (w *CacheWriter) Submit(job CacheWriteJob) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.metrics.write("dropped")
		return false
	}
	w.track(1)
	select {
	case w.jobs <- job:
		return true
	default:
		w.track(-1)
		w.metrics.write("dropped")
		w.log.Warn(context.Background(), "cache write queue full, dropping write",
			slog.F("key", job.Key),
		)
		return false
	}
}

// Flush blocks until no accepted job is waiting or being written. Jobs
// submitted while it waits extend the wait.
func (w *CacheWriter) Flush() {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	for w.inflight > 0 {
		w.idle.Wait()
	}
}

func (w *CacheWriter) track(delta int) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	w.inflight += delta
	if w.inflight == 0 {
		w.idle.Broadcast()
	}
}

// Close stops accepting jobs, drains the queue and waits for the workers.
func (w *CacheWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.jobs)
	w.mu.Unlock()
	w.workers.Wait()
}

func (w *CacheWriter) run() {
	defer w.workers.Done()
	for job := range w.jobs {
		w.write(job)
		w.track(-1)
	}
}

func (w *CacheWriter) write(job CacheWriteJob) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	var err error
	switch {
	case job.Keep == nil:
		err = w.cache.Set(ctx, job.Key, job.Value)
	default:
		if gs, ok := w.cache.(ports.GuardedSetter); ok {
			err = gs.SetUnless(ctx, job.Key, job.Value, job.Keep)
		} else {
			err = w.setUnless(ctx, job)
		}
	}
	if err != nil {
		w.metrics.write("error")
		w.log.Warn(ctx, "cache write failed",
			slog.F("key", job.Key),
			slog.Error(err),
		)
		return
	}
	w.metrics.write("ok")
}

// setUnless is a read-check-write for caches without atomic replacement.
// A concurrent writer can still slip in between the two calls.
func (w *CacheWriter) setUnless(ctx context.Context, job CacheWriteJob) error {
	cur, err := w.cache.Get(ctx, job.Key)
	switch {
	case errors.Is(err, ports.ErrCacheMiss):
		cur = nil
	case err != nil:
		return err
	}
	if job.Keep(cur) {
		return nil
	}
	return w.cache.Set(ctx, job.Key, job.Value)
}
