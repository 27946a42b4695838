package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"portfolioapi/internal/metrics"
)

// PageViewEvent is one page view handed to the dispatcher.
type PageViewEvent struct {
	Path      string
	UserAgent string
	IP        string
}

// PageViewDispatcher records page views off the request path. Dispatch never
// blocks: when the queue is full the event is dropped and counted. Recording
// failures are logged and discarded.
type PageViewDispatcher struct {
	svc     AnalyticsService
	log     *zap.Logger
	timeout time.Duration

	queue chan PageViewEvent
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewPageViewDispatcher starts workers goroutines draining a queue of size queueSize.
func NewPageViewDispatcher(svc AnalyticsService, log *zap.Logger, workers, queueSize int) *PageViewDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	d := &PageViewDispatcher{
		svc:     svc,
		log:     log,
		timeout: 5 * time.Second,
		queue:   make(chan PageViewEvent, queueSize),
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.run()
	}
	return d
}

// Dispatch enqueues ev and reports whether it was accepted.
func (d *PageViewDispatcher) Dispatch(ev PageViewEvent) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.PageViewsDropped.WithLabelValues("closed").Inc()
		return false
	}
	select {
	case d.queue <- ev:
		return true
	default:
		metrics.PageViewsDropped.WithLabelValues("queue_full").Inc()
		d.log.Debug("page view dropped", zap.String("path", ev.Path), zap.String("reason", "queue_full"))
		return false
	}
}

// Close stops accepting events and waits until queued ones are processed
// or ctx is done.
func (d *PageViewDispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *PageViewDispatcher) run() {
	defer d.wg.Done()
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		_, err := d.svc.RecordPageView(ctx, ev.Path, ev.UserAgent, ev.IP)
		cancel()
		if err != nil {
			metrics.PageViewsDropped.WithLabelValues("store_error").Inc()
			d.log.Warn("page view not recorded", zap.String("path", ev.Path), zap.Error(err))
		}
	}
}
