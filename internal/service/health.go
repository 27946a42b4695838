package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"portfolioapi/internal/metrics"
	"portfolioapi/internal/model"
	"portfolioapi/internal/repository"
)

// ErrNoProbes is returned when no store can be probed at all.
var ErrNoProbes = errors.New("health: no store probes configured")

// Probe names one store liveness check.
type Probe struct {
	Name   string
	Pinger repository.Pinger
}

// HealthService aggregates store liveness.
type HealthService interface {
	// Check probes every store concurrently, each bounded by its own timeout.
	// A failing store is reported unhealthy; an error is returned only when
	// no probe could run.
	Check(ctx context.Context) (model.DatabaseHealth, error)
}

type healthService struct {
	probes  []Probe
	timeout time.Duration
	now     func() time.Time
}

// NewHealthService constructs a new HealthService.
func NewHealthService(timeout time.Duration, probes ...Probe) HealthService {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &healthService{
		probes:  probes,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *healthService) Check(ctx context.Context) (model.DatabaseHealth, error) {
	h := model.DatabaseHealth{
		Stores: make(map[string]bool, len(s.probes)),
		Errors: make(map[string]string),
	}

	runnable := 0
	for _, p := range s.probes {
		if p.Pinger != nil {
			runnable++
		}
	}
	if runnable == 0 {
		return h, ErrNoProbes
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range s.probes {
		p := p
		g.Go(func() error {
			err := s.probe(gctx, p)
			mu.Lock()
			defer mu.Unlock()
			h.Stores[p.Name] = err == nil
			if err != nil {
				h.Errors[p.Name] = err.Error()
				metrics.StoreUp.WithLabelValues(p.Name).Set(0)
			} else {
				metrics.StoreUp.WithLabelValues(p.Name).Set(1)
			}
			// Probe failures are data, not errors of the aggregate.
			return nil
		})
	}
	_ = g.Wait()

	h.CheckedAt = s.now()
	return h, nil
}

// probe runs one Ping in its own goroutine so a pinger that ignores ctx
// cannot hold the report past the timeout.
func (s *healthService) probe(ctx context.Context, p Probe) error {
	if p.Pinger == nil {
		return fmt.Errorf("%s: not configured", p.Name)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- p.Pinger.Ping(ctx) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
