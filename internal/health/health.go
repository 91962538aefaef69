package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Checker is implemented by component-level probes such as the store checker.
type Checker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// Service folds component checkers into one service health flag.
type Service struct {
	healthy atomic.Int32
	deps    []Checker
	log     zerolog.Logger
}

func NewService(log zerolog.Logger, deps ...Checker) *Service {
	s := &Service{deps: deps, log: log}
	s.healthy.Store(0)
	return s
}

// IsHealthy returns the cached service health.
func (s *Service) IsHealthy() bool { return s.healthy.Load() == 1 }

// Components reports the current state of every dependency by name.
func (s *Service) Components() map[string]bool {
	out := make(map[string]bool, len(s.deps))
	for _, c := range s.deps {
		out[c.Name()] = c.IsHealthy()
	}
	return out
}

// Start evaluates dependencies immediately and then every interval, logging
// transitions between UP and DOWN.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := int32(0)
	eval := func() {
		cur := int32(1)
		for _, c := range s.deps {
			if !c.IsHealthy() {
				cur = 0
				break
			}
		}
		s.healthy.Store(cur)
		if cur == prev {
			return
		}
		if cur == 1 {
			s.log.Info().Msg("service health: UP")
		} else {
			s.log.Error().Interface("components", s.Components()).Msg("service health: DOWN")
		}
		prev = cur
	}

	eval()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			eval()
		}
	}
}

// WaitUntilHealthy blocks until the service reports healthy, ctx ends, or
// timeout elapses.
func (s *Service) WaitUntilHealthy(ctx context.Context, timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		if s.IsHealthy() {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-deadline.C:
			return false
		case <-ticker.C:
		}
	}
}
