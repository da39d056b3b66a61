package chat

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is the reference cadence of the sync loop.
const DefaultPollInterval = 7 * time.Second

// Scheduler drives the periodic sync of a chat session. Ticks run the
// supplied func sequentially; a slow or failing tick never piles up
// behind the ticker, the next one just fires on schedule. There is no
// backoff: transient failures self-heal on the next poll.
type Scheduler struct {
	interval time.Duration
	tick     func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(interval time.Duration, tick func(ctx context.Context)) *Scheduler {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Scheduler{interval: interval, tick: tick}
}

// Start launches the polling loop. It runs until Stop is called or the
// parent context is cancelled. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(parent context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// Stop cancels the loop and waits for the in-flight tick, if any, to
// return. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}
