package chat

import (
	"context"
	"sync"
	"time"

	"github.com/SOTO729/Evaluaasiv3-sub001/internal/models"
	"github.com/SOTO729/Evaluaasiv3-sub001/pkg/logger"
)

// Registry owns one Session per authenticated token. A session is
// created (and its scheduler started) on first use and torn down after
// sitting idle, which is the gateway's equivalent of unmounting the
// chat view.
type Registry struct {
	backend Backend
	opts    Options
	idle    time.Duration

	mu       sync.Mutex
	sessions map[string]*Session

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRegistry(backend Backend, opts Options, idle time.Duration) *Registry {
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	r := &Registry{
		backend:  backend,
		opts:     opts,
		idle:     idle,
		sessions: make(map[string]*Session),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go r.sweep()
	return r
}

// Get returns the session for the token, creating and starting it on
// first use.
func (r *Registry) Get(token string, actor models.Actor) *Session {
	r.mu.Lock()
	if s, ok := r.sessions[token]; ok {
		r.mu.Unlock()
		return s
	}
	s := NewSession(r.backend, token, actor, r.opts)
	r.sessions[token] = s
	r.mu.Unlock()

	logger.Info().Int64("user_id", actor.UserID).Str("role", string(actor.Role)).Msg("Chat session started")
	s.Start(r.ctx)
	return s
}

// Evict closes and removes the session for a token, if any.
func (r *Registry) Evict(token string) {
	r.mu.Lock()
	s, ok := r.sessions[token]
	delete(r.sessions, token)
	r.mu.Unlock()
	if ok {
		s.Close()
	}
}

func (r *Registry) sweep() {
	defer close(r.done)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-r.idle)
			var stale []*Session
			r.mu.Lock()
			for token, s := range r.sessions {
				if s.LastUsed().Before(cutoff) {
					delete(r.sessions, token)
					stale = append(stale, s)
				}
			}
			r.mu.Unlock()
			for _, s := range stale {
				s.Close()
				logger.Info().Int64("user_id", s.Actor().UserID).Msg("Idle chat session evicted")
			}
		}
	}
}

// Shutdown stops the sweeper and every live session.
func (r *Registry) Shutdown() {
	r.cancel()
	<-r.done

	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
