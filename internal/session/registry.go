// Package session keeps one running application core per remote presentation client.
package session

import (
	"log/slog"
	"sync"
	"time"

	"starfolk-client/internal/app"

	"github.com/google/uuid"
)

// Session is one client's application core.
type Session struct {
	ID      string
	App     *app.App
	Created time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// LastSeen is when the session was last looked up or touched.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(t time.Time) {
	s.mu.Lock()
	s.lastSeen = t
	s.mu.Unlock()
}

// Factory builds the application core of a new session.
type Factory func() *app.App

// Registry owns the live sessions. Sessions idle for longer than the ttl are
// stopped and dropped when the next session is created.
type Registry struct {
	newApp Factory
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
	onRemove []func(*Session)
}

// NewRegistry creates an empty registry.
func NewRegistry(newApp Factory, ttl time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		newApp:   newApp,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// OnRemove registers fn to run after a session is stopped, whether it was
// removed, expired or closed.
func (r *Registry) OnRemove(fn func(*Session)) {
	r.mu.Lock()
	r.onRemove = append(r.onRemove, fn)
	r.mu.Unlock()
}

func (r *Registry) stop(s *Session) {
	s.App.Stop()

	r.mu.RLock()
	hooks := r.onRemove
	r.mu.RUnlock()
	for _, fn := range hooks {
		fn(s)
	}
}

// Create starts a new session.
func (r *Registry) Create() *Session {
	r.reap()

	now := r.now()
	s := &Session{
		ID:       uuid.NewString(),
		App:      r.newApp(),
		Created:  now,
		lastSeen: now,
	}
	s.App.Start()

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	r.logger.Info("session created", "session_id", s.ID)
	return s
}

// Get returns the session with id and marks it as seen.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		s.touch(r.now())
	}
	return s, ok
}

// Touch marks the session with id as in use. Long-lived connections call it
// for every frame they receive.
func (r *Registry) Touch(id string) bool {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		s.touch(r.now())
	}
	return ok
}

// Remove stops and drops the session with id.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		r.stop(s)
		r.logger.Info("session removed", "session_id", id)
	}
	return ok
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close stops every session.
func (r *Registry) Close() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		r.stop(s)
	}
}

func (r *Registry) reap() {
	if r.ttl <= 0 {
		return
	}
	cutoff := r.now().Add(-r.ttl)

	var expired []*Session
	r.mu.Lock()
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		r.stop(s)
		r.logger.Info("session expired", "session_id", s.ID)
	}
}
