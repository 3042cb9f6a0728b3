package session

import (
	"context"
	"sync"
	"time"

	"resumeforge-utils/internal/config"
	"resumeforge-utils/internal/customization"
	"resumeforge-utils/internal/logging"
	"resumeforge-utils/internal/logging/types"
)

// Session owns one customization engine. The engine itself does no locking,
// so every access goes through With, which serializes callers.
type Session struct {
	ID         string
	TemplateID string
	UserID     string
	CreatedAt  time.Time

	mu         sync.Mutex
	engine     *customization.Engine
	lastAccess time.Time
}

// With runs fn with exclusive access to the session's engine and refreshes
// the idle timer.
func (s *Session) With(fn func(*customization.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = time.Now()
	return fn(s.engine)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// Manager tracks editing sessions and evicts the ones idle past the TTL.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	ttl             time.Duration
	cleanupInterval time.Duration
	historyCapacity int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	log    types.Logger
}

func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		sessions:        make(map[string]*Session),
		ttl:             cfg.Engine.SessionTTL,
		cleanupInterval: cfg.Engine.CleanupInterval,
		historyCapacity: cfg.Engine.HistoryCapacity,
		log:             logging.GetGlobalLogger(),
	}
}

// Start launches the idle-session sweeper.
func (m *Manager) Start(ctx context.Context) {
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go m.cleanupRoutine()
}

// Stop halts the sweeper and waits for it.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}

// Create starts a fresh session with a default-seeded engine.
func (m *Manager) Create(templateID, userID string) *Session {
	engine := customization.NewEngine(templateID, userID, m.historyCapacity)
	session := &Session{
		ID:         engine.ID(),
		TemplateID: templateID,
		UserID:     userID,
		CreatedAt:  time.Now(),
		engine:     engine,
		lastAccess: time.Now(),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	m.log.Info("customization session created", map[string]interface{}{
		"session_id":  session.ID,
		"template_id": templateID,
		"user_id":     userID,
	})
	return session
}

// Get looks up a session by id.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	return session, ok
}

// Delete removes a session.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) cleanupRoutine() {
	defer m.wg.Done()

	interval := m.cleanupInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	if m.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, session := range m.sessions {
		if session.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			m.log.Info("idle customization session evicted", map[string]interface{}{
				"session_id": id,
			})
		}
	}
}
