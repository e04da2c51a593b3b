package dashboard

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/frontdesk/frontdesk/internal/domain/roster"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("session limit reached")
)

// sweepInterval is how often idle sessions are collected.
const sweepInterval = time.Minute

// Manager is the in-memory session registry. Sessions are keyed by
// uuid, expire after sitting idle for the configured TTL, and are
// capped at a fixed count.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	ttl  time.Duration
	max  int
	seed []roster.Patient
	now  func() time.Time
	log  zerolog.Logger

	stop chan struct{}
	once sync.Once
}

// NewManager builds a registry whose sessions start from copies of the
// seed roster. The sweep goroutine runs until Shutdown.
func NewManager(seed []roster.Patient, ttl time.Duration, max int, log zerolog.Logger) *Manager {
	m := &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		max:      max,
		seed:     seed,
		now:      time.Now,
		log:      log,
		stop:     make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Open creates a new session seeded with the initial roster.
func (m *Manager) Open() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max > 0 && len(m.sessions) >= m.max {
		return nil, ErrTooManySessions
	}
	s := NewSession(m.seed, m.now)
	m.sessions[s.ID()] = s
	m.log.Info().Str("session_id", s.ID().String()).Int("open", len(m.sessions)).Msg("session opened")
	return s, nil
}

// Get looks a session up and refreshes its idle timer.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.Touch()
	return s, nil
}

// Close tears a session down and drops it from the registry.
func (m *Manager) Close(id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	m.log.Info().Str("session_id", id.String()).Msg("session closed")
	return nil
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown stops the sweeper and closes every session.
func (m *Manager) Shutdown() {
	m.once.Do(func() { close(m.stop) })

	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[uuid.UUID]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func (m *Manager) sweep() {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			m.expire()
		case <-m.stop:
			return
		}
	}
}

// expire closes every session idle longer than the TTL.
func (m *Manager) expire() {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(m.sessions, id)
			expired = append(expired, s)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
		m.log.Info().Str("session_id", s.ID().String()).Msg("session expired")
	}
}
