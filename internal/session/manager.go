package session

import (
	"log"
	"sync"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/workflow"
	"github.com/google/uuid"
)

// ControllerFactory builds a workflow controller reporting to notifier.
type ControllerFactory func(notifier workflow.Notifier) (*workflow.Controller, error)

// Session is one browser's workflow plus its pending notifications.
type Session struct {
	ID         string
	Controller *workflow.Controller
	Inbox      *workflow.Inbox
	lastSeen   time.Time
}

// Manager owns per-browser sessions and closes them after an idle period.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idleTTL  time.Duration
	factory  ControllerFactory
	now      func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

func NewManager(factory ControllerFactory, idleTTL time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		factory:  factory,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Get returns the live session for id and marks it as seen.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if ok {
		s.lastSeen = m.now()
	}
	return s, ok
}

// GetOrCreate returns the session for id, creating a fresh one under a new
// id when it does not exist.
func (m *Manager) GetOrCreate(id string) (*Session, bool, error) {
	if s, ok := m.Get(id); ok {
		return s, false, nil
	}

	inbox := &workflow.Inbox{}
	ctrl, err := m.factory(inbox)
	if err != nil {
		return nil, false, err
	}
	s := &Session{
		ID:         uuid.NewString(),
		Controller: ctrl,
		Inbox:      inbox,
	}

	m.mu.Lock()
	s.lastSeen = m.now()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, true, nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep closes sessions idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	cutoff := m.now().Add(-m.idleTTL)
	var expired []*Session
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Controller.Close()
	}
	if len(expired) > 0 {
		log.Printf("Expired %d idle sessions", len(expired))
	}
	return len(expired)
}

// Start sweeps idle sessions every interval until Stop is called.
func (m *Manager) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.Sweep()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop ends the sweeper and closes every session.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })

	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		all = append(all, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range all {
		s.Controller.Close()
	}
}
