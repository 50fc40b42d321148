package shell

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"shellmate/internal/domain"
)

// MaxHistory is the session history capacity; the oldest entry is evicted
// beyond this.
const MaxHistory = 1000

// Session is the mutable state of one terminal conversation: working
// directory, aliases, environment and command history.
//
// A Session is exclusively owned by one command-execution context. The engine
// locks the session for the duration of Execute, so builtin handlers access
// fields directly without further locking. The exported accessors below take
// the lock themselves and are for front-end use between invocations.
type Session struct {
	mu sync.Mutex

	ID          string // ULID, globally unique
	ExternalKey string // front-end lookup key (e.g. "web:6f1c...")
	WorkingDir  string // absolute, always an existing directory
	Aliases     map[string]string
	Env         map[string]string
	History     *domain.HistoryRing
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSession creates a session rooted at the process working directory with
// the environment seeded from the process environment.
func NewSession(externalKey string) *Session {
	wd, err := os.Getwd()
	if err != nil {
		wd = string(os.PathSeparator)
	}
	now := time.Now()
	return &Session{
		ID:          generateULID(now),
		ExternalKey: externalKey,
		WorkingDir:  wd,
		Aliases:     make(map[string]string),
		Env:         environMap(),
		History:     domain.NewHistoryRing(MaxHistory),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func generateULID(t time.Time) string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(t.UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

func environMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				env[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	return env
}

// Prompt renders the `user@host:dir$ ` prompt string (thread-safe).
func (s *Session) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt()
}

func (s *Session) prompt() string {
	user := s.Env["USER"]
	if user == "" {
		user = s.Env["USERNAME"]
	}
	if user == "" {
		user = "user"
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	dir := filepath.Base(s.WorkingDir)
	if s.WorkingDir == "/" {
		dir = "/"
	}
	return fmt.Sprintf("%s@%s:%s$ ", user, host, dir)
}

// HistoryTail returns a copy of the most recent n history entries (thread-safe).
func (s *Session) HistoryTail(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.History.Tail(n)
}

// SeedHistory preloads history entries (e.g. from the persistent store).
func (s *Session) SeedHistory(lines []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range lines {
		s.History.Append(line)
	}
}

// Dir returns the current working directory (thread-safe).
func (s *Session) Dir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.WorkingDir
}

// Manager owns the session-identifier to Session mapping shared by
// concurrent front-end requests. All map access is internally synchronized;
// GetOrCreate and Delete are atomic.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for key, creating it if absent.
// The second return reports whether a new session was created.
func (m *Manager) GetOrCreate(key string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[key]; ok {
		return s, false
	}
	s := NewSession(key)
	m.sessions[key] = s
	return s, true
}

// Get returns an existing session or ErrSessionNotFound.
func (m *Manager) Get(key string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[key]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.NewDomainError("Manager.Get", domain.ErrSessionNotFound, key)
	}
	return s, nil
}

// Delete removes a session. Missing sessions return ErrSessionNotFound.
func (m *Manager) Delete(key string) error {
	m.mu.Lock()
	_, ok := m.sessions[key]
	delete(m.sessions, key)
	m.mu.Unlock()
	if !ok {
		return domain.NewDomainError("Manager.Delete", domain.ErrSessionNotFound, key)
	}
	return nil
}

// List returns all active session keys.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.sessions))
	for k := range m.sessions {
		keys = append(keys, k)
	}
	return keys
}

// ReapStale deletes sessions not updated within maxAge and returns the count.
func (m *Manager) ReapStale(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.RLock()
	var stale []string
	for key, s := range m.sessions {
		s.mu.Lock()
		old := s.UpdatedAt.Before(cutoff)
		s.mu.Unlock()
		if old {
			stale = append(stale, key)
		}
	}
	m.mu.RUnlock()

	if len(stale) == 0 {
		return 0
	}

	m.mu.Lock()
	for _, key := range stale {
		delete(m.sessions, key)
	}
	m.mu.Unlock()
	return len(stale)
}
