package session

import (
	"context"
	"errors"
	"sync"

	"github.com/pasarikan/storefront/internal/catalog"
	"github.com/pasarikan/storefront/internal/models"
)

var ErrNotFound = errors.New("session not found")

// Session is the server-side stand-in for the browser's local storage: the
// bearer token and cached user snapshot, plus the catalog view state that
// survives between requests. Access is last-write-wins, matching the
// storage it replaces.
type Session struct {
	ID    string        `json:"id"`
	Token string        `json:"token,omitempty"`
	User  *models.User  `json:"user,omitempty"`
	Query catalog.Query `json:"query"`

	// PageSize is the last observed catalog page size, for skeleton sizing.
	PageSize int `json:"page_size,omitempty"`
}

// Authenticated reports whether a token is present. The token being present
// does not mean it is attached to backend requests; see backend.Config.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// ClearCredentials drops the token and user snapshot together. Called
// wherever a 401/403 from the backend is observed.
func (s *Session) ClearCredentials() {
	s.Token = ""
	s.User = nil
}

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in-process. Used in tests and single-instance
// deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
