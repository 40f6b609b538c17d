package session

import (
	"sync"

	"consultbook/internal/usecase"

	"github.com/google/uuid"
)

// MemoryStore holds in-flight conversation sessions. Sessions are transient
// per-process state; losing them on restart only means the client starts the
// flow over, so no durable backing is needed.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]usecase.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]usecase.Session),
	}
}

func (s *MemoryStore) Put(session usecase.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

func (s *MemoryStore) Get(id uuid.UUID) (usecase.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *MemoryStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len reports the number of live sessions, for observability.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
