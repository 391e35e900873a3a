package memory

import (
	"sync"

	"matchminded-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*app.QuizEngine
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*app.QuizEngine),
	}
}

func (s *SessionStore) Save(sessionID string, engine *app.QuizEngine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = engine
}

func (s *SessionStore) Get(sessionID string) (*app.QuizEngine, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	engine, ok := s.sessions[sessionID]
	return engine, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len reports how many sessions are live.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
