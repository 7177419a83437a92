package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/thekrainbow/gomoku/internal/game"
)

type session struct {
	id         uuid.UUID
	controller *game.Controller
	hub        *Hub
}

type sessions struct {
	mu     sync.RWMutex
	active map[uuid.UUID]*session
}

func newSessions() *sessions {
	return &sessions{active: make(map[uuid.UUID]*session)}
}

func (s *sessions) add(controller *game.Controller) *session {
	sess := &session{id: uuid.New(), controller: controller, hub: NewHub()}
	s.mu.Lock()
	s.active[sess.id] = sess
	s.mu.Unlock()
	return sess
}

func (s *sessions) get(id uuid.UUID) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.active[id]
	return sess, ok
}

func (s *sessions) remove(id uuid.UUID) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.active[id]
	if ok {
		delete(s.active, id)
	}
	return sess, ok
}

func (s *sessions) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active)
}

func (s *sessions) closeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.active {
		sess.hub.Close()
		delete(s.active, id)
	}
}
