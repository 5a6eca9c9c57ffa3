package store

import (
	"errors"
	"fmt"
	"sync"

	uuid "github.com/satori/go.uuid"
)

var (
	ErrUnknownSessionID = errors.New("unknown session ID")
	ErrSessionExists    = errors.New("session already exists")
)

// NewID constructs a session ID
func NewID() string {
	return uuid.NewV4().String()
}

type SessionStore interface {
	FindSession(ID string) *Session
	AddSession(session *Session) error
	RemoveSession(ID string) error
}

// InMemorySessionStore maps session id to session
type InMemorySessionStore struct {
	mu       sync.RWMutex
	Sessions map[string]*Session
}

// NewInMemorySessionStore constructs an InMemorySessionStore
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		Sessions: map[string]*Session{},
	}
}

func (s *InMemorySessionStore) FindSession(ID string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.Sessions[ID]
	if !ok {
		return nil
	}
	return session
}

func (s *InMemorySessionStore) AddSession(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.Sessions[session.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrSessionExists, session.ID())
	}

	s.Sessions[session.ID()] = session
	return nil
}

// RemoveSession unlists the session and closes it, disconnecting its listeners
func (s *InMemorySessionStore) RemoveSession(ID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.Sessions[ID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownSessionID, ID)
	}

	delete(s.Sessions, ID)
	session.Close()
	return nil
}
