package store

import (
	"errors"
	"log"
	"sync"

	"github.com/minaorangina/spades/deepequal"
	"github.com/minaorangina/spades/machine"
	"github.com/minaorangina/spades/protocol"
	"github.com/minaorangina/spades/setup"
)

var ErrSessionClosed = errors.New("session is closed")

// listenerBuffer is how many snapshots a slow listener may fall behind
// before snapshots are dropped for it.
const listenerBuffer = 8

// Session is one browser's run through the new game flow.
// All access to the state machine goes through the session's lock.
type Session struct {
	id string

	mu          sync.Mutex
	machine     *machine.Controller[any]
	preferences setup.Preferences
	listeners   map[int]chan protocol.OutboundMessage
	nextID      int
	closed      bool
}

// NewSession constructs a session with a fresh setup machine
func NewSession(id string, opts setup.Opts) (*Session, error) {
	m, err := setup.New(opts)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:          id,
		machine:     m,
		preferences: setup.DefaultPreferences(),
		listeners:   map[int]chan protocol.OutboundMessage{},
	}

	// called with s.mu held, from Dispatch
	m.Subscribe(func(machine.State[any]) {
		s.broadcast()
	})

	return s, nil
}

// ID returns the session's ID
func (s *Session) ID() string {
	return s.id
}

// Snapshot returns the session's current state
func (s *Session) Snapshot() protocol.OutboundMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Dispatch applies an inbound message. Preference actions go through the
// preferences reducer; everything else goes to the state machine. Listeners
// receive a snapshot when, and only when, something changed.
func (s *Session) Dispatch(msg protocol.InboundMessage) (protocol.OutboundMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		out := s.snapshot()
		out.Error = ErrSessionClosed.Error()
		return out, false, ErrSessionClosed
	}

	a := msg.Action(setup.IsPreferenceAction)

	if setup.IsPreferenceAction(a.Type) {
		prev := s.preferences
		s.preferences = setup.UpdatePreferences(prev, a)

		same, err := deepequal.Equal(prev, s.preferences)
		changed := err != nil || !same
		if changed {
			s.broadcast()
		}
		return s.snapshot(), changed, nil
	}

	changed, err := s.machine.Dispatch(a)
	out := s.snapshot()
	if err != nil {
		out.Error = err.Error()
	}

	return out, changed, err
}

// Listen registers for snapshots. The returned func unregisters and closes
// the channel. Listening on a closed session returns a closed channel.
func (s *Session) Listen() (<-chan protocol.OutboundMessage, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan protocol.OutboundMessage, listenerBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.listeners[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.unlisten(id)
	}
}

// Close closes every listener channel and rejects further dispatches.
// Closing twice is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id := range s.listeners {
		s.unlisten(id)
	}
}

// unlisten must be called with s.mu held
func (s *Session) unlisten(id int) {
	ch, ok := s.listeners[id]
	if !ok {
		return
	}
	delete(s.listeners, id)
	close(ch)
}

func (s *Session) snapshot() protocol.OutboundMessage {
	prefs := make(map[string]any, len(s.preferences))
	for k, v := range s.preferences {
		prefs[k] = v
	}

	return protocol.OutboundMessage{
		SessionID:   s.id,
		Mode:        string(s.machine.Mode()),
		Data:        s.machine.Data(),
		Actions:     s.machine.Actions(),
		Transitions: s.machine.Transitions(),
		Preferences: prefs,
	}
}

// broadcast must be called with s.mu held
func (s *Session) broadcast() {
	snap := s.snapshot()
	for id, ch := range s.listeners {
		select {
		case ch <- snap:
		default:
			log.Printf("session %s: listener %d is behind, dropping snapshot", s.id, id)
		}
	}
}
