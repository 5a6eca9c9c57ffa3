package store

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	utils "github.com/minaorangina/spades/internal"
	"github.com/minaorangina/spades/machine"
	"github.com/minaorangina/spades/protocol"
	"github.com/minaorangina/spades/setup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, id string) *Session {
	t.Helper()

	s, err := NewSession(id, setup.Opts{HandSize: 4, Rand: rand.New(rand.NewSource(3))})
	utils.AssertNoError(t, err)
	return s
}

func TestInMemorySessionStore(t *testing.T) {
	t.Run("constructor prevents nil struct members", func(t *testing.T) {
		str := NewInMemorySessionStore()
		if str.Sessions == nil {
			t.Error("Sessions was nil")
		}
	})

	t.Run("prevents duplicate session IDs", func(t *testing.T) {
		str := NewInMemorySessionStore()
		session := newTestSession(t, "thisISAnID")

		utils.AssertNoError(t, str.AddSession(session))

		err := str.AddSession(session)
		utils.AssertErrored(t, err)
		assert.True(t, errors.Is(err, ErrSessionExists))
	})

	t.Run("finds and removes sessions", func(t *testing.T) {
		str := NewInMemorySessionStore()
		session := newTestSession(t, "some-session")
		utils.AssertNoError(t, str.AddSession(session))

		assert.Same(t, session, str.FindSession("some-session"))

		utils.AssertNoError(t, str.RemoveSession("some-session"))
		assert.Nil(t, str.FindSession("some-session"))

		err := str.RemoveSession("some-session")
		assert.True(t, errors.Is(err, ErrUnknownSessionID))
	})

	t.Run("removing a session disconnects its listeners", func(t *testing.T) {
		str := NewInMemorySessionStore()
		session := newTestSession(t, "doomed")
		utils.AssertNoError(t, str.AddSession(session))
		updates, stop := session.Listen()
		defer stop()

		utils.AssertNoError(t, str.RemoveSession("doomed"))

		utils.Within(t, time.Second, func() {
			_, ok := <-updates
			assert.False(t, ok)
		})

		_, changed, err := session.Dispatch(protocol.InboundMessage{Type: "CHOOSE_VARIANT", Data: "whiz"})
		assert.True(t, errors.Is(err, ErrSessionClosed))
		assert.False(t, changed)
		assert.Equal(t, string(setup.SelectVariant), session.Snapshot().Mode)
	})

	t.Run("handles a non-existent session", func(t *testing.T) {
		str := NewInMemorySessionStore()
		assert.Nil(t, str.FindSession("fake-id"))
	})

	t.Run("generates distinct IDs", func(t *testing.T) {
		a, b := NewID(), NewID()
		assert.NotEqual(t, a, b)
		assert.Len(t, a, 36)
	})
}

func TestSessionDispatch(t *testing.T) {
	t.Run("snapshots the initial state", func(t *testing.T) {
		s := newTestSession(t, "s1")
		snap := s.Snapshot()

		assert.Equal(t, "s1", snap.SessionID)
		assert.Equal(t, string(setup.SelectVariant), snap.Mode)
		assert.Equal(t, []string{"chooseVariant"}, snap.Transitions)
		assert.Equal(t, setup.DefaultCardWidth, snap.Preferences["cardWidth"])
	})

	t.Run("drives the state machine", func(t *testing.T) {
		s := newTestSession(t, "s2")

		out, changed, err := s.Dispatch(protocol.InboundMessage{Type: "CHOOSE_VARIANT", Data: "whiz"})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, string(setup.SelectLevel), out.Mode)
	})

	t.Run("reports unknown operations", func(t *testing.T) {
		s := newTestSession(t, "s3")

		out, changed, err := s.Dispatch(protocol.InboundMessage{Type: "SORT_HAND"})
		assert.True(t, errors.Is(err, machine.ErrUnknownAction))
		assert.False(t, changed)
		assert.NotEmpty(t, out.Error)
		assert.Equal(t, string(setup.SelectVariant), out.Mode)
	})

	t.Run("updates preferences", func(t *testing.T) {
		s := newTestSession(t, "s4")

		out, changed, err := s.Dispatch(protocol.InboundMessage{Type: "SET_CARD_WIDTH", Data: float64(100)})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, 100, out.Preferences["cardWidth"])

		_, changed, err = s.Dispatch(protocol.InboundMessage{Type: "MERGE_PREFERENCES", Data: map[string]any{"cardWidth": 100}})
		require.NoError(t, err)
		assert.False(t, changed, "merging equal values changes nothing")
	})
}

func TestSessionListen(t *testing.T) {
	t.Run("listeners receive a snapshot per change", func(t *testing.T) {
		s := newTestSession(t, "l1")
		updates, stop := s.Listen()
		defer stop()

		_, _, err := s.Dispatch(protocol.InboundMessage{Type: "HIGHLIGHT", Data: "suicide"})
		require.NoError(t, err)

		utils.Within(t, time.Second, func() {
			snap := <-updates
			utils.AssertStructurallyEqual(t, snap.Actions, []string{"highlight"})
			assert.Equal(t, setup.Suicide, snap.Data.(*setup.VariantData).Highlighted)
		})

		// highlighting the same variant again is a no-op
		_, changed, err := s.Dispatch(protocol.InboundMessage{Type: "HIGHLIGHT", Data: "suicide"})
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Len(t, updates, 0)
	})

	t.Run("stopping closes the channel", func(t *testing.T) {
		s := newTestSession(t, "l2")
		updates, stop := s.Listen()
		stop()
		stop()

		_, ok := <-updates
		assert.False(t, ok)

		_, _, err := s.Dispatch(protocol.InboundMessage{Type: "CHOOSE_VARIANT", Data: "standard"})
		require.NoError(t, err)
	})

	t.Run("closed sessions hand out closed channels", func(t *testing.T) {
		s := newTestSession(t, "l4")
		s.Close()
		s.Close()

		updates, stop := s.Listen()
		stop()

		_, ok := <-updates
		assert.False(t, ok)
	})

	t.Run("slow listeners do not block dispatch", func(t *testing.T) {
		s := newTestSession(t, "l3")
		_, stop := s.Listen()
		defer stop()

		utils.Within(t, time.Second, func() {
			for i := 0; i < listenerBuffer+2; i++ {
				variant := "standard"
				if i%2 == 0 {
					variant = "whiz"
				}
				_, _, err := s.Dispatch(protocol.InboundMessage{Type: "HIGHLIGHT", Data: variant})
				assert.NoError(t, err)
			}
		})
	})
}
