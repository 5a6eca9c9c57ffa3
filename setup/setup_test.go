package setup

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/minaorangina/spades/action"
	"github.com/minaorangina/spades/deck"
	"github.com/minaorangina/spades/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMachine(t *testing.T) *machine.Controller[any] {
	t.Helper()

	c, err := New(Opts{HandSize: 5, Rand: rand.New(rand.NewSource(1))})
	require.NoError(t, err)
	return c
}

func TestSetupFlow(t *testing.T) {
	t.Run("starts by selecting a variant", func(t *testing.T) {
		c := newTestMachine(t)

		assert.Equal(t, SelectVariant, c.Mode())
		assert.Equal(t, Variants(), c.Data().(*VariantData).Variants)
		assert.Equal(t, []string{"highlight"}, c.Actions())
		assert.Equal(t, []string{"chooseVariant"}, c.Transitions())
	})

	t.Run("walks through to play", func(t *testing.T) {
		c := newTestMachine(t)

		require.NoError(t, c.Transition("chooseVariant", "whiz"))
		assert.Equal(t, SelectLevel, c.Mode())
		assert.Equal(t, &LevelData{Variant: Whiz, Levels: []int{1, 2, 3, 4, 5}}, c.Data())

		require.NoError(t, c.Transition("chooseLevel", float64(3)))
		assert.Equal(t, Play, c.Mode())

		data := c.Data().(*PlayData)
		assert.Equal(t, Whiz, data.Variant)
		assert.Equal(t, 3, data.Level)
		assert.Len(t, data.Hand, 5)

		require.NoError(t, c.Transition("quit", nil))
		assert.Equal(t, SelectVariant, c.Mode())
	})

	t.Run("back returns to variant selection", func(t *testing.T) {
		c := newTestMachine(t)
		require.NoError(t, c.Transition("chooseVariant", "suicide"))
		require.NoError(t, c.Transition("back", nil))

		assert.Equal(t, SelectVariant, c.Mode())
		assert.Empty(t, c.Data().(*VariantData).Highlighted)
	})

	t.Run("invalid choices keep the state", func(t *testing.T) {
		c := newTestMachine(t)
		before := c.State()

		require.NoError(t, c.Transition("chooseVariant", "bridge"))
		assert.Equal(t, before, c.State())

		require.NoError(t, c.Transition("chooseVariant", FreeForAll))
		for _, bad := range []any{0, 6, 2.5, "two", nil} {
			require.NoError(t, c.Transition("chooseLevel", bad))
			assert.Equal(t, SelectLevel, c.Mode(), "%v", bad)
		}
	})

	t.Run("operations from other modes are unknown", func(t *testing.T) {
		c := newTestMachine(t)

		_, err := c.Act("sortHand", nil)
		assert.True(t, errors.Is(err, machine.ErrUnknownAction))

		err = c.Transition("chooseLevel", 1)
		assert.True(t, errors.Is(err, machine.ErrUnknownTransition))
	})
}

func TestSetupActions(t *testing.T) {
	t.Run("highlight replaces the data once", func(t *testing.T) {
		c := newTestMachine(t)

		changed, err := c.Act("highlight", "standard")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, Standard, c.Data().(*VariantData).Highlighted)

		before := c.Data()
		changed, err = c.Act("highlight", "standard")
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Same(t, before, c.Data())
	})

	t.Run("sortHand sorts once", func(t *testing.T) {
		c := newTestMachine(t)
		_, err := c.Dispatch(action.Action{Type: "chooseVariant", Data: "standard"})
		require.NoError(t, err)
		_, err = c.Dispatch(action.Action{Type: "chooseLevel", Data: "1"})
		require.NoError(t, err)

		hand := c.Data().(*PlayData).Hand
		_, err = c.Act("sortHand", nil)
		require.NoError(t, err)

		sorted := c.Data().(*PlayData).Hand
		assert.True(t, deck.IsSorted(sorted))
		assert.ElementsMatch(t, hand, sorted)

		changed, err := c.Act("sortHand", nil)
		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestHandSize(t *testing.T) {
	for _, size := range []int{0, -1, 53} {
		cfg := Config(Opts{HandSize: size, Rand: rand.New(rand.NewSource(2))})
		state := cfg.InitialState()

		state, err := machine.Reduce(cfg, state, action.Action{Type: "chooseVariant", Data: "standard"})
		require.NoError(t, err)
		state, err = machine.Reduce(cfg, state, action.Action{Type: "chooseLevel", Data: 2})
		require.NoError(t, err)

		assert.Len(t, state.Data.(*PlayData).Hand, DefaultHandSize, "hand size %d", size)
	}
}

func TestVariants(t *testing.T) {
	assert.Equal(t, "Free for All", FreeForAll.Label())

	v, ok := ParseVariant("free_for_all")
	assert.True(t, ok)
	assert.Equal(t, FreeForAll, v)

	_, ok = ParseVariant(3)
	assert.False(t, ok)
}

func TestPreferences(t *testing.T) {
	t.Run("sets the card width", func(t *testing.T) {
		prefs := UpdatePreferences(DefaultPreferences(), SetCardWidth(float64(120)))
		assert.Equal(t, 120, prefs["cardWidth"])
	})

	t.Run("ignores widths out of range", func(t *testing.T) {
		start := DefaultPreferences()
		prefs := UpdatePreferences(start, SetCardWidth(4000))
		assert.Equal(t, DefaultCardWidth, prefs["cardWidth"])
	})

	t.Run("merges and resets", func(t *testing.T) {
		prefs := UpdatePreferences(DefaultPreferences(), MergePreferences(map[string]any{"theme": "felt"}))
		assert.Equal(t, "felt", prefs["theme"])
		assert.Equal(t, DefaultCardWidth, prefs["cardWidth"])

		prefs = UpdatePreferences(prefs, ResetPreferences(nil))
		assert.Equal(t, DefaultPreferences(), prefs)
	})

	t.Run("recognises its own actions", func(t *testing.T) {
		assert.True(t, IsPreferenceAction("SET_CARD_WIDTH"))
		assert.False(t, IsPreferenceAction("chooseVariant"))
	})
}
