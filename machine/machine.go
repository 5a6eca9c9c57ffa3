package machine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/minaorangina/spades/action"
)

var (
	ErrNoModes           = errors.New("machine has no modes")
	ErrUnknownMode       = errors.New("unknown mode")
	ErrUnknownAction     = errors.New("unknown action")
	ErrUnknownTransition = errors.New("unknown transition")
)

// Mode names an entry in a mode table
type Mode string

// State is the whole machine state. The shape of Data depends on Mode.
type State[D any] struct {
	Mode Mode `json:"mode"`
	Data D    `json:"data"`
}

// ActionFunc computes new mode-local data. Returning the same reference
// means nothing changed.
type ActionFunc[D any] func(data D, payload any) D

// TransitionFunc computes an entirely new machine state
type TransitionFunc[D any] func(state State[D], payload any) State[D]

// ModeConfig bundles a mode's in-mode actions, its outbound transitions and
// the data it starts with.
type ModeConfig[D any] struct {
	Actions     map[string]ActionFunc[D]
	Transitions map[string]TransitionFunc[D]
	InitialData D
}

// Config is the static mode table of a machine
type Config[D any] struct {
	InitialMode Mode
	Modes       map[Mode]ModeConfig[D]
}

// Validate checks the config can build a machine
func (c Config[D]) Validate() error {
	if len(c.Modes) == 0 {
		return ErrNoModes
	}
	if _, ok := c.Modes[c.InitialMode]; !ok {
		return fmt.Errorf("%w: initial mode %q", ErrUnknownMode, c.InitialMode)
	}
	return nil
}

// InitialState is the state a new machine starts in
func (c Config[D]) InitialState() State[D] {
	return State[D]{
		Mode: c.InitialMode,
		Data: c.Modes[c.InitialMode].InitialData,
	}
}

func (c Config[D]) mode(m Mode) (ModeConfig[D], error) {
	mc, ok := c.Modes[m]
	if !ok {
		return ModeConfig[D]{}, fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	return mc, nil
}

// Reduce evaluates an action against a state without a controller.
// A transition registered for the action type wins over an in-mode action.
// Unmatched types return the state unchanged.
func Reduce[D any](cfg Config[D], state State[D], a action.Action) (State[D], error) {
	mc, err := cfg.mode(state.Mode)
	if err != nil {
		return state, err
	}

	name := string(a.Type)

	if transition, ok := mc.Transitions[name]; ok {
		return transition(state, a.Data), nil
	}

	if act, ok := mc.Actions[name]; ok {
		newData := act(state.Data, a.Data)
		if identical(newData, state.Data) {
			return state, nil
		}
		return State[D]{Mode: state.Mode, Data: newData}, nil
	}

	return state, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
