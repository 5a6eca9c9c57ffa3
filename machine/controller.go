package machine

import (
	"fmt"

	"github.com/minaorangina/spades/action"
)

// Controller owns the current state of one machine and exposes the
// operations callable in the current mode. It is not safe for concurrent use.
type Controller[D any] struct {
	cfg         Config[D]
	state       State[D]
	subscribers []func(State[D])
}

// New constructs a Controller in the config's initial mode
func New[D any](cfg Config[D]) (*Controller[D], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Controller[D]{
		cfg:   cfg,
		state: cfg.InitialState(),
	}, nil
}

// Mode returns the current mode
func (c *Controller[D]) Mode() Mode {
	return c.state.Mode
}

// Data returns the current mode's data
func (c *Controller[D]) Data() D {
	return c.state.Data
}

// State returns the whole current state
func (c *Controller[D]) State() State[D] {
	return c.state
}

// Actions lists the in-mode action names available in the current mode
func (c *Controller[D]) Actions() []string {
	mc, ok := c.cfg.Modes[c.state.Mode]
	if !ok {
		return []string{}
	}
	return sortedKeys(mc.Actions)
}

// Transitions lists the transition names available in the current mode
func (c *Controller[D]) Transitions() []string {
	mc, ok := c.cfg.Modes[c.state.Mode]
	if !ok {
		return []string{}
	}
	return sortedKeys(mc.Transitions)
}

// Subscribe registers fn to be called after every state replacement
func (c *Controller[D]) Subscribe(fn func(State[D])) {
	c.subscribers = append(c.subscribers, fn)
}

// Act runs an in-mode action. If the action returns the current data
// unchanged, the state is left alone and changed is false.
func (c *Controller[D]) Act(name string, payload any) (changed bool, err error) {
	mc, err := c.cfg.mode(c.state.Mode)
	if err != nil {
		return false, err
	}

	act, ok := mc.Actions[name]
	if !ok {
		return false, fmt.Errorf("%w %q in mode %q", ErrUnknownAction, name, c.state.Mode)
	}

	newData := act(c.state.Data, payload)
	if identical(newData, c.state.Data) {
		return false, nil
	}

	c.replace(State[D]{Mode: c.state.Mode, Data: newData})
	return true, nil
}

// Transition runs a transition and replaces the whole state with its result.
// The resulting mode is not checked against the mode table.
func (c *Controller[D]) Transition(name string, payload any) error {
	mc, err := c.cfg.mode(c.state.Mode)
	if err != nil {
		return err
	}

	transition, ok := mc.Transitions[name]
	if !ok {
		return fmt.Errorf("%w %q in mode %q", ErrUnknownTransition, name, c.state.Mode)
	}

	c.replace(transition(c.state, payload))
	return nil
}

// Dispatch routes an action to the transition or in-mode action of the same
// name, transitions first.
func (c *Controller[D]) Dispatch(a action.Action) (changed bool, err error) {
	mc, err := c.cfg.mode(c.state.Mode)
	if err != nil {
		return false, err
	}

	name := string(a.Type)
	if _, ok := mc.Transitions[name]; ok {
		err := c.Transition(name, a.Data)
		return err == nil, err
	}
	if _, ok := mc.Actions[name]; ok {
		return c.Act(name, a.Data)
	}

	return false, fmt.Errorf("%w %q in mode %q", ErrUnknownAction, name, c.state.Mode)
}

func (c *Controller[D]) replace(next State[D]) {
	c.state = next
	for _, fn := range c.subscribers {
		fn(next)
	}
}
