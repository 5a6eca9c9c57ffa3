package action

import (
	"errors"
	"fmt"
)

var (
	ErrNilCreator    = errors.New("action creator is nil")
	ErrNilReducer    = errors.New("reducer is nil")
	ErrEmptyType     = errors.New("action creator produced an empty type")
	ErrDuplicateType = errors.New("action type registered more than once")
)

// Type identifies an action
type Type string

// Action is a named payload describing an intended state change
type Action struct {
	Type Type `json:"type"`
	Data any  `json:"data"`
}

// Creator pairs a fixed type with caller-supplied data.
// Calling it with nil returns a sentinel action that reveals the type.
type Creator func(data any) Action

// NewCreator returns a Creator for the given type
func NewCreator(t Type) Creator {
	return func(data any) Action {
		return Action{Type: t, Data: data}
	}
}

// Reducer computes a new state from the old state and an action payload
type Reducer[S any] func(state S, payload any) S

// Handler binds a reducer to the action creator whose type it handles
type Handler[S any] struct {
	Creator Creator
	Reducer Reducer[S]
}

// Handle is shorthand for building a Handler
func Handle[S any](c Creator, r Reducer[S]) Handler[S] {
	return Handler[S]{Creator: c, Reducer: r}
}

// Dispatch applies an action to a state
type Dispatch[S any] func(state S, a Action) S

// NewDispatcher builds a single Dispatch from a set of handlers.
// Each creator is called with no payload to learn its type. Two creators
// resolving to the same type is a configuration error.
func NewDispatcher[S any](handlers ...Handler[S]) (Dispatch[S], error) {
	reducers := make(map[Type]Reducer[S], len(handlers))

	for _, h := range handlers {
		if h.Creator == nil {
			return nil, ErrNilCreator
		}
		if h.Reducer == nil {
			return nil, ErrNilReducer
		}

		t := h.Creator(nil).Type
		if t == "" {
			return nil, ErrEmptyType
		}
		if _, exists := reducers[t]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateType, t)
		}
		reducers[t] = h.Reducer
	}

	return func(state S, a Action) S {
		reducer, ok := reducers[a.Type]
		if !ok {
			return state
		}
		return reducer(state, a.Data)
	}, nil
}

// MustDispatcher is like NewDispatcher but panics on a configuration error.
// Intended for package-level tables.
func MustDispatcher[S any](handlers ...Handler[S]) Dispatch[S] {
	d, err := NewDispatcher(handlers...)
	if err != nil {
		panic(err)
	}
	return d
}
