package protocol

import (
	"github.com/minaorangina/spades/action"
	"github.com/minaorangina/spades/strcase"
)

// InboundMessage is an action sent by a client, e.g.
// {"type": "CHOOSE_VARIANT", "data": "whiz"}
type InboundMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Action converts the message into an action. Preference actions keep
// their SCREAMING_SNAKE type; every other type is converted to the camelCase
// name of a state machine operation.
func (m InboundMessage) Action(isPreference func(action.Type) bool) action.Action {
	t := action.Type(m.Type)
	if isPreference == nil || !isPreference(t) {
		t = action.Type(strcase.SnakeToCamel(m.Type))
	}
	return action.Action{Type: t, Data: m.Data}
}

// OutboundMessage is a snapshot of a session sent to its clients
type OutboundMessage struct {
	SessionID   string         `json:"sessionID"`
	Mode        string         `json:"mode"`
	Data        any            `json:"data"`
	Actions     []string       `json:"actions"`
	Transitions []string       `json:"transitions"`
	Preferences map[string]any `json:"preferences"`
	Error       string         `json:"error,omitempty"`
}
