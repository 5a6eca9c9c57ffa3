package setup

import "github.com/minaorangina/spades/action"

const (
	DefaultCardWidth = 80
	minCardWidth     = 20
	maxCardWidth     = 400
)

// Preferences is a session's display settings
type Preferences = map[string]any

var (
	SetCardWidth     = action.NewCreator("SET_CARD_WIDTH")
	MergePreferences = action.NewCreator("MERGE_PREFERENCES")
	ResetPreferences = action.NewCreator("RESET_PREFERENCES")
)

var preferenceTypes = map[action.Type]struct{}{
	SetCardWidth(nil).Type:     {},
	MergePreferences(nil).Type: {},
	ResetPreferences(nil).Type: {},
}

// UpdatePreferences applies a preferences action
var UpdatePreferences = action.MustDispatcher(
	action.Handle(SetCardWidth, setCardWidth),
	action.Handle(MergePreferences, action.MergeData),
	action.Handle(ResetPreferences, func(Preferences, any) Preferences {
		return DefaultPreferences()
	}),
)

// DefaultPreferences returns a fresh set of default preferences
func DefaultPreferences() Preferences {
	return Preferences{"cardWidth": DefaultCardWidth}
}

// IsPreferenceAction reports whether t is handled by UpdatePreferences
func IsPreferenceAction(t action.Type) bool {
	_, ok := preferenceTypes[t]
	return ok
}

func setCardWidth(state Preferences, payload any) Preferences {
	width, ok := toInt(payload)
	if !ok || width < minCardWidth || width > maxCardWidth {
		return state
	}
	return action.SetField("cardWidth")(state, width)
}
