package terminal

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/minaorangina/spades/protocol"
	"github.com/minaorangina/spades/setup"
	"github.com/minaorangina/spades/strcase"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

func buildStateDisplayText(snap protocol.OutboundMessage) string {
	var displayText string

	switch data := snap.Data.(type) {
	case *setup.VariantData:
		displayText = "Choose a variant 🂡\n"
		for _, v := range data.Variants {
			marker := "-"
			if v == data.Highlighted {
				marker = ">"
			}
			displayText += fmt.Sprintf("%s %s (%s)\n", marker, v.Label(), v)
		}

	case *setup.LevelData:
		displayText = fmt.Sprintf("Playing %s. Choose a level:\n", data.Variant.Label())
		for _, l := range data.Levels {
			displayText += fmt.Sprintf("- %d\n", l)
		}

	case *setup.PlayData:
		displayText = fmt.Sprintf("%s, level %d. In your hand, you have %d cards 🤲\n",
			data.Variant.Label(), data.Level, len(data.Hand))
		for _, card := range data.Hand {
			displayText += "- " + card.String() + "\n"
		}

	default:
		displayText = fmt.Sprintf("%s: %v\n", snap.Mode, snap.Data)
	}

	return displayText + "\n" + buildCommandsText(snap)
}

func buildCommandsText(snap protocol.OutboundMessage) string {
	names := append(append([]string{}, snap.Transitions...), snap.Actions...)
	commands := make([]string, 0, len(names))
	for _, n := range names {
		commands = append(commands, strcase.CamelToSnake(n))
	}
	sort.Strings(commands)

	return "Commands: " + strings.Join(commands, ", ") + "\n"
}

func buildPreferencesText(prefs map[string]any) string {
	keys := make([]string, 0, len(prefs))
	for k := range prefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	text := "Preferences:\n"
	for _, k := range keys {
		text += fmt.Sprintf("- %s: %v\n", k, prefs[k])
	}
	return text
}

func promptText() string {
	return "\n> "
}
