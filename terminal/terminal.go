// Package terminal drives a session from a line-oriented text stream,
// e.g. "CHOOSE_VARIANT whiz" or "SET_CARD_WIDTH 120".
package terminal

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/minaorangina/spades/protocol"
	"github.com/minaorangina/spades/store"
)

const (
	exitCommand  = "EXIT"
	prefsCommand = "PREFS"
)

// Run reads commands from in until EOF or EXIT, writing the session's
// state to out after each one.
func Run(session *store.Session, in io.Reader, out io.Writer) error {
	SendText(out, "%s", buildStateDisplayText(session.Snapshot()))
	SendText(out, promptText())

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			SendText(out, promptText())
			continue
		}

		msg := parseCommand(line)

		switch msg.Type {
		case exitCommand:
			SendText(out, "Bye 👋\n")
			return nil

		case prefsCommand:
			SendText(out, "%s", buildPreferencesText(session.Snapshot().Preferences))

		default:
			snap, changed, err := session.Dispatch(msg)
			switch {
			case err != nil:
				SendText(out, "Sorry, %s\n", err.Error())
			case !changed:
				SendText(out, "Nothing changed\n")
			default:
				SendText(out, "%s", buildStateDisplayText(snap))
			}
		}

		SendText(out, promptText())
	}

	return scanner.Err()
}

// parseCommand splits a line into a message type and payload. The type is
// uppercased. The payload is decoded as JSON when it can be, else kept
// as a string.
func parseCommand(line string) protocol.InboundMessage {
	fields := strings.SplitN(line, " ", 2)
	msg := protocol.InboundMessage{Type: strings.ToUpper(fields[0])}

	if len(fields) < 2 {
		return msg
	}

	raw := strings.TrimSpace(fields[1])
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		payload = raw
	}
	msg.Data = payload

	return msg
}
