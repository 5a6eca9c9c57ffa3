package server

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/spades/config"
	utils "github.com/minaorangina/spades/internal"
	"github.com/minaorangina/spades/protocol"
	"github.com/minaorangina/spades/setup"
	"github.com/minaorangina/spades/store"
)

func newTestServer(t *testing.T, str store.SessionStore) *GameServer {
	t.Helper()

	s, err := NewServer(ServerOpts{
		Config: config.Config{Version: "1.0.0", HandSize: 4},
		Store:  str,
		SetupOpts: func() setup.Opts {
			return setup.Opts{HandSize: 4, Rand: rand.New(rand.NewSource(1))}
		},
		LogOutput: io.Discard,
	})
	utils.AssertNoError(t, err)

	return s
}

// newServerWithSession returns a GameServer holding one fresh session
func newServerWithSession(t *testing.T) (*GameServer, *store.Session) {
	t.Helper()

	str := store.NewInMemorySessionStore()
	session, err := store.NewSession("some-session-id", setup.Opts{HandSize: 4, Rand: rand.New(rand.NewSource(1))})
	utils.AssertNoError(t, err)
	utils.AssertNoError(t, str.AddSession(session))

	return newTestServer(t, str), session
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	response := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, target, nil)
	h.ServeHTTP(response, request)

	return response
}

func newCreateSessionRequest() *http.Request {
	return httptest.NewRequest(http.MethodPost, "/session", bytes.NewBuffer([]byte{}))
}

// ASSERTIONS

func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func mustDecode(t *testing.T, body io.Reader, target any) {
	t.Helper()

	if err := json.NewDecoder(body).Decode(target); err != nil {
		t.Fatalf("could not unmarshal json: %s", err.Error())
	}
}

func mustDialWS(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	ws, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("could not open a ws connection on %s, code %d: %v", url, status, err)
	}

	t.Cleanup(func() { ws.Close() })
	return ws
}

func makeWSUrl(serverURL, sessionID string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/ws?session_id=" + sessionID
}

func mustReadSnapshot(t *testing.T, ws *websocket.Conn) protocol.OutboundMessage {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg protocol.OutboundMessage
	if err := ws.ReadJSON(&msg); err != nil {
		t.Fatalf("could not read snapshot: %v", err)
	}
	return msg
}

func mustSend(t *testing.T, ws *websocket.Conn, msg protocol.InboundMessage) {
	t.Helper()

	if err := ws.WriteJSON(msg); err != nil {
		t.Fatalf("could not send %+v: %v", msg, err)
	}
}
