package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
	"github.com/minaorangina/spades/protocol"
	"github.com/minaorangina/spades/store"
)

const (
	// Time allowed to write a message to the peer.
	defaultWriteWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// client connects one websocket to a session. Only writePump writes to conn.
type client struct {
	conn      *websocket.Conn
	session   *store.Session
	writeWait time.Duration
	replies   chan protocol.OutboundMessage
	done      chan struct{}
}

func newClient(conn *websocket.Conn, session *store.Session, writeWait time.Duration) *client {
	if writeWait <= 0 {
		writeWait = defaultWriteWait
	}

	return &client{
		conn:      conn,
		session:   session,
		writeWait: writeWait,
		replies:   make(chan protocol.OutboundMessage, 8),
		done:      make(chan struct{}),
	}
}

// run sends the current snapshot, then serves the connection until either
// side closes it.
func (c *client) run() {
	updates, stop := c.session.Listen()
	c.replies <- c.session.Snapshot()

	go c.writePump(updates, stop)
	c.readPump()
}

func (c *client) readPump() {
	defer close(c.replies)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s: %v", c.session.ID(), err)
			}
			return
		}

		var out protocol.OutboundMessage
		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			out = c.session.Snapshot()
			out.Error = "malformed message: " + err.Error()
		} else {
			// successful changes reach every listener, this one included
			if out, _, err = c.session.Dispatch(msg); err == nil {
				continue
			}
		}

		select {
		case c.replies <- out:
		case <-c.done:
			return
		}
	}
}

func (c *client) writePump(updates <-chan protocol.OutboundMessage, stop func()) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.replies:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case msg, ok := <-updates:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if !ok {
				// the session was closed
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "session removed"))
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
