package hub

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"stagehand/internal/providers"
	"stagehand/internal/services"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20

	defaultSendQueueSize = 256
)

// Dispatcher routes an inbound event frame to its mutation handler.
type Dispatcher interface {
	Dispatch(event string, data json.RawMessage) error
}

// Client sits between one websocket connection and the hub.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	dispatcher Dispatcher
	logger     providers.Logger
}

type errorPayload struct {
	Event string `json:"event"`
	Error string `json:"error"`
}

// ServeConnection registers an upgraded connection with the hub and starts
// the pumps. The hub delivers the current init frame during registration, so
// the first frame on the wire is always the full document as of the last
// broadcast. Returns immediately.
func (h *Hub) ServeConnection(conn *websocket.Conn, dispatcher Dispatcher, queueSize int) {
	if queueSize <= 0 {
		queueSize = defaultSendQueueSize
	}
	client := &Client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, queueSize),
		dispatcher: dispatcher,
		logger:     h.logger,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// readPump pumps frames from the websocket into the dispatcher. A handler
// error is answered to this client only; nothing is broadcast for a no-op.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warnf(providers.TypeSocket, "Read error: %s", err)
			}
			break
		}

		var frame Frame
		if err := json.Unmarshal(message, &frame); err != nil {
			c.logger.Warnf(providers.TypeSocket, "Discarding malformed frame: %s", err)
			continue
		}

		if err := c.dispatcher.Dispatch(frame.Event, frame.Data); err != nil {
			c.replyError(frame.Event, err)
		}
	}
}

func (c *Client) replyError(event string, err error) {
	frame, encErr := EncodeFrame(services.EventError, &errorPayload{Event: event, Error: err.Error()})
	if encErr != nil {
		return
	}
	select {
	case c.send <- frame:
	default:
	}
}

// writePump pumps frames from the hub to the websocket connection and keeps
// the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Upgrader builds the websocket upgrader for the configured buffer sizes.
// All origins are accepted.
func Upgrader(readBufferSize, writeBufferSize int) websocket.Upgrader {
	if readBufferSize <= 0 {
		readBufferSize = 1024
	}
	if writeBufferSize <= 0 {
		writeBufferSize = 1024
	}
	return websocket.Upgrader{
		ReadBufferSize:  readBufferSize,
		WriteBufferSize: writeBufferSize,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
}
