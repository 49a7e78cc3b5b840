package hub

import (
	"sync/atomic"

	json "github.com/goccy/go-json"

	"stagehand/internal/models"
	"stagehand/internal/providers"
	"stagehand/internal/services"
)

// Frame is the wire envelope on the event channel: a named event with an
// optional JSON payload.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func EncodeFrame(event string, payload interface{}) ([]byte, error) {
	var data json.RawMessage
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		data = raw
	}
	return json.Marshal(&Frame{Event: event, Data: data})
}

// outbound is one fan-out unit on the broadcast channel. Document broadcasts
// carry a refreshed init frame alongside the fan-out frame; notification
// events leave it nil and the cached init stands.
type outbound struct {
	frame []byte
	init  []byte
}

// Hub fans frames out to every connected client. One goroutine owns the
// client set and the cached init frame; registration, disconnects and
// broadcasts all serialize through its channels, so a client either finds a
// document broadcast folded into its init frame or receives it after
// registration. There is no window where it gets neither.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound

	// owned by Run after it starts; Prime seeds it before that
	initFrame []byte

	clientCount atomic.Int64

	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewHub(logger providers.Logger, metrics providers.MetricsProviderInterface) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, 16),
		logger:     logger,
		metrics:    metrics,
	}
}

// Prime seeds the init frame from the restored document. Must be called
// before Run starts.
func (h *Hub) Prime(doc *models.Document) error {
	frame, err := EncodeFrame(services.EventInit, doc)
	if err != nil {
		return err
	}
	h.initFrame = frame
	return nil
}

// Run owns h.clients. Everything else talks to it through the channels.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.send <- h.initFrame
			h.clients[client] = true
			h.clientCount.Store(int64(len(h.clients)))
			h.metrics.IncConnectedClients()
			h.logger.Infof(providers.TypeSocket, "Client connected (%d total)", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.clientCount.Store(int64(len(h.clients)))
				h.metrics.DecConnectedClients()
				h.logger.Infof(providers.TypeSocket, "Client disconnected (%d total)", len(h.clients))
			}

		case out := <-h.broadcast:
			if out.init != nil {
				h.initFrame = out.init
			}
			for client := range h.clients {
				select {
				case client.send <- out.frame:
				default:
					// slow consumer
					close(client.send)
					delete(h.clients, client)
					h.clientCount.Store(int64(len(h.clients)))
					h.metrics.DecConnectedClients()
					h.logger.Warnf(providers.TypeSocket, "Dropped slow client (%d total)", len(h.clients))
				}
			}
		}
	}
}

// BroadcastDocument re-sends the full document to every connected client and
// refreshes the init frame served to the next one.
func (h *Hub) BroadcastDocument(doc *models.Document) {
	frame, err := EncodeFrame(services.EventDataUpdate, doc)
	if err != nil {
		h.logger.Errorf(providers.TypeSocket, "Failed to encode document broadcast: %s", err)
		return
	}
	init, err := EncodeFrame(services.EventInit, doc)
	if err != nil {
		h.logger.Errorf(providers.TypeSocket, "Failed to encode init frame: %s", err)
		return
	}
	h.metrics.ObserveBroadcastSize(len(frame))
	h.broadcast <- outbound{frame: frame, init: init}
}

// Emit broadcasts a narrowly-scoped notification event to every client.
func (h *Hub) Emit(event string, payload interface{}) {
	frame, err := EncodeFrame(event, payload)
	if err != nil {
		h.logger.Errorf(providers.TypeSocket, "Failed to encode %s event: %s", event, err)
		return
	}
	h.broadcast <- outbound{frame: frame}
}

func (h *Hub) ClientCount() int {
	return int(h.clientCount.Load())
}
