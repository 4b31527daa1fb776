// Package network is the command/event glue between the game engine and
// connected spectators/participants. It parses commands, formats events into
// user-facing text, and never contains game rules.
package network

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aegisprotocol/aegis-server/internal/events"
	"github.com/aegisprotocol/aegis-server/internal/game"
	"github.com/aegisprotocol/aegis-server/internal/platform/logger"
	"github.com/aegisprotocol/aegis-server/internal/platform/metrics"
)

// ServerMessage is the envelope pushed to websocket clients.
type ServerMessage struct {
	Kind  string            `json:"kind"` // "event" or "reply"
	Event *events.GameEvent `json:"event,omitempty"`
	Text  string            `json:"text,omitempty"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex

	engine    *game.Engine
	announcer *Announcer
	logger    *logger.Logger
}

// NewHub initializes a new WebSocket Hub.
func NewHub(engine *game.Engine, announcer *Announcer, log *logger.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		engine:     engine,
		announcer:  announcer,
		logger:     log,
	}
}

// Run starts the Hub's main loop to handle client connections and broadcasts.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket Hub shutting down.")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.Get().RecordWSConnection(1)
			h.logger.Info("New WebSocket client connected: " + client.id)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().RecordWSConnection(-1)
				h.logger.Info("WebSocket client disconnected: " + client.id)
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					metrics.Get().RecordWSMessage(false)
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastEvent serializes a GameEvent plus its announcement text and sends
// it to all connected clients. With no clients connected the announcement is
// simply dropped; the underlying state change already committed in the
// engine and is never re-applied.
func (h *Hub) BroadcastEvent(event events.GameEvent) {
	msg := ServerMessage{Kind: "event", Event: &event}
	if text, ok := h.announcer.Format(event); ok {
		msg.Text = text
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to serialize GameEvent for WebSocket broadcast: " + err.Error())
		return
	}
	h.broadcast <- payload
}

// StartEventPoller spawns a goroutine that polls the EventLog and pushes new
// events to the Hub. The Hub runs independently from the engine while
// picking up the same events.
func (h *Hub) StartEventPoller(ctx context.Context, eventLog *events.EventLog) {
	go func() {
		pollInterval := time.NewTicker(200 * time.Millisecond)
		defer pollInterval.Stop()

		lastProcessed := 0

		for {
			select {
			case <-ctx.Done():
				return
			case <-pollInterval.C:
				newEvents := eventLog.Since(lastProcessed)
				for _, event := range newEvents {
					h.BroadcastEvent(event)
				}
				lastProcessed += len(newEvents)
			}
		}
	}()
}
