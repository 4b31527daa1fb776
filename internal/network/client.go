package network

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/aegisprotocol/aegis-server/internal/platform/metrics"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

// ClientCommand represents an incoming command from a connected participant.
type ClientCommand struct {
	Type          string `json:"type"` // "HELLO" or "ATTACK"
	ParticipantID string `json:"participant_id"`
	DisplayName   string `json:"display_name,omitempty"`
	Phrase        string `json:"phrase,omitempty"`
}

// Client represents an active WebSocket connection.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewClient creates a new WebSocket client.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   uuid.NewString(),
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
}

// Register adds the client to the hub.
func (c *Client) Register() {
	c.hub.register <- c
}

// ReadPump pumps commands from the websocket connection into the engine.
func (c *Client) ReadPump() {
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
				metrics.Get().RecordWSError()
				c.hub.logger.Error("WebSocket read error: " + err.Error())
			}
			break
		}
		metrics.Get().RecordWSMessage(true)

		var cmd ClientCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			c.hub.logger.Error("Failed to parse ClientCommand from WebSocket: " + err.Error())
			continue
		}

		c.handleCommand(cmd)
	}
}

func (c *Client) handleCommand(cmd ClientCommand) {
	if cmd.ParticipantID == "" {
		c.hub.logger.Warn("Command without participant_id dropped")
		return
	}

	switch cmd.Type {
	case "HELLO":
		c.hub.announcer.RegisterName(cmd.ParticipantID, cmd.DisplayName)
		c.reply("Welcome, " + c.hub.announcer.DisplayName(cmd.ParticipantID) + ".")
	case "ATTACK":
		if cmd.Phrase == "" {
			c.reply("An attack needs a phrase.")
			return
		}
		outcome := c.hub.engine.SubmitAttack(cmd.ParticipantID, cmd.Phrase, time.Now())
		c.reply(c.hub.announcer.FormatAttackOutcome(outcome))
	default:
		c.hub.logger.Warn("Unknown ClientCommand type: " + cmd.Type)
	}
}

// reply sends a direct message to this client only. Public effects reach
// everyone through the event poller instead.
func (c *Client) reply(text string) {
	payload, err := json.Marshal(ServerMessage{Kind: "reply", Text: text})
	if err != nil {
		return
	}
	select {
	case c.send <- payload:
		metrics.Get().RecordWSMessage(false)
	default:
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
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
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				metrics.Get().RecordWSError()
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
