// Package network carries the WebSocket surface of the server: a hub that
// fans journal entries out to connected clients, and per-connection clients
// that translate player commands into simulation calls.
package network

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/platform/metrics"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/sim"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// PlayerAction represents an incoming command from the frontend.
type PlayerAction struct {
	Type    string          `json:"type"`    // "SHIP", "BUY_UPGRADE", "RESOLVE_CHOICE", "RESET"
	Payload json.RawMessage `json:"payload"` // Action-specific data
}

// actionResult is sent back to the originating client after every command.
type actionResult struct {
	Type    string `json:"type"`
	Action  string `json:"action"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Shipped int64  `json:"shipped,omitempty"`
}

// Client holds one WebSocket connection and its per-connection command
// budget.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
}

// NewClient creates a new WebSocket client. The limiter allows sustained
// clicking (manual shipping is the whole point) while capping floods.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}
}

// Register adds the client to the hub.
func (c *Client) Register() {
	c.hub.register <- c
}

// ReadPump pumps messages from the websocket connection into the simulation.
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
				c.hub.logger.Error("WebSocket read error: " + err.Error())
				metrics.Get().RecordWSError()
			}
			break
		}
		metrics.Get().RecordWSMessage(true)

		var action PlayerAction
		if err := json.Unmarshal(message, &action); err != nil {
			c.hub.logger.Error("Failed to parse PlayerAction from WebSocket. err: " + err.Error())
			continue
		}

		c.handlePlayerAction(action)
	}
}

func (c *Client) handlePlayerAction(action PlayerAction) {
	if !c.limiter.Allow() {
		c.hub.logger.Warn("Rate limit exceeded for client action " + action.Type)
		c.reply(actionResult{Type: "ACTION_RESULT", Action: action.Type, OK: false, Error: "rate limited"})
		return
	}

	switch action.Type {
	case "SHIP":
		c.handleShip()
	case "BUY_UPGRADE":
		c.handleBuyUpgrade(action.Payload)
	case "RESOLVE_CHOICE":
		c.handleResolveChoice(action.Payload)
	case "RESET":
		c.handleReset()
	default:
		c.hub.logger.Warn("Unknown PlayerAction type: " + action.Type)
		c.reply(actionResult{Type: "ACTION_RESULT", Action: action.Type, OK: false, Error: "unknown action"})
	}
}

func (c *Client) handleShip() {
	shipped := c.hub.sim.ShipPackage()
	c.reply(actionResult{Type: "ACTION_RESULT", Action: "SHIP", OK: true, Shipped: shipped})
}

func (c *Client) handleBuyUpgrade(rawPayload []byte) {
	var parsed struct {
		UpgradeID string `json:"upgrade_id"`
	}
	if err := json.Unmarshal(rawPayload, &parsed); err != nil || parsed.UpgradeID == "" {
		c.reply(actionResult{Type: "ACTION_RESULT", Action: "BUY_UPGRADE", OK: false, Error: "missing upgrade_id"})
		return
	}

	if err := c.hub.sim.PurchaseUpgrade(parsed.UpgradeID, time.Now()); err != nil {
		c.reply(actionResult{Type: "ACTION_RESULT", Action: "BUY_UPGRADE", OK: false, Error: purchaseErrorString(err)})
		return
	}
	metrics.Get().RecordPurchase()
	c.reply(actionResult{Type: "ACTION_RESULT", Action: "BUY_UPGRADE", OK: true})
}

func (c *Client) handleResolveChoice(rawPayload []byte) {
	var parsed struct {
		ChoiceID string `json:"choice_id"`
	}
	if err := json.Unmarshal(rawPayload, &parsed); err != nil || parsed.ChoiceID == "" {
		c.reply(actionResult{Type: "ACTION_RESULT", Action: "RESOLVE_CHOICE", OK: false, Error: "missing choice_id"})
		return
	}

	if err := c.hub.sim.ResolveEventChoice(parsed.ChoiceID); err != nil {
		c.reply(actionResult{Type: "ACTION_RESULT", Action: "RESOLVE_CHOICE", OK: false, Error: purchaseErrorString(err)})
		return
	}
	metrics.Get().RecordChoiceResolved()
	c.reply(actionResult{Type: "ACTION_RESULT", Action: "RESOLVE_CHOICE", OK: true})
}

func (c *Client) handleReset() {
	c.hub.sim.ResetSimulation(time.Now())
	c.reply(actionResult{Type: "ACTION_RESULT", Action: "RESET", OK: true})
}

// purchaseErrorString maps the simulation's sentinel errors to stable wire
// strings the frontend can switch on.
func purchaseErrorString(err error) string {
	switch {
	case errors.Is(err, sim.ErrInsufficientFunds):
		return "insufficient funds"
	case errors.Is(err, sim.ErrNotEligible):
		return "not eligible"
	case errors.Is(err, sim.ErrUnknownUpgrade):
		return "unknown upgrade"
	case errors.Is(err, sim.ErrNoActiveEvent):
		return "no active event"
	case errors.Is(err, sim.ErrUnknownChoice):
		return "unknown choice"
	}
	return err.Error()
}

func (c *Client) reply(res actionResult) {
	payload, err := json.Marshal(res)
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

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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
