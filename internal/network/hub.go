package network

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/journal"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/platform/logger"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/platform/metrics"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/sim"
)

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	sim        *sim.Simulation
	logger     *logger.Logger
}

// NewHub initializes a new WebSocket Hub bound to the running simulation.
func NewHub(s *sim.Simulation, log *logger.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		sim:        s,
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
			h.logger.Info("New WebSocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().RecordWSConnection(-1)
				h.logger.Info("WebSocket client disconnected")
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
					metrics.Get().RecordWSConnection(-1)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastEntry serializes a journal entry and sends it to all connected
// clients.
func (h *Hub) BroadcastEntry(entry journal.Entry) {
	payload, err := json.Marshal(entry)
	if err != nil {
		h.logger.Error("Failed to serialize journal entry for WebSocket broadcast: " + err.Error())
		metrics.Get().RecordWSError()
		return
	}
	h.broadcast <- payload
}

// StartJournalPoller spawns a goroutine to poll the journal and push new
// entries to the Hub. This keeps the Hub independent from the tick loop while
// clients still see every purchase, event and ending as it happens.
func (h *Hub) StartJournalPoller(ctx context.Context, jl *journal.Log) {
	go func() {
		pollInterval := time.NewTicker(200 * time.Millisecond)
		defer pollInterval.Stop()

		lastProcessed := 0

		for {
			select {
			case <-ctx.Done():
				return
			case <-pollInterval.C:
				all := jl.Replay()
				if len(all) > lastProcessed {
					for _, entry := range all[lastProcessed:] {
						h.BroadcastEntry(entry)
					}
					lastProcessed = len(all)
				}
			}
		}
	}()
}

// Simulation exposes the bound simulation for client action handlers.
func (h *Hub) Simulation() *sim.Simulation {
	return h.sim
}
