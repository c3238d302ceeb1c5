package network

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/catalog"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/config"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/journal"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/platform/logger"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/sim"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	s := sim.NewSimulation(catalog.Default(), config.Default(), rng, nil, logger.NewLogger(), time.Unix(0, 0))
	return NewHub(s, logger.NewLogger())
}

func TestHubBroadcastEntryFansOut(t *testing.T) {
	h := newTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	client := &Client{hub: h, send: make(chan []byte, 4)}
	h.register <- client

	h.BroadcastEntry(journal.Entry{ID: "e1", Type: journal.EntryPurchase, Subject: "hire-courier"})

	select {
	case msg := <-client.send:
		assert.Contains(t, string(msg), "hire-courier")
	case <-time.After(time.Second):
		t.Fatal("broadcast never reached the client")
	}
}

func TestHubBroadcastEntrySkipsUnserializablePayload(t *testing.T) {
	h := newTestHub(t)

	// No Run loop here on purpose. A payload that cannot be serialized must
	// be logged and dropped before the broadcast channel; a send would block
	// forever with nobody draining it.
	h.BroadcastEntry(journal.Entry{ID: "bad", Type: journal.EntryPurchase, Payload: make(chan int)})
}

func TestPurchaseErrorStrings(t *testing.T) {
	assert.Equal(t, "insufficient funds", purchaseErrorString(sim.ErrInsufficientFunds))
	assert.Equal(t, "not eligible", purchaseErrorString(sim.ErrNotEligible))
	assert.Equal(t, "unknown upgrade", purchaseErrorString(sim.ErrUnknownUpgrade))
	assert.Equal(t, "no active event", purchaseErrorString(sim.ErrNoActiveEvent))
	assert.Equal(t, "unknown choice", purchaseErrorString(sim.ErrUnknownChoice))
}
