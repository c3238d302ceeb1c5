// Package metrics provides observability for the simulation server.
package metrics

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Collector gathers performance metrics.
type Collector struct {
	// Tick metrics
	TickCount      int64
	TickLatencySum int64 // nanoseconds
	TickLatencyMax int64
	LastTickTime   time.Time

	// Simulation metrics
	PackagesShipped   int64
	UpgradesPurchased int64
	EventsTriggered   int64
	ChoicesResolved   int64

	// Snapshot metrics
	SnapshotSaves   int64
	SnapshotSaveLat int64
	SnapshotErrors  int64

	// WebSocket metrics
	WSConnectionsActive int64
	WSMessagesIn        int64
	WSMessagesOut       int64
	WSErrors            int64

	// System
	StartTime time.Time
	mu        sync.RWMutex
}

// Global collector instance
var collector = &Collector{
	StartTime: time.Now(),
}

// Get returns the global collector.
func Get() *Collector {
	return collector
}

// RecordTick records a tick cycle completion.
func (c *Collector) RecordTick(latency time.Duration, shipped int64) {
	atomic.AddInt64(&c.TickCount, 1)
	atomic.AddInt64(&c.TickLatencySum, int64(latency))
	atomic.AddInt64(&c.PackagesShipped, shipped)

	// Update max (non-atomic but acceptable for metrics)
	if int64(latency) > atomic.LoadInt64(&c.TickLatencyMax) {
		atomic.StoreInt64(&c.TickLatencyMax, int64(latency))
	}

	c.mu.Lock()
	c.LastTickTime = time.Now()
	c.mu.Unlock()
}

// RecordPurchase records a successful upgrade purchase.
func (c *Collector) RecordPurchase() {
	atomic.AddInt64(&c.UpgradesPurchased, 1)
}

// RecordEventTriggered records a narrative event trigger.
func (c *Collector) RecordEventTriggered() {
	atomic.AddInt64(&c.EventsTriggered, 1)
}

// RecordChoiceResolved records a narrative choice resolution.
func (c *Collector) RecordChoiceResolved() {
	atomic.AddInt64(&c.ChoicesResolved, 1)
}

// RecordSnapshotSave records a snapshot write to the database.
func (c *Collector) RecordSnapshotSave(latency time.Duration, err error) {
	atomic.AddInt64(&c.SnapshotSaves, 1)
	atomic.AddInt64(&c.SnapshotSaveLat, int64(latency))
	if err != nil {
		atomic.AddInt64(&c.SnapshotErrors, 1)
	}
}

// RecordWSConnection records WebSocket connection changes.
func (c *Collector) RecordWSConnection(delta int64) {
	atomic.AddInt64(&c.WSConnectionsActive, delta)
}

// RecordWSMessage records WebSocket messages.
func (c *Collector) RecordWSMessage(incoming bool) {
	if incoming {
		atomic.AddInt64(&c.WSMessagesIn, 1)
	} else {
		atomic.AddInt64(&c.WSMessagesOut, 1)
	}
}

// RecordWSError records a WebSocket error.
func (c *Collector) RecordWSError() {
	atomic.AddInt64(&c.WSErrors, 1)
}

// Snapshot returns current metrics as a map.
func (c *Collector) Snapshot() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tickCount := atomic.LoadInt64(&c.TickCount)
	saves := atomic.LoadInt64(&c.SnapshotSaves)

	var tickAvg, saveAvg float64
	if tickCount > 0 {
		tickAvg = float64(atomic.LoadInt64(&c.TickLatencySum)) / float64(tickCount) / 1e6 // ms
	}
	if saves > 0 {
		saveAvg = float64(atomic.LoadInt64(&c.SnapshotSaveLat)) / float64(saves) / 1e6
	}

	return map[string]interface{}{
		"uptime_seconds": time.Since(c.StartTime).Seconds(),

		"tick": map[string]interface{}{
			"count":          tickCount,
			"avg_latency_ms": tickAvg,
			"max_latency_ms": float64(atomic.LoadInt64(&c.TickLatencyMax)) / 1e6,
			"last_tick":      c.LastTickTime.Format(time.RFC3339),
		},

		"simulation": map[string]interface{}{
			"packages_shipped":   atomic.LoadInt64(&c.PackagesShipped),
			"upgrades_purchased": atomic.LoadInt64(&c.UpgradesPurchased),
			"events_triggered":   atomic.LoadInt64(&c.EventsTriggered),
			"choices_resolved":   atomic.LoadInt64(&c.ChoicesResolved),
		},

		"snapshots": map[string]interface{}{
			"saves":           saves,
			"avg_save_lat_ms": saveAvg,
			"errors":          atomic.LoadInt64(&c.SnapshotErrors),
		},

		"websocket": map[string]interface{}{
			"active_connections": atomic.LoadInt64(&c.WSConnectionsActive),
			"messages_in":        atomic.LoadInt64(&c.WSMessagesIn),
			"messages_out":       atomic.LoadInt64(&c.WSMessagesOut),
			"errors":             atomic.LoadInt64(&c.WSErrors),
		},
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")

		snapshot := collector.Snapshot()
		json.NewEncoder(w).Encode(snapshot)
	}
}

// PrometheusHandler returns metrics in Prometheus format.
func PrometheusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		c := collector

		fmt.Fprintf(w, "# HELP magnate_tick_count Total tick cycles\n")
		fmt.Fprintf(w, "# TYPE magnate_tick_count counter\n")
		fmt.Fprintf(w, "magnate_tick_count %d\n\n", atomic.LoadInt64(&c.TickCount))

		fmt.Fprintf(w, "# HELP magnate_tick_latency_max_ms Maximum tick latency\n")
		fmt.Fprintf(w, "# TYPE magnate_tick_latency_max_ms gauge\n")
		fmt.Fprintf(w, "magnate_tick_latency_max_ms %.2f\n\n", float64(atomic.LoadInt64(&c.TickLatencyMax))/1e6)

		fmt.Fprintf(w, "# HELP magnate_packages_shipped Total packages shipped by accrual\n")
		fmt.Fprintf(w, "# TYPE magnate_packages_shipped counter\n")
		fmt.Fprintf(w, "magnate_packages_shipped %d\n\n", atomic.LoadInt64(&c.PackagesShipped))

		fmt.Fprintf(w, "# HELP magnate_upgrades_purchased Total successful upgrade purchases\n")
		fmt.Fprintf(w, "# TYPE magnate_upgrades_purchased counter\n")
		fmt.Fprintf(w, "magnate_upgrades_purchased %d\n\n", atomic.LoadInt64(&c.UpgradesPurchased))

		fmt.Fprintf(w, "# HELP magnate_events_triggered Total narrative events triggered\n")
		fmt.Fprintf(w, "# TYPE magnate_events_triggered counter\n")
		fmt.Fprintf(w, "magnate_events_triggered %d\n\n", atomic.LoadInt64(&c.EventsTriggered))

		fmt.Fprintf(w, "# HELP magnate_snapshot_saves Total snapshot writes\n")
		fmt.Fprintf(w, "# TYPE magnate_snapshot_saves counter\n")
		fmt.Fprintf(w, "magnate_snapshot_saves %d\n\n", atomic.LoadInt64(&c.SnapshotSaves))

		fmt.Fprintf(w, "# HELP magnate_snapshot_errors Total snapshot write errors\n")
		fmt.Fprintf(w, "# TYPE magnate_snapshot_errors counter\n")
		fmt.Fprintf(w, "magnate_snapshot_errors %d\n\n", atomic.LoadInt64(&c.SnapshotErrors))

		fmt.Fprintf(w, "# HELP magnate_ws_connections Active WebSocket connections\n")
		fmt.Fprintf(w, "# TYPE magnate_ws_connections gauge\n")
		fmt.Fprintf(w, "magnate_ws_connections %d\n\n", atomic.LoadInt64(&c.WSConnectionsActive))

		fmt.Fprintf(w, "# HELP magnate_ws_messages_total Total WebSocket messages\n")
		fmt.Fprintf(w, "# TYPE magnate_ws_messages_total counter\n")
		fmt.Fprintf(w, "magnate_ws_messages_total{direction=\"in\"} %d\n", atomic.LoadInt64(&c.WSMessagesIn))
		fmt.Fprintf(w, "magnate_ws_messages_total{direction=\"out\"} %d\n", atomic.LoadInt64(&c.WSMessagesOut))
	}
}
