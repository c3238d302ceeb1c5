// Package main is the entry point for the Magnate del Paquete game server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/catalog"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/config"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/infra/storage"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/journal"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/network"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/platform/logger"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/platform/metrics"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/sim"
)

const (
	tickInterval     = 250 * time.Millisecond
	autosaveInterval = 5 * time.Second
)

// SQLitePersisterAdapter translates journal entries to storage records.
type SQLitePersisterAdapter struct {
	repo *storage.SQLiteJournalRepository
}

func (a *SQLitePersisterAdapter) Append(entry journal.Entry) error {
	payloadBytes, _ := json.Marshal(entry.Payload)

	record := storage.JournalRecord{
		ID:        entry.ID,
		Timestamp: entry.Timestamp,
		EntryType: string(entry.Type),
		Subject:   entry.Subject,
		Payload:   string(payloadBytes),
	}
	return a.repo.Append(context.Background(), record)
}

// loadBalance resolves the balance configuration from flags. A balance file
// wins over a preset name.
func loadBalance(preset, path string, appLogger *logger.Logger) config.Balance {
	if path != "" {
		cfg, err := config.LoadFile(path)
		if err != nil {
			appLogger.Warn("Failed to load balance file, using defaults: " + err.Error())
			return config.Default()
		}
		appLogger.Info("Loaded balance configuration from " + path)
		return cfg
	}
	switch preset {
	case "relaxed":
		return config.Relaxed()
	case "cutthroat":
		return config.Cutthroat()
	default:
		return config.Default()
	}
}

// bootstrapState restores the company from the retained snapshot, falling
// back to a fresh company when nothing usable is stored. A corrupt snapshot
// is discarded so the next save starts clean.
func bootstrapState(ctx context.Context, store *storage.SQLiteSnapshotStore, simulation *sim.Simulation, appLogger *logger.Logger) {
	snap, err := store.Load(ctx)
	if err != nil {
		appLogger.Error("Failed to query snapshot store: " + err.Error())
		return
	}
	if snap == nil {
		appLogger.Info("No snapshot found. Starting a fresh empire.")
		return
	}

	c, err := storage.Deserialize(*snap)
	if err != nil {
		if errors.Is(err, storage.ErrCorruptData) {
			appLogger.Error("Stored snapshot is corrupt, discarding it: " + err.Error())
			_ = store.Clear(ctx)
			return
		}
		appLogger.Error("Failed to restore snapshot: " + err.Error())
		return
	}

	simulation.LoadState(*c)
	appLogger.Info("Restored company state from snapshot (saved " + snap.SavedAt.Format(time.RFC3339) + ")")
}

func main() {
	var (
		addr        = flag.String("addr", ":8080", "HTTP listen address")
		dbPath      = flag.String("db", "magnate.db", "SQLite database path")
		preset      = flag.String("preset", "default", "balance preset: default, relaxed, cutthroat")
		balanceFile = flag.String("balance", "", "YAML balance file (overrides preset)")
	)
	flag.Parse()

	log.Println("[MAGNATE-SERVER] Initializing 'Magnate del Paquete' Authoritative Server...")

	appLogger := logger.NewLogger()

	appLogger.Info("Initializing SQLite database '" + *dbPath + "'...")
	db, err := storage.InitSQLite(*dbPath)
	if err != nil {
		appLogger.Error("Failed to initialize SQLite: " + err.Error())
		os.Exit(1)
	}
	journalRepo := storage.NewSQLiteJournalRepository(db)
	snapStore := storage.NewSQLiteSnapshotStore(db)

	appLogger.Info("Bootstrapping Journal...")
	actionJournal := journal.NewLog(&SQLitePersisterAdapter{repo: journalRepo})

	balance := loadBalance(*preset, *balanceFile, appLogger)

	appLogger.Info("Bootstrapping Simulation...")
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	simulation := sim.NewSimulation(catalog.Default(), balance, rng, actionJournal, appLogger, time.Now())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrapState(ctx, snapStore, simulation, appLogger)

	group, ctx := errgroup.WithContext(ctx)

	// Tick loop: accrual plus narrative event rolls.
	group.Go(func() error {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				start := time.Now()
				now := time.Now()
				shipped := simulation.AdvanceTick(now)
				ev := simulation.CheckForEvent(now)
				if ev != nil {
					metrics.Get().RecordEventTriggered()
				}
				metrics.Get().RecordTick(time.Since(start), shipped)
			}
		}
	})

	// Automated state backup routine.
	group.Go(func() error {
		ticker := time.NewTicker(autosaveInterval)
		defer ticker.Stop()
		save := func() {
			start := time.Now()
			state := simulation.State()
			snap, err := storage.Serialize(&state)
			if err == nil {
				err = snapStore.Save(context.Background(), snap)
			}
			metrics.Get().RecordSnapshotSave(time.Since(start), err)
			if err != nil {
				appLogger.Error("Snapshot save failed: " + err.Error())
			}
		}
		for {
			select {
			case <-ctx.Done():
				// Final save so a clean shutdown loses nothing.
				save()
				return nil
			case <-ticker.C:
				save()
			}
		}
	})

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(simulation, appLogger)
	group.Go(func() error {
		hub.Run(ctx)
		return nil
	})
	hub.StartJournalPoller(ctx, actionJournal)

	mux := http.NewServeMux()
	registerRoutes(mux, simulation, actionJournal, journalRepo, hub, appLogger)

	server := &http.Server{Addr: *addr, Handler: mux}

	group.Go(func() error {
		log.Printf("[MAGNATE-SERVER] HTTP API & WS Server listening on %s", *addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	log.Println("[MAGNATE-SERVER] Server running. Press Ctrl+C to exit.")

	if err := group.Wait(); err != nil {
		appLogger.Error("Server stopped with error: " + err.Error())
		os.Exit(1)
	}
	log.Println("[MAGNATE-SERVER] Shutting down...")
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow cross-origin requests for the dev frontend
	},
}

// serveWs handles websocket requests from the peer.
func serveWs(hub *network.Hub, w http.ResponseWriter, r *http.Request, log *logger.Logger) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade websocket connection")
		return
	}

	client := network.NewClient(hub, conn)
	client.Register()

	go client.WritePump()
	go client.ReadPump()
}
