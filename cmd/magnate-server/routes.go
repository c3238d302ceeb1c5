package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/infra/storage"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/journal"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/network"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/platform/logger"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/platform/metrics"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/sim"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/telemetry"
)

// upgradeView is the per-upgrade listing the frontend renders in the shop.
type upgradeView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Repeatable  bool    `json:"repeatable"`
	Owned       int     `json:"owned"`
	Eligible    bool    `json:"eligible"`
	Affordable  bool    `json:"affordable"`
}

func registerRoutes(mux *http.ServeMux, simulation *sim.Simulation, jl *journal.Log, journalRepo *storage.SQLiteJournalRepository, hub *network.Hub, appLogger *logger.Logger) {
	writeJSON := func(w http.ResponseWriter, v interface{}) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}
	writeError := func(w http.ResponseWriter, msg string, code int) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "message": msg})
	}
	requirePost := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return false
		}
		return true
	}

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(hub, w, r, appLogger)
	})

	mux.HandleFunc("/api/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, simulation.State())
	})

	mux.HandleFunc("/api/ship", func(w http.ResponseWriter, r *http.Request) {
		if !requirePost(w, r) {
			return
		}
		shipped := simulation.ShipPackage()
		writeJSON(w, map[string]interface{}{"status": "ok", "shipped": shipped})
	})

	mux.HandleFunc("/api/upgrades", func(w http.ResponseWriter, r *http.Request) {
		state := simulation.State()
		views := []upgradeView{}
		for _, def := range simulation.Catalog().Upgrades {
			price, _ := simulation.CurrentPrice(def.ID)
			views = append(views, upgradeView{
				ID:          def.ID,
				Name:        def.Name,
				Description: def.Description,
				Price:       price,
				Repeatable:  def.Repeatable,
				Owned:       state.CountPurchases(def.ID),
				Eligible:    simulation.IsUpgradeEligible(def.ID),
				Affordable:  state.Money >= price,
			})
		}
		writeJSON(w, views)
	})

	mux.HandleFunc("/api/purchase", func(w http.ResponseWriter, r *http.Request) {
		if !requirePost(w, r) {
			return
		}
		var req struct {
			UpgradeID string `json:"upgrade_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UpgradeID == "" {
			writeError(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if err := simulation.PurchaseUpgrade(req.UpgradeID, time.Now()); err != nil {
			writeError(w, err.Error(), purchaseStatusCode(err))
			return
		}
		metrics.Get().RecordPurchase()
		writeJSON(w, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/api/event", func(w http.ResponseWriter, r *http.Request) {
		active := simulation.ActiveEvent()
		if active == nil {
			writeJSON(w, map[string]interface{}{"active": false})
			return
		}
		writeJSON(w, map[string]interface{}{"active": true, "event": active})
	})

	mux.HandleFunc("/api/event/choose", func(w http.ResponseWriter, r *http.Request) {
		if !requirePost(w, r) {
			return
		}
		var req struct {
			ChoiceID string `json:"choice_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChoiceID == "" {
			writeError(w, "invalid payload", http.StatusBadRequest)
			return
		}
		if err := simulation.ResolveEventChoice(req.ChoiceID); err != nil {
			writeError(w, err.Error(), purchaseStatusCode(err))
			return
		}
		metrics.Get().RecordChoiceResolved()
		writeJSON(w, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		if !requirePost(w, r) {
			return
		}
		simulation.ResetSimulation(time.Now())
		writeJSON(w, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/api/telemetry", func(w http.ResponseWriter, r *http.Request) {
		state := simulation.State()
		writeJSON(w, telemetry.Collect(&state, jl))
	})

	mux.HandleFunc("/api/journal", func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}
		records, err := journalRepo.List(r.Context(), limit)
		if err != nil {
			writeError(w, "journal unavailable", http.StatusInternalServerError)
			return
		}
		writeJSON(w, records)
	})

	mux.HandleFunc("/metrics", metrics.Handler())
	mux.HandleFunc("/metrics/prometheus", metrics.PrometheusHandler())
}

// purchaseStatusCode maps simulation sentinel errors to HTTP status codes.
func purchaseStatusCode(err error) int {
	switch err {
	case sim.ErrUnknownUpgrade, sim.ErrUnknownChoice, sim.ErrNoActiveEvent:
		return http.StatusNotFound
	case sim.ErrInsufficientFunds, sim.ErrNotEligible:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
