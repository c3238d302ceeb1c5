// Package telemetry derives reporting figures from the live company state
// and the action journal. Everything here is pull-based and read-only; the
// HTTP layer serves it as-is.
package telemetry

import (
	"time"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/journal"
)

// Stats is the aggregate report handed to the /api/telemetry endpoint.
type Stats struct {
	GeneratedAt time.Time `json:"generated_at"`

	PackagesShipped  int64   `json:"packages_shipped"`
	Money            float64 `json:"money"`
	LifetimeEarnings float64 `json:"lifetime_earnings"`
	WorkerCount      int     `json:"worker_count"`

	EthicsScore        float64 `json:"ethics_score"`
	EthicalChoicesMade int     `json:"ethical_choices_made"`
	PublicPerception   float64 `json:"public_perception"`
	Environmental      float64 `json:"environmental_impact"`

	UpgradesOwned   int    `json:"upgrades_owned"`
	RepeatBuys      int    `json:"repeat_buys"`
	EventsTriggered int    `json:"events_triggered"`
	ChoicesResolved int    `json:"choices_resolved"`
	ManualShipments int    `json:"manual_shipments"`
	Resets          int    `json:"resets"`
	Ending          string `json:"ending"`
	IsCollapsing    bool   `json:"is_collapsing"`

	Milestones []string `json:"milestones"`
}

// Collect builds a report from the current state and journal history.
func Collect(c *company.Company, jl *journal.Log) Stats {
	s := Stats{
		GeneratedAt:        time.Now(),
		PackagesShipped:    c.TotalPackagesShipped,
		Money:              c.Money,
		LifetimeEarnings:   c.LifetimeEarnings,
		WorkerCount:        c.WorkerCount,
		EthicsScore:        c.EthicsScore,
		EthicalChoicesMade: c.EthicalChoicesMade,
		PublicPerception:   c.PublicPerception,
		Environmental:      c.EnvironmentalImpact,
		UpgradesOwned:      len(c.PurchasedUpgrades),
		RepeatBuys:         len(c.RepeatableInstances),
		Ending:             string(c.Ending),
		IsCollapsing:       c.IsCollapsing,
		Milestones:         milestones(c),
	}
	if jl != nil {
		s.EventsTriggered = len(jl.GetByType(journal.EntryEventTriggered))
		s.ChoicesResolved = len(jl.GetByType(journal.EntryChoiceResolved))
		s.ManualShipments = len(jl.GetByType(journal.EntryManualShip))
		s.Resets = len(jl.GetByType(journal.EntryReset))
	}
	return s
}

// milestones names the thresholds the company has crossed so far. They are
// recomputed on every call rather than tracked, so a reset naturally clears
// them.
func milestones(c *company.Company) []string {
	ms := []string{}
	if c.TotalPackagesShipped >= 100 {
		ms = append(ms, "FIRST_HUNDRED_PACKAGES")
	}
	if c.TotalPackagesShipped >= 1000 {
		ms = append(ms, "THOUSAND_PACKAGES")
	}
	if c.LifetimeEarnings >= 1000 {
		ms = append(ms, "FIRST_THOUSAND_EARNED")
	}
	if c.WorkerCount >= 10 {
		ms = append(ms, "DOUBLE_DIGIT_WORKFORCE")
	}
	if c.EthicsScore >= 90 {
		ms = append(ms, "MODEL_CITIZEN")
	}
	if c.EthicsScore <= 20 && c.EthicsScore > 0 {
		ms = append(ms, "ON_THIN_ICE")
	}
	if c.EthicalChoicesMade >= 5 {
		ms = append(ms, "CONSCIENCE_AWAKENED")
	}
	if c.Ending.Terminal() {
		ms = append(ms, "STORY_COMPLETE")
	}
	return ms
}
