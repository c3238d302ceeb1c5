// Package company defines the core domain entity for the delivery empire.
// This package is PURE and must NOT import any infrastructure packages (network, journal, platform).
package company

import "time"

// Ending represents the terminal outcome of a playthrough.
type Ending string

const (
	EndingNone     Ending = ""         // Still playing
	EndingCollapse Ending = "COLLAPSE" // Ethics hit zero; the empire rots from within
	EndingReform   Ending = "REFORM"   // Profitable AND principled
	EndingLoop     Ending = "LOOP"     // Comfortable stagnation; the machine keeps running
)

// Terminal reports whether the ending is one of the final states.
func (e Ending) Terminal() bool {
	return e != EndingNone
}

// UpgradeInstance is one concrete purchase of a repeatable upgrade.
// Each purchase gets its own identity so individual instances can be
// tracked (and, eventually, sold back or revoked by an event).
type UpgradeInstance struct {
	InstanceID  string    `json:"instance_id"`
	UpgradeID   string    `json:"upgrade_id"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// Company represents the full mutable state of the player's delivery empire.
// There is exactly one logical writer; the sim package serialises all
// mutations behind its own lock.
type Company struct {
	// Counters
	TotalPackagesShipped int64   `json:"total_packages_shipped"`
	Money                float64 `json:"money"`             // Never observably negative
	LifetimeEarnings     float64 `json:"lifetime_earnings"` // Cumulative money earned, for telemetry

	// Workforce
	WorkerCount      int     `json:"worker_count"`
	WorkerEfficiency float64 `json:"worker_efficiency"` // > 0
	WorkerMorale     float64 `json:"worker_morale"`     // 0..1

	// Production
	BaseManualRate       float64 `json:"base_manual_rate"`      // Packages per manual ship action
	BaseWorkerRate       float64 `json:"base_worker_rate"`      // Packages per worker per second
	BaseSystemRate       float64 `json:"base_system_rate"`      // Packages per second from automation
	AutomationEfficiency float64 `json:"automation_efficiency"` // > 0
	Accumulator          float64 `json:"accumulator"`           // Fractional packages not yet shipped, always < 1

	// Commerce
	PackageValue         float64 `json:"package_value"`
	CustomerSatisfaction float64 `json:"customer_satisfaction"` // 0..1

	// Ethics
	EthicsScore         float64 `json:"ethics_score"`         // 0 (collapse) .. 100 (integrity)
	CorporateVirtue     float64 `json:"corporate_virtue"`     // 0..1
	PublicPerception    float64 `json:"public_perception"`    // 0..100
	EnvironmentalImpact float64 `json:"environmental_impact"` // 0..100, higher = worse

	// Progress
	EthicalChoicesMade  int               `json:"ethical_choices_made"`
	PurchasedUpgrades   []string          `json:"purchased_upgrades"` // Multiset; repeats allowed for repeatable upgrades
	RepeatableInstances []UpgradeInstance `json:"repeatable_instances"`

	// Terminal state
	IsCollapsing bool   `json:"is_collapsing"`
	Ending       Ending `json:"ending"`

	LastTick time.Time `json:"last_tick"`
}

// NewCompany creates a fresh company with default starting stats.
func NewCompany(now time.Time) *Company {
	return &Company{
		TotalPackagesShipped: 0,
		Money:                0,
		WorkerCount:          0,
		WorkerEfficiency:     1.0,
		WorkerMorale:         1.0,
		BaseManualRate:       1.0,
		BaseWorkerRate:       0.5,
		BaseSystemRate:       0,
		AutomationEfficiency: 1.0,
		Accumulator:          0,
		PackageValue:         2.0,
		CustomerSatisfaction: 1.0,
		EthicsScore:          100,
		CorporateVirtue:      0.5,
		PublicPerception:     50,
		EnvironmentalImpact:  0,
		EthicalChoicesMade:   0,
		PurchasedUpgrades:    []string{},
		RepeatableInstances:  []UpgradeInstance{},
		IsCollapsing:         false,
		Ending:               EndingNone,
		LastTick:             now,
	}
}

// CountPurchases returns how many times the given upgrade id appears in the
// purchase multiset.
func (c *Company) CountPurchases(upgradeID string) int {
	n := 0
	for _, id := range c.PurchasedUpgrades {
		if id == upgradeID {
			n++
		}
	}
	return n
}

// HasUpgrade reports whether the upgrade was purchased at least once.
func (c *Company) HasUpgrade(upgradeID string) bool {
	return c.CountPurchases(upgradeID) > 0
}

// ClampAll forces every bounded field back into its legal range.
// Called after every mutation that can push a field out of range.
func (c *Company) ClampAll() {
	if c.Money < 0 {
		c.Money = 0
	}
	if c.WorkerCount < 0 {
		c.WorkerCount = 0
	}
	if c.WorkerEfficiency <= 0 {
		c.WorkerEfficiency = 0.01
	}
	if c.AutomationEfficiency <= 0 {
		c.AutomationEfficiency = 0.01
	}
	if c.PackageValue < 0 {
		c.PackageValue = 0
	}
	if c.BaseManualRate < 0 {
		c.BaseManualRate = 0
	}
	if c.BaseWorkerRate < 0 {
		c.BaseWorkerRate = 0
	}
	if c.BaseSystemRate < 0 {
		c.BaseSystemRate = 0
	}
	c.WorkerMorale = clamp(c.WorkerMorale, 0, 1)
	c.CustomerSatisfaction = clamp(c.CustomerSatisfaction, 0, 1)
	c.CorporateVirtue = clamp(c.CorporateVirtue, 0, 1)
	c.EthicsScore = clamp(c.EthicsScore, 0, 100)
	c.PublicPerception = clamp(c.PublicPerception, 0, 100)
	c.EnvironmentalImpact = clamp(c.EnvironmentalImpact, 0, 100)
}

// Clone returns a deep copy for read-only snapshots handed to the host/UI.
func (c *Company) Clone() Company {
	cp := *c
	cp.PurchasedUpgrades = append([]string(nil), c.PurchasedUpgrades...)
	cp.RepeatableInstances = append([]UpgradeInstance(nil), c.RepeatableInstances...)
	return cp
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
