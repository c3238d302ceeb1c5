package sim

import (
	"math"
	"time"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/config"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
)

// Advance converts the wall time elapsed since the last tick into shipped
// packages and revenue. The fractional remainder carries over in the
// accumulator; whole packages are extracted every call, so calling once
// with dt or twice with dt/2 ships the same totals.
//
// Zero or negative elapsed time (clock skew, duplicate calls) only refreshes
// the tick timestamp. The function is pure given (c, now, bal): no hidden
// clock reads.
func Advance(c *company.Company, now time.Time, bal config.Balance) (shipped int64) {
	elapsed := now.Sub(c.LastTick).Seconds()
	c.LastTick = now
	if elapsed <= 0 {
		return 0
	}

	effectiveRate := c.BaseWorkerRate*float64(c.WorkerCount)*c.WorkerEfficiency +
		c.BaseSystemRate*c.AutomationEfficiency
	c.Accumulator += effectiveRate * elapsed

	whole := math.Floor(c.Accumulator)
	if whole > 0 {
		c.Accumulator -= whole
		shipped = int64(whole)
		c.TotalPackagesShipped += shipped
		revenue := whole * c.PackageValue * (0.5 + 0.5*c.CustomerSatisfaction)
		c.Money += revenue
		c.LifetimeEarnings += revenue
	}

	// Low corporate virtue erodes morale continuously until it reaches the
	// floor below which workers are too resigned to care.
	if c.CorporateVirtue < bal.VirtueMoraleThreshold && c.WorkerMorale > bal.MoraleFloor {
		c.WorkerMorale -= elapsed * (bal.VirtueMoraleThreshold - c.CorporateVirtue) * bal.MoraleDecayRate
		if c.WorkerMorale < bal.MoraleFloor {
			c.WorkerMorale = bal.MoraleFloor
		}
	}

	c.ClampAll()
	return shipped
}

// ShipManual performs one manual ship action: the player's own hands on the
// tape gun. Production goes through the same accumulator so fractional
// manual rates carry over too.
func ShipManual(c *company.Company) (shipped int64) {
	c.Accumulator += c.BaseManualRate
	whole := math.Floor(c.Accumulator)
	if whole > 0 {
		c.Accumulator -= whole
		shipped = int64(whole)
		c.TotalPackagesShipped += shipped
		revenue := whole * c.PackageValue * (0.5 + 0.5*c.CustomerSatisfaction)
		c.Money += revenue
		c.LifetimeEarnings += revenue
	}
	c.ClampAll()
	return shipped
}
