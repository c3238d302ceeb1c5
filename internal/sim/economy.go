package sim

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/catalog"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/rules"
)

// PriceFor computes the current price of an upgrade given how many times it
// was already purchased. Non-repeatable upgrades cost their base price.
// A non-positive scaling factor is a catalog misconfiguration: the price is
// computed as if the factor were 1.0 (no growth) and misconfigured=true is
// returned so the caller can log it.
func PriceFor(def *catalog.UpgradeDefinition, timesPurchased int) (price float64, misconfigured bool) {
	if !def.Repeatable {
		return def.BaseCost, false
	}
	factor := def.PriceScaling
	if factor <= 0 {
		return def.BaseCost, true
	}
	return def.BaseCost * math.Pow(factor, float64(timesPurchased)), false
}

// purchase applies one upgrade purchase to the company. Eligibility is
// checked before affordability; both failures leave the state untouched.
// On success the price is deducted, effects and ethics deltas applied, and
// the purchase recorded in the multiset (plus an owned instance for
// repeatable upgrades).
func purchase(c *company.Company, def *catalog.UpgradeDefinition, price float64, now time.Time) error {
	if !catalog.EvalAll(def.Eligibility, c) {
		return ErrNotEligible
	}
	if c.Money < price {
		return ErrInsufficientFunds
	}

	c.Money -= price
	ApplyEffects(c, def.Effects)

	c.PublicPerception += def.PerceptionDelta
	c.EnvironmentalImpact += def.EnvironmentDelta

	c.PurchasedUpgrades = append(c.PurchasedUpgrades, def.ID)
	if def.Repeatable {
		c.RepeatableInstances = append(c.RepeatableInstances, company.UpgradeInstance{
			InstanceID:  uuid.NewString(),
			UpgradeID:   def.ID,
			PurchasedAt: now,
		})
	}

	// The upgrade path amplifies harm: cutting corners compounds.
	rules.ApplyEthicsDelta(c, def.EthicsDelta, true)
	c.ClampAll()
	return nil
}
