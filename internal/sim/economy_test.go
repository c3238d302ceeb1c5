package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/catalog"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
)

func TestPriceForGeometricScaling(t *testing.T) {
	def := &catalog.UpgradeDefinition{ID: "hire-courier", BaseCost: 50, Repeatable: true, PriceScaling: 1.4}

	p0, mis := PriceFor(def, 0)
	assert.False(t, mis)
	assert.InDelta(t, 50, p0, 1e-9)

	p1, _ := PriceFor(def, 1)
	assert.InDelta(t, 70, p1, 1e-9)

	p2, _ := PriceFor(def, 2)
	assert.InDelta(t, 98, p2, 1e-9)
}

func TestPriceForNonRepeatableIgnoresCount(t *testing.T) {
	def := &catalog.UpgradeDefinition{ID: "one-shot", BaseCost: 300, PriceScaling: 1.0}

	price, mis := PriceFor(def, 5)
	assert.False(t, mis)
	assert.Equal(t, 300.0, price)
}

func TestPriceForNonPositiveScaling(t *testing.T) {
	def := &catalog.UpgradeDefinition{ID: "broken", BaseCost: 100, Repeatable: true, PriceScaling: 0}

	price, mis := PriceFor(def, 3)
	assert.True(t, mis)
	assert.Equal(t, 100.0, price, "misconfigured scaling degrades to flat pricing")
}

func TestPurchaseInsufficientFundsLeavesStateUntouched(t *testing.T) {
	c := company.NewCompany(time.Now())
	c.Money = 10
	before := c.Clone()
	def := catalog.Default().Upgrade("hire-courier")

	err := purchase(c, def, 50, time.Now())

	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, before.Money, c.Money)
	assert.Equal(t, before.WorkerCount, c.WorkerCount)
	assert.Empty(t, c.PurchasedUpgrades)
}

func TestPurchaseIneligibleLeavesStateUntouched(t *testing.T) {
	c := company.NewCompany(time.Now())
	c.Money = 10000
	// electric-fleet requires at least one diesel-fleet purchase.
	def := catalog.Default().Upgrade("electric-fleet")

	err := purchase(c, def, def.BaseCost, time.Now())

	require.ErrorIs(t, err, ErrNotEligible)
	assert.Equal(t, 10000.0, c.Money)
}

func TestPurchaseAppliesEffectsAndDeltas(t *testing.T) {
	c := company.NewCompany(time.Now())
	c.Money = 100
	def := catalog.Default().Upgrade("hire-courier")

	err := purchase(c, def, 50, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 50.0, c.Money)
	assert.Equal(t, 1, c.WorkerCount)
	assert.Equal(t, []string{"hire-courier"}, c.PurchasedUpgrades)
	require.Len(t, c.RepeatableInstances, 1)
	assert.Equal(t, "hire-courier", c.RepeatableInstances[0].UpgradeID)
	assert.NotEmpty(t, c.RepeatableInstances[0].InstanceID)
}

func TestPurchaseAmplifiesNegativeEthics(t *testing.T) {
	c := company.NewCompany(time.Now())
	c.Money = 1000
	c.EthicsScore = 50
	def := catalog.Default().Upgrade("overtime-mandate") // EthicsDelta -8

	err := purchase(c, def, def.BaseCost, time.Now())

	require.NoError(t, err)
	assert.InDelta(t, 38.0, c.EthicsScore, 1e-9, "-8 amplified by 1.5")
}

func TestPurchasePositiveEthicsUnamplified(t *testing.T) {
	c := company.NewCompany(time.Now())
	c.Money = 1000
	c.WorkerCount = 5
	c.EthicsScore = 40
	def := catalog.Default().Upgrade("union-recognition") // EthicsDelta +10

	err := purchase(c, def, def.BaseCost, time.Now())

	require.NoError(t, err)
	assert.InDelta(t, 50.0, c.EthicsScore, 1e-9)
	assert.Equal(t, 1, c.EthicalChoicesMade)
}

func TestPurchaseNonRepeatableHasNoInstance(t *testing.T) {
	c := company.NewCompany(time.Now())
	c.Money = 1000
	def := catalog.Default().Upgrade("premium-packaging")

	err := purchase(c, def, def.BaseCost, time.Now())

	require.NoError(t, err)
	assert.Empty(t, c.RepeatableInstances)
	assert.True(t, c.HasUpgrade("premium-packaging"))
}
