package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/catalog"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
)

func TestApplyEffectsMoneyAndLifetime(t *testing.T) {
	c := company.NewCompany(time.Now())
	c.Money = 100

	ApplyEffects(c, []catalog.Effect{{Op: catalog.EffectAddMoney, Value: 50}})
	assert.Equal(t, 150.0, c.Money)
	assert.Equal(t, 50.0, c.LifetimeEarnings)

	ApplyEffects(c, []catalog.Effect{{Op: catalog.EffectAddMoney, Value: -30}})
	assert.Equal(t, 120.0, c.Money)
	assert.Equal(t, 50.0, c.LifetimeEarnings, "spending does not un-earn")
}

func TestApplyEffectsMultipliers(t *testing.T) {
	c := company.NewCompany(time.Now())

	ApplyEffects(c, []catalog.Effect{
		{Op: catalog.EffectMulWorkerEff, Value: 1.25},
		{Op: catalog.EffectMulAutomationEff, Value: 1.5},
		{Op: catalog.EffectMulPackageValue, Value: 2},
	})

	assert.InDelta(t, 1.25, c.WorkerEfficiency, 1e-9)
	assert.InDelta(t, 1.5, c.AutomationEfficiency, 1e-9)
	assert.InDelta(t, 4.0, c.PackageValue, 1e-9)
}

func TestApplyEffectsClampAfterwards(t *testing.T) {
	c := company.NewCompany(time.Now())
	c.WorkerMorale = 0.1

	ApplyEffects(c, []catalog.Effect{
		{Op: catalog.EffectAddMorale, Value: -0.5},
		{Op: catalog.EffectAddPerception, Value: 500},
	})

	assert.Equal(t, 0.0, c.WorkerMorale)
	assert.Equal(t, 100.0, c.PublicPerception)
}

func TestApplyEffectsWorkerRemoval(t *testing.T) {
	c := company.NewCompany(time.Now())
	c.WorkerCount = 1

	ApplyEffects(c, []catalog.Effect{{Op: catalog.EffectAddWorkers, Value: -3}})

	assert.Equal(t, 0, c.WorkerCount, "workforce never goes negative")
}

func TestApplyEffectsUnknownOpIgnored(t *testing.T) {
	c := company.NewCompany(time.Now())
	before := c.Clone()

	ApplyEffects(c, []catalog.Effect{{Op: "summon_dragon", Value: 1}})

	assert.Equal(t, before.Money, c.Money)
	assert.Equal(t, before.WorkerCount, c.WorkerCount)
}
