package sim

import (
	"github.com/AVilaroig/MagnatePaquetes/server/internal/catalog"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
)

// ApplyEffects interprets a list of declarative effects against the company
// state and clamps every bounded field afterwards. Positive money effects
// count toward lifetime earnings; negative ones are spending, not un-earning.
func ApplyEffects(c *company.Company, effects []catalog.Effect) {
	for _, e := range effects {
		switch e.Op {
		case catalog.EffectAddMoney:
			if e.Value > 0 {
				c.LifetimeEarnings += e.Value
			}
			c.Money += e.Value
		case catalog.EffectAddWorkers:
			c.WorkerCount += int(e.Value)
		case catalog.EffectMulWorkerEff:
			c.WorkerEfficiency *= e.Value
		case catalog.EffectAddWorkerRate:
			c.BaseWorkerRate += e.Value
		case catalog.EffectAddSystemRate:
			c.BaseSystemRate += e.Value
		case catalog.EffectMulAutomationEff:
			c.AutomationEfficiency *= e.Value
		case catalog.EffectAddManualRate:
			c.BaseManualRate += e.Value
		case catalog.EffectAddPackageValue:
			c.PackageValue += e.Value
		case catalog.EffectMulPackageValue:
			c.PackageValue *= e.Value
		case catalog.EffectAddMorale:
			c.WorkerMorale += e.Value
		case catalog.EffectAddSatisfaction:
			c.CustomerSatisfaction += e.Value
		case catalog.EffectAddVirtue:
			c.CorporateVirtue += e.Value
		case catalog.EffectAddPerception:
			c.PublicPerception += e.Value
		case catalog.EffectAddEnvironment:
			c.EnvironmentalImpact += e.Value
		}
	}
	c.ClampAll()
}
