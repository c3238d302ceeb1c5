// Package catalog holds the static definitions of purchasable upgrades and
// narrative events. Definitions are declarative data: effects and
// eligibility rules are tagged variants interpreted by the sim package, so
// the whole catalog is serialisable and testable without executable
// closures.
package catalog

import "github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"

// EffectOp identifies one kind of state mutation.
type EffectOp string

const (
	EffectAddMoney         EffectOp = "add_money"
	EffectAddWorkers       EffectOp = "add_workers"
	EffectMulWorkerEff     EffectOp = "mul_worker_efficiency"
	EffectAddWorkerRate    EffectOp = "add_worker_rate"
	EffectAddSystemRate    EffectOp = "add_system_rate"
	EffectMulAutomationEff EffectOp = "mul_automation_efficiency"
	EffectAddManualRate    EffectOp = "add_manual_rate"
	EffectAddPackageValue  EffectOp = "add_package_value"
	EffectMulPackageValue  EffectOp = "mul_package_value"
	EffectAddMorale        EffectOp = "add_morale"
	EffectAddSatisfaction  EffectOp = "add_satisfaction"
	EffectAddVirtue        EffectOp = "add_virtue"
	EffectAddPerception    EffectOp = "add_perception"
	EffectAddEnvironment   EffectOp = "add_environment"
)

// Effect is one declarative state mutation. Applied by sim.ApplyEffects.
type Effect struct {
	Op    EffectOp `json:"op" yaml:"op"`
	Value float64  `json:"value" yaml:"value"`
}

// Metric identifies a readable field of the company state for eligibility
// checks.
type Metric string

const (
	MetricMoney        Metric = "money"
	MetricEthics       Metric = "ethics_score"
	MetricWorkers      Metric = "worker_count"
	MetricPackages     Metric = "packages_shipped"
	MetricPerception   Metric = "public_perception"
	MetricEnvironment  Metric = "environmental_impact"
	MetricMorale       Metric = "worker_morale"
	MetricSatisfaction Metric = "customer_satisfaction"
	MetricVirtue       Metric = "corporate_virtue"
	MetricUpgradeCount Metric = "upgrade_count" // Requires Ref
)

// CmpOp is a comparison operator for conditions.
type CmpOp string

const (
	CmpGTE CmpOp = "gte"
	CmpLTE CmpOp = "lte"
	CmpGT  CmpOp = "gt"
	CmpLT  CmpOp = "lt"
)

// Condition is one eligibility predicate. A definition's condition list is
// conjunctive: every condition must hold.
type Condition struct {
	Metric Metric  `json:"metric" yaml:"metric"`
	Ref    string  `json:"ref,omitempty" yaml:"ref,omitempty"` // Upgrade id for upgrade_count
	Op     CmpOp   `json:"op" yaml:"op"`
	Value  float64 `json:"value" yaml:"value"`
}

// Eval reports whether the condition holds against the company state.
// Unknown metrics or operators evaluate to false; a misconfigured gate
// should fail closed, not open.
func (cond Condition) Eval(c *company.Company) bool {
	var actual float64
	switch cond.Metric {
	case MetricMoney:
		actual = c.Money
	case MetricEthics:
		actual = c.EthicsScore
	case MetricWorkers:
		actual = float64(c.WorkerCount)
	case MetricPackages:
		actual = float64(c.TotalPackagesShipped)
	case MetricPerception:
		actual = c.PublicPerception
	case MetricEnvironment:
		actual = c.EnvironmentalImpact
	case MetricMorale:
		actual = c.WorkerMorale
	case MetricSatisfaction:
		actual = c.CustomerSatisfaction
	case MetricVirtue:
		actual = c.CorporateVirtue
	case MetricUpgradeCount:
		actual = float64(c.CountPurchases(cond.Ref))
	default:
		return false
	}

	switch cond.Op {
	case CmpGTE:
		return actual >= cond.Value
	case CmpLTE:
		return actual <= cond.Value
	case CmpGT:
		return actual > cond.Value
	case CmpLT:
		return actual < cond.Value
	}
	return false
}

// EvalAll reports whether every condition in the list holds. An empty or
// nil list always passes.
func EvalAll(conds []Condition, c *company.Company) bool {
	for _, cond := range conds {
		if !cond.Eval(c) {
			return false
		}
	}
	return true
}
