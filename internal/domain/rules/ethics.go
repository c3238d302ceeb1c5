// Package rules contains the pure calculation logic for the ethics and
// ending mechanics. This package is PURE and must NOT import any
// infrastructure packages.
package rules

import "github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"

// HarmAmplification is applied to ethics deltas that worsen the score.
// Unethical shortcuts compound faster than remediation.
const HarmAmplification = 1.5

// Ending thresholds. Collapse always wins; Reform and Loop are checked in
// that order so ties resolve deterministically.
const (
	ReformMinChoices = 5
	ReformMinEthics  = 50.0
	ReformMinMoney   = 1000.0
	LoopMinEthics    = 70.0
	LoopMaxEthics    = 90.0
	LoopMinMoney     = 2000.0
	LoopMinPackages  = 1000
)

// AmplifyHarm returns the effective ethics delta for the upgrade path:
// worsening deltas (negative) are amplified, improving deltas apply at
// face value.
func AmplifyHarm(delta float64) float64 {
	if delta < 0 {
		return delta * HarmAmplification
	}
	return delta
}

// ApplyEthicsDelta mutates the company's ethics score. When amplifyHarm is
// true (upgrade path) negative deltas are scaled by HarmAmplification; the
// event-choice path passes false and applies the raw delta. An improving
// raw delta also increments EthicalChoicesMade; the return value reports
// whether that happened.
func ApplyEthicsDelta(c *company.Company, delta float64, amplifyHarm bool) (improved bool) {
	effective := delta
	if amplifyHarm {
		effective = AmplifyHarm(delta)
	}
	c.EthicsScore += effective
	if c.EthicsScore < 0 {
		c.EthicsScore = 0
	}
	if c.EthicsScore > 100 {
		c.EthicsScore = 100
	}
	if delta > 0 {
		c.EthicalChoicesMade++
	}
	return delta > 0
}

// EvaluateEnding returns the ending the company should be in right now,
// honouring monotonicity: a terminal ending never reverts to None, and
// Collapse permanently overrides Reform and Loop if its predicate is ever
// satisfied afterwards.
func EvaluateEnding(c *company.Company) company.Ending {
	if c.Ending == company.EndingCollapse {
		return company.EndingCollapse
	}
	if c.EthicsScore <= 0 {
		return company.EndingCollapse
	}
	if c.Ending.Terminal() {
		return c.Ending
	}
	if c.EthicalChoicesMade >= ReformMinChoices && c.EthicsScore >= ReformMinEthics && c.Money >= ReformMinMoney {
		return company.EndingReform
	}
	if c.EthicsScore >= LoopMinEthics && c.EthicsScore <= LoopMaxEthics &&
		c.Money >= LoopMinMoney && c.TotalPackagesShipped >= LoopMinPackages {
		return company.EndingLoop
	}
	return company.EndingNone
}

// ResolveEnding evaluates the ending predicates and commits the result to
// the company. Returns the new ending and whether it changed.
func ResolveEnding(c *company.Company) (company.Ending, bool) {
	next := EvaluateEnding(c)
	changed := next != c.Ending
	c.Ending = next
	if next == company.EndingCollapse {
		c.IsCollapsing = true
	}
	return next, changed
}
