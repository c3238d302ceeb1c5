package catalog

// UpgradeDefinition is one immutable entry in the upgrade catalog.
type UpgradeDefinition struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	BaseCost    float64 `json:"base_cost" yaml:"base_cost"`
	Repeatable  bool    `json:"repeatable" yaml:"repeatable"`
	// PriceScaling is the geometric factor applied per repeat purchase.
	// Must be > 0; 1.0 for non-repeatable upgrades.
	PriceScaling     float64     `json:"price_scaling" yaml:"price_scaling"`
	Effects          []Effect    `json:"effects" yaml:"effects"`
	EthicsDelta      float64     `json:"ethics_delta" yaml:"ethics_delta"`
	PerceptionDelta  float64     `json:"perception_delta" yaml:"perception_delta"`
	EnvironmentDelta float64     `json:"environment_delta" yaml:"environment_delta"`
	Eligibility      []Condition `json:"eligibility,omitempty" yaml:"eligibility,omitempty"`
}

// defaultUpgrades is the built-in upgrade catalog.
func defaultUpgrades() []UpgradeDefinition {
	return []UpgradeDefinition{
		{
			ID:           "hire-courier",
			Name:         "Hire Courier",
			Description:  "Another pair of legs on the street.",
			BaseCost:     50,
			Repeatable:   true,
			PriceScaling: 1.4,
			Effects:      []Effect{{Op: EffectAddWorkers, Value: 1}},
		},
		{
			ID:           "premium-packaging",
			Name:         "Premium Packaging",
			Description:  "Thicker boxes, happier customers, higher margins.",
			BaseCost:     300,
			PriceScaling: 1.0,
			Effects: []Effect{
				{Op: EffectAddPackageValue, Value: 0.5},
				{Op: EffectAddSatisfaction, Value: 0.1},
			},
		},
		{
			ID:               "route-optimizer",
			Name:             "Route Optimizer",
			Description:      "Software plans the vans. The vans obey.",
			BaseCost:         350,
			PriceScaling:     1.0,
			Effects:          []Effect{{Op: EffectAddSystemRate, Value: 1}},
			EnvironmentDelta: 5,
		},
		{
			ID:               "diesel-fleet",
			Name:             "Diesel Fleet Expansion",
			Description:      "Cheap, loud and dirty. Ships today.",
			BaseCost:         500,
			Repeatable:       true,
			PriceScaling:     1.5,
			Effects:          []Effect{{Op: EffectAddSystemRate, Value: 3}},
			EthicsDelta:      -6,
			EnvironmentDelta: 15,
		},
		{
			ID:               "electric-fleet",
			Name:             "Electric Fleet Conversion",
			Description:      "Quieter streets, cleaner air, slower amortisation.",
			BaseCost:         2500,
			PriceScaling:     1.0,
			Effects:          []Effect{{Op: EffectAddSystemRate, Value: 2}},
			EthicsDelta:      5,
			PerceptionDelta:  5,
			EnvironmentDelta: -10,
			Eligibility: []Condition{
				{Metric: MetricUpgradeCount, Ref: "diesel-fleet", Op: CmpGTE, Value: 1},
			},
		},
		{
			ID:           "automation-core",
			Name:         "Automation Core",
			Description:  "The sorting hall no longer needs the lights on.",
			BaseCost:     1500,
			PriceScaling: 1.0,
			Effects:      []Effect{{Op: EffectMulAutomationEff, Value: 1.5}},
			Eligibility: []Condition{
				{Metric: MetricUpgradeCount, Ref: "route-optimizer", Op: CmpGTE, Value: 1},
			},
		},
		{
			ID:           "overtime-mandate",
			Name:         "Mandatory Overtime",
			Description:  "The shift ends when the belt is empty.",
			BaseCost:     200,
			PriceScaling: 1.0,
			Effects: []Effect{
				{Op: EffectMulWorkerEff, Value: 1.25},
				{Op: EffectAddMorale, Value: -0.15},
			},
			EthicsDelta:     -8,
			PerceptionDelta: -5,
		},
		{
			ID:           "gig-reclassification",
			Name:         "Gig Reclassification",
			Description:  "They were never employees. Legal says so now.",
			BaseCost:     600,
			PriceScaling: 1.0,
			Effects: []Effect{
				{Op: EffectMulWorkerEff, Value: 1.15},
				{Op: EffectAddMorale, Value: -0.2},
				{Op: EffectAddVirtue, Value: -0.15},
			},
			EthicsDelta:     -12,
			PerceptionDelta: -10,
		},
		{
			ID:           "surveillance-scanners",
			Name:         "Wearable Surveillance Scanners",
			Description:  "Every second of every shift, measured.",
			BaseCost:     700,
			PriceScaling: 1.0,
			Effects: []Effect{
				{Op: EffectMulWorkerEff, Value: 1.2},
				{Op: EffectAddMorale, Value: -0.1},
			},
			EthicsDelta:     -10,
			PerceptionDelta: -5,
		},
		{
			ID:           "union-recognition",
			Name:         "Union Recognition",
			Description:  "Sit down at the table before the table is flipped.",
			BaseCost:     800,
			PriceScaling: 1.0,
			Effects: []Effect{
				{Op: EffectAddMorale, Value: 0.25},
				{Op: EffectAddVirtue, Value: 0.2},
				{Op: EffectMulWorkerEff, Value: 0.9},
			},
			EthicsDelta: 10,
			Eligibility: []Condition{
				{Metric: MetricWorkers, Op: CmpGTE, Value: 5},
			},
		},
		{
			ID:           "morale-program",
			Name:         "Courier Wellbeing Program",
			Description:  "Actual breaks. Actual chairs.",
			BaseCost:     350,
			PriceScaling: 1.0,
			Effects: []Effect{
				{Op: EffectAddMorale, Value: 0.3},
				{Op: EffectAddVirtue, Value: 0.1},
			},
			EthicsDelta: 2,
		},
		{
			ID:              "ad-blitz",
			Name:            "Ad Blitz",
			Description:     "Smiling couriers on every billboard.",
			BaseCost:        250,
			Repeatable:      true,
			PriceScaling:    1.3,
			Effects:         []Effect{{Op: EffectAddSatisfaction, Value: 0.05}},
			PerceptionDelta: 10,
		},
		{
			ID:              "greenwash-campaign",
			Name:            "Greenwash Campaign",
			Description:     "The leaves on the logo are bigger now.",
			BaseCost:        400,
			PriceScaling:    1.0,
			EthicsDelta:     -5,
			PerceptionDelta: 15,
			Eligibility: []Condition{
				{Metric: MetricEnvironment, Op: CmpGTE, Value: 30},
			},
		},
		{
			ID:               "solar-depots",
			Name:             "Solar Depots",
			Description:      "Panels on every roof the company owns.",
			BaseCost:         1200,
			PriceScaling:     1.0,
			Effects:          []Effect{{Op: EffectAddVirtue, Value: 0.1}},
			EthicsDelta:      4,
			EnvironmentDelta: -15,
		},
		{
			ID:              "charity-fund",
			Name:            "Community Charity Fund",
			Description:     "A percentage, published and audited.",
			BaseCost:        500,
			Repeatable:      true,
			PriceScaling:    2.0,
			Effects:         []Effect{{Op: EffectAddVirtue, Value: 0.1}},
			EthicsDelta:     6,
			PerceptionDelta: 8,
		},
	}
}
