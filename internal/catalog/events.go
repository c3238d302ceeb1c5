package catalog

// EventCategory is the closed set of narrative event groupings.
type EventCategory string

const (
	CategoryLabor       EventCategory = "LABOR"
	CategoryPress       EventCategory = "PRESS"
	CategoryEnvironment EventCategory = "ENVIRONMENT"
	CategoryMarket      EventCategory = "MARKET"
	CategoryIncident    EventCategory = "INCIDENT"
)

// EventChoice is one resolution path of a narrative event. Choice-level
// eligibility (typically affordability) is distinct from the event-level
// gate: it is checked again at resolution time.
type EventChoice struct {
	ID          string      `json:"id" yaml:"id"`
	Text        string      `json:"text" yaml:"text"`
	Effects     []Effect    `json:"effects" yaml:"effects"`
	EthicsDelta float64     `json:"ethics_delta" yaml:"ethics_delta"`
	Eligibility []Condition `json:"eligibility,omitempty" yaml:"eligibility,omitempty"`
}

// EventDefinition is one immutable entry in the narrative event catalog.
type EventDefinition struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Category    EventCategory `json:"category" yaml:"category"`
	Choices     []EventChoice `json:"choices" yaml:"choices"`
	Eligibility []Condition   `json:"eligibility,omitempty" yaml:"eligibility,omitempty"`
}

// defaultEvents is the built-in narrative event catalog.
func defaultEvents() []EventDefinition {
	return []EventDefinition{
		{
			ID:       "courier-strike",
			Title:    "The couriers have stopped pedalling",
			Category: CategoryLabor,
			Eligibility: []Condition{
				{Metric: MetricWorkers, Op: CmpGTE, Value: 3},
				{Metric: MetricMorale, Op: CmpLTE, Value: 0.5},
			},
			Choices: []EventChoice{
				{
					ID:   "negotiate",
					Text: "Sit down and negotiate a raise",
					Effects: []Effect{
						{Op: EffectAddMoney, Value: -200},
						{Op: EffectAddMorale, Value: 0.3},
					},
					EthicsDelta: 8,
					Eligibility: []Condition{{Metric: MetricMoney, Op: CmpGTE, Value: 200}},
				},
				{
					ID:   "strikebreakers",
					Text: "Bus in replacement workers",
					Effects: []Effect{
						{Op: EffectAddMorale, Value: -0.2},
						{Op: EffectAddPerception, Value: -10},
					},
					EthicsDelta: -10,
				},
				{
					ID:          "wait-it-out",
					Text:        "Wait. Hunger is a negotiator too",
					Effects:     []Effect{{Op: EffectAddMorale, Value: -0.05}},
					EthicsDelta: -2,
				},
			},
		},
		{
			ID:       "press-expose",
			Title:    "A journalist has the depot footage",
			Category: CategoryPress,
			Eligibility: []Condition{
				{Metric: MetricEthics, Op: CmpLTE, Value: 60},
			},
			Choices: []EventChoice{
				{
					ID:   "come-clean",
					Text: "Publish it yourselves, with an apology",
					Effects: []Effect{
						{Op: EffectAddPerception, Value: -5},
						{Op: EffectAddVirtue, Value: 0.1},
					},
					EthicsDelta: 10,
				},
				{
					ID:   "bribe-editor",
					Text: "The editor has a price",
					Effects: []Effect{
						{Op: EffectAddMoney, Value: -500},
						{Op: EffectAddPerception, Value: 5},
					},
					EthicsDelta: -12,
					Eligibility: []Condition{{Metric: MetricMoney, Op: CmpGTE, Value: 500}},
				},
				{
					ID:          "deny",
					Text:        "Deny everything",
					Effects:     []Effect{{Op: EffectAddPerception, Value: -10}},
					EthicsDelta: -5,
				},
			},
		},
		{
			ID:       "tax-loophole",
			Title:    "An accountant found a very quiet loophole",
			Category: CategoryMarket,
			Eligibility: []Condition{
				{Metric: MetricMoney, Op: CmpGTE, Value: 1000},
			},
			Choices: []EventChoice{
				{
					ID:          "take-it",
					Text:        "Route everything through the shell",
					Effects:     []Effect{{Op: EffectAddMoney, Value: 800}},
					EthicsDelta: -9,
				},
				{
					ID:          "decline",
					Text:        "Pay what is owed",
					EthicsDelta: 6,
				},
			},
		},
		{
			ID:       "viral-unboxing",
			Title:    "A delivery video is everywhere",
			Category: CategoryMarket,
			Choices: []EventChoice{
				{
					ID:   "lean-in",
					Text: "Reply with the official account, ship merch",
					Effects: []Effect{
						{Op: EffectAddSatisfaction, Value: 0.1},
						{Op: EffectAddPerception, Value: 10},
					},
				},
				{
					ID:   "ignore",
					Text: "The internet forgets by Thursday",
				},
			},
		},
		{
			ID:       "inspector-visit",
			Title:    "A safety inspector is in the lobby",
			Category: CategoryIncident,
			Choices: []EventChoice{
				{
					ID:   "comply",
					Text: "Open every door, fix every finding",
					Effects: []Effect{
						{Op: EffectAddMoney, Value: -300},
						{Op: EffectAddEnvironment, Value: -5},
					},
					EthicsDelta: 5,
					Eligibility: []Condition{{Metric: MetricMoney, Op: CmpGTE, Value: 300}},
				},
				{
					ID:   "cut-corners",
					Text: "Show the good warehouse. Only the good warehouse",
					Effects: []Effect{
						{Op: EffectAddEnvironment, Value: 10},
					},
					EthicsDelta: -8,
				},
			},
		},
		{
			ID:       "river-spill",
			Title:    "Packaging foam is floating down the river",
			Category: CategoryEnvironment,
			Eligibility: []Condition{
				{Metric: MetricEnvironment, Op: CmpGTE, Value: 40},
			},
			Choices: []EventChoice{
				{
					ID:   "fund-cleanup",
					Text: "Fund the cleanup, on camera and off",
					Effects: []Effect{
						{Op: EffectAddMoney, Value: -600},
						{Op: EffectAddEnvironment, Value: -20},
						{Op: EffectAddPerception, Value: 5},
					},
					EthicsDelta: 9,
					Eligibility: []Condition{{Metric: MetricMoney, Op: CmpGTE, Value: 600}},
				},
				{
					ID:   "cover-up",
					Text: "Foam is biodegradable if nobody tests it",
					Effects: []Effect{
						{Op: EffectAddPerception, Value: -5},
					},
					EthicsDelta: -15,
				},
			},
		},
		{
			ID:       "charity-telethon",
			Title:    "The telethon wants a headline sponsor",
			Category: CategoryPress,
			Eligibility: []Condition{
				{Metric: MetricPerception, Op: CmpLTE, Value: 70},
			},
			Choices: []EventChoice{
				{
					ID:   "sponsor",
					Text: "Sponsor it, no logo on the ambulances",
					Effects: []Effect{
						{Op: EffectAddMoney, Value: -400},
						{Op: EffectAddPerception, Value: 15},
					},
					EthicsDelta: 4,
					Eligibility: []Condition{{Metric: MetricMoney, Op: CmpGTE, Value: 400}},
				},
				{
					ID:   "fake-pledge",
					Text: "Pledge on air, pay in exposure",
					Effects: []Effect{
						{Op: EffectAddPerception, Value: 10},
					},
					EthicsDelta: -10,
				},
			},
		},
		{
			ID:       "rival-poaching",
			Title:    "A rival is poaching your best couriers",
			Category: CategoryLabor,
			Eligibility: []Condition{
				{Metric: MetricWorkers, Op: CmpGTE, Value: 2},
			},
			Choices: []EventChoice{
				{
					ID:   "raise-wages",
					Text: "Match the offer across the board",
					Effects: []Effect{
						{Op: EffectAddMoney, Value: -250},
						{Op: EffectAddMorale, Value: 0.2},
					},
					EthicsDelta: 3,
					Eligibility: []Condition{{Metric: MetricMoney, Op: CmpGTE, Value: 250}},
				},
				{
					ID:   "let-them-go",
					Text: "Loyalty is free. Let the rest prove it",
					Effects: []Effect{
						{Op: EffectAddWorkers, Value: -1},
						{Op: EffectAddMorale, Value: -0.1},
					},
				},
			},
		},
	}
}
