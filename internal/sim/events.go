package sim

import (
	"math/rand"
	"time"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/catalog"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/config"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/rules"
)

// EventEngine manages narrative event lifecycle: Idle -> Active -> Idle,
// with at most one active event at a time.
type EventEngine struct {
	catalog     *catalog.Catalog
	active      *catalog.EventDefinition
	lastEventAt time.Time
}

// NewEventEngine creates an idle engine. startedAt anchors the first
// cooldown window.
func NewEventEngine(cat *catalog.Catalog, startedAt time.Time) *EventEngine {
	return &EventEngine{
		catalog:     cat,
		lastEventAt: startedAt,
	}
}

// Active returns the currently active event, or nil.
func (e *EventEngine) Active() *catalog.EventDefinition {
	return e.active
}

// CheckForTrigger rolls for a narrative event. No-op while an event is
// active, the company is collapsing, or the cooldown window has not
// elapsed. The trigger chance grows with time since the last event, capped
// by the balance config; a single uniform sample decides. When the roll
// succeeds but no event is eligible the roll is wasted; eligibility
// scarcity is the natural throttle.
//
// The random source is injected so tests and replays are deterministic.
func (e *EventEngine) CheckForTrigger(c *company.Company, now time.Time, rng *rand.Rand, bal config.Balance) *catalog.EventDefinition {
	if e.active != nil || c.IsCollapsing {
		return nil
	}
	elapsed := now.Sub(e.lastEventAt).Seconds()
	if elapsed < bal.EventMinIntervalSec {
		return nil
	}

	chance := bal.EventBaseChance * (elapsed / bal.EventMinIntervalSec)
	if chance > bal.EventChanceCap {
		chance = bal.EventChanceCap
	}
	if rng.Float64() >= chance {
		return nil
	}

	var eligible []*catalog.EventDefinition
	for i := range e.catalog.Events {
		ev := &e.catalog.Events[i]
		if catalog.EvalAll(ev.Eligibility, c) {
			eligible = append(eligible, ev)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	e.active = eligible[rng.Intn(len(eligible))]
	e.lastEventAt = now
	return e.active
}

// ResolveChoice applies the given choice of the active event. Choice-level
// eligibility is re-checked before anything commits, so an unaffordable
// choice surfaces ErrNotEligible instead of silently draining money.
//
// The event path applies the raw ethics delta with no harm amplification,
// unlike the upgrade path.
func (e *EventEngine) ResolveChoice(c *company.Company, choiceID string) (*catalog.EventChoice, error) {
	if e.active == nil {
		return nil, ErrNoActiveEvent
	}
	var choice *catalog.EventChoice
	for i := range e.active.Choices {
		if e.active.Choices[i].ID == choiceID {
			choice = &e.active.Choices[i]
			break
		}
	}
	if choice == nil {
		return nil, ErrUnknownChoice
	}
	if !catalog.EvalAll(choice.Eligibility, c) {
		return nil, ErrNotEligible
	}

	ApplyEffects(c, choice.Effects)
	rules.ApplyEthicsDelta(c, choice.EthicsDelta, false)
	c.ClampAll()

	e.active = nil
	return choice, nil
}

// Reset clears any active event and restarts the cooldown window.
func (e *EventEngine) Reset(now time.Time) {
	e.active = nil
	e.lastEventAt = now
}
