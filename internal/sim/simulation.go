package sim

import (
	"math/rand"
	"sync"
	"time"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/catalog"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/config"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/rules"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/journal"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/platform/logger"
)

// Simulation is the central orchestrator. It owns the company state and
// serialises every mutation (tick, purchase, event resolution, load, reset)
// behind one mutex, because the invariants (clamping, accumulator
// extraction, terminal-state priority) assume atomic read-modify-write.
type Simulation struct {
	mu      sync.Mutex
	company *company.Company
	catalog *catalog.Catalog
	balance config.Balance
	events  *EventEngine
	rng     *rand.Rand
	logger  *logger.Logger
	journal *journal.Log
}

// NewSimulation wires up the engines. The random source is injected for
// deterministic replay; the journal may be nil for headless runs.
func NewSimulation(cat *catalog.Catalog, bal config.Balance, rng *rand.Rand, jl *journal.Log, log *logger.Logger, now time.Time) *Simulation {
	for _, warning := range cat.Validate() {
		log.Warn("Catalog misconfiguration: " + warning)
	}

	c := company.NewCompany(now)
	c.Money = bal.StartingMoney

	return &Simulation{
		company: c,
		catalog: cat,
		balance: bal,
		events:  NewEventEngine(cat, now),
		rng:     rng,
		logger:  log,
		journal: jl,
	}
}

// AdvanceTick advances the accrual clock to now. Returns the number of
// whole packages shipped by this tick.
func (s *Simulation) AdvanceTick(now time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Advance(s.company, now, s.balance)
}

// ShipPackage performs one manual ship action.
func (s *Simulation) ShipPackage() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	shipped := ShipManual(s.company)
	if shipped > 0 && s.journal != nil {
		s.journal.Record(journal.EntryManualShip, "", map[string]int64{"shipped": shipped})
	}
	return shipped
}

// CheckForEvent rolls for a narrative event trigger. Returns the triggered
// event, or nil.
func (s *Simulation) CheckForEvent(now time.Time) *catalog.EventDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.events.CheckForTrigger(s.company, now, s.rng, s.balance)
	if ev != nil {
		s.logger.Event("EVENT_TRIGGERED", ev.ID, ev.Title)
		if s.journal != nil {
			s.journal.Record(journal.EntryEventTriggered, ev.ID, map[string]string{"title": ev.Title, "category": string(ev.Category)})
		}
	}
	return ev
}

// PurchaseUpgrade buys the upgrade with the given id at time now. Returns
// ErrUnknownUpgrade, ErrNotEligible or ErrInsufficientFunds without
// touching state; on success the price is deducted, effects applied and
// the ending predicates re-evaluated.
func (s *Simulation) PurchaseUpgrade(id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	def := s.catalog.Upgrade(id)
	if def == nil {
		return ErrUnknownUpgrade
	}
	price, misconfigured := PriceFor(def, s.company.CountPurchases(id))
	if misconfigured {
		s.logger.Warn("Upgrade " + id + " has a non-positive price scaling factor, charging base cost")
	}
	if err := purchase(s.company, def, price, now); err != nil {
		return err
	}

	s.logger.Event("UPGRADE_PURCHASED", id, def.Name)
	if s.journal != nil {
		s.journal.Record(journal.EntryPurchase, id, map[string]float64{"price": price})
	}
	s.resolveEndingLocked()
	return nil
}

// ResolveEventChoice resolves the active narrative event with the given
// choice id.
func (s *Simulation) ResolveEventChoice(choiceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.events.Active()
	choice, err := s.events.ResolveChoice(s.company, choiceID)
	if err != nil {
		return err
	}

	s.logger.Event("CHOICE_RESOLVED", choiceID, active.Title)
	if s.journal != nil {
		s.journal.Record(journal.EntryChoiceResolved, choiceID, map[string]string{"event_id": active.ID, "text": choice.Text})
	}
	s.resolveEndingLocked()
	return nil
}

// ResetSimulation reinitialises the whole company to defaults. This is the
// only way back to an ongoing game once an ending has been reached.
func (s *Simulation) ResetSimulation(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.company = company.NewCompany(now)
	s.company.Money = s.balance.StartingMoney
	s.events.Reset(now)

	s.logger.Info("Simulation reset to defaults")
	if s.journal != nil {
		s.journal.Record(journal.EntryReset, "", nil)
	}
}

// resolveEndingLocked re-evaluates the ending predicates and journals a
// transition. Caller must hold the lock.
func (s *Simulation) resolveEndingLocked() {
	ending, changed := rules.ResolveEnding(s.company)
	if changed && ending.Terminal() {
		s.logger.Event("ENDING_REACHED", string(ending), "The empire has found its shape")
		if s.journal != nil {
			s.journal.Record(journal.EntryEndingReached, string(ending), map[string]float64{
				"ethics_score": s.company.EthicsScore,
				"money":        s.company.Money,
			})
		}
	}
}

// State returns a deep copy of the current company state for read-only
// consumers (UI, telemetry, persistence).
func (s *Simulation) State() company.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.company.Clone()
}

// LoadState replaces the company state wholesale, e.g. after a snapshot
// load. Bounded fields are re-clamped defensively.
func (s *Simulation) LoadState(c company.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := c.Clone()
	cp.ClampAll()
	s.company = &cp
	s.events.Reset(cp.LastTick)
}

// CurrentPrice returns the current price of the given upgrade.
func (s *Simulation) CurrentPrice(id string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	def := s.catalog.Upgrade(id)
	if def == nil {
		return 0, ErrUnknownUpgrade
	}
	price, _ := PriceFor(def, s.company.CountPurchases(id))
	return price, nil
}

// IsUpgradeEligible reports whether the upgrade's eligibility gate passes.
func (s *Simulation) IsUpgradeEligible(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	def := s.catalog.Upgrade(id)
	if def == nil {
		return false
	}
	return catalog.EvalAll(def.Eligibility, s.company)
}

// IsEventEligible reports whether the event's eligibility gate passes right
// now. This does not consider cooldown or the active slot, only the gate.
func (s *Simulation) IsEventEligible(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	def := s.catalog.Event(id)
	if def == nil {
		return false
	}
	return catalog.EvalAll(def.Eligibility, s.company)
}

// IsChoiceEligible reports whether the given choice of the active event can
// currently be resolved.
func (s *Simulation) IsChoiceEligible(choiceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.events.Active()
	if active == nil {
		return false
	}
	for i := range active.Choices {
		if active.Choices[i].ID == choiceID {
			return catalog.EvalAll(active.Choices[i].Eligibility, s.company)
		}
	}
	return false
}

// ActiveEvent returns the active narrative event, or nil.
func (s *Simulation) ActiveEvent() *catalog.EventDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.Active()
}

// Catalog exposes the static catalog for query/UI use.
func (s *Simulation) Catalog() *catalog.Catalog {
	return s.catalog
}
