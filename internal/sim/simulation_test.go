package sim

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/catalog"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/config"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/journal"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/platform/logger"
)

func newTestSimulation(t *testing.T, bal config.Balance) (*Simulation, *journal.Log) {
	t.Helper()
	jl := journal.NewLog(nil)
	rng := rand.New(rand.NewSource(1))
	return NewSimulation(catalog.Default(), bal, rng, jl, logger.NewLogger(), time.Unix(1000, 0)), jl
}

func TestSimulationStartingMoney(t *testing.T) {
	bal := config.Default()
	bal.StartingMoney = 250
	s, _ := newTestSimulation(t, bal)

	assert.Equal(t, 250.0, s.State().Money)
}

func TestSimulationPurchaseFlow(t *testing.T) {
	s, jl := newTestSimulation(t, config.Default())

	err := s.PurchaseUpgrade("warp-drive", time.Unix(1001, 0))
	assert.ErrorIs(t, err, ErrUnknownUpgrade)

	err = s.PurchaseUpgrade("hire-courier", time.Unix(1001, 0))
	assert.ErrorIs(t, err, ErrInsufficientFunds, "starting money cannot afford a courier")

	// Earn enough by clicking.
	for i := 0; i < 30; i++ {
		s.ShipPackage()
	}
	require.NoError(t, s.PurchaseUpgrade("hire-courier", time.Unix(1001, 0)))

	state := s.State()
	assert.Equal(t, 1, state.WorkerCount)
	assert.Equal(t, 1, state.CountPurchases("hire-courier"))
	assert.Equal(t, 1, len(jl.GetByType(journal.EntryPurchase)))

	price, err := s.CurrentPrice("hire-courier")
	require.NoError(t, err)
	assert.InDelta(t, 70.0, price, 1e-9, "second courier costs base * 1.4")
}

func TestSimulationRepeatPricing(t *testing.T) {
	bal := config.Default()
	bal.StartingMoney = 10000
	s, _ := newTestSimulation(t, bal)

	require.NoError(t, s.PurchaseUpgrade("hire-courier", time.Unix(1001, 0))) // 50
	require.NoError(t, s.PurchaseUpgrade("hire-courier", time.Unix(1001, 0))) // 70

	price, err := s.CurrentPrice("hire-courier")
	require.NoError(t, err)
	assert.InDelta(t, 98.0, price, 1e-9)

	state := s.State()
	assert.InDelta(t, 10000-50-70, state.Money, 1e-9)
	assert.Len(t, state.RepeatableInstances, 2)
}

func TestSimulationPurchaseUsesInjectedClock(t *testing.T) {
	bal := config.Default()
	bal.StartingMoney = 10000
	s, _ := newTestSimulation(t, bal)

	when := time.Unix(4242, 0)
	require.NoError(t, s.PurchaseUpgrade("hire-courier", when))

	state := s.State()
	require.Len(t, state.RepeatableInstances, 1)
	assert.True(t, state.RepeatableInstances[0].PurchasedAt.Equal(when),
		"purchase timestamp comes from the caller's clock")
}

func TestSimulationCollapseEnding(t *testing.T) {
	evil := catalog.New([]catalog.UpgradeDefinition{
		{
			ID:           "shortcut",
			Name:         "Shortcut",
			BaseCost:     1,
			Repeatable:   true,
			PriceScaling: 1.0,
			EthicsDelta:  -20,
		},
	}, nil)
	bal := config.Default()
	bal.StartingMoney = 100
	jl := journal.NewLog(nil)
	s := NewSimulation(evil, bal, rand.New(rand.NewSource(1)), jl, logger.NewLogger(), time.Unix(1000, 0))

	// 100 ethics, each purchase costs 20*1.5 = 30 amplified.
	for i := 0; i < 4; i++ {
		require.NoError(t, s.PurchaseUpgrade("shortcut", time.Unix(1001, 0)))
	}

	state := s.State()
	assert.Equal(t, company.EndingCollapse, state.Ending)
	assert.True(t, state.IsCollapsing)
	require.Len(t, jl.GetByType(journal.EntryEndingReached), 1)
	assert.Equal(t, "COLLAPSE", jl.GetByType(journal.EntryEndingReached)[0].Subject)

	// No event can trigger once collapsing.
	assert.Nil(t, s.CheckForEvent(time.Unix(1000, 0).Add(time.Hour)))
}

func TestSimulationEndingRecordedOnce(t *testing.T) {
	evil := catalog.New([]catalog.UpgradeDefinition{
		{ID: "shortcut", Name: "Shortcut", BaseCost: 1, Repeatable: true, PriceScaling: 1.0, EthicsDelta: -50},
	}, nil)
	bal := config.Default()
	bal.StartingMoney = 100
	jl := journal.NewLog(nil)
	s := NewSimulation(evil, bal, rand.New(rand.NewSource(1)), jl, logger.NewLogger(), time.Unix(1000, 0))

	require.NoError(t, s.PurchaseUpgrade("shortcut", time.Unix(1001, 0)))
	require.NoError(t, s.PurchaseUpgrade("shortcut", time.Unix(1001, 0)))
	require.NoError(t, s.PurchaseUpgrade("shortcut", time.Unix(1001, 0)))

	assert.Len(t, jl.GetByType(journal.EntryEndingReached), 1, "the transition journals once, not per purchase")
}

func TestSimulationReset(t *testing.T) {
	bal := config.Default()
	bal.StartingMoney = 10000
	s, jl := newTestSimulation(t, bal)

	require.NoError(t, s.PurchaseUpgrade("hire-courier", time.Unix(1001, 0)))
	s.ShipPackage()
	s.ResetSimulation(time.Unix(2000, 0))

	state := s.State()
	assert.Equal(t, 10000.0, state.Money)
	assert.Equal(t, 0, state.WorkerCount)
	assert.Equal(t, int64(0), state.TotalPackagesShipped)
	assert.Equal(t, 100.0, state.EthicsScore)
	assert.Empty(t, state.PurchasedUpgrades)
	assert.Len(t, jl.GetByType(journal.EntryReset), 1)
}

func TestSimulationLoadStateClampsAndClearsEvents(t *testing.T) {
	s, _ := newTestSimulation(t, config.Default())

	loaded := *company.NewCompany(time.Unix(5000, 0))
	loaded.EthicsScore = 250 // Out of range on purpose
	loaded.Money = -10
	s.LoadState(loaded)

	state := s.State()
	assert.Equal(t, 100.0, state.EthicsScore)
	assert.Equal(t, 0.0, state.Money)
	assert.Nil(t, s.ActiveEvent())
}

func TestSimulationManualShipJournaled(t *testing.T) {
	s, jl := newTestSimulation(t, config.Default())

	s.ShipPackage()

	assert.Equal(t, int64(1), s.State().TotalPackagesShipped)
	assert.Len(t, jl.GetByType(journal.EntryManualShip), 1)
}

func TestSimulationAdvanceTick(t *testing.T) {
	bal := config.Default()
	bal.StartingMoney = 10000
	s, _ := newTestSimulation(t, bal)
	require.NoError(t, s.PurchaseUpgrade("hire-courier", time.Unix(1001, 0)))
	require.NoError(t, s.PurchaseUpgrade("hire-courier", time.Unix(1001, 0)))

	shipped := s.AdvanceTick(time.Unix(1000, 0).Add(5 * time.Second))

	assert.Equal(t, int64(5), shipped, "2 workers * 0.5/s over 5s")
}
