package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/journal"
)

func TestCollectSnapshotsState(t *testing.T) {
	c := company.NewCompany(time.Now())
	c.TotalPackagesShipped = 150
	c.Money = 800
	c.LifetimeEarnings = 2400
	c.WorkerCount = 3
	c.EthicsScore = 45
	c.PurchasedUpgrades = []string{"hire-courier", "hire-courier"}

	jl := journal.NewLog(nil)
	jl.Record(journal.EntryManualShip, "", nil)
	jl.Record(journal.EntryManualShip, "", nil)
	jl.Record(journal.EntryEventTriggered, "courier-strike", nil)

	s := Collect(c, jl)

	assert.Equal(t, int64(150), s.PackagesShipped)
	assert.Equal(t, 800.0, s.Money)
	assert.Equal(t, 2400.0, s.LifetimeEarnings)
	assert.Equal(t, 2, s.UpgradesOwned)
	assert.Equal(t, 2, s.ManualShipments)
	assert.Equal(t, 1, s.EventsTriggered)
	assert.Equal(t, 0, s.ChoicesResolved)
}

func TestCollectNilJournal(t *testing.T) {
	s := Collect(company.NewCompany(time.Now()), nil)
	assert.Equal(t, 0, s.ManualShipments)
}

func TestMilestones(t *testing.T) {
	c := company.NewCompany(time.Now())
	assert.NotContains(t, Collect(c, nil).Milestones, "FIRST_HUNDRED_PACKAGES")

	c.TotalPackagesShipped = 1200
	c.LifetimeEarnings = 5000
	c.EthicsScore = 95
	c.Ending = company.EndingReform

	ms := Collect(c, nil).Milestones
	assert.Contains(t, ms, "FIRST_HUNDRED_PACKAGES")
	assert.Contains(t, ms, "THOUSAND_PACKAGES")
	assert.Contains(t, ms, "FIRST_THOUSAND_EARNED")
	assert.Contains(t, ms, "MODEL_CITIZEN")
	assert.Contains(t, ms, "STORY_COMPLETE")
	assert.NotContains(t, ms, "ON_THIN_ICE")
}
