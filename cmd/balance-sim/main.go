// Package main - balance-sim
// Headless Monte-Carlo runner for balance tuning. Plays many seeded games
// with scripted player profiles and prints the ending distribution, so a
// balance change can be sanity-checked before shipping it.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/AVilaroig/MagnatePaquetes/server/internal/catalog"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/config"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/domain/company"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/platform/logger"
	"github.com/AVilaroig/MagnatePaquetes/server/internal/sim"
)

// profile decides how the scripted player behaves when money is available.
type profile struct {
	name string
	// buyGreedy prefers ethics-negative upgrades; otherwise prefers
	// ethics-positive ones.
	buyGreedy bool
	// choiceGreedy picks the most profitable event choice; otherwise the
	// most ethical one.
	choiceGreedy bool
	// clicksPerStep manual ship actions per simulated step.
	clicksPerStep int
}

var profiles = []profile{
	{name: "saint", buyGreedy: false, choiceGreedy: false, clicksPerStep: 3},
	{name: "tycoon", buyGreedy: true, choiceGreedy: true, clicksPerStep: 5},
	{name: "pragmatist", buyGreedy: true, choiceGreedy: false, clicksPerStep: 4},
}

func main() {
	var (
		runs    = flag.Int("runs", 200, "games per profile")
		steps   = flag.Int("steps", 2000, "simulated steps per game")
		stepSec = flag.Float64("step-sec", 2.0, "simulated seconds per step")
		seed    = flag.Int64("seed", 42, "base random seed")
		preset  = flag.String("preset", "default", "balance preset: default, relaxed, cutthroat")
	)
	flag.Parse()

	var balance config.Balance
	switch *preset {
	case "relaxed":
		balance = config.Relaxed()
	case "cutthroat":
		balance = config.Cutthroat()
	default:
		balance = config.Default()
	}

	fmt.Println("MAGNATE DEL PAQUETE - BALANCE SIMULATOR")
	fmt.Println("=======================================")
	fmt.Printf("preset=%s runs=%d steps=%d step=%.1fs\n", *preset, *runs, *steps, *stepSec)

	appLogger := logger.NewLogger()

	for _, p := range profiles {
		endings := map[company.Ending]int{}
		var totalPackages, totalMoney float64

		for run := 0; run < *runs; run++ {
			rng := rand.New(rand.NewSource(*seed + int64(run)))
			start := time.Unix(0, 0)
			simulation := sim.NewSimulation(catalog.Default(), balance, rng, nil, appLogger, start)

			clock := start
			step := time.Duration(*stepSec * float64(time.Second))
			for i := 0; i < *steps; i++ {
				clock = clock.Add(step)
				simulation.AdvanceTick(clock)
				simulation.CheckForEvent(clock)
				playStep(simulation, p, rng, clock)
				if simulation.State().Ending.Terminal() {
					break
				}
			}

			final := simulation.State()
			endings[final.Ending]++
			totalPackages += float64(final.TotalPackagesShipped)
			totalMoney += final.Money
		}

		fmt.Printf("\nprofile %-10s ", p.name)
		fmt.Printf("collapse=%3d reform=%3d loop=%3d ongoing=%3d",
			endings[company.EndingCollapse], endings[company.EndingReform],
			endings[company.EndingLoop], endings[company.EndingNone])
		fmt.Printf("  avg_packages=%.0f avg_money=%.0f\n",
			totalPackages/float64(*runs), totalMoney/float64(*runs))
	}
}

// playStep performs one round of scripted decisions.
func playStep(s *sim.Simulation, p profile, rng *rand.Rand, clock time.Time) {
	for i := 0; i < p.clicksPerStep; i++ {
		s.ShipPackage()
	}

	if active := s.ActiveEvent(); active != nil {
		resolveScripted(s, active, p)
	}

	// Buy at most one upgrade per step so early games are not instantly
	// over-capitalised.
	buyScripted(s, p, rng, clock)
}

func resolveScripted(s *sim.Simulation, active *catalog.EventDefinition, p profile) {
	best := ""
	bestScore := -1e18
	for _, choice := range active.Choices {
		if !s.IsChoiceEligible(choice.ID) {
			continue
		}
		score := float64(choice.EthicsDelta)
		if p.choiceGreedy {
			score = moneyScore(choice.Effects)
		}
		if score > bestScore {
			bestScore = score
			best = choice.ID
		}
	}
	if best != "" {
		_ = s.ResolveEventChoice(best)
	}
}

func buyScripted(s *sim.Simulation, p profile, rng *rand.Rand, clock time.Time) {
	state := s.State()
	candidates := []string{}
	for _, def := range s.Catalog().Upgrades {
		if !def.Repeatable && state.HasUpgrade(def.ID) {
			continue
		}
		if !s.IsUpgradeEligible(def.ID) {
			continue
		}
		price, err := s.CurrentPrice(def.ID)
		if err != nil || price > state.Money {
			continue
		}
		if p.buyGreedy && def.EthicsDelta > 0 {
			continue
		}
		if !p.buyGreedy && def.EthicsDelta < 0 {
			continue
		}
		candidates = append(candidates, def.ID)
	}
	if len(candidates) == 0 {
		return
	}
	_ = s.PurchaseUpgrade(candidates[rng.Intn(len(candidates))], clock)
}

func moneyScore(effects []catalog.Effect) float64 {
	total := 0.0
	for _, e := range effects {
		switch e.Op {
		case catalog.EffectAddMoney:
			total += e.Value
		case catalog.EffectAddWorkers:
			total += e.Value * 50
		case catalog.EffectAddWorkerRate, catalog.EffectAddSystemRate:
			total += e.Value * 100
		}
	}
	return total
}
