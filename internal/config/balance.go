// Package config holds gameplay balance tuning for the simulation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Balance holds the tunable parameters of the simulation. Everything the
// designers argue about lives here; the catalogs hold content, this holds
// numbers.
type Balance struct {
	// Starting conditions
	StartingMoney float64 `yaml:"starting_money" json:"starting_money"`

	// Morale decay when virtue is low (applied per elapsed second,
	// scaled by how far virtue sits below the threshold)
	VirtueMoraleThreshold float64 `yaml:"virtue_morale_threshold" json:"virtue_morale_threshold"`
	MoraleFloor           float64 `yaml:"morale_floor" json:"morale_floor"`
	MoraleDecayRate       float64 `yaml:"morale_decay_rate" json:"morale_decay_rate"`

	// Narrative event pacing
	EventBaseChance     float64 `yaml:"event_base_chance" json:"event_base_chance"`
	EventChanceCap      float64 `yaml:"event_chance_cap" json:"event_chance_cap"`
	EventMinIntervalSec float64 `yaml:"event_min_interval_sec" json:"event_min_interval_sec"`
}

// Default returns the default balance configuration.
func Default() Balance {
	return Balance{
		StartingMoney:         0,
		VirtueMoraleThreshold: 0.3,
		MoraleFloor:           0.2,
		MoraleDecayRate:       0.01,
		EventBaseChance:       0.15,
		EventChanceCap:        0.75,
		EventMinIntervalSec:   90,
	}
}

// Relaxed returns easier pacing for casual play.
func Relaxed() Balance {
	cfg := Default()
	cfg.StartingMoney = 100
	cfg.MoraleDecayRate = 0.005
	cfg.EventBaseChance = 0.1
	cfg.EventMinIntervalSec = 150
	return cfg
}

// Cutthroat returns harder pacing for experienced players.
func Cutthroat() Balance {
	cfg := Default()
	cfg.MoraleDecayRate = 0.02
	cfg.EventBaseChance = 0.25
	cfg.EventChanceCap = 0.9
	cfg.EventMinIntervalSec = 60
	return cfg
}

// LoadFile reads a YAML balance file over the defaults. Missing fields keep
// their default values.
func LoadFile(path string) (Balance, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read balance file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse balance file: %w", err)
	}
	return cfg, nil
}
