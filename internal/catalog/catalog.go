package catalog

import "fmt"

// Catalog bundles the upgrade and event definitions with id lookups.
type Catalog struct {
	Upgrades []UpgradeDefinition
	Events   []EventDefinition

	upgradesByID map[string]*UpgradeDefinition
	eventsByID   map[string]*EventDefinition
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultUpgrades(), defaultEvents())
}

// New builds a catalog from explicit definition slices. Tests use this to
// inject minimal catalogs.
func New(upgrades []UpgradeDefinition, events []EventDefinition) *Catalog {
	c := &Catalog{
		Upgrades:     upgrades,
		Events:       events,
		upgradesByID: make(map[string]*UpgradeDefinition, len(upgrades)),
		eventsByID:   make(map[string]*EventDefinition, len(events)),
	}
	for i := range c.Upgrades {
		c.upgradesByID[c.Upgrades[i].ID] = &c.Upgrades[i]
	}
	for i := range c.Events {
		c.eventsByID[c.Events[i].ID] = &c.Events[i]
	}
	return c
}

// Upgrade returns the definition for the given id, or nil.
func (c *Catalog) Upgrade(id string) *UpgradeDefinition {
	return c.upgradesByID[id]
}

// Event returns the definition for the given id, or nil.
func (c *Catalog) Event(id string) *EventDefinition {
	return c.eventsByID[id]
}

// FindChoice locates a choice by id across all events, returning the owning
// event as well.
func (c *Catalog) FindChoice(choiceID string) (*EventDefinition, *EventChoice) {
	for i := range c.Events {
		ev := &c.Events[i]
		for j := range ev.Choices {
			if ev.Choices[j].ID == choiceID {
				return ev, &ev.Choices[j]
			}
		}
	}
	return nil, nil
}

// Validate checks the catalog for misconfigurations. Problems are returned
// as warnings, not errors: a broken entry degrades to a safe default at
// runtime rather than crashing the simulation.
func (c *Catalog) Validate() []string {
	var warnings []string
	for i := range c.Upgrades {
		u := &c.Upgrades[i]
		if u.BaseCost <= 0 {
			warnings = append(warnings, fmt.Sprintf("upgrade %q: base cost %.2f is not positive", u.ID, u.BaseCost))
		}
		if u.Repeatable && u.PriceScaling <= 0 {
			warnings = append(warnings, fmt.Sprintf("upgrade %q: price scaling %.2f is not positive, treating as 1.0", u.ID, u.PriceScaling))
		}
	}
	for i := range c.Events {
		ev := &c.Events[i]
		if len(ev.Choices) == 0 {
			warnings = append(warnings, fmt.Sprintf("event %q: no choices defined", ev.ID))
		}
	}
	return warnings
}
