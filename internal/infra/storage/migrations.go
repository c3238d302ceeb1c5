package storage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Schema history:
//
//	V1: total_packages_shipped, money, employees (int), corruption
//	    (0-100, higher = worse), upgrades (comma-delimited id string)
//	V2: employees renamed to worker_count; corruption inverted into
//	    ethics_score (higher = better)
//	V3: upgrades re-encoded as the purchased_upgrades JSON array
//	V4: full current company document (morale, satisfaction, virtue,
//	    perception, environment, multipliers, accumulator, ending fields,
//	    lifetime earnings, repeatable instances)
const CurrentSchemaVersion = 4

// migrationStep upgrades a decoded snapshot document by exactly one schema
// version. Steps are pure transforms on the JSON document and are each
// independently unit-testable.
type migrationStep struct {
	from  int
	apply func(doc map[string]interface{}) error
}

var migrationSteps = []migrationStep{
	{from: 1, apply: migrateV1toV2},
	{from: 2, apply: migrateV2toV3},
	{from: 3, apply: migrateV3toV4},
}

// Migrate walks the document from the given schema version up to the
// current one. Applying it to a document already at the current version is
// a no-op, so migration is idempotent.
func Migrate(doc map[string]interface{}, version int) (map[string]interface{}, error) {
	if version < 1 || version > CurrentSchemaVersion {
		return nil, fmt.Errorf("%w: unsupported schema version %d", ErrCorruptData, version)
	}
	for _, step := range migrationSteps {
		if version != step.from {
			continue
		}
		if err := step.apply(doc); err != nil {
			return nil, fmt.Errorf("%w: migrating v%d: %v", ErrCorruptData, step.from, err)
		}
		version = step.from + 1
	}
	return doc, nil
}

// migrateV1toV2 renames employees to worker_count and inverts the
// corruption metric (higher = worse) into the ethics score (higher =
// better). The inversion runs exactly once because this step only fires
// for version 1 documents.
func migrateV1toV2(doc map[string]interface{}) error {
	if v, ok := doc["employees"]; ok {
		doc["worker_count"] = v
		delete(doc, "employees")
	} else {
		doc["worker_count"] = 0
	}

	corruption, ok := doc["corruption"]
	if !ok {
		return fmt.Errorf("missing required legacy field corruption")
	}
	c, ok := toFloat(corruption)
	if !ok {
		return fmt.Errorf("corruption is not a number")
	}
	score := 100 - c
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	doc["ethics_score"] = score
	delete(doc, "corruption")
	return nil
}

// migrateV2toV3 re-encodes the comma-delimited upgrades string as the
// purchased_upgrades array. Empty and non-empty cases must round-trip
// exactly: "" becomes the empty array, never [""].
func migrateV2toV3(doc map[string]interface{}) error {
	raw, ok := doc["upgrades"]
	if !ok {
		doc["purchased_upgrades"] = []interface{}{}
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("upgrades is not a string")
	}
	ids := []interface{}{}
	if s != "" {
		for _, id := range strings.Split(s, ",") {
			ids = append(ids, id)
		}
	}
	doc["purchased_upgrades"] = ids
	delete(doc, "upgrades")
	return nil
}

// migrateV3toV4 fills in every field the older schemas never tracked.
func migrateV3toV4(doc map[string]interface{}) error {
	money, _ := toFloat(doc["money"])

	setDefault(doc, "lifetime_earnings", money)
	setDefault(doc, "worker_efficiency", 1.0)
	setDefault(doc, "worker_morale", 1.0)
	setDefault(doc, "base_manual_rate", 1.0)
	setDefault(doc, "base_worker_rate", 0.5)
	setDefault(doc, "base_system_rate", 0.0)
	setDefault(doc, "automation_efficiency", 1.0)
	setDefault(doc, "accumulator", 0.0)
	setDefault(doc, "package_value", 2.0)
	setDefault(doc, "customer_satisfaction", 1.0)
	setDefault(doc, "corporate_virtue", 0.5)
	setDefault(doc, "public_perception", 50.0)
	setDefault(doc, "environmental_impact", 0.0)
	setDefault(doc, "ethical_choices_made", 0)
	setDefault(doc, "repeatable_instances", []interface{}{})

	ethics, _ := toFloat(doc["ethics_score"])
	if ethics <= 0 {
		setDefault(doc, "ending", "COLLAPSE")
		setDefault(doc, "is_collapsing", true)
	} else {
		setDefault(doc, "ending", "")
		setDefault(doc, "is_collapsing", false)
	}
	return nil
}

func setDefault(doc map[string]interface{}, key string, value interface{}) {
	if _, ok := doc[key]; !ok {
		doc[key] = value
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
