package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsDiffer(t *testing.T) {
	def := Default()
	relaxed := Relaxed()
	cutthroat := Cutthroat()

	assert.Greater(t, relaxed.EventMinIntervalSec, def.EventMinIntervalSec)
	assert.Less(t, cutthroat.EventMinIntervalSec, def.EventMinIntervalSec)
	assert.Greater(t, cutthroat.EventChanceCap, def.EventChanceCap)
}

func TestLoadFilePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("starting_money: 500\nevent_base_chance: 0.3\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 500.0, cfg.StartingMoney)
	assert.Equal(t, 0.3, cfg.EventBaseChance)
	// Unset fields keep their defaults.
	assert.Equal(t, Default().MoraleFloor, cfg.MoraleFloor)
	assert.Equal(t, Default().EventMinIntervalSec, cfg.EventMinIntervalSec)
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
	assert.Equal(t, Default(), cfg, "errors still hand back usable defaults")
}

func TestLoadFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("starting_money: [not a number"), 0644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
