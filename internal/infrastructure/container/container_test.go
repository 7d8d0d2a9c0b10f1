package container

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdugdh24/purposematch/internal/compatibility"
	"github.com/gdugdh24/purposematch/internal/config"
)

func TestNewCalculator_UsesPreset(t *testing.T) {
	calc, err := newCalculator(&config.MatchingConfig{WeightPreset: compatibility.PresetDemographic})
	require.NoError(t, err)
	assert.Equal(t, compatibility.DemographicWeights(), calc.Weights())

	_, err = newCalculator(&config.MatchingConfig{WeightPreset: "unknown"})
	assert.Error(t, err)
}

func TestNewCalculator_CustomWeightsOverridePreset(t *testing.T) {
	custom := compatibility.Weights{Domain: 0.5, Archetype: 0.5}
	calc, err := newCalculator(&config.MatchingConfig{
		WeightPreset:  compatibility.PresetDemographic,
		CustomWeights: &custom,
	})
	require.NoError(t, err)
	assert.Equal(t, custom, calc.Weights())
}

func TestMatchingConfig(t *testing.T) {
	got := matchingConfig(&config.MatchingConfig{
		DefaultLimit:   10,
		MaxLimit:       50,
		MinScore:       60,
		Timeout:        5 * time.Second,
		MaxRetries:     -1,
		RetryBaseDelay: 20 * time.Millisecond,
	})

	assert.Equal(t, 60, got.MinScore)
	assert.Equal(t, 5*time.Second, got.Timeout)
	assert.Zero(t, got.MaxRetries)
	assert.Equal(t, 20*time.Millisecond, got.RetryBaseDelay)
}

func TestClose_Empty(t *testing.T) {
	assert.NoError(t, (&Container{}).Close())
}
