package compatibility

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidWeights = errors.New("invalid weights")

const weightTolerance = 1e-6

// Weights sets how much each sub-score contributes to the overall score.
type Weights struct {
	Domain       float64
	Archetype    float64
	Modality     float64
	Narrative    float64
	Demographics float64
	Age          float64
}

const (
	PresetNarrative   = "narrative"
	PresetDemographic = "demographic"
)

// NarrativeWeights scores purpose and narrative only. This is the default.
func NarrativeWeights() Weights {
	return Weights{Domain: 0.40, Archetype: 0.30, Modality: 0.20, Narrative: 0.10}
}

// DemographicWeights scores purpose together with demographics and age.
func DemographicWeights() Weights {
	return Weights{Domain: 0.35, Archetype: 0.25, Modality: 0.20, Demographics: 0.10, Age: 0.10}
}

// WeightsByPreset resolves a preset name from configuration.
func WeightsByPreset(name string) (Weights, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetNarrative:
		return NarrativeWeights(), nil
	case PresetDemographic:
		return DemographicWeights(), nil
	default:
		return Weights{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidWeights, name)
	}
}

func (w Weights) Sum() float64 {
	return w.Domain + w.Archetype + w.Modality + w.Narrative + w.Demographics + w.Age
}

// Validate requires non-negative weights summing to 1.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"domain":       w.Domain,
		"archetype":    w.Archetype,
		"modality":     w.Modality,
		"narrative":    w.Narrative,
		"demographics": w.Demographics,
		"age":          w.Age,
	} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s weight is %v", ErrInvalidWeights, name, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, want 1", ErrInvalidWeights, sum)
	}
	return nil
}
