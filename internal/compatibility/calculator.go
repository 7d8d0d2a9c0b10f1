package compatibility

import (
	"fmt"
	"math"
	"time"

	"github.com/gdugdh24/purposematch/internal/domain"
)

// Result holds the sub-scores and the weighted overall score, all in [0,100].
type Result struct {
	DomainScore      int `json:"domain_score"`
	ArchetypeScore   int `json:"archetype_score"`
	ModalityScore    int `json:"modality_score"`
	NarrativeScore   int `json:"narrative_score"`
	DemographicScore int `json:"demographic_score"`
	AgeScore         int `json:"age_score"`
	OverallScore     int `json:"overall_score"`
}

// Calculator scores a pair of users. It is safe for concurrent use.
type Calculator struct {
	weights         Weights
	matrices        Matrices
	keywords        *KeywordScorer
	educationLevels map[string]int
	now             func() time.Time
}

type Option func(*Calculator)

func WithWeights(w Weights) Option {
	return func(c *Calculator) {
		c.weights = w
	}
}

func WithMatrices(m Matrices) Option {
	return func(c *Calculator) {
		c.matrices = m
	}
}

func WithKeywordScorer(s *KeywordScorer) Option {
	return func(c *Calculator) {
		c.keywords = s
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Calculator) {
		c.now = now
	}
}

// WithEducationLevels sets the ordered education ladder, lowest first.
func WithEducationLevels(levels []string) Option {
	return func(c *Calculator) {
		c.educationLevels = indexLevels(levels)
	}
}

func NewCalculator(opts ...Option) (*Calculator, error) {
	c := &Calculator{
		weights:         NarrativeWeights(),
		matrices:        DefaultMatrices(),
		keywords:        NewKeywordScorer(DefaultKeywordConfig()),
		educationLevels: indexLevels(DefaultEducationLevels),
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.weights.Validate(); err != nil {
		return nil, err
	}
	if c.matrices.Domain == nil || c.matrices.Archetype == nil || c.matrices.Modality == nil {
		return nil, fmt.Errorf("compatibility: all matrices are required")
	}
	return c, nil
}

func (c *Calculator) Weights() Weights {
	return c.weights
}

// Calculate scores two users. Missing purpose fields fall back to the matrix
// defaults and missing demographics to neutral values.
func (c *Calculator) Calculate(a, b *domain.User) Result {
	pa, pb := purposeOf(a), purposeOf(b)

	r := Result{
		DomainScore:      clamp(c.matrices.Domain.Score(string(pa.Domain), string(pb.Domain))),
		ArchetypeScore:   clamp(c.matrices.Archetype.Score(string(pa.Archetype), string(pb.Archetype))),
		ModalityScore:    clamp(c.matrices.Modality.Score(string(pa.Modality), string(pb.Modality))),
		NarrativeScore:   clamp(c.keywords.Score(pa.Narrative, pb.Narrative)),
		DemographicScore: clamp(c.demographicScore(a, b)),
		AgeScore:         clamp(ageScore(a, b, c.now())),
	}

	w := c.weights
	overall := w.Domain*float64(r.DomainScore) +
		w.Archetype*float64(r.ArchetypeScore) +
		w.Modality*float64(r.ModalityScore) +
		w.Narrative*float64(r.NarrativeScore) +
		w.Demographics*float64(r.DemographicScore) +
		w.Age*float64(r.AgeScore)
	r.OverallScore = clamp(int(math.Round(overall)))

	return r
}

// CalculateProfiles scores two purpose profiles without demographic context.
func (c *Calculator) CalculateProfiles(a, b domain.PurposeProfile) Result {
	return c.Calculate(&domain.User{Purpose: &a}, &domain.User{Purpose: &b})
}

func purposeOf(u *domain.User) domain.PurposeProfile {
	if u == nil || u.Purpose == nil {
		return domain.PurposeProfile{}
	}
	return *u.Purpose
}

func clamp(v int) int {
	return min(max(v, 0), 100)
}
