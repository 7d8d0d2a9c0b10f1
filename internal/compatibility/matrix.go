package compatibility

import (
	"fmt"
	"strings"
)

const (
	// IdentityScore is returned for two identical values.
	IdentityScore = 100

	DefaultDomainScore    = 40
	DefaultArchetypeScore = 50
	DefaultModalityScore  = 50
)

// Entry declares the score of one unordered pair of values.
type Entry struct {
	A, B  string
	Score int
}

type pairKey struct {
	a, b string
}

// Matrix is an immutable symmetric lookup table of pair scores.
type Matrix struct {
	fallback int
	scores   map[pairKey]int
}

// NewMatrix builds a matrix from static entries. It panics on malformed data:
// empty values, self pairs, scores outside [0,100] or a pair declared twice
// with different scores.
func NewMatrix(name string, fallback int, entries []Entry) *Matrix {
	if fallback < 0 || fallback > 100 {
		panic(fmt.Sprintf("compatibility: %s matrix fallback %d out of range", name, fallback))
	}

	m := &Matrix{
		fallback: fallback,
		scores:   make(map[pairKey]int, len(entries)),
	}

	for _, e := range entries {
		a, b := normalizeValue(e.A), normalizeValue(e.B)
		switch {
		case a == "" || b == "":
			panic(fmt.Sprintf("compatibility: %s matrix has an entry with an empty value", name))
		case a == b:
			panic(fmt.Sprintf("compatibility: %s matrix declares self pair %s", name, a))
		case e.Score < 0 || e.Score > 100:
			panic(fmt.Sprintf("compatibility: %s matrix score %d for %s/%s out of range", name, e.Score, a, b))
		}
		if existing, ok := m.lookup(a, b); ok && existing != e.Score {
			panic(fmt.Sprintf("compatibility: %s matrix declares %s/%s twice (%d and %d)", name, a, b, existing, e.Score))
		}
		m.scores[pairKey{a, b}] = e.Score
	}

	return m
}

// Score returns the compatibility of two values. Identical values score 100,
// unknown or missing pairs get the matrix fallback.
func (m *Matrix) Score(a, b string) int {
	a, b = normalizeValue(a), normalizeValue(b)
	if a == "" || b == "" {
		return m.fallback
	}
	if a == b {
		return IdentityScore
	}
	if score, ok := m.lookup(a, b); ok {
		return score
	}
	return m.fallback
}

func (m *Matrix) lookup(a, b string) (int, bool) {
	if score, ok := m.scores[pairKey{a, b}]; ok {
		return score, true
	}
	score, ok := m.scores[pairKey{b, a}]
	return score, ok
}

func normalizeValue(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

// Matrices groups the three lookup tables used by the calculator.
type Matrices struct {
	Domain    *Matrix
	Archetype *Matrix
	Modality  *Matrix
}

// DefaultMatrices returns the built-in relation tables.
func DefaultMatrices() Matrices {
	return Matrices{
		Domain:    domainMatrix,
		Archetype: archetypeMatrix,
		Modality:  modalityMatrix,
	}
}
