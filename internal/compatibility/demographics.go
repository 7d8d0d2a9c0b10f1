package compatibility

import (
	"strings"
	"time"

	"github.com/gdugdh24/purposematch/internal/domain"
)

// DefaultEducationLevels is the education ladder, lowest first.
var DefaultEducationLevels = []string{"HIGH_SCHOOL", "DIPLOMA", "BACHELORS", "MASTERS", "DOCTORATE"}

const (
	demographicBase = 70
	ageBase         = 80
)

func (c *Calculator) demographicScore(a, b *domain.User) int {
	if a == nil || b == nil {
		return demographicBase
	}

	score := demographicBase

	ra, rb := normalizeValue(a.Religion), normalizeValue(b.Religion)
	switch {
	case ra == "" || rb == "":
	case ra == rb:
		score += 20
	default:
		score -= 10
	}

	ea, okA := c.educationLevels[normalizeLevel(a.EducationLevel)]
	eb, okB := c.educationLevels[normalizeLevel(b.EducationLevel)]
	if okA && okB {
		switch gap := abs(ea - eb); {
		case gap == 0:
			score += 10
		case gap == 1:
			score += 6
		case gap == 2:
			score += 2
		default:
			score -= 5
		}
	}

	// only the most specific shared location counts
	switch {
	case sameValue(a.City, b.City):
		score += 15
	case sameValue(a.State, b.State):
		score += 10
	case sameValue(a.Country, b.Country):
		score += 5
	}

	return score
}

func ageScore(a, b *domain.User, now time.Time) int {
	if a == nil || b == nil || !a.HasAge() || !b.HasAge() {
		return ageBase
	}

	switch diff := abs(a.Age(now) - b.Age(now)); {
	case diff <= 3:
		return ageBase + 20
	case diff <= 5:
		return ageBase + 10
	case diff > 10:
		return ageBase - 10
	default:
		return ageBase
	}
}

func sameValue(a, b string) bool {
	a, b = normalizeValue(a), normalizeValue(b)
	return a != "" && a == b
}

func indexLevels(levels []string) map[string]int {
	idx := make(map[string]int, len(levels))
	for i, l := range levels {
		idx[normalizeLevel(l)] = i
	}
	return idx
}

func normalizeLevel(v string) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(normalizeValue(v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
