package compatibility

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeywordConfig tunes narrative keyword extraction.
type KeywordConfig struct {
	StopWords []string
	// MinLength is the shortest token kept, in runes.
	MinLength   int
	MaxKeywords int
	// Neutral is returned when either narrative yields no keywords.
	Neutral int
}

var defaultStopWords = []string{
	"about", "above", "after", "again", "against", "also", "because", "been", "before",
	"being", "below", "between", "both", "could", "does", "doing", "down", "during", "each",
	"from", "further", "have", "having", "here", "into", "just", "more", "most", "much",
	"myself", "only", "other", "ourselves", "over", "same", "should", "some", "such",
	"than", "that", "their", "theirs", "them", "themselves", "then", "there", "these",
	"they", "this", "those", "through", "under", "until", "very", "want", "were", "what",
	"when", "where", "which", "while", "whom", "will", "with", "would", "your", "yours",
	"yourself",
}

func DefaultKeywordConfig() KeywordConfig {
	return KeywordConfig{
		StopWords:   defaultStopWords,
		MinLength:   4,
		MaxKeywords: 10,
		Neutral:     50,
	}
}

// KeywordScorer compares two free-text narratives by shared keywords.
// Word order and inflection are ignored.
type KeywordScorer struct {
	stopWords   map[string]struct{}
	minLength   int
	maxKeywords int
	neutral     int
}

func NewKeywordScorer(cfg KeywordConfig) *KeywordScorer {
	stop := make(map[string]struct{}, len(cfg.StopWords))
	for _, w := range cfg.StopWords {
		stop[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return &KeywordScorer{
		stopWords:   stop,
		minLength:   cfg.MinLength,
		maxKeywords: cfg.MaxKeywords,
		neutral:     cfg.Neutral,
	}
}

// Keywords keeps the first MaxKeywords surviving tokens and returns them as
// a set in order of appearance. Duplicates count towards the limit.
func (s *KeywordScorer) Keywords(text string) []string {
	seen := make(map[string]struct{})
	var keywords []string
	survivors := 0

	for _, token := range strings.Fields(strings.ToLower(text)) {
		if s.maxKeywords > 0 && survivors == s.maxKeywords {
			break
		}

		word := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
				return r
			}
			return -1
		}, token)

		if utf8.RuneCountInString(word) < s.minLength {
			continue
		}
		if _, stop := s.stopWords[word]; stop {
			continue
		}

		survivors++
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		keywords = append(keywords, word)
	}

	return keywords
}

// Score returns round(|A∩B| / max(|A|,|B|) * 100), or the neutral score when
// either side has no keywords.
func (s *KeywordScorer) Score(a, b string) int {
	ka, kb := s.Keywords(a), s.Keywords(b)
	if len(ka) == 0 || len(kb) == 0 {
		return s.neutral
	}

	set := make(map[string]struct{}, len(ka))
	for _, w := range ka {
		set[w] = struct{}{}
	}

	shared := 0
	for _, w := range kb {
		if _, ok := set[w]; ok {
			shared++
		}
	}

	denom := max(len(ka), len(kb))
	return clamp(int(math.Round(float64(shared) / float64(denom) * 100)))
}
