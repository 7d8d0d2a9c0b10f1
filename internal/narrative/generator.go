package narrative

import (
	"fmt"
	"strings"

	"github.com/gdugdh24/purposematch/internal/compatibility"
	"github.com/gdugdh24/purposematch/internal/domain"
)

type Tier string

const (
	TierExceptional Tier = "exceptional"
	TierStrong      Tier = "strong"
	TierGood        Tier = "good"
	TierPromising   Tier = "promising"
)

// TierFor maps an overall score to its narrative tier.
func TierFor(score int) Tier {
	switch {
	case score >= 85:
		return TierExceptional
	case score >= 70:
		return TierStrong
	case score >= 65:
		return TierGood
	default:
		return TierPromising
	}
}

var openers = map[Tier]string{
	TierExceptional: "%s is an exceptional match: your purposes are highly aligned around %s.",
	TierStrong:      "%s is a strong match, with a clear connection through %s.",
	TierGood:        "%s is a good match, sharing common ground in %s.",
	TierPromising:   "%s is a promising connection worth exploring through %s.",
}

const maxSharedInterests = 2

// Generator explains a score in plain language. Output is deterministic.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate describes why candidate was matched with requester.
func (g *Generator) Generate(requester, candidate *domain.User, result compatibility.Result) string {
	sentences := []string{
		fmt.Sprintf(openers[TierFor(result.OverallScore)], displayName(candidate), focusOf(candidate)),
	}

	if p := strings.TrimSpace(candidate.Profession); p != "" {
		sentences = append(sentences, fmt.Sprintf("They bring experience as %s %s.", article(p), p))
	}

	if rp, cp := requester.Purpose, candidate.Purpose; rp != nil && cp != nil && rp.Modality != "" && rp.Modality == cp.Modality {
		sentences = append(sentences, fmt.Sprintf("You both prefer to engage %s.", modalityPhrase(cp.Modality)))
	}

	if loc := sharedLocation(requester, candidate); loc != "" {
		sentences = append(sentences, fmt.Sprintf("You are both based in %s.", loc))
	}

	if shared := sharedInterests(requester.Interests, candidate.Interests); len(shared) > 0 {
		sentences = append(sentences, fmt.Sprintf("You share an interest in %s.", strings.Join(shared, " and ")))
	}

	return strings.Join(sentences, " ")
}

func displayName(u *domain.User) string {
	if name := strings.TrimSpace(u.DisplayName); name != "" {
		return name
	}
	return "This member"
}

func focusOf(u *domain.User) string {
	if u.Purpose == nil || u.Purpose.Domain == "" {
		return "shared values"
	}
	return u.Purpose.Domain.Label()
}

func modalityPhrase(m domain.Modality) string {
	switch m {
	case domain.ModalityOnline, domain.ModalityOffline:
		return m.Label()
	case domain.ModalityOneOnOne:
		return "one on one"
	default:
		return "through " + m.Label()
	}
}

func sharedLocation(a, b *domain.User) string {
	for _, pair := range [][2]string{{a.City, b.City}, {a.State, b.State}, {a.Country, b.Country}} {
		if v := strings.TrimSpace(pair[0]); v != "" && strings.EqualFold(v, strings.TrimSpace(pair[1])) {
			return strings.TrimSpace(pair[1])
		}
	}
	return ""
}

func sharedInterests(a, b []string) []string {
	own := make(map[string]struct{}, len(a))
	for _, i := range a {
		own[strings.ToLower(strings.TrimSpace(i))] = struct{}{}
	}

	var shared []string
	for _, i := range b {
		if _, ok := own[strings.ToLower(strings.TrimSpace(i))]; ok {
			shared = append(shared, strings.TrimSpace(i))
			if len(shared) == maxSharedInterests {
				break
			}
		}
	}
	return shared
}

func article(word string) string {
	if strings.ContainsRune("aeiouAEIOU", []rune(word)[0]) {
		return "an"
	}
	return "a"
}
