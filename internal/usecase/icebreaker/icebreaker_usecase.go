package icebreaker

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gdugdh24/purposematch/internal/domain"
	"github.com/gdugdh24/purposematch/internal/infrastructure/gemini"
	"github.com/gdugdh24/purposematch/internal/repository"
)

const maxIcebreakers = 3

// Generator produces opening lines for a match, e.g. the gemini client.
type Generator interface {
	GenerateIcebreakers(ctx context.Context, from, to gemini.IcebreakerSubject) ([]string, error)
}

type UseCase struct {
	users   repository.UserRepository
	matches repository.MatchRepository
	ai      Generator
	logger  *zap.Logger
}

// NewUseCase builds the use case. A nil ai generator means only the
// built-in openers are used.
func NewUseCase(users repository.UserRepository, matches repository.MatchRepository, ai Generator, logger *zap.Logger) *UseCase {
	return &UseCase{
		users:   users,
		matches: matches,
		ai:      ai,
		logger:  logger,
	}
}

// Generate creates icebreakers that userID could send to the other side of
// the match and stores them on the match.
func (uc *UseCase) Generate(ctx context.Context, userID, matchID int) ([]string, error) {
	match, err := uc.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	otherID, ok := match.GetOtherUserID(userID)
	if !ok {
		return nil, domain.ErrForbidden
	}

	from, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	to, err := uc.users.GetByID(ctx, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get matched user: %w", err)
	}

	icebreakers := uc.generate(ctx, match, from, to)

	if err := uc.matches.UpdateIcebreakers(ctx, match.ID, icebreakers); err != nil {
		return nil, fmt.Errorf("failed to save icebreakers: %w", err)
	}

	return icebreakers, nil
}

func (uc *UseCase) generate(ctx context.Context, match *domain.Match, from, to *domain.User) []string {
	if uc.ai == nil {
		return fallback(from, to)
	}

	icebreakers, err := uc.ai.GenerateIcebreakers(ctx, subjectOf(from, ""), subjectOf(to, match.Narrative))
	if err != nil {
		uc.logger.Warn("ai icebreakers failed, using fallback",
			zap.Int("match_id", match.ID),
			zap.Error(err),
		)
		return fallback(from, to)
	}

	cleaned := make([]string, 0, len(icebreakers))
	for _, s := range icebreakers {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return fallback(from, to)
	}
	if len(cleaned) > maxIcebreakers {
		cleaned = cleaned[:maxIcebreakers]
	}
	return cleaned
}

func subjectOf(u *domain.User, narrative string) gemini.IcebreakerSubject {
	s := gemini.IcebreakerSubject{
		Name:      u.DisplayName,
		Interests: u.Interests,
		Narrative: narrative,
	}
	if u.Purpose != nil {
		s.Purpose = fmt.Sprintf("%s %s", u.Purpose.Archetype.Label(), u.Purpose.Domain.Label())
		if s.Narrative == "" {
			s.Narrative = u.Purpose.Narrative
		}
	}
	return s
}

// fallback builds openers from shared interests first, then the other
// side's purpose, then a generic greeting.
func fallback(from, to *domain.User) []string {
	var out []string

	for _, interest := range sharedInterests(from.Interests, to.Interests) {
		out = append(out, fmt.Sprintf("I noticed we both enjoy %s. How did you get into it?", interest))
		if len(out) == 2 {
			break
		}
	}

	if to.Purpose != nil {
		label := to.Purpose.Domain.Label()
		if from.Purpose != nil && from.Purpose.Domain == to.Purpose.Domain {
			out = append(out, fmt.Sprintf("It's rare to meet someone who cares about %s as much as I do. What drew you to it?", label))
		} else {
			out = append(out, fmt.Sprintf("Your work in %s caught my eye. What are you focused on right now?", label))
		}
	}

	if len(out) < maxIcebreakers {
		out = append(out, "What does a meaningful week look like for you?")
	}
	if len(out) > maxIcebreakers {
		out = out[:maxIcebreakers]
	}
	return out
}

func sharedInterests(a, b []string) []string {
	seen := make(map[string]bool, len(b))
	for _, s := range b {
		seen[strings.ToLower(strings.TrimSpace(s))] = true
	}

	var shared []string
	added := make(map[string]bool)
	for _, s := range a {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || !seen[key] || added[key] {
			continue
		}
		added[key] = true
		shared = append(shared, key)
	}
	return shared
}
