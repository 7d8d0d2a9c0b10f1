package matching

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gdugdh24/purposematch/internal/domain"
	"github.com/gdugdh24/purposematch/internal/repository"
)

// Selection is the candidate pool for one requester.
type Selection struct {
	Candidates []*domain.User
	// Existing holds ids of users already matched with the requester.
	Existing map[int]bool
}

// Selector builds the candidate pool for a requester.
type Selector struct {
	users            repository.UserRepository
	matches          repository.MatchRepository
	maxCandidates    int
	requireVerified  bool
	prefilterCountry bool
	logger           *zap.Logger
}

func NewSelector(users repository.UserRepository, matches repository.MatchRepository, cfg Config, logger *zap.Logger) *Selector {
	cfg = cfg.withDefaults()
	return &Selector{
		users:            users,
		matches:          matches,
		maxCandidates:    cfg.MaxCandidates,
		requireVerified:  cfg.RequireVerified,
		prefilterCountry: cfg.PrefilterCountry,
		logger:           logger,
	}
}

// Select returns eligible candidates ordered by id. The pool is capped at
// maxCandidates by the store, so very large user bases are sampled by id order.
func (s *Selector) Select(ctx context.Context, requester *domain.User, includeExisting bool) (*Selection, error) {
	matchedIDs, err := s.matches.GetMatchedUserIDs(ctx, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get existing matches: %w", err)
	}

	existing := make(map[int]bool, len(matchedIDs))
	for _, id := range matchedIDs {
		existing[id] = true
	}

	exclude := []int{requester.ID}
	if !includeExisting {
		exclude = append(exclude, matchedIDs...)
	}

	q := repository.CandidateQuery{
		ExcludeUserIDs:  exclude,
		RequireVerified: s.requireVerified,
		Limit:           s.maxCandidates,
	}
	if s.prefilterCountry && requester.Country != "" {
		q.Country = requester.Country
	}

	users, err := s.users.ListCandidates(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	candidates := make([]*domain.User, 0, len(users))
	for _, u := range users {
		// Skip self
		if u == nil || u.ID == requester.ID {
			continue
		}
		if existing[u.ID] && !includeExisting {
			continue
		}
		if !u.Eligible(s.requireVerified) {
			continue
		}
		// Rows written outside the API may carry unknown enum values.
		if err := u.Purpose.Validate(); err != nil {
			s.logger.Warn("skipping candidate with invalid purpose profile",
				zap.Int("candidate_id", u.ID),
				zap.Error(err),
			)
			continue
		}
		candidates = append(candidates, u)
		if len(candidates) == s.maxCandidates {
			break
		}
	}

	return &Selection{Candidates: candidates, Existing: existing}, nil
}
