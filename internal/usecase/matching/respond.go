package matching

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gdugdh24/purposematch/internal/domain"
)

// Respond records a like or reject from one side of a match. Two likes
// accept the match, a single reject closes it.
func (s *Service) Respond(ctx context.Context, userID, matchID int, action domain.MatchAction) (*domain.Match, error) {
	if !action.IsValid() {
		return nil, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, action)
	}

	var wasAccepted bool
	match, err := s.matches.UpdateMatch(ctx, matchID, func(m *domain.Match) error {
		if !m.HasUser(userID) {
			return domain.ErrForbidden
		}
		wasAccepted = m.Status == domain.MatchStatusAccepted
		return m.SetAction(userID, action)
	})
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update match: %w", err)
	}
	s.recorder.ObserveResponse(string(action))

	s.logger.Info("match response recorded",
		zap.Int("match_id", match.ID),
		zap.Int("user_id", userID),
		zap.String("action", string(action)),
		zap.String("status", string(match.Status)),
	)

	if match.Status == domain.MatchStatusAccepted && !wasAccepted {
		s.publish(ctx, domain.MatchEvent{
			Type:       domain.MatchEventAccepted,
			UserID:     userID,
			MatchIDs:   []int{match.ID},
			TopScore:   match.OverallScore,
			OccurredAt: s.now().UTC(),
		})
	}

	return match, nil
}
