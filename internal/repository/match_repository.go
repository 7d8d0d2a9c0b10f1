package repository

import (
	"context"

	"github.com/gdugdh24/purposematch/internal/domain"
)

type MatchRepository interface {
	// UpsertBatch stores all matches atomically. Existing pairs get fresh
	// scores and narrative, their status and actions are left untouched.
	UpsertBatch(ctx context.Context, matches []*domain.Match) error
	GetMatchedUserIDs(ctx context.Context, userID int) ([]int, error)
	GetByID(ctx context.Context, id int) (*domain.Match, error)
	GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error)
	GetUserMatches(ctx context.Context, userID int, limit, offset int) ([]*domain.Match, error)
	// UpdateMatch loads the match under a row lock, applies fn and stores
	// its actions and status. An error from fn aborts without writing.
	UpdateMatch(ctx context.Context, id int, fn func(m *domain.Match) error) (*domain.Match, error)
	UpdateIcebreakers(ctx context.Context, matchID int, icebreakers []string) error
}
