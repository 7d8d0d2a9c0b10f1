package repository

import (
	"context"

	"github.com/gdugdh24/purposematch/internal/domain"
)

// CandidateQuery narrows the candidate pool at the store level.
type CandidateQuery struct {
	ExcludeUserIDs  []int
	Country         string
	RequireVerified bool
	Limit           int
}

type UserRepository interface {
	GetByID(ctx context.Context, id int) (*domain.User, error)
	// ListCandidates returns active, non-deleted users that have a purpose
	// profile, ordered by id.
	ListCandidates(ctx context.Context, q CandidateQuery) ([]*domain.User, error)
}
