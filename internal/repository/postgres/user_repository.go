package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/huandu/go-sqlbuilder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/gdugdh24/purposematch/internal/domain"
	"github.com/gdugdh24/purposematch/internal/repository"
)

var userColumns = []string{
	"u.id", "u.display_name", "u.date_of_birth", "u.religion", "u.education_level",
	"u.profession", "u.city", "u.state", "u.country", "u.is_active", "u.is_verified",
	"u.is_deleted", "u.interests", "u.political_views", "u.created_at",
	"pp.domain AS purpose_domain", "pp.archetype AS purpose_archetype",
	"pp.modality AS purpose_modality", "pp.narrative AS purpose_narrative",
}

type userRow struct {
	ID               int            `db:"id"`
	DisplayName      string         `db:"display_name"`
	DateOfBirth      sql.NullTime   `db:"date_of_birth"`
	Religion         sql.NullString `db:"religion"`
	EducationLevel   sql.NullString `db:"education_level"`
	Profession       sql.NullString `db:"profession"`
	City             sql.NullString `db:"city"`
	State            sql.NullString `db:"state"`
	Country          sql.NullString `db:"country"`
	IsActive         bool           `db:"is_active"`
	IsVerified       bool           `db:"is_verified"`
	IsDeleted        bool           `db:"is_deleted"`
	Interests        pq.StringArray `db:"interests"`
	PoliticalViews   pq.StringArray `db:"political_views"`
	CreatedAt        time.Time      `db:"created_at"`
	PurposeDomain    sql.NullString `db:"purpose_domain"`
	PurposeArchetype sql.NullString `db:"purpose_archetype"`
	PurposeModality  sql.NullString `db:"purpose_modality"`
	PurposeNarrative sql.NullString `db:"purpose_narrative"`
}

func (r userRow) toDomain() *domain.User {
	u := &domain.User{
		ID:             r.ID,
		DisplayName:    r.DisplayName,
		Religion:       r.Religion.String,
		EducationLevel: r.EducationLevel.String,
		Profession:     r.Profession.String,
		City:           r.City.String,
		State:          r.State.String,
		Country:        r.Country.String,
		IsActive:       r.IsActive,
		IsVerified:     r.IsVerified,
		IsDeleted:      r.IsDeleted,
		Interests:      []string(r.Interests),
		PoliticalViews: []string(r.PoliticalViews),
		CreatedAt:      r.CreatedAt,
	}
	if r.DateOfBirth.Valid {
		dob := r.DateOfBirth.Time
		u.DateOfBirth = &dob
	}
	if r.PurposeDomain.Valid {
		u.Purpose = &domain.PurposeProfile{
			Domain:    domain.Domain(r.PurposeDomain.String),
			Archetype: domain.Archetype(r.PurposeArchetype.String),
			Modality:  domain.Modality(r.PurposeModality.String),
			Narrative: r.PurposeNarrative.String,
		}
	}
	return u
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(userColumns...)
	sb.From("users u")
	sb.JoinWithOption(sqlbuilder.LeftJoin, "purpose_profiles pp", "pp.user_id = u.id")
	sb.Where(sb.Equal("u.id", id))

	query, args := sb.Build()
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return row.toDomain(), nil
}

func (r *userRepository) ListCandidates(ctx context.Context, q repository.CandidateQuery) ([]*domain.User, error) {
	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(userColumns...)
	sb.From("users u")
	sb.Join("purpose_profiles pp", "pp.user_id = u.id")

	where := []string{
		sb.Equal("u.is_active", true),
		sb.Equal("u.is_deleted", false),
	}
	if q.RequireVerified {
		where = append(where, sb.Equal("u.is_verified", true))
	}
	if len(q.ExcludeUserIDs) > 0 {
		where = append(where, sb.NotIn("u.id", sqlbuilder.Flatten(q.ExcludeUserIDs)...))
	}
	if q.Country != "" {
		where = append(where, sb.Equal("u.country", q.Country))
	}
	sb.Where(where...)
	sb.OrderBy("u.id ASC")
	if q.Limit > 0 {
		sb.Limit(q.Limit)
	}

	query, args := sb.Build()
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}
