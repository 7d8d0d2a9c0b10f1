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

const matchColumns = `
	id, user1_id, user2_id, requested_by, overall_score, domain_score, archetype_score,
	modality_score, narrative_score, demographic_score, age_score, narrative, status,
	user1_action, user2_action, is_new, icebreakers, created_at, updated_at`

type matchRow struct {
	ID               int            `db:"id"`
	User1ID          int            `db:"user1_id"`
	User2ID          int            `db:"user2_id"`
	RequestedBy      int            `db:"requested_by"`
	OverallScore     int            `db:"overall_score"`
	DomainScore      int            `db:"domain_score"`
	ArchetypeScore   int            `db:"archetype_score"`
	ModalityScore    int            `db:"modality_score"`
	NarrativeScore   int            `db:"narrative_score"`
	DemographicScore int            `db:"demographic_score"`
	AgeScore         int            `db:"age_score"`
	Narrative        string         `db:"narrative"`
	Status           string         `db:"status"`
	User1Action      sql.NullString `db:"user1_action"`
	User2Action      sql.NullString `db:"user2_action"`
	IsNew            bool           `db:"is_new"`
	Icebreakers      pq.StringArray `db:"icebreakers"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

func (r matchRow) toDomain() *domain.Match {
	return &domain.Match{
		ID:               r.ID,
		User1ID:          r.User1ID,
		User2ID:          r.User2ID,
		RequestedBy:      r.RequestedBy,
		OverallScore:     r.OverallScore,
		DomainScore:      r.DomainScore,
		ArchetypeScore:   r.ArchetypeScore,
		ModalityScore:    r.ModalityScore,
		NarrativeScore:   r.NarrativeScore,
		DemographicScore: r.DemographicScore,
		AgeScore:         r.AgeScore,
		Narrative:        r.Narrative,
		Status:           domain.MatchStatus(r.Status),
		User1Action:      nullAction(r.User1Action),
		User2Action:      nullAction(r.User2Action),
		IsNew:            r.IsNew,
		Icebreakers:      []string(r.Icebreakers),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func nullAction(s sql.NullString) *domain.MatchAction {
	if !s.Valid {
		return nil
	}
	a := domain.MatchAction(s.String)
	return &a
}

func actionValue(a *domain.MatchAction) sql.NullString {
	if a == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*a), Valid: true}
}

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) UpsertBatch(ctx context.Context, matches []*domain.Match) error {
	if len(matches) == 0 {
		return nil
	}

	now := time.Now().UTC()
	byPair := make(map[[2]int]*domain.Match, len(matches))

	sb := sqlbuilder.PostgreSQL.NewInsertBuilder()
	sb.InsertInto("matches")
	sb.Cols(
		"user1_id", "user2_id", "requested_by", "overall_score", "domain_score",
		"archetype_score", "modality_score", "narrative_score", "demographic_score",
		"age_score", "narrative", "status", "is_new", "created_at", "updated_at",
	)
	for _, m := range matches {
		// Ensure user1_id < user2_id for constraint
		m.User1ID, m.User2ID = domain.NormalizePair(m.User1ID, m.User2ID)
		if m.Status == "" {
			m.Status = domain.MatchStatusPending
		}
		m.UpdatedAt = now
		byPair[[2]int{m.User1ID, m.User2ID}] = m

		sb.Values(
			m.User1ID, m.User2ID, m.RequestedBy, m.OverallScore, m.DomainScore,
			m.ArchetypeScore, m.ModalityScore, m.NarrativeScore, m.DemographicScore,
			m.AgeScore, m.Narrative, m.Status, m.IsNew, now, now,
		)
	}

	query, args := sb.Build()
	query += ` ON CONFLICT (user1_id, user2_id) DO UPDATE SET
		requested_by = EXCLUDED.requested_by,
		overall_score = EXCLUDED.overall_score,
		domain_score = EXCLUDED.domain_score,
		archetype_score = EXCLUDED.archetype_score,
		modality_score = EXCLUDED.modality_score,
		narrative_score = EXCLUDED.narrative_score,
		demographic_score = EXCLUDED.demographic_score,
		age_score = EXCLUDED.age_score,
		narrative = EXCLUDED.narrative,
		updated_at = EXCLUDED.updated_at
		RETURNING id, user1_id, user2_id, created_at`

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		rows, err := tx.QueryxContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to upsert matches: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				id, user1ID, user2ID int
				createdAt            time.Time
			)
			if err := rows.Scan(&id, &user1ID, &user2ID, &createdAt); err != nil {
				return fmt.Errorf("failed to scan upserted match: %w", err)
			}
			if m, ok := byPair[[2]int{user1ID, user2ID}]; ok {
				m.ID = id
				m.CreatedAt = createdAt
			}
		}
		return rows.Err()
	})
}

func (r *matchRepository) GetMatchedUserIDs(ctx context.Context, userID int) ([]int, error) {
	var ids []int
	query := `
		SELECT CASE WHEN user1_id = $1 THEN user2_id ELSE user1_id END
		FROM matches
		WHERE user1_id = $1 OR user2_id = $1
	`
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get matched users: %w", err)
	}
	return ids, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	var row matchRow
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, user1ID, user2ID int) (*domain.Match, error) {
	user1ID, user2ID = domain.NormalizePair(user1ID, user2ID)

	var row matchRow
	query := `SELECT ` + matchColumns + ` FROM matches WHERE user1_id = $1 AND user2_id = $2`
	err := r.db.GetContext(ctx, &row, query, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *matchRepository) GetUserMatches(ctx context.Context, userID int, limit, offset int) ([]*domain.Match, error) {
	var rows []matchRow
	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE (user1_id = $1 OR user2_id = $1)
		ORDER BY overall_score DESC, id ASC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, err
	}

	matches := make([]*domain.Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, row.toDomain())
	}
	return matches, nil
}

func (r *matchRepository) UpdateMatch(ctx context.Context, id int, fn func(m *domain.Match) error) (*domain.Match, error) {
	var match *domain.Match
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var row matchRow
		query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &row, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrMatchNotFound
			}
			return err
		}

		match = row.toDomain()
		if err := fn(match); err != nil {
			return err
		}

		update := `
			UPDATE matches
			SET user1_action = $1, user2_action = $2, status = $3, is_new = $4, updated_at = NOW()
			WHERE id = $5
			RETURNING updated_at
		`
		return tx.QueryRowxContext(ctx, update,
			actionValue(match.User1Action), actionValue(match.User2Action), match.Status, match.IsNew, match.ID,
		).Scan(&match.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (r *matchRepository) UpdateIcebreakers(ctx context.Context, matchID int, icebreakers []string) error {
	query := `UPDATE matches SET icebreakers = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, pq.Array(icebreakers), matchID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrMatchNotFound
	}
	return nil
}
