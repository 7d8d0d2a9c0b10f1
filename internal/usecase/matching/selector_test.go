package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gdugdh24/purposematch/internal/domain"
)

func TestSelector_Select(t *testing.T) {
	inactive := newUser(4, "Inactive", educationAdvocate())
	inactive.IsActive = false
	deleted := newUser(5, "Deleted", educationAdvocate())
	deleted.IsDeleted = true
	abroad := newUser(6, "Abroad", educationAdvocate())
	abroad.Country = "Kenya"

	requester := newUser(1, "Asha", educationTeacher())
	users := newFakeUserRepo(
		requester,
		newUser(2, "Ravi", educationAdvocate()),
		newUser(3, "Meera", nil),
		inactive,
		deleted,
		abroad,
	)

	t.Run("filters ineligible users", func(t *testing.T) {
		sel := NewSelector(users, newFakeMatchRepo(), testConfig(), zap.NewNop())

		got, err := sel.Select(context.Background(), requester, false)
		require.NoError(t, err)

		ids := make([]int, 0, len(got.Candidates))
		for _, c := range got.Candidates {
			ids = append(ids, c.ID)
		}
		assert.Equal(t, []int{2, 6}, ids)
		assert.Empty(t, got.Existing)
		assert.Empty(t, users.lastQuery.Country)
	})

	t.Run("country prefilter", func(t *testing.T) {
		cfg := testConfig()
		cfg.PrefilterCountry = true
		sel := NewSelector(users, newFakeMatchRepo(), cfg, zap.NewNop())

		got, err := sel.Select(context.Background(), requester, false)
		require.NoError(t, err)
		require.Len(t, got.Candidates, 1)
		assert.Equal(t, 2, got.Candidates[0].ID)
		assert.Equal(t, "India", users.lastQuery.Country)
	})

	t.Run("caps the pool", func(t *testing.T) {
		cfg := testConfig()
		cfg.MaxCandidates = 1
		sel := NewSelector(users, newFakeMatchRepo(), cfg, zap.NewNop())

		got, err := sel.Select(context.Background(), requester, false)
		require.NoError(t, err)
		assert.Len(t, got.Candidates, 1)
		assert.Equal(t, 1, users.lastQuery.Limit)
	})

	t.Run("existing matches", func(t *testing.T) {
		matches := newFakeMatchRepo(&domain.Match{ID: 1, User1ID: 1, User2ID: 2})
		sel := NewSelector(users, matches, testConfig(), zap.NewNop())

		got, err := sel.Select(context.Background(), requester, false)
		require.NoError(t, err)
		require.Len(t, got.Candidates, 1)
		assert.Equal(t, 6, got.Candidates[0].ID)
		assert.True(t, got.Existing[2])

		got, err = sel.Select(context.Background(), requester, true)
		require.NoError(t, err)
		assert.Len(t, got.Candidates, 2)
	})

	t.Run("drops invalid purpose profiles", func(t *testing.T) {
		wizard := newUser(7, "Wizard", &domain.PurposeProfile{
			Domain:    domain.DomainEducation,
			Archetype: domain.Archetype("WIZARD"),
			Modality:  domain.ModalityOnline,
			Narrative: "I cast spells for school reform",
		})
		terse := newUser(8, "Terse", &domain.PurposeProfile{
			Domain:    domain.DomainEducation,
			Archetype: domain.ArchetypeAdvocate,
			Modality:  domain.ModalityOnline,
			Narrative: "schools",
		})
		pool := newFakeUserRepo(requester, newUser(2, "Ravi", educationAdvocate()), wizard, terse)

		core, logs := observer.New(zap.WarnLevel)
		sel := NewSelector(pool, newFakeMatchRepo(), testConfig(), zap.New(core))

		got, err := sel.Select(context.Background(), requester, false)
		require.NoError(t, err)
		require.Len(t, got.Candidates, 1)
		assert.Equal(t, 2, got.Candidates[0].ID)

		skipped := logs.FilterMessage("skipping candidate with invalid purpose profile").All()
		require.Len(t, skipped, 2)
		assert.Equal(t, int64(7), skipped[0].ContextMap()["candidate_id"])
		assert.Equal(t, int64(8), skipped[1].ContextMap()["candidate_id"])
	})
}
