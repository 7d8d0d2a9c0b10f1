package matching

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gdugdh24/purposematch/internal/compatibility"
	"github.com/gdugdh24/purposematch/internal/domain"
	"github.com/gdugdh24/purposematch/internal/narrative"
	"github.com/gdugdh24/purposematch/internal/repository"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[int]*domain.User

	getErrs   []error
	getCalls  int
	listCalls int
	lastQuery repository.CandidateQuery

	// blockList makes ListCandidates wait for ctx to end.
	blockList bool
	onList    func()
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	if len(r.getErrs) > 0 {
		err := r.getErrs[0]
		r.getErrs = r.getErrs[1:]
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// ListCandidates only applies exclusion, country and limit so the in-memory
// eligibility checks of the selector are exercised.
func (r *fakeUserRepo) ListCandidates(ctx context.Context, q repository.CandidateQuery) ([]*domain.User, error) {
	r.mu.Lock()
	r.listCalls++
	r.lastQuery = q
	block, onList := r.blockList, r.onList
	r.mu.Unlock()

	if onList != nil {
		onList()
	}
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	excluded := make(map[int]bool, len(q.ExcludeUserIDs))
	for _, id := range q.ExcludeUserIDs {
		excluded[id] = true
	}

	var out []*domain.User
	for _, u := range r.users {
		if excluded[u.ID] {
			continue
		}
		if q.Country != "" && u.Country != q.Country {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

type fakeMatchRepo struct {
	mu      sync.Mutex
	matches map[int]*domain.Match
	nextID  int

	upsertErrs  []error
	upsertCalls int
	updateCalls int
	icebreakers map[int][]string
}

func newFakeMatchRepo(existing ...*domain.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{
		matches:     make(map[int]*domain.Match),
		nextID:      1,
		icebreakers: make(map[int][]string),
	}
	for _, m := range existing {
		if m.ID == 0 {
			m.ID = r.nextID
		}
		r.nextID = max(r.nextID, m.ID+1)
		r.matches[m.ID] = m
	}
	return r
}

func (r *fakeMatchRepo) UpsertBatch(_ context.Context, matches []*domain.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertCalls++
	if len(r.upsertErrs) > 0 {
		err := r.upsertErrs[0]
		if len(r.upsertErrs) > 1 {
			r.upsertErrs = r.upsertErrs[1:]
		}
		if err != nil {
			return err
		}
	}

	for _, m := range matches {
		if existing := r.findPair(m.User1ID, m.User2ID); existing != nil {
			m.ID = existing.ID
			existing.OverallScore = m.OverallScore
			existing.Narrative = m.Narrative
			continue
		}
		m.ID = r.nextID
		r.nextID++
		stored := *m
		r.matches[m.ID] = &stored
	}
	return nil
}

func (r *fakeMatchRepo) findPair(user1ID, user2ID int) *domain.Match {
	for _, m := range r.matches {
		if m.User1ID == user1ID && m.User2ID == user2ID {
			return m
		}
	}
	return nil
}

func (r *fakeMatchRepo) GetMatchedUserIDs(_ context.Context, userID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int
	for _, m := range r.matches {
		if other, ok := m.GetOtherUserID(userID); ok {
			ids = append(ids, other)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) GetByUsers(_ context.Context, user1ID, user2ID int) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, b := domain.NormalizePair(user1ID, user2ID)
	m := r.findPair(a, b)
	if m == nil {
		return nil, domain.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) GetUserMatches(_ context.Context, userID int, limit, offset int) ([]*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Match
	for _, m := range r.matches {
		if m.HasUser(userID) {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OverallScore != out[j].OverallScore {
			return out[i].OverallScore > out[j].OverallScore
		}
		return out[i].ID < out[j].ID
	})
	if offset >= len(out) {
		return []*domain.Match{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeMatchRepo) UpdateMatch(_ context.Context, id int, fn func(m *domain.Match) error) (*domain.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	m, ok := r.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	cp := *m
	if err := fn(&cp); err != nil {
		return nil, err
	}
	stored := cp
	r.matches[id] = &stored
	return &cp, nil
}

func (r *fakeMatchRepo) UpdateIcebreakers(_ context.Context, matchID int, icebreakers []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[matchID]; !ok {
		return domain.ErrMatchNotFound
	}
	r.icebreakers[matchID] = icebreakers
	return nil
}

type fakeLocker struct {
	err      error
	acquired []string
	released int
}

func (l *fakeLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(ctx context.Context) error, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.acquired = append(l.acquired, key)
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.MatchEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event domain.MatchEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type fakeRecorder struct {
	mu        sync.Mutex
	outcomes  []string
	scored    []int
	responses []string
}

func (r *fakeRecorder) ObserveGeneration(outcome string, _ time.Duration, scored, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
	r.scored = append(r.scored, scored)
}

func (r *fakeRecorder) ObserveResponse(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, action)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.RetryBaseDelay = time.Millisecond
	cfg.MaxRetries = 2
	cfg.RequireVerified = false
	return cfg
}

func newTestService(t *testing.T, users *fakeUserRepo, matches *fakeMatchRepo, cfg Config, opts ...Option) *Service {
	t.Helper()
	calc, err := compatibility.NewCalculator(compatibility.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	s := NewService(users, matches, calc, narrative.NewGenerator(), cfg, zap.NewNop(), opts...)
	s.now = func() time.Time { return testNow }
	return s
}

func newUser(id int, name string, p *domain.PurposeProfile) *domain.User {
	return &domain.User{
		ID:          id,
		DisplayName: name,
		IsActive:    true,
		IsVerified:  true,
		Country:     "India",
		Purpose:     p,
	}
}

func educationTeacher() *domain.PurposeProfile {
	return &domain.PurposeProfile{
		Domain:    domain.DomainEducation,
		Archetype: domain.ArchetypeTeacher,
		Modality:  domain.ModalityOnline,
		Narrative: "I am passionate about education reform",
	}
}

func educationAdvocate() *domain.PurposeProfile {
	return &domain.PurposeProfile{
		Domain:    domain.DomainEducation,
		Archetype: domain.ArchetypeAdvocate,
		Modality:  domain.ModalityOnline,
		Narrative: "I work on education reform policy",
	}
}
