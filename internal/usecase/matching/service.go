package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gdugdh24/purposematch/internal/compatibility"
	"github.com/gdugdh24/purposematch/internal/domain"
	"github.com/gdugdh24/purposematch/internal/narrative"
	"github.com/gdugdh24/purposematch/internal/repository"
)

const (
	outcomeSuccess        = "success"
	outcomeNoCandidates   = "no_candidates"
	outcomeBelowThreshold = "below_threshold"
	outcomeError          = "error"
)

// Service generates, stores and updates matches for users.
type Service struct {
	users      repository.UserRepository
	matches    repository.MatchRepository
	selector   *Selector
	calculator *compatibility.Calculator
	narrator   *narrative.Generator
	locker     Locker
	publisher  Publisher
	recorder   Recorder
	logger     *zap.Logger
	cfg        Config
	now        func() time.Time
}

type Option func(*Service)

func WithLocker(l Locker) Option {
	return func(s *Service) {
		s.locker = l
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

func NewService(
	users repository.UserRepository,
	matches repository.MatchRepository,
	calculator *compatibility.Calculator,
	narrator *narrative.Generator,
	cfg Config,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	cfg = cfg.withDefaults()
	s := &Service{
		users:      users,
		matches:    matches,
		selector:   NewSelector(users, matches, cfg, logger),
		calculator: calculator,
		narrator:   narrator,
		locker:     noopLocker{},
		publisher:  noopPublisher{},
		recorder:   noopRecorder{},
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type scoredCandidate struct {
	candidate *domain.User
	result    compatibility.Result
}

// Generate scores the user's candidate pool, persists the best matches in a
// single batch and returns them ranked by overall score.
func (s *Service) Generate(ctx context.Context, userID int, opts GenerateOptions) (*GenerateResult, error) {
	start := time.Now()

	limit, minScore, err := s.resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		s.recorder.ObserveGeneration(outcomeError, time.Since(start), 0, 0)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	user, err := s.fetchUser(ctx, userID)
	if err != nil {
		s.recorder.ObserveGeneration(outcomeError, time.Since(start), 0, 0)
		return nil, err
	}

	release, err := s.acquireLock(ctx, userID)
	if err != nil {
		s.recorder.ObserveGeneration(outcomeError, time.Since(start), 0, 0)
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("failed to release generation lock", zap.Int("user_id", userID), zap.Error(err))
		}
	}()

	result, scored, err := s.generate(ctx, user, limit, minScore, opts.IncludeExisting)

	outcome, persisted := outcomeError, 0
	if err == nil {
		persisted = len(result.Matches)
		switch {
		case result.CandidatesConsidered == 0:
			outcome = outcomeNoCandidates
		case persisted == 0:
			outcome = outcomeBelowThreshold
		default:
			outcome = outcomeSuccess
		}
	}
	s.recorder.ObserveGeneration(outcome, time.Since(start), scored, persisted)

	return result, err
}

func (s *Service) generate(ctx context.Context, user *domain.User, limit, minScore int, includeExisting bool) (*GenerateResult, int, error) {
	userID := user.ID

	var selection *Selection
	err := s.retry(ctx, func(ctx context.Context) error {
		var err error
		selection, err = s.selector.Select(ctx, user, includeExisting)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	result := &GenerateResult{
		Matches:              []MatchSummary{},
		CandidatesConsidered: len(selection.Candidates),
	}
	if len(selection.Candidates) == 0 {
		s.logger.Info("no eligible candidates", zap.Int("user_id", userID))
		return result, 0, nil
	}

	scored, err := s.scoreAll(ctx, user, selection.Candidates)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to score candidates: %w", err)
	}

	ranked := rank(scored, minScore)
	result.BelowThreshold = len(scored) - len(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	if len(ranked) == 0 {
		s.logger.Info("no candidate reached the minimum score",
			zap.Int("user_id", userID),
			zap.Int("min_score", minScore),
			zap.Int("scored", len(scored)),
		)
		return result, len(scored), nil
	}

	records := make([]*domain.Match, len(ranked))
	summaries := make([]MatchSummary, len(ranked))
	for i, sc := range ranked {
		text := s.narrator.Generate(user, sc.candidate, sc.result)
		records[i] = newMatch(user.ID, sc.candidate.ID, sc.result, text)
		summaries[i] = newSummary(sc.candidate, sc.result, text, !selection.Existing[sc.candidate.ID])
	}

	err = s.retry(ctx, func(ctx context.Context) error {
		return s.matches.UpsertBatch(ctx, records)
	})
	if err != nil {
		s.logger.Error("failed to persist matches", zap.Int("user_id", userID), zap.Int("count", len(records)), zap.Error(err))
		return nil, len(scored), &PersistenceError{Matches: summaries, Err: err}
	}

	matchIDs := make([]int, len(records))
	for i, m := range records {
		summaries[i].MatchID = m.ID
		matchIDs[i] = m.ID
	}
	result.Matches = summaries

	s.logger.Info("matches generated",
		zap.Int("user_id", userID),
		zap.Int("considered", result.CandidatesConsidered),
		zap.Int("persisted", len(summaries)),
		zap.Int("top_score", summaries[0].OverallScore),
	)

	s.publish(ctx, domain.MatchEvent{
		Type:       domain.MatchEventGenerated,
		UserID:     userID,
		MatchIDs:   matchIDs,
		TopScore:   summaries[0].OverallScore,
		OccurredAt: s.now().UTC(),
	})

	return result, len(scored), nil
}

// acquireLock takes the per-user generation lock. A concurrent generation
// fails the call. Any other locker failure only costs the overlap guard, so
// generation goes on unlocked.
func (s *Service) acquireLock(ctx context.Context, userID int) (func(ctx context.Context) error, error) {
	release, err := s.locker.Acquire(ctx, fmt.Sprintf("match-generation:%d", userID), s.cfg.LockTTL)
	if err == nil {
		return release, nil
	}
	if errors.Is(err, domain.ErrGenerationInProgress) || ctx.Err() != nil {
		return nil, fmt.Errorf("failed to acquire generation lock: %w", err)
	}

	s.logger.Warn("generation lock unavailable, continuing without it", zap.Int("user_id", userID), zap.Error(err))
	return func(context.Context) error { return nil }, nil
}

// ListMatches returns stored matches of a user, best first.
func (s *Service) ListMatches(ctx context.Context, userID, limit, offset int) ([]*domain.Match, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	matches, err := s.matches.GetUserMatches(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get matches: %w", err)
	}
	return matches, nil
}

func (s *Service) resolveOptions(opts GenerateOptions) (int, int, error) {
	limit := opts.Limit
	switch {
	case limit < 0:
		return 0, 0, fmt.Errorf("%w: limit must not be negative", domain.ErrInvalidInput)
	case limit == 0:
		limit = s.cfg.DefaultLimit
	case limit > s.cfg.MaxLimit:
		limit = s.cfg.MaxLimit
	}

	minScore := s.cfg.MinScore
	if opts.MinScore != nil {
		if *opts.MinScore < 0 || *opts.MinScore > 100 {
			return 0, 0, fmt.Errorf("%w: min score must be within 0..100", domain.ErrInvalidInput)
		}
		minScore = *opts.MinScore
	}

	return limit, minScore, nil
}

func (s *Service) fetchUser(ctx context.Context, userID int) (*domain.User, error) {
	var user *domain.User
	err := s.retry(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.users.GetByID(ctx, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.IsDeleted {
		return nil, domain.ErrUserNotFound
	}
	if user.Purpose == nil {
		return nil, domain.ErrPurposeProfileNotFound
	}
	return user, nil
}

// scoreAll scores candidates concurrently. Results keep the candidate order.
func (s *Service) scoreAll(ctx context.Context, user *domain.User, candidates []*domain.User) ([]scoredCandidate, error) {
	scored := make([]scoredCandidate, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, candidate := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i] = scoredCandidate{
				candidate: candidate,
				result:    s.calculator.Calculate(user, candidate),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return scored, nil
}

// rank drops candidates below minScore and sorts the rest by overall score,
// descending. Ties keep their input order.
func rank(scored []scoredCandidate, minScore int) []scoredCandidate {
	ranked := make([]scoredCandidate, 0, len(scored))
	for _, sc := range scored {
		if sc.result.OverallScore >= minScore {
			ranked = append(ranked, sc)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].result.OverallScore > ranked[j].result.OverallScore
	})
	return ranked
}

// retry runs fn with bounded exponential backoff. Not-found, invalid input
// and context errors are returned immediately.
func (s *Service) retry(ctx context.Context, fn func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(s.cfg.MaxRetries, retry.NewExponential(s.cfg.RetryBaseDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err == nil || !isTransient(err) {
			return err
		}
		s.logger.Debug("retrying store call", zap.Error(err))
		return retry.RetryableError(err)
	})
}

func isTransient(err error) bool {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}

func (s *Service) publish(ctx context.Context, event domain.MatchEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish match event",
			zap.String("type", string(event.Type)),
			zap.Int("user_id", event.UserID),
			zap.Error(err),
		)
	}
}

func newMatch(requesterID, candidateID int, r compatibility.Result, text string) *domain.Match {
	user1ID, user2ID := domain.NormalizePair(requesterID, candidateID)
	return &domain.Match{
		User1ID:          user1ID,
		User2ID:          user2ID,
		RequestedBy:      requesterID,
		OverallScore:     r.OverallScore,
		DomainScore:      r.DomainScore,
		ArchetypeScore:   r.ArchetypeScore,
		ModalityScore:    r.ModalityScore,
		NarrativeScore:   r.NarrativeScore,
		DemographicScore: r.DemographicScore,
		AgeScore:         r.AgeScore,
		Narrative:        text,
		Status:           domain.MatchStatusPending,
		IsNew:            true,
	}
}

func newSummary(candidate *domain.User, r compatibility.Result, text string, isNew bool) MatchSummary {
	return MatchSummary{
		CandidateID:      candidate.ID,
		CandidateName:    candidate.DisplayName,
		OverallScore:     r.OverallScore,
		DomainScore:      r.DomainScore,
		ArchetypeScore:   r.ArchetypeScore,
		ModalityScore:    r.ModalityScore,
		NarrativeScore:   r.NarrativeScore,
		DemographicScore: r.DemographicScore,
		AgeScore:         r.AgeScore,
		Narrative:        text,
		IsNew:            isNew,
	}
}
