package matching

import (
	"context"
	"fmt"
	"time"

	"github.com/gdugdh24/purposematch/internal/domain"
)

// Config tunes match generation. Non-positive sizes and durations are
// replaced by their DefaultConfig values.
type Config struct {
	DefaultLimit     int
	MaxLimit         int
	MinScore         int
	MaxCandidates    int
	RequireVerified  bool
	PrefilterCountry bool
	Concurrency      int
	Timeout          time.Duration
	LockTTL          time.Duration
	MaxRetries       uint64
	RetryBaseDelay   time.Duration
}

func DefaultConfig() Config {
	return Config{
		DefaultLimit:    10,
		MaxLimit:        50,
		MinScore:        50,
		MaxCandidates:   100,
		RequireVerified: true,
		Concurrency:     8,
		Timeout:         10 * time.Second,
		LockTTL:         30 * time.Second,
		MaxRetries:      3,
		RetryBaseDelay:  50 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = d.DefaultLimit
	}
	if c.MaxLimit < c.DefaultLimit {
		c.MaxLimit = max(d.MaxLimit, c.DefaultLimit)
	}
	if c.MinScore < 0 || c.MinScore > 100 {
		c.MinScore = d.MinScore
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = d.MaxCandidates
	}
	if c.Concurrency <= 0 {
		c.Concurrency = d.Concurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.LockTTL <= 0 {
		c.LockTTL = max(d.LockTTL, c.Timeout)
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = d.RetryBaseDelay
	}
	return c
}

// GenerateOptions are per-request overrides. Zero Limit and nil MinScore
// fall back to the service configuration.
type GenerateOptions struct {
	Limit           int
	IncludeExisting bool
	MinScore        *int
}

// MatchSummary is one ranked candidate as returned to the caller.
type MatchSummary struct {
	MatchID          int    `json:"match_id,omitempty"`
	CandidateID      int    `json:"candidate_id"`
	CandidateName    string `json:"candidate_name"`
	OverallScore     int    `json:"overall_score"`
	DomainScore      int    `json:"domain_score"`
	ArchetypeScore   int    `json:"archetype_score"`
	ModalityScore    int    `json:"modality_score"`
	NarrativeScore   int    `json:"narrative_score"`
	DemographicScore int    `json:"demographic_score"`
	AgeScore         int    `json:"age_score"`
	Narrative        string `json:"narrative"`
	IsNew            bool   `json:"is_new"`
}

// GenerateResult distinguishes "nobody to score" (CandidatesConsidered == 0)
// from "nobody good enough" (BelowThreshold > 0 with no matches).
type GenerateResult struct {
	Matches              []MatchSummary `json:"matches"`
	CandidatesConsidered int            `json:"candidates_considered"`
	BelowThreshold       int            `json:"below_threshold"`
}

// PersistenceError is returned when ranking succeeded but the batch could not
// be stored. Matches holds the ranked list that would have been persisted.
type PersistenceError struct {
	Matches []MatchSummary
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %d matches: %v", len(e.Matches), e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Locker serialises generation runs per user.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(ctx context.Context) error, error)
}

// Publisher receives match events after they are persisted.
type Publisher interface {
	Publish(ctx context.Context, event domain.MatchEvent) error
}

// Recorder receives generation and response metrics.
type Recorder interface {
	ObserveGeneration(outcome string, duration time.Duration, scored, persisted int)
	ObserveResponse(action string)
}

type noopLocker struct{}

func (noopLocker) Acquire(context.Context, string, time.Duration) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, domain.MatchEvent) error { return nil }

type noopRecorder struct{}

func (noopRecorder) ObserveGeneration(string, time.Duration, int, int) {}
func (noopRecorder) ObserveResponse(string) {}
