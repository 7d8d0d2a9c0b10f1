package domain

import "time"

type MatchEventType string

const (
	MatchEventGenerated MatchEventType = "matches.generated"
	MatchEventAccepted  MatchEventType = "match.accepted"
)

// MatchEvent is published after matches are persisted or a match is accepted.
type MatchEvent struct {
	Type       MatchEventType `json:"type"`
	UserID     int            `json:"user_id"`
	MatchIDs   []int          `json:"match_ids"`
	TopScore   int            `json:"top_score,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
