package domain

import (
	"fmt"
	"time"
)

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusLiked    MatchStatus = "liked"
	MatchStatusRejected MatchStatus = "rejected"
	MatchStatusAccepted MatchStatus = "accepted"
)

type MatchAction string

const (
	MatchActionLike   MatchAction = "like"
	MatchActionReject MatchAction = "reject"
)

func (a MatchAction) IsValid() bool {
	return a == MatchActionLike || a == MatchActionReject
}

// Match is a scored pair of users. The pair is stored once with User1ID < User2ID.
type Match struct {
	ID               int          `json:"id"`
	User1ID          int          `json:"user1_id"`
	User2ID          int          `json:"user2_id"`
	RequestedBy      int          `json:"requested_by"`
	OverallScore     int          `json:"overall_score"`
	DomainScore      int          `json:"domain_score"`
	ArchetypeScore   int          `json:"archetype_score"`
	ModalityScore    int          `json:"modality_score"`
	NarrativeScore   int          `json:"narrative_score"`
	DemographicScore int          `json:"demographic_score"`
	AgeScore         int          `json:"age_score"`
	Narrative        string       `json:"narrative"`
	Status           MatchStatus  `json:"status"`
	User1Action      *MatchAction `json:"user1_action,omitempty"`
	User2Action      *MatchAction `json:"user2_action,omitempty"`
	IsNew            bool         `json:"is_new"`
	Icebreakers      []string     `json:"icebreakers"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// NormalizePair orders two user ids so the smaller one comes first.
func NormalizePair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func (m *Match) HasUser(userID int) bool {
	return m.User1ID == userID || m.User2ID == userID
}

func (m *Match) GetOtherUserID(userID int) (int, bool) {
	if m.User1ID == userID {
		return m.User2ID, true
	}
	if m.User2ID == userID {
		return m.User1ID, true
	}
	return 0, false
}

// SetAction records the action of one side and recomputes the status.
func (m *Match) SetAction(userID int, action MatchAction) error {
	if !action.IsValid() {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, action)
	}
	switch userID {
	case m.User1ID:
		m.User1Action = &action
	case m.User2ID:
		m.User2Action = &action
	default:
		return ErrForbidden
	}
	m.Status = m.DeriveStatus()
	m.IsNew = false
	return nil
}

// DeriveStatus computes the status from both sides' actions.
func (m *Match) DeriveStatus() MatchStatus {
	a1, a2 := actionOf(m.User1Action), actionOf(m.User2Action)
	switch {
	case a1 == MatchActionReject || a2 == MatchActionReject:
		return MatchStatusRejected
	case a1 == MatchActionLike && a2 == MatchActionLike:
		return MatchStatusAccepted
	case a1 == MatchActionLike || a2 == MatchActionLike:
		return MatchStatusLiked
	default:
		return MatchStatusPending
	}
}

func actionOf(a *MatchAction) MatchAction {
	if a == nil {
		return ""
	}
	return *a
}
