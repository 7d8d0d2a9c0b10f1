package domain

import "time"

type User struct {
	ID             int             `json:"id"`
	DisplayName    string          `json:"display_name"`
	DateOfBirth    *time.Time      `json:"date_of_birth,omitempty"`
	Religion       string          `json:"religion,omitempty"`
	EducationLevel string          `json:"education_level,omitempty"`
	Profession     string          `json:"profession,omitempty"`
	City           string          `json:"city,omitempty"`
	State          string          `json:"state,omitempty"`
	Country        string          `json:"country,omitempty"`
	IsActive       bool            `json:"is_active"`
	IsVerified     bool            `json:"is_verified"`
	IsDeleted      bool            `json:"-"`
	Interests      []string        `json:"interests"`
	PoliticalViews []string        `json:"political_views,omitempty"`
	Purpose        *PurposeProfile `json:"purpose,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Age returns full years at now, or 0 when the date of birth is unknown.
func (u *User) Age(now time.Time) int {
	if u.DateOfBirth == nil {
		return 0
	}
	dob := *u.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// HasAge reports whether the user's age is known.
func (u *User) HasAge() bool {
	return u.DateOfBirth != nil
}

// Eligible reports whether the user may appear as a match candidate.
func (u *User) Eligible(requireVerified bool) bool {
	if !u.IsActive || u.IsDeleted || u.Purpose == nil {
		return false
	}
	return !requireVerified || u.IsVerified
}
