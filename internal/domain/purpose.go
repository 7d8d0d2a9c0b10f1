package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Domain is the area of life a user wants to make an impact in.
type Domain string

const (
	DomainPersonalGrowth   Domain = "PERSONAL_GROWTH"
	DomainEducation        Domain = "EDUCATION"
	DomainSocialJustice    Domain = "SOCIAL_JUSTICE"
	DomainPolitical        Domain = "POLITICAL"
	DomainSpirituality     Domain = "SPIRITUALITY"
	DomainReligion         Domain = "RELIGION"
	DomainTechnology       Domain = "TECHNOLOGY"
	DomainScience          Domain = "SCIENCE"
	DomainFinance          Domain = "FINANCE"
	DomainEntrepreneurship Domain = "ENTREPRENEURSHIP"
	DomainArts             Domain = "ARTS"
	DomainCommunity        Domain = "COMMUNITY"
	DomainHealth           Domain = "HEALTH"
	DomainEnvironment      Domain = "ENVIRONMENT"
	DomainFamily           Domain = "FAMILY"
)

// Archetype is the role a user naturally takes when pursuing their purpose.
type Archetype string

const (
	ArchetypeLeader    Archetype = "LEADER"
	ArchetypeFollower  Archetype = "FOLLOWER"
	ArchetypeSupporter Archetype = "SUPPORTER"
	ArchetypePartner   Archetype = "PARTNER"
	ArchetypeMentor    Archetype = "MENTOR"
	ArchetypeTeacher   Archetype = "TEACHER"
	ArchetypeAdvocate  Archetype = "ADVOCATE"
	ArchetypeInnovator Archetype = "INNOVATOR"
	ArchetypeHealer    Archetype = "HEALER"
	ArchetypeCreator   Archetype = "CREATOR"
	ArchetypeBuilder   Archetype = "BUILDER"
	ArchetypeLearner   Archetype = "LEARNER"
)

// Modality is the preferred way of engaging with others.
type Modality string

const (
	ModalityOnline    Modality = "ONLINE"
	ModalityOffline   Modality = "OFFLINE"
	ModalityHybrid    Modality = "HYBRID"
	ModalityTextBased Modality = "TEXT_BASED"
	ModalityVideo     Modality = "VIDEO"
	ModalityWorkshops Modality = "WORKSHOPS"
	ModalityOneOnOne  Modality = "ONE_ON_ONE"
	ModalityGroup     Modality = "GROUP"
	ModalityEvents    Modality = "EVENTS"
)

var (
	Domains = []Domain{
		DomainPersonalGrowth, DomainEducation, DomainSocialJustice, DomainPolitical,
		DomainSpirituality, DomainReligion, DomainTechnology, DomainScience, DomainFinance,
		DomainEntrepreneurship, DomainArts, DomainCommunity, DomainHealth, DomainEnvironment,
		DomainFamily,
	}
	Archetypes = []Archetype{
		ArchetypeLeader, ArchetypeFollower, ArchetypeSupporter, ArchetypePartner,
		ArchetypeMentor, ArchetypeTeacher, ArchetypeAdvocate, ArchetypeInnovator,
		ArchetypeHealer, ArchetypeCreator, ArchetypeBuilder, ArchetypeLearner,
	}
	Modalities = []Modality{
		ModalityOnline, ModalityOffline, ModalityHybrid, ModalityTextBased, ModalityVideo,
		ModalityWorkshops, ModalityOneOnOne, ModalityGroup, ModalityEvents,
	}
)

// Label returns a human readable form, e.g. "social justice".
func (d Domain) Label() string {
	return label(string(d))
}

func (d Domain) IsValid() bool {
	for _, known := range Domains {
		if d == known {
			return true
		}
	}
	return false
}

func (a Archetype) Label() string {
	return label(string(a))
}

func (a Archetype) IsValid() bool {
	for _, known := range Archetypes {
		if a == known {
			return true
		}
	}
	return false
}

func (m Modality) Label() string {
	return label(string(m))
}

func (m Modality) IsValid() bool {
	for _, known := range Modalities {
		if m == known {
			return true
		}
	}
	return false
}

func label(v string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(v), "_", " "))
}

// PurposeProfile describes what a user wants to achieve and how.
type PurposeProfile struct {
	Domain    Domain    `json:"domain" db:"domain" validate:"required"`
	Archetype Archetype `json:"archetype" db:"archetype" validate:"required"`
	Modality  Modality  `json:"modality" db:"modality" validate:"required"`
	Narrative string    `json:"narrative" db:"narrative" validate:"required,min=10,max=1000"`
}

var validate = validator.New()

// Validate checks required fields, narrative length and enum membership.
func (p *PurposeProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !p.Domain.IsValid() {
		return fmt.Errorf("%w: unknown domain %q", ErrInvalidInput, p.Domain)
	}
	if !p.Archetype.IsValid() {
		return fmt.Errorf("%w: unknown archetype %q", ErrInvalidInput, p.Archetype)
	}
	if !p.Modality.IsValid() {
		return fmt.Errorf("%w: unknown modality %q", ErrInvalidInput, p.Modality)
	}
	return nil
}
