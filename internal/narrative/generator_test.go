package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gdugdh24/purposematch/internal/compatibility"
	"github.com/gdugdh24/purposematch/internal/domain"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		score int
		want  Tier
	}{
		{100, TierExceptional},
		{85, TierExceptional},
		{84, TierStrong},
		{70, TierStrong},
		{69, TierGood},
		{65, TierGood},
		{64, TierPromising},
		{0, TierPromising},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.score), "score %d", tt.score)
	}
}

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator()

	requester := &domain.User{
		DisplayName: "Asha",
		City:        "Pune",
		Interests:   []string{"Reading", "hiking", "chess"},
		Purpose:     &domain.PurposeProfile{Domain: domain.DomainEducation, Modality: domain.ModalityOnline},
	}
	candidate := &domain.User{
		DisplayName: "Ravi",
		Profession:  "engineer",
		City:        "pune",
		Interests:   []string{"chess", "reading", "hiking"},
		Purpose:     &domain.PurposeProfile{Domain: domain.DomainSocialJustice, Modality: domain.ModalityOnline},
	}

	text := g.Generate(requester, candidate, compatibility.Result{OverallScore: 91})

	assert.Equal(t,
		"Ravi is an exceptional match: your purposes are highly aligned around social justice. "+
			"They bring experience as an engineer. "+
			"You both prefer to engage online. "+
			"You are both based in pune. "+
			"You share an interest in chess and reading.",
		text,
	)
	assert.Equal(t, text, g.Generate(requester, candidate, compatibility.Result{OverallScore: 91}))
}

func TestGenerator_TiersAndFallbacks(t *testing.T) {
	g := NewGenerator()
	requester := &domain.User{}

	tests := []struct {
		score    int
		contains string
	}{
		{90, "exceptional match"},
		{75, "strong match"},
		{66, "good match"},
		{40, "promising connection"},
	}

	for _, tt := range tests {
		text := g.Generate(requester, &domain.User{}, compatibility.Result{OverallScore: tt.score})
		assert.Contains(t, text, tt.contains)
		assert.Contains(t, text, "This member")
		assert.Contains(t, text, "shared values")
	}
}

func TestGenerator_MentionsEducation(t *testing.T) {
	g := NewGenerator()

	text := g.Generate(
		&domain.User{Purpose: &domain.PurposeProfile{Domain: domain.DomainEducation, Modality: domain.ModalityOnline}},
		&domain.User{DisplayName: "B", Purpose: &domain.PurposeProfile{Domain: domain.DomainEducation, Modality: domain.ModalityWorkshops}},
		compatibility.Result{OverallScore: 88},
	)

	assert.Contains(t, text, "education")
	assert.NotContains(t, text, "prefer to engage")
}
