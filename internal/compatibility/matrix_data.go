package compatibility

import "github.com/gdugdh24/purposematch/internal/domain"

func entry[T ~string](a, b T, score int) Entry {
	return Entry{A: string(a), B: string(b), Score: score}
}

var domainMatrix = NewMatrix("domain", DefaultDomainScore, []Entry{
	// education, social justice and politics reinforce each other
	entry(domain.DomainEducation, domain.DomainSocialJustice, 85),
	entry(domain.DomainEducation, domain.DomainPolitical, 75),
	entry(domain.DomainSocialJustice, domain.DomainPolitical, 85),

	entry(domain.DomainEducation, domain.DomainPersonalGrowth, 80),
	entry(domain.DomainEducation, domain.DomainScience, 80),
	entry(domain.DomainEducation, domain.DomainTechnology, 70),
	entry(domain.DomainEducation, domain.DomainCommunity, 80),
	entry(domain.DomainEducation, domain.DomainFamily, 70),
	entry(domain.DomainEducation, domain.DomainArts, 65),

	entry(domain.DomainSocialJustice, domain.DomainCommunity, 85),
	entry(domain.DomainSocialJustice, domain.DomainEnvironment, 75),
	entry(domain.DomainSocialJustice, domain.DomainReligion, 60),

	entry(domain.DomainPolitical, domain.DomainCommunity, 70),
	entry(domain.DomainPolitical, domain.DomainEnvironment, 70),
	entry(domain.DomainPolitical, domain.DomainFinance, 55),

	entry(domain.DomainSpirituality, domain.DomainReligion, 90),
	entry(domain.DomainSpirituality, domain.DomainPersonalGrowth, 85),
	entry(domain.DomainSpirituality, domain.DomainHealth, 75),
	entry(domain.DomainSpirituality, domain.DomainArts, 65),
	entry(domain.DomainSpirituality, domain.DomainTechnology, 45),

	entry(domain.DomainReligion, domain.DomainFamily, 80),
	entry(domain.DomainReligion, domain.DomainCommunity, 75),

	entry(domain.DomainTechnology, domain.DomainScience, 90),
	entry(domain.DomainTechnology, domain.DomainEntrepreneurship, 85),
	entry(domain.DomainTechnology, domain.DomainFinance, 75),
	entry(domain.DomainTechnology, domain.DomainArts, 60),

	entry(domain.DomainScience, domain.DomainHealth, 80),
	entry(domain.DomainScience, domain.DomainEnvironment, 80),

	entry(domain.DomainFinance, domain.DomainEntrepreneurship, 90),
	entry(domain.DomainFinance, domain.DomainFamily, 60),

	entry(domain.DomainArts, domain.DomainCommunity, 70),
	entry(domain.DomainArts, domain.DomainPersonalGrowth, 70),

	entry(domain.DomainCommunity, domain.DomainFamily, 75),
	entry(domain.DomainCommunity, domain.DomainHealth, 70),
	entry(domain.DomainCommunity, domain.DomainEnvironment, 75),

	entry(domain.DomainHealth, domain.DomainPersonalGrowth, 80),
	entry(domain.DomainHealth, domain.DomainFamily, 70),
	entry(domain.DomainHealth, domain.DomainEnvironment, 70),

	entry(domain.DomainPersonalGrowth, domain.DomainEntrepreneurship, 70),
	entry(domain.DomainPersonalGrowth, domain.DomainFamily, 65),
})

var archetypeMatrix = NewMatrix("archetype", DefaultArchetypeScore, []Entry{
	// a leader needs someone to lead with, not another directive personality
	entry(domain.ArchetypeLeader, domain.ArchetypePartner, 90),
	entry(domain.ArchetypeLeader, domain.ArchetypeFollower, 85),
	entry(domain.ArchetypeLeader, domain.ArchetypeSupporter, 85),
	entry(domain.ArchetypeLeader, domain.ArchetypeBuilder, 75),
	entry(domain.ArchetypeLeader, domain.ArchetypeMentor, 70),
	entry(domain.ArchetypeLeader, domain.ArchetypeTeacher, 65),
	entry(domain.ArchetypeLeader, domain.ArchetypeInnovator, 60),
	entry(domain.ArchetypeLeader, domain.ArchetypeAdvocate, 55),

	entry(domain.ArchetypeMentor, domain.ArchetypeLearner, 90),
	entry(domain.ArchetypeMentor, domain.ArchetypeFollower, 80),
	entry(domain.ArchetypeMentor, domain.ArchetypeTeacher, 80),
	entry(domain.ArchetypeMentor, domain.ArchetypePartner, 75),
	entry(domain.ArchetypeMentor, domain.ArchetypeSupporter, 70),

	entry(domain.ArchetypeTeacher, domain.ArchetypeLearner, 90),
	entry(domain.ArchetypeTeacher, domain.ArchetypeAdvocate, 85),
	entry(domain.ArchetypeTeacher, domain.ArchetypeSupporter, 75),
	entry(domain.ArchetypeTeacher, domain.ArchetypeHealer, 70),

	entry(domain.ArchetypeAdvocate, domain.ArchetypeSupporter, 80),
	entry(domain.ArchetypeAdvocate, domain.ArchetypePartner, 75),
	entry(domain.ArchetypeAdvocate, domain.ArchetypeHealer, 70),

	entry(domain.ArchetypeInnovator, domain.ArchetypeBuilder, 90),
	entry(domain.ArchetypeInnovator, domain.ArchetypeCreator, 85),
	entry(domain.ArchetypeInnovator, domain.ArchetypePartner, 80),
	entry(domain.ArchetypeInnovator, domain.ArchetypeFollower, 60),

	entry(domain.ArchetypeHealer, domain.ArchetypeSupporter, 85),
	entry(domain.ArchetypeHealer, domain.ArchetypePartner, 80),
	entry(domain.ArchetypeHealer, domain.ArchetypeCreator, 65),

	entry(domain.ArchetypeCreator, domain.ArchetypeBuilder, 80),
	entry(domain.ArchetypeCreator, domain.ArchetypePartner, 75),
	entry(domain.ArchetypeCreator, domain.ArchetypeLearner, 65),

	entry(domain.ArchetypeBuilder, domain.ArchetypePartner, 80),
	entry(domain.ArchetypeBuilder, domain.ArchetypeSupporter, 75),

	entry(domain.ArchetypePartner, domain.ArchetypeSupporter, 85),
	entry(domain.ArchetypePartner, domain.ArchetypeFollower, 70),
	entry(domain.ArchetypePartner, domain.ArchetypeLearner, 70),

	entry(domain.ArchetypeFollower, domain.ArchetypeSupporter, 65),
	entry(domain.ArchetypeFollower, domain.ArchetypeLearner, 70),
})

var modalityMatrix = NewMatrix("modality", DefaultModalityScore, []Entry{
	entry(domain.ModalityOnline, domain.ModalityVideo, 90),
	entry(domain.ModalityOnline, domain.ModalityHybrid, 85),
	entry(domain.ModalityOnline, domain.ModalityTextBased, 85),
	entry(domain.ModalityOnline, domain.ModalityOneOnOne, 65),
	entry(domain.ModalityOnline, domain.ModalityWorkshops, 60),
	entry(domain.ModalityOnline, domain.ModalityGroup, 60),
	entry(domain.ModalityOnline, domain.ModalityEvents, 45),
	entry(domain.ModalityOnline, domain.ModalityOffline, 40),

	entry(domain.ModalityOffline, domain.ModalityHybrid, 85),
	entry(domain.ModalityOffline, domain.ModalityWorkshops, 85),
	entry(domain.ModalityOffline, domain.ModalityEvents, 85),
	entry(domain.ModalityOffline, domain.ModalityOneOnOne, 80),
	entry(domain.ModalityOffline, domain.ModalityGroup, 80),
	entry(domain.ModalityOffline, domain.ModalityVideo, 45),
	entry(domain.ModalityOffline, domain.ModalityTextBased, 40),

	entry(domain.ModalityHybrid, domain.ModalityWorkshops, 80),
	entry(domain.ModalityHybrid, domain.ModalityVideo, 75),
	entry(domain.ModalityHybrid, domain.ModalityEvents, 75),
	entry(domain.ModalityHybrid, domain.ModalityGroup, 75),
	entry(domain.ModalityHybrid, domain.ModalityOneOnOne, 75),
	entry(domain.ModalityHybrid, domain.ModalityTextBased, 70),

	entry(domain.ModalityTextBased, domain.ModalityVideo, 70),
	entry(domain.ModalityTextBased, domain.ModalityOneOnOne, 65),

	entry(domain.ModalityVideo, domain.ModalityOneOnOne, 80),
	entry(domain.ModalityVideo, domain.ModalityWorkshops, 70),

	entry(domain.ModalityWorkshops, domain.ModalityGroup, 90),
	entry(domain.ModalityWorkshops, domain.ModalityEvents, 85),

	entry(domain.ModalityGroup, domain.ModalityEvents, 85),
	entry(domain.ModalityGroup, domain.ModalityOneOnOne, 55),

	entry(domain.ModalityOneOnOne, domain.ModalityEvents, 50),
})
