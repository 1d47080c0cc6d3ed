// File path: internal/profile/types.go
package profile

// Archetype is the coarse persona classification shared by newcomers and
// mentors. It is the primary matching dimension.
type Archetype string

const (
	ArchetypeInvestor   Archetype = "investor"
	ArchetypeDeveloper  Archetype = "developer"
	ArchetypeSocialUser Archetype = "social_user"
)

// Archetypes lists the known archetypes in canonical order.
func Archetypes() []Archetype {
	return []Archetype{ArchetypeInvestor, ArchetypeDeveloper, ArchetypeSocialUser}
}

// Known reports whether a is one of the three supported archetypes.
func (a Archetype) Known() bool {
	switch a {
	case ArchetypeInvestor, ArchetypeDeveloper, ArchetypeSocialUser:
		return true
	}
	return false
}

// KnowledgeLevel describes self-reported crypto knowledge.
type KnowledgeLevel string

const (
	KnowledgeBeginner     KnowledgeLevel = "beginner"
	KnowledgeIntermediate KnowledgeLevel = "intermediate"
	KnowledgeAdvanced     KnowledgeLevel = "advanced"
	KnowledgeExpert       KnowledgeLevel = "expert"
)

// ExperienceLevel describes previous hands-on crypto experience.
type ExperienceLevel string

const (
	ExperienceNone        ExperienceLevel = "none"
	ExperienceExploring   ExperienceLevel = "exploring"
	ExperienceActive      ExperienceLevel = "active"
	ExperienceExperienced ExperienceLevel = "experienced"
)

// CommunicationStyle describes how a participant prefers to interact.
type CommunicationStyle string

const (
	StyleDirect        CommunicationStyle = "direct"
	StyleCollaborative CommunicationStyle = "collaborative"
	StyleSupportive    CommunicationStyle = "supportive"
	StyleChallenging   CommunicationStyle = "challenging"
)

// ResponseTime buckets how quickly a mentor typically replies.
type ResponseTime string

const (
	ResponseImmediate ResponseTime = "immediate"
	ResponseSameDay   ResponseTime = "same_day"
	ResponseNextDay   ResponseTime = "next_day"
	ResponseWeekly    ResponseTime = "weekly"
)

// CryptoInterests captures what the newcomer wants out of crypto.
type CryptoInterests struct {
	PrimaryGoals      []string       `json:"primary_goals"`
	SpecificInterests []string       `json:"specific_interests"`
	KnowledgeLevel    KnowledgeLevel `json:"knowledge_level"`
	RiskTolerance     string         `json:"risk_tolerance,omitempty"`
	EntryMotivation   string         `json:"entry_motivation,omitempty"`
}

// Background captures the newcomer's current professional context.
type Background struct {
	Role                  string          `json:"role,omitempty"`
	Industry              string          `json:"industry,omitempty"`
	TechnicalProficiency  string          `json:"technical_proficiency,omitempty"`
	PreviousExperience    ExperienceLevel `json:"previous_crypto_experience,omitempty"`
	BlockchainFamiliarity []string        `json:"blockchain_familiarity,omitempty"`
}

// LearningPreferences captures how the newcomer wants to be taught.
type LearningPreferences struct {
	LearningStyles     []string           `json:"learning_styles,omitempty"`
	CommunicationStyle CommunicationStyle `json:"communication_style,omitempty"`
	TimeCommitment     string             `json:"time_commitment,omitempty"`
}

// MentorRequirements captures explicit constraints on the desired mentor.
type MentorRequirements struct {
	DesiredExpertise    []string  `json:"desired_expertise,omitempty"`
	ArchetypePreference Archetype `json:"archetype_preference,omitempty"`
	MinimumExperience   int       `json:"minimum_experience,omitempty"`
	SpecificSkills      []string  `json:"specific_skills,omitempty"`
}

// Logistics captures scheduling constraints.
type Logistics struct {
	AvailabilityDays  []string `json:"availability_days,omitempty"`
	AvailabilityTimes []string `json:"availability_times,omitempty"`
	Timezone          string   `json:"timezone,omitempty"`
	CommitmentLevel   string   `json:"commitment_level,omitempty"`
}

// Newcomer is the seeker profile produced by the onboarding interview flow.
// It is immutable for matching purposes once created.
type Newcomer struct {
	ID                   string                `json:"id"`
	PrimaryArchetype     Archetype             `json:"primary_archetype"`
	ArchetypeConfidences map[Archetype]float64 `json:"archetype_confidences,omitempty"`
	Interests            CryptoInterests       `json:"crypto_interests"`
	Background           Background            `json:"current_background"`
	Learning             LearningPreferences   `json:"learning_preferences"`
	Requirements         MentorRequirements    `json:"mentor_requirements"`
	Logistics            Logistics             `json:"logistics"`
}

// NormalizedConfidences returns the archetype confidence scores scaled to
// sum to 1. Negative inputs are treated as zero.
func (n Newcomer) NormalizedConfidences() map[Archetype]float64 {
	out := make(map[Archetype]float64, len(n.ArchetypeConfidences))
	var total float64
	for archetype, score := range n.ArchetypeConfidences {
		if score < 0 {
			score = 0
		}
		out[archetype] = score
		total += score
	}
	if total <= 0 {
		return out
	}
	for archetype, score := range out {
		out[archetype] = score / total
	}
	return out
}
