// File path: internal/match/types.go
package match

import (
	"github.com/novachain/mentormatch/internal/mentor"
	"github.com/novachain/mentormatch/internal/profile"
)

// Retrieval strategy labels carried through candidates into results.
const (
	StrategyExactArchetype = "exact_archetype"
	StrategyCrossArchetype = "cross_archetype"
	StrategyHighReputation = "high_reputation"
	StrategyFallback       = "fallback"
)

// NamespaceAll is the index namespace covering the whole mentor population.
const NamespaceAll = "mentors_all"

// NamespaceFor returns the index namespace scoping a search to one
// archetype.
func NamespaceFor(archetype profile.Archetype) string {
	return "mentors_" + string(archetype)
}

// RiskLevel grades how likely a pairing is to go poorly.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ComponentScores is the six-factor breakdown behind a primary-path score.
// Every field is clamped to [0,1].
type ComponentScores struct {
	ArchetypeAlignment float64 `json:"archetype_alignment"`
	KnowledgeGap       float64 `json:"knowledge_gap_appropriateness"`
	LearningStyle      float64 `json:"learning_style_compatibility"`
	CommunityOverlap   float64 `json:"crypto_community_overlap"`
	AvailabilityMatch  float64 `json:"availability_match"`
	ReputationFactor   float64 `json:"reputation_factor"`
}

var componentWeights = ComponentScores{
	ArchetypeAlignment: 0.25,
	KnowledgeGap:       0.20,
	LearningStyle:      0.15,
	CommunityOverlap:   0.15,
	AvailabilityMatch:  0.10,
	ReputationFactor:   0.15,
}

// Weighted returns the dot product of the components with their fixed
// weights.
func (c ComponentScores) Weighted() float64 {
	return c.ArchetypeAlignment*componentWeights.ArchetypeAlignment +
		c.KnowledgeGap*componentWeights.KnowledgeGap +
		c.LearningStyle*componentWeights.LearningStyle +
		c.CommunityOverlap*componentWeights.CommunityOverlap +
		c.AvailabilityMatch*componentWeights.AvailabilityMatch +
		c.ReputationFactor*componentWeights.ReputationFactor
}

// Average returns the unweighted mean of the six components.
func (c ComponentScores) Average() float64 {
	return (c.ArchetypeAlignment + c.KnowledgeGap + c.LearningStyle +
		c.CommunityOverlap + c.AvailabilityMatch + c.ReputationFactor) / 6
}

// Candidate pairs a retrieved mentor with its strategy-weighted similarity.
// Candidates exist only for the duration of one matching request.
type Candidate struct {
	Mentor   mentor.Profile
	Score    float64
	Strategy string
}

// StrategyOutcome is the result of one retrieval strategy: either a
// candidate list or a failure reason. A failed strategy contributes no
// candidates and never aborts the request.
type StrategyOutcome struct {
	Strategy   string
	Candidates []Candidate
	Err        error
}

// Failed reports whether the strategy's search call errored.
func (o StrategyOutcome) Failed() bool {
	return o.Err != nil
}

// Result is one ranked match returned to the caller.
type Result struct {
	Mentor             mentor.Profile   `json:"mentor"`
	Score              float64          `json:"similarity_score"`
	ArchetypeAlignment float64          `json:"archetype_alignment"`
	Explanation        string           `json:"match_explanation"`
	LearningPath       string           `json:"learning_path_suggestion,omitempty"`
	Strategy           string           `json:"search_strategy,omitempty"`
	Confidence         float64          `json:"confidence_level,omitempty"`
	Risk               RiskLevel        `json:"risk_assessment,omitempty"`
	Components         *ComponentScores `json:"component_scores,omitempty"`
}

// Preferences tune one matching request. Zero values fall back to the
// documented defaults.
type Preferences struct {
	MaxResults             int                    `json:"max_results,omitempty"`
	MinScore               float64                `json:"min_score,omitempty"`
	PreferredArchetypes    []profile.Archetype    `json:"preferred_archetypes,omitempty"`
	MinExperienceYears     float64                `json:"min_experience_years,omitempty"`
	MaxExperienceYears     float64                `json:"max_experience_years,omitempty"`
	AvailabilityRequired   *bool                  `json:"availability_required,omitempty"`
	ResponseTimePreference []profile.ResponseTime `json:"response_time_preference,omitempty"`
}

const (
	defaultMaxResults = 5
	defaultMinScore   = 0.3
)

func (p Preferences) maxResults() int {
	if p.MaxResults > 0 {
		return p.MaxResults
	}
	return defaultMaxResults
}

func (p Preferences) minScore() float64 {
	if p.MinScore > 0 {
		return p.MinScore
	}
	return defaultMinScore
}

func (p Preferences) availabilityRequired() bool {
	if p.AvailabilityRequired != nil {
		return *p.AvailabilityRequired
	}
	return true
}
