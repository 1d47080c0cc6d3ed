// File path: internal/match/score_test.go
package match

import (
	"testing"

	"github.com/novachain/mentormatch/internal/mentor"
	"github.com/novachain/mentormatch/internal/profile"
)

func testNewcomer() profile.Newcomer {
	return profile.Newcomer{
		ID:               "newcomer-1",
		PrimaryArchetype: profile.ArchetypeInvestor,
		Interests: profile.CryptoInterests{
			PrimaryGoals:      []string{"grow long-term portfolio"},
			SpecificInterests: []string{"defi", "yield farming"},
			KnowledgeLevel:    profile.KnowledgeBeginner,
		},
		Background: profile.Background{
			Role:                  "analyst",
			Industry:              "finance",
			PreviousExperience:    profile.ExperienceExploring,
			BlockchainFamiliarity: []string{"ethereum"},
		},
		Learning: profile.LearningPreferences{
			LearningStyles:     []string{"structured"},
			CommunicationStyle: profile.StyleCollaborative,
			TimeCommitment:     "medium",
		},
		Logistics: profile.Logistics{
			AvailabilityDays: []string{"monday", "wednesday"},
			Timezone:         "America/New_York",
		},
	}
}

func testMentor(id string) mentor.Profile {
	return mentor.Profile{
		ID:                 id,
		DisplayName:        "Morgan",
		PrimaryArchetype:   profile.ArchetypeInvestor,
		Specializations:    []string{"defi", "portfolio management", "ethereum"},
		YearsExperience:    6,
		TeachingStyle:      "structured curriculum",
		CommunicationStyle: profile.StyleCollaborative,
		PreferredLevels:    []profile.KnowledgeLevel{profile.KnowledgeBeginner, profile.KnowledgeIntermediate},
		Availability: mentor.Availability{
			IsAvailable:    true,
			Days:           []string{"monday", "wednesday", "friday"},
			Timezone:       "America/New_York",
			MaxMentees:     5,
			CurrentMentees: 2,
		},
		Reputation: mentor.Reputation{
			CommunityScore:    9.1,
			SuccessfulMentees: 24,
			CompletionRate:    0.92,
			ResponseTime:      profile.ResponseSameDay,
		},
	}
}

func TestScoreComponentsWithinBounds(t *testing.T) {
	scored := ScoreCandidate(testNewcomer(), testMentor("mentor-1"), 0.85)
	components := []float64{
		scored.Components.ArchetypeAlignment,
		scored.Components.KnowledgeGap,
		scored.Components.LearningStyle,
		scored.Components.CommunityOverlap,
		scored.Components.AvailabilityMatch,
		scored.Components.ReputationFactor,
	}
	for i, value := range components {
		if value < 0 || value > 1 {
			t.Fatalf("component %d out of bounds: %f", i, value)
		}
	}
	if scored.Overall < 0 || scored.Overall > 1 {
		t.Fatalf("overall score out of bounds: %f", scored.Overall)
	}
	if scored.Confidence < 0.1 || scored.Confidence > 0.95 {
		t.Fatalf("confidence out of bounds: %f", scored.Confidence)
	}
}

func TestScoreDeterministic(t *testing.T) {
	n := testNewcomer()
	m := testMentor("mentor-1")
	first := ScoreCandidate(n, m, 0.7)
	for i := 0; i < 5; i++ {
		again := ScoreCandidate(n, m, 0.7)
		if again != first {
			t.Fatalf("scoring not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestArchetypeAlignmentExactMatch(t *testing.T) {
	scored := ScoreCandidate(testNewcomer(), testMentor("mentor-1"), 0.5)
	if scored.Components.ArchetypeAlignment != 1.0 {
		t.Fatalf("expected alignment 1.0 for same archetype, got %f", scored.Components.ArchetypeAlignment)
	}
}

func TestArchetypeAlignmentCrossSynergy(t *testing.T) {
	n := testNewcomer()
	m := testMentor("mentor-2")
	m.PrimaryArchetype = profile.ArchetypeDeveloper
	m.Specializations = []string{"consensus research"}
	n.Interests.SpecificInterests = []string{"macro investing"}
	if got := archetypeAlignment(n, m); got != 0.8 {
		t.Fatalf("investor->developer synergy: expected 0.8, got %f", got)
	}
}

func TestArchetypeAlignmentKeywordBonusCapped(t *testing.T) {
	n := testNewcomer()
	n.Interests.SpecificInterests = []string{"solidity", "dapp", "protocol", "security", "dao"}
	m := testMentor("mentor-3")
	m.PrimaryArchetype = profile.ArchetypeDeveloper
	m.Specializations = []string{"solidity", "dapp", "protocol", "security", "dao"}
	got := archetypeAlignment(n, m)
	if got > 1.0 {
		t.Fatalf("alignment exceeded 1.0: %f", got)
	}
	if got != 1.0 {
		t.Fatalf("expected base 0.8 plus capped 0.3 bonus clamped to 1.0, got %f", got)
	}
}

func TestKnowledgeGapPreferredLevel(t *testing.T) {
	scored := ScoreCandidate(testNewcomer(), testMentor("mentor-1"), 0.5)
	if scored.Components.KnowledgeGap != 1.0 {
		t.Fatalf("mentor accepts beginner, expected 1.0, got %f", scored.Components.KnowledgeGap)
	}
}

func TestKnowledgeGapWithinBand(t *testing.T) {
	n := testNewcomer()
	m := testMentor("mentor-13")
	m.PreferredLevels = []profile.KnowledgeLevel{profile.KnowledgeAdvanced}
	m.YearsExperience = 6
	if got := knowledgeGapScore(n, m); got != 1.0 {
		t.Fatalf("years within the beginner band should score 1.0, got %f", got)
	}

	above := testMentor("mentor-14")
	above.PreferredLevels = []profile.KnowledgeLevel{profile.KnowledgeAdvanced}
	above.YearsExperience = 30
	if got := knowledgeGapScore(n, above); got >= 1.0 {
		t.Fatalf("over-qualified mentor must not outscore an in-band one, got %f", got)
	}
}

func TestKnowledgeGapBelowBand(t *testing.T) {
	n := testNewcomer()
	m := testMentor("mentor-4")
	m.PreferredLevels = []profile.KnowledgeLevel{profile.KnowledgeExpert}
	m.YearsExperience = 1
	got := knowledgeGapScore(n, m)
	if got < 0.3 {
		t.Fatalf("below-band score should floor at 0.3, got %f", got)
	}
}

func TestCommunityOverlapMissingSpecializations(t *testing.T) {
	m := testMentor("mentor-5")
	m.Specializations = nil
	scored := ScoreCandidate(testNewcomer(), m, 0.6)
	if scored.Components.CommunityOverlap != 0 {
		t.Fatalf("mentor without specializations should score 0 overlap, got %f", scored.Components.CommunityOverlap)
	}
	if scored.Overall <= 0 {
		t.Fatalf("candidate should still be scored overall, got %f", scored.Overall)
	}
}

func TestTimezoneCompatibilityUnlistedPair(t *testing.T) {
	if got := timezoneCompatibility("Asia/Singapore", "America/New_York"); got != 0.3 {
		t.Fatalf("Asia vs US_East should fall to 0.3 default, got %f", got)
	}
}

func TestTimezoneCompatibilitySameZone(t *testing.T) {
	if got := timezoneCompatibility("Europe/Berlin", "Europe/Berlin"); got != 1.0 {
		t.Fatalf("identical zones should score 1.0, got %f", got)
	}
	if got := timezoneCompatibility("Europe/Berlin", "Europe/Paris"); got != 0.8 {
		t.Fatalf("same region should score 0.8, got %f", got)
	}
}

func TestTimezoneCompatibilityCrossRegion(t *testing.T) {
	if got := timezoneCompatibility("America/New_York", "Europe/London"); got != 0.6 {
		t.Fatalf("US_East vs Europe should score 0.6, got %f", got)
	}
	if got := timezoneCompatibility("America/Chicago", "America/New_York"); got != 0.9 {
		t.Fatalf("US_Central vs US_East should score 0.9, got %f", got)
	}
}

func TestReputationFactorBlend(t *testing.T) {
	m := testMentor("mentor-6")
	m.Reputation = mentor.Reputation{CommunityScore: 10, SuccessfulMentees: 50, CompletionRate: 1}
	if got := reputationScore(m); got != 1.0 {
		t.Fatalf("perfect reputation should score 1.0, got %f", got)
	}
	m.Reputation = mentor.Reputation{CommunityScore: 5, SuccessfulMentees: 0, CompletionRate: 0}
	if got := reputationScore(m); got != 0.2 {
		t.Fatalf("expected 0.4*0.5 = 0.2, got %f", got)
	}
}

func TestRiskAssessment(t *testing.T) {
	n := testNewcomer()
	strong := testMentor("mentor-7")
	scored := ScoreCandidate(n, strong, 0.9)
	if scored.Risk != RiskLow {
		t.Fatalf("strong mentor should be low risk, got %s", scored.Risk)
	}

	weak := testMentor("mentor-8")
	weak.Reputation.CommunityScore = 5
	weak.Reputation.CompletionRate = 0.5
	weak.YearsExperience = 1
	scored = ScoreCandidate(n, weak, 0.9)
	if scored.Risk != RiskHigh {
		t.Fatalf("weak mentor should be high risk, got %s", scored.Risk)
	}
}

func TestRiskNearCapacity(t *testing.T) {
	m := testMentor("mentor-9")
	m.Availability.MaxMentees = 10
	m.Availability.CurrentMentees = 9
	scored := ScoreCandidate(testNewcomer(), m, 0.9)
	if scored.Risk != RiskMedium {
		t.Fatalf("near-capacity mentor should be medium risk, got %s", scored.Risk)
	}
}

func TestExplanationMentionsReputation(t *testing.T) {
	scored := ScoreCandidate(testNewcomer(), testMentor("mentor-10"), 0.8)
	if scored.Explanation == "" {
		t.Fatal("expected non-empty explanation")
	}
	if scored.LearningPath == "" {
		t.Fatal("expected a learning path suggestion")
	}
}

func TestLearningPathFallsBackForExpert(t *testing.T) {
	n := testNewcomer()
	n.Interests.KnowledgeLevel = profile.KnowledgeExpert
	m := testMentor("mentor-11")
	path := learningPathSuggestion(n, m)
	if path == "" {
		t.Fatal("expected generic learning path for uncovered combination")
	}
}

func TestDeveloperNewcomerSolidityMentor(t *testing.T) {
	n := profile.Newcomer{
		ID:               "newcomer-dev",
		PrimaryArchetype: profile.ArchetypeDeveloper,
		Interests: profile.CryptoInterests{
			PrimaryGoals:      []string{"ship a production dapp"},
			SpecificInterests: []string{"solidity", "dapp development"},
			KnowledgeLevel:    profile.KnowledgeBeginner,
		},
		Background: profile.Background{
			Role:                  "backend engineer",
			Industry:              "software",
			PreviousExperience:    profile.ExperienceExploring,
			BlockchainFamiliarity: []string{"ethereum"},
		},
		Learning: profile.LearningPreferences{
			LearningStyles:     []string{"hands-on"},
			CommunicationStyle: profile.StyleDirect,
			TimeCommitment:     "medium",
		},
		Logistics: profile.Logistics{
			AvailabilityDays: []string{"monday", "wednesday"},
			Timezone:         "America/New_York",
		},
	}
	m := mentor.Profile{
		ID:                 "mentor-solidity",
		DisplayName:        "Riley",
		PrimaryArchetype:   profile.ArchetypeDeveloper,
		Specializations:    []string{"solidity", "smart contract security", "dapp development"},
		YearsExperience:    7,
		TeachingStyle:      "hands-on projects",
		CommunicationStyle: profile.StyleDirect,
		PreferredLevels:    []profile.KnowledgeLevel{profile.KnowledgeIntermediate, profile.KnowledgeAdvanced},
		Availability: mentor.Availability{
			IsAvailable:    true,
			Days:           []string{"monday", "wednesday", "friday"},
			Timezone:       "America/New_York",
			MaxMentees:     4,
			CurrentMentees: 1,
		},
		Reputation: mentor.Reputation{
			CommunityScore:    9.3,
			SuccessfulMentees: 30,
			CompletionRate:    0.95,
			ResponseTime:      profile.ResponseSameDay,
		},
	}
	scored := ScoreCandidate(n, m, 0.85)
	if scored.Overall <= 0.6 {
		t.Fatalf("same-archetype high-reputation mentor should exceed 0.6 overall, got %f", scored.Overall)
	}
	if scored.Risk != RiskLow {
		t.Fatalf("expected low risk, got %s", scored.Risk)
	}
	if scored.Components.KnowledgeGap != 1.0 {
		t.Fatalf("seven years sits inside the beginner band, expected 1.0, got %f", scored.Components.KnowledgeGap)
	}
	if scored.Components.ArchetypeAlignment != 1.0 {
		t.Fatalf("identical archetypes should align at 1.0, got %f", scored.Components.ArchetypeAlignment)
	}
}

func TestOverallBlendsSimilarityAndComponents(t *testing.T) {
	n := testNewcomer()
	m := testMentor("mentor-12")
	low := ScoreCandidate(n, m, 0.1)
	high := ScoreCandidate(n, m, 0.9)
	if high.Overall <= low.Overall {
		t.Fatalf("higher similarity must raise overall score: %f vs %f", high.Overall, low.Overall)
	}
	if low.Components != high.Components {
		t.Fatal("components must not depend on raw similarity")
	}
}
