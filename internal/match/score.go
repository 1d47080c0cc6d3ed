// File path: internal/match/score.go
package match

import (
	"fmt"
	"strings"

	"github.com/novachain/mentormatch/internal/mentor"
	"github.com/novachain/mentormatch/internal/profile"
)

// Scored is the full scoring output for one candidate on the primary path.
type Scored struct {
	Components   ComponentScores
	Overall      float64
	Explanation  string
	LearningPath string
	Risk         RiskLevel
	Confidence   float64
}

// ScoreCandidate evaluates one mentor against the newcomer. rawSim is the
// deduplicated strategy-weighted similarity; the overall score blends it
// with the six-component breakdown at 60/40.
func ScoreCandidate(n profile.Newcomer, m mentor.Profile, rawSim float64) Scored {
	rawSim = clampUnit(rawSim)
	components := ComponentScores{
		ArchetypeAlignment: archetypeAlignment(n, m),
		KnowledgeGap:       knowledgeGapScore(n, m),
		LearningStyle:      learningStyleScore(n, m),
		CommunityOverlap:   communityOverlapScore(n, m),
		AvailabilityMatch:  availabilityScore(n, m),
		ReputationFactor:   reputationScore(m),
	}
	overall := clampUnit(0.6*rawSim + 0.4*components.Weighted())
	return Scored{
		Components:   components,
		Overall:      overall,
		Explanation:  buildExplanation(n, m, components),
		LearningPath: learningPathSuggestion(n, m),
		Risk:         assessRisk(m, overall),
		Confidence:   confidenceLevel(components, rawSim),
	}
}

// crossIndicators are the specialization keywords that signal useful
// expertise beyond a mentor's own archetype.
var crossIndicators = map[profile.Archetype][]string{
	profile.ArchetypeInvestor:   {"trading", "defi", "yield", "portfolio", "analysis"},
	profile.ArchetypeDeveloper:  {"smart contracts", "solidity", "dapp", "protocol", "security"},
	profile.ArchetypeSocialUser: {"dao", "community", "governance", "nft", "social"},
}

// archetypeSynergy grades cross-archetype pairings, keyed newcomer then
// mentor. Same-archetype pairs score 1.0 and never consult the table.
var archetypeSynergy = map[profile.Archetype]map[profile.Archetype]float64{
	profile.ArchetypeInvestor: {
		profile.ArchetypeDeveloper:  0.8,
		profile.ArchetypeSocialUser: 0.6,
	},
	profile.ArchetypeDeveloper: {
		profile.ArchetypeInvestor:   0.7,
		profile.ArchetypeSocialUser: 0.9,
	},
	profile.ArchetypeSocialUser: {
		profile.ArchetypeInvestor:   0.5,
		profile.ArchetypeDeveloper:  0.8,
	},
}

func archetypeAlignment(n profile.Newcomer, m mentor.Profile) float64 {
	if n.PrimaryArchetype == m.PrimaryArchetype {
		return 1.0
	}
	base := archetypeSynergy[n.PrimaryArchetype][m.PrimaryArchetype]
	if base == 0 {
		base = 0.3
	}
	var bonus float64
	for archetype, keywords := range crossIndicators {
		if archetype == n.PrimaryArchetype {
			continue
		}
		for _, keyword := range keywords {
			if listHasTerm(m.Specializations, keyword) && listHasTerm(n.Interests.SpecificInterests, keyword) {
				bonus += 0.1
			}
		}
	}
	if bonus > 0.3 {
		bonus = 0.3
	}
	return clampUnit(base + bonus)
}

// experienceBands maps an inferred mentee level to the mentor experience
// range (years) considered ideal for it.
var experienceBands = map[profile.KnowledgeLevel][2]float64{
	profile.KnowledgeBeginner:     {2, 10},
	profile.KnowledgeIntermediate: {3, 15},
	profile.KnowledgeAdvanced:     {5, 20},
	profile.KnowledgeExpert:       {8, 25},
}

func knowledgeGapScore(n profile.Newcomer, m mentor.Profile) float64 {
	level := InferMenteeLevel(n)
	if m.AcceptsLevel(level) {
		return 1.0
	}
	band, ok := experienceBands[level]
	if !ok {
		band = experienceBands[profile.KnowledgeBeginner]
	}
	years := m.YearsExperience
	var score float64
	switch {
	case years >= band[0] && years <= band[1]:
		score = 1.0
	case years < band[0]:
		score = years / band[0]
		if score < 0.3 {
			score = 0.3
		}
	default:
		score = band[1] / years
		if score < 0.7 {
			score = 0.7
		}
	}
	if declared := declaredLevel(n.Background.PreviousExperience); declared != "" && m.AcceptsLevel(declared) {
		score += 0.2
	}
	return clampUnit(score)
}

// declaredLevel converts hands-on experience into the knowledge-level scale
// used by mentor preferences.
func declaredLevel(experience profile.ExperienceLevel) profile.KnowledgeLevel {
	switch experience {
	case profile.ExperienceNone, profile.ExperienceExploring:
		return profile.KnowledgeBeginner
	case profile.ExperienceActive:
		return profile.KnowledgeIntermediate
	case profile.ExperienceExperienced:
		return profile.KnowledgeAdvanced
	}
	return ""
}

func learningStyleScore(n profile.Newcomer, m mentor.Profile) float64 {
	base := styleBaseScore(n.Learning.CommunicationStyle, m.CommunicationStyle)
	var bonus float64
	if listHasTerm(n.Learning.LearningStyles, "hands-on") && m.PrimaryArchetype == profile.ArchetypeDeveloper {
		bonus += 0.1
	}
	if listHasTerm(n.Learning.LearningStyles, "structured") && termsOverlap(m.TeachingStyle, "structured") {
		bonus += 0.1
	}
	if listHasTerm(n.Learning.LearningStyles, "collaborative") && m.PrimaryArchetype == profile.ArchetypeSocialUser {
		bonus += 0.1
	}
	if bonus > 0.2 {
		bonus = 0.2
	}
	return clampUnit(base + bonus)
}

// communityOverlapScore blends familiarity overlap, interest overlap, and
// reputation. A mentor with no specializations on record cannot be graded
// on overlap and scores 0 rather than being dropped.
func communityOverlapScore(n profile.Newcomer, m mentor.Profile) float64 {
	if len(m.Specializations) == 0 {
		return 0
	}
	familiarity := setOverlap(n.Background.BlockchainFamiliarity, m.Specializations)
	interests := setOverlap(n.Interests.SpecificInterests, m.Specializations)
	reputation := m.Reputation.CommunityScore / 10
	if reputation > 1 {
		reputation = 1
	}
	return clampUnit(0.3*familiarity + 0.5*interests + 0.2*reputation)
}

func availabilityScore(n profile.Newcomer, m mentor.Profile) float64 {
	tz := timezoneCompatibility(n.Logistics.Timezone, m.Availability.Timezone)
	days := setOverlap(n.Logistics.AvailabilityDays, m.Availability.Days)
	var capacity float64
	if m.Availability.HasCapacity() {
		capacity = 1
	}
	response := responseTimeScore(n.Learning.TimeCommitment, m.Reputation.ResponseTime)
	return clampUnit(0.3*tz + 0.3*days + 0.2*capacity + 0.2*response)
}

// timezoneRegions buckets IANA zone names into coarse regions for
// compatibility grading. Unknown zones land in Other.
var timezoneRegions = map[string]string{
	"America/New_York":    "US_East",
	"America/Toronto":     "US_East",
	"US/Eastern":          "US_East",
	"America/Chicago":     "US_Central",
	"US/Central":          "US_Central",
	"America/Denver":      "US_West",
	"America/Los_Angeles": "US_West",
	"US/Pacific":          "US_West",
	"Europe/London":       "Europe",
	"Europe/Berlin":       "Europe",
	"Europe/Paris":        "Europe",
	"Europe/Madrid":       "Europe",
	"Asia/Singapore":      "Asia",
	"Asia/Tokyo":          "Asia",
	"Asia/Hong_Kong":      "Asia",
	"Asia/Shanghai":       "Asia",
	"Asia/Seoul":          "Asia",
	"Asia/Kolkata":        "Asia",
}

// regionCompatibility grades cross-region pairs, keyed by the pair sorted
// lexicographically. Pairs not listed score the 0.3 floor.
var regionCompatibility = map[[2]string]float64{
	{"US_Central", "US_East"}: 0.9,
	{"US_Central", "US_West"}: 0.9,
	{"US_East", "US_West"}:    0.7,
	{"Europe", "US_East"}:     0.6,
	{"Europe", "US_Central"}:  0.5,
	{"Asia", "US_West"}:       0.6,
	{"Asia", "Europe"}:        0.5,
}

func timezoneRegion(zone string) string {
	if region, ok := timezoneRegions[zone]; ok {
		return region
	}
	return "Other"
}

func timezoneCompatibility(newcomerZone, mentorZone string) float64 {
	if newcomerZone == "" || mentorZone == "" {
		return 0.3
	}
	if newcomerZone == mentorZone {
		return 1.0
	}
	a, b := timezoneRegion(newcomerZone), timezoneRegion(mentorZone)
	if a == b {
		return 0.8
	}
	if a > b {
		a, b = b, a
	}
	if score, ok := regionCompatibility[[2]string{a, b}]; ok {
		return score
	}
	return 0.3
}

// acceptableResponseTimes maps a newcomer's time commitment to the mentor
// response-time buckets that score full marks.
var acceptableResponseTimes = map[string][]profile.ResponseTime{
	"high":   {profile.ResponseImmediate, profile.ResponseSameDay},
	"medium": {profile.ResponseImmediate, profile.ResponseSameDay, profile.ResponseNextDay},
	"low":    {profile.ResponseImmediate, profile.ResponseSameDay, profile.ResponseNextDay, profile.ResponseWeekly},
}

func responseTimeScore(commitment string, response profile.ResponseTime) float64 {
	if response == "" {
		return 0.5
	}
	commitment = strings.ToLower(strings.TrimSpace(commitment))
	acceptable, ok := acceptableResponseTimes[commitment]
	if !ok {
		acceptable = acceptableResponseTimes["medium"]
	}
	for _, rt := range acceptable {
		if rt == response {
			return 1.0
		}
	}
	return 0.5
}

func reputationScore(m mentor.Profile) float64 {
	rep := m.Reputation.CommunityScore / 10
	if rep > 1 {
		rep = 1
	}
	mentees := float64(m.Reputation.SuccessfulMentees) / 50
	if mentees > 1 {
		mentees = 1
	}
	return clampUnit(0.4*rep + 0.3*mentees + 0.3*m.Reputation.CompletionRate)
}

func buildExplanation(n profile.Newcomer, m mentor.Profile, c ComponentScores) string {
	sentences := make([]string, 0, 4)
	if c.ArchetypeAlignment >= 0.8 {
		if n.PrimaryArchetype == m.PrimaryArchetype {
			sentences = append(sentences, fmt.Sprintf("Shares your %s archetype, a strong foundation for mentoring.",
				archetypeLabel(n.PrimaryArchetype)))
		} else {
			sentences = append(sentences, fmt.Sprintf("Strong synergy between your %s profile and their %s background.",
				archetypeLabel(n.PrimaryArchetype), archetypeLabel(m.PrimaryArchetype)))
		}
	}
	if c.KnowledgeGap >= 0.8 {
		sentences = append(sentences, "Their experience level is well matched to where you are now.")
	}
	if c.CommunityOverlap >= 0.7 {
		sentences = append(sentences, "Strong alignment between your interests and their specializations.")
	}
	if c.ReputationFactor >= 0.8 {
		sentences = append(sentences, fmt.Sprintf("Highly rated mentor (%.1f/10) with %d successful mentees.",
			m.Reputation.CommunityScore, m.Reputation.SuccessfulMentees))
	}
	if len(sentences) == 0 {
		sentences = append(sentences, "Good overall compatibility across the matching factors.")
	}
	return strings.Join(sentences, " ")
}

func archetypeLabel(a profile.Archetype) string {
	return strings.ReplaceAll(string(a), "_", " ")
}

// learningPathTemplates is keyed by mentor archetype then inferred mentee
// level; the placeholder receives the mentor's display name.
var learningPathTemplates = map[profile.Archetype]map[profile.KnowledgeLevel]string{
	profile.ArchetypeInvestor: {
		profile.KnowledgeBeginner:     "Start with portfolio basics and risk management fundamentals with %s.",
		profile.KnowledgeIntermediate: "Deepen your market analysis and DeFi strategies with %s.",
		profile.KnowledgeAdvanced:     "Refine advanced trading and portfolio construction with %s.",
	},
	profile.ArchetypeDeveloper: {
		profile.KnowledgeBeginner:     "Begin with blockchain fundamentals and your first smart contract alongside %s.",
		profile.KnowledgeIntermediate: "Build production dApps and study protocol design with %s.",
		profile.KnowledgeAdvanced:     "Work through security audits and protocol architecture with %s.",
	},
	profile.ArchetypeSocialUser: {
		profile.KnowledgeBeginner:     "Get oriented in crypto communities and governance basics with %s.",
		profile.KnowledgeIntermediate: "Take on DAO contributions and community building with %s.",
		profile.KnowledgeAdvanced:     "Lead governance initiatives and community programs with %s.",
	},
}

func learningPathSuggestion(n profile.Newcomer, m mentor.Profile) string {
	name := m.DisplayName
	if name == "" {
		name = m.ID
	}
	if template, ok := learningPathTemplates[m.PrimaryArchetype][InferMenteeLevel(n)]; ok {
		return fmt.Sprintf(template, name)
	}
	return fmt.Sprintf("Work with %s to shape a learning plan around your goals.", name)
}

// assessRisk totals risk points over the mentor's track record and the
// overall score: 3 or more is high, 1 or more is medium.
func assessRisk(m mentor.Profile, overall float64) RiskLevel {
	points := 0
	if m.Reputation.CommunityScore < 7 {
		points += 2
	}
	if m.Reputation.CompletionRate < 0.7 {
		points += 2
	}
	if overall < 0.5 {
		points++
	}
	if m.YearsExperience < 3 {
		points++
	}
	if m.Availability.MaxMentees > 0 &&
		float64(m.Availability.CurrentMentees) >= 0.9*float64(m.Availability.MaxMentees) {
		points++
	}
	switch {
	case points >= 3:
		return RiskHigh
	case points >= 1:
		return RiskMedium
	}
	return RiskLow
}

// confidenceLevel averages the component mean with the raw similarity and
// clamps to [0.1, 0.95] so the caller never sees false certainty.
func confidenceLevel(c ComponentScores, rawSim float64) float64 {
	confidence := (c.Average() + rawSim) / 2
	if confidence < 0.1 {
		return 0.1
	}
	if confidence > 0.95 {
		return 0.95
	}
	return confidence
}

func listHasTerm(list []string, term string) bool {
	for _, entry := range list {
		if termsOverlap(entry, term) {
			return true
		}
	}
	return false
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
