// File path: internal/match/query.go
package match

import (
	"strings"

	"github.com/novachain/mentormatch/internal/mentor"
	"github.com/novachain/mentormatch/internal/profile"
)

// BuildQueryText renders a newcomer profile into the free-text query
// embedded for similarity search. The concatenation order is fixed so the
// same profile always produces the same text.
func BuildQueryText(n profile.Newcomer) string {
	parts := make([]string, 0, 12)
	appendTerms := func(terms []string) {
		for _, term := range terms {
			if trimmed := strings.TrimSpace(term); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
	}
	appendTerms(n.Interests.PrimaryGoals)
	appendTerms(n.Interests.SpecificInterests)
	if n.Interests.EntryMotivation != "" {
		parts = append(parts, n.Interests.EntryMotivation)
	}
	appendTerms(n.Learning.LearningStyles)
	appendTerms(n.Requirements.DesiredExpertise)
	if n.Background.Role != "" || n.Background.Industry != "" {
		parts = append(parts, strings.TrimSpace(n.Background.Role+" "+n.Background.Industry))
	}
	parts = append(parts, string(n.PrimaryArchetype)+" crypto mentoring")
	if n.Interests.KnowledgeLevel != "" {
		parts = append(parts, string(n.Interests.KnowledgeLevel)+" level")
	}
	if n.Background.TechnicalProficiency != "" {
		parts = append(parts, n.Background.TechnicalProficiency+" technical background")
	}
	return strings.Join(parts, " ")
}

// Filter is the candidate filter for one matching request. Predicates the
// index can evaluate natively are rendered by Where; the rest run
// client-side through Matches after retrieval.
type Filter struct {
	AvailableOnly       bool
	MinYears            float64
	MaxYears            float64
	ResponseTimes       []profile.ResponseTime
	PreferredArchetypes []profile.Archetype

	DesiredExpertise []string
	Style            profile.CommunicationStyle
	MenteeLevel      profile.KnowledgeLevel
}

// BuildFilter derives the request filter from the newcomer profile and the
// caller's preferences.
func BuildFilter(n profile.Newcomer, prefs Preferences) Filter {
	f := Filter{
		AvailableOnly:       prefs.availabilityRequired(),
		MinYears:            prefs.MinExperienceYears,
		MaxYears:            prefs.MaxExperienceYears,
		ResponseTimes:       prefs.ResponseTimePreference,
		PreferredArchetypes: prefs.PreferredArchetypes,
		DesiredExpertise:    n.Requirements.DesiredExpertise,
		Style:               n.Learning.CommunicationStyle,
		MenteeLevel:         InferMenteeLevel(n),
	}
	if min := float64(n.Requirements.MinimumExperience); min > f.MinYears {
		f.MinYears = min
	}
	return f
}

// Where renders the index-evaluable predicates as a metadata filter
// document. A nil return means no remote filtering is needed.
func (f Filter) Where() map[string]interface{} {
	clauses := make([]map[string]interface{}, 0, 4)
	if f.AvailableOnly {
		clauses = append(clauses, map[string]interface{}{"is_available": map[string]interface{}{"$eq": true}})
	}
	if f.MinYears > 0 {
		clauses = append(clauses, map[string]interface{}{"years_experience": map[string]interface{}{"$gte": f.MinYears}})
	}
	if f.MaxYears > 0 {
		clauses = append(clauses, map[string]interface{}{"years_experience": map[string]interface{}{"$lte": f.MaxYears}})
	}
	if len(f.ResponseTimes) > 0 {
		values := make([]interface{}, 0, len(f.ResponseTimes))
		for _, rt := range f.ResponseTimes {
			values = append(values, string(rt))
		}
		clauses = append(clauses, map[string]interface{}{"response_time": map[string]interface{}{"$in": values}})
	}
	return combineWhere(clauses...)
}

// combineWhere folds where clauses into a single document, wrapping in $and
// only when more than one clause survives.
func combineWhere(clauses ...map[string]interface{}) map[string]interface{} {
	kept := make([]map[string]interface{}, 0, len(clauses))
	for _, clause := range clauses {
		if len(clause) > 0 {
			kept = append(kept, clause)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	parts := make([]interface{}, 0, len(kept))
	for _, clause := range kept {
		parts = append(parts, clause)
	}
	return map[string]interface{}{"$and": parts}
}

// Matches applies the predicates the index cannot express: capacity,
// archetype preference, specialization overlap, communication-style
// compatibility, and preferred mentee level. A mentor with no declared
// preferred levels accepts everyone.
func (f Filter) Matches(m mentor.Profile) bool {
	if f.AvailableOnly && !m.Availability.HasCapacity() {
		return false
	}
	if len(f.PreferredArchetypes) > 0 && !containsArchetype(f.PreferredArchetypes, m.PrimaryArchetype) {
		return false
	}
	if len(f.DesiredExpertise) > 0 && len(m.Specializations) > 0 &&
		!anyTermOverlap(f.DesiredExpertise, m.Specializations) {
		return false
	}
	if f.Style != "" && m.CommunicationStyle != "" && !styleCompatible(f.Style, m.CommunicationStyle) {
		return false
	}
	if f.MenteeLevel != "" && len(m.PreferredLevels) > 0 && !m.AcceptsLevel(f.MenteeLevel) {
		return false
	}
	return true
}

func containsArchetype(set []profile.Archetype, a profile.Archetype) bool {
	for _, candidate := range set {
		if candidate == a {
			return true
		}
	}
	return false
}

// InferMenteeLevel collapses the newcomer's self-reported knowledge and
// hands-on experience into the level mentors declare preferences against.
// The first rule that fires wins.
func InferMenteeLevel(n profile.Newcomer) profile.KnowledgeLevel {
	knowledge := n.Interests.KnowledgeLevel
	experience := n.Background.PreviousExperience
	switch {
	case knowledge == profile.KnowledgeExpert || experience == profile.ExperienceExperienced:
		return profile.KnowledgeAdvanced
	case knowledge == profile.KnowledgeAdvanced || experience == profile.ExperienceActive:
		return profile.KnowledgeIntermediate
	default:
		return profile.KnowledgeBeginner
	}
}

// styleCompatibility lists, per newcomer style, the mentor styles that work
// well together. Identical styles are always compatible.
var styleCompatibility = map[profile.CommunicationStyle][]profile.CommunicationStyle{
	profile.StyleDirect:        {profile.StyleDirect, profile.StyleChallenging},
	profile.StyleCollaborative: {profile.StyleCollaborative, profile.StyleSupportive, profile.StyleDirect},
	profile.StyleSupportive:    {profile.StyleSupportive, profile.StyleCollaborative},
	profile.StyleChallenging:   {profile.StyleChallenging, profile.StyleDirect, profile.StyleCollaborative},
}

func styleCompatible(newcomer, mentorStyle profile.CommunicationStyle) bool {
	if newcomer == mentorStyle {
		return true
	}
	for _, compatible := range styleCompatibility[newcomer] {
		if compatible == mentorStyle {
			return true
		}
	}
	return false
}

// styleBaseScore grades style fit: identical 1.0, compatible 0.8,
// everything else 0.5.
func styleBaseScore(newcomer, mentorStyle profile.CommunicationStyle) float64 {
	switch {
	case newcomer == "" || mentorStyle == "":
		return 0.5
	case newcomer == mentorStyle:
		return 1.0
	case styleCompatible(newcomer, mentorStyle):
		return 0.8
	}
	return 0.5
}

// normalizeTerm lowercases and collapses separator punctuation so
// "smart-contracts" and "Smart Contracts" compare equal.
func normalizeTerm(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	term = strings.ReplaceAll(term, "-", " ")
	term = strings.ReplaceAll(term, "_", " ")
	return term
}

// termsOverlap reports whether two free-text terms refer to the same topic,
// using a bidirectional substring test over normalized forms.
func termsOverlap(a, b string) bool {
	a, b = normalizeTerm(a), normalizeTerm(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// anyTermOverlap reports whether any term in the first list overlaps any
// term in the second.
func anyTermOverlap(terms, others []string) bool {
	for _, term := range terms {
		for _, other := range others {
			if termsOverlap(term, other) {
				return true
			}
		}
	}
	return false
}

// setOverlap returns the matched-term count divided by the size of the
// larger list. Either list empty yields 0.
func setOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	matched := 0
	for _, term := range a {
		for _, other := range b {
			if termsOverlap(term, other) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(max(len(a), len(b)))
}
