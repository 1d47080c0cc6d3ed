// File path: internal/mentor/types.go
package mentor

import (
	"strings"

	"github.com/novachain/mentormatch/internal/profile"
)

// Availability describes a mentor's scheduling state. The invariant
// CurrentMentees <= MaxMentees holds whenever IsAvailable is true; the store
// and the payload decoder both clamp on the way in.
type Availability struct {
	IsAvailable    bool     `json:"is_available"`
	Days           []string `json:"days,omitempty"`
	Times          []string `json:"times,omitempty"`
	Timezone       string   `json:"timezone,omitempty"`
	MaxMentees     int      `json:"max_mentees"`
	CurrentMentees int      `json:"current_mentees"`
}

// HasCapacity reports whether the mentor can take another mentee.
func (a Availability) HasCapacity() bool {
	return a.IsAvailable && a.CurrentMentees < a.MaxMentees
}

// Reputation bundles community-derived quality signals.
type Reputation struct {
	CommunityScore    float64              `json:"community_reputation"`
	SuccessfulMentees int                  `json:"successful_mentees"`
	CompletionRate    float64              `json:"completion_rate"`
	ResponseTime      profile.ResponseTime `json:"response_time,omitempty"`
}

// Pricing is optional paid-session configuration.
type Pricing struct {
	IsPaid   bool    `json:"is_paid"`
	RateType string  `json:"rate_type,omitempty"` // per_call, per_minute, per_hour
	RateUSD  float64 `json:"rate_usd,omitempty"`
}

// Profile is the supply-side record matched against newcomers. Mentor data
// is reference data: created and updated by the indexing pipeline, read-only
// during matching.
type Profile struct {
	ID                  string                     `json:"id"`
	DisplayName         string                     `json:"display_name,omitempty"`
	PrimaryArchetype    profile.Archetype          `json:"primary_archetype"`
	Specializations     []string                   `json:"specializations,omitempty"`
	YearsExperience     float64                    `json:"years_experience"`
	NotableAchievements []string                   `json:"notable_achievements,omitempty"`
	TeachingStyle       string                     `json:"teaching_style,omitempty"`
	CommunicationStyle  profile.CommunicationStyle `json:"communication_style,omitempty"`
	PreferredLevels     []profile.KnowledgeLevel   `json:"preferred_mentee_levels,omitempty"`
	Availability        Availability               `json:"availability"`
	Reputation          Reputation                 `json:"reputation"`
	Pricing             *Pricing                   `json:"pricing,omitempty"`
}

// Normalize clamps reputation metrics into their documented ranges and
// repairs the availability invariant. Applied at every decode boundary so
// downstream scoring never sees out-of-range values.
func (p *Profile) Normalize() {
	if p == nil {
		return
	}
	p.Reputation.CommunityScore = clamp(p.Reputation.CommunityScore, 0, 10)
	p.Reputation.CompletionRate = clamp(p.Reputation.CompletionRate, 0, 1)
	if p.Reputation.SuccessfulMentees < 0 {
		p.Reputation.SuccessfulMentees = 0
	}
	if p.YearsExperience < 0 {
		p.YearsExperience = 0
	}
	if p.Availability.MaxMentees < 0 {
		p.Availability.MaxMentees = 0
	}
	if p.Availability.CurrentMentees < 0 {
		p.Availability.CurrentMentees = 0
	}
	if p.Availability.IsAvailable && p.Availability.CurrentMentees > p.Availability.MaxMentees {
		p.Availability.CurrentMentees = p.Availability.MaxMentees
	}
}

// AcceptsLevel reports whether the mentor's preferred mentee levels include
// the provided level.
func (p Profile) AcceptsLevel(level profile.KnowledgeLevel) bool {
	for _, preferred := range p.PreferredLevels {
		if preferred == level {
			return true
		}
	}
	return false
}

// SearchText renders the mentor into the free-text form embedded by the
// indexing job.
func (p Profile) SearchText() string {
	parts := make([]string, 0, 8)
	if p.DisplayName != "" {
		parts = append(parts, p.DisplayName)
	}
	parts = append(parts, string(p.PrimaryArchetype)+" crypto mentor")
	if len(p.Specializations) > 0 {
		parts = append(parts, strings.Join(p.Specializations, " "))
	}
	if p.TeachingStyle != "" {
		parts = append(parts, p.TeachingStyle+" teaching style")
	}
	if p.CommunicationStyle != "" {
		parts = append(parts, string(p.CommunicationStyle)+" communication")
	}
	if len(p.NotableAchievements) > 0 {
		parts = append(parts, strings.Join(p.NotableAchievements, " "))
	}
	return strings.Join(parts, " ")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
