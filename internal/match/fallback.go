// File path: internal/match/fallback.go
package match

import (
	"github.com/novachain/mentormatch/internal/mentor"
	"github.com/novachain/mentormatch/internal/profile"
)

// fallbackSynergy grades archetype pairings on the degraded path. The table
// is symmetric; same-archetype pairs score 1.0 without consulting it.
var fallbackSynergy = map[profile.Archetype]map[profile.Archetype]float64{
	profile.ArchetypeInvestor: {
		profile.ArchetypeDeveloper:  0.6,
		profile.ArchetypeSocialUser: 0.4,
	},
	profile.ArchetypeDeveloper: {
		profile.ArchetypeInvestor:   0.6,
		profile.ArchetypeSocialUser: 0.7,
	},
	profile.ArchetypeSocialUser: {
		profile.ArchetypeInvestor:   0.4,
		profile.ArchetypeDeveloper:  0.7,
	},
}

func fallbackArchetypeScore(n profile.Newcomer, m mentor.Profile) float64 {
	if n.PrimaryArchetype == m.PrimaryArchetype {
		return 1.0
	}
	if score := fallbackSynergy[n.PrimaryArchetype][m.PrimaryArchetype]; score > 0 {
		return score
	}
	return 0.3
}

// fallbackTimezoneScore is the coarse variant used when the vector index is
// out of reach: exact zone 1.0, same region 0.8, everything else 0.4.
func fallbackTimezoneScore(newcomerZone, mentorZone string) float64 {
	if newcomerZone == "" || mentorZone == "" {
		return 0.4
	}
	if newcomerZone == mentorZone {
		return 1.0
	}
	if timezoneRegion(newcomerZone) == timezoneRegion(mentorZone) {
		return 0.8
	}
	return 0.4
}

// FallbackScore grades a mentor without any vector similarity, blending
// archetype fit, interest overlap, communication style, and timezone at
// 40/30/20/10. It returns the blended score and the archetype component.
func FallbackScore(n profile.Newcomer, m mentor.Profile) (score, archetype float64) {
	archetype = fallbackArchetypeScore(n, m)
	wanted := append(append([]string{}, n.Requirements.DesiredExpertise...), n.Interests.SpecificInterests...)
	interests := setOverlap(wanted, m.Specializations)
	style := styleBaseScore(n.Learning.CommunicationStyle, m.CommunicationStyle)
	timezone := fallbackTimezoneScore(n.Logistics.Timezone, m.Availability.Timezone)
	score = clampUnit(0.4*archetype + 0.3*interests + 0.2*style + 0.1*timezone)
	return score, archetype
}
