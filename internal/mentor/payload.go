// File path: internal/mentor/payload.go
package mentor

import (
	"strconv"
	"strings"

	"github.com/novachain/mentormatch/internal/profile"
)

// FlattenProfile renders a mentor into the scalar-only metadata shape the
// vector index stores alongside each point. List fields are comma-joined
// because the index only accepts scalar metadata values.
func FlattenProfile(p Profile) map[string]interface{} {
	metadata := map[string]interface{}{
		"mentor_id":          p.ID,
		"archetype":          string(p.PrimaryArchetype),
		"years_experience":   p.YearsExperience,
		"is_available":       p.Availability.IsAvailable,
		"max_mentees":        p.Availability.MaxMentees,
		"current_mentees":    p.Availability.CurrentMentees,
		"reputation":         p.Reputation.CommunityScore,
		"successful_mentees": p.Reputation.SuccessfulMentees,
		"completion_rate":    p.Reputation.CompletionRate,
	}
	if p.DisplayName != "" {
		metadata["display_name"] = p.DisplayName
	}
	if len(p.Specializations) > 0 {
		metadata["specializations"] = strings.Join(p.Specializations, ", ")
	}
	if p.TeachingStyle != "" {
		metadata["teaching_style"] = p.TeachingStyle
	}
	if p.CommunicationStyle != "" {
		metadata["communication_style"] = string(p.CommunicationStyle)
	}
	if len(p.PreferredLevels) > 0 {
		levels := make([]string, 0, len(p.PreferredLevels))
		for _, level := range p.PreferredLevels {
			levels = append(levels, string(level))
		}
		metadata["preferred_levels"] = strings.Join(levels, ", ")
	}
	if len(p.Availability.Days) > 0 {
		metadata["days"] = strings.Join(p.Availability.Days, ", ")
	}
	if p.Availability.Timezone != "" {
		metadata["timezone"] = p.Availability.Timezone
	}
	if p.Reputation.ResponseTime != "" {
		metadata["response_time"] = string(p.Reputation.ResponseTime)
	}
	return metadata
}

// FromPayload rebuilds a mentor profile from index metadata. Missing or
// malformed fields decode to zero values rather than errors so that one bad
// record degrades its own scores instead of breaking a result set.
func FromPayload(id string, payload map[string]interface{}) Profile {
	p := Profile{ID: id}
	if payload == nil {
		return p
	}
	if v := payloadString(payload, "mentor_id"); v != "" {
		p.ID = v
	}
	p.DisplayName = payloadString(payload, "display_name")
	p.PrimaryArchetype = profile.Archetype(payloadString(payload, "archetype"))
	p.Specializations = splitList(payloadString(payload, "specializations"))
	p.YearsExperience = payloadFloat(payload, "years_experience")
	p.TeachingStyle = payloadString(payload, "teaching_style")
	p.CommunicationStyle = profile.CommunicationStyle(payloadString(payload, "communication_style"))
	for _, level := range splitList(payloadString(payload, "preferred_levels")) {
		p.PreferredLevels = append(p.PreferredLevels, profile.KnowledgeLevel(level))
	}
	p.Availability = Availability{
		IsAvailable:    payloadBool(payload, "is_available"),
		Days:           splitList(payloadString(payload, "days")),
		Timezone:       payloadString(payload, "timezone"),
		MaxMentees:     int(payloadFloat(payload, "max_mentees")),
		CurrentMentees: int(payloadFloat(payload, "current_mentees")),
	}
	p.Reputation = Reputation{
		CommunityScore:    payloadFloat(payload, "reputation"),
		SuccessfulMentees: int(payloadFloat(payload, "successful_mentees")),
		CompletionRate:    payloadFloat(payload, "completion_rate"),
		ResponseTime:      profile.ResponseTime(payloadString(payload, "response_time")),
	}
	p.Normalize()
	return p
}

func payloadString(payload map[string]interface{}, key string) string {
	if raw, ok := payload[key]; ok {
		if s, ok := raw.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func payloadFloat(payload map[string]interface{}, key string) float64 {
	switch v := payload[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return parsed
		}
	}
	return 0
}

func payloadBool(payload map[string]interface{}, key string) bool {
	switch v := payload[key].(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return parsed
		}
	}
	return false
}

func splitList(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
