// File path: internal/mentor/mapper.go
package mentor

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/novachain/mentormatch/internal/profile"
)

type mentorRow struct {
	ID                 string          `db:"id"`
	DisplayName        sql.NullString  `db:"display_name"`
	Archetype          string          `db:"archetype"`
	Specializations    sql.NullString  `db:"specializations"`
	YearsExperience    float64         `db:"years_experience"`
	Achievements       sql.NullString  `db:"achievements"`
	TeachingStyle      sql.NullString  `db:"teaching_style"`
	CommunicationStyle sql.NullString  `db:"communication_style"`
	PreferredLevels    sql.NullString  `db:"preferred_levels"`
	IsAvailable        bool            `db:"is_available"`
	Days               sql.NullString  `db:"days"`
	Times              sql.NullString  `db:"times"`
	Timezone           sql.NullString  `db:"timezone"`
	MaxMentees         int             `db:"max_mentees"`
	CurrentMentees     int             `db:"current_mentees"`
	Reputation         float64         `db:"reputation"`
	SuccessfulMentees  int             `db:"successful_mentees"`
	CompletionRate     float64         `db:"completion_rate"`
	ResponseTime       sql.NullString  `db:"response_time"`
	IsPaid             bool            `db:"is_paid"`
	RateType           sql.NullString  `db:"rate_type"`
	RateUSD            sql.NullFloat64 `db:"rate_usd"`
}

func rowFromProfile(p Profile) (map[string]interface{}, error) {
	specializations, err := encodeList(p.Specializations)
	if err != nil {
		return nil, fmt.Errorf("encode specializations: %w", err)
	}
	achievements, err := encodeList(p.NotableAchievements)
	if err != nil {
		return nil, fmt.Errorf("encode achievements: %w", err)
	}
	levels := make([]string, 0, len(p.PreferredLevels))
	for _, level := range p.PreferredLevels {
		levels = append(levels, string(level))
	}
	preferredLevels, err := encodeList(levels)
	if err != nil {
		return nil, fmt.Errorf("encode preferred levels: %w", err)
	}
	days, err := encodeList(p.Availability.Days)
	if err != nil {
		return nil, fmt.Errorf("encode days: %w", err)
	}
	times, err := encodeList(p.Availability.Times)
	if err != nil {
		return nil, fmt.Errorf("encode times: %w", err)
	}
	row := map[string]interface{}{
		"id":                  p.ID,
		"display_name":        p.DisplayName,
		"archetype":           string(p.PrimaryArchetype),
		"specializations":     specializations,
		"years_experience":    p.YearsExperience,
		"achievements":        achievements,
		"teaching_style":      p.TeachingStyle,
		"communication_style": string(p.CommunicationStyle),
		"preferred_levels":    preferredLevels,
		"is_available":        p.Availability.IsAvailable,
		"days":                days,
		"times":               times,
		"timezone":            p.Availability.Timezone,
		"max_mentees":         p.Availability.MaxMentees,
		"current_mentees":     p.Availability.CurrentMentees,
		"reputation":          p.Reputation.CommunityScore,
		"successful_mentees":  p.Reputation.SuccessfulMentees,
		"completion_rate":     p.Reputation.CompletionRate,
		"response_time":       string(p.Reputation.ResponseTime),
		"is_paid":             false,
		"rate_type":           "",
		"rate_usd":            nil,
	}
	if p.Pricing != nil {
		row["is_paid"] = p.Pricing.IsPaid
		row["rate_type"] = p.Pricing.RateType
		row["rate_usd"] = p.Pricing.RateUSD
	}
	return row, nil
}

func (r mentorRow) profile() (Profile, error) {
	specializations, err := decodeList(r.Specializations.String)
	if err != nil {
		return Profile{}, fmt.Errorf("decode specializations for %s: %w", r.ID, err)
	}
	achievements, err := decodeList(r.Achievements.String)
	if err != nil {
		return Profile{}, fmt.Errorf("decode achievements for %s: %w", r.ID, err)
	}
	rawLevels, err := decodeList(r.PreferredLevels.String)
	if err != nil {
		return Profile{}, fmt.Errorf("decode preferred levels for %s: %w", r.ID, err)
	}
	days, err := decodeList(r.Days.String)
	if err != nil {
		return Profile{}, fmt.Errorf("decode days for %s: %w", r.ID, err)
	}
	times, err := decodeList(r.Times.String)
	if err != nil {
		return Profile{}, fmt.Errorf("decode times for %s: %w", r.ID, err)
	}
	levels := make([]profile.KnowledgeLevel, 0, len(rawLevels))
	for _, level := range rawLevels {
		levels = append(levels, profile.KnowledgeLevel(level))
	}
	p := Profile{
		ID:                  r.ID,
		DisplayName:         r.DisplayName.String,
		PrimaryArchetype:    profile.Archetype(r.Archetype),
		Specializations:     specializations,
		YearsExperience:     r.YearsExperience,
		NotableAchievements: achievements,
		TeachingStyle:       r.TeachingStyle.String,
		CommunicationStyle:  profile.CommunicationStyle(r.CommunicationStyle.String),
		PreferredLevels:     levels,
		Availability: Availability{
			IsAvailable:    r.IsAvailable,
			Days:           days,
			Times:          times,
			Timezone:       r.Timezone.String,
			MaxMentees:     r.MaxMentees,
			CurrentMentees: r.CurrentMentees,
		},
		Reputation: Reputation{
			CommunityScore:    r.Reputation,
			SuccessfulMentees: r.SuccessfulMentees,
			CompletionRate:    r.CompletionRate,
			ResponseTime:      profile.ResponseTime(r.ResponseTime.String),
		},
	}
	if r.IsPaid || r.RateType.String != "" || r.RateUSD.Valid {
		p.Pricing = &Pricing{IsPaid: r.IsPaid, RateType: r.RateType.String, RateUSD: r.RateUSD.Float64}
	}
	p.Normalize()
	return p, nil
}

func encodeList(values []string) (string, error) {
	if len(values) == 0 {
		return "", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(encoded string) ([]string, error) {
	if encoded == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(encoded), &out); err != nil {
		return nil, err
	}
	return out, nil
}
