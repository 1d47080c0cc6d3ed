// File path: internal/mentor/payload_test.go
package mentor

import (
	"testing"

	"github.com/novachain/mentormatch/internal/profile"
)

func sampleProfile() Profile {
	return Profile{
		ID:                 "mentor-1",
		DisplayName:        "Avery",
		PrimaryArchetype:   profile.ArchetypeDeveloper,
		Specializations:    []string{"solidity", "smart contract security"},
		YearsExperience:    7,
		TeachingStyle:      "hands-on",
		CommunicationStyle: profile.StyleDirect,
		PreferredLevels:    []profile.KnowledgeLevel{profile.KnowledgeIntermediate, profile.KnowledgeAdvanced},
		Availability: Availability{
			IsAvailable:    true,
			Days:           []string{"tuesday", "thursday"},
			Timezone:       "Europe/Berlin",
			MaxMentees:     4,
			CurrentMentees: 1,
		},
		Reputation: Reputation{
			CommunityScore:    8.4,
			SuccessfulMentees: 15,
			CompletionRate:    0.88,
			ResponseTime:      profile.ResponseNextDay,
		},
	}
}

func TestFlattenProfileScalarOnly(t *testing.T) {
	metadata := FlattenProfile(sampleProfile())
	for key, value := range metadata {
		switch value.(type) {
		case string, bool, int, float64:
		default:
			t.Fatalf("metadata key %q has non-scalar value %T", key, value)
		}
	}
	if metadata["specializations"] != "solidity, smart contract security" {
		t.Fatalf("specializations not comma-joined: %v", metadata["specializations"])
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	original := sampleProfile()
	decoded := FromPayload(original.ID, FlattenProfile(original))
	if decoded.ID != original.ID {
		t.Fatalf("id mismatch: %s", decoded.ID)
	}
	if decoded.PrimaryArchetype != original.PrimaryArchetype {
		t.Fatalf("archetype mismatch: %s", decoded.PrimaryArchetype)
	}
	if len(decoded.Specializations) != 2 || decoded.Specializations[1] != "smart contract security" {
		t.Fatalf("specializations mismatch: %v", decoded.Specializations)
	}
	if len(decoded.PreferredLevels) != 2 || decoded.PreferredLevels[0] != profile.KnowledgeIntermediate {
		t.Fatalf("preferred levels mismatch: %v", decoded.PreferredLevels)
	}
	if !decoded.Availability.HasCapacity() {
		t.Fatal("availability lost in round trip")
	}
	if decoded.Reputation.CommunityScore != original.Reputation.CommunityScore {
		t.Fatalf("reputation mismatch: %f", decoded.Reputation.CommunityScore)
	}
}

func TestFromPayloadTolerantOfMalformedFields(t *testing.T) {
	decoded := FromPayload("mentor-x", map[string]interface{}{
		"archetype":        "investor",
		"years_experience": "not a number",
		"is_available":     "yes please",
		"reputation":       "9.5",
	})
	if decoded.ID != "mentor-x" {
		t.Fatalf("id mismatch: %s", decoded.ID)
	}
	if decoded.YearsExperience != 0 {
		t.Fatalf("malformed years should decode to 0, got %f", decoded.YearsExperience)
	}
	if decoded.Availability.IsAvailable {
		t.Fatal("malformed bool should decode to false")
	}
	if decoded.Reputation.CommunityScore != 9.5 {
		t.Fatalf("numeric string should parse, got %f", decoded.Reputation.CommunityScore)
	}
}

func TestFromPayloadNilPayload(t *testing.T) {
	decoded := FromPayload("mentor-y", nil)
	if decoded.ID != "mentor-y" {
		t.Fatalf("expected id to survive, got %s", decoded.ID)
	}
}

func TestNormalizeClampsRanges(t *testing.T) {
	p := Profile{
		YearsExperience: -2,
		Availability:    Availability{IsAvailable: true, MaxMentees: 3, CurrentMentees: 9},
		Reputation:      Reputation{CommunityScore: 14, CompletionRate: 1.4, SuccessfulMentees: -1},
	}
	p.Normalize()
	if p.Reputation.CommunityScore != 10 || p.Reputation.CompletionRate != 1 {
		t.Fatalf("reputation not clamped: %+v", p.Reputation)
	}
	if p.Availability.CurrentMentees != 3 {
		t.Fatalf("availability invariant not repaired: %+v", p.Availability)
	}
	if p.YearsExperience != 0 || p.Reputation.SuccessfulMentees != 0 {
		t.Fatal("negative values not zeroed")
	}
}
