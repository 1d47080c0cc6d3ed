// File path: internal/profile/validate_test.go
package profile

import (
	"errors"
	"testing"
)

func validNewcomer() Newcomer {
	return Newcomer{
		ID:               "n1",
		PrimaryArchetype: ArchetypeDeveloper,
		Interests:        CryptoInterests{KnowledgeLevel: KnowledgeBeginner},
	}
}

func TestValidateAccepts(t *testing.T) {
	if err := validNewcomer().Validate(); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := map[string]func(*Newcomer){
		"missing id":        func(n *Newcomer) { n.ID = "  " },
		"unknown archetype": func(n *Newcomer) { n.PrimaryArchetype = "wizard" },
		"unknown knowledge": func(n *Newcomer) { n.Interests.KnowledgeLevel = "guru" },
		"negative confidence": func(n *Newcomer) {
			n.ArchetypeConfidences = map[Archetype]float64{ArchetypeInvestor: -0.2}
		},
	}
	for name, mutate := range cases {
		n := validNewcomer()
		mutate(&n)
		err := n.Validate()
		if !errors.Is(err, ErrInvalidProfile) {
			t.Fatalf("%s: expected ErrInvalidProfile, got %v", name, err)
		}
	}
}

func TestNormalizedConfidences(t *testing.T) {
	n := validNewcomer()
	n.ArchetypeConfidences = map[Archetype]float64{
		ArchetypeInvestor:  2,
		ArchetypeDeveloper: 2,
	}
	normalized := n.NormalizedConfidences()
	if normalized[ArchetypeInvestor] != 0.5 || normalized[ArchetypeDeveloper] != 0.5 {
		t.Fatalf("confidences not normalized: %v", normalized)
	}
}

func TestArchetypeKnown(t *testing.T) {
	for _, archetype := range Archetypes() {
		if !archetype.Known() {
			t.Fatalf("canonical archetype %s reported unknown", archetype)
		}
	}
	if Archetype("wizard").Known() {
		t.Fatal("unknown archetype reported known")
	}
}
