// File path: internal/profile/validate.go
package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProfile marks validation failures surfaced to API callers before
// any retrieval work starts.
var ErrInvalidProfile = errors.New("invalid newcomer profile")

// Validate checks the fields matching cannot proceed without. It is the only
// error path a matching request surfaces to the caller.
func (n Newcomer) Validate() error {
	if strings.TrimSpace(n.ID) == "" {
		return fmt.Errorf("%w: id required", ErrInvalidProfile)
	}
	if !n.PrimaryArchetype.Known() {
		return fmt.Errorf("%w: unknown primary archetype %q", ErrInvalidProfile, n.PrimaryArchetype)
	}
	switch n.Interests.KnowledgeLevel {
	case KnowledgeBeginner, KnowledgeIntermediate, KnowledgeAdvanced, KnowledgeExpert:
	default:
		return fmt.Errorf("%w: unknown knowledge level %q", ErrInvalidProfile, n.Interests.KnowledgeLevel)
	}
	for archetype, score := range n.ArchetypeConfidences {
		if score < 0 {
			return fmt.Errorf("%w: negative confidence for archetype %q", ErrInvalidProfile, archetype)
		}
	}
	return nil
}
