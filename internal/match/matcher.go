// File path: internal/match/matcher.go
package match

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/novachain/mentormatch/internal/common"
	"github.com/novachain/mentormatch/internal/common/telemetry"
	"github.com/novachain/mentormatch/internal/embed"
	"github.com/novachain/mentormatch/internal/mentor"
	"github.com/novachain/mentormatch/internal/profile"
	"github.com/novachain/mentormatch/internal/vector"
)

// Matcher runs the full matching pipeline: query construction, embedding,
// multi-strategy retrieval, deduplication, scoring, and ranking. When the
// embedding provider or the vector index is out of reach it degrades to the
// in-memory fallback scorer instead of failing the request.
type Matcher struct {
	embedder embed.Provider
	index    vector.Index
	mentors  mentor.Reference
	timeout  time.Duration
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithStrategyTimeout overrides the per-strategy search budget.
func WithStrategyTimeout(timeout time.Duration) Option {
	return func(m *Matcher) {
		if timeout > 0 {
			m.timeout = timeout
		}
	}
}

// NewMatcher wires the pipeline over its collaborators. The mentor
// reference store is required; the embedder and index may be nil, forcing
// the fallback path.
func NewMatcher(embedder embed.Provider, index vector.Index, mentors mentor.Reference, opts ...Option) *Matcher {
	m := &Matcher{
		embedder: embedder,
		index:    index,
		mentors:  mentors,
		timeout:  defaultStrategyTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match returns the ranked mentor matches for a newcomer. Results are
// sorted by score descending with mentor ID as the tie-break, filtered by
// the minimum score, and truncated to the caller's limit.
func (m *Matcher) Match(ctx context.Context, n profile.Newcomer, prefs Preferences) ([]Result, error) {
	ctx, finish := telemetry.StartSpan(ctx, "match.request")
	defer finish("newcomer_id", n.ID)
	if err := n.Validate(); err != nil {
		return nil, err
	}
	logger := common.Logger()

	candidates, usedPrimary := m.retrieveCandidates(ctx, n, prefs)
	if !usedPrimary || len(candidates) == 0 {
		if usedPrimary {
			logger.Info("matcher: no candidates from retrieval, using fallback", "newcomer_id", n.ID)
		}
		results, err := m.fallbackMatch(ctx, n, prefs)
		telemetry.RecordMatchRequest(true)
		return results, err
	}

	results := make([]Result, 0, len(candidates))
	for _, candidate := range candidates {
		scored := ScoreCandidate(n, candidate.Mentor, candidate.Score)
		if scored.Overall < prefs.minScore() {
			continue
		}
		components := scored.Components
		results = append(results, Result{
			Mentor:             candidate.Mentor,
			Score:              scored.Overall,
			ArchetypeAlignment: components.ArchetypeAlignment,
			Explanation:        scored.Explanation,
			LearningPath:       scored.LearningPath,
			Strategy:           candidate.Strategy,
			Confidence:         scored.Confidence,
			Risk:               scored.Risk,
			Components:         &components,
		})
	}
	if len(results) == 0 {
		logger.Info("matcher: all candidates below minimum score, using fallback",
			"newcomer_id", n.ID,
			"min_score", prefs.minScore())
		fallbackResults, err := m.fallbackMatch(ctx, n, prefs)
		telemetry.RecordMatchRequest(true)
		return fallbackResults, err
	}
	rankResults(results)
	telemetry.RecordMatchRequest(false)
	logger.Info("matcher: match complete",
		"newcomer_id", n.ID,
		"candidates", len(candidates),
		"results", min(len(results), prefs.maxResults()),
		"duration", telemetry.SpanDuration(ctx))
	return truncate(results, prefs.maxResults()), nil
}

// retrieveCandidates runs the primary similarity path. The second return
// is false when the path could not run at all and the fallback should take
// over.
func (m *Matcher) retrieveCandidates(ctx context.Context, n profile.Newcomer, prefs Preferences) ([]Candidate, bool) {
	logger := common.Logger()
	if m.embedder == nil || m.index == nil {
		return nil, false
	}
	queryText := BuildQueryText(n)
	vectors, err := m.embedder.Embed(ctx, []string{queryText})
	if err != nil || len(vectors) == 0 {
		logger.Warn("matcher: query embedding failed", "newcomer_id", n.ID, "error", err)
		return nil, false
	}
	filter := BuildFilter(n, prefs)
	retriever := NewRetriever(m.index, m.timeout)
	outcomes := retriever.Retrieve(ctx, n, filter, vectors[0])
	failed := 0
	for _, outcome := range outcomes {
		if outcome.Failed() {
			failed++
		}
	}
	if failed == len(outcomes) {
		logger.Warn("matcher: every retrieval strategy failed", "newcomer_id", n.ID)
		return nil, false
	}
	return Dedupe(outcomes), true
}

// fallbackMatch scores the available mentor population in memory with the
// four-factor heuristic. Scores at or below the fixed 0.3 floor are
// discarded.
func (m *Matcher) fallbackMatch(ctx context.Context, n profile.Newcomer, prefs Preferences) ([]Result, error) {
	if m.mentors == nil {
		return nil, fmt.Errorf("fallback matching: mentor store not configured")
	}
	available, err := m.mentors.Available(ctx)
	if err != nil {
		return nil, fmt.Errorf("fallback matching: %w", err)
	}
	results := make([]Result, 0, len(available))
	for _, prof := range available {
		if !prof.Availability.HasCapacity() {
			continue
		}
		score, archetype := FallbackScore(n, prof)
		if score <= defaultMinScore {
			continue
		}
		results = append(results, Result{
			Mentor:             prof,
			Score:              score,
			ArchetypeAlignment: archetype,
			Explanation:        "Matched on archetype fit, shared interests, and availability.",
			LearningPath:       learningPathSuggestion(n, prof),
			Strategy:           StrategyFallback,
		})
	}
	rankResults(results)
	common.Logger().Info("matcher: fallback match complete",
		"newcomer_id", n.ID,
		"pool", len(available),
		"results", min(len(results), prefs.maxResults()))
	return truncate(results, prefs.maxResults()), nil
}

// rankResults orders by score descending, breaking ties on mentor ID so the
// ordering is stable across runs.
func rankResults(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Mentor.ID < results[j].Mentor.ID
	})
}

func truncate(results []Result, limit int) []Result {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
