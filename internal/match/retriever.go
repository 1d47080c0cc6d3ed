// File path: internal/match/retriever.go
package match

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/novachain/mentormatch/internal/common"
	"github.com/novachain/mentormatch/internal/common/telemetry"
	"github.com/novachain/mentormatch/internal/mentor"
	"github.com/novachain/mentormatch/internal/profile"
	"github.com/novachain/mentormatch/internal/vector"
)

const defaultStrategyTimeout = 5 * time.Second

// strategyPlan describes one retrieval strategy: where to search, how many
// neighbors to pull, and how much its similarity scores count.
type strategyPlan struct {
	name      string
	topK      int
	weight    float64
	namespace func(n profile.Newcomer) string
	where     func(n profile.Newcomer) map[string]interface{}
}

// strategyPlans is the fixed strategy set, executed concurrently per
// request. Weights sum to 1.
var strategyPlans = []strategyPlan{
	{
		name:   StrategyExactArchetype,
		topK:   10,
		weight: 0.5,
		namespace: func(n profile.Newcomer) string {
			return NamespaceFor(n.PrimaryArchetype)
		},
		where: func(n profile.Newcomer) map[string]interface{} {
			return map[string]interface{}{"archetype": map[string]interface{}{"$eq": string(n.PrimaryArchetype)}}
		},
	},
	{
		name:   StrategyCrossArchetype,
		topK:   5,
		weight: 0.3,
		namespace: func(profile.Newcomer) string {
			return NamespaceAll
		},
		where: func(n profile.Newcomer) map[string]interface{} {
			return map[string]interface{}{"archetype": map[string]interface{}{"$ne": string(n.PrimaryArchetype)}}
		},
	},
	{
		name:   StrategyHighReputation,
		topK:   5,
		weight: 0.2,
		namespace: func(profile.Newcomer) string {
			return NamespaceAll
		},
		where: func(profile.Newcomer) map[string]interface{} {
			return combineWhere(
				map[string]interface{}{"reputation": map[string]interface{}{"$gte": 8.0}},
				map[string]interface{}{"successful_mentees": map[string]interface{}{"$gte": 10.0}},
			)
		},
	},
}

// Retriever fans one query vector out across the retrieval strategies.
type Retriever struct {
	index   vector.Index
	timeout time.Duration
}

// NewRetriever wires a retriever over the vector index. A non-positive
// timeout falls back to the default per-strategy budget.
func NewRetriever(index vector.Index, timeout time.Duration) *Retriever {
	if timeout <= 0 {
		timeout = defaultStrategyTimeout
	}
	return &Retriever{index: index, timeout: timeout}
}

// Retrieve runs every strategy concurrently and returns one outcome per
// strategy in plan order. A strategy failure is recorded on its outcome and
// never fails the request as a whole.
func (r *Retriever) Retrieve(ctx context.Context, n profile.Newcomer, filter Filter, queryVec []float32) []StrategyOutcome {
	logger := common.Logger()
	outcomes := make([]StrategyOutcome, len(strategyPlans))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, plan := range strategyPlans {
		i, plan := i, plan
		group.Go(func() error {
			start := time.Now()
			callCtx, cancel := context.WithTimeout(groupCtx, r.timeout)
			defer cancel()
			candidates, err := r.runStrategy(callCtx, plan, n, filter, queryVec)
			telemetry.RecordStrategySearch(plan.name, err != nil, time.Since(start))
			if err != nil {
				logger.Warn("retriever: strategy search failed",
					"strategy", plan.name,
					"error", err)
				outcomes[i] = StrategyOutcome{Strategy: plan.name, Err: err}
				return nil
			}
			outcomes[i] = StrategyOutcome{Strategy: plan.name, Candidates: candidates}
			return nil
		})
	}
	_ = group.Wait()
	return outcomes
}

func (r *Retriever) runStrategy(ctx context.Context, plan strategyPlan, n profile.Newcomer, filter Filter, queryVec []float32) ([]Candidate, error) {
	if r.index == nil {
		return nil, fmt.Errorf("strategy %s: vector index not configured", plan.name)
	}
	where := combineWhere(filter.Where(), plan.where(n))
	points, err := r.index.Query(ctx, plan.namespace(n), queryVec, plan.topK, where)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", plan.name, err)
	}
	candidates := make([]Candidate, 0, len(points))
	for _, point := range points {
		prof := mentor.FromPayload(point.ID, point.Payload)
		if !filter.Matches(prof) {
			continue
		}
		candidates = append(candidates, Candidate{
			Mentor:   prof,
			Score:    float64(point.Score) * plan.weight,
			Strategy: plan.name,
		})
	}
	return candidates, nil
}
