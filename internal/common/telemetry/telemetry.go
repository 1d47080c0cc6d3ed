// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"context"
	"expvar"
	"strings"
	"sync"
	"time"

	"github.com/novachain/mentormatch/internal/common"
)

type spanKey struct{}

type span struct {
	name  string
	start time.Time
}

var (
	initOnce sync.Once

	matchRequestsTotal *expvar.Int
	matchFallbackTotal *expvar.Int

	strategySearchTotal   *expvar.Map
	strategyFailureTotal  *expvar.Map
	strategyLatencyMS     *expvar.Map
	embeddingTotal        *expvar.Int
	embeddingFailureTotal *expvar.Int
	embeddingLatencyMS    *expvar.Int

	indexBatchTotal   *expvar.Int
	indexMentorsTotal *expvar.Int
)

func ensureInit() {
	initOnce.Do(func() {
		matchRequestsTotal = expvar.NewInt("mentormatch_requests_total")
		matchFallbackTotal = expvar.NewInt("mentormatch_fallback_total")

		strategySearchTotal = expvar.NewMap("mentormatch_strategy_search_total")
		strategyFailureTotal = expvar.NewMap("mentormatch_strategy_failure_total")
		strategyLatencyMS = expvar.NewMap("mentormatch_strategy_latency_ms")

		embeddingTotal = expvar.NewInt("mentormatch_embedding_total")
		embeddingFailureTotal = expvar.NewInt("mentormatch_embedding_failures_total")
		embeddingLatencyMS = expvar.NewInt("mentormatch_embedding_latency_ms")

		indexBatchTotal = expvar.NewInt("mentormatch_index_batches_total")
		indexMentorsTotal = expvar.NewInt("mentormatch_index_mentors_total")
	})
}

// StartSpan records a debug-level trace span around an operation. The
// returned func closes the span and logs its duration with any extra attrs.
func StartSpan(ctx context.Context, name string) (context.Context, func(attrs ...interface{})) {
	ensureInit()
	sp := &span{name: name, start: time.Now()}
	ctx = context.WithValue(ctx, spanKey{}, sp)
	logger := common.Logger()
	logger.Debug("trace: start", "span", name)
	return ctx, func(attrs ...interface{}) {
		duration := time.Since(sp.start)
		logger.Debug("trace: end", append([]interface{}{"span", name, "dur", duration}, attrs...)...)
	}
}

// RecordMatchRequest counts one matching request; fallback marks requests
// served by the in-memory path.
func RecordMatchRequest(fallback bool) {
	ensureInit()
	matchRequestsTotal.Add(1)
	if fallback {
		matchFallbackTotal.Add(1)
	}
}

// RecordStrategySearch counts one retrieval strategy execution.
func RecordStrategySearch(strategy string, failed bool, duration time.Duration) {
	ensureInit()
	key := strings.TrimSpace(strings.ToLower(strategy))
	if key == "" {
		key = "unknown"
	}
	strategySearchTotal.Add(key, 1)
	if failed {
		strategyFailureTotal.Add(key, 1)
	}
	if duration > 0 {
		strategyLatencyMS.Add(key, duration.Milliseconds())
	}
}

// RecordEmbedding counts one embedding call.
func RecordEmbedding(failed bool, duration time.Duration) {
	ensureInit()
	embeddingTotal.Add(1)
	if failed {
		embeddingFailureTotal.Add(1)
	}
	if duration > 0 {
		embeddingLatencyMS.Add(duration.Milliseconds())
	}
}

// RecordIndexBatch counts one mentor indexing batch.
func RecordIndexBatch(mentors int) {
	ensureInit()
	if mentors <= 0 {
		return
	}
	indexBatchTotal.Add(1)
	indexMentorsTotal.Add(int64(mentors))
}

// SpanDuration reports elapsed time for the span carried by ctx, if any.
func SpanDuration(ctx context.Context) time.Duration {
	sp, _ := ctx.Value(spanKey{}).(*span)
	if sp == nil {
		return 0
	}
	return time.Since(sp.start)
}
