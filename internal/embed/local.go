// File path: internal/embed/local.go
package embed

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
)

const localDimension = 64

// LocalProvider produces deterministic bag-of-words hash embeddings. It
// exists so development and tests run without a hosted embedding service;
// vectors are stable for identical input text.
type LocalProvider struct {
	dimension int
}

func NewLocalProvider(dimension int) *LocalProvider {
	if dimension <= 0 {
		dimension = localDimension
	}
	return &LocalProvider{dimension: dimension}
}

func (l *LocalProvider) Embed(ctx context.Context, input []string) ([][]float32, error) {
	vectors := make([][]float32, len(input))
	for i, text := range input {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		vectors[i] = l.embedOne(text)
	}
	return vectors, nil
}

func (l *LocalProvider) embedOne(text string) []float32 {
	vec := make([]float32, l.dimension)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		vec[int(h.Sum32())%l.dimension]++
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec
}

func (l *LocalProvider) Name() string {
	return "local"
}
