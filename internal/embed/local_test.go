// File path: internal/embed/local_test.go
package embed

import (
	"context"
	"math"
	"testing"
)

func TestLocalEmbedDeterministic(t *testing.T) {
	provider := NewLocalProvider(0)
	first, err := provider.Embed(context.Background(), []string{"defi yield farming mentor"})
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	second, err := provider.Embed(context.Background(), []string{"defi yield farming mentor"})
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(first) != 1 || len(first[0]) != localDimension {
		t.Fatalf("unexpected shape: %d x %d", len(first), len(first[0]))
	}
	for i := range first[0] {
		if first[0][i] != second[0][i] {
			t.Fatalf("embedding not deterministic at %d", i)
		}
	}
}

func TestLocalEmbedNormalized(t *testing.T) {
	provider := NewLocalProvider(32)
	vectors, err := provider.Embed(context.Background(), []string{"solidity smart contracts security"})
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	var norm float64
	for _, v := range vectors[0] {
		norm += float64(v) * float64(v)
	}
	if math.Abs(norm-1) > 1e-5 {
		t.Fatalf("expected unit norm, got %f", norm)
	}
}

func TestLocalEmbedEmptyInput(t *testing.T) {
	provider := NewLocalProvider(16)
	vectors, err := provider.Embed(context.Background(), []string{""})
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	for _, v := range vectors[0] {
		if v != 0 {
			t.Fatal("empty text should embed to the zero vector")
		}
	}
}
