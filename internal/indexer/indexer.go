// File path: internal/indexer/indexer.go
package indexer

import (
	"context"
	"fmt"

	"github.com/novachain/mentormatch/internal/common"
	"github.com/novachain/mentormatch/internal/common/telemetry"
	"github.com/novachain/mentormatch/internal/embed"
	"github.com/novachain/mentormatch/internal/match"
	"github.com/novachain/mentormatch/internal/mentor"
	"github.com/novachain/mentormatch/internal/profile"
	"github.com/novachain/mentormatch/internal/vector"
)

const defaultBatchSize = 32

// Indexer embeds mentor profiles and writes them into the vector index,
// once per archetype namespace and once into the shared namespace.
type Indexer struct {
	embedder  embed.Provider
	index     vector.Index
	mentors   mentor.Reference
	batchSize int
}

// New wires an indexer over its collaborators.
func New(embedder embed.Provider, index vector.Index, mentors mentor.Reference) *Indexer {
	return &Indexer{
		embedder:  embedder,
		index:     index,
		mentors:   mentors,
		batchSize: defaultBatchSize,
	}
}

// Summary reports the outcome of one indexing run.
type Summary struct {
	Mentors int `json:"mentors_indexed"`
	Batches int `json:"batches"`
	Skipped int `json:"skipped"`
}

// Run reindexes the full mentor population. Mentors without an ID are
// skipped and counted, never fatal.
func (ix *Indexer) Run(ctx context.Context) (Summary, error) {
	if ix.embedder == nil || ix.index == nil || ix.mentors == nil {
		return Summary{}, fmt.Errorf("indexer: embedder, index, and mentor store are required")
	}
	logger := common.Logger()
	profiles, err := ix.mentors.All(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("indexer: loading mentors: %w", err)
	}
	if err := ix.ensureNamespaces(ctx); err != nil {
		return Summary{}, err
	}

	var summary Summary
	batch := make([]mentor.Profile, 0, ix.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := ix.indexBatch(ctx, batch); err != nil {
			return err
		}
		summary.Mentors += len(batch)
		summary.Batches++
		batch = batch[:0]
		return nil
	}
	for _, prof := range profiles {
		if prof.ID == "" {
			summary.Skipped++
			continue
		}
		batch = append(batch, prof)
		if len(batch) >= ix.batchSize {
			if err := flush(); err != nil {
				return summary, err
			}
		}
	}
	if err := flush(); err != nil {
		return summary, err
	}
	logger.Info("indexer: run complete",
		"mentors", summary.Mentors,
		"batches", summary.Batches,
		"skipped", summary.Skipped)
	return summary, nil
}

func (ix *Indexer) ensureNamespaces(ctx context.Context) error {
	namespaces := make([]string, 0, 4)
	for _, archetype := range profile.Archetypes() {
		namespaces = append(namespaces, match.NamespaceFor(archetype))
	}
	namespaces = append(namespaces, match.NamespaceAll)
	for _, namespace := range namespaces {
		if err := ix.index.EnsureNamespace(ctx, namespace); err != nil {
			return fmt.Errorf("indexer: ensuring namespace %s: %w", namespace, err)
		}
	}
	return nil
}

// indexBatch embeds one batch and upserts it into the shared namespace plus
// each profile's archetype namespace.
func (ix *Indexer) indexBatch(ctx context.Context, batch []mentor.Profile) error {
	texts := make([]string, 0, len(batch))
	for _, prof := range batch {
		texts = append(texts, prof.SearchText())
	}
	vectors, err := ix.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("indexer: embedding batch: %w", err)
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("indexer: embedding count mismatch: %d texts, %d vectors", len(batch), len(vectors))
	}

	all := make([]vector.Record, 0, len(batch))
	byArchetype := make(map[profile.Archetype][]int, 3)
	for i, prof := range batch {
		all = append(all, vector.Record{
			ID:       prof.ID,
			Document: texts[i],
			Metadata: mentor.FlattenProfile(prof),
		})
		byArchetype[prof.PrimaryArchetype] = append(byArchetype[prof.PrimaryArchetype], i)
	}
	if err := ix.index.Upsert(ctx, match.NamespaceAll, all, vectors); err != nil {
		return fmt.Errorf("indexer: upserting %s: %w", match.NamespaceAll, err)
	}
	for archetype, indices := range byArchetype {
		records := make([]vector.Record, 0, len(indices))
		vecs := make([][]float32, 0, len(indices))
		for _, i := range indices {
			records = append(records, all[i])
			vecs = append(vecs, vectors[i])
		}
		namespace := match.NamespaceFor(archetype)
		if err := ix.index.Upsert(ctx, namespace, records, vecs); err != nil {
			return fmt.Errorf("indexer: upserting %s: %w", namespace, err)
		}
	}
	telemetry.RecordIndexBatch(len(batch))
	return nil
}
