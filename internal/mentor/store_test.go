// File path: internal/mentor/store_test.go
package mentor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/novachain/mentormatch/internal/profile"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mentors.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreUpsertAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	original := sampleProfile()
	if err := store.Upsert(ctx, original); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	loaded, err := store.Get(ctx, original.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.DisplayName != original.DisplayName {
		t.Fatalf("display name mismatch: %s", loaded.DisplayName)
	}
	if loaded.PrimaryArchetype != original.PrimaryArchetype {
		t.Fatalf("archetype mismatch: %s", loaded.PrimaryArchetype)
	}
	if len(loaded.Specializations) != len(original.Specializations) {
		t.Fatalf("specializations mismatch: %v", loaded.Specializations)
	}
	if loaded.Reputation.CommunityScore != original.Reputation.CommunityScore {
		t.Fatalf("reputation mismatch: %f", loaded.Reputation.CommunityScore)
	}
}

func TestStoreUpsertOverwrites(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	p := sampleProfile()
	if err := store.Upsert(ctx, p); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	p.DisplayName = "Avery Updated"
	p.Availability.CurrentMentees = 3
	if err := store.Upsert(ctx, p); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	loaded, err := store.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.DisplayName != "Avery Updated" {
		t.Fatalf("update not applied: %s", loaded.DisplayName)
	}
	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("upsert created a duplicate: %d rows", len(all))
	}
}

func TestStoreGetNotFound(t *testing.T) {
	store := testStore(t)
	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreAvailableFiltersCapacity(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	open := sampleProfile()
	open.ID = "mentor-open"

	full := sampleProfile()
	full.ID = "mentor-full"
	full.Availability.CurrentMentees = full.Availability.MaxMentees

	paused := sampleProfile()
	paused.ID = "mentor-paused"
	paused.Availability.IsAvailable = false

	for _, p := range []Profile{open, full, paused} {
		if err := store.Upsert(ctx, p); err != nil {
			t.Fatalf("upsert %s failed: %v", p.ID, err)
		}
	}
	available, err := store.Available(ctx)
	if err != nil {
		t.Fatalf("available failed: %v", err)
	}
	if len(available) != 1 || available[0].ID != "mentor-open" {
		t.Fatalf("expected only mentor-open, got %+v", available)
	}
}

func TestImportSeed(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	first := sampleProfile()
	second := sampleProfile()
	second.ID = "mentor-2"
	second.PrimaryArchetype = profile.ArchetypeSocialUser

	path := filepath.Join(t.TempDir(), "seed.jsonl")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating seed file: %v", err)
	}
	encoder := json.NewEncoder(file)
	for _, p := range []Profile{first, second} {
		if err := encoder.Encode(p); err != nil {
			t.Fatalf("encoding seed line: %v", err)
		}
	}
	if err := file.Close(); err != nil {
		t.Fatalf("closing seed file: %v", err)
	}

	imported, err := ImportSeed(ctx, store, path)
	if err != nil {
		t.Fatalf("seed import failed: %v", err)
	}
	if imported != 2 {
		t.Fatalf("expected 2 imported mentors, got %d", imported)
	}
	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(all))
	}
}

func TestImportSeedMalformedLineAborts(t *testing.T) {
	store := testStore(t)
	path := filepath.Join(t.TempDir(), "seed.jsonl")
	if err := os.WriteFile(path, []byte("{not json}\n"), 0o644); err != nil {
		t.Fatalf("writing seed file: %v", err)
	}
	if _, err := ImportSeed(context.Background(), store, path); err == nil {
		t.Fatal("malformed seed line must abort the import")
	}
}
