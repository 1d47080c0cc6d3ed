// File path: internal/mentor/seed.go
package mentor

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/novachain/mentormatch/internal/common"
)

// ImportSeed loads mentor profiles from a JSONL file (one profile per line)
// into the store. Blank lines are skipped; a malformed line aborts the
// import so a bad seed file is caught at startup rather than at match time.
func ImportSeed(ctx context.Context, store *Store, path string) (int, error) {
	logger := common.Logger()
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open seed file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	imported := 0
	line := 0
	for scanner.Scan() {
		line++
		select {
		case <-ctx.Done():
			return imported, ctx.Err()
		default:
		}
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		var p Profile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return imported, fmt.Errorf("seed line %d: %w", line, err)
		}
		if err := store.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("seed line %d: %w", line, err)
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return imported, fmt.Errorf("read seed file: %w", err)
	}
	logger.Info("mentor: seed import complete", "path", path, "imported", imported)
	return imported, nil
}
