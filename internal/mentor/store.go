// File path: internal/mentor/store.go
package mentor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a mentor id has no stored profile.
var ErrNotFound = errors.New("mentor not found")

// Reference is the read-only view of the mentor population consumed by the
// matching fallback path.
type Reference interface {
	Get(ctx context.Context, id string) (Profile, error)
	All(ctx context.Context) ([]Profile, error)
	Available(ctx context.Context) ([]Profile, error)
}

// Store wraps a pooled sqlx.DB connection to the mentor reference database.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at the provided
// path. The schema is migrated on first use.
func Open(path string) (*Store, error) {
	cfg := LoadStoreConfig()
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		cfg.Path = trimmed
	}
	return OpenWithConfig(cfg)
}

// OpenWithConfig constructs a Store using the provided configuration.
func OpenWithConfig(cfg StoreConfig) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("mentor store path required")
	}
	cfg.applyDefaults()
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve mentor store path: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mentor store: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.BusyTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mentor store: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("mentor store not initialised")
	}
	// PRAGMA statements are non-transactional and SQLite rejects changing
	// the journal mode inside an explicit transaction, so run them first.
	rest := 0
	for i, stmt := range schemaStatements {
		if !strings.HasPrefix(strings.TrimSpace(stmt), "PRAGMA") {
			break
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
		rest = i + 1
	}
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for i, stmt := range schemaStatements[rest:] {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement %d: %w", rest+i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

var schemaStatements = []string{
	`PRAGMA journal_mode = WAL;`,
	`CREATE TABLE IF NOT EXISTS mentors (
                id TEXT PRIMARY KEY,
                display_name TEXT,
                archetype TEXT NOT NULL,
                specializations TEXT,
                years_experience REAL NOT NULL DEFAULT 0,
                achievements TEXT,
                teaching_style TEXT,
                communication_style TEXT,
                preferred_levels TEXT,
                is_available INTEGER NOT NULL DEFAULT 0,
                days TEXT,
                times TEXT,
                timezone TEXT,
                max_mentees INTEGER NOT NULL DEFAULT 0,
                current_mentees INTEGER NOT NULL DEFAULT 0,
                reputation REAL NOT NULL DEFAULT 0,
                successful_mentees INTEGER NOT NULL DEFAULT 0,
                completion_rate REAL NOT NULL DEFAULT 0,
                response_time TEXT,
                is_paid INTEGER NOT NULL DEFAULT 0,
                rate_type TEXT,
                rate_usd REAL,
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	`CREATE INDEX IF NOT EXISTS idx_mentors_archetype ON mentors(archetype);`,
	`CREATE INDEX IF NOT EXISTS idx_mentors_available ON mentors(is_available, current_mentees);`,
	`CREATE INDEX IF NOT EXISTS idx_mentors_reputation ON mentors(reputation, successful_mentees);`,
}

const mentorColumns = `id, display_name, archetype, specializations, years_experience,
                achievements, teaching_style, communication_style, preferred_levels,
                is_available, days, times, timezone, max_mentees, current_mentees,
                reputation, successful_mentees, completion_rate, response_time,
                is_paid, rate_type, rate_usd`

// Upsert writes a mentor profile, replacing any previous row for the id.
func (s *Store) Upsert(ctx context.Context, p Profile) error {
	if s == nil || s.db == nil {
		return errors.New("mentor store not initialised")
	}
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("mentor id required")
	}
	p.Normalize()
	row, err := rowFromProfile(p)
	if err != nil {
		return err
	}
	const stmt = `INSERT INTO mentors (
                id, display_name, archetype, specializations, years_experience,
                achievements, teaching_style, communication_style, preferred_levels,
                is_available, days, times, timezone, max_mentees, current_mentees,
                reputation, successful_mentees, completion_rate, response_time,
                is_paid, rate_type, rate_usd, updated_at
        ) VALUES (
                :id, :display_name, :archetype, :specializations, :years_experience,
                :achievements, :teaching_style, :communication_style, :preferred_levels,
                :is_available, :days, :times, :timezone, :max_mentees, :current_mentees,
                :reputation, :successful_mentees, :completion_rate, :response_time,
                :is_paid, :rate_type, :rate_usd, CURRENT_TIMESTAMP
        ) ON CONFLICT(id) DO UPDATE SET
                display_name = excluded.display_name,
                archetype = excluded.archetype,
                specializations = excluded.specializations,
                years_experience = excluded.years_experience,
                achievements = excluded.achievements,
                teaching_style = excluded.teaching_style,
                communication_style = excluded.communication_style,
                preferred_levels = excluded.preferred_levels,
                is_available = excluded.is_available,
                days = excluded.days,
                times = excluded.times,
                timezone = excluded.timezone,
                max_mentees = excluded.max_mentees,
                current_mentees = excluded.current_mentees,
                reputation = excluded.reputation,
                successful_mentees = excluded.successful_mentees,
                completion_rate = excluded.completion_rate,
                response_time = excluded.response_time,
                is_paid = excluded.is_paid,
                rate_type = excluded.rate_type,
                rate_usd = excluded.rate_usd,
                updated_at = CURRENT_TIMESTAMP;`
	if _, err := s.db.NamedExecContext(ctx, stmt, row); err != nil {
		return fmt.Errorf("upsert mentor %s: %w", p.ID, err)
	}
	return nil
}

// Get returns the mentor profile stored for the id.
func (s *Store) Get(ctx context.Context, id string) (Profile, error) {
	if s == nil || s.db == nil {
		return Profile{}, errors.New("mentor store not initialised")
	}
	var row mentorRow
	err := s.db.GetContext(ctx, &row, `SELECT `+mentorColumns+` FROM mentors WHERE id = ?`, strings.TrimSpace(id))
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("load mentor %s: %w", id, err)
	}
	return row.profile()
}

// All returns the full mentor population ordered by id.
func (s *Store) All(ctx context.Context) ([]Profile, error) {
	return s.selectProfiles(ctx, `SELECT `+mentorColumns+` FROM mentors ORDER BY id`)
}

// Available returns mentors that are open for new mentees: is_available set
// and current mentee count strictly below the maximum.
func (s *Store) Available(ctx context.Context) ([]Profile, error) {
	return s.selectProfiles(ctx, `SELECT `+mentorColumns+` FROM mentors
                WHERE is_available = 1 AND current_mentees < max_mentees
                ORDER BY id`)
}

func (s *Store) selectProfiles(ctx context.Context, query string) ([]Profile, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("mentor store not initialised")
	}
	var rows []mentorRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query mentors: %w", err)
	}
	out := make([]Profile, 0, len(rows))
	for _, row := range rows {
		p, err := row.profile()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

var _ Reference = (*Store)(nil)
