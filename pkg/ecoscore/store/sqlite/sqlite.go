package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/verdeloop/ecoscore/pkg/ecoscore/internalerr"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/profile"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	total_score INTEGER NOT NULL DEFAULT 0,
	level INTEGER NOT NULL DEFAULT 1,
	categories TEXT NOT NULL,
	vocabulary TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	profile_id TEXT NOT NULL,
	ts TEXT NOT NULL,
	category TEXT NOT NULL,
	description TEXT NOT NULL,
	points INTEGER NOT NULL,
	FOREIGN KEY(profile_id) REFERENCES profiles(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_activities_profile ON activities(profile_id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// LoadProfile reads a profile and its history. A missing row yields a
// skeleton with found=false. A row whose JSON columns no longer parse is
// treated as corrupt: logged, and replaced by a skeleton rather than
// merged.
func (s *sqliteStore) LoadProfile(ctx context.Context, id string) (profile.Profile, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, total_score, level, categories, vocabulary, created_at
		FROM profiles WHERE id = ?`, id)

	var (
		name      string
		total     int
		level     int
		catsJSON  string
		vocabJSON string
		createdAt string
	)
	if err := row.Scan(&name, &total, &level, &catsJSON, &vocabJSON, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return profile.New(id, ""), false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("load profile %s: %w", id, err)
	}

	p := profile.Profile{
		ID:         id,
		Name:       name,
		TotalScore: total,
		Level:      level,
	}
	if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
		p.CreatedAt = parsed
	}

	if err := json.Unmarshal([]byte(catsJSON), &p.Categories); err != nil {
		slog.Warn("substituting skeleton for unreadable profile record",
			"profile_id", id, "column", "categories",
			"err", fmt.Errorf("%w: %v", internalerr.ErrCorruptProfile, err))
		return corruptFallback(id, name), true, nil
	}
	if err := json.Unmarshal([]byte(vocabJSON), &p.Vocabulary); err != nil {
		slog.Warn("substituting skeleton for unreadable profile record",
			"profile_id", id, "column", "vocabulary",
			"err", fmt.Errorf("%w: %v", internalerr.ErrCorruptProfile, err))
		return corruptFallback(id, name), true, nil
	}

	history, err := s.loadHistory(ctx, id)
	if err != nil {
		return profile.Profile{}, false, err
	}
	p.History = history
	p.Normalize()
	return p, true, nil
}

// corruptFallback builds the skeleton substituted for an unreadable
// record. The name survives; points, vocabulary, and history do not.
func corruptFallback(id, name string) profile.Profile {
	p := profile.New(id, name)
	return p
}

func (s *sqliteStore) loadHistory(ctx context.Context, id string) ([]profile.ActivityRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, category, description, points
		FROM activities WHERE profile_id = ? ORDER BY rowid`, id)
	if err != nil {
		return nil, fmt.Errorf("load history %s: %w", id, err)
	}
	defer rows.Close()

	history := []profile.ActivityRecord{}
	for rows.Next() {
		var rec profile.ActivityRecord
		var ts string
		if err := rows.Scan(&rec.ID, &ts, &rec.Category, &rec.Description, &rec.Points); err != nil {
			return nil, err
		}
		if parsed, perr := time.Parse(time.RFC3339, ts); perr == nil {
			rec.Timestamp = parsed
		}
		history = append(history, rec)
	}
	return history, rows.Err()
}

// SaveProfile overwrites the stored state for p.ID in one transaction.
func (s *sqliteStore) SaveProfile(ctx context.Context, p profile.Profile) error {
	catsJSON, err := json.Marshal(p.Categories)
	if err != nil {
		return fmt.Errorf("%w: marshal categories: %v", internalerr.ErrPersistence, err)
	}
	vocabJSON, err := json.Marshal(p.Vocabulary)
	if err != nil {
		return fmt.Errorf("%w: marshal vocabulary: %v", internalerr.ErrPersistence, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", internalerr.ErrPersistence, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (id, name, total_score, level, categories, vocabulary, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			total_score = excluded.total_score,
			level = excluded.level,
			categories = excluded.categories,
			vocabulary = excluded.vocabulary`,
		p.ID, p.Name, p.TotalScore, p.Level,
		string(catsJSON), string(vocabJSON),
		p.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: upsert profile: %v", internalerr.ErrPersistence, err)
	}

	// Full overwrite keeps the table in lockstep with the in-memory
	// history, which is append-only anyway.
	if _, err := tx.ExecContext(ctx, `DELETE FROM activities WHERE profile_id = ?`, p.ID); err != nil {
		return fmt.Errorf("%w: clear history: %v", internalerr.ErrPersistence, err)
	}
	for _, rec := range p.History {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO activities (id, profile_id, ts, category, description, points)
			VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, p.ID, rec.Timestamp.UTC().Format(time.RFC3339),
			rec.Category, rec.Description, rec.Points,
		)
		if err != nil {
			return fmt.Errorf("%w: insert activity: %v", internalerr.ErrPersistence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", internalerr.ErrPersistence, err)
	}
	return nil
}

// ListProfiles returns all profiles in insertion order.
func (s *sqliteStore) ListProfiles(ctx context.Context) ([]profile.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM profiles ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]profile.Profile, 0, len(ids))
	for _, id := range ids {
		p, _, err := s.LoadProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// FindByName returns the first profile with the given name.
func (s *sqliteStore) FindByName(ctx context.Context, name string) (profile.Profile, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id FROM profiles WHERE name = ? ORDER BY rowid LIMIT 1`, name)
	var id string
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("find profile %q: %w", name, err)
	}
	p, found, err := s.LoadProfile(ctx, id)
	return p, found, err
}
