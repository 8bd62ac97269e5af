package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pavelanni/trivium/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements GameStore and FingerprintStore on a sqlite database.
// It is the optional persistent backend; the API works identically against
// the in-memory stores.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dbPath and runs migrations.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		categories TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS questions (
		id TEXT PRIMARY KEY,
		game_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		category TEXT NOT NULL,
		prompt TEXT NOT NULL,
		choices TEXT NOT NULL,
		correct_index INTEGER NOT NULL,
		explanation TEXT NOT NULL DEFAULT '',
		fingerprint TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (game_id) REFERENCES games(id)
	);

	CREATE TABLE IF NOT EXISTS fingerprints (
		owner_key TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		PRIMARY KEY (owner_key, fingerprint)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveGame stores the game and its questions in one transaction.
func (s *SQLiteStore) SaveGame(ctx context.Context, g model.Game) error {
	categories, err := json.Marshal(g.SelectedCategories)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO games (id, categories, created_at) VALUES (?, ?, ?)`,
		g.ID, string(categories), g.CreatedAt,
	)
	if err != nil {
		return err
	}

	for i, q := range g.Questions {
		choices, err := json.Marshal(q.Choices)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO questions (id, game_id, position, category, prompt, choices, correct_index, explanation, fingerprint, source)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			q.ID, g.ID, i, string(q.Category), q.Prompt, string(choices), q.CorrectIndex, q.Explanation, q.Fingerprint, q.Source,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetGame returns a game with its questions in insertion order.
func (s *SQLiteStore) GetGame(ctx context.Context, id string) (model.Game, error) {
	var g model.Game
	var categories string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, categories, created_at FROM games WHERE id = ?`, id,
	).Scan(&g.ID, &categories, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Game{}, ErrNotFound
	}
	if err != nil {
		return model.Game{}, err
	}
	if err := json.Unmarshal([]byte(categories), &g.SelectedCategories); err != nil {
		return model.Game{}, fmt.Errorf("decode categories: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, prompt, choices, correct_index, explanation, fingerprint, source
		 FROM questions WHERE game_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return model.Game{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var q model.StoredQuestion
		var choices string
		if err := rows.Scan(&q.ID, &q.Category, &q.Prompt, &choices, &q.CorrectIndex, &q.Explanation, &q.Fingerprint, &q.Source); err != nil {
			return model.Game{}, err
		}
		if err := json.Unmarshal([]byte(choices), &q.Choices); err != nil {
			return model.Game{}, fmt.Errorf("decode choices: %w", err)
		}
		g.Questions = append(g.Questions, q)
		g.UsedFingerprints = append(g.UsedFingerprints, q.Fingerprint)
	}
	return g, rows.Err()
}

// Add records a fingerprint for an owner. Re-adding is a no-op.
func (s *SQLiteStore) Add(ctx context.Context, ownerKey, fingerprint string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fingerprints (owner_key, fingerprint) VALUES (?, ?)
		 ON CONFLICT(owner_key, fingerprint) DO NOTHING`,
		ownerKey, fingerprint,
	)
	return err
}

func (s *SQLiteStore) Has(ctx context.Context, ownerKey, fingerprint string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM fingerprints WHERE owner_key = ? AND fingerprint = ?`,
		ownerKey, fingerprint,
	).Scan(&count)
	return count > 0, err
}

func (s *SQLiteStore) List(ctx context.Context, ownerKey string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT fingerprint FROM fingerprints WHERE owner_key = ?`, ownerKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var fp string
		if err := rows.Scan(&fp); err != nil {
			return nil, err
		}
		out = append(out, fp)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Clear(ctx context.Context, ownerKey string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM fingerprints WHERE owner_key = ?`, ownerKey,
	)
	return err
}
