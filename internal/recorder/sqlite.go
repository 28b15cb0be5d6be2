package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists events to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS suggestions (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			game      TEXT,
			strategy  TEXT,
			numbers   TEXT,
			bonus     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_suggestions_ts ON suggestions(timestamp)`,

		`CREATE TABLE IF NOT EXISTS updates (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			game        TEXT,
			trigger_by  TEXT,
			draws_added INTEGER,
			years       TEXT,
			note        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_updates_ts ON updates(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSuggestion(evt *SuggestionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO suggestions
		(timestamp, game, strategy, numbers, bonus)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Game, evt.Strategy, evt.Numbers, evt.Bonus,
	)
	return err
}

func (r *SQLiteRecorder) RecordUpdate(evt *UpdateEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO updates
		(timestamp, game, trigger_by, draws_added, years, note)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Game, evt.Trigger, evt.DrawsAdded, evt.Years, evt.Note,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
