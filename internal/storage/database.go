package storage

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// timeLayout is the format prompt timestamps are persisted in.
// Second resolution, assigned by the store on insert.
const timeLayout = "2006-01-02 15:04:05"

// seedPrompts are example rows inserted into an empty store so a fresh
// install has history to look at. They carry no image.
var seedPrompts = []struct {
	Prompt string
	Style  string
}{
	{"a fantasy castle in the clouds", "realistic"},
	{"a futuristic robot chef in a kitchen", "cyberpunk"},
	{"a panda riding a bicycle in space", "cartoon"},
}

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the prompts table if it does not exist.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS prompts (
		id TEXT PRIMARY KEY,
		prompt TEXT NOT NULL,
		expected_style TEXT NOT NULL,
		image_path TEXT NOT NULL DEFAULT '',
		timestamp TEXT NOT NULL
	);`)
	return err
}

// Seed inserts the example prompt rows when the prompts table is empty.
// Called on every process start; it only writes when it observes an
// empty table, so restarts never duplicate the seed data.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM prompts").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().Format(timeLayout)
	for _, p := range seedPrompts {
		_, err := db.Exec(
			"INSERT INTO prompts (id, prompt, expected_style, image_path, timestamp) VALUES (?, ?, ?, ?, ?)",
			uuid.New().String(), p.Prompt, p.Style, "", now,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
