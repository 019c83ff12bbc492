package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_prompt_store.go -package=mocks promptstudio/internal/storage PromptStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// PromptStore defines the interface for prompt history storage.
type PromptStore interface {
	// Insert persists a new prompt record with a fresh ID and the current
	// timestamp, and returns the ID.
	Insert(ctx context.Context, prompt, style, imagePath string) (string, error)
	// GetByID returns the record with the given ID.
	// Returns ErrNotFound if no such record exists.
	GetByID(ctx context.Context, id string) (*PromptRecord, error)
	// ListAll returns every stored record in insertion order.
	ListAll(ctx context.Context) ([]PromptRecord, error)
	// PurgeAll deletes every record and returns the distinct non-empty
	// image paths that were referenced, so the caller can reclaim the
	// artifacts.
	PurgeAll(ctx context.Context) ([]string, error)
}

// PromptRepo provides prompt history operations over SQLite.
// It implements the PromptStore interface.
//
// The repo does not initialize its own schema: Migrate and Seed run once
// at process start. Calling any method before that surfaces the backend
// error ("no such table") wrapped in a persistence error.
type PromptRepo struct {
	db *sql.DB
}

// NewPromptRepo creates a new PromptRepo.
func NewPromptRepo(db *sql.DB) *PromptRepo {
	return &PromptRepo{db: db}
}

// Insert persists a new prompt record and returns its generated ID.
// The timestamp is assigned here, never by the caller.
func (r *PromptRepo) Insert(ctx context.Context, prompt, style, imagePath string) (string, error) {
	id := uuid.New().String()
	ts := time.Now().Format(timeLayout)

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO prompts (id, prompt, expected_style, image_path, timestamp) VALUES (?, ?, ?, ?, ?)",
		id, prompt, style, imagePath, ts,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert prompt record: %w", err)
	}

	return id, nil
}

// GetByID returns the record with the given ID, or ErrNotFound.
func (r *PromptRepo) GetByID(ctx context.Context, id string) (*PromptRecord, error) {
	var rec PromptRecord
	var ts string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, prompt, expected_style, image_path, timestamp FROM prompts WHERE id = ?",
		id,
	).Scan(&rec.ID, &rec.Prompt, &rec.Style, &rec.ImagePath, &ts)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query prompt record: %w", err)
	}

	rec.CreatedAt, err = time.Parse(timeLayout, ts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse timestamp %q: %w", ts, err)
	}

	return &rec, nil
}

// ListAll returns a snapshot of every stored record, ordered by rowid.
// The table is append-only, so rowid order is insertion order.
func (r *PromptRepo) ListAll(ctx context.Context) ([]PromptRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, prompt, expected_style, image_path, timestamp FROM prompts ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query prompt records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []PromptRecord
	for rows.Next() {
		var rec PromptRecord
		var ts string
		if err := rows.Scan(&rec.ID, &rec.Prompt, &rec.Style, &rec.ImagePath, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan prompt record: %w", err)
		}
		rec.CreatedAt, err = time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp %q: %w", ts, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prompt records: %w", err)
	}

	return records, nil
}

// PurgeAll deletes every record in a single transaction and returns the
// distinct non-empty image paths that were referenced. Row deletion is
// all-or-nothing; reclaiming the artifacts is the caller's job.
func (r *PromptRepo) PurgeAll(ctx context.Context) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin purge transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rows, err := tx.QueryContext(ctx,
		"SELECT DISTINCT image_path FROM prompts WHERE image_path != ''",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query image paths: %w", err)
	}

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan image path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to read image paths: %w", err)
	}
	_ = rows.Close()

	if _, err := tx.ExecContext(ctx, "DELETE FROM prompts"); err != nil {
		return nil, fmt.Errorf("failed to delete prompt records: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit purge: %w", err)
	}

	return paths, nil
}
