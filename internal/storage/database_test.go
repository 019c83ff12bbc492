package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

// newTestDB opens a fresh migrated database in a temp directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	return db
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid path",
			path:    dbPath,
			wantErr: false,
		},
		{
			name:    "invalid path",
			path:    "/invalid/path/to/db.db",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("New() expected error, got nil")
				}
				if db != nil {
					_ = db.Close()
				}
				return
			}

			if err != nil {
				t.Errorf("New() unexpected error: %v", err)
				return
			}

			if db == nil {
				t.Fatal("New() returned nil database")
			}

			if db.Stats().MaxOpenConnections != 25 {
				t.Errorf("New() MaxOpenConnections = %v, want 25", db.Stats().MaxOpenConnections)
			}

			_ = db.Close()
		})
	}
}

func TestMigrate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='prompts'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check prompts table: %v", err)
	}
	if count != 1 {
		t.Error("Migrate() prompts table not created")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() first run error = %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() second run error = %v", err)
	}
}

func TestSeed(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	if err := Seed(db); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM prompts").Scan(&count); err != nil {
		t.Fatalf("Failed to count prompts: %v", err)
	}
	if count != len(seedPrompts) {
		t.Errorf("Seed() row count = %d, want %d", count, len(seedPrompts))
	}

	// Seed rows carry no image
	var withImage int
	if err := db.QueryRow("SELECT COUNT(*) FROM prompts WHERE image_path != ''").Scan(&withImage); err != nil {
		t.Fatalf("Failed to count prompts with image: %v", err)
	}
	if withImage != 0 {
		t.Errorf("Seed() inserted %d rows with an image path, want 0", withImage)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	if err := Seed(db); err != nil {
		t.Fatalf("Seed() first run error = %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("Seed() second run error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM prompts").Scan(&count); err != nil {
		t.Fatalf("Failed to count prompts: %v", err)
	}
	if count != len(seedPrompts) {
		t.Errorf("Seed() called twice, row count = %d, want %d", count, len(seedPrompts))
	}
}

func TestSeed_SkipsNonEmptyTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	// Pre-populate with one real record
	repo := NewPromptRepo(db)
	if _, err := repo.Insert(testCtx(), "a dragon", "realistic", ""); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := Seed(db); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM prompts").Scan(&count); err != nil {
		t.Fatalf("Failed to count prompts: %v", err)
	}
	if count != 1 {
		t.Errorf("Seed() on non-empty table changed row count to %d, want 1", count)
	}
}
