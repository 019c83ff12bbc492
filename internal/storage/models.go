package storage

import "time"

// PromptRecord is one stored generation request: the prompt the user
// supplied, the style tag they expected, the artifact the backend
// produced (empty ImagePath = no image) and the insertion time.
// Records are immutable once inserted.
type PromptRecord struct {
	ID        string    // UUID, assigned on insert, never reused
	Prompt    string    // User-supplied prompt text
	Style     string    // Expected style tag (realistic, cyberpunk, cartoon)
	ImagePath string    // Path to the image artifact, "" if none was produced
	CreatedAt time.Time // Assigned by the store, second resolution
}
