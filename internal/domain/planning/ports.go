package planning

import "context"

// RunRepository defines persistence operations for evaluation runs
type RunRepository interface {
	// Save persists a finished run together with its yields
	Save(ctx context.Context, run *Run) error

	// FindByID retrieves a run by its id
	FindByID(ctx context.Context, id RunID) (*Run, error)

	// ListRecent returns the newest runs first, at most limit of them
	ListRecent(ctx context.Context, limit int) ([]*Run, error)
}
