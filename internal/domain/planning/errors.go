package planning

import "fmt"

// ErrInvalidRun represents validation errors for runs
type ErrInvalidRun struct {
	Field  string
	Reason string
}

func (e *ErrInvalidRun) Error() string {
	return fmt.Sprintf("invalid run: %s - %s", e.Field, e.Reason)
}

// ErrRunNotFound is returned when no run has the requested id
type ErrRunNotFound struct {
	ID string
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run not found: id=%s", e.ID)
}
