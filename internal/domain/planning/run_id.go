package planning

import (
	"fmt"

	"github.com/google/uuid"
)

// RunID is a value object identifying one catalog evaluation
type RunID struct {
	value string
}

// NewRunID creates a new RunID with a generated UUID
func NewRunID() RunID {
	return RunID{value: uuid.New().String()}
}

// NewRunIDFromString creates a RunID from an existing UUID string
func NewRunIDFromString(id string) (RunID, error) {
	if id == "" {
		return RunID{}, fmt.Errorf("run_id cannot be empty")
	}

	if _, err := uuid.Parse(id); err != nil {
		return RunID{}, fmt.Errorf("invalid run_id format: %w", err)
	}

	return RunID{value: id}, nil
}

// MustNewRunIDFromString creates a RunID from a string, panicking if invalid.
// Only for ids read back from the database.
func MustNewRunIDFromString(id string) RunID {
	rid, err := NewRunIDFromString(id)
	if err != nil {
		panic(err)
	}
	return rid
}

func (r RunID) String() string {
	return r.value
}

// Equals checks if two RunIDs are equal
func (r RunID) Equals(other RunID) bool {
	return r.value == other.value
}

// IsZero checks if the RunID is uninitialized
func (r RunID) IsZero() bool {
	return r.value == ""
}
