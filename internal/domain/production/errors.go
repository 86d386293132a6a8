package production

import (
	"errors"
	"fmt"
)

// ErrNilBlueprint is returned when a search is requested without a blueprint
var ErrNilBlueprint = errors.New("blueprint is required")

// InvalidBlueprintError indicates a cost table that violates the tier ordering
type InvalidBlueprintError struct {
	BlueprintID int
	Reason      string
}

func (e *InvalidBlueprintError) Error() string {
	return fmt.Sprintf("invalid blueprint %d: %s", e.BlueprintID, e.Reason)
}

// InvalidHorizonError indicates a negative time horizon
type InvalidHorizonError struct {
	Horizon int
}

func (e *InvalidHorizonError) Error() string {
	return fmt.Sprintf("invalid horizon %d: must be zero or greater", e.Horizon)
}

// SearchAbortedError wraps the context error that stopped a search early
type SearchAbortedError struct {
	BlueprintID int
	Explored    uint64
	Err         error
}

func (e *SearchAbortedError) Error() string {
	return fmt.Sprintf("search for blueprint %d aborted after %d states: %v", e.BlueprintID, e.Explored, e.Err)
}

func (e *SearchAbortedError) Unwrap() error {
	return e.Err
}
