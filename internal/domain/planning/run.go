package planning

import (
	"fmt"
	"time"
)

// BlueprintYield is the outcome of solving one blueprint within a run
type BlueprintYield struct {
	BlueprintID int
	Yield       int64
	Expanded    uint64
	MemoSize    int
	Elapsed     time.Duration
}

// Run is the aggregate root for one catalog evaluation.
// Runs are immutable once created; the score is derived from the yields.
type Run struct {
	id        RunID
	mode      ScoringMode
	horizon   int
	source    string
	yields    []BlueprintYield
	score     int64
	startedAt time.Time
	duration  time.Duration
}

// NewRun creates a run from the yields of its selected blueprints
func NewRun(
	mode ScoringMode,
	horizon int,
	source string,
	yields []BlueprintYield,
	startedAt time.Time,
	duration time.Duration,
) (*Run, error) {
	if !mode.IsValid() {
		return nil, &ErrInvalidRun{Field: "mode", Reason: fmt.Sprintf("invalid scoring mode: %s", mode)}
	}
	if horizon < 0 {
		return nil, &ErrInvalidRun{Field: "horizon", Reason: "horizon cannot be negative"}
	}
	if len(yields) == 0 {
		return nil, &ErrInvalidRun{Field: "yields", Reason: "a run needs at least one blueprint"}
	}
	if duration < 0 {
		return nil, &ErrInvalidRun{Field: "duration", Reason: "duration cannot be negative"}
	}

	seen := make(map[int]bool, len(yields))
	for _, y := range yields {
		if seen[y.BlueprintID] {
			return nil, &ErrInvalidRun{
				Field:  "yields",
				Reason: fmt.Sprintf("blueprint %d appears twice", y.BlueprintID),
			}
		}
		if y.Yield < 0 {
			return nil, &ErrInvalidRun{
				Field:  "yields",
				Reason: fmt.Sprintf("blueprint %d has negative yield %d", y.BlueprintID, y.Yield),
			}
		}
		seen[y.BlueprintID] = true
	}

	owned := make([]BlueprintYield, len(yields))
	copy(owned, yields)

	return &Run{
		id:        NewRunID(),
		mode:      mode,
		horizon:   horizon,
		source:    source,
		yields:    owned,
		score:     mode.Score(owned),
		startedAt: startedAt,
		duration:  duration,
	}, nil
}

// ReconstructRun rebuilds a run from persistence without re-validating it
func ReconstructRun(
	id RunID,
	mode ScoringMode,
	horizon int,
	source string,
	yields []BlueprintYield,
	score int64,
	startedAt time.Time,
	duration time.Duration,
) *Run {
	return &Run{
		id:        id,
		mode:      mode,
		horizon:   horizon,
		source:    source,
		yields:    yields,
		score:     score,
		startedAt: startedAt,
		duration:  duration,
	}
}

func (r *Run) ID() RunID {
	return r.id
}

func (r *Run) Mode() ScoringMode {
	return r.mode
}

func (r *Run) Horizon() int {
	return r.horizon
}

// Source names the catalog the run evaluated (a file path, or empty)
func (r *Run) Source() string {
	return r.source
}

func (r *Run) Score() int64 {
	return r.score
}

func (r *Run) StartedAt() time.Time {
	return r.startedAt
}

func (r *Run) Duration() time.Duration {
	return r.duration
}

// Yields returns a copy of the per-blueprint yields in evaluation order
func (r *Run) Yields() []BlueprintYield {
	out := make([]BlueprintYield, len(r.yields))
	copy(out, r.yields)
	return out
}

// TotalExpanded sums the states explored over every blueprint of the run
func (r *Run) TotalExpanded() uint64 {
	var total uint64
	for _, y := range r.yields {
		total += y.Expanded
	}
	return total
}
