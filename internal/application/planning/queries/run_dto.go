package queries

import (
	"time"

	"github.com/andrescamacho/geode-planner/internal/domain/planning"
)

// RunDTO is a read model of a persisted evaluation run
type RunDTO struct {
	ID         string        `json:"id"`
	Mode       string        `json:"mode"`
	Horizon    int           `json:"horizon"`
	Source     string        `json:"source,omitempty"`
	Score      int64         `json:"score"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`
	Expanded   uint64        `json:"states_expanded"`
	Blueprints []YieldDTO    `json:"blueprints"`
}

// YieldDTO is the result of one blueprint inside a run
type YieldDTO struct {
	BlueprintID int           `json:"id"`
	Yield       int64         `json:"yield"`
	Expanded    uint64        `json:"states_expanded"`
	MemoSize    int           `json:"memo_entries"`
	Elapsed     time.Duration `json:"elapsed_ns"`
}

func toRunDTO(run *planning.Run) *RunDTO {
	yields := run.Yields()
	dto := &RunDTO{
		ID:         run.ID().String(),
		Mode:       run.Mode().Label(),
		Horizon:    run.Horizon(),
		Source:     run.Source(),
		Score:      run.Score(),
		StartedAt:  run.StartedAt(),
		Duration:   run.Duration(),
		Expanded:   run.TotalExpanded(),
		Blueprints: make([]YieldDTO, len(yields)),
	}
	for i, y := range yields {
		dto.Blueprints[i] = YieldDTO{
			BlueprintID: y.BlueprintID,
			Yield:       y.Yield,
			Expanded:    y.Expanded,
			MemoSize:    y.MemoSize,
			Elapsed:     y.Elapsed,
		}
	}
	return dto
}
