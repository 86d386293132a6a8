package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/andrescamacho/geode-planner/internal/adapters/metrics"
	"github.com/andrescamacho/geode-planner/internal/application/common"
	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

// SolveBlueprintCommand searches one blueprint over one horizon
type SolveBlueprintCommand struct {
	Blueprint *production.Blueprint `validate:"required"`
	Horizon   int                   `validate:"min=0"`

	// Mode labels metrics and logs; empty means an ad-hoc solve
	Mode string

	// Zero values fall back to the search defaults
	CancelCheckInterval uint64
	ProgressInterval    time.Duration
}

// SolveBlueprintResponse carries the best yield and the search statistics
type SolveBlueprintResponse struct {
	BlueprintID int
	Horizon     int
	Yield       int64
	Stats       production.SearchStats
}

// SolveBlueprintHandler handles the SolveBlueprint command
type SolveBlueprintHandler struct {
	validate *validator.Validate
}

// NewSolveBlueprintHandler creates a new SolveBlueprintHandler
func NewSolveBlueprintHandler() *SolveBlueprintHandler {
	return &SolveBlueprintHandler{validate: validator.New()}
}

// Handle executes the SolveBlueprint command
func (h *SolveBlueprintHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*SolveBlueprintCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SolveBlueprintCommand")
	}

	if err := h.validate.Struct(cmd); err != nil {
		return nil, fmt.Errorf("invalid solve request: %w", err)
	}

	label := cmd.Mode
	if label == "" {
		label = "adhoc"
	}
	logger := common.LoggerFromContext(ctx).With(
		zap.Int("blueprint", cmd.Blueprint.ID()),
		zap.Int("horizon", cmd.Horizon),
		zap.String("mode", label),
	)

	opts := []production.Option{production.WithCancelCheckInterval(cmd.CancelCheckInterval)}
	if cmd.ProgressInterval > 0 {
		opts = append(opts, production.WithProgress(cmd.ProgressInterval, func(_ int, stats production.SearchStats) {
			logger.Debug("search progress",
				zap.Uint64("expanded", stats.Expanded),
				zap.Int("memo_entries", stats.MemoSize),
				zap.Duration("elapsed", stats.Elapsed),
			)
		}))
	}

	search := production.NewSearch(cmd.Blueprint, opts...)
	result, err := search.Run(ctx, cmd.Horizon)
	if err != nil {
		stats := search.Stats()
		metrics.RecordSolve(label, stats, err)
		logger.Warn("search stopped", zap.Uint64("expanded", stats.Expanded), zap.Error(err))
		return nil, fmt.Errorf("failed to solve blueprint %d: %w", cmd.Blueprint.ID(), err)
	}

	metrics.RecordSolve(label, result.Stats, nil)
	logger.Info("blueprint solved",
		zap.Int64("yield", result.Yield),
		zap.Uint64("expanded", result.Stats.Expanded),
		zap.Uint64("memo_hits", result.Stats.MemoHits),
		zap.Int("memo_entries", result.Stats.MemoSize),
		zap.Duration("elapsed", result.Stats.Elapsed),
	)

	return &SolveBlueprintResponse{
		BlueprintID: result.BlueprintID,
		Horizon:     result.Horizon,
		Yield:       result.Yield,
		Stats:       result.Stats,
	}, nil
}
