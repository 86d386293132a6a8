package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/geode-planner/internal/adapters/metrics"
	"github.com/andrescamacho/geode-planner/internal/application/common"
	"github.com/andrescamacho/geode-planner/internal/domain/planning"
	"github.com/andrescamacho/geode-planner/internal/domain/production"
	"github.com/andrescamacho/geode-planner/internal/domain/shared"
)

// SearchDefaults fills in whatever an EvaluateCatalogCommand leaves unset
type SearchDefaults struct {
	QualityHorizon      int
	ProductHorizon      int
	ProductCount        int
	Workers             int
	CancelCheckInterval uint64
	ProgressInterval    time.Duration
}

// HorizonFor returns the default horizon of a scoring mode
func (d SearchDefaults) HorizonFor(mode planning.ScoringMode) int {
	if mode == planning.ScoringModeProduct {
		return d.ProductHorizon
	}
	return d.QualityHorizon
}

// EvaluateCatalogCommand scores a catalog in one mode, solving its
// blueprints concurrently
type EvaluateCatalogCommand struct {
	Blueprints []*production.Blueprint
	Mode       string // "quality" or "product"

	// Optional overrides; nil or zero use the handler defaults
	Horizon      *int
	ProductCount int
	Workers      int

	// Source names the catalog in the run history
	Source string
	// Persist stores the run when a repository is configured
	Persist bool
}

// EvaluateCatalogResponse represents the result of evaluating a catalog
type EvaluateCatalogResponse struct {
	RunID    string // empty when the run was not persisted
	Mode     planning.ScoringMode
	Horizon  int
	Score    int64
	Yields   []planning.BlueprintYield
	Duration time.Duration
}

// EvaluateCatalogHandler handles the EvaluateCatalog command
type EvaluateCatalogHandler struct {
	mediator common.Mediator
	runRepo  planning.RunRepository
	clock    shared.Clock
	defaults SearchDefaults
}

// NewEvaluateCatalogHandler creates a new EvaluateCatalogHandler.
// runRepo may be nil, in which case runs are never persisted.
func NewEvaluateCatalogHandler(
	mediator common.Mediator,
	runRepo planning.RunRepository,
	clock shared.Clock,
	defaults SearchDefaults,
) *EvaluateCatalogHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if defaults.Workers < 1 {
		defaults.Workers = 1
	}

	return &EvaluateCatalogHandler{
		mediator: mediator,
		runRepo:  runRepo,
		clock:    clock,
		defaults: defaults,
	}
}

// Handle executes the EvaluateCatalog command
func (h *EvaluateCatalogHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*EvaluateCatalogCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EvaluateCatalogCommand")
	}

	mode, err := planning.ParseScoringMode(cmd.Mode)
	if err != nil {
		return nil, err
	}
	if len(cmd.Blueprints) == 0 {
		return nil, fmt.Errorf("catalog has no blueprints to evaluate")
	}

	horizon := h.defaults.HorizonFor(mode)
	if cmd.Horizon != nil {
		horizon = *cmd.Horizon
	}
	if horizon < 0 {
		return nil, &production.InvalidHorizonError{Horizon: horizon}
	}

	productCount := h.defaults.ProductCount
	if cmd.ProductCount > 0 {
		productCount = cmd.ProductCount
	}
	workers := h.defaults.Workers
	if cmd.Workers > 0 {
		workers = cmd.Workers
	}

	selected := mode.Select(cmd.Blueprints, productCount)
	logger := common.LoggerFromContext(ctx).With(
		zap.String("mode", mode.String()),
		zap.Int("horizon", horizon),
	)
	logger.Info("evaluating catalog",
		zap.Int("blueprints", len(selected)),
		zap.Int("workers", workers),
	)

	startedAt := h.clock.Now()
	start := time.Now()

	yields, err := h.solveAll(ctx, selected, horizon, mode, workers)
	if err != nil {
		return nil, err
	}

	duration := time.Since(start)
	run, err := planning.NewRun(mode, horizon, cmd.Source, yields, startedAt, duration)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	response := &EvaluateCatalogResponse{
		Mode:     mode,
		Horizon:  horizon,
		Score:    run.Score(),
		Yields:   run.Yields(),
		Duration: duration,
	}

	if cmd.Persist && h.runRepo != nil {
		if err := h.runRepo.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("failed to persist run: %w", err)
		}
		response.RunID = run.ID().String()
	}

	metrics.RecordEvaluation(mode.Label(), len(yields), run.Score(), duration)
	logger.Info("catalog evaluated",
		zap.Int64("score", run.Score()),
		zap.Uint64("expanded", run.TotalExpanded()),
		zap.Duration("elapsed", duration),
		zap.String("run_id", response.RunID),
	)

	return response, nil
}

// solveAll sends one SolveBlueprintCommand per blueprint through the mediator,
// at most workers at a time. The first failure cancels the rest.
func (h *EvaluateCatalogHandler) solveAll(
	ctx context.Context,
	blueprints []*production.Blueprint,
	horizon int,
	mode planning.ScoringMode,
	workers int,
) ([]planning.BlueprintYield, error) {
	yields := make([]planning.BlueprintYield, len(blueprints))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, bp := range blueprints {
		i, bp := i, bp
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			resp, err := h.mediator.Send(gctx, &SolveBlueprintCommand{
				Blueprint:           bp,
				Horizon:             horizon,
				Mode:                mode.Label(),
				CancelCheckInterval: h.defaults.CancelCheckInterval,
				ProgressInterval:    h.defaults.ProgressInterval,
			})
			if err != nil {
				return err
			}

			solved, ok := resp.(*SolveBlueprintResponse)
			if !ok {
				return fmt.Errorf("unexpected response type %T for blueprint %d", resp, bp.ID())
			}

			yields[i] = planning.BlueprintYield{
				BlueprintID: solved.BlueprintID,
				Yield:       solved.Yield,
				Expanded:    solved.Stats.Expanded,
				MemoSize:    solved.Stats.MemoSize,
				Elapsed:     solved.Stats.Elapsed,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return yields, nil
}
