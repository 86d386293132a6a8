package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/geode-planner/internal/domain/planning"
)

// GormRunRepository implements planning.RunRepository using GORM
type GormRunRepository struct {
	db *gorm.DB
}

// NewGormRunRepository creates a new GORM run repository
func NewGormRunRepository(db *gorm.DB) *GormRunRepository {
	return &GormRunRepository{db: db}
}

// Save persists a run and its yields in one transaction
func (r *GormRunRepository) Save(ctx context.Context, run *planning.Run) error {
	model := runToModel(run)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID(), err)
	}

	return nil
}

// FindByID retrieves a run with its yields
func (r *GormRunRepository) FindByID(ctx context.Context, id planning.RunID) (*planning.Run, error) {
	var model PlanningRunModel
	result := r.withYields(ctx).
		Where("id = ?", id.String()).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &planning.ErrRunNotFound{ID: id.String()}
		}
		return nil, fmt.Errorf("failed to find run: %w", result.Error)
	}

	return modelToRun(&model)
}

// ListRecent returns the newest runs first
func (r *GormRunRepository) ListRecent(ctx context.Context, limit int) ([]*planning.Run, error) {
	query := r.withYields(ctx).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []PlanningRunModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*planning.Run, len(models))
	for i := range models {
		run, err := modelToRun(&models[i])
		if err != nil {
			return nil, fmt.Errorf("failed to convert run model: %w", err)
		}
		runs[i] = run
	}

	return runs, nil
}

func (r *GormRunRepository) withYields(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Yields", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func runToModel(run *planning.Run) *PlanningRunModel {
	yields := run.Yields()
	model := &PlanningRunModel{
		ID:             run.ID().String(),
		Mode:           run.Mode().String(),
		Horizon:        run.Horizon(),
		Source:         run.Source(),
		Score:          run.Score(),
		BlueprintCount: len(yields),
		StartedAt:      run.StartedAt(),
		DurationNanos:  int64(run.Duration()),
		Yields:         make([]BlueprintYieldModel, len(yields)),
	}

	for i, y := range yields {
		model.Yields[i] = BlueprintYieldModel{
			RunID:        model.ID,
			Position:     i,
			BlueprintID:  y.BlueprintID,
			Yield:        y.Yield,
			Expanded:     int64(y.Expanded),
			MemoSize:     y.MemoSize,
			ElapsedNanos: int64(y.Elapsed),
		}
	}

	return model
}

func modelToRun(model *PlanningRunModel) (*planning.Run, error) {
	id, err := planning.NewRunIDFromString(model.ID)
	if err != nil {
		return nil, err
	}

	mode, err := planning.ParseScoringMode(model.Mode)
	if err != nil {
		return nil, err
	}

	yields := make([]planning.BlueprintYield, len(model.Yields))
	for i, y := range model.Yields {
		yields[i] = planning.BlueprintYield{
			BlueprintID: y.BlueprintID,
			Yield:       y.Yield,
			Expanded:    uint64(y.Expanded),
			MemoSize:    y.MemoSize,
			Elapsed:     time.Duration(y.ElapsedNanos),
		}
	}

	return planning.ReconstructRun(
		id,
		mode,
		model.Horizon,
		model.Source,
		yields,
		model.Score,
		model.StartedAt,
		time.Duration(model.DurationNanos),
	), nil
}
