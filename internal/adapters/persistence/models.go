package persistence

import "time"

// PlanningRunModel represents the planning_runs table
type PlanningRunModel struct {
	ID             string                `gorm:"column:id;primaryKey"`
	Mode           string                `gorm:"column:mode;not null;index"`
	Horizon        int                   `gorm:"column:horizon;not null"`
	Source         string                `gorm:"column:source"`
	Score          int64                 `gorm:"column:score;not null"`
	BlueprintCount int                   `gorm:"column:blueprint_count;not null"`
	StartedAt      time.Time             `gorm:"column:started_at;not null;index"`
	DurationNanos  int64                 `gorm:"column:duration_ns;not null"`
	Yields         []BlueprintYieldModel `gorm:"foreignKey:RunID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (PlanningRunModel) TableName() string {
	return "planning_runs"
}

// BlueprintYieldModel represents the blueprint_yields table
type BlueprintYieldModel struct {
	ID           int    `gorm:"column:id;primaryKey;autoIncrement"`
	RunID        string `gorm:"column:run_id;not null;index"`
	Position     int    `gorm:"column:position;not null"`
	BlueprintID  int    `gorm:"column:blueprint_id;not null"`
	Yield        int64  `gorm:"column:yield;not null"`
	Expanded     int64  `gorm:"column:expanded;not null"`
	MemoSize     int    `gorm:"column:memo_size;not null"`
	ElapsedNanos int64  `gorm:"column:elapsed_ns;not null"`
}

func (BlueprintYieldModel) TableName() string {
	return "blueprint_yields"
}
