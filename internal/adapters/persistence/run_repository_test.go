package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/geode-planner/internal/adapters/persistence"
	"github.com/andrescamacho/geode-planner/internal/domain/planning"
	"github.com/andrescamacho/geode-planner/test/helpers"
)

func newRun(t *testing.T, mode planning.ScoringMode, startedAt time.Time, yields ...planning.BlueprintYield) *planning.Run {
	t.Helper()
	run, err := planning.NewRun(mode, 24, "input.txt", yields, startedAt, 1500*time.Millisecond)
	require.NoError(t, err)
	return run
}

func TestRunRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRunRepository(db)
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	run := newRun(t, planning.ScoringModeQuality, started,
		planning.BlueprintYield{BlueprintID: 2, Yield: 12, Expanded: 400, MemoSize: 90, Elapsed: time.Millisecond},
		planning.BlueprintYield{BlueprintID: 1, Yield: 9, Expanded: 700, MemoSize: 120, Elapsed: 2 * time.Millisecond},
	)

	// Act
	err := repo.Save(context.Background(), run)
	require.NoError(t, err)
	found, err := repo.FindByID(context.Background(), run.ID())

	// Assert
	require.NoError(t, err)
	assert.True(t, run.ID().Equals(found.ID()))
	assert.Equal(t, planning.ScoringModeQuality, found.Mode())
	assert.Equal(t, 24, found.Horizon())
	assert.Equal(t, "input.txt", found.Source())
	assert.Equal(t, int64(33), found.Score())
	assert.Equal(t, 1500*time.Millisecond, found.Duration())
	assert.True(t, started.Equal(found.StartedAt()))
	assert.Equal(t, run.Yields(), found.Yields(), "yields keep evaluation order")
}

func TestRunRepository_FindByIDNotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRunRepository(db)

	_, err := repo.FindByID(context.Background(), planning.NewRunID())

	var notFound *planning.ErrRunNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestRunRepository_ListRecentNewestFirst(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRunRepository(db)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var ids []planning.RunID
	for i := 0; i < 3; i++ {
		run := newRun(t, planning.ScoringModeProduct, base.Add(time.Duration(i)*time.Hour),
			planning.BlueprintYield{BlueprintID: 1, Yield: int64(i + 1)})
		require.NoError(t, repo.Save(context.Background(), run))
		ids = append(ids, run.ID())
	}

	// Act
	runs, err := repo.ListRecent(context.Background(), 2)

	// Assert
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, ids[2].Equals(runs[0].ID()))
	assert.True(t, ids[1].Equals(runs[1].ID()))
	require.Len(t, runs[0].Yields(), 1)
	assert.Equal(t, int64(3), runs[0].Yields()[0].Yield)

	all, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
