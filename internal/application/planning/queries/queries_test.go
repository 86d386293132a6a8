package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/geode-planner/internal/application/planning/queries"
	"github.com/andrescamacho/geode-planner/internal/domain/planning"
	"github.com/andrescamacho/geode-planner/test/helpers"
)

func seedRuns(t *testing.T, repo *helpers.MockRunRepository, n int) []*planning.Run {
	t.Helper()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	var runs []*planning.Run
	for i := 0; i < n; i++ {
		run, err := planning.NewRun(planning.ScoringModeQuality, 24, "catalog.txt",
			[]planning.BlueprintYield{{BlueprintID: 1, Yield: int64(i), Expanded: 10}},
			base.Add(time.Duration(i)*time.Minute), time.Second)
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), run))
		runs = append(runs, run)
	}
	return runs
}

func TestGetRunHistory_NewestFirstWithLimit(t *testing.T) {
	// Arrange
	repo := helpers.NewMockRunRepository()
	runs := seedRuns(t, repo, 4)
	handler := queries.NewGetRunHistoryHandler(repo)

	// Act
	resp, err := handler.Handle(context.Background(), &queries.GetRunHistoryQuery{Limit: 2})

	// Assert
	require.NoError(t, err)
	history := resp.(*queries.GetRunHistoryResponse)
	require.Len(t, history.Runs, 2)
	assert.Equal(t, runs[3].ID().String(), history.Runs[0].ID)
	assert.Equal(t, "quality", history.Runs[0].Mode)
	assert.Equal(t, uint64(10), history.Runs[0].Expanded)
	require.Len(t, history.Runs[0].Blueprints, 1)
	assert.Equal(t, int64(3), history.Runs[0].Blueprints[0].Yield)
}

func TestGetRunHistory_DefaultLimit(t *testing.T) {
	repo := helpers.NewMockRunRepository()
	seedRuns(t, repo, queries.DefaultHistoryLimit+5)

	resp, err := queries.NewGetRunHistoryHandler(repo).Handle(context.Background(), &queries.GetRunHistoryQuery{})

	require.NoError(t, err)
	assert.Len(t, resp.(*queries.GetRunHistoryResponse).Runs, queries.DefaultHistoryLimit)
}

func TestGetRun(t *testing.T) {
	repo := helpers.NewMockRunRepository()
	runs := seedRuns(t, repo, 1)
	handler := queries.NewGetRunHandler(repo)

	resp, err := handler.Handle(context.Background(), &queries.GetRunQuery{RunID: runs[0].ID().String()})
	require.NoError(t, err)
	assert.Equal(t, "catalog.txt", resp.(*queries.RunDTO).Source)

	_, err = handler.Handle(context.Background(), &queries.GetRunQuery{RunID: planning.NewRunID().String()})
	var notFound *planning.ErrRunNotFound
	assert.True(t, errors.As(err, &notFound))

	_, err = handler.Handle(context.Background(), &queries.GetRunQuery{RunID: "nope"})
	assert.Error(t, err)
}
