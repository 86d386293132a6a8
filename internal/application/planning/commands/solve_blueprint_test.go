package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/andrescamacho/geode-planner/internal/application/common"
	"github.com/andrescamacho/geode-planner/internal/application/planning/commands"
	"github.com/andrescamacho/geode-planner/internal/domain/production"
	"github.com/andrescamacho/geode-planner/test/helpers"
)

func TestSolveBlueprintHandler_ReturnsYieldAndStats(t *testing.T) {
	// Arrange
	core, logs := observer.New(zap.InfoLevel)
	ctx := common.WithLogger(context.Background(), zap.New(core))
	handler := commands.NewSolveBlueprintHandler()
	bp := helpers.ExampleBlueprints()[1]

	// Act
	resp, err := handler.Handle(ctx, &commands.SolveBlueprintCommand{Blueprint: bp, Horizon: 24, Mode: "quality"})

	// Assert
	require.NoError(t, err)
	solved := resp.(*commands.SolveBlueprintResponse)
	assert.Equal(t, 2, solved.BlueprintID)
	assert.Equal(t, int64(12), solved.Yield)
	assert.Greater(t, solved.Stats.Expanded, uint64(0))

	entries := logs.FilterMessage("blueprint solved").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(12), entries[0].ContextMap()["yield"])
}

func TestSolveBlueprintHandler_Validation(t *testing.T) {
	handler := commands.NewSolveBlueprintHandler()

	_, err := handler.Handle(context.Background(), &commands.SolveBlueprintCommand{Horizon: 24})
	assert.Error(t, err, "blueprint is required")

	_, err = handler.Handle(context.Background(), &commands.SolveBlueprintCommand{
		Blueprint: helpers.ExampleBlueprints()[0],
		Horizon:   -1,
	})
	assert.Error(t, err, "negative horizon")

	_, err = handler.Handle(context.Background(), &commands.EvaluateCatalogCommand{})
	assert.Error(t, err, "wrong request type")
}

func TestSolveBlueprintHandler_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	handler := commands.NewSolveBlueprintHandler()

	_, err := handler.Handle(ctx, &commands.SolveBlueprintCommand{
		Blueprint:           helpers.ExampleBlueprints()[0],
		Horizon:             24,
		CancelCheckInterval: 1,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	var aborted *production.SearchAbortedError
	assert.True(t, errors.As(err, &aborted))
}
