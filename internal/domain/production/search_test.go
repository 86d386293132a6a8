package production_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

func TestSolve_ReferenceBlueprints(t *testing.T) {
	assert.Equal(t, int64(9), production.Solve(referenceOne(), 24))
	assert.Equal(t, int64(12), production.Solve(referenceTwo(), 24))
}

func TestSolve_ReferenceBlueprintsLongHorizon(t *testing.T) {
	if testing.Short() {
		t.Skip("long horizon search")
	}

	assert.Equal(t, int64(56), production.Solve(referenceOne(), 32))
	assert.Equal(t, int64(62), production.Solve(referenceTwo(), 32))
}

func TestSolve_ZeroHorizon(t *testing.T) {
	assert.Equal(t, int64(0), production.Solve(referenceOne(), 0))
	assert.Equal(t, int64(0), production.Solve(referenceTwo(), 0))
	assert.Equal(t, int64(0), production.Solve(referenceOne(), -3))
}

func TestSolve_MonotonicInHorizon(t *testing.T) {
	for _, bp := range []*production.Blueprint{referenceOne(), referenceTwo()} {
		prev := int64(0)
		for h := 0; h <= 22; h++ {
			got := production.Solve(bp, h)
			assert.GreaterOrEqual(t, got, prev, "blueprint %d horizon %d", bp.ID(), h)
			prev = got
		}
	}
}

func TestSolve_Deterministic(t *testing.T) {
	bp := referenceTwo()
	first := production.Solve(bp, 20)

	for i := 0; i < 3; i++ {
		assert.Equal(t, first, production.Solve(bp, 20))
	}
}

func TestSolve_CheaperBlueprintNeverYieldsLess(t *testing.T) {
	expensive := referenceOne()
	cheap := production.MustNewBlueprint(11, costs(4, 2, 3, 14, 2, 6))
	require.True(t, cheap.Dominates(expensive))

	for _, h := range []int{0, 10, 18, 24} {
		assert.GreaterOrEqual(t, production.Solve(cheap, h), production.Solve(expensive, h), "horizon %d", h)
	}
}

func TestSolve_UnreachableTerminalYieldsZero(t *testing.T) {
	c := costs(4, 2, 3, 14, 2, 7)
	c[production.Obsidian][production.Obsidian] = 1
	bp := production.MustNewBlueprint(5, c)

	assert.Equal(t, int64(0), production.Solve(bp, 24))
}

func TestSolve_FreeTerminalRobots(t *testing.T) {
	bp := production.MustNewBlueprint(6, production.CostTable{})

	// one new geode robot per step: 0+1+...+(h-1)
	assert.Equal(t, int64(10), production.Solve(bp, 5))
}

func TestSearch_RunReportsStats(t *testing.T) {
	search := production.NewSearch(referenceOne())

	res, err := search.Run(context.Background(), 24)

	require.NoError(t, err)
	assert.Equal(t, 1, res.BlueprintID)
	assert.Equal(t, 24, res.Horizon)
	assert.Equal(t, int64(9), res.Yield)
	assert.Greater(t, res.Stats.Expanded, uint64(0))
	assert.Equal(t, search.Memo().Len(), res.Stats.MemoSize)
}

func TestSearch_RejectsNegativeHorizon(t *testing.T) {
	_, err := production.NewSearch(referenceOne()).Run(context.Background(), -1)

	var invalid *production.InvalidHorizonError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, -1, invalid.Horizon)
}

func TestSearch_RejectsNilBlueprint(t *testing.T) {
	_, err := production.NewSearch(nil).Run(context.Background(), 24)

	assert.ErrorIs(t, err, production.ErrNilBlueprint)
}

func TestSearch_StopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	search := production.NewSearch(referenceOne(), production.WithCancelCheckInterval(1))
	_, err := search.Run(ctx, 24)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	var aborted *production.SearchAbortedError
	require.True(t, errors.As(err, &aborted))
	assert.Equal(t, uint64(1), aborted.Explored)
}

func TestSearch_ReportsProgress(t *testing.T) {
	calls := 0
	search := production.NewSearch(referenceTwo(),
		production.WithCancelCheckInterval(1),
		production.WithProgress(0, func(id int, stats production.SearchStats) {
			calls++
			assert.Equal(t, 2, id)
		}),
	)

	_, err := search.Run(context.Background(), 12)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls, 1)
}

func TestSearch_EqualStatesShareOneMemoEntry(t *testing.T) {
	bp := referenceOne()
	a := production.ProductionState{
		TimeRemaining: 10,
		Stock:         production.Quantities{2, 0, 0, 0},
		Rate:          production.Quantities{1, 1, 0, 0},
	}
	b := production.ProductionState{
		TimeRemaining: 10,
		Stock:         production.Quantities{2, 1, 0, 0},
		Rate:          production.Quantities{1, 1, 0, 0},
	}
	viaBuildThenWait := a.Build(bp, production.Clay).Wait(bp)
	viaWaitThenBuild := b.Wait(bp).Build(bp, production.Clay)

	search := production.NewSearch(bp)
	first, err := search.From(context.Background(), viaBuildThenWait)
	require.NoError(t, err)
	size := search.Memo().Len()
	hits := search.Memo().Hits()

	second, err := search.From(context.Background(), viaWaitThenBuild)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, size, search.Memo().Len(), "no new entry for an equal state")
	assert.Equal(t, hits+1, search.Memo().Hits())
}

func TestSearch_IndependentMemos(t *testing.T) {
	one := production.NewSearch(referenceOne())
	two := production.NewSearch(referenceTwo())

	_, err := one.Run(context.Background(), 16)
	require.NoError(t, err)

	assert.Equal(t, 0, two.Memo().Len())
}
