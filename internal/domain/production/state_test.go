package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

func TestInitialState(t *testing.T) {
	s := production.InitialState(24)

	assert.Equal(t, 24, s.TimeRemaining)
	assert.Equal(t, production.Quantities{1, 0, 0, 0}, s.Rate)
	assert.Equal(t, production.Quantities{}, s.Stock)
	assert.Equal(t, int64(0), s.Yield())
}

func TestState_BuildCreditsExistingRobotsOnly(t *testing.T) {
	bp := referenceOne()
	s := production.ProductionState{
		TimeRemaining: 10,
		Stock:         production.Quantities{5, 0, 0, 0},
		Rate:          production.Quantities{1, 2, 0, 0},
	}
	s.Skip[production.Ore] = true

	next := s.Build(bp, production.Clay)

	assert.Equal(t, 9, next.TimeRemaining)
	assert.Equal(t, production.Quantities{4, 2, 0, 0}, next.Stock, "5-2+1 ore, 0+2 clay")
	assert.Equal(t, production.Quantities{1, 3, 0, 0}, next.Rate)
	assert.False(t, next.Skip[production.Ore], "builds clear skip flags")
	assert.Equal(t, int64(5), s.Stock[production.Ore], "receiver is untouched")
}

func TestState_WaitFlagsAffordableTiers(t *testing.T) {
	bp := referenceOne()
	s := production.ProductionState{
		TimeRemaining: 10,
		Stock:         production.Quantities{3, 5, 0, 0},
		Rate:          production.Quantities{1, 1, 0, 0},
	}

	next := s.Wait(bp)

	assert.Equal(t, production.Quantities{4, 6, 0, 0}, next.Stock)
	assert.False(t, next.Skip[production.Ore], "ore robot needs 4 ore")
	assert.True(t, next.Skip[production.Clay])
	assert.False(t, next.Skip[production.Obsidian], "obsidian robot needs 14 clay")
}

func TestSuccessors_TerminalBuildIsExclusive(t *testing.T) {
	bp := referenceOne()
	s := production.ProductionState{
		TimeRemaining: 5,
		Stock:         production.Quantities{10, 20, 7, 0},
		Rate:          production.Quantities{1, 1, 1, 0},
	}

	next := s.Successors(bp, nil)

	require.Len(t, next, 1)
	assert.Equal(t, int64(1), next[0].Rate[production.Geode])
	assert.Equal(t, production.Quantities{9, 21, 1, 0}, next[0].Stock)
}

func TestSuccessors_PriorityOrderAndWaitBranch(t *testing.T) {
	bp := referenceOne()
	s := production.ProductionState{
		TimeRemaining: 10,
		Stock:         production.Quantities{4, 14, 0, 0},
		Rate:          production.Quantities{1, 1, 0, 0},
	}

	next := s.Successors(bp, nil)

	require.Len(t, next, 4)
	assert.Equal(t, int64(1), next[0].Rate[production.Obsidian])
	assert.Equal(t, int64(2), next[1].Rate[production.Clay])
	assert.Equal(t, int64(2), next[2].Rate[production.Ore])
	assert.Equal(t, s.Rate, next[3].Rate, "last successor waits")
}

func TestSuccessors_RespectsSkipFlags(t *testing.T) {
	bp := referenceOne()
	s := production.ProductionState{
		TimeRemaining: 10,
		Stock:         production.Quantities{4, 0, 0, 0},
		Rate:          production.Quantities{1, 0, 0, 0},
	}
	s.Skip[production.Clay] = true

	next := s.Successors(bp, nil)

	require.Len(t, next, 2)
	assert.Equal(t, int64(2), next[0].Rate[production.Ore])
	assert.Equal(t, int64(0), next[1].Rate[production.Clay])
}

func TestSuccessors_RespectsRateCap(t *testing.T) {
	bp := referenceOne()
	s := production.ProductionState{
		TimeRemaining: 10,
		Stock:         production.Quantities{4, 0, 0, 0},
		Rate:          production.Quantities{4, 0, 0, 0},
	}

	next := s.Successors(bp, nil)

	for _, n := range next {
		assert.Equal(t, int64(4), n.Rate[production.Ore], "ore rate already covers every build")
	}
}

func TestSuccessors_LateBuildGuard(t *testing.T) {
	bp := referenceOne()
	rich := production.Quantities{100, 100, 0, 0}

	cases := []struct {
		name string
		time int
		want int
	}{
		{name: "one step left only waits", time: 1, want: 1},
		{name: "two steps left may add obsidian", time: 2, want: 2},
		{name: "three steps left may add clay", time: 3, want: 3},
		{name: "four steps left may add ore", time: 4, want: 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := production.ProductionState{
				TimeRemaining: tc.time,
				Stock:         rich,
				Rate:          production.Quantities{1, 1, 0, 0},
			}
			assert.Len(t, s.Successors(bp, nil), tc.want)
		})
	}
}

func TestState_EqualValuesFromDifferentPaths(t *testing.T) {
	bp := referenceOne()

	// build clay, then wait
	a := production.ProductionState{
		TimeRemaining: 10,
		Stock:         production.Quantities{2, 0, 0, 0},
		Rate:          production.Quantities{1, 1, 0, 0},
	}
	viaBuildThenWait := a.Build(bp, production.Clay).Wait(bp)

	// wait, then build clay
	b := production.ProductionState{
		TimeRemaining: 10,
		Stock:         production.Quantities{2, 1, 0, 0},
		Rate:          production.Quantities{1, 1, 0, 0},
	}
	viaWaitThenBuild := b.Wait(bp).Build(bp, production.Clay)

	assert.Equal(t, viaBuildThenWait, viaWaitThenBuild)
	assert.True(t, viaBuildThenWait == viaWaitThenBuild)
}
