package production_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

func costs(ore, clay, obsidianOre, obsidianClay, geodeOre, geodeObsidian int64) production.CostTable {
	var c production.CostTable
	c[production.Ore][production.Ore] = ore
	c[production.Clay][production.Ore] = clay
	c[production.Obsidian][production.Ore] = obsidianOre
	c[production.Obsidian][production.Clay] = obsidianClay
	c[production.Geode][production.Ore] = geodeOre
	c[production.Geode][production.Obsidian] = geodeObsidian
	return c
}

// Reference blueprints with published yields.
func referenceOne() *production.Blueprint {
	return production.MustNewBlueprint(1, costs(4, 2, 3, 14, 2, 7))
}

func referenceTwo() *production.Blueprint {
	return production.MustNewBlueprint(2, costs(2, 3, 3, 8, 3, 12))
}

func TestNewBlueprint_DerivesMaxUsefulRate(t *testing.T) {
	bp := referenceOne()

	assert.Equal(t, int64(4), bp.MaxUsefulRate(production.Ore), "max of 4, 2, 3, 2")
	assert.Equal(t, int64(14), bp.MaxUsefulRate(production.Clay))
	assert.Equal(t, int64(7), bp.MaxUsefulRate(production.Obsidian))
	assert.Equal(t, int64(0), bp.MaxUsefulRate(production.Geode))
}

func TestNewBlueprint_RejectsLaterTierResource(t *testing.T) {
	c := costs(4, 2, 3, 14, 2, 7)
	c[production.Clay][production.Obsidian] = 1

	_, err := production.NewBlueprint(7, c)

	require.Error(t, err)
	var invalid *production.InvalidBlueprintError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 7, invalid.BlueprintID)
	assert.Contains(t, err.Error(), "clay robot cannot cost obsidian")
}

func TestNewBlueprint_RejectsNegativeCost(t *testing.T) {
	c := costs(4, -2, 3, 14, 2, 7)

	_, err := production.NewBlueprint(3, c)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative ore cost")
}

func TestNewBlueprint_AllowsSameTierResource(t *testing.T) {
	c := costs(4, 2, 3, 14, 2, 7)
	c[production.Obsidian][production.Obsidian] = 1

	bp, err := production.NewBlueprint(9, c)

	require.NoError(t, err)
	assert.Equal(t, int64(1), bp.Cost(production.Obsidian, production.Obsidian))
}

func TestBlueprint_CanAfford(t *testing.T) {
	bp := referenceOne()

	assert.True(t, bp.CanAfford(production.Geode, production.Quantities{2, 0, 7, 0}))
	assert.False(t, bp.CanAfford(production.Geode, production.Quantities{2, 0, 6, 0}))
	assert.False(t, bp.CanAfford(production.Obsidian, production.Quantities{3, 13, 0, 0}))
	assert.True(t, bp.CanAfford(production.Clay, production.Quantities{2, 0, 0, 0}))
}

func TestBlueprint_Dominates(t *testing.T) {
	a := referenceOne()
	b := production.MustNewBlueprint(10, costs(4, 2, 3, 14, 2, 6))

	assert.True(t, b.Dominates(a))
	assert.False(t, a.Dominates(b))
	assert.True(t, a.Dominates(a))
}

func TestBlueprint_String(t *testing.T) {
	bp := referenceTwo()

	assert.Equal(t,
		"Blueprint 2: Each ore robot costs 2 ore. Each clay robot costs 3 ore. "+
			"Each obsidian robot costs 3 ore and 8 clay. Each geode robot costs 3 ore and 12 obsidian.",
		bp.String())
}

func TestParseResource(t *testing.T) {
	r, ok := production.ParseResource("obsidian")
	require.True(t, ok)
	assert.Equal(t, production.Obsidian, r)

	r, ok = production.ParseResource("geodes")
	require.True(t, ok)
	assert.Equal(t, production.Geode, r)

	_, ok = production.ParseResource("diamond")
	assert.False(t, ok)
}
