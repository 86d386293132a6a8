package helpers

import "github.com/andrescamacho/geode-planner/internal/domain/production"

// ExampleCatalog is the two-blueprint catalog whose answers are known:
// 9 and 12 geodes in 24 steps, 56 and 62 in 32 steps.
const ExampleCatalog = `Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.
Blueprint 2: Each ore robot costs 2 ore. Each clay robot costs 3 ore. Each obsidian robot costs 3 ore and 8 clay. Each geode robot costs 3 ore and 12 obsidian.
`

// NewBlueprint builds a blueprint from the six costs of the classic grammar
func NewBlueprint(id int, oreOre, clayOre, obsOre, obsClay, geodeOre, geodeObs int64) *production.Blueprint {
	var c production.CostTable
	c[production.Ore][production.Ore] = oreOre
	c[production.Clay][production.Ore] = clayOre
	c[production.Obsidian][production.Ore] = obsOre
	c[production.Obsidian][production.Clay] = obsClay
	c[production.Geode][production.Ore] = geodeOre
	c[production.Geode][production.Obsidian] = geodeObs
	return production.MustNewBlueprint(id, c)
}

// ExampleBlueprints returns the two blueprints of ExampleCatalog
func ExampleBlueprints() []*production.Blueprint {
	return []*production.Blueprint{
		NewBlueprint(1, 4, 2, 3, 14, 2, 7),
		NewBlueprint(2, 2, 3, 3, 8, 3, 12),
	}
}
