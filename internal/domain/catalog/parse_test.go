package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/geode-planner/internal/domain/catalog"
	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

const exampleCatalog = `Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.
Blueprint 2: Each ore robot costs 2 ore. Each clay robot costs 3 ore. Each obsidian robot costs 3 ore and 8 clay. Each geode robot costs 3 ore and 12 obsidian.
`

func requireMalformed(t *testing.T, err error) *catalog.MalformedInputError {
	t.Helper()
	var malformed *catalog.MalformedInputError
	require.True(t, errors.As(err, &malformed), "expected MalformedInputError, got %v", err)
	return malformed
}

func TestParse_ExampleCatalog(t *testing.T) {
	// Act
	bps, err := catalog.Parse(exampleCatalog)

	// Assert
	require.NoError(t, err)
	require.Len(t, bps, 2)

	assert.Equal(t, 1, bps[0].ID())
	assert.Equal(t, int64(4), bps[0].Cost(production.Ore, production.Ore))
	assert.Equal(t, int64(2), bps[0].Cost(production.Clay, production.Ore))
	assert.Equal(t, int64(3), bps[0].Cost(production.Obsidian, production.Ore))
	assert.Equal(t, int64(14), bps[0].Cost(production.Obsidian, production.Clay))
	assert.Equal(t, int64(2), bps[0].Cost(production.Geode, production.Ore))
	assert.Equal(t, int64(7), bps[0].Cost(production.Geode, production.Obsidian))

	assert.Equal(t, 2, bps[1].ID())
	assert.Equal(t, int64(12), bps[1].Cost(production.Geode, production.Obsidian))
}

func TestParse_MultiLineBlueprints(t *testing.T) {
	text := `
Blueprint 1:
  Each ore robot costs 4 ore.
  Each clay robot costs 2 ore.
  Each obsidian robot costs 3 ore and 14 clay.
  Each geode robot costs 2 ore and 7 obsidian.

Blueprint 2:
  Each ore robot costs 2 ore.
  Each clay robot costs 3 ore.
  Each obsidian robot costs 3 ore and 8 clay.
  Each geode robot costs 3 ore and 12 obsidian.
`
	bps, err := catalog.Parse(text)

	require.NoError(t, err)
	flat, err := catalog.Parse(exampleCatalog)
	require.NoError(t, err)
	require.Len(t, bps, 2)
	assert.Equal(t, flat[0].Costs(), bps[0].Costs())
	assert.Equal(t, flat[1].Costs(), bps[1].Costs())
}

func TestParse_ClausesInAnyOrder(t *testing.T) {
	text := "Blueprint 7: Each geode robot costs 2 ore and 7 obsidian. Each clay robot costs 2 ore. " +
		"Each obsidian robot costs 14 clay and 3 ore. Each ore robot costs 4 ore."

	bps, err := catalog.Parse(text)

	require.NoError(t, err)
	require.Len(t, bps, 1)
	assert.Equal(t, 7, bps[0].ID())
	assert.Equal(t, int64(14), bps[0].Cost(production.Obsidian, production.Clay))
	assert.Equal(t, int64(3), bps[0].Cost(production.Obsidian, production.Ore))
}

func TestParse_RoundTripsBlueprintString(t *testing.T) {
	free := production.MustNewBlueprint(3, production.CostTable{})

	bps, err := catalog.Parse(free.String())

	require.NoError(t, err)
	require.Len(t, bps, 1)
	assert.Equal(t, free.Costs(), bps[0].Costs())
}

func TestParse_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		reason string
	}{
		{
			name:   "empty input",
			text:   "  \n\n",
			reason: "no blueprints declared",
		},
		{
			name:   "text before first blueprint",
			text:   "hello\n" + exampleCatalog,
			reason: "expected a line starting with \"Blueprint\"",
		},
		{
			name:   "non numeric identifier",
			text:   "Blueprint one: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.",
			reason: "is not a number",
		},
		{
			name:   "missing quantity",
			text:   "Blueprint 1: Each ore robot costs ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.",
			reason: "ore robot",
		},
		{
			name:   "misspelled tier",
			text:   "Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidain robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.",
			reason: `did you mean "obsidian"?`,
		},
		{
			name:   "unknown resource",
			text:   "Blueprint 1: Each ore robot costs 4 gold. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.",
			reason: `unrecognized resource "gold"`,
		},
		{
			name:   "missing tier",
			text:   "Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay.",
			reason: "no cost clause for the geode robot",
		},
		{
			name:   "duplicate tier",
			text:   "Blueprint 1: Each ore robot costs 4 ore. Each ore robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.",
			reason: "declared twice",
		},
		{
			name:   "duplicate resource",
			text:   "Blueprint 1: Each ore robot costs 4 ore and 1 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.",
			reason: "listed twice",
		},
		{
			name:   "duplicate blueprint",
			text:   exampleCatalog + "Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian.",
			reason: "already declared",
		},
		{
			name:   "trailing garbage",
			text:   "Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore. Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian. Thanks!",
			reason: "expected \"Each <tier> robot costs",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bps, err := catalog.Parse(tc.text)

			assert.Nil(t, bps)
			requireMalformed(t, err)
			assert.Contains(t, err.Error(), tc.reason)
		})
	}
}

func TestParse_LaterTierCostIsMalformed(t *testing.T) {
	text := "Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore and 1 geode. " +
		"Each obsidian robot costs 3 ore and 14 clay. Each geode robot costs 2 ore and 7 obsidian."

	_, err := catalog.Parse(text)

	malformed := requireMalformed(t, err)
	assert.Equal(t, 1, malformed.Line)
	var invalid *production.InvalidBlueprintError
	assert.True(t, errors.As(err, &invalid))
}

func TestParse_ReportsLineOfOffendingBlueprint(t *testing.T) {
	text := exampleCatalog + "\nBlueprint 3: Each ore robot costs 4 ore.\n"

	_, err := catalog.Parse(text)

	malformed := requireMalformed(t, err)
	assert.Equal(t, 4, malformed.Line)
	assert.Equal(t, 3, malformed.Entry)
}

func TestLoad_Formats(t *testing.T) {
	text, err := catalog.Load([]byte(exampleCatalog), catalog.FormatText)
	require.NoError(t, err)
	assert.Len(t, text, 2)

	_, err = catalog.Load([]byte(exampleCatalog), catalog.Format("yaml"))
	var unsupported *catalog.UnsupportedFormatError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "yaml", unsupported.Format)
}

func TestParseFormat(t *testing.T) {
	f, err := catalog.ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, catalog.FormatJSON, f)

	f, err = catalog.ParseFormat("txt")
	require.NoError(t, err)
	assert.Equal(t, catalog.FormatText, f)

	_, err = catalog.ParseFormat("xml")
	assert.Error(t, err)

	assert.Equal(t, catalog.FormatJSON, catalog.DetectFormat("blueprints.JSON"))
	assert.Equal(t, catalog.FormatText, catalog.DetectFormat("input.txt"))
}
