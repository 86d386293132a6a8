package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

type searchContext struct {
	blueprints map[int]*production.Blueprint
	result     production.Result
	err        error
}

// InitializeProductionSearchScenario registers the production search steps
func InitializeProductionSearchScenario(sc *godog.ScenarioContext) {
	c := &searchContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		c.blueprints = make(map[int]*production.Blueprint)
		c.result = production.Result{}
		c.err = nil
		return ctx, nil
	})

	sc.Step(`^a blueprint (\d+) with costs:$`, c.aBlueprintWithCosts)
	sc.Step(`^I search blueprint (\d+) over (-?\d+) steps$`, c.iSearchBlueprintOverSteps)
	sc.Step(`^I search blueprint (\d+) over (\d+) steps with a cancelled context$`, c.iSearchWithCancelledContext)
	sc.Step(`^the best yield should be (\d+)$`, c.theBestYieldShouldBe)
	sc.Step(`^solving blueprint (\d+) over (-?\d+) steps should yield (\d+)$`, c.solvingShouldYield)
	sc.Step(`^the search should be aborted$`, c.theSearchShouldBeAborted)
	sc.Step(`^the search should reject the horizon$`, c.theSearchShouldRejectTheHorizon)
}

func (c *searchContext) aBlueprintWithCosts(id int, table *godog.Table) error {
	var costs production.CostTable
	for _, row := range table.Rows[1:] {
		tierName := getCellValueFromTable(table, row, "robot")
		tier, ok := production.ParseResource(tierName)
		if !ok {
			return fmt.Errorf("unknown robot %q in table", tierName)
		}
		for _, res := range production.Resources() {
			v, err := getIntCell(table, row, res.String())
			if err != nil {
				return err
			}
			costs[tier][res] = v
		}
	}

	bp, err := production.NewBlueprint(id, costs)
	if err != nil {
		return err
	}
	c.blueprints[id] = bp
	return nil
}

func (c *searchContext) blueprint(id int) (*production.Blueprint, error) {
	bp, ok := c.blueprints[id]
	if !ok {
		return nil, fmt.Errorf("blueprint %d was not declared", id)
	}
	return bp, nil
}

func (c *searchContext) iSearchBlueprintOverSteps(id, horizon int) error {
	bp, err := c.blueprint(id)
	if err != nil {
		return err
	}
	c.result, c.err = production.NewSearch(bp).Run(context.Background(), horizon)
	return nil
}

func (c *searchContext) iSearchWithCancelledContext(id, horizon int) error {
	bp, err := c.blueprint(id)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.result, c.err = production.NewSearch(bp, production.WithCancelCheckInterval(1)).Run(ctx, horizon)
	return nil
}

func (c *searchContext) theBestYieldShouldBe(yield int64) error {
	if c.err != nil {
		return fmt.Errorf("search failed: %w", c.err)
	}
	if c.result.Yield != yield {
		return fmt.Errorf("expected yield %d, got %d", yield, c.result.Yield)
	}
	return nil
}

func (c *searchContext) solvingShouldYield(id, horizon int, yield int64) error {
	bp, err := c.blueprint(id)
	if err != nil {
		return err
	}
	if got := production.Solve(bp, horizon); got != yield {
		return fmt.Errorf("expected Solve to yield %d, got %d", yield, got)
	}
	return nil
}

func (c *searchContext) theSearchShouldBeAborted() error {
	var aborted *production.SearchAbortedError
	if !errors.As(c.err, &aborted) {
		return fmt.Errorf("expected an aborted search, got %v", c.err)
	}
	if !errors.Is(c.err, context.Canceled) {
		return fmt.Errorf("expected the abort to wrap context.Canceled, got %v", c.err)
	}
	return nil
}

func (c *searchContext) theSearchShouldRejectTheHorizon() error {
	var invalid *production.InvalidHorizonError
	if !errors.As(c.err, &invalid) {
		return fmt.Errorf("expected an invalid horizon error, got %v", c.err)
	}
	return nil
}
