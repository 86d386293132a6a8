package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"gorm.io/gorm"

	"github.com/andrescamacho/geode-planner/internal/adapters/persistence"
	"github.com/andrescamacho/geode-planner/internal/application/common"
	planningCommands "github.com/andrescamacho/geode-planner/internal/application/planning/commands"
	planningQueries "github.com/andrescamacho/geode-planner/internal/application/planning/queries"
	"github.com/andrescamacho/geode-planner/internal/application/setup"
	"github.com/andrescamacho/geode-planner/internal/domain/catalog"
	"github.com/andrescamacho/geode-planner/internal/domain/production"
	"github.com/andrescamacho/geode-planner/internal/infrastructure/database"
	"github.com/andrescamacho/geode-planner/test/helpers"
)

// evaluateCatalogContext drives EvaluateCatalogCommand through a fully wired
// mediator backed by an in-memory run history.
type evaluateCatalogContext struct {
	db         *gorm.DB
	mediator   common.Mediator
	blueprints []*production.Blueprint
	response   *planningCommands.EvaluateCatalogResponse
	history    []*planningQueries.RunDTO
	err        error
}

// InitializeEvaluateCatalogScenario registers the catalog evaluation steps
func InitializeEvaluateCatalogScenario(sc *godog.ScenarioContext) {
	c := &evaluateCatalogContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		c.blueprints = nil
		c.response = nil
		c.history = nil
		c.err = nil
		c.db = nil
		c.mediator = nil
		return ctx, nil
	})

	sc.After(func(ctx context.Context, s *godog.Scenario, err error) (context.Context, error) {
		if c.db != nil {
			_ = database.Close(c.db)
		}
		return ctx, nil
	})

	sc.Step(`^a planner with run history$`, c.aPlannerWithRunHistory)
	sc.Step(`^the example catalog$`, c.theExampleCatalog)
	sc.Step(`^I evaluate the catalog in (\w+) mode$`, c.iEvaluateTheCatalogInMode)
	sc.Step(`^I evaluate the catalog in (\w+) mode over (-?\d+) steps$`, c.iEvaluateTheCatalogInModeOverSteps)
	sc.Step(`^the score should be (\d+)$`, c.theScoreShouldBe)
	sc.Step(`^the evaluation should cover blueprints? ([\d, ]+)$`, c.theEvaluationShouldCoverBlueprints)
	sc.Step(`^blueprint (\d+) should yield (\d+) geodes?$`, c.blueprintShouldYieldGeodes)
	sc.Step(`^the evaluation should fail mentioning "([^"]*)"$`, c.theEvaluationShouldFailMentioning)
	sc.Step(`^the run history should hold (\d+) runs?$`, c.theRunHistoryShouldHoldRuns)
	sc.Step(`^the latest run should be a (\w+) run scoring (\d+)$`, c.theLatestRunShouldBe)
}

func (c *evaluateCatalogContext) aPlannerWithRunHistory() error {
	db, err := database.NewTestConnection()
	if err != nil {
		return err
	}
	c.db = db

	registry := setup.NewHandlerRegistry(
		persistence.NewGormRunRepository(db),
		nil,
		planningCommands.SearchDefaults{
			QualityHorizon: 24,
			ProductHorizon: 32,
			ProductCount:   3,
			Workers:        2,
		},
	)
	c.mediator, err = registry.CreateConfiguredMediator(common.LoggingMiddleware())
	return err
}

func (c *evaluateCatalogContext) theExampleCatalog() error {
	bps, err := catalog.Parse(helpers.ExampleCatalog)
	if err != nil {
		return err
	}
	c.blueprints = bps
	return nil
}

func (c *evaluateCatalogContext) evaluate(mode string, horizon *int) error {
	if c.mediator == nil {
		return fmt.Errorf("no planner configured")
	}
	resp, err := c.mediator.Send(context.Background(), &planningCommands.EvaluateCatalogCommand{
		Blueprints: c.blueprints,
		Mode:       mode,
		Horizon:    horizon,
		Source:     "example",
		Persist:    true,
	})
	c.err = err
	if err == nil {
		c.response = resp.(*planningCommands.EvaluateCatalogResponse)
	}
	return nil
}

func (c *evaluateCatalogContext) iEvaluateTheCatalogInMode(mode string) error {
	return c.evaluate(mode, nil)
}

func (c *evaluateCatalogContext) iEvaluateTheCatalogInModeOverSteps(mode string, horizon int) error {
	return c.evaluate(mode, &horizon)
}

func (c *evaluateCatalogContext) requireResponse() error {
	if c.err != nil {
		return fmt.Errorf("evaluation failed: %w", c.err)
	}
	if c.response == nil {
		return fmt.Errorf("no evaluation was run")
	}
	return nil
}

func (c *evaluateCatalogContext) theScoreShouldBe(score int64) error {
	if err := c.requireResponse(); err != nil {
		return err
	}
	if c.response.Score != score {
		return fmt.Errorf("expected score %d, got %d", score, c.response.Score)
	}
	return nil
}

func (c *evaluateCatalogContext) theEvaluationShouldCoverBlueprints(list string) error {
	if err := c.requireResponse(); err != nil {
		return err
	}
	var got string
	for i, y := range c.response.Yields {
		if i > 0 {
			got += ", "
		}
		got += fmt.Sprint(y.BlueprintID)
	}
	if got != list {
		return fmt.Errorf("expected blueprints %s, got %s", list, got)
	}
	return nil
}

func (c *evaluateCatalogContext) blueprintShouldYieldGeodes(id int, yield int64) error {
	if err := c.requireResponse(); err != nil {
		return err
	}
	for _, y := range c.response.Yields {
		if y.BlueprintID == id {
			if y.Yield != yield {
				return fmt.Errorf("blueprint %d yielded %d, expected %d", id, y.Yield, yield)
			}
			return nil
		}
	}
	return fmt.Errorf("blueprint %d was not evaluated", id)
}

func (c *evaluateCatalogContext) theEvaluationShouldFailMentioning(fragment string) error {
	if c.err == nil {
		return fmt.Errorf("expected the evaluation to fail")
	}
	if !containsFold(c.err.Error(), fragment) {
		return fmt.Errorf("expected error mentioning %q, got %q", fragment, c.err.Error())
	}
	return nil
}

func (c *evaluateCatalogContext) loadHistory() error {
	resp, err := c.mediator.Send(context.Background(), &planningQueries.GetRunHistoryQuery{})
	if err != nil {
		return err
	}
	c.history = resp.(*planningQueries.GetRunHistoryResponse).Runs
	return nil
}

func (c *evaluateCatalogContext) theRunHistoryShouldHoldRuns(count int) error {
	if err := c.loadHistory(); err != nil {
		return err
	}
	if len(c.history) != count {
		return fmt.Errorf("expected %d runs in history, got %d", count, len(c.history))
	}
	return nil
}

func (c *evaluateCatalogContext) theLatestRunShouldBe(mode string, score int64) error {
	if err := c.loadHistory(); err != nil {
		return err
	}
	if len(c.history) == 0 {
		return fmt.Errorf("run history is empty")
	}
	latest := c.history[0]
	if latest.Mode != mode || latest.Score != score {
		return fmt.Errorf("latest run is %s scoring %d, expected %s scoring %d", latest.Mode, latest.Score, mode, score)
	}
	return nil
}
