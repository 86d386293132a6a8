package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/geode-planner/internal/domain/catalog"
	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

type catalogContext struct {
	text       string
	blueprints []*production.Blueprint
	err        error
}

func (c *catalogContext) reset() {
	c.text = ""
	c.blueprints = nil
	c.err = nil
}

// InitializeCatalogScenario registers the catalog parsing steps
func InitializeCatalogScenario(sc *godog.ScenarioContext) {
	c := &catalogContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		c.reset()
		return ctx, nil
	})

	sc.Step(`^a catalog:$`, c.aCatalog)
	sc.Step(`^I parse the catalog as (text|json)$`, c.iParseTheCatalogAs)
	sc.Step(`^the catalog should contain (\d+) blueprints?$`, c.theCatalogShouldContainBlueprints)
	sc.Step(`^blueprint (\d+) should cost:$`, c.blueprintShouldCost)
	sc.Step(`^parsing should fail at line (\d+) mentioning "([^"]*)"$`, c.parsingShouldFailAtLineMentioning)
	sc.Step(`^parsing should fail mentioning "([^"]*)"$`, c.parsingShouldFailMentioning)
	sc.Step(`^the error should suggest "([^"]*)"$`, c.theErrorShouldSuggest)
}

func (c *catalogContext) aCatalog(doc *godog.DocString) error {
	c.text = doc.Content
	return nil
}

func (c *catalogContext) iParseTheCatalogAs(format string) error {
	f, err := catalog.ParseFormat(format)
	if err != nil {
		return err
	}
	c.blueprints, c.err = catalog.Load([]byte(c.text), f)
	return nil
}

func (c *catalogContext) theCatalogShouldContainBlueprints(count int) error {
	if c.err != nil {
		return fmt.Errorf("parsing failed: %w", c.err)
	}
	if len(c.blueprints) != count {
		return fmt.Errorf("expected %d blueprints, got %d", count, len(c.blueprints))
	}
	return nil
}

func (c *catalogContext) blueprintShouldCost(id int, table *godog.Table) error {
	var bp *production.Blueprint
	for _, candidate := range c.blueprints {
		if candidate.ID() == id {
			bp = candidate
		}
	}
	if bp == nil {
		return fmt.Errorf("blueprint %d not in catalog", id)
	}

	for _, row := range table.Rows[1:] {
		tierName := getCellValueFromTable(table, row, "robot")
		tier, ok := production.ParseResource(tierName)
		if !ok {
			return fmt.Errorf("unknown robot %q in table", tierName)
		}
		for _, res := range production.Resources() {
			want, err := getIntCell(table, row, res.String())
			if err != nil {
				return err
			}
			if got := bp.Cost(tier, res); got != want {
				return fmt.Errorf("%s robot costs %d %s, expected %d", tier, got, res, want)
			}
		}
	}
	return nil
}

func (c *catalogContext) parsingShouldFailMentioning(fragment string) error {
	if c.err == nil {
		return fmt.Errorf("expected parsing to fail, got %d blueprints", len(c.blueprints))
	}
	if !strings.Contains(c.err.Error(), fragment) {
		return fmt.Errorf("expected error mentioning %q, got %q", fragment, c.err.Error())
	}
	return nil
}

func (c *catalogContext) parsingShouldFailAtLineMentioning(line int, fragment string) error {
	if err := c.parsingShouldFailMentioning(fragment); err != nil {
		return err
	}
	var malformed *catalog.MalformedInputError
	if !errors.As(c.err, &malformed) {
		return fmt.Errorf("expected a malformed input error, got %T", c.err)
	}
	if malformed.Line != line {
		return fmt.Errorf("expected line %d, got %d", line, malformed.Line)
	}
	return nil
}

func (c *catalogContext) theErrorShouldSuggest(name string) error {
	return c.parsingShouldFailMentioning(fmt.Sprintf("did you mean %q?", name))
}
