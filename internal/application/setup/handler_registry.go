package setup

import (
	"reflect"

	"github.com/andrescamacho/geode-planner/internal/application/common"
	planningCommands "github.com/andrescamacho/geode-planner/internal/application/planning/commands"
	planningQueries "github.com/andrescamacho/geode-planner/internal/application/planning/queries"
	"github.com/andrescamacho/geode-planner/internal/domain/planning"
	"github.com/andrescamacho/geode-planner/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	runRepo  planning.RunRepository
	clock    shared.Clock
	defaults planningCommands.SearchDefaults
}

// NewHandlerRegistry creates a new handler registry.
// runRepo may be nil; history queries are then not registered.
func NewHandlerRegistry(
	runRepo planning.RunRepository,
	clock shared.Clock,
	defaults planningCommands.SearchDefaults,
) *HandlerRegistry {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		runRepo:  runRepo,
		clock:    clock,
		defaults: defaults,
	}
}

// RegisterPlanningHandlers registers the planning commands and queries:
//   - SolveBlueprintCommand → SolveBlueprintHandler
//   - EvaluateCatalogCommand → EvaluateCatalogHandler (fans out SolveBlueprintCommand)
//   - GetRunHistoryQuery → GetRunHistoryHandler (needs a repository)
//   - GetRunQuery → GetRunHandler (needs a repository)
func (r *HandlerRegistry) RegisterPlanningHandlers(m common.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&planningCommands.SolveBlueprintCommand{}),
		planningCommands.NewSolveBlueprintHandler(),
	); err != nil {
		return err
	}

	evaluateHandler := planningCommands.NewEvaluateCatalogHandler(m, r.runRepo, r.clock, r.defaults)
	if err := m.Register(
		reflect.TypeOf(&planningCommands.EvaluateCatalogCommand{}),
		evaluateHandler,
	); err != nil {
		return err
	}

	if r.runRepo == nil {
		return nil
	}

	if err := m.Register(
		reflect.TypeOf(&planningQueries.GetRunHistoryQuery{}),
		planningQueries.NewGetRunHistoryHandler(r.runRepo),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&planningQueries.GetRunQuery{}),
		planningQueries.NewGetRunHandler(r.runRepo),
	)
}

// CreateConfiguredMediator creates a mediator with all planning handlers
// registered and the given middlewares installed in order.
func (r *HandlerRegistry) CreateConfiguredMediator(middlewares ...common.Middleware) (common.Mediator, error) {
	m := common.NewMediator()
	for _, mw := range middlewares {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterPlanningHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
