package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/geode-planner/internal/application/common"
)

// PrometheusMiddleware records the duration and outcome of every command and
// query sent through the mediator.
func PrometheusMiddleware(collector *CommandMetricsCollector) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := time.Now()
		response, err := next(ctx, request)
		collector.RecordCommandExecution(common.RequestName(request), time.Since(start).Seconds(), err == nil)

		return response, err
	}
}

// Setup initializes the registry and installs the collectors. The returned
// middleware is ready for Mediator.RegisterMiddleware.
func Setup() (common.Middleware, error) {
	InitRegistry()

	search := NewSearchMetricsCollector()
	if err := search.Register(); err != nil {
		return nil, err
	}
	SetGlobalSearchCollector(search)

	commands := NewCommandMetricsCollector()
	if err := commands.Register(); err != nil {
		return nil, err
	}

	return PrometheusMiddleware(commands), nil
}
