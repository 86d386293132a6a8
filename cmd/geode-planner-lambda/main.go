//go:build lambda

package main

import (
	"log"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/andrescamacho/geode-planner/internal/adapters/lambda"
	"github.com/andrescamacho/geode-planner/internal/application/planning/commands"
	"github.com/andrescamacho/geode-planner/internal/application/setup"
	"github.com/andrescamacho/geode-planner/internal/infrastructure/config"
	"github.com/andrescamacho/geode-planner/internal/infrastructure/logging"
)

func main() {
	// Configuration comes from GP_* environment variables on Lambda
	cfg := config.LoadConfigOrDefault("")

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	registry := setup.NewHandlerRegistry(nil, nil, commands.SearchDefaults{
		QualityHorizon:      cfg.Search.QualityHorizon,
		ProductHorizon:      cfg.Search.ProductHorizon,
		ProductCount:        cfg.Search.ProductCount,
		Workers:             cfg.Search.Workers,
		CancelCheckInterval: cfg.Search.CancelCheckInterval,
	})
	mediator, err := registry.CreateConfiguredMediator()
	if err != nil {
		log.Fatalf("failed to register handlers: %v", err)
	}

	awslambda.Start(lambda.NewHandler(mediator, logger).Handle)
}
