// Package lambda serves catalog evaluations behind an AWS Lambda Function URL.
package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/andrescamacho/geode-planner/internal/application/common"
	planningCommands "github.com/andrescamacho/geode-planner/internal/application/planning/commands"
	"github.com/andrescamacho/geode-planner/internal/domain/catalog"
	"github.com/andrescamacho/geode-planner/internal/domain/planning"
	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

// Request is the body of an evaluation call
type Request struct {
	Catalog      string `json:"catalog"`
	Format       string `json:"format"`
	Mode         string `json:"mode"`
	Horizon      *int   `json:"horizon"`
	ProductCount int    `json:"product_count"`
}

// Evaluation is one scored mode in a response
type Evaluation struct {
	Mode       string      `json:"mode"`
	Horizon    int         `json:"horizon"`
	Score      int64       `json:"score"`
	TimeMs     int64       `json:"time_ms"`
	Blueprints []Blueprint `json:"blueprints"`
}

// Blueprint is the yield of one blueprint
type Blueprint struct {
	ID    int   `json:"id"`
	Yield int64 `json:"yield"`
}

// Handler evaluates catalogs through the mediator. Runs are never persisted.
type Handler struct {
	mediator common.Mediator
	logger   *zap.Logger
}

// NewHandler creates a Handler
func NewHandler(mediator common.Mediator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{mediator: mediator, logger: logger}
}

// Handle answers one Function URL invocation
func (h *Handler) Handle(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(http.StatusBadRequest, "invalid base64 body")
		}
		body = string(decoded)
	}

	var req Request
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errResp(http.StatusBadRequest, "invalid JSON: "+err.Error())
	}
	if req.Catalog == "" {
		return errResp(http.StatusBadRequest, "missing catalog field")
	}

	modes := planning.AllScoringModes()
	if req.Mode != "" && req.Mode != "both" {
		mode, err := planning.ParseScoringMode(req.Mode)
		if err != nil {
			return errResp(http.StatusBadRequest, err.Error())
		}
		modes = []planning.ScoringMode{mode}
	}

	format := catalog.FormatText
	if req.Format != "" {
		f, err := catalog.ParseFormat(req.Format)
		if err != nil {
			return errResp(http.StatusBadRequest, err.Error())
		}
		format = f
	}

	blueprints, err := catalog.Load([]byte(req.Catalog), format)
	if err != nil {
		return errResp(http.StatusBadRequest, err.Error())
	}

	ctx = common.WithLogger(ctx, h.logger)
	results := make([]Evaluation, 0, len(modes))
	for _, mode := range modes {
		resp, err := h.mediator.Send(ctx, &planningCommands.EvaluateCatalogCommand{
			Blueprints:   blueprints,
			Mode:         mode.Label(),
			Horizon:      req.Horizon,
			ProductCount: req.ProductCount,
			Source:       "lambda",
		})
		if err != nil {
			return h.failure(err)
		}
		results = append(results, toEvaluation(resp.(*planningCommands.EvaluateCatalogResponse)))
	}

	respJSON, err := json.Marshal(results)
	if err != nil {
		return errResp(http.StatusInternalServerError, err.Error())
	}
	return events.LambdaFunctionURLResponse{StatusCode: http.StatusOK, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func (h *Handler) failure(err error) (events.LambdaFunctionURLResponse, error) {
	var invalidHorizon *production.InvalidHorizonError
	switch {
	case errors.As(err, &invalidHorizon):
		return errResp(http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errResp(http.StatusGatewayTimeout, "search did not finish before the deadline")
	default:
		h.logger.Error("evaluation failed", zap.Error(err))
		return errResp(http.StatusInternalServerError, err.Error())
	}
}

func toEvaluation(r *planningCommands.EvaluateCatalogResponse) Evaluation {
	out := Evaluation{
		Mode:       r.Mode.Label(),
		Horizon:    r.Horizon,
		Score:      r.Score,
		TimeMs:     r.Duration.Milliseconds(),
		Blueprints: make([]Blueprint, len(r.Yields)),
	}
	for i, y := range r.Yields {
		out.Blueprints[i] = Blueprint{ID: y.BlueprintID, Yield: y.Yield}
	}
	return out
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}
