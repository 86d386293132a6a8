package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/geode-planner/internal/application/common"
	"github.com/andrescamacho/geode-planner/internal/domain/planning"
)

// GetRunQuery fetches one run by id
type GetRunQuery struct {
	RunID string
}

// GetRunHandler handles the GetRun query
type GetRunHandler struct {
	runRepo planning.RunRepository
}

// NewGetRunHandler creates a new GetRunHandler
func NewGetRunHandler(runRepo planning.RunRepository) *GetRunHandler {
	return &GetRunHandler{runRepo: runRepo}
}

// Handle executes the GetRun query; the response is a *RunDTO
func (h *GetRunHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetRunQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetRunQuery")
	}

	id, err := planning.NewRunIDFromString(query.RunID)
	if err != nil {
		return nil, err
	}

	run, err := h.runRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toRunDTO(run), nil
}
