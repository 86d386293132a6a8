package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/geode-planner/internal/application/common"
	"github.com/andrescamacho/geode-planner/internal/domain/planning"
)

// DefaultHistoryLimit caps a history query that does not set Limit
const DefaultHistoryLimit = 20

// GetRunHistoryQuery lists the most recent evaluation runs
type GetRunHistoryQuery struct {
	Limit int
}

// GetRunHistoryResponse holds runs newest first
type GetRunHistoryResponse struct {
	Runs []*RunDTO
}

// GetRunHistoryHandler handles the GetRunHistory query
type GetRunHistoryHandler struct {
	runRepo planning.RunRepository
}

// NewGetRunHistoryHandler creates a new GetRunHistoryHandler
func NewGetRunHistoryHandler(runRepo planning.RunRepository) *GetRunHistoryHandler {
	return &GetRunHistoryHandler{runRepo: runRepo}
}

// Handle executes the GetRunHistory query
func (h *GetRunHistoryHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetRunHistoryQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetRunHistoryQuery")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	runs, err := h.runRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	response := &GetRunHistoryResponse{Runs: make([]*RunDTO, len(runs))}
	for i, run := range runs {
		response.Runs[i] = toRunDTO(run)
	}
	return response, nil
}
