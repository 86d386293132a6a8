package helpers

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/andrescamacho/geode-planner/internal/application/common"
	planningCommands "github.com/andrescamacho/geode-planner/internal/application/planning/commands"
)

// MockMediator is a test double for the Mediator interface. By default it
// answers SolveBlueprintCommand with a fixed yield per blueprint id.
type MockMediator struct {
	mu       sync.Mutex
	sendFunc func(ctx context.Context, request common.Request) (common.Response, error)
	yields   map[int]int64
	callLog  []string
}

// NewMockMediator creates a new MockMediator
func NewMockMediator() *MockMediator {
	return &MockMediator{
		yields: make(map[int]int64),
	}
}

// SetYield fixes the yield reported for a blueprint id
func (m *MockMediator) SetYield(blueprintID int, yield int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.yields[blueprintID] = yield
}

// Send implements the Mediator interface; it is safe for concurrent use
func (m *MockMediator) Send(ctx context.Context, request common.Request) (common.Response, error) {
	m.mu.Lock()
	fn := m.sendFunc
	m.mu.Unlock()

	if fn != nil {
		m.record(common.RequestName(request))
		return fn(ctx, request)
	}

	switch req := request.(type) {
	case *planningCommands.SolveBlueprintCommand:
		m.record(fmt.Sprintf("SolveBlueprint:%d@%d", req.Blueprint.ID(), req.Horizon))
		m.mu.Lock()
		yield := m.yields[req.Blueprint.ID()]
		m.mu.Unlock()
		return &planningCommands.SolveBlueprintResponse{
			BlueprintID: req.Blueprint.ID(),
			Horizon:     req.Horizon,
			Yield:       yield,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported request type: %T", request)
	}
}

// SetSendFunc replaces the default behaviour
func (m *MockMediator) SetSendFunc(fn func(ctx context.Context, request common.Request) (common.Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendFunc = fn
}

// GetCallLog returns the requests sent so far, in arrival order
func (m *MockMediator) GetCallLog() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.callLog...)
}

func (m *MockMediator) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callLog = append(m.callLog, call)
}

// Register implements the Mediator interface (no-op for tests)
func (m *MockMediator) Register(requestType reflect.Type, handler common.RequestHandler) error {
	return nil
}

// RegisterMiddleware implements the Mediator interface (no-op for tests)
func (m *MockMediator) RegisterMiddleware(middleware common.Middleware) {}

var _ common.Mediator = (*MockMediator)(nil)
