package production

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultCancelCheckInterval is how many expanded states pass between context checks
const DefaultCancelCheckInterval = 4096

// SearchStats describes the work done by one search
type SearchStats struct {
	Expanded uint64        // states whose successors were generated
	MemoHits uint64        // states answered from the memo
	MemoSize int           // distinct states cached at the end
	Elapsed  time.Duration // wall time of the search
}

// Result is the outcome of solving one blueprint over one horizon
type Result struct {
	BlueprintID int
	Horizon     int
	Yield       int64
	Stats       SearchStats
}

// ProgressFunc receives running statistics while a long search is in flight
type ProgressFunc func(blueprintID int, stats SearchStats)

// Option configures a Search
type Option func(*Search)

// WithCancelCheckInterval sets how many expansions pass between context checks
func WithCancelCheckInterval(n uint64) Option {
	return func(s *Search) {
		if n > 0 {
			s.checkEvery = n
		}
	}
}

// WithProgress reports running statistics at most once per interval
func WithProgress(interval time.Duration, fn ProgressFunc) Option {
	return func(s *Search) {
		s.progress = fn
		s.progressGate = &rate.Sometimes{Interval: interval}
	}
}

// Search finds the largest terminal yield one blueprint can reach.
//
// A Search owns its memo and is meant for a single Run; it must not be used
// from more than one goroutine. Solve blueprints in parallel with one Search each.
type Search struct {
	bp   *Blueprint
	memo *SearchMemo

	checkEvery   uint64
	progress     ProgressFunc
	progressGate *rate.Sometimes

	ctx      context.Context
	expanded uint64
	started  time.Time
}

// NewSearch prepares a search over bp with a fresh memo
func NewSearch(bp *Blueprint, opts ...Option) *Search {
	s := &Search{
		bp:         bp,
		memo:       NewSearchMemo(),
		checkEvery: DefaultCancelCheckInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run solves the blueprint from the canonical initial state.
//
// The context is polled every few thousand expansions; when it is done the
// search stops and returns a *SearchAbortedError wrapping ctx.Err().
func (s *Search) Run(ctx context.Context, horizon int) (Result, error) {
	if s.bp == nil {
		return Result{}, ErrNilBlueprint
	}
	if horizon < 0 {
		return Result{}, &InvalidHorizonError{Horizon: horizon}
	}

	yield, err := s.From(ctx, InitialState(horizon))
	if err != nil {
		return Result{}, err
	}

	return Result{
		BlueprintID: s.bp.id,
		Horizon:     horizon,
		Yield:       yield,
		Stats:       s.Stats(),
	}, nil
}

// From returns the best final terminal stock reachable from state. The memo
// is shared across calls on the same Search.
func (s *Search) From(ctx context.Context, state ProductionState) (int64, error) {
	if s.bp == nil {
		return 0, ErrNilBlueprint
	}
	s.ctx = ctx
	if s.started.IsZero() {
		s.started = time.Now()
	}
	return s.best(state)
}

// Stats returns the statistics gathered so far
func (s *Search) Stats() SearchStats {
	stats := SearchStats{
		Expanded: s.expanded,
		MemoHits: s.memo.Hits(),
		MemoSize: s.memo.Len(),
	}
	if !s.started.IsZero() {
		stats.Elapsed = time.Since(s.started)
	}
	return stats
}

// Memo exposes the cache built so far
func (s *Search) Memo() *SearchMemo {
	return s.memo
}

func (s *Search) best(state ProductionState) (int64, error) {
	if state.Done() {
		return state.Yield(), nil
	}
	if added, ok := s.memo.Lookup(state); ok {
		return state.Yield() + added, nil
	}

	s.expanded++
	if s.expanded%s.checkEvery == 0 {
		if err := s.checkpoint(); err != nil {
			return 0, err
		}
	}

	var buf [maxBranching]ProductionState
	best := state.Yield()
	for _, next := range state.Successors(s.bp, buf[:0]) {
		v, err := s.best(next)
		if err != nil {
			return 0, err
		}
		if v > best {
			best = v
		}
	}

	s.memo.Store(state, best-state.Yield())
	return best, nil
}

func (s *Search) checkpoint() error {
	if s.ctx != nil {
		if err := s.ctx.Err(); err != nil {
			return &SearchAbortedError{BlueprintID: s.bp.id, Explored: s.expanded, Err: err}
		}
	}
	if s.progress != nil {
		s.progressGate.Do(func() {
			s.progress(s.bp.id, s.Stats())
		})
	}
	return nil
}

// Solve returns the largest terminal yield bp can reach within horizon steps,
// starting from one ore robot. A negative horizon is treated as zero.
func Solve(bp *Blueprint, horizon int) int64 {
	if horizon < 0 {
		horizon = 0
	}
	res, err := NewSearch(bp).Run(context.Background(), horizon)
	if err != nil {
		return 0
	}
	return res.Yield
}
