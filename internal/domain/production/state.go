package production

// maxBranching is the most successors a state can have: one build per
// non-terminal tier plus the wait branch (a terminal build is exclusive).
const maxBranching = numIntermediate + 1

// ProductionState is a snapshot of the factory at one point of the horizon.
//
// It is a comparable value type and doubles as the memo key, so every field
// takes part in equality. Transitions never mutate the receiver.
type ProductionState struct {
	TimeRemaining int
	Stock         Quantities
	Rate          Quantities

	// Skip marks a non-terminal tier that was affordable last step but was
	// deliberately not built. Cleared by any build.
	Skip [numIntermediate]bool
}

// InitialState is the canonical start: one ore robot and nothing else
func InitialState(horizon int) ProductionState {
	s := ProductionState{TimeRemaining: horizon}
	s.Rate[Ore] = 1
	return s
}

// Done reports whether the horizon has been reached
func (s ProductionState) Done() bool {
	return s.TimeRemaining <= 0
}

// Yield is the terminal stock held in this state
func (s ProductionState) Yield() int64 {
	return s.Stock[Terminal]
}

// Wait advances one step without building. Every non-terminal tier that was
// affordable before the step is flagged so the search does not build it on
// the next step: building it now would have been at least as good.
func (s ProductionState) Wait(bp *Blueprint) ProductionState {
	next := s.advance()
	for tier := Resource(0); tier < numIntermediate; tier++ {
		next.Skip[tier] = bp.CanAfford(tier, s.Stock)
	}
	return next
}

// Build pays for one robot of tier, collects this step's production from the
// robots that existed before the build, then adds the new robot. Skip flags
// are cleared. The caller must check affordability first.
func (s ProductionState) Build(bp *Blueprint, tier Resource) ProductionState {
	next := s.advance()
	for res := range next.Stock {
		next.Stock[res] -= bp.costs[tier][res]
	}
	next.Rate[tier]++
	next.Skip = [numIntermediate]bool{}
	return next
}

func (s ProductionState) advance() ProductionState {
	next := s
	next.TimeRemaining--
	for res := range next.Stock {
		next.Stock[res] += s.Rate[res]
	}
	return next
}

// worthBuilding applies the pruning rules for a non-terminal tier: not
// flagged as skipped, enough time left for the robot to feed a terminal
// build, and production not already at the most any build can consume.
func (s ProductionState) worthBuilding(bp *Blueprint, tier Resource) bool {
	if s.Skip[tier] {
		return false
	}
	// A tier k steps below terminal needs more than k steps left to matter.
	if s.TimeRemaining <= int(Terminal-tier) {
		return false
	}
	if s.Rate[tier] >= bp.maxUsefulRate[tier] {
		return false
	}
	return bp.CanAfford(tier, s.Stock)
}

// Successors appends the candidate next states to dst in priority order and
// returns the extended slice.
//
// A terminal build, when affordable, is the only successor. Otherwise each
// worthwhile non-terminal build is listed from the deepest tier down to ore,
// followed by the wait branch, which is always present.
func (s ProductionState) Successors(bp *Blueprint, dst []ProductionState) []ProductionState {
	if bp.CanAfford(Terminal, s.Stock) {
		return append(dst, s.Build(bp, Terminal))
	}
	for tier := Resource(numIntermediate - 1); tier >= 0; tier-- {
		if s.worthBuilding(bp, tier) {
			dst = append(dst, s.Build(bp, tier))
		}
	}
	return append(dst, s.Wait(bp))
}
