package production

import "fmt"

// Quantities holds one amount per resource, indexed by Resource
type Quantities [NumResources]int64

// CostTable holds the build cost of every tier: CostTable[tier][resource]
type CostTable [NumResources]Quantities

// Blueprint is an immutable set of robot build costs.
//
// The identifier is only used by callers to weight scores; the search never reads it.
type Blueprint struct {
	id            int
	costs         CostTable
	maxUsefulRate Quantities
}

// NewBlueprint validates the cost table and derives the per-resource rate caps.
//
// A tier may only consume resources produced by itself or by an earlier tier,
// and costs must be non-negative. A tier whose cost can never be paid is not
// an error: the search simply never builds it.
func NewBlueprint(id int, costs CostTable) (*Blueprint, error) {
	for _, tier := range Resources() {
		for _, res := range Resources() {
			qty := costs[tier][res]
			if qty < 0 {
				return nil, &InvalidBlueprintError{
					BlueprintID: id,
					Reason:      fmt.Sprintf("%s robot has negative %s cost %d", tier, res, qty),
				}
			}
			if qty > 0 && res > tier {
				return nil, &InvalidBlueprintError{
					BlueprintID: id,
					Reason:      fmt.Sprintf("%s robot cannot cost %s: it is produced by a later tier", tier, res),
				}
			}
		}
	}

	bp := &Blueprint{id: id, costs: costs}
	for _, res := range Resources() {
		if res.IsTerminal() {
			continue
		}
		for _, tier := range Resources() {
			if c := costs[tier][res]; c > bp.maxUsefulRate[res] {
				bp.maxUsefulRate[res] = c
			}
		}
	}
	return bp, nil
}

// MustNewBlueprint is NewBlueprint for tables known to be valid (tests, fixtures)
func MustNewBlueprint(id int, costs CostTable) *Blueprint {
	bp, err := NewBlueprint(id, costs)
	if err != nil {
		panic(err)
	}
	return bp
}

// ID returns the blueprint identifier
func (b *Blueprint) ID() int {
	return b.id
}

// Cost returns the amount of res needed to build one robot of tier
func (b *Blueprint) Cost(tier, res Resource) int64 {
	return b.costs[tier][res]
}

// Costs returns a copy of the full cost table
func (b *Blueprint) Costs() CostTable {
	return b.costs
}

// MaxUsefulRate is the most of res that any single build can consume.
// Producing more than this per step is wasted, so it caps the robot count of
// that tier. Always zero for the terminal resource.
func (b *Blueprint) MaxUsefulRate(res Resource) int64 {
	return b.maxUsefulRate[res]
}

// CanAfford reports whether stock covers the full build cost of tier
func (b *Blueprint) CanAfford(tier Resource, stock Quantities) bool {
	cost := &b.costs[tier]
	for res := range stock {
		if stock[res] < cost[res] {
			return false
		}
	}
	return true
}

// Dominates reports whether every cost in b is less than or equal to the
// matching cost in other. A dominating blueprint never yields less.
func (b *Blueprint) Dominates(other *Blueprint) bool {
	for tier := range b.costs {
		for res := range b.costs[tier] {
			if b.costs[tier][res] > other.costs[tier][res] {
				return false
			}
		}
	}
	return true
}

// String renders the blueprint in the catalog's text grammar
func (b *Blueprint) String() string {
	s := fmt.Sprintf("Blueprint %d:", b.id)
	for _, tier := range Resources() {
		s += fmt.Sprintf(" Each %s robot costs", tier)
		first := true
		for _, res := range Resources() {
			qty := b.costs[tier][res]
			if qty == 0 {
				continue
			}
			if !first {
				s += " and"
			}
			s += fmt.Sprintf(" %d %s", qty, res)
			first = false
		}
		if first {
			s += " nothing"
		}
		s += "."
	}
	return s
}
