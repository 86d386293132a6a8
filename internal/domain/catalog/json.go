package catalog

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

// ParseJSON reads a JSON catalog. The document is either an array of
// blueprints or an object with a "blueprints" array:
//
//	[{"id": 1, "costs": {"ore": {"ore": 4}, "clay": {"ore": 2},
//	  "obsidian": {"ore": 3, "clay": 14}, "geode": {"ore": 2, "obsidian": 7}}}]
//
// Every tier must appear under "costs"; an empty object means the robot is free.
func ParseJSON(data []byte) ([]*production.Blueprint, error) {
	if !gjson.ValidBytes(data) {
		return nil, &MalformedInputError{Reason: "document is not valid JSON"}
	}

	root := gjson.ParseBytes(data)
	list := root
	if root.IsObject() {
		list = root.Get("blueprints")
	}
	if !list.IsArray() {
		return nil, &MalformedInputError{Reason: "expected an array of blueprints or an object with a \"blueprints\" array"}
	}

	var blueprints []*production.Blueprint
	seen := make(map[int]int)
	var parseErr error
	entry := 0
	list.ForEach(func(_, value gjson.Result) bool {
		entry++
		bp, err := parseJSONEntry(entry, value)
		if err != nil {
			parseErr = err
			return false
		}
		if first, dup := seen[bp.ID()]; dup {
			parseErr = &MalformedInputError{
				Entry:  entry,
				Reason: fmt.Sprintf("blueprint %d already declared at entry %d", bp.ID(), first),
			}
			return false
		}
		seen[bp.ID()] = entry
		blueprints = append(blueprints, bp)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(blueprints) == 0 {
		return nil, &MalformedInputError{Reason: "no blueprints declared"}
	}
	return blueprints, nil
}

func parseJSONEntry(entry int, value gjson.Result) (*production.Blueprint, error) {
	fail := func(format string, args ...interface{}) error {
		return &MalformedInputError{Entry: entry, Reason: fmt.Sprintf(format, args...)}
	}

	if !value.IsObject() {
		return nil, fail("blueprint must be an object, got %s", value.Type)
	}

	idField := value.Get("id")
	if idField.Type != gjson.Number {
		return nil, fail("missing numeric \"id\"")
	}
	id, ok := integral(idField)
	if !ok {
		return nil, fail("\"id\" %s is not an integer", idField.Raw)
	}

	costsField := value.Get("costs")
	if !costsField.IsObject() {
		return nil, fail("blueprint %d: missing \"costs\" object", id)
	}

	var costs production.CostTable
	var declared [production.NumResources]bool
	var tierErr error
	costsField.ForEach(func(key, tierCosts gjson.Result) bool {
		tier, reason := resolveResource(key.String(), "robot tier")
		if reason != "" {
			tierErr = fail("blueprint %d: %s", id, reason)
			return false
		}
		if declared[tier] {
			tierErr = fail("blueprint %d: %s robot cost declared twice", id, tier)
			return false
		}
		declared[tier] = true

		q, err := parseJSONAmounts(tierCosts)
		if err != nil {
			tierErr = fail("blueprint %d: %s robot: %s", id, tier, err.Error())
			return false
		}
		costs[tier] = q
		return true
	})
	if tierErr != nil {
		return nil, tierErr
	}

	for _, tier := range production.Resources() {
		if !declared[tier] {
			return nil, fail("blueprint %d has no cost entry for the %s robot", id, tier)
		}
	}

	bp, err := production.NewBlueprint(int(id), costs)
	if err != nil {
		return nil, &MalformedInputError{Entry: entry, Reason: "inconsistent costs", Err: err}
	}
	return bp, nil
}

func parseJSONAmounts(v gjson.Result) (production.Quantities, error) {
	var q production.Quantities
	if !v.IsObject() {
		return q, fmt.Errorf("costs must be an object of resource quantities")
	}

	var seen [production.NumResources]bool
	var err error
	v.ForEach(func(key, amount gjson.Result) bool {
		res, reason := resolveResource(key.String(), "resource")
		if reason != "" {
			err = fmt.Errorf("%s", reason)
			return false
		}
		if seen[res] {
			err = fmt.Errorf("%s listed twice", res)
			return false
		}
		seen[res] = true

		n, ok := integral(amount)
		if amount.Type != gjson.Number || !ok || n < 0 {
			err = fmt.Errorf("%s quantity %s is not a non-negative integer", res, amount.Raw)
			return false
		}
		q[res] = n
		return true
	})
	return q, err
}

// integral reports whether a JSON number holds an exact int64
func integral(v gjson.Result) (int64, bool) {
	f := v.Float()
	if f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return v.Int(), true
}
