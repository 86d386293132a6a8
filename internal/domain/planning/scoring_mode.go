package planning

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

// ScoringMode selects how per-blueprint yields are combined into one score
type ScoringMode string

const (
	// ScoringModeQuality sums identifier × yield over every blueprint
	ScoringModeQuality ScoringMode = "QUALITY"

	// ScoringModeProduct multiplies the yields of the leading blueprints
	ScoringModeProduct ScoringMode = "PRODUCT"
)

// AllScoringModes returns all valid scoring modes
func AllScoringModes() []ScoringMode {
	return []ScoringMode{ScoringModeQuality, ScoringModeProduct}
}

func (m ScoringMode) String() string {
	return string(m)
}

// Label is the lowercase name used in flags, logs and metric labels
func (m ScoringMode) Label() string {
	return strings.ToLower(string(m))
}

// IsValid checks if the scoring mode is known
func (m ScoringMode) IsValid() bool {
	switch m {
	case ScoringModeQuality, ScoringModeProduct:
		return true
	default:
		return false
	}
}

// ParseScoringMode parses "quality" or "product" in any case
func ParseScoringMode(s string) (ScoringMode, error) {
	m := ScoringMode(strings.ToUpper(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid scoring mode: %s", s)
	}
	return m, nil
}

// Select returns the blueprints the mode evaluates. Quality mode takes the
// whole catalog; product mode takes at most productCount from the front.
func (m ScoringMode) Select(blueprints []*production.Blueprint, productCount int) []*production.Blueprint {
	if m == ScoringModeProduct && productCount < len(blueprints) {
		return blueprints[:productCount]
	}
	return blueprints
}

// Score combines yields according to the mode
func (m ScoringMode) Score(yields []BlueprintYield) int64 {
	if m == ScoringModeProduct {
		return YieldProduct(yields)
	}
	return QualityLevelSum(yields)
}

// QualityLevelSum is Σ id × yield
func QualityLevelSum(yields []BlueprintYield) int64 {
	var sum int64
	for _, y := range yields {
		sum += int64(y.BlueprintID) * y.Yield
	}
	return sum
}

// YieldProduct is Π yield; an empty set scores 1
func YieldProduct(yields []BlueprintYield) int64 {
	product := int64(1)
	for _, y := range yields {
		product *= y.Yield
	}
	return product
}
