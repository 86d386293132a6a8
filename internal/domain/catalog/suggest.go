package catalog

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

// resolveResource maps a tier or resource token to a Resource. Unknown names
// come back with a reason naming the closest known resource, if any is near.
func resolveResource(token, kind string) (production.Resource, string) {
	name := strings.ToLower(strings.TrimSpace(token))
	if r, ok := production.ParseResource(name); ok {
		return r, ""
	}

	reason := fmt.Sprintf("unrecognized %s %q", kind, token)
	if s, ok := closestName(name, production.ResourceNames()); ok {
		reason += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return 0, reason
}

func closestName(token string, candidates []string) (string, bool) {
	best := ""
	bestDist := -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(token, cand)
		if dist > levenshteinLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, bestDist >= 0
}

func levenshteinLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
