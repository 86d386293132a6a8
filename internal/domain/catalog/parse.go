package catalog

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

var (
	headerPattern = regexp.MustCompile(`^Blueprint\s+(\S+?)\s*:`)
	clausePattern = regexp.MustCompile(`^Each\s+(\S+)\s+robot\s+costs\s+([^.]*)\.`)
	amountPattern = regexp.MustCompile(`^(\S+)\s+(\S+)$`)
	amountSplit   = regexp.MustCompile(`\s+and\s+|\s*,\s*`)
)

// chunk is the text of one blueprint, which may span several lines
type chunk struct {
	line  int
	entry int
	text  string
}

// Parse reads a text catalog such as
//
//	Blueprint 1: Each ore robot costs 4 ore. Each clay robot costs 2 ore.
//	  Each obsidian robot costs 3 ore and 14 clay.
//	  Each geode robot costs 2 ore and 7 obsidian.
//
// A blueprint starts at a line beginning with "Blueprint" and runs until the
// next one. Either every blueprint parses or a *MalformedInputError is returned.
func Parse(text string) ([]*production.Blueprint, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader is Parse over a reader
func ParseReader(r io.Reader) ([]*production.Blueprint, error) {
	chunks, err := splitChunks(r)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, &MalformedInputError{Reason: "no blueprints declared"}
	}

	blueprints := make([]*production.Blueprint, 0, len(chunks))
	seen := make(map[int]int, len(chunks))
	for _, c := range chunks {
		bp, err := parseChunk(c)
		if err != nil {
			return nil, err
		}
		if first, dup := seen[bp.ID()]; dup {
			return nil, &MalformedInputError{
				Line:   c.line,
				Reason: fmt.Sprintf("blueprint %d already declared at line %d", bp.ID(), first),
			}
		}
		seen[bp.ID()] = c.line
		blueprints = append(blueprints, bp)
	}
	return blueprints, nil
}

func splitChunks(r io.Reader) ([]chunk, error) {
	var chunks []chunk
	var current *chunk
	var parts []string

	flush := func() {
		if current != nil {
			current.text = strings.Join(parts, " ")
			chunks = append(chunks, *current)
		}
		parts = parts[:0]
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.Join(strings.Fields(scanner.Text()), " ")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "Blueprint") {
			flush()
			current = &chunk{line: lineNo, entry: len(chunks) + 1}
		} else if current == nil {
			return nil, &MalformedInputError{
				Line:   lineNo,
				Reason: fmt.Sprintf("expected a line starting with \"Blueprint\", got %q", truncate(line)),
			}
		}
		parts = append(parts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	flush()
	return chunks, nil
}

func parseChunk(c chunk) (*production.Blueprint, error) {
	fail := func(format string, args ...interface{}) error {
		return &MalformedInputError{Line: c.line, Entry: c.entry, Reason: fmt.Sprintf(format, args...)}
	}

	header := headerPattern.FindStringSubmatch(c.text)
	if header == nil {
		return nil, fail("expected \"Blueprint <id>:\", got %q", truncate(c.text))
	}
	id, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, fail("blueprint identifier %q is not a number", header[1])
	}

	var costs production.CostTable
	var declared [production.NumResources]bool
	rest := strings.TrimSpace(c.text[len(header[0]):])
	for rest != "" {
		clause := clausePattern.FindStringSubmatch(rest)
		if clause == nil {
			return nil, fail("expected \"Each <tier> robot costs ...\", got %q", truncate(rest))
		}
		tier, reason := resolveResource(clause[1], "robot tier")
		if reason != "" {
			return nil, fail("%s", reason)
		}
		if declared[tier] {
			return nil, fail("%s robot cost declared twice", tier)
		}
		declared[tier] = true

		amounts, err := parseAmounts(clause[2])
		if err != nil {
			return nil, fail("%s robot: %s", tier, err.Error())
		}
		costs[tier] = amounts
		rest = strings.TrimSpace(rest[len(clause[0]):])
	}

	for _, tier := range production.Resources() {
		if !declared[tier] {
			return nil, fail("blueprint %d has no cost clause for the %s robot", id, tier)
		}
	}

	bp, err := production.NewBlueprint(id, costs)
	if err != nil {
		return nil, &MalformedInputError{Line: c.line, Entry: c.entry, Reason: "inconsistent costs", Err: err}
	}
	return bp, nil
}

// parseAmounts reads "3 ore and 14 clay" (commas also separate amounts)
func parseAmounts(list string) (production.Quantities, error) {
	var q production.Quantities
	list = strings.TrimSpace(list)
	if list == "nothing" {
		return q, nil
	}
	if list == "" {
		return q, fmt.Errorf("cost list is empty")
	}

	var seen [production.NumResources]bool
	for _, part := range amountSplit.Split(list, -1) {
		m := amountPattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			return q, fmt.Errorf("cost %q is not \"<quantity> <resource>\"", part)
		}
		qty, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || qty < 0 {
			return q, fmt.Errorf("cost %q has no non-negative numeric quantity", part)
		}
		res, reason := resolveResource(m[2], "resource")
		if reason != "" {
			return q, fmt.Errorf("%s", reason)
		}
		if seen[res] {
			return q, fmt.Errorf("%s listed twice", res)
		}
		seen[res] = true
		q[res] = qty
	}
	return q, nil
}

func truncate(s string) string {
	const max = 40
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
