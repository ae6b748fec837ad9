// Package solver allocates monthly part demand across production lines.
//
// Each month is an independent assignment problem: parts push units to
// their eligible lines, lines cap total units, and leftover demand is
// unmet. The solution is lexicographic: total unmet demand is minimized
// first, and among those allocations the one using the cheapest line
// ranks wins (main line costs 0 per unit, first fallback 1, second 2).
// This is computed exactly as a min-cost max-flow on a tripartite graph
// using successive shortest augmenting paths.
package solver

import (
	"context"
	"sort"
	"time"

	"lineload/internal/core/capacity"
	"lineload/internal/core/plan"
	perr "lineload/internal/platform/errors"
)

// residuals below eps are treated as exhausted
const eps = 1e-9

// Status reports how a solve ended
type Status string

const (
	// StatusOptimal means the lexicographic optimum was found
	StatusOptimal Status = "OPTIMAL"
	// StatusInfeasible means the model was malformed
	StatusInfeasible Status = "INFEASIBLE"
	// StatusError means the solve was aborted, typically by deadline
	StatusError Status = "SOLVE_ERROR"
)

// Solve allocates all twelve months for the given parts against the
// capacity matrix. Parts must pass plan.Validate; ctx cancellation or
// deadline expiry aborts with a solve error.
func Solve(ctx context.Context, parts []plan.Part, caps capacity.Matrix) (*Result, error) {
	start := time.Now()

	if err := plan.Validate(parts); err != nil {
		return nil, err
	}

	ordered := make([]plan.Part, len(parts))
	copy(ordered, parts)
	plan.SortParts(ordered)

	lines := resultLines(ordered, caps)

	res := newResult(ordered, lines)

	for month := 0; month < plan.MonthCount; month++ {
		if err := solveMonth(ctx, ordered, lines, caps, month, res); err != nil {
			return nil, err
		}
	}

	res.Status = StatusOptimal
	res.SolveTime = time.Since(start)
	return res, nil
}

// resultLines is the sorted union of capacity lines and part-eligible
// lines, so zero-capacity and unused lines still show up with zero load
func resultLines(parts []plan.Part, caps capacity.Matrix) []plan.LineID {
	seen := map[plan.LineID]bool{}
	var out []plan.LineID
	for _, l := range caps.Lines() {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	for _, l := range plan.LineUniverse(parts) {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// solveMonth runs one month's flow problem and folds the allocation into
// res. Node layout: 0 is the source, 1..P the active parts, P+1..P+L the
// lines, and P+L+1 the sink.
func solveMonth(ctx context.Context, parts []plan.Part, lines []plan.LineID, caps capacity.Matrix, month int, res *Result) error {
	var active []int
	for i, p := range parts {
		if p.Demand[month] > eps {
			active = append(active, i)
		}
	}
	if len(active) == 0 {
		return nil
	}

	lineNode := make(map[plan.LineID]int, len(lines))
	for i, l := range lines {
		lineNode[l] = 1 + len(active) + i
	}
	sink := 1 + len(active) + len(lines)

	type routeEdge struct {
		line plan.LineID
		from int
		idx  int
	}

	g := newGraph(sink + 1)
	routes := make([][]routeEdge, len(active))

	for ai, pi := range active {
		p := parts[pi]
		node := 1 + ai
		g.addEdge(0, node, p.Demand[month], 0)
		for rank, l := range p.Lines {
			idx := g.addEdge(node, lineNode[l], p.Demand[month], float64(rank))
			routes[ai] = append(routes[ai], routeEdge{line: l, from: node, idx: idx})
		}
	}
	for _, l := range lines {
		g.addEdge(lineNode[l], sink, caps.Get(l, month), 0)
	}

	if err := g.minCostMaxFlow(ctx, 0, sink); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeSolve, "month %s", plan.MonthLabels[month])
	}

	for ai, pi := range active {
		p := parts[pi]
		var assigned float64
		for _, r := range routes[ai] {
			flow := g.flow(r.from, r.idx)
			if flow <= eps {
				continue
			}
			res.addAllocation(p.Number, r.line, month, flow)
			assigned += flow
		}
		if unmet := p.Demand[month] - assigned; unmet > eps {
			res.addUnmet(p.Number, month, unmet)
		}
	}
	return nil
}
