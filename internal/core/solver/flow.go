package solver

import (
	"context"
	"math"

	perr "lineload/internal/platform/errors"
)

// edge is one directed arc of the residual graph; rev indexes the paired
// reverse arc in adj[to]
type edge struct {
	to   int
	rev  int
	cap  float64
	cost float64
}

// graph is a residual network for min-cost max-flow. Edge insertion
// order is fixed by the caller and the search relaxes arcs in that
// order, so equal-cost solutions resolve deterministically.
type graph struct {
	adj [][]edge
}

func newGraph(n int) *graph {
	return &graph{adj: make([][]edge, n)}
}

// addEdge inserts a forward arc and its zero-capacity reverse, returning
// the forward arc's index within adj[from]
func (g *graph) addEdge(from, to int, capacity, cost float64) int {
	idx := len(g.adj[from])
	g.adj[from] = append(g.adj[from], edge{to: to, rev: len(g.adj[to]), cap: capacity, cost: cost})
	g.adj[to] = append(g.adj[to], edge{to: from, rev: idx, cap: 0, cost: -cost})
	return idx
}

// flow reports the units pushed through the forward arc adj[from][idx]
func (g *graph) flow(from, idx int) float64 {
	e := g.adj[from][idx]
	return g.adj[e.to][e.rev].cap
}

// minCostMaxFlow augments along successive shortest (cheapest) paths
// until the sink is unreachable. Because every augmentation is along a
// cheapest residual path, the final flow is both maximum and of minimum
// cost among maximum flows. The context is checked once per
// augmentation.
func (g *graph) minCostMaxFlow(ctx context.Context, source, sink int) error {
	n := len(g.adj)
	dist := make([]float64, n)
	prevNode := make([]int, n)
	prevEdge := make([]int, n)

	for {
		if err := ctx.Err(); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeSolve, "allocation aborted")
		}

		// Bellman-Ford over the residual graph; arcs relax in insertion
		// order with strict improvement, keeping tie-breaks stable
		for i := range dist {
			dist[i] = math.Inf(1)
			prevNode[i] = -1
		}
		dist[source] = 0
		for round := 0; round < n; round++ {
			improved := false
			for u := 0; u < n; u++ {
				if math.IsInf(dist[u], 1) {
					continue
				}
				for ei, e := range g.adj[u] {
					if e.cap <= eps {
						continue
					}
					if nd := dist[u] + e.cost; nd < dist[e.to]-eps {
						dist[e.to] = nd
						prevNode[e.to] = u
						prevEdge[e.to] = ei
						improved = true
					}
				}
			}
			if !improved {
				break
			}
		}

		if math.IsInf(dist[sink], 1) {
			return nil
		}

		bottleneck := math.Inf(1)
		for v := sink; v != source; v = prevNode[v] {
			e := g.adj[prevNode[v]][prevEdge[v]]
			if e.cap < bottleneck {
				bottleneck = e.cap
			}
		}
		for v := sink; v != source; v = prevNode[v] {
			u := prevNode[v]
			g.adj[u][prevEdge[v]].cap -= bottleneck
			rev := g.adj[u][prevEdge[v]].rev
			g.adj[v][rev].cap += bottleneck
		}
	}
}
