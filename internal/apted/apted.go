// Package apted computes ordered tree edit distance between two labeled
// trees, with configurable rename/delete/insert costs and a kind-weighted
// rename cost driven by the kind package's category-distance table.
package apted

import (
	"github.com/simtree-go/simtree/internal/kind"
	"github.com/simtree-go/simtree/internal/tree"
)

// Costs bundles the four tunable knobs of the distance computation.
type Costs struct {
	Rename           float64
	Delete           float64
	Insert           float64
	KindDistanceWeight float64
}

// DefaultCosts mirrors the core library surface's documented defaults.
func DefaultCosts() Costs {
	return Costs{Rename: 0.3, Delete: 1.0, Insert: 1.0, KindDistanceWeight: 0.5}
}

type memoKey struct{ a, b int64 }

// Engine computes memoized tree edit distance for one pair of trees. An
// Engine instance is scoped to a single pair call: its memo table is
// cleared (and returned to the pool) when the caller is done with it.
type Engine struct {
	costs Costs
	memo  map[memoKey]float64
	pool  *memoPool
	arena *arena
}

// New returns an engine backed by the package-level memo pool.
func New(costs Costs) *Engine {
	return &Engine{costs: costs, memo: globalPool.get(), pool: globalPool, arena: newArena()}
}

// Release clears the engine's memo table and returns it to the pool. Callers
// must call Release after each Distance call that will not reuse the engine.
func (e *Engine) Release() {
	e.pool.put(e.memo)
	e.memo = nil
}

// nodeCost computes rho(n1,n2) per the contract: a kind mismatch costs
// 1 + kindWeight*KindDistance; a value mismatch under the same kind costs
// the rename cost (when nonzero); otherwise the pair costs nothing.
func (e *Engine) nodeCost(n1, n2 *tree.Node) float64 {
	if n1.Kind != n2.Kind {
		return 1 + e.costs.KindDistanceWeight*kind.Distance(n1.Kind, n2.Kind)
	}
	if e.costs.Rename > 0 && n1.Value != n2.Value {
		return e.costs.Rename
	}
	return 0
}

// Distance returns the ordered tree edit distance between t1 and t2 under
// the engine's costs, memoized by node-ID pair.
func (e *Engine) Distance(t1, t2 *tree.Node) float64 {
	key := memoKey{t1.ID, t2.ID}
	if d, ok := e.memo[key]; ok {
		return d
	}
	d := e.distance(t1, t2)
	e.memo[key] = d
	return d
}

func (e *Engine) distance(n1, n2 *tree.Node) float64 {
	rho := e.nodeCost(n1, n2)
	switch {
	case n1.IsLeaf() && n2.IsLeaf():
		return rho
	case n1.IsLeaf() && !n2.IsLeaf():
		return e.costs.Delete*float64(n2.Size()) - e.costs.Delete + rho
	case !n1.IsLeaf() && n2.IsLeaf():
		return e.costs.Insert*float64(n1.Size()) - e.costs.Insert + rho
	default:
		return rho + e.childrenDistance(n1.Children, n2.Children)
	}
}

// childrenDistance runs the two-row DP over the (possibly swapped) children
// sequences of two internal nodes.
func (e *Engine) childrenDistance(a, b []*tree.Node) float64 {
	deleteCost, insertCost := e.costs.Delete, e.costs.Insert
	if len(a) < len(b) {
		a, b = b, a
		deleteCost, insertCost = insertCost, deleteCost
	}
	m, n := len(a), len(b)

	prev := e.arena.allocate(n + 1)
	curr := e.arena.allocate(n + 1)
	defer e.arena.deallocate(2 * (n + 1))

	for j := 0; j <= n; j++ {
		prev[j] = float64(j) * insertCost
	}

	for i := 1; i <= m; i++ {
		curr[0] = float64(i) * deleteCost
		for j := 1; j <= n; j++ {
			del := prev[j] + deleteCost*float64(a[i-1].Size())
			ins := curr[j-1] + insertCost*float64(b[j-1].Size())
			rep := prev[j-1] + e.Distance(a[i-1], b[j-1])
			curr[j] = min3(del, ins, rep)
		}
		prev, curr = curr, prev
	}
	return prev[n]
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Distance is a convenience entry point that creates, runs, and releases a
// one-shot engine for a single pair.
func Distance(t1, t2 *tree.Node, costs Costs) float64 {
	e := New(costs)
	defer e.Release()
	return e.Distance(t1, t2)
}
