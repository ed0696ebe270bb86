package detector

import (
	"sort"

	"github.com/simtree-go/simtree/internal/extract"
)

// GroupingStrategy assembles duplicate groups from the surviving pairs a
// detection run produced. impactStrategy is the spec-canonical algorithm;
// connectedStrategy is an alternate strategy for corpora where duplicate
// relationships chain transitively across more than one pair.
type GroupingStrategy interface {
	Assemble(methods []*extract.Method, surviving []pair) []*Group
}

// impactStrategy groups by representative (the smaller of each pair's two
// indices) and ranks by impact, per the detector's default algorithm.
type impactStrategy struct{}

func (impactStrategy) Assemble(methods []*extract.Method, surviving []pair) []*Group {
	return assembleGroups(methods, surviving)
}

// ImpactGroupingStrategy returns the spec-canonical representative/impact
// grouping algorithm.
func ImpactGroupingStrategy() GroupingStrategy { return impactStrategy{} }

// ConnectedGroupingStrategy returns the alternate transitive-cluster
// grouping algorithm, selected via --group-mode=connected.
func ConnectedGroupingStrategy() GroupingStrategy { return connectedStrategy{} }

// connectedStrategy treats surviving pairs as edges of an undirected graph
// and groups each connected component together, rather than limiting a
// group to methods directly paired with its representative.
type connectedStrategy struct{}

func (connectedStrategy) Assemble(methods []*extract.Method, surviving []pair) []*Group {
	n := len(methods)
	uf := newUnionFind(n)
	edgeSim := make(map[[2]int]float64, len(surviving))
	for _, p := range surviving {
		uf.union(p.i, p.j)
		edgeSim[[2]int{p.i, p.j}] = p.similarity
	}

	components := make(map[int][]int)
	for i := 0; i < n; i++ {
		root := uf.find(i)
		components[root] = append(components[root], i)
	}

	var groups []*Group
	for _, members := range components {
		if len(members) < 2 {
			continue
		}
		sort.Ints(members)
		rep := members[0]
		group := &Group{Representative: methods[rep]}
		grouped := map[int]bool{rep: true}

		for _, j := range members[1:] {
			sim, ok := bestEdgeSimilarity(edgeSim, grouped, j)
			if !ok {
				continue
			}
			impact := Impact(methods[rep], methods[j], sim)
			group.Entries = append(group.Entries, &Entry{Method: methods[j], Similarity: sim, Impact: impact})
			group.TotalImpact += impact
			grouped[j] = true
		}

		if len(group.Entries) > 0 {
			sort.Slice(group.Entries, func(a, b int) bool {
				return group.Entries[a].Impact > group.Entries[b].Impact
			})
			groups = append(groups, group)
		}
	}

	sort.Slice(groups, func(a, b int) bool { return groups[a].TotalImpact > groups[b].TotalImpact })
	return groups
}

// bestEdgeSimilarity returns the highest-similarity direct edge between j
// and any method already placed in the group being assembled.
func bestEdgeSimilarity(edgeSim map[[2]int]float64, grouped map[int]bool, j int) (float64, bool) {
	best, found := 0.0, false
	for g := range grouped {
		a, b := g, j
		if a > b {
			a, b = b, a
		}
		if s, ok := edgeSim[[2]int{a, b}]; ok && (!found || s > best) {
			best, found = s, true
		}
	}
	return best, found
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

func (uf *unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	if ra != rb {
		uf.parent[ra] = rb
	}
}
