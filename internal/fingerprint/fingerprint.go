// Package fingerprint computes the cheap per-method admission fingerprint
// (a 128-bit Bloom filter plus a node-kind histogram) consumed by the
// duplicate detector as a prefilter ahead of tree edit distance.
package fingerprint

import "github.com/simtree-go/simtree/internal/tree"

const bits = 128
const words = bits / 64

// Fingerprint is the fixed-size per-method summary: a 128-bit Bloom filter
// and a node-kind histogram, built once at ingestion and never mutated.
type Fingerprint struct {
	bloom     [words]uint64
	Histogram map[string]int
	popcount  int
}

// Build walks t once, populating the kind histogram and setting Bloom bits
// for every node's value (when present) or kind (otherwise).
func Build(t *tree.Node) *Fingerprint {
	fp := &Fingerprint{Histogram: make(map[string]int)}
	fp.walk(t)
	return fp
}

func (fp *Fingerprint) walk(n *tree.Node) {
	if n == nil {
		return
	}
	fp.Histogram[n.Kind]++
	if n.Value != "" {
		for _, mult := range [3]uint64{31, 37, 41} {
			h := hashString(n.Value, mult)
			fp.setBit(int(h % bits))
		}
	} else {
		h := hashKind(n.Kind)
		fp.setBit(int(h % bits))
	}
	for _, c := range n.Children {
		fp.walk(c)
	}
}

func hashString(s string, mult uint64) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = h*mult + uint64(s[i])
	}
	return h
}

func hashKind(k string) uint64 {
	var code uint64
	for i := 0; i < len(k); i++ {
		code = code*31 + uint64(k[i])
	}
	return code*31 + 0x9e3779b9
}

func (fp *Fingerprint) setBit(pos int) {
	word := pos / 64
	bit := uint(pos % 64)
	if fp.bloom[word]&(1<<bit) == 0 {
		fp.bloom[word] |= 1 << bit
		fp.popcount++
	}
}

// Popcount returns the number of set Bloom bits.
func (fp *Fingerprint) Popcount() int {
	if fp == nil {
		return 0
	}
	return fp.popcount
}

func intersectionPopcount(a, b *Fingerprint) int {
	count := 0
	for i := 0; i < words; i++ {
		w := a.bloom[i] & b.bloom[i]
		for w != 0 {
			count++
			w &= w - 1
		}
	}
	return count
}

func unionPopcountNonzero(a, b *Fingerprint) bool {
	for i := 0; i < words; i++ {
		if a.bloom[i]&b.bloom[i] != 0 {
			return true
		}
	}
	return false
}

// MightBeSimilar is the deliberately permissive admission predicate: it
// returns true whenever either fingerprint has no set bits, whenever the
// ratio of shared bits to the larger popcount exceeds tau, or whenever the
// two filters share any bit at all. The predicate is a cheap prefilter, not
// a decision — it is expected to admit nearly everything except genuinely
// disjoint fingerprints.
func MightBeSimilar(a, b *Fingerprint, tau float64) bool {
	if a.Popcount() == 0 || b.Popcount() == 0 {
		return true
	}
	inter := intersectionPopcount(a, b)
	maxPop := a.Popcount()
	if b.Popcount() > maxPop {
		maxPop = b.Popcount()
	}
	if maxPop > 0 && float64(inter)/float64(maxPop) > tau {
		return true
	}
	return unionPopcountNonzero(a, b)
}

// kindWeights assigns a per-kind importance factor used by HistogramSimilarity.
var kindWeights = map[string]float64{
	"if": 2.0, "while": 2.0, "for": 2.0, "foreach": 2.0, "do": 2.0,
	"switch": 1.8, "ternary": 1.8,
	"function": 1.5, "constructor": 1.5, "local_function": 1.5,
	"MethodInvocation": 1.3, "ObjectCreation": 1.3,
	"try": 1.5, "raise": 1.5,
	"AdditiveOp": 1.2, "MultiplicativeOp": 1.2, "UnaryArithmeticOp": 1.2,
	"EqualityOp": 1.1, "RelationalOp": 1.1,
	"SimpleAssignment": 1.0, "CompoundAssignment": 1.0,
	"BinaryLogicalOp": 1.0, "UnaryLogicalOp": 1.0,
	"ElementAccess": 0.9, "ArrayCreation": 0.9,
	"Declaration": 0.8,
	"SimpleIdentifier": 0.5, "QualifiedIdentifier": 0.5,
	"NumericLiteral": 0.5, "StringLiteral": 0.5, "BoolLiteral": 0.5,
}

const defaultKindWeight = 0.3

// HistogramSimilarity is a diagnostic secondary similarity computed purely
// from the node-kind histograms: a weighted, normalized L1 difference.
func HistogramSimilarity(a, b *Fingerprint) float64 {
	kinds := make(map[string]struct{})
	for k := range a.Histogram {
		kinds[k] = struct{}{}
	}
	for k := range b.Histogram {
		kinds[k] = struct{}{}
	}
	var weightedDiff, totalWeight float64
	for k := range kinds {
		c1 := float64(a.Histogram[k])
		c2 := float64(b.Histogram[k])
		maxC := c1
		if c2 > maxC {
			maxC = c2
		}
		var diff float64
		if maxC > 0 {
			diff = abs(c1-c2) / maxC
		}
		w := kindWeights[k]
		if w == 0 {
			w = defaultKindWeight
		}
		weightedDiff += diff * w
		totalWeight += w
	}
	if totalWeight == 0 {
		return 1.0
	}
	return 1 - weightedDiff/totalWeight
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
