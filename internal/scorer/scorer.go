// Package scorer combines APTED tree edit distance with size, short-function,
// and structural penalties into the final [0,1] similarity score (C6).
package scorer

import (
	"math"

	"github.com/simtree-go/simtree/internal/structural"
)

// Options tunes the penalties applied on top of the base tree edit distance
// similarity.
type Options struct {
	SizePenaltyEnabled bool
	RenameCost         float64
}

// DefaultOptions mirrors the scorer's documented defaults.
func DefaultOptions() Options {
	return Options{SizePenaltyEnabled: true, RenameCost: 0.3}
}

// Score computes the similarity of two methods given their tree sizes s1,s2,
// line counts l1,l2, the APTED distance d between their trees, their
// structural features f1,f2, and the scoring options.
func Score(s1, s2 int, l1, l2 int, d float64, f1, f2 *structural.Features, opts Options) float64 {
	maxS := s1
	if s2 > maxS {
		maxS = s2
	}

	tsed := 1.0
	if maxS > 0 {
		tsed = 1 - d/float64(maxS)
		if tsed < 0 {
			tsed = 0
		}
	}

	sim := tsed
	if opts.SizePenaltyEnabled && maxS > 0 {
		minS := s1
		if s2 < minS {
			minS = s2
		}
		r := float64(minS) / float64(maxS)
		switch {
		case r < 0.1:
			sim = tsed * (r * 10)
		case r < 0.3:
			sim = tsed * (0.7 + r)
		}

		avg := float64(l1+l2) / 2
		if avg < 10 {
			sim *= avg / 10
		}
	}

	penalty := structuralPenalty(d, maxS, f1, f2, opts)
	return clamp01(sim * penalty)
}

func structuralPenalty(d float64, maxS int, f1, f2 *structural.Features, opts Options) float64 {
	penalty := 1.0

	if diff := absInt(f1.ControlFlowComplexity - f2.ControlFlowComplexity); diff > 3 {
		penalty *= 0.80
	} else if diff > 1 {
		penalty *= 0.95
	}

	if len(f1.LoopTypes) > 0 && len(f2.LoopTypes) > 0 && !sameLoopTypes(f1.LoopTypes, f2.LoopTypes) {
		penalty *= 0.90
	}

	if absInt(f1.ConditionalCount-f2.ConditionalCount) > 2 {
		penalty *= 0.85
	}

	if callMax := maxInt(f1.MethodCallCount, f2.MethodCallCount); callMax > 0 {
		if float64(absInt(f1.MethodCallCount-f2.MethodCallCount)) > 0.5*float64(callMax) {
			penalty *= 0.90
		}
	}

	if varMax := maxInt(f1.VariableCount, f2.VariableCount); varMax > 0 {
		if float64(absInt(f1.VariableCount-f2.VariableCount)) > 0.4*float64(varMax) {
			penalty *= 0.95
		}
	}

	if absInt(f1.MaxNestingLevel-f2.MaxNestingLevel) > 2 {
		penalty *= 0.90
	}

	if maxS > 0 {
		ratio := d / float64(maxS)
		if ratio > 0.4 {
			penalty *= math.Pow(0.8, ratio)
		}
	}

	v := 0.7*jaccard(f1.Identifiers, f2.Identifiers) + 0.3*jaccard(f1.Literals, f2.Literals)
	v *= 1 - opts.RenameCost
	if v < 0.3 {
		penalty *= 0.85
	} else if v < 0.5 {
		penalty *= 0.95
	}

	if penalty < 0.1 {
		penalty = 0.1
	}
	if penalty > 1 {
		penalty = 1
	}
	return penalty
}

func sameLoopTypes(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

