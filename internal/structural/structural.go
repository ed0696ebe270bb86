// Package structural computes the one-pass structural feature summary (C5)
// consumed by the similarity scorer's structural penalty.
package structural

import "github.com/simtree-go/simtree/internal/tree"

// Features holds the structural summary of a single method's normalized tree.
type Features struct {
	ControlFlowComplexity int
	LoopTypes             []string
	ConditionalCount      int
	MethodCallCount       int
	VariableCount         int
	MaxNestingLevel       int
	Identifiers           map[string]struct{}
	Literals              map[string]struct{}
}

var loopKinds = map[string]bool{"for": true, "while": true, "do": true, "foreach": true}

var identifierKinds = map[string]bool{"SimpleIdentifier": true, "PropertyAccess": true}

var literalKinds = map[string]bool{"StringLiteral": true, "NumericLiteral": true, "BoolLiteral": true}

// Compute walks root once and returns its structural features. Callers
// should memoize the result per method; Compute itself does no caching.
func Compute(root *tree.Node) *Features {
	f := &Features{
		Identifiers: make(map[string]struct{}),
		Literals:    make(map[string]struct{}),
	}
	walk(root, 0, f)
	return f
}

func walk(n *tree.Node, depth int, f *Features) {
	if n == nil {
		return
	}

	nextDepth := depth
	switch {
	case loopKinds[n.Kind]:
		f.ControlFlowComplexity++
		f.LoopTypes = append(f.LoopTypes, n.Kind)
		nextDepth++
	case n.Kind == "if" || n.Kind == "ternary":
		f.ControlFlowComplexity++
		f.ConditionalCount++
		nextDepth++
	case n.Kind == "switch":
		f.ControlFlowComplexity += 2
		f.ConditionalCount++
		nextDepth++
	case n.Kind == "try":
		f.ControlFlowComplexity += 2
		nextDepth++
	}

	if n.Kind == "MethodInvocation" {
		f.MethodCallCount++
	}
	if n.Kind == "Declaration" || n.Kind == "SimpleAssignment" || n.Kind == "CompoundAssignment" {
		f.VariableCount++
	}
	if identifierKinds[n.Kind] && n.Value != "" {
		f.Identifiers[n.Value] = struct{}{}
	}
	if literalKinds[n.Kind] && n.Value != "" {
		f.Literals[n.Value] = struct{}{}
	}

	if nextDepth > f.MaxNestingLevel {
		f.MaxNestingLevel = nextDepth
	}

	for _, c := range n.Children {
		walk(c, nextDepth, f)
	}
}
