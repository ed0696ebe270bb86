package apted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/simtree-go/simtree/internal/tree"
)

func leaf(kind, value string) *tree.Node { return tree.New(kind, value) }

func TestDistance_IdenticalTreeIsZero(t *testing.T) {
	root := tree.New("function", "",
		tree.New("if", "",
			leaf("SimpleIdentifier", "x"),
			tree.New("block", "", leaf("return", ""))),
		leaf("NumericLiteral", "1"))

	d := Distance(root, root, DefaultCosts())
	assert.Equal(t, 0.0, d)
}

func TestDistance_StructurallyIdenticalCopyIsZero(t *testing.T) {
	build := func() *tree.Node {
		return tree.New("function", "",
			leaf("SimpleIdentifier", "x"),
			leaf("NumericLiteral", "1"))
	}
	d := Distance(build(), build(), DefaultCosts())
	assert.Equal(t, 0.0, d)
}

func TestDistance_IsSymmetric(t *testing.T) {
	a := tree.New("function", "",
		leaf("SimpleIdentifier", "x"),
		tree.New("if", "", leaf("SimpleIdentifier", "y")))
	b := tree.New("function", "",
		leaf("SimpleIdentifier", "a"),
		leaf("NumericLiteral", "2"))

	costs := DefaultCosts()
	assert.Equal(t, Distance(a, b, costs), Distance(b, a, costs))
}

func TestNodeCost_SameKindSameValue(t *testing.T) {
	e := New(DefaultCosts())
	defer e.Release()
	n1 := leaf("SimpleIdentifier", "x")
	n2 := leaf("SimpleIdentifier", "x")
	assert.Equal(t, 0.0, e.nodeCost(n1, n2))
}

func TestNodeCost_SameKindDifferentValueIsRenameCost(t *testing.T) {
	e := New(DefaultCosts())
	defer e.Release()
	n1 := leaf("SimpleIdentifier", "x")
	n2 := leaf("SimpleIdentifier", "y")
	assert.Equal(t, e.costs.Rename, e.nodeCost(n1, n2))
}

func TestNodeCost_DifferentKindUsesKindWeightedFormula(t *testing.T) {
	e := New(DefaultCosts())
	defer e.Release()
	n1 := leaf("AdditiveOp", "+")
	n2 := leaf("MultiplicativeOp", "*")
	want := 1 + e.costs.KindDistanceWeight*0.10
	assert.InDelta(t, want, e.nodeCost(n1, n2), 1e-9)
}

func TestDistance_LeafVsLeafSameKindSameValue(t *testing.T) {
	a := leaf("NumericLiteral", "1")
	b := leaf("NumericLiteral", "1")
	assert.Equal(t, 0.0, Distance(a, b, DefaultCosts()))
}

func TestDistance_LeafVsLeafSameKindDifferentValue(t *testing.T) {
	a := leaf("NumericLiteral", "1")
	b := leaf("NumericLiteral", "2")
	assert.Equal(t, DefaultCosts().Rename, Distance(a, b, DefaultCosts()))
}

func TestDistance_LeafVsInternalCostsSizeMinusOnePlusRho(t *testing.T) {
	leafNode := leaf("SimpleIdentifier", "x")
	internal := tree.New("function", "", leaf("SimpleIdentifier", "x"), leaf("NumericLiteral", "1"))
	costs := DefaultCosts()

	got := Distance(leafNode, internal, costs)
	e := New(costs)
	defer e.Release()
	rho := e.nodeCost(leafNode, internal)
	want := costs.Delete*float64(internal.Size()) - costs.Delete + rho
	assert.InDelta(t, want, got, 1e-9)
}

func TestChildrenDistance_InsertedExtraChild(t *testing.T) {
	a := tree.New("function", "", leaf("SimpleIdentifier", "x"))
	b := tree.New("function", "", leaf("SimpleIdentifier", "x"), leaf("NumericLiteral", "1"))
	costs := DefaultCosts()

	got := Distance(a, b, costs)
	assert.InDelta(t, costs.Insert*1, got, 1e-9)
}

func TestChildrenDistance_DeletedExtraChild(t *testing.T) {
	a := tree.New("function", "", leaf("SimpleIdentifier", "x"), leaf("NumericLiteral", "1"))
	b := tree.New("function", "", leaf("SimpleIdentifier", "x"))
	costs := DefaultCosts()

	got := Distance(a, b, costs)
	assert.InDelta(t, costs.Delete*1, got, 1e-9)
}

func TestEngine_MemoPoolReused(t *testing.T) {
	costs := DefaultCosts()
	e1 := New(costs)
	a := leaf("SimpleIdentifier", "x")
	b := leaf("SimpleIdentifier", "x")
	_ = e1.Distance(a, b)
	e1.Release()

	e2 := New(costs)
	defer e2.Release()
	assert.Equal(t, 0, len(e2.memo))
}

func TestMin3(t *testing.T) {
	assert.Equal(t, 1.0, min3(1, 2, 3))
	assert.Equal(t, 1.0, min3(3, 1, 2))
	assert.Equal(t, 1.0, min3(3, 2, 1))
}
