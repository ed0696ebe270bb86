package detector

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/simtree-go/simtree/internal/extract"
	"github.com/simtree-go/simtree/internal/fingerprint"
	"github.com/simtree-go/simtree/internal/tree"
)

func buildTree() *tree.Node {
	return tree.New("function", "",
		tree.New("if", "",
			tree.New("SimpleIdentifier", "x"),
			tree.New("return", "", tree.New("NumericLiteral", "1"))),
		tree.New("MethodInvocation", "", tree.New("SimpleIdentifier", "helper")))
}

func newMethod(fullName string, lines int, t *tree.Node) *extract.Method {
	return &extract.Method{
		Name:        fullName,
		FullName:    fullName,
		FilePath:    "a.py",
		LineCount:   lines,
		TokenCount:  t.Size(),
		Tree:        t,
		Fingerprint: fingerprint.Build(t),
	}
}

func TestDetect_IdenticalMethodsFormGroup(t *testing.T) {
	a := newMethod("a", 12, buildTree())
	b := newMethod("b", 12, buildTree())

	groups, err := Detect([]*extract.Method{a, b}, DefaultOptions())
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, "a", groups[0].Representative.FullName)
	assert.Len(t, groups[0].Entries, 1)
	assert.InDelta(t, 1.0, groups[0].Entries[0].Similarity, 1e-9)
}

func TestDetect_UnrelatedMethodsFormNoGroup(t *testing.T) {
	a := newMethod("a", 12, buildTree())
	other := tree.New("function", "",
		tree.New("while", "", tree.New("BinaryBitwiseOp", "&"), tree.New("break", "")),
		tree.New("StringLiteral", "hi"))
	b := newMethod("b", 12, other)

	groups, err := Detect([]*extract.Method{a, b}, DefaultOptions())
	assert.NoError(t, err)
	assert.Empty(t, groups)
}

func TestDetect_EligibilityFilterExcludesShortMethods(t *testing.T) {
	a := newMethod("a", 2, buildTree())
	b := newMethod("b", 2, buildTree())

	opts := DefaultOptions()
	opts.MinLines = 5
	groups, err := Detect([]*extract.Method{a, b}, opts)
	assert.NoError(t, err)
	assert.Empty(t, groups)
}

func TestDetect_NamePatternExcludesNonMatching(t *testing.T) {
	a := newMethod("test_a", 12, buildTree())
	b := newMethod("test_b", 12, buildTree())

	opts := DefaultOptions()
	opts.NamePattern = regexp.MustCompile(`^prod_`)
	groups, err := Detect([]*extract.Method{a, b}, opts)
	assert.NoError(t, err)
	assert.Empty(t, groups)
}

func TestImpact_ScalesByLinesAndSimilarity(t *testing.T) {
	a := newMethod("a", 10, buildTree())
	b := newMethod("b", 20, buildTree())
	assert.InDelta(t, 15.0, Impact(a, b, 0.5), 1e-9)
}

func TestLSHCandidateGenerator_FindsIdenticalMethodPair(t *testing.T) {
	a := newMethod("a", 12, buildTree())
	b := newMethod("b", 12, buildTree())

	opts := DefaultOptions()
	opts.Candidates = lshCandidateGenerator{}
	groups, err := Detect([]*extract.Method{a, b}, opts)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestConnectedStrategy_ChainsTransitivePairsIntoOneGroup(t *testing.T) {
	methods := []*extract.Method{
		newMethod("m0", 10, buildTree()),
		newMethod("m1", 10, buildTree()),
		newMethod("m2", 10, buildTree()),
	}
	surviving := []pair{
		{i: 0, j: 1, similarity: 0.9},
		{i: 1, j: 2, similarity: 0.9},
	}
	groups := connectedStrategy{}.Assemble(methods, surviving)
	assert.Len(t, groups, 1)
	assert.Equal(t, "m0", groups[0].Representative.FullName)
	assert.Len(t, groups[0].Entries, 2)
}

func TestAssembleGroups_RankedByTotalImpactDescending(t *testing.T) {
	methods := []*extract.Method{
		newMethod("m0", 5, buildTree()),
		newMethod("m1", 5, buildTree()),
		newMethod("m2", 50, buildTree()),
		newMethod("m3", 50, buildTree()),
	}
	surviving := []pair{
		{i: 0, j: 1, similarity: 1.0},
		{i: 2, j: 3, similarity: 1.0},
	}
	groups := assembleGroups(methods, surviving)
	assert.Len(t, groups, 2)
	assert.Equal(t, "m2", groups[0].Representative.FullName)
	assert.Equal(t, "m0", groups[1].Representative.FullName)
}
