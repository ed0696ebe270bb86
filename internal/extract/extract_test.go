package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/simtree-go/simtree/internal/parser"
	"github.com/simtree-go/simtree/internal/tree"
)

func funcDef(name string, body ...*parser.Node) *parser.Node {
	n := parser.NewNode(parser.NodeFunctionDef)
	n.Name = name
	n.Body = body
	n.Location = parser.Location{StartLine: 1, EndLine: 1 + len(body)}
	return n
}

func nameNode(id string) *parser.Node {
	n := parser.NewNode(parser.NodeName)
	n.Name = id
	return n
}

func TestBuildMethod_SimpleFunctionHasTree(t *testing.T) {
	fn := funcDef("foo", parser.NewNode(parser.NodeReturn))
	m := buildMethod(fn, "", "file.py")

	assert.Equal(t, "foo", m.Name)
	assert.Equal(t, "foo", m.FullName)
	assert.Equal(t, "function", m.Tree.Kind)
	assert.Greater(t, m.TokenCount, 0)
	assert.NotNil(t, m.Fingerprint)
}

func TestBuildMethod_OwnerQualifiesFullName(t *testing.T) {
	fn := funcDef("bar")
	m := buildMethod(fn, "Widget", "file.py")
	assert.Equal(t, "Widget.bar", m.FullName)
	assert.Equal(t, "Widget", m.OwnerType)
}

func TestCollectMethods_FindsClassMethodsAndLocalFunctions(t *testing.T) {
	inner := funcDef("helper")
	method := funcDef("run", inner)
	class := parser.NewNode(parser.NodeClassDef)
	class.Name = "Service"
	class.Body = []*parser.Node{method}

	module := parser.NewNode(parser.NodeModule)
	module.Body = []*parser.Node{class}

	file := &File{Path: "svc.py"}
	collectMethods(module, "", file, "svc.py")

	var names []string
	for _, m := range file.Methods {
		names = append(names, m.FullName)
	}
	assert.ElementsMatch(t, []string{"Service.run", "Service.helper"}, names)
}

func TestConvert_IfElideSingleStatementBlock(t *testing.T) {
	ifNode := parser.NewNode(parser.NodeIf)
	ifNode.Test = nameNode("cond")
	ifNode.Body = []*parser.Node{parser.NewNode(parser.NodeReturn)}

	fn := funcDef("f", ifNode)
	m := buildMethod(fn, "", "file.py")

	var ifChild *tree.Node
	for _, c := range m.Tree.Children {
		if c.Kind == "if" {
			ifChild = c
		}
	}
	if ifChild == nil {
		t.Fatal("expected an if node in the function tree")
	}
	for _, c := range ifChild.Children {
		assert.NotEqual(t, "block", c.Kind, "single-statement block should be elided")
	}
}

func TestClassify_NameSelfIsThisBase(t *testing.T) {
	kind, value := classify(nameNode("self"))
	assert.Equal(t, "ThisBaseIdentifier", kind)
	assert.Equal(t, "self", value)
}

func TestClassify_BinOpMapsOperatorFamily(t *testing.T) {
	n := parser.NewNode(parser.NodeBinOp)
	n.Op = "*"
	kind, value := classify(n)
	assert.Equal(t, "MultiplicativeOp", kind)
	assert.Equal(t, "*", value)
}

func TestClassify_ConstantBool(t *testing.T) {
	n := parser.NewNode(parser.NodeConstant)
	n.Value = true
	kind, _ := classify(n)
	assert.Equal(t, "BoolLiteral", kind)
}
