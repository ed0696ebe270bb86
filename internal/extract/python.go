package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/simtree-go/simtree/internal/fingerprint"
	"github.com/simtree-go/simtree/internal/parser"
	"github.com/simtree-go/simtree/internal/tree"
)

// PythonExtractor implements MethodExtractor over the tree-sitter Python
// grammar in internal/parser, walking function/async-function definitions
// (including nested methods and local functions) into the C1 tree model.
type PythonExtractor struct{}

// NewPythonExtractor returns a MethodExtractor for Python source files.
func NewPythonExtractor() *PythonExtractor {
	return &PythonExtractor{}
}

func (e *PythonExtractor) Extract(ctx context.Context, path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	p := parser.New()
	result, err := p.Parse(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	builder := parser.NewASTBuilder(source)
	root, err := builder.Build(result.Tree)
	if err != nil {
		return nil, fmt.Errorf("building AST for %s: %w", path, err)
	}

	file := &File{Path: path}
	collectMethods(root, "", file, path)
	return file, nil
}

// collectMethods walks stmts looking for function definitions, recursing
// into class bodies (to pick up methods, owner-qualified) and into function
// bodies (to pick up local functions).
func collectMethods(n *parser.Node, owner string, file *File, path string) {
	if n == nil {
		return
	}
	for _, stmt := range n.Body {
		switch stmt.Type {
		case parser.NodeFunctionDef, parser.NodeAsyncFunctionDef:
			file.Methods = append(file.Methods, buildMethod(stmt, owner, path))
			collectMethods(stmt, owner, file, path)
		case parser.NodeClassDef:
			collectMethods(stmt, stmt.Name, file, path)
		}
	}
}

func buildMethod(n *parser.Node, owner, path string) *Method {
	fullName := n.Name
	if owner != "" {
		fullName = owner + "." + n.Name
	}

	var params []string
	for _, arg := range n.Args {
		params = append(params, arg.Name)
	}

	root := tree.Normalize(convertFunction(n))

	return &Method{
		Name:        n.Name,
		FullName:    fullName,
		FilePath:    path,
		StartLine:   n.Location.StartLine,
		EndLine:     n.Location.EndLine,
		LineCount:   n.Location.EndLine - n.Location.StartLine + 1,
		TokenCount:  root.Size(),
		Async:       n.Type == parser.NodeAsyncFunctionDef,
		Params:      params,
		OwnerType:   owner,
		Tree:        root,
		Fingerprint: fingerprint.Build(root),
	}
}

func convertFunction(n *parser.Node) *tree.Node {
	kids := make([]*tree.Node, 0, len(n.Args)+len(n.Body))
	if len(n.Args) > 0 {
		params := make([]*tree.Node, 0, len(n.Args))
		for _, arg := range n.Args {
			params = append(params, tree.New("Declaration", arg.Name))
		}
		kids = append(kids, tree.New("params", "", params...))
	}
	for _, stmt := range n.Body {
		kids = append(kids, convert(stmt))
	}
	return tree.New("function", n.Name, kids...)
}

func convertBlock(stmts []*parser.Node) *tree.Node {
	kids := make([]*tree.Node, 0, len(stmts))
	for _, s := range stmts {
		kids = append(kids, convert(s))
	}
	return tree.New("block", "", kids...)
}

// convert maps one parser.Node into the normalized tree model, special-
// casing the control-flow shapes that carry the block-elision invariant and
// falling back to a generic kind/value/children mapping for everything
// else.
func convert(n *parser.Node) *tree.Node {
	if n == nil {
		return tree.New("Structural", "")
	}

	switch n.Type {
	case parser.NodeIf:
		var kids []*tree.Node
		if n.Test != nil {
			kids = append(kids, convert(n.Test))
		}
		kids = append(kids, convertBlock(n.Body))
		if len(n.Orelse) > 0 {
			kids = append(kids, tree.New("else", "", convertBlock(n.Orelse)))
		}
		return tree.New("if", "", kids...)

	case parser.NodeWhile, parser.NodeFor, parser.NodeAsyncFor:
		kindName := "while"
		if n.Type == parser.NodeFor || n.Type == parser.NodeAsyncFor {
			kindName = "foreach"
		}
		var kids []*tree.Node
		if n.Test != nil {
			kids = append(kids, convert(n.Test))
		}
		if n.Iter != nil {
			kids = append(kids, convert(n.Iter))
		}
		kids = append(kids, convertBlock(n.Body))
		if len(n.Orelse) > 0 {
			kids = append(kids, tree.New("else", "", convertBlock(n.Orelse)))
		}
		return tree.New(kindName, "", kids...)

	case parser.NodeTry:
		kids := []*tree.Node{convertBlock(n.Body)}
		for _, h := range n.Handlers {
			kids = append(kids, convert(h))
		}
		if len(n.Orelse) > 0 {
			kids = append(kids, tree.New("else", "", convertBlock(n.Orelse)))
		}
		if len(n.Finalbody) > 0 {
			kids = append(kids, tree.New("finally", "", convertBlock(n.Finalbody)))
		}
		return tree.New("try", "", kids...)

	case parser.NodeExceptHandler:
		return tree.New("except", "", convertBlock(n.Body))

	case parser.NodeFunctionDef, parser.NodeAsyncFunctionDef:
		return convertFunction(n)

	case parser.NodeClassDef:
		kids := make([]*tree.Node, 0, len(n.Body))
		for _, stmt := range n.Body {
			kids = append(kids, convert(stmt))
		}
		return tree.New("class", n.Name, kids...)
	}

	kindName, value := classify(n)
	return tree.New(kindName, value, genericChildren(n)...)
}

func genericChildren(n *parser.Node) []*tree.Node {
	var out []*tree.Node
	if child, ok := n.Value.(*parser.Node); ok && child != nil {
		out = append(out, convert(child))
	}
	for _, c := range n.Targets {
		out = append(out, convert(c))
	}
	for _, c := range n.Body {
		out = append(out, convert(c))
	}
	if n.Left != nil {
		out = append(out, convert(n.Left))
	}
	if n.Right != nil {
		out = append(out, convert(n.Right))
	}
	for _, c := range n.Args {
		out = append(out, convert(c))
	}
	for _, c := range n.Keywords {
		out = append(out, convert(c))
	}
	for _, c := range n.Children {
		out = append(out, convert(c))
	}
	return out
}

// classify maps a leaf/expression-level parser.Node to its raw kind (per
// the internal/kind category taxonomy) and, where applicable, a value used
// for rename-cost comparison and identifier/literal collection.
func classify(n *parser.Node) (string, string) {
	switch n.Type {
	case parser.NodeReturn:
		return "return", ""
	case parser.NodeBreak:
		return "break", ""
	case parser.NodeContinue:
		return "continue", ""
	case parser.NodeRaise:
		return "raise", ""
	case parser.NodeMatch:
		return "switch", ""
	case parser.NodeMatchCase:
		return "block", ""
	case parser.NodeIfExp:
		return "ternary", ""
	case parser.NodeBoolOp:
		return "BinaryLogicalOp", n.Op
	case parser.NodeUnaryOp:
		if n.Op == "not" {
			return "UnaryLogicalOp", n.Op
		}
		return "UnaryArithmeticOp", n.Op
	case parser.NodeBinOp:
		return binOpKind(n.Op), n.Op
	case parser.NodeCompare:
		return compareKind(n.Op), n.Op
	case parser.NodeAssign, parser.NodeAnnAssign:
		return "SimpleAssignment", ""
	case parser.NodeAugAssign:
		return "CompoundAssignment", n.Op
	case parser.NodeCall:
		return "MethodInvocation", ""
	case parser.NodeAttribute:
		return "PropertyAccess", n.Name
	case parser.NodeSubscript:
		return "ElementAccess", ""
	case parser.NodeList, parser.NodeTuple, parser.NodeSet, parser.NodeDict:
		return "ArrayCreation", ""
	case parser.NodeListComp, parser.NodeSetComp, parser.NodeDictComp, parser.NodeGeneratorExp:
		return "ArrayCreation", ""
	case parser.NodeArg:
		return "Declaration", n.Name
	case parser.NodeName:
		if n.Name == "self" || n.Name == "cls" {
			return "ThisBaseIdentifier", n.Name
		}
		return "SimpleIdentifier", n.Name
	case parser.NodeConstant:
		return constantKind(n.Value)
	default:
		return string(n.Type), ""
	}
}

func binOpKind(op string) string {
	switch op {
	case "+", "-":
		return "AdditiveOp"
	case "*", "/", "//", "%", "@", "**":
		return "MultiplicativeOp"
	case "<<", ">>":
		return "ShiftOp"
	case "&", "|", "^":
		return "BinaryBitwiseOp"
	default:
		return "AdditiveOp"
	}
}

func compareKind(op string) string {
	switch op {
	case "==", "!=":
		return "EqualityOp"
	case "<", ">", "<=", ">=":
		return "RelationalOp"
	case "is", "is not", "in", "not in":
		return "TypeCheckOp"
	default:
		return "RelationalOp"
	}
}

func constantKind(v interface{}) (string, string) {
	switch val := v.(type) {
	case bool:
		if val {
			return "BoolLiteral", "true"
		}
		return "BoolLiteral", "false"
	case nil:
		return "NullLiteral", ""
	case string:
		return "StringLiteral", val
	default:
		return "NumericLiteral", fmt.Sprintf("%v", val)
	}
}
