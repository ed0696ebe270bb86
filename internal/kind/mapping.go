package kind

// kindToCategory maps the raw syntactic kinds produced by the extractor's
// tree builder (internal/extract) to their semantic category. Keys are the
// category-named kinds the tree builder emits ("NumericLiteral",
// "MethodInvocation", ...) plus the lowercase structural kinds ("block",
// "if", "else", ...) it introduces while converting a parsed function body
// into the C1 model; no internal/parser.NodeType string is a key.
var kindToCategory = map[string]Category{
	// literals
	"NumericLiteral": NumericLiteral,
	"StringLiteral":  StringLiteral,
	"CharLiteral":    CharLiteral,
	"BoolLiteral":    BoolLiteral,
	"NullLiteral":    NullLiteral,

	// identifiers
	"SimpleIdentifier":    SimpleIdentifier,
	"QualifiedIdentifier": QualifiedIdentifier,
	"GenericIdentifier":   GenericIdentifier,
	"ThisBaseIdentifier":  ThisBaseIdentifier,

	// arithmetic / logical / bitwise / comparison operators
	"AdditiveOp":        AdditiveOp,
	"MultiplicativeOp":  MultiplicativeOp,
	"UnaryArithmeticOp": UnaryArithmeticOp,
	"IncrementOp":       IncrementOp,
	"BinaryLogicalOp":   BinaryLogicalOp,
	"UnaryLogicalOp":    UnaryLogicalOp,
	"BinaryBitwiseOp":   BinaryBitwiseOp,
	"UnaryBitwiseOp":    UnaryBitwiseOp,
	"ShiftOp":           ShiftOp,
	"EqualityOp":        EqualityOp,
	"RelationalOp":      RelationalOp,
	"TypeCheckOp":       TypeCheckOp,

	// assignment
	"SimpleAssignment":   SimpleAssignment,
	"CompoundAssignment": CompoundAssignment,

	// control flow ("if", "else", "while", "for", "foreach" and "do" double
	// as the tree.Normalize block-elision keys)
	"if":     ConditionalStatement,
	"while":  LoopStatement,
	"for":    LoopStatement,
	"foreach": LoopStatement,
	"do":     LoopStatement,
	"switch": SwitchStatement,
	"ternary": ConditionalStatement,
	"else":   ElseClause,
	"break":  LoopControl,
	"continue": LoopControl,
	"return": ReturnStatement,
	"goto":   GotoStatement,
	"try":    ExceptionStatement,
	"raise":  ExceptionStatement,
	"except": ExceptionStatement,
	"finally": ExceptionStatement,

	// access / creation
	"MethodInvocation": MethodInvocation,
	"PropertyAccess":   PropertyAccess,
	"ElementAccess":    ElementAccess,
	"ObjectCreation":   ObjectCreation,
	"ArrayCreation":    ArrayCreation,

	"TypeOperation": TypeOperation,
	"Declaration":   Declaration,

	// pure structure: blocks, parameter lists, function/class shells
	"block":     Structural,
	"params":    Structural,
	"function":  Structural,
	"class":     Structural,
	"module":    Structural,
}
