package kind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryDistance_Identity(t *testing.T) {
	for _, c := range []Category{NumericLiteral, SimpleIdentifier, LoopStatement, Unknown} {
		assert.Equal(t, 0.0, CategoryDistance(c, c))
	}
}

func TestCategoryDistance_Symmetric(t *testing.T) {
	pairs := [][2]Category{
		{StringLiteral, CharLiteral},
		{SimpleIdentifier, ThisBaseIdentifier},
		{LoopStatement, ConditionalStatement},
		{NumericLiteral, Declaration},
	}
	for _, p := range pairs {
		assert.Equal(t, CategoryDistance(p[0], p[1]), CategoryDistance(p[1], p[0]))
	}
}

func TestCategoryDistance_KnownValues(t *testing.T) {
	cases := []struct {
		a, b Category
		want float64
	}{
		{StringLiteral, CharLiteral, 0.10},
		{BoolLiteral, NullLiteral, 0.15},
		{SimpleIdentifier, QualifiedIdentifier, 0.05},
		{SimpleIdentifier, GenericIdentifier, 0.10},
		{QualifiedIdentifier, GenericIdentifier, 0.05},
		{SimpleIdentifier, ThisBaseIdentifier, 0.20},
		{AdditiveOp, MultiplicativeOp, 0.10},
		{AdditiveOp, UnaryArithmeticOp, 0.15},
		{AdditiveOp, IncrementOp, 0.20},
		{BinaryLogicalOp, UnaryLogicalOp, 0.10},
		{BinaryBitwiseOp, UnaryBitwiseOp, 0.10},
		{BinaryBitwiseOp, ShiftOp, 0.15},
		{EqualityOp, RelationalOp, 0.10},
		{EqualityOp, TypeCheckOp, 0.20},
		{SimpleAssignment, CompoundAssignment, 0.10},
		{LoopStatement, ConditionalStatement, 0.15},
		{ConditionalStatement, SwitchStatement, 0.10},
		{ConditionalStatement, ElseClause, 0.05},
		{LoopControl, ReturnStatement, 0.10},
		{MethodInvocation, PropertyAccess, 0.10},
		{PropertyAccess, ElementAccess, 0.05},
		{ObjectCreation, ArrayCreation, 0.15},
		{NumericLiteral, SimpleIdentifier, 0.40},
		{SimpleIdentifier, MethodInvocation, 0.30},
		{AdditiveOp, Declaration, 0.70},
		{LoopStatement, Declaration, 0.60},
		{NumericLiteral, Declaration, 0.80},
		{MethodInvocation, ObjectCreation, 0.25},
		{TypeOperation, Declaration, 0.40},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CategoryDistance(c.a, c.b))
		assert.Equal(t, c.want, CategoryDistance(c.b, c.a))
	}
}

func TestCategoryDistance_UnlistedDefaultsHigh(t *testing.T) {
	assert.Equal(t, 1.0, CategoryDistance(StringLiteral, LoopStatement))
}

func TestDistance_SameKindIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Distance("if", "if"))
}

func TestDistance_DifferentKindUsesCategory(t *testing.T) {
	assert.Equal(t, CategoryDistance(LoopStatement, ConditionalStatement), Distance("while", "if"))
}

func TestOf_UnknownKindDefaultsUnknown(t *testing.T) {
	assert.Equal(t, Unknown, Of("__not_a_real_kind__"))
}
