// Package ast defines the expression and statement trees produced by
// internal/parser and consumed by internal/interp and internal/ir.
package ast

import (
	"fmt"
	"strings"

	"github.com/blocklang/blocklang/internal/lexer"
)

// Expr is any node of the expression tree (spec §3).
type Expr interface {
	exprNode()
}

type StringLit struct{ Value string }
type BoolLit struct{ Value bool }
type I32Lit struct{ Value int32 }
type I64Lit struct{ Value int64 }
type F32Lit struct{ Value float32 }
type F64Lit struct{ Value float64 }

// ArrayLit is an `[e1, e2, ...]` literal.
type ArrayLit struct{ Elements []Expr }

// Variable is a bare identifier reference.
type Variable struct{ Name string }

// FunctionCall is a call used in expression position (the built-in
// conversion functions `i32`/`i64`/`f32`/`f64`/`string`).
type FunctionCall struct {
	Name string
	Args []Expr
}

// Binary is a fully-formed binary operator node, shaped by the
// precedence fix-up algorithm in internal/parser (spec §4.3).
type Binary struct {
	Op    lexer.MathOp
	Left  Expr
	Right Expr
}

// UnaryOp identifies a prefix unary operator.
type UnaryOp int

const (
	Parenthesis UnaryOp = iota
	LogicalNot
)

type Unary struct {
	Op    UnaryOp
	Child Expr
}

// Increment/Decrement are only meaningful as the RHS of a ModifyVariable
// statement (spec §4.4) — they carry no operand, the target variable name
// comes from the enclosing statement.
type Increment struct{}
type Decrement struct{}

func (*StringLit) exprNode()    {}
func (*BoolLit) exprNode()      {}
func (*I32Lit) exprNode()       {}
func (*I64Lit) exprNode()       {}
func (*F32Lit) exprNode()       {}
func (*F64Lit) exprNode()       {}
func (*ArrayLit) exprNode()     {}
func (*Variable) exprNode()     {}
func (*FunctionCall) exprNode() {}
func (*Binary) exprNode()       {}
func (*Unary) exprNode()        {}
func (*Increment) exprNode()    {}
func (*Decrement) exprNode()    {}

// Precedence returns the binding strength of op per spec §4.3's table:
// Multiply/Divide/Modulus bind tightest (2), Add/Subtract next (1), and
// comparisons plus the logical operators and unary Not share the lowest
// tier (0), left-associating at each tier.
func Precedence(op lexer.MathOp) int {
	switch op {
	case lexer.Multiply, lexer.Divide, lexer.Modulus:
		return 2
	case lexer.Add, lexer.Subtract:
		return 1
	default:
		return 0
	}
}

// String renders an expression tree for debugging (-vv dumps, AST tests).
func String(e Expr) string {
	switch n := e.(type) {
	case *StringLit:
		return fmt.Sprintf("%q", n.Value)
	case *BoolLit:
		return fmt.Sprintf("%t", n.Value)
	case *I32Lit:
		return fmt.Sprintf("%d", n.Value)
	case *I64Lit:
		return fmt.Sprintf("%d", n.Value)
	case *F32Lit:
		return fmt.Sprintf("%g", n.Value)
	case *F64Lit:
		return fmt.Sprintf("%g", n.Value)
	case *ArrayLit:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = String(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Variable:
		return n.Name
	case *FunctionCall:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = String(a)
		}
		return n.Name + "(" + strings.Join(parts, ", ") + ")"
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", String(n.Left), n.Op, String(n.Right))
	case *Unary:
		if n.Op == LogicalNot {
			return "!" + String(n.Child)
		}
		return "(" + String(n.Child) + ")"
	case *Increment:
		return "++"
	case *Decrement:
		return "--"
	default:
		return "<?>"
	}
}
