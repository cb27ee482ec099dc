// Package interp implements the tree-walking evaluator of spec §4.4: it
// executes a block's statement sequence against a VariableEnvironment
// merged from the block's scheduled parents.
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/blocklang/blocklang/internal/ast"
	"github.com/blocklang/blocklang/internal/cerrors"
	"github.com/blocklang/blocklang/internal/types"
)

// Interpreter holds the collaborators a block's statements may call into:
// where Print writes, and how `sleep` blocks. Both are overridable so
// tests never actually sleep or need to capture real stdout.
type Interpreter struct {
	Out   io.Writer
	Sleep func(time.Duration)
}

// New builds an Interpreter that prints to out and sleeps for real.
func New(out io.Writer) *Interpreter {
	return &Interpreter{Out: out, Sleep: time.Sleep}
}

// Run evaluates stmts against env, mutating env in place (only an error is
// returned; the caller keeps its own reference to env), matching spec §3's "environment is dropped at the end of block
// execution, except those exported to dependents" lifecycle — the caller
// decides what survives.
func (in *Interpreter) Run(stmts []ast.Stmt, env Environment) error {
	for _, stmt := range stmts {
		if err := in.execStmt(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execStmt(stmt ast.Stmt, env Environment) error {
	switch s := stmt.(type) {
	case *ast.Print:
		val, err := in.eval(s.Expr, env)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Out, Render(val))
		return nil

	case *ast.DefineVariable:
		val, err := in.eval(s.Expr, env)
		if err != nil {
			return err
		}
		if !TypeOf(val).Equal(s.Declared) {
			return cerrors.New(cerrors.TypeMismatch,
				fmt.Sprintf("variable %s declared %s but initializer has type %s", s.Name, s.Declared, TypeOf(val)))
		}
		env.Set(s.Name, val, s.Declared)
		return nil

	case *ast.ModifyVariable:
		return in.execModifyVariable(s, env)

	case *ast.WhileLoop:
		for {
			cond, err := in.eval(s.Condition, env)
			if err != nil {
				return err
			}
			b, ok := cond.(BoolVal)
			if !ok || !bool(b) {
				return nil
			}
			if err := in.Run(s.Body, env); err != nil {
				return err
			}
		}

	case *ast.ForLoop:
		if err := in.execStmt(s.Init, env); err != nil {
			return err
		}
		for {
			cond, err := in.eval(s.Cond, env)
			if err != nil {
				return err
			}
			b, ok := cond.(BoolVal)
			if !ok || !bool(b) {
				return nil
			}
			if err := in.Run(s.Body, env); err != nil {
				return err
			}
			if err := in.execStmt(s.Step, env); err != nil {
				return err
			}
		}

	case *ast.If:
		return in.execIf(s, env)

	case *ast.FunctionCallStmt:
		return in.execCallStmt(s, env)

	default:
		return cerrors.New(cerrors.ParseError, fmt.Sprintf("unexpected statement %T", stmt))
	}
}

func (in *Interpreter) execModifyVariable(s *ast.ModifyVariable, env Environment) error {
	existing, ok := env.Get(s.Name)
	if !ok {
		return cerrors.New(cerrors.UndefinedVariable, fmt.Sprintf("variable %s does not exist", s.Name))
	}

	switch s.Expr.(type) {
	case *ast.Increment:
		val, err := stepValue(existing.Value, 1)
		if err != nil {
			return err
		}
		env.Set(s.Name, val, TypeOf(val))
		return nil
	case *ast.Decrement:
		val, err := stepValue(existing.Value, -1)
		if err != nil {
			return err
		}
		env.Set(s.Name, val, TypeOf(val))
		return nil
	}

	val, err := in.eval(s.Expr, env)
	if err != nil {
		return err
	}
	env.Set(s.Name, val, TypeOf(val))
	return nil
}

// stepValue adds delta (+1/-1) to an existing value, preserving its
// concrete type (spec §4.4's Increment/Decrement semantics).
func stepValue(v Primitive, delta int64) (Primitive, error) {
	switch n := v.(type) {
	case I32Val:
		return I32Val(int32(n) + int32(delta)), nil
	case I64Val:
		return I64Val(int64(n) + delta), nil
	case F32Val:
		return F32Val(float32(n) + float32(delta)), nil
	case F64Val:
		return F64Val(float64(n) + float64(delta)), nil
	default:
		return nil, cerrors.New(cerrors.TypeMismatch, "++/-- requires a numeric variable")
	}
}

func (in *Interpreter) execIf(s *ast.If, env Environment) error {
	cond, err := in.eval(s.Condition, env)
	if err != nil {
		return err
	}
	b, ok := cond.(BoolVal)
	if !ok {
		return cerrors.New(cerrors.TypeMismatch, "if condition must be Bool")
	}
	if bool(b) {
		return in.Run(s.Body, env)
	}
	for _, elif := range s.Elifs {
		econd, err := in.eval(elif.Condition, env)
		if err != nil {
			return err
		}
		eb, ok := econd.(BoolVal)
		if !ok {
			return cerrors.New(cerrors.TypeMismatch, "elif condition must be Bool")
		}
		if bool(eb) {
			return in.Run(elif.Body, env)
		}
	}
	if s.Else != nil {
		return in.Run(s.Else, env)
	}
	return nil
}

func (in *Interpreter) execCallStmt(s *ast.FunctionCallStmt, env Environment) error {
	switch s.Name {
	case "print":
		if len(s.Args) != 1 {
			return cerrors.New(cerrors.ParseError, "print() takes exactly one argument")
		}
		val, err := in.eval(s.Args[0], env)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Out, Render(val))
		return nil
	case "sleep":
		if len(s.Args) != 1 {
			return cerrors.New(cerrors.ParseError, "sleep() takes exactly one argument")
		}
		val, err := in.eval(s.Args[0], env)
		if err != nil {
			return err
		}
		n, ok := val.(I32Val)
		if !ok {
			return cerrors.New(cerrors.TypeMismatch, "sleep() requires an i32 argument")
		}
		in.Sleep(time.Duration(n) * time.Second)
		return nil
	default:
		return cerrors.New(cerrors.UndefinedFunction, fmt.Sprintf("function %s does not exist", s.Name))
	}
}

// Eval evaluates expr to a Primitive without executing any statement —
// exported so collaborators outside this package (internal/ir, in
// particular) can fold a constant expression against an already-built
// Environment the same way the interpreter itself would.
func (in *Interpreter) Eval(expr ast.Expr, env Environment) (Primitive, error) {
	return in.eval(expr, env)
}

// eval evaluates an expression to a Primitive (spec §4.4).
func (in *Interpreter) eval(expr ast.Expr, env Environment) (Primitive, error) {
	switch e := expr.(type) {
	case *ast.StringLit:
		return StringVal(e.Value), nil
	case *ast.BoolLit:
		return BoolVal(e.Value), nil
	case *ast.I32Lit:
		return I32Val(e.Value), nil
	case *ast.I64Lit:
		return I64Val(e.Value), nil
	case *ast.F32Lit:
		return F32Val(e.Value), nil
	case *ast.F64Lit:
		return F64Val(e.Value), nil

	case *ast.ArrayLit:
		items := make([]Primitive, len(e.Elements))
		for i, el := range e.Elements {
			val, err := in.eval(el, env)
			if err != nil {
				return nil, err
			}
			items[i] = val
		}
		elemType := ArrayElementType(items)
		return ArrayVal{Elem: elemType, Items: items}, nil

	case *ast.Variable:
		b, ok := env.Get(e.Name)
		if !ok {
			return nil, cerrors.New(cerrors.UndefinedVariable, fmt.Sprintf("variable %s does not exist", e.Name))
		}
		return b.Value, nil

	case *ast.FunctionCall:
		if len(e.Args) != 1 {
			return nil, cerrors.New(cerrors.ParseError, fmt.Sprintf("%s() takes exactly one argument", e.Name))
		}
		arg, err := in.eval(e.Args[0], env)
		if err != nil {
			return nil, err
		}
		return evalConversion(e.Name, arg)

	case *ast.Binary:
		left, err := in.eval(e.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := in.eval(e.Right, env)
		if err != nil {
			return nil, err
		}
		return evalBinary(e.Op, left, right)

	case *ast.Unary:
		child, err := in.eval(e.Child, env)
		if err != nil {
			return nil, err
		}
		return evalUnary(e.Op, child)

	case *ast.Increment, *ast.Decrement:
		return nil, cerrors.New(cerrors.ParseError, "++/-- is only valid as the right-hand side of an assignment")

	default:
		return nil, cerrors.New(cerrors.ParseError, fmt.Sprintf("unexpected expression %T", expr))
	}
}

// ArrayElementType reports the declared element type for an array literal:
// the type of its first element, or I32 for an empty literal.
func ArrayElementType(items []Primitive) types.Type {
	if len(items) == 0 {
		return types.Scalar(types.I32)
	}
	return TypeOf(items[0])
}
