package interp

import (
	"fmt"
	"math"

	"github.com/blocklang/blocklang/internal/ast"
	"github.com/blocklang/blocklang/internal/cerrors"
	"github.com/blocklang/blocklang/internal/lexer"
)

// evalBinary dispatches a binary operator by the concrete type pair of its
// operands (spec §4.4's binary operator semantics table). Cross-type
// comparison is defined only for I64×I32, by widening I32 to I64; every
// other type mismatch is fatal.
func evalBinary(op lexer.MathOp, l, r Primitive) (Primitive, error) {
	switch lv := l.(type) {
	case BoolVal:
		rv, ok := r.(BoolVal)
		if !ok {
			return nil, mismatch(op, l, r)
		}
		return boolOp(op, bool(lv), bool(rv))

	case I32Val:
		rv, ok := r.(I32Val)
		if !ok {
			return nil, mismatch(op, l, r)
		}
		return i32Op(op, int32(lv), int32(rv))

	case I64Val:
		switch rv := r.(type) {
		case I64Val:
			return i64Op(op, int64(lv), int64(rv))
		case I32Val:
			return widenedCompare(op, int64(lv), int64(rv))
		default:
			return nil, mismatch(op, l, r)
		}

	case F32Val:
		rv, ok := r.(F32Val)
		if !ok {
			return nil, mismatch(op, l, r)
		}
		return f32Op(op, float32(lv), float32(rv))

	case F64Val:
		rv, ok := r.(F64Val)
		if !ok {
			return nil, mismatch(op, l, r)
		}
		return f64Op(op, float64(lv), float64(rv))

	default:
		return nil, mismatch(op, l, r)
	}
}

func mismatch(op lexer.MathOp, l, r Primitive) error {
	return cerrors.New(cerrors.TypeMismatch,
		fmt.Sprintf("operator %s is not defined for %T and %T", op, l, r))
}

func boolOp(op lexer.MathOp, l, r bool) (Primitive, error) {
	switch op {
	case lexer.And:
		return BoolVal(l && r), nil
	case lexer.Or:
		return BoolVal(l || r), nil
	case lexer.Equals:
		return BoolVal(l == r), nil
	case lexer.NotEqual:
		return BoolVal(l != r), nil
	default:
		return nil, cerrors.New(cerrors.TypeMismatch, fmt.Sprintf("operator %s is not defined for Bool and Bool", op))
	}
}

func i32Op(op lexer.MathOp, l, r int32) (Primitive, error) {
	switch op {
	case lexer.Add:
		return I32Val(l + r), nil
	case lexer.Subtract:
		return I32Val(l - r), nil
	case lexer.Multiply:
		return I32Val(l * r), nil
	case lexer.Divide:
		if r == 0 {
			return nil, cerrors.New(cerrors.DivideByZero, "division by zero")
		}
		return I32Val(l / r), nil
	case lexer.Modulus:
		if r == 0 {
			return nil, cerrors.New(cerrors.DivideByZero, "modulus by zero")
		}
		return I32Val(l % r), nil
	case lexer.Equals:
		return BoolVal(l == r), nil
	case lexer.NotEqual:
		return BoolVal(l != r), nil
	case lexer.LessThan:
		return BoolVal(l < r), nil
	case lexer.LessThanOrEqualTo:
		return BoolVal(l <= r), nil
	case lexer.GreaterThan:
		return BoolVal(l > r), nil
	case lexer.GreaterThanOrEqualTo:
		return BoolVal(l >= r), nil
	default:
		return nil, cerrors.New(cerrors.TypeMismatch, fmt.Sprintf("operator %s is not defined for i32 and i32", op))
	}
}

func i64Op(op lexer.MathOp, l, r int64) (Primitive, error) {
	switch op {
	case lexer.Add:
		return I64Val(l + r), nil
	case lexer.Subtract:
		return I64Val(l - r), nil
	case lexer.Multiply:
		return I64Val(l * r), nil
	case lexer.Divide:
		if r == 0 {
			return nil, cerrors.New(cerrors.DivideByZero, "division by zero")
		}
		return I64Val(l / r), nil
	case lexer.Modulus:
		if r == 0 {
			return nil, cerrors.New(cerrors.DivideByZero, "modulus by zero")
		}
		return I64Val(l % r), nil
	case lexer.Equals:
		return BoolVal(l == r), nil
	case lexer.NotEqual:
		return BoolVal(l != r), nil
	case lexer.LessThan:
		return BoolVal(l < r), nil
	case lexer.LessThanOrEqualTo:
		return BoolVal(l <= r), nil
	case lexer.GreaterThan:
		return BoolVal(l > r), nil
	case lexer.GreaterThanOrEqualTo:
		return BoolVal(l >= r), nil
	default:
		return nil, cerrors.New(cerrors.TypeMismatch, fmt.Sprintf("operator %s is not defined for i64 and i64", op))
	}
}

// widenedCompare implements the I64×I32 cross-type comparison spec §4.4
// carves out: only comparisons are defined, by widening I32 to I64.
func widenedCompare(op lexer.MathOp, l, r int64) (Primitive, error) {
	switch op {
	case lexer.Equals:
		return BoolVal(l == r), nil
	case lexer.NotEqual:
		return BoolVal(l != r), nil
	case lexer.LessThan:
		return BoolVal(l < r), nil
	case lexer.LessThanOrEqualTo:
		return BoolVal(l <= r), nil
	case lexer.GreaterThan:
		return BoolVal(l > r), nil
	case lexer.GreaterThanOrEqualTo:
		return BoolVal(l >= r), nil
	default:
		return nil, cerrors.New(cerrors.TypeMismatch, fmt.Sprintf("operator %s is not defined for i64 and i32", op))
	}
}

func f32Op(op lexer.MathOp, l, r float32) (Primitive, error) {
	switch op {
	case lexer.Add:
		return F32Val(l + r), nil
	case lexer.Subtract:
		return F32Val(l - r), nil
	case lexer.Multiply:
		return F32Val(l * r), nil
	case lexer.Divide:
		return F32Val(l / r), nil
	case lexer.Modulus:
		return F32Val(math.Mod(float64(l), float64(r))), nil
	case lexer.Equals:
		return BoolVal(l == r), nil
	case lexer.NotEqual:
		return BoolVal(l != r), nil
	case lexer.LessThan:
		return BoolVal(l < r), nil
	case lexer.LessThanOrEqualTo:
		return BoolVal(l <= r), nil
	case lexer.GreaterThan:
		return BoolVal(l > r), nil
	case lexer.GreaterThanOrEqualTo:
		return BoolVal(l >= r), nil
	default:
		return nil, cerrors.New(cerrors.TypeMismatch, fmt.Sprintf("operator %s is not defined for f32 and f32", op))
	}
}

func f64Op(op lexer.MathOp, l, r float64) (Primitive, error) {
	switch op {
	case lexer.Add:
		return F64Val(l + r), nil
	case lexer.Subtract:
		return F64Val(l - r), nil
	case lexer.Multiply:
		return F64Val(l * r), nil
	case lexer.Divide:
		return F64Val(l / r), nil
	case lexer.Modulus:
		return F64Val(math.Mod(l, r)), nil
	case lexer.Equals:
		return BoolVal(l == r), nil
	case lexer.NotEqual:
		return BoolVal(l != r), nil
	case lexer.LessThan:
		return BoolVal(l < r), nil
	case lexer.LessThanOrEqualTo:
		return BoolVal(l <= r), nil
	case lexer.GreaterThan:
		return BoolVal(l > r), nil
	case lexer.GreaterThanOrEqualTo:
		return BoolVal(l >= r), nil
	default:
		return nil, cerrors.New(cerrors.TypeMismatch, fmt.Sprintf("operator %s is not defined for f64 and f64", op))
	}
}

func evalUnary(op ast.UnaryOp, v Primitive) (Primitive, error) {
	switch op {
	case ast.Parenthesis:
		return v, nil
	case ast.LogicalNot:
		b, ok := v.(BoolVal)
		if !ok {
			return nil, cerrors.New(cerrors.TypeMismatch, fmt.Sprintf("! is not defined for %T", v))
		}
		return BoolVal(!bool(b)), nil
	default:
		return nil, cerrors.New(cerrors.TypeMismatch, "unknown unary operator")
	}
}

// evalConversion implements the built-in type-conversion functions (spec
// §4.4): i32/i64/f32/f64/string, each taking one numeric argument;
// string() also accepts a String argument and returns it unchanged.
func evalConversion(name string, arg Primitive) (Primitive, error) {
	var f float64
	switch v := arg.(type) {
	case I32Val:
		f = float64(v)
	case I64Val:
		f = float64(v)
	case F32Val:
		f = float64(v)
	case F64Val:
		f = float64(v)
	case StringVal:
		if name == "string" {
			return v, nil
		}
		return nil, cerrors.New(cerrors.TypeMismatch, fmt.Sprintf("%s() requires a numeric argument", name))
	default:
		return nil, cerrors.New(cerrors.TypeMismatch, fmt.Sprintf("%s() requires a numeric argument", name))
	}
	switch name {
	case "i32":
		return I32Val(int32(f)), nil
	case "i64":
		return I64Val(int64(f)), nil
	case "f32":
		return F32Val(float32(f)), nil
	case "f64":
		return F64Val(f), nil
	case "string":
		return StringVal(Render(arg)), nil
	default:
		return nil, cerrors.New(cerrors.UndefinedFunction, fmt.Sprintf("function %s does not exist", name))
	}
}
