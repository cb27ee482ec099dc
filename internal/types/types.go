// Package types describes the small primitive type lattice used by the
// block language: scalar numeric/string/bool types plus arrays of any
// type, including other arrays.
package types

import "fmt"

// Kind identifies one of the primitive type cases.
type Kind int

const (
	Bool Kind = iota
	String
	I32
	I64
	F32
	F64
	ArrayKind
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "Bool"
	case String:
		return "String"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case ArrayKind:
		return "Array"
	default:
		return "unknown"
	}
}

// Type is a value type: either a scalar Kind or an Array of some element
// Type. Array nests arbitrarily (Array<Array<i32>> etc.) even though the
// language's literal syntax and conversions only exercise one level.
type Type struct {
	Kind Kind
	Elem *Type // non-nil only when Kind == ArrayKind
}

// Scalar builds a non-array Type for one of the scalar kinds.
func Scalar(k Kind) Type {
	return Type{Kind: k}
}

// Array builds an Array(elem) Type.
func Array(elem Type) Type {
	return Type{Kind: ArrayKind, Elem: &elem}
}

// Equal reports whether two types denote the same shape.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	if t.Kind != ArrayKind {
		return true
	}
	if t.Elem == nil || other.Elem == nil {
		return t.Elem == other.Elem
	}
	return t.Elem.Equal(*other.Elem)
}

func (t Type) String() string {
	if t.Kind == ArrayKind {
		if t.Elem == nil {
			return "Array<?>"
		}
		return fmt.Sprintf("Array<%s>", t.Elem.String())
	}
	return t.Kind.String()
}

// IsNumeric reports whether the type is one of the four numeric scalars.
func (t Type) IsNumeric() bool {
	switch t.Kind {
	case I32, I64, F32, F64:
		return true
	default:
		return false
	}
}

// ParseKeyword maps a type keyword lexeme (as it appears in a
// DefineVariable statement) to its Kind. Array<T> is handled separately by
// the parser since it carries an element type.
func ParseKeyword(name string) (Kind, bool) {
	switch name {
	case "Bool":
		return Bool, true
	case "String":
		return String, true
	case "i32":
		return I32, true
	case "i64":
		return I64, true
	case "f32":
		return F32, true
	case "f64":
		return F64, true
	default:
		return 0, false
	}
}
