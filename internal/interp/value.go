package interp

import (
	"strconv"
	"strings"

	"github.com/blocklang/blocklang/internal/types"
)

// Primitive is a runtime value (spec §3): Bool, one of the four numeric
// scalars, String, or Array. Values are copy-by-value except Array, which
// owns its elements.
type Primitive interface {
	Kind() types.Kind
}

type BoolVal bool
type I32Val int32
type I64Val int64
type F32Val float32
type F64Val float64
type StringVal string

// ArrayVal owns its elements; copying an ArrayVal copies the slice header,
// not the backing array, matching Go's usual slice semantics rather than a
// deep clone — callers that need isolation must clone explicitly.
type ArrayVal struct {
	Elem  types.Type
	Items []Primitive
}

func (BoolVal) Kind() types.Kind   { return types.Bool }
func (I32Val) Kind() types.Kind    { return types.I32 }
func (I64Val) Kind() types.Kind    { return types.I64 }
func (F32Val) Kind() types.Kind    { return types.F32 }
func (F64Val) Kind() types.Kind    { return types.F64 }
func (StringVal) Kind() types.Kind { return types.String }
func (ArrayVal) Kind() types.Kind  { return types.ArrayKind }

// TypeOf returns the declared-style Type for a value, used by
// ModifyVariable to infer the rebound type from the newly assigned value
// (spec §4.4).
func TypeOf(p Primitive) types.Type {
	if arr, ok := p.(ArrayVal); ok {
		return types.Array(arr.Elem)
	}
	return types.Scalar(p.Kind())
}

// Render produces the natural textual form of a value for Print (spec
// §4.4): arrays render as `[e1, e2, …]`, recursively.
func Render(p Primitive) string {
	switch v := p.(type) {
	case BoolVal:
		return strconv.FormatBool(bool(v))
	case I32Val:
		return strconv.FormatInt(int64(v), 10)
	case I64Val:
		return strconv.FormatInt(int64(v), 10)
	case F32Val:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case F64Val:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case StringVal:
		return string(v)
	case ArrayVal:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = Render(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<?>"
	}
}
