package interp

import "github.com/blocklang/blocklang/internal/types"

// Binding pairs a runtime value with the declared type it was defined
// under (spec §3's VariableEnvironment entries).
type Binding struct {
	Value    Primitive
	Declared types.Type
}

// Environment is a block's variable scope.
type Environment map[string]Binding

// Merge builds a fresh Environment from a sequence of parent environments,
// applied in scheduling order so that a later parent's bindings override
// an earlier parent's (spec §3, §4.4). The returned map is always new;
// none of the parents are mutated.
func Merge(parents ...Environment) Environment {
	env := make(Environment)
	for _, parent := range parents {
		for name, binding := range parent {
			env[name] = binding
		}
	}
	return env
}

func (e Environment) Get(name string) (Binding, bool) {
	b, ok := e[name]
	return b, ok
}

func (e Environment) Set(name string, value Primitive, declared types.Type) {
	e[name] = Binding{Value: value, Declared: declared}
}

// Export builds the subset of e visible to a dependent block that named
// only specific variables in its `requires[id[var, ...]]` clause (spec
// §4.1, §5). An empty/nil vars list means "the whole block" — all of e.
func (e Environment) Export(vars []string) Environment {
	if len(vars) == 0 {
		return e
	}
	out := make(Environment, len(vars))
	for _, name := range vars {
		if b, ok := e[name]; ok {
			out[name] = b
		}
	}
	return out
}
