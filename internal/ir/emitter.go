// Package ir translates the reduced, print/define-only statement subset of
// spec §4.5 into LLVM-IR text, grounded on original_source/src/llvm_ir.rs's
// get_buffer/llvm_define_variable pair. Everything outside that subset —
// loops, conditionals, non-String/I32 DefineVariable and Print, and every
// FunctionCallStmt — is declared unsupported at emission time rather than
// coerced into something that happens to compile.
package ir

import (
	"fmt"
	"strings"

	"github.com/blocklang/blocklang/internal/ast"
	"github.com/blocklang/blocklang/internal/cerrors"
	"github.com/blocklang/blocklang/internal/interp"
)

const printfDeclare = "declare i32 @printf(i8*, ...)\n"

// Emitter holds no state of its own; it exists so the CLI layer has a
// named collaborator to construct and pass around, mirroring the shape of
// Interpreter even though emission needs no Out/Sleep equivalents.
type Emitter struct{}

func New() *Emitter { return &Emitter{} }

// Emit walks stmts in order and returns the full `.ll` text for a single
// `@main` function. env supplies the bindings a Variable reference inside
// a Print/DefineVariable expression resolves against. Emit adds every
// DefineVariable it emits to env as it walks stmts, so an empty env is
// enough for a program whose variables are all defined in stmts; this is
// how the emit command and spec §8's hello-world scenario call it.
func (e *Emitter) Emit(stmts []ast.Stmt, env interp.Environment) (string, error) {
	lines := []string{"define i32 @main() {\nentry:\n"}
	pushFront := func(s string) { lines = append([]string{s}, lines...) }
	pushBack := func(s string) { lines = append(lines, s) }
	hasPrintfDeclare := func() bool {
		for _, l := range lines {
			if l == printfDeclare {
				return true
			}
		}
		return false
	}

	var ev interp.Interpreter
	// Each anonymous print global takes the next @var<N> name, so several
	// literal prints in one program never define the same symbol twice.
	varIndex := 0

	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.Print:
			val, err := ev.Eval(s.Expr, env)
			if err != nil {
				return "", err
			}
			// A Variable reference prints through the global its owning
			// DefineVariable already emitted (@<name>), rather than baking
			// a second, anonymous copy of the same string — unlike a
			// literal argument, which has no prior global to reuse.
			name, isVar := s.Expr.(*ast.Variable)
			switch v := val.(type) {
			case interp.StringVal:
				if !hasPrintfDeclare() {
					pushFront(printfDeclare)
				}
				ref := fmt.Sprintf("var%d", varIndex)
				if isVar {
					ref = name.Name
				} else {
					defineGlobal(pushFront, v, varIndex, "")
					varIndex++
				}
				n := len(string(v)) + 1
				pushBack(fmt.Sprintf("call i32 (i8*, ...) @printf(i8* getelementptr inbounds ([%d x i8], [%d x i8]* @%s, i32 0, i32 0))\n", n, n, ref))
			case interp.I32Val:
				if !hasPrintfDeclare() {
					pushFront(printfDeclare)
				}
				defineGlobal(pushFront, v, varIndex, "")
				pushBack(fmt.Sprintf("call i32 (i8*, ...) @printf(i8* @var%d, i32 %d)\n", varIndex, int32(v)))
				varIndex++
			default:
				return "", cerrors.New(cerrors.ParseError, fmt.Sprintf("emit: print() of %s is not supported", describeKind(val)))
			}

		case *ast.DefineVariable:
			val, err := ev.Eval(s.Expr, env)
			if err != nil {
				return "", err
			}
			switch val.(type) {
			case interp.StringVal, interp.I32Val:
				defineGlobal(pushFront, val, varIndex, s.Name)
			default:
				return "", cerrors.New(cerrors.ParseError, fmt.Sprintf("emit: variable %s of type %s is not supported", s.Name, describeKind(val)))
			}
			// A later Print/DefineVariable in the same block may reference
			// this name, exactly as the interpreter's own env.Set does.
			env.Set(s.Name, val, s.Declared)

		case *ast.FunctionCallStmt:
			return "", cerrors.New(cerrors.ParseError, fmt.Sprintf("emit: unsupported function call %s()", s.Name))

		default:
			// Control flow and everything else fall outside the reduced
			// subset and are rejected rather than silently dropped.
			return "", cerrors.New(cerrors.ParseError, fmt.Sprintf("emit: statement %T is not supported", stmt))
		}
	}

	lines = append(lines, "ret i32 0\n}")
	return strings.Join(lines, ""), nil
}

// defineGlobal pushes the global-constant definition for val to the front
// of the buffer, named either `name` (a DefineVariable target) or
// `var<varIndex>` (an anonymous Print literal) — mirrors
// llvm_define_variable's Option<String> branch.
func defineGlobal(pushFront func(string), val interp.Primitive, varIndex int, name string) {
	switch v := val.(type) {
	case interp.StringVal:
		s := string(v)
		if name != "" {
			pushFront(fmt.Sprintf("@%s = private unnamed_addr constant [%d x i8] c\"%s\\00\", align 1\n", name, len(s)+1, s))
		} else {
			pushFront(fmt.Sprintf("@var%d = private unnamed_addr constant [%d x i8] c\"%s\\00\", align 1\n", varIndex, len(s)+1, s))
		}
	case interp.I32Val:
		if name != "" {
			pushFront(fmt.Sprintf("@%s = private constant i32 %d\n", name, int32(v)))
		} else {
			pushFront(fmt.Sprintf("@var%d = private constant [4 x i8] c\"%%d\\0A\\00\"\n", varIndex))
		}
	}
}

func describeKind(p interp.Primitive) string {
	return fmt.Sprintf("%T", p)
}
