package ir

import (
	"fmt"
	"testing"

	"github.com/blocklang/blocklang/internal/ast"
	"github.com/blocklang/blocklang/internal/interp"
	"github.com/blocklang/blocklang/internal/types"
	"github.com/gkampitakis/go-snaps/snaps"
)

// Multi-statement programs are exercised with go-snaps rather than another
// hand-maintained testdata/*.ll fixture: the combined output is large enough
// that eyeballing a diff is more useful than authoring it by hand, which is
// exactly the case the teacher reaches for snaps.MatchSnapshot on.
func TestEmitSnapshotMultiStatementProgram(t *testing.T) {
	stmts := []ast.Stmt{
		&ast.DefineVariable{Name: "greeting", Expr: &ast.StringLit{Value: "hello"}, Declared: types.Scalar(types.String)},
		&ast.Print{Expr: &ast.Variable{Name: "greeting"}},
		&ast.DefineVariable{Name: "count", Expr: &ast.I32Lit{Value: 42}, Declared: types.Scalar(types.I32)},
		&ast.Print{Expr: &ast.Variable{Name: "count"}},
		&ast.Print{Expr: &ast.StringLit{Value: "done"}},
	}
	got, err := New().Emit(stmts, make(interp.Environment))
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	snaps.MatchSnapshot(t, fmt.Sprintf("%s_ir", t.Name()), got)
}
