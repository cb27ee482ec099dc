package parser

import (
	"testing"

	"github.com/blocklang/blocklang/internal/ast"
	"github.com/blocklang/blocklang/internal/lexer"
)

func lex(t *testing.T, src string) []lexer.Token {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	return toks
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	toks := lex(t, src+";")
	p := New(toks)
	expr, term, err := p.parseExpression()
	if err != nil {
		t.Fatalf("parseExpression(%q): %v", src, err)
	}
	if term != lexer.EndLine {
		t.Fatalf("parseExpression(%q): terminator = %v, want EndLine", src, term)
	}
	return expr
}

func TestPrecedenceAddSubMul(t *testing.T) {
	got := ast.String(parseExpr(t, "1+2-3*4"))
	want := `((1 + 2) - (3 * 4))`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestPrecedenceLeftAssociativeSameTier(t *testing.T) {
	got := ast.String(parseExpr(t, "4+4+4+4"))
	want := `(((4 + 4) + 4) + 4)`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestPrecedenceMulBindsTighterThanCompare(t *testing.T) {
	got := ast.String(parseExpr(t, "1 < 2*3"))
	want := `(1 < (2 * 3))`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParseHelloWorld(t *testing.T) {
	stmts, err := Parse(lex(t, `print("hello world");`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	p, ok := stmts[0].(*ast.Print)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *ast.Print", stmts[0])
	}
	if ast.String(p.Expr) != `"hello world"` {
		t.Errorf("Print expr = %s", ast.String(p.Expr))
	}
}

func TestParseDefineVariable(t *testing.T) {
	stmts, err := Parse(lex(t, `i32 x = 5;`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dv, ok := stmts[0].(*ast.DefineVariable)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *ast.DefineVariable", stmts[0])
	}
	if dv.Name != "x" || dv.Declared.String() != "i32" {
		t.Errorf("got %+v", dv)
	}
}

func TestParseArrayDefineVariable(t *testing.T) {
	stmts, err := Parse(lex(t, `Array<i32> xs = [1, 2, 3];`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dv, ok := stmts[0].(*ast.DefineVariable)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *ast.DefineVariable", stmts[0])
	}
	if dv.Declared.String() != "Array<i32>" {
		t.Errorf("Declared = %s, want Array<i32>", dv.Declared.String())
	}
	arr, ok := dv.Expr.(*ast.ArrayLit)
	if !ok || len(arr.Elements) != 3 {
		t.Fatalf("Expr = %+v", dv.Expr)
	}
}

func TestParseWhileLoop(t *testing.T) {
	stmts, err := Parse(lex(t, `while (true) { print(0); }`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	wl, ok := stmts[0].(*ast.WhileLoop)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *ast.WhileLoop", stmts[0])
	}
	if len(wl.Body) != 1 {
		t.Fatalf("body = %v", wl.Body)
	}
}

func TestParseForLoop(t *testing.T) {
	stmts, err := Parse(lex(t, `for (i32 i = 0; i < 10; i++) { print(i); }`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fl, ok := stmts[0].(*ast.ForLoop)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *ast.ForLoop", stmts[0])
	}
	if _, ok := fl.Init.(*ast.DefineVariable); !ok {
		t.Errorf("Init = %T", fl.Init)
	}
	mv, ok := fl.Step.(*ast.ModifyVariable)
	if !ok {
		t.Fatalf("Step = %T, want *ast.ModifyVariable", fl.Step)
	}
	if _, ok := mv.Expr.(*ast.Increment); !ok {
		t.Errorf("Step.Expr = %T, want *ast.Increment", mv.Expr)
	}
	if len(fl.Body) != 1 {
		t.Errorf("body = %v", fl.Body)
	}
}

func TestParseIfElifElse(t *testing.T) {
	src := `if (false) { print(1); } elif (true) { print(2); } else { print(3); }`
	stmts, err := Parse(lex(t, src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	iff, ok := stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("stmts[0] = %T, want *ast.If", stmts[0])
	}
	if len(iff.Elifs) != 1 {
		t.Fatalf("elifs = %v", iff.Elifs)
	}
	if len(iff.Else) != 1 {
		t.Fatalf("else = %v", iff.Else)
	}
}

func TestParseModifyVariableAndFunctionCall(t *testing.T) {
	stmts, err := Parse(lex(t, `x = x + 1; sleep(2);`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2", len(stmts))
	}
	if _, ok := stmts[0].(*ast.ModifyVariable); !ok {
		t.Errorf("stmts[0] = %T", stmts[0])
	}
	call, ok := stmts[1].(*ast.FunctionCallStmt)
	if !ok {
		t.Fatalf("stmts[1] = %T, want *ast.FunctionCallStmt", stmts[1])
	}
	if call.Name != "sleep" || len(call.Args) != 1 {
		t.Errorf("got %+v", call)
	}
}

func TestParseUnaryNotAndParenthesis(t *testing.T) {
	got := ast.String(parseExpr(t, "!(a == b)"))
	want := `!(a == b)`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParseTypeConversionCall(t *testing.T) {
	got := ast.String(parseExpr(t, "i64(5)"))
	want := `i64(5)`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
