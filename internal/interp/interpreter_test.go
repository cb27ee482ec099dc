package interp

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/blocklang/blocklang/internal/lexer"
	"github.com/blocklang/blocklang/internal/parser"
)

func run(t *testing.T, src string) string {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	stmts, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	in := &Interpreter{Out: &buf, Sleep: func(time.Duration) {}}
	if err := in.Run(stmts, make(Environment)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return buf.String()
}

func TestHelloWorld(t *testing.T) {
	got := run(t, `print("hello world");`)
	if got != "hello world\n" {
		t.Errorf("got %q", got)
	}
}

func TestPrecedenceInvariant(t *testing.T) {
	got := run(t, `i32 x = 4+4+4+4; print(x);`)
	if got != "16\n" {
		t.Errorf("got %q, want 16", got)
	}
}

func TestMixedPrecedenceExpression(t *testing.T) {
	got := run(t, `i32 x = 1+2-3*4; print(x);`)
	if got != "-9\n" {
		t.Errorf("got %q, want -9", got)
	}
}

func TestWhileLoopCounts(t *testing.T) {
	got := run(t, `i32 i = 0; while (i < 3) { print(i); i++; }`)
	want := "0\n1\n2\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestForLoopCounts(t *testing.T) {
	got := run(t, `for (i32 i = 0; i < 3; i++) { print(i); }`)
	want := "0\n1\n2\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIfElifElse(t *testing.T) {
	src := `
		i32 x = 2;
		if (x == 1) { print("one"); }
		elif (x == 2) { print("two"); }
		else { print("other"); }
	`
	got := run(t, src)
	if got != "two\n" {
		t.Errorf("got %q", got)
	}
}

func TestArrayPrintAndConversion(t *testing.T) {
	got := run(t, `Array<i32> xs = [1, 2, 3]; print(xs); print(string(5));`)
	want := "[1, 2, 3]\n5\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIntegerDivisionTruncatesTowardZero(t *testing.T) {
	got := run(t, `i32 x = 0-7; i32 y = 2; print(x/y); print(x%y);`)
	want := "-3\n-1\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDivideByZeroIsFatal(t *testing.T) {
	toks, err := lexer.Tokenize(`i32 x = 1; i32 y = 0; print(x/y);`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	stmts, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	in := &Interpreter{Out: &buf, Sleep: func(time.Duration) {}}
	if err := in.Run(stmts, make(Environment)); err == nil {
		t.Fatal("expected divide-by-zero error")
	}
}

func TestUndefinedVariableIsFatal(t *testing.T) {
	toks, err := lexer.Tokenize(`print(missing);`)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	stmts, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	in := &Interpreter{Out: &buf, Sleep: func(time.Duration) {}}
	err = in.Run(stmts, make(Environment))
	if err == nil || !strings.Contains(err.Error(), "missing") {
		t.Fatalf("got %v, want undefined-variable error mentioning missing", err)
	}
}

func TestCrossTypeComparisonWidensI32ToI64(t *testing.T) {
	got := run(t, `i64 x = i64(10); i32 y = 10; if (x == y) { print("eq"); }`)
	if got != "eq\n" {
		t.Errorf("got %q", got)
	}
}

func TestEnvironmentMerge(t *testing.T) {
	parent := Environment{"a": Binding{Value: I32Val(1), Declared: TypeOf(I32Val(1))}}
	child := Environment{"b": Binding{Value: I32Val(2), Declared: TypeOf(I32Val(2))}}
	merged := Merge(parent, child)
	if len(merged) != 2 {
		t.Fatalf("merged = %v", merged)
	}
	override := Environment{"a": Binding{Value: I32Val(9), Declared: TypeOf(I32Val(9))}}
	merged2 := Merge(parent, override)
	if b, _ := merged2.Get("a"); b.Value != I32Val(9) {
		t.Errorf("later parent should override: got %v", b.Value)
	}
}
