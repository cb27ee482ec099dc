package lexer

import "testing"

func tok(typ TokenType) Token { return Token{Type: typ} }
func ident(s string) Token    { return Token{Type: Identifier, Literal: s} }
func str(s string) Token      { return Token{Type: StringLit, Literal: s} }
func num(s string) Token      { return Token{Type: ConstantNumber, Literal: s} }
func boolean(b bool) Token    { return Token{Type: BooleanLit, Bool: b} }
func op(o MathOp) Token       { return Token{Type: MathOpTok, Op: o} }

func stripPos(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		t.Pos = Position{}
		out[i] = t
	}
	return out
}

func assertTokens(t *testing.T, input string, want []Token) {
	t.Helper()
	got, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q) returned error: %v", input, err)
	}
	got = stripPos(got)
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", input, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("Tokenize(%q)[%d] = %v, want %v", input, i, got[i], want[i])
		}
	}
}

func TestHelloWorld(t *testing.T) {
	assertTokens(t, `print("hello world");`, []Token{
		ident("print"), tok(OpenParen), str("hello world"), tok(CloseParen), tok(EndLine),
	})
}

func TestIntegerVariable(t *testing.T) {
	assertTokens(t, "i32 e = 69;", []Token{
		ident("i32"), ident("e"), tok(Assign), num("69"), tok(EndLine),
	})
}

func TestBoolVariable(t *testing.T) {
	assertTokens(t, "Bool f = false;", []Token{
		ident("Bool"), ident("f"), tok(Assign), boolean(false), tok(EndLine),
	})
}

func TestWhileTrue(t *testing.T) {
	assertTokens(t, "while (true){\nprint(69);\n}", []Token{
		tok(WhileLoop), tok(OpenParen), boolean(true), tok(CloseParen), tok(OpenBlock),
		ident("print"), tok(OpenParen), num("69"), tok(CloseParen), tok(EndLine), tok(CloseBlock),
	})
}

func TestForLoop(t *testing.T) {
	assertTokens(t, "for(i32 i = 0, i < 10, i++){\nprint(i);\n}", []Token{
		tok(ForLoop), tok(OpenParen), ident("i32"), ident("i"), tok(Assign), num("0"), tok(Comma),
		ident("i"), op(LessThan), num("10"), tok(Comma), ident("i"), tok(Increment), tok(CloseParen),
		tok(OpenBlock), ident("print"), tok(OpenParen), ident("i"), tok(CloseParen), tok(EndLine), tok(CloseBlock),
	})
}

func TestElseElif(t *testing.T) {
	assertTokens(t, `if(i == 6){}elif(i == 7){}else{print("e");}`, []Token{
		tok(If), tok(OpenParen), ident("i"), op(Equals), num("6"), tok(CloseParen), tok(OpenBlock), tok(CloseBlock),
		tok(Elif), tok(OpenParen), ident("i"), op(Equals), num("7"), tok(CloseParen), tok(OpenBlock), tok(CloseBlock),
		tok(Else), tok(OpenBlock), ident("print"), tok(OpenParen), str("e"), tok(CloseParen), tok(EndLine), tok(CloseBlock),
	})
}

func TestArrayGenericIdentifier(t *testing.T) {
	assertTokens(t, "Array<i32> a = [];", []Token{
		ident("Array<i32>"), ident("a"), tok(Assign), tok(OpenBracket), tok(CloseBracket), tok(EndLine),
	})
}

func TestDefineFunctionKeyword(t *testing.T) {
	assertTokens(t, `fn pwint(){print("i");}pwint();`, []Token{
		tok(DefineFunction), ident("pwint"), tok(OpenParen), tok(CloseParen), tok(OpenBlock),
		ident("print"), tok(OpenParen), str("i"), tok(CloseParen), tok(EndLine), tok(CloseBlock),
		ident("pwint"), tok(OpenParen), tok(CloseParen), tok(EndLine),
	})
}

func TestLineComment(t *testing.T) {
	assertTokens(t, "i32 i = 10;\n//i32 e = 9;\ni32 g = 8;", []Token{
		ident("i32"), ident("i"), tok(Assign), num("10"), tok(EndLine),
		ident("i32"), ident("g"), tok(Assign), num("8"), tok(EndLine),
	})
}

func TestBlockComment(t *testing.T) {
	assertTokens(t, "i32 i = 10;\n/*unga\nbunga\n*/i32 e = 0;", []Token{
		ident("i32"), ident("i"), tok(Assign), num("10"), tok(EndLine),
		ident("i32"), ident("e"), tok(Assign), num("0"), tok(EndLine),
	})
}

func TestMultiCharOperators(t *testing.T) {
	assertTokens(t, "a <= b; a >= b; a == b; a != b; a && b; a || b;", []Token{
		ident("a"), op(LessThanOrEqualTo), ident("b"), tok(EndLine),
		ident("a"), op(GreaterThanOrEqualTo), ident("b"), tok(EndLine),
		ident("a"), op(Equals), ident("b"), tok(EndLine),
		ident("a"), op(NotEqual), ident("b"), tok(EndLine),
		ident("a"), op(And), ident("b"), tok(EndLine),
		ident("a"), op(Or), ident("b"), tok(EndLine),
	})
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	if _, err := Tokenize(`"abc`); err == nil {
		t.Fatal("expected unterminated string error")
	}
}

func TestUnexpectedCharacterIsFatal(t *testing.T) {
	if _, err := Tokenize("i32 x = 1 @ 2;"); err == nil {
		t.Fatal("expected unexpected-character error")
	}
}

func TestLoneAmpersandIsFatal(t *testing.T) {
	if _, err := Tokenize("a & b;"); err == nil {
		t.Fatal("expected lone '&' to be rejected")
	}
}
