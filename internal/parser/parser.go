// Package parser turns one block's token sequence into an ordered sequence
// of statements (spec §4.3): a small recursive-descent statement parser
// sitting on top of a stack-based expression parser that fixes up operator
// precedence after the fact rather than climbing it up front.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blocklang/blocklang/internal/ast"
	"github.com/blocklang/blocklang/internal/cerrors"
	"github.com/blocklang/blocklang/internal/lexer"
	"github.com/blocklang/blocklang/internal/types"
)

// Parser walks a fixed token slice with a single cursor; it never mutates
// the slice it was given.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse is the package entry point: parse every statement in tokens.
func Parse(tokens []lexer.Token) ([]ast.Stmt, error) {
	return New(tokens).ParseStatements()
}

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(t lexer.TokenType) (lexer.Token, error) {
	tok := p.peek()
	if tok.Type != t {
		return tok, p.errorf(tok, "expected token type %d, found %s", t, tok)
	}
	return p.advance(), nil
}

func (p *Parser) errorf(tok lexer.Token, format string, args ...interface{}) error {
	return cerrors.New(cerrors.ParseError, fmt.Sprintf(format, args...)).WithPos(tok.Pos)
}

// ParseStatements pops statements until the token stream is exhausted or
// the next token is CloseBlock, mirroring the top-level loop of spec §4.3.
func (p *Parser) ParseStatements() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for p.peek().Type != lexer.EOF && p.peek().Type != lexer.CloseBlock {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// parseBlockBody expects the current token to be OpenBlock, consumes it
// and the matching CloseBlock, and returns the statements in between.
func (p *Parser) parseBlockBody() ([]ast.Stmt, error) {
	if _, err := p.expect(lexer.OpenBlock); err != nil {
		return nil, err
	}
	body, err := p.ParseStatements()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.CloseBlock); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.If:
		return p.parseIf()
	case lexer.WhileLoop:
		return p.parseWhile()
	case lexer.ForLoop:
		return p.parseFor()
	case lexer.Identifier:
		return p.parseIdentifierStatement()
	case lexer.DefineFunction:
		return nil, p.errorf(tok, "function definitions are not supported")
	default:
		return nil, p.errorf(tok, "unexpected token %s at start of statement", tok)
	}
}

// parseIdentifierStatement dispatches on the lexeme of a leading
// Identifier: `print`, a type keyword (DefineVariable), a call
// (`name(...)`), or a bare variable (ModifyVariable).
func (p *Parser) parseIdentifierStatement() (ast.Stmt, error) {
	tok := p.peek()
	name := tok.Literal

	if name == "print" && p.peekAt(1).Type == lexer.OpenParen {
		p.advance() // print
		p.advance() // (
		expr, term, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if term != lexer.CloseParen {
			return nil, p.errorf(tok, "print(...) missing closing )")
		}
		if _, err := p.expect(lexer.EndLine); err != nil {
			return nil, err
		}
		return &ast.Print{Expr: expr}, nil
	}

	if declared, ok := parseTypeLiteral(name); ok {
		p.advance()
		varTok, err := p.expect(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Assign); err != nil {
			return nil, err
		}
		expr, term, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if term != lexer.EndLine {
			return nil, p.errorf(tok, "DefineVariable %s missing terminating ;", varTok.Literal)
		}
		return &ast.DefineVariable{Name: varTok.Literal, Expr: expr, Declared: declared}, nil
	}

	if p.peekAt(1).Type == lexer.OpenParen {
		p.advance()
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.EndLine); err != nil {
			return nil, err
		}
		return &ast.FunctionCallStmt{Name: name, Args: args}, nil
	}

	p.advance()
	if next := p.peek().Type; next == lexer.Increment || next == lexer.Decrement {
		// `name++` / `name--`: the expression parser consumes the operator
		// and an optional trailing `;`.
		expr, _, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.ModifyVariable{Name: name, Expr: expr}, nil
	}
	if _, err := p.expect(lexer.Assign); err != nil {
		return nil, err
	}
	expr, term, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if term != lexer.EndLine {
		return nil, p.errorf(tok, "ModifyVariable %s missing terminating ;", name)
	}
	return &ast.ModifyVariable{Name: name, Expr: expr}, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	p.advance() // if
	if _, err := p.expect(lexer.OpenParen); err != nil {
		return nil, err
	}
	cond, term, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if term != lexer.CloseParen {
		return nil, p.errorf(p.peek(), "if (...) missing closing )")
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}

	var elifs []ast.Elif
	for p.peek().Type == lexer.Elif {
		p.advance()
		if _, err := p.expect(lexer.OpenParen); err != nil {
			return nil, err
		}
		econd, eterm, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if eterm != lexer.CloseParen {
			return nil, p.errorf(p.peek(), "elif (...) missing closing )")
		}
		ebody, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		elifs = append(elifs, ast.Elif{Condition: econd, Body: ebody})
	}

	var elseBody []ast.Stmt
	if p.peek().Type == lexer.Else {
		p.advance()
		elseBody, err = p.parseBlockBody()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{Condition: cond, Body: body, Elifs: elifs, Else: elseBody}, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	p.advance() // while
	if _, err := p.expect(lexer.OpenParen); err != nil {
		return nil, err
	}
	cond, term, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if term != lexer.CloseParen {
		return nil, p.errorf(p.peek(), "while (...) missing closing )")
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.WhileLoop{Condition: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	p.advance() // for
	if _, err := p.expect(lexer.OpenParen); err != nil {
		return nil, err
	}
	init, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	cond, term, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if term != lexer.EndLine {
		return nil, p.errorf(p.peek(), "for(...) condition missing ;")
	}
	step, err := p.parseStatementNoSemicolon()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.CloseParen); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.ForLoop{Init: init, Cond: cond, Step: step, Body: body}, nil
}

// parseStatementNoSemicolon parses a for-loop step statement, which is
// followed directly by `)` rather than `;` (spec §4.3's for-loop grammar):
// its expression must leave the closing paren for parseFor to consume.
func (p *Parser) parseStatementNoSemicolon() (ast.Stmt, error) {
	tok := p.peek()
	if tok.Type != lexer.Identifier {
		return nil, p.errorf(tok, "expected identifier in for-loop step, found %s", tok)
	}
	name := tok.Literal
	p.advance()
	expr, _, err := p.parseExpressionOpt(false)
	if err != nil {
		return nil, err
	}
	if p.peek().Type != lexer.CloseParen {
		return nil, p.errorf(tok, "for-loop step must be followed by )")
	}
	return &ast.ModifyVariable{Name: name, Expr: expr}, nil
}

// parseCallArgs assumes the current token is OpenParen; it consumes the
// whole `(arg, arg, ...)` and the closing paren.
func (p *Parser) parseCallArgs() ([]ast.Expr, error) {
	p.advance() // (
	var args []ast.Expr
	if p.peek().Type == lexer.CloseParen {
		p.advance()
		return args, nil
	}
	for {
		arg, term, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		switch term {
		case lexer.CloseParen:
			return args, nil
		case lexer.Comma:
			p.advance()
		default:
			return nil, p.errorf(p.peek(), "expected , or ) in argument list")
		}
	}
}

// parseBracketElements assumes the current token is OpenBracket; it
// consumes the whole `[e, e, ...]` and the closing bracket.
func (p *Parser) parseBracketElements() ([]ast.Expr, error) {
	p.advance() // [
	var elems []ast.Expr
	if p.peek().Type == lexer.CloseBracket {
		p.advance()
		return elems, nil
	}
	for {
		elem, term, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		switch term {
		case lexer.CloseBracket:
			p.advance()
			return elems, nil
		case lexer.Comma:
			p.advance()
		default:
			return nil, p.errorf(p.peek(), "expected , or ] in array literal")
		}
	}
}

// parseExpression implements the spec §4.3 stack-based precedence fix-up
// algorithm. It returns the terminating token's type: CloseParen and
// EndLine are consumed before returning; Comma, CloseBracket, CloseBlock
// and EOF are left for the caller to consume.
func (p *Parser) parseExpression() (ast.Expr, lexer.TokenType, error) {
	return p.parseExpressionOpt(true)
}

// parseExpressionOpt is parseExpression with control over whether a
// CloseParen terminator is consumed; the for-loop step statement needs to
// leave it for parseFor to consume explicitly (spec §4.3).
func (p *Parser) parseExpressionOpt(consumeClose bool) (ast.Expr, lexer.TokenType, error) {
	var operands []ast.Expr
	var ops []lexer.MathOp

	push := func(right ast.Expr) {
		for len(ops) > 0 {
			op := ops[len(ops)-1]
			ops = ops[:len(ops)-1]
			left := operands[len(operands)-1]
			operands = operands[:len(operands)-1]
			right = combine(op, left, right)
		}
		operands = append(operands, right)
	}

	for {
		tok := p.peek()
		switch tok.Type {
		case lexer.ConstantNumber:
			p.advance()
			n, err := strconv.ParseInt(strings.ReplaceAll(tok.Literal, "_", ""), 10, 32)
			if err != nil {
				return nil, 0, p.errorf(tok, "invalid integer literal %q", tok.Literal)
			}
			push(&ast.I32Lit{Value: int32(n)})
		case lexer.StringLit:
			p.advance()
			push(&ast.StringLit{Value: tok.Literal})
		case lexer.BooleanLit:
			p.advance()
			push(&ast.BoolLit{Value: tok.Bool})
		case lexer.Identifier:
			p.advance()
			if p.peek().Type == lexer.OpenParen {
				args, err := p.parseCallArgs()
				if err != nil {
					return nil, 0, err
				}
				push(&ast.FunctionCall{Name: tok.Literal, Args: args})
			} else {
				push(&ast.Variable{Name: tok.Literal})
			}
		case lexer.OpenBracket:
			elems, err := p.parseBracketElements()
			if err != nil {
				return nil, 0, err
			}
			push(&ast.ArrayLit{Elements: elems})
		case lexer.OpenParen:
			p.advance()
			inner, term, err := p.parseExpression()
			if err != nil {
				return nil, 0, err
			}
			if term != lexer.CloseParen {
				return nil, 0, p.errorf(tok, "missing closing ) in parenthesized expression")
			}
			push(&ast.Unary{Op: ast.Parenthesis, Child: inner})
		case lexer.MathOpTok:
			if tok.Op == lexer.Not && len(operands) == len(ops) {
				p.advance()
				child, err := p.parseNotOperand()
				if err != nil {
					return nil, 0, err
				}
				push(&ast.Unary{Op: ast.LogicalNot, Child: child})
				continue
			}
			p.advance()
			ops = append(ops, tok.Op)
		case lexer.Increment:
			p.advance()
			p.eatOptionalSemicolon()
			return &ast.Increment{}, 0, nil
		case lexer.Decrement:
			p.advance()
			p.eatOptionalSemicolon()
			return &ast.Decrement{}, 0, nil
		case lexer.CloseParen:
			if !consumeClose {
				return p.finishAt(operands, lexer.CloseParen)
			}
			p.advance()
			return p.finish(operands)
		case lexer.EndLine:
			p.advance()
			return p.finishAt(operands, lexer.EndLine)
		case lexer.Comma, lexer.CloseBracket, lexer.CloseBlock, lexer.EOF:
			return p.finishAt(operands, tok.Type)
		default:
			return nil, 0, p.errorf(tok, "unexpected token %s in expression", tok)
		}
	}
}

func (p *Parser) finish(operands []ast.Expr) (ast.Expr, lexer.TokenType, error) {
	if len(operands) == 0 {
		return nil, 0, p.errorf(p.peek(), "empty expression")
	}
	return operands[len(operands)-1], lexer.CloseParen, nil
}

func (p *Parser) finishAt(operands []ast.Expr, term lexer.TokenType) (ast.Expr, lexer.TokenType, error) {
	if len(operands) == 0 {
		return nil, 0, p.errorf(p.peek(), "empty expression")
	}
	return operands[len(operands)-1], term, nil
}

// parseNotOperand parses the single operand that a prefix `!` applies to:
// a primary expression, not a full binary chain.
func (p *Parser) parseNotOperand() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.BooleanLit:
		p.advance()
		return &ast.BoolLit{Value: tok.Bool}, nil
	case lexer.Identifier:
		p.advance()
		return &ast.Variable{Name: tok.Literal}, nil
	case lexer.OpenParen:
		p.advance()
		inner, term, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if term != lexer.CloseParen {
			return nil, p.errorf(tok, "missing closing ) after !(")
		}
		return &ast.Unary{Op: ast.Parenthesis, Child: inner}, nil
	default:
		return nil, p.errorf(tok, "expected operand after !, found %s", tok)
	}
}

// eatOptionalSemicolon matches the original's Increment/Decrement handling:
// consume a trailing `;` if present, otherwise leave the token alone.
func (p *Parser) eatOptionalSemicolon() {
	if p.peek().Type == lexer.EndLine {
		p.advance()
	}
}

// combine implements the spec §4.3 precedence fix-up: if left is itself a
// Binary whose operator binds looser than op, rotate so left's operator
// stays on top and op nests on the right, recursively re-fixing that right
// subtree against the newly attached right operand.
func combine(op lexer.MathOp, left, right ast.Expr) ast.Expr {
	if lb, ok := left.(*ast.Binary); ok && ast.Precedence(lb.Op) < ast.Precedence(op) {
		return &ast.Binary{Op: lb.Op, Left: lb.Left, Right: combine(op, lb.Right, right)}
	}
	return &ast.Binary{Op: op, Left: left, Right: right}
}

// parseTypeLiteral recognizes a statement-leading type keyword: a scalar
// keyword (i32, i64, f32, f64, Bool, String) or an `Array<...>` identifier,
// which the lexer has already folded into one lexeme (spec §4.2's `<`/`>`
// absorption).
func parseTypeLiteral(lexeme string) (types.Type, bool) {
	if k, ok := types.ParseKeyword(lexeme); ok {
		return types.Scalar(k), true
	}
	if strings.HasPrefix(lexeme, "Array<") && strings.HasSuffix(lexeme, ">") {
		inner := lexeme[len("Array<") : len(lexeme)-1]
		elem, ok := parseTypeLiteral(inner)
		if !ok {
			return types.Type{}, false
		}
		return types.Array(elem), true
	}
	return types.Type{}, false
}
