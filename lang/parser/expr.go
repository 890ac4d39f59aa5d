package parser

import (
	"github.com/pijago/pijago/lang/ast"
	"github.com/pijago/pijago/lang/token"
)

// binopPriority gives the left/right binding power of each binary operator,
// loosest first. All operators are left-associative except none here need
// right-associativity (there is no exponent operator in this language).
var binopPriority = map[token.Token]struct{ left, right int }{
	token.OROR:      {1, 1},
	token.ANDAND:    {2, 2},
	token.LT:        {3, 3},
	token.LE:        {3, 3},
	token.GT:        {3, 3},
	token.GE:        {3, 3},
	token.EQL:       {3, 3},
	token.NEQ:       {3, 3},
	token.PIPE:      {4, 4},
	token.CIRCUMFLEX: {5, 5},
	token.AMPERSAND: {6, 6},
	token.LTLT:      {7, 7},
	token.GTGT:      {7, 7},
	token.PLUS:      {10, 10},
	token.MINUS:     {10, 10},
	token.STAR:      {11, 11},
	token.SLASH:     {11, 11},
	token.PERCENT:   {11, 11},
}

const unopPriority = 12

func (p *parser) parseExpr() ast.Expr { return p.parseSubExpr(0) }

// parseSubExpr parses an expression where binary operators bind tighter
// than the given priority (precedence climbing).
func (p *parser) parseSubExpr(priority int) ast.Expr {
	var left ast.Expr

	switch p.tok.Token {
	case token.MINUS, token.BANG:
		op := p.tok.Token
		loc := p.tok.Loc
		p.advance()
		x := p.parseSubExpr(unopPriority)
		left = &ast.UnaryExpr{Op: op, X: x, Loc_: token.Join(loc, x.Loc())}
	default:
		left = p.parseCallExpr()
	}

	for {
		pri, ok := binopPriority[p.tok.Token]
		if !ok || pri.left <= priority {
			return left
		}
		op := p.tok.Token
		p.advance()
		right := p.parseSubExpr(pri.right)
		left = &ast.BinaryExpr{Op: op, L: left, R: right, Loc_: token.Join(left.Loc(), right.Loc())}
	}
}

// parseCallExpr parses a primary expression followed by zero or more call
// suffixes: `f(a)(b)(c)`.
func (p *parser) parseCallExpr() ast.Expr {
	e := p.parsePrimaryExpr()
	for p.at(token.LPAREN) {
		p.advance()
		var args []ast.Expr
		for !p.at(token.RPAREN) {
			if len(args) > 0 {
				p.expect(token.COMMA)
			}
			args = append(args, p.parseExpr())
		}
		end := p.expect(token.RPAREN)
		e = &ast.CallExpr{Fn: e, Args: args, Loc_: token.Join(e.Loc(), end)}
	}
	return e
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	loc := p.tok.Loc
	switch p.tok.Token {
	case token.INT:
		v := p.tok.Int
		p.advance()
		return &ast.IntLit{Value: v, Loc_: loc}
	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Value: true, Loc_: loc}
	case token.FALSE:
		p.advance()
		return &ast.BoolLit{Value: false, Loc_: loc}
	case token.UNIT:
		p.advance()
		return &ast.UnitLit{Loc_: loc}
	case token.PRINT:
		p.advance()
		return &ast.PrintExpr{Loc_: loc}
	case token.IDENT:
		name := p.tok.Lit
		p.advance()
		return &ast.IdentExpr{Name: name, Loc_: loc}
	case token.LPAREN:
		p.advance()
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e
	case token.IF:
		return p.parseCondExpr()
	case token.FN:
		return p.parseAnonFnExpr()
	default:
		p.errorf(loc, "expected an expression, found %s", p.tok.Token.GoString())
		panic("unreachable")
	}
}

// parseCondExpr parses `if C do B (elif C do B)* else B end`. Each branch's
// condition is itself a Block (it may be empty of statements, with the
// boolean test as its trailing expression) to match the HIR lowering's
// Branch{Cond, Body} shape.
func (p *parser) parseCondExpr() ast.Expr {
	start := p.expect(token.IF)
	branches := []ast.Branch{p.parseBranch()}
	for p.at(token.ELIF) {
		p.advance()
		branches = append(branches, p.parseBranch())
	}
	p.expect(token.ELSE)
	elseBlock := p.parseBlock()
	end := p.expect(token.END)

	return &ast.CondExpr{Branches: branches, Else: elseBlock, Loc_: token.Join(start, end)}
}

func (p *parser) parseBranch() ast.Branch {
	condStart := p.tok.Loc
	cond := p.parseExpr()
	condBlock := &ast.Block{Tail: cond, Loc_: token.Join(condStart, cond.Loc())}
	p.expect(token.DO)
	body := p.parseBlock()
	return ast.Branch{Cond: condBlock, Body: body}
}

func (p *parser) parseAnonFnExpr() ast.Expr {
	start := p.expect(token.FN)
	params := p.parseParams()
	p.expect(token.DO)
	body := p.parseBlock()
	end := p.expect(token.END)

	return &ast.AnonFnExpr{Params: params, Body: body, Loc_: token.Join(start, end)}
}
