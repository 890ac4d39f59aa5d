// Package parser implements a recursive-descent, precedence-climbing parser
// that transforms pijago source text into an *ast.Chunk.
package parser

import (
	"fmt"

	"github.com/pijago/pijago/lang/ast"
	"github.com/pijago/pijago/lang/scanner"
	"github.com/pijago/pijago/lang/token"
)

// Error is a single parse error: a message located at a source span.
type Error struct {
	Loc token.Location
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Loc, e.Msg) }

// Parse tokenizes and parses a single source file, returning the root
// Chunk. Parsing stops at the first error encountered, mirroring the core
// pipeline's fail-fast error policy (§7 of the specification); there is no
// multi-error recovery.
func Parse(filename string, src []byte) (ch *ast.Chunk, err error) {
	p := &parser{filename: filename, src: src}

	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			err = pe
		}
	}()

	p.advance()
	block := p.parseBlock()
	eofLoc := p.tok.Loc
	p.expect(token.EOF)

	return &ast.Chunk{Name: filename, Block: block, EOF: eofLoc}, nil
}

// parser holds the mutable state of a single parse.
type parser struct {
	filename string
	src      []byte

	scanErrs []error
	tok      scanner.TokenAndValue
	scan     *scanner.Scanner
}

func (p *parser) advance() {
	if p.scan == nil {
		p.scan = scanner.New(p.src, func(loc token.Location, msg string) {
			p.scanErrs = append(p.scanErrs, &Error{Loc: loc, Msg: msg})
		})
	}
	p.tok = p.scan.Scan()
	if len(p.scanErrs) > 0 {
		err := p.scanErrs[0]
		p.scanErrs = p.scanErrs[1:]
		panic(err)
	}
}

func (p *parser) errorf(loc token.Location, format string, args ...any) {
	panic(&Error{Loc: loc, Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) expect(tok token.Token) token.Location {
	if p.tok.Token != tok {
		p.errorf(p.tok.Loc, "expected %s, found %s", tok.GoString(), p.tok.Token.GoString())
	}
	loc := p.tok.Loc
	p.advance()
	return loc
}

func (p *parser) at(tok token.Token) bool { return p.tok.Token == tok }

// parseBlock parses a sequence of statements followed by a trailing
// expression. Each non-trailing statement is unambiguously introduced by
// `let` or `fn`; anything else is parsed as an expression and is either the
// trailing expression (if not followed by `;`) or an ExprStmt (if it is).
func (p *parser) parseBlock() *ast.Block {
	start := p.tok.Loc
	blk := &ast.Block{}

	for {
		switch {
		case p.at(token.LET):
			blk.Stmts = append(blk.Stmts, p.parseAssignStmt())
			continue
		case p.at(token.FN):
			blk.Stmts = append(blk.Stmts, p.parseFnDefStmt())
			continue
		}

		if p.atBlockEnd() {
			p.errorf(p.tok.Loc, "a block must end with an expression, found %s", p.tok.Token.GoString())
		}

		exprStart := p.tok.Loc
		e := p.parseExpr()
		if p.at(token.SEMI) {
			p.advance()
			blk.Stmts = append(blk.Stmts, &ast.ExprStmt{X: e, Loc_: token.Join(exprStart, e.Loc())})
			continue
		}

		blk.Tail = e
		blk.Loc_ = token.Join(start, e.Loc())
		return blk
	}
}

func (p *parser) atBlockEnd() bool {
	switch p.tok.Token {
	case token.EOF, token.END, token.ELSE, token.ELIF:
		return true
	default:
		return false
	}
}

func (p *parser) parseAssignStmt() ast.Stmt {
	start := p.expect(token.LET)
	nameLoc := p.tok.Loc
	name := p.tok.Lit
	p.expect(token.IDENT)

	var ann ast.TypeAnn
	if p.at(token.COLON) {
		p.advance()
		ann = p.parseTypeAnn()
	}
	p.expect(token.EQ)
	value := p.parseExpr()
	end := p.expect(token.SEMI)

	return &ast.AssignStmt{
		Name: name, NameLoc: nameLoc, Ann: ann, Value: value,
		Loc_: token.Join(start, end),
	}
}

func (p *parser) parseFnDefStmt() *ast.FnDefStmt {
	start := p.expect(token.FN)
	nameLoc := p.tok.Loc
	name := p.tok.Lit
	p.expect(token.IDENT)

	params := p.parseParams()

	var ret ast.TypeAnn
	if p.at(token.ARROW) {
		p.advance()
		ret = p.parseTypeAnn()
	}

	p.expect(token.DO)
	body := p.parseBlock()
	end := p.expect(token.END)
	p.expect(token.SEMI)

	return &ast.FnDefStmt{
		Name: name, NameLoc: nameLoc, Params: params, ReturnAnn: ret, Body: body,
		Loc_: token.Join(start, end),
	}
}

func (p *parser) parseParams() []ast.Param {
	p.expect(token.LPAREN)
	var params []ast.Param
	for !p.at(token.RPAREN) {
		if len(params) > 0 {
			p.expect(token.COMMA)
		}
		nameLoc := p.tok.Loc
		name := p.tok.Lit
		p.expect(token.IDENT)
		p.expect(token.COLON)
		ann := p.parseTypeAnn()
		params = append(params, ast.Param{Name: name, NameLoc: nameLoc, Ann: ann})
	}
	p.expect(token.RPAREN)
	return params
}

// parseTypeAnn parses a type annotation. Arrow is right-associative and
// binds loosest, so a bare scalar or parenthesized type is parsed first and
// then an optional `-> T` is attached.
func (p *parser) parseTypeAnn() ast.TypeAnn {
	left := p.parseScalarTypeAnn()
	if p.at(token.ARROW) {
		p.advance()
		right := p.parseTypeAnn()
		return &ast.ArrowAnn{From: left, To: right, Loc_: token.Join(left.Loc(), right.Loc())}
	}
	return left
}

func (p *parser) parseScalarTypeAnn() ast.TypeAnn {
	loc := p.tok.Loc
	switch p.tok.Token {
	case token.BOOL_TY:
		p.advance()
		return &ast.BoolAnn{Loc_: loc}
	case token.INT_TY:
		p.advance()
		return &ast.IntAnn{Loc_: loc}
	case token.UNIT_TY:
		p.advance()
		return &ast.UnitAnn{Loc_: loc}
	case token.LPAREN:
		p.advance()
		inner := p.parseTypeAnn()
		p.expect(token.RPAREN)
		return inner
	default:
		p.errorf(loc, "expected a type, found %s", p.tok.Token.GoString())
		panic("unreachable")
	}
}
