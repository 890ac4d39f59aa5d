package hir

import (
	"github.com/pijago/pijago/lang/ast"
	"github.com/pijago/pijago/lang/recur"
	"github.com/pijago/pijago/lang/token"
	"github.com/pijago/pijago/lang/types"
)

// Lower translates a parsed chunk's block into an HIR term, recursively
// pushing and popping a stack of in-scope locals as it descends so that
// identifier references resolve to the nearest enclosing binding, exactly
// like the surface language's lexical scoping.
func Lower(ctx *types.Context, block *ast.Block) (*Term, error) {
	s := &scope{ctx: ctx}
	return s.lowerBlock(block)
}

type boundLocal struct {
	name string
	id   types.LocalId
}

type scope struct {
	ctx    *types.Context
	locals []boundLocal
}

func (s *scope) newTerm(loc token.Location, kind TermKind) *Term {
	id := s.ctx.NewTermId(loc)
	return &Term{ID: id, Kind: kind}
}

// lowerTypeAnn lowers a surface type annotation, minting a fresh unification
// variable for a missing one.
func (s *scope) lowerTypeAnn(ann ast.TypeAnn) types.Ty {
	if ann == nil {
		return s.ctx.NewTy()
	}
	switch ann.(type) {
	case *ast.BoolAnn:
		return types.BoolTy
	case *ast.IntAnn:
		return types.IntTy
	case *ast.UnitAnn:
		return types.UnitTy
	case *ast.ArrowAnn:
		a := ann.(*ast.ArrowAnn)
		return types.Arrow(s.lowerTypeAnn(a.From), s.lowerTypeAnn(a.To))
	default:
		panic("hir: unknown TypeAnn")
	}
}

// pushLocal mints a LocalId for a named, annotated binding and pushes it
// onto the scope stack so later lookups resolve to it.
func (s *scope) pushLocal(name string, nameLoc token.Location, ann ast.TypeAnn) types.LocalId {
	ty := s.lowerTypeAnn(ann)
	id := s.ctx.NewLocalId(nameLoc)
	s.ctx.SetLocalType(id, ty)
	s.locals = append(s.locals, boundLocal{name: name, id: id})
	return id
}

func (s *scope) popLocal() boundLocal {
	n := len(s.locals) - 1
	l := s.locals[n]
	s.locals = s.locals[:n]
	return l
}

func (s *scope) lookup(name string) (types.LocalId, bool) {
	for i := len(s.locals) - 1; i >= 0; i-- {
		if s.locals[i].name == name {
			return s.locals[i].id, true
		}
	}
	return 0, false
}

// lowerBlock lowers a sequence of statements and a trailing expression into
// nested Let terms, innermost being the trailing expression itself.
func (s *scope) lowerBlock(block *ast.Block) (*Term, error) {
	if len(block.Stmts) == 0 {
		return s.lowerExpr(block.Tail)
	}

	stmt := block.Stmts[0]
	rest := &ast.Block{Stmts: block.Stmts[1:], Tail: block.Tail, Loc_: block.Loc_}

	switch stmt := stmt.(type) {
	case *ast.AssignStmt:
		return s.lowerAssign(stmt, rest)
	case *ast.FnDefStmt:
		return s.lowerFnDef(stmt, rest)
	case *ast.ExprStmt:
		return s.lowerExprStmt(stmt, rest)
	default:
		panic("hir: unknown Stmt")
	}
}

// lowerExprStmt lowers an expression evaluated for effect into a Let that
// binds it to a fresh wildcard local, discarding the value.
func (s *scope) lowerExprStmt(stmt *ast.ExprStmt, rest *ast.Block) (*Term, error) {
	head, err := s.lowerExpr(stmt.X)
	if err != nil {
		return nil, err
	}
	tail, err := s.lowerBlock(rest)
	if err != nil {
		return nil, err
	}

	localID := s.ctx.NewLocalId(stmt.Loc())
	s.ctx.SetLocalType(localID, s.ctx.NewTy())

	return s.newTerm(stmt.Loc(), &LetTerm{Kind: NonRec, Local: localID, Value: head, Tail: tail}), nil
}

func (s *scope) lowerExpr(expr ast.Expr) (*Term, error) {
	loc := expr.Loc()
	switch e := expr.(type) {
	case *ast.IdentExpr:
		id, ok := s.lookup(e.Name)
		if !ok {
			return nil, errf(loc, "local %s is not bound in the current scope", e.Name)
		}
		return s.newTerm(loc, &VarTerm{Local: id}), nil
	case *ast.IntLit:
		return s.newTerm(loc, &LitTerm{Kind: LitInt, Int: e.Value}), nil
	case *ast.BoolLit:
		return s.newTerm(loc, &LitTerm{Kind: LitBool, Bool: e.Value}), nil
	case *ast.UnitLit:
		return s.newTerm(loc, &LitTerm{Kind: LitUnit}), nil
	case *ast.PrintExpr:
		return s.newTerm(loc, &PrimFnTerm{}), nil
	case *ast.CondExpr:
		return s.lowerCond(e)
	case *ast.CallExpr:
		return s.lowerCall(e)
	case *ast.BinaryExpr:
		l, err := s.lowerExpr(e.L)
		if err != nil {
			return nil, err
		}
		r, err := s.lowerExpr(e.R)
		if err != nil {
			return nil, err
		}
		return s.newTerm(loc, &BinaryOpTerm{Op: e.Op, L: l, R: r}), nil
	case *ast.UnaryExpr:
		x, err := s.lowerExpr(e.X)
		if err != nil {
			return nil, err
		}
		return s.newTerm(loc, &UnaryOpTerm{Op: e.Op, X: x}), nil
	case *ast.AnonFnExpr:
		return s.lowerAnonFn(e)
	default:
		panic("hir: unknown Expr")
	}
}

func (s *scope) lowerCond(e *ast.CondExpr) (*Term, error) {
	elseTerm, err := s.lowerBlock(e.Else)
	if err != nil {
		return nil, err
	}

	for i := len(e.Branches) - 1; i >= 0; i-- {
		br := e.Branches[i]
		cond, err := s.lowerBlock(br.Cond)
		if err != nil {
			return nil, err
		}
		body, err := s.lowerBlock(br.Body)
		if err != nil {
			return nil, err
		}
		elseTerm = s.newTerm(e.Loc(), &CondTerm{Cond: cond, Then: body, Else: elseTerm})
	}

	return elseTerm, nil
}

func (s *scope) lowerCall(e *ast.CallExpr) (*Term, error) {
	term, err := s.lowerExpr(e.Fn)
	if err != nil {
		return nil, err
	}
	for _, arg := range e.Args {
		a, err := s.lowerExpr(arg)
		if err != nil {
			return nil, err
		}
		term = s.newTerm(e.Loc(), &AppTerm{Fn: term, Arg: a})
	}
	return term, nil
}

func (s *scope) lowerAssign(stmt *ast.AssignStmt, rest *ast.Block) (*Term, error) {
	rhs, err := s.lowerExpr(stmt.Value)
	if err != nil {
		return nil, err
	}

	lhsID := s.pushLocal(stmt.Name, stmt.NameLoc, stmt.Ann)
	tail, err := s.lowerBlock(rest)
	s.popLocal()
	if err != nil {
		return nil, err
	}

	return s.newTerm(stmt.Loc(), &LetTerm{Kind: NonRec, Local: lhsID, Value: rhs, Tail: tail}), nil
}

// lowerFnDef lowers a named function definition. If the function refers to
// its own name in its body, it is bound before the body is lowered (so
// that self-references resolve) and marked Rec; otherwise it is bound only
// after, like a plain let.
func (s *scope) lowerFnDef(stmt *ast.FnDefStmt, rest *ast.Block) (*Term, error) {
	isRecursive := recur.IsRecursive(stmt.Name, stmt.Body)
	arity := len(stmt.Params)

	var selfID types.LocalId
	if isRecursive {
		if stmt.ReturnAnn == nil {
			return nil, errf(stmt.NameLoc, "recursive function %s requires a return type annotation", stmt.Name)
		}
		selfID = s.ctx.NewLocalId(stmt.NameLoc)
		s.locals = append(s.locals, boundLocal{name: stmt.Name, id: selfID})
	}

	for _, p := range stmt.Params {
		s.pushLocal(p.Name, p.NameLoc, p.Ann)
	}

	body, err := s.lowerBlock(stmt.Body)
	if err != nil {
		return nil, err
	}

	bodyTy := s.lowerTypeAnn(stmt.ReturnAnn)
	s.ctx.SetTermType(body.ID, bodyTy)

	term := body
	fnTy := bodyTy
	for i := 0; i < arity; i++ {
		arg := s.popLocal()
		argTy, _ := s.ctx.LocalType(arg.id)
		fnTy = types.Arrow(argTy, fnTy)
		term = s.newTerm(stmt.Loc(), &AbsTerm{Param: arg.id, Body: term})
		s.ctx.SetTermType(term.ID, fnTy)
	}

	if isRecursive {
		s.ctx.SetLocalType(selfID, fnTy)
	} else {
		selfID = s.ctx.NewLocalId(stmt.NameLoc)
		s.ctx.SetLocalType(selfID, fnTy)
		s.locals = append(s.locals, boundLocal{name: stmt.Name, id: selfID})
	}

	tail, err := s.lowerBlock(rest)
	s.popLocal()
	if err != nil {
		return nil, err
	}

	kind := NonRec
	if isRecursive {
		kind = Rec
	}
	return s.newTerm(stmt.Loc(), &LetTerm{Kind: kind, Local: selfID, Value: term, Tail: tail}), nil
}

// lowerAnonFn lowers an anonymous function literal. Anonymous functions
// never carry a return type annotation in the surface grammar, so their
// result type is always a fresh unification variable.
func (s *scope) lowerAnonFn(e *ast.AnonFnExpr) (*Term, error) {
	arity := len(e.Params)
	for _, p := range e.Params {
		s.pushLocal(p.Name, p.NameLoc, p.Ann)
	}

	body, err := s.lowerBlock(e.Body)
	if err != nil {
		return nil, err
	}

	fnTy := s.ctx.NewTy()
	s.ctx.SetTermType(body.ID, fnTy)

	term := body
	for i := 0; i < arity; i++ {
		arg := s.popLocal()
		argTy, _ := s.ctx.LocalType(arg.id)
		fnTy = types.Arrow(argTy, fnTy)
		term = s.newTerm(e.Loc(), &AbsTerm{Param: arg.id, Body: term})
		s.ctx.SetTermType(term.ID, fnTy)
	}

	return term, nil
}
