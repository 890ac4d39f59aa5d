package ast

import "github.com/pijago/pijago/lang/token"

// BinaryExpr is a binary operator application: `l op r`.
type BinaryExpr struct {
	Op   token.Token
	L, R Expr
	Loc_ token.Location
}

func (n *BinaryExpr) Loc() token.Location { return n.Loc_ }
func (n *BinaryExpr) Walk(v Visitor) {
	Walk(v, n.L)
	Walk(v, n.R)
}
func (*BinaryExpr) exprNode() {}

// UnaryExpr is a unary operator application: `op x`.
type UnaryExpr struct {
	Op   token.Token
	X    Expr
	Loc_ token.Location
}

func (n *UnaryExpr) Loc() token.Location { return n.Loc_ }
func (n *UnaryExpr) Walk(v Visitor)      { Walk(v, n.X) }
func (*UnaryExpr) exprNode()             {}

// CondExpr is a chain of `if`/`elif` branches followed by a mandatory
// `else`. Branches are tried in order; the first whose condition evaluates
// to true supplies the result.
type CondExpr struct {
	Branches []Branch
	Else     *Block
	Loc_     token.Location
}

func (n *CondExpr) Loc() token.Location { return n.Loc_ }
func (n *CondExpr) Walk(v Visitor) {
	for _, br := range n.Branches {
		Walk(v, br.Cond)
		Walk(v, br.Body)
	}
	Walk(v, n.Else)
}
func (*CondExpr) exprNode() {}

// AnonFnExpr is an anonymous function literal. Unlike FnDefStmt it binds no
// name and may not carry a return-type annotation.
type AnonFnExpr struct {
	Params []Param
	Body   *Block
	Loc_   token.Location
}

func (n *AnonFnExpr) Loc() token.Location { return n.Loc_ }
func (n *AnonFnExpr) Walk(v Visitor) {
	for _, p := range n.Params {
		if p.Ann != nil {
			Walk(v, p.Ann)
		}
	}
	Walk(v, n.Body)
}
func (*AnonFnExpr) exprNode() {}

// CallExpr is a function application `fn(args...)`.
type CallExpr struct {
	Fn   Expr
	Args []Expr
	Loc_ token.Location
}

func (n *CallExpr) Loc() token.Location { return n.Loc_ }
func (n *CallExpr) Walk(v Visitor) {
	Walk(v, n.Fn)
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (*CallExpr) exprNode() {}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
	Loc_  token.Location
}

func (n *IntLit) Loc() token.Location { return n.Loc_ }
func (n *IntLit) Walk(Visitor)        {}
func (*IntLit) exprNode()             {}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
	Loc_  token.Location
}

func (n *BoolLit) Loc() token.Location { return n.Loc_ }
func (n *BoolLit) Walk(Visitor)        {}
func (*BoolLit) exprNode()             {}

// UnitLit is the sole unit literal.
type UnitLit struct{ Loc_ token.Location }

func (n *UnitLit) Loc() token.Location { return n.Loc_ }
func (n *UnitLit) Walk(Visitor)        {}
func (*UnitLit) exprNode()             {}

// IdentExpr is a reference to a bound name (a let-binding, function name, or
// parameter).
type IdentExpr struct {
	Name string
	Loc_ token.Location
}

func (n *IdentExpr) Loc() token.Location { return n.Loc_ }
func (n *IdentExpr) Walk(Visitor)        {}
func (*IdentExpr) exprNode()             {}

// PrintExpr is a reference to the `print` primitive. It is only meaningful
// as the callee of a CallExpr.
type PrintExpr struct{ Loc_ token.Location }

func (n *PrintExpr) Loc() token.Location { return n.Loc_ }
func (n *PrintExpr) Walk(Visitor)        {}
func (*PrintExpr) exprNode()             {}
