package ast

import "github.com/pijago/pijago/lang/token"

// AssignStmt binds a name to the value of an expression: `let x = e` or
// `let x: T = e`.
type AssignStmt struct {
	Name    string
	NameLoc token.Location
	Ann     TypeAnn // nil if unannotated
	Value   Expr
	Loc_    token.Location
}

func (n *AssignStmt) Loc() token.Location { return n.Loc_ }
func (n *AssignStmt) Walk(v Visitor) {
	if n.Ann != nil {
		Walk(v, n.Ann)
	}
	Walk(v, n.Value)
}
func (*AssignStmt) stmtNode() {}

// FnDefStmt binds a name to a (possibly recursive) function: `fn f(x: Int)
// -> Int do ... end`.
type FnDefStmt struct {
	Name      string
	NameLoc   token.Location
	Params    []Param
	ReturnAnn TypeAnn // nil if unannotated
	Body      *Block
	Loc_      token.Location
}

func (n *FnDefStmt) Loc() token.Location { return n.Loc_ }
func (n *FnDefStmt) Walk(v Visitor) {
	for _, p := range n.Params {
		if p.Ann != nil {
			Walk(v, p.Ann)
		}
	}
	if n.ReturnAnn != nil {
		Walk(v, n.ReturnAnn)
	}
	Walk(v, n.Body)
}
func (*FnDefStmt) stmtNode() {}

// ExprStmt is an expression evaluated for effect and discarded, e.g. a
// `print(...)` call that isn't the last thing in its block. It lowers to a
// let-binding of the wildcard local.
type ExprStmt struct {
	X    Expr
	Loc_ token.Location
}

func (n *ExprStmt) Loc() token.Location { return n.Loc_ }
func (n *ExprStmt) Walk(v Visitor)      { Walk(v, n.X) }
func (*ExprStmt) stmtNode()             {}
