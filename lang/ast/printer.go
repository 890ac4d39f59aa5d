package ast

import (
	"fmt"
	"io"
	"strings"
)

// Print writes an indented s-expression-ish dump of node to w, one line per
// node, purely for debugging (parser tests, `pijago parse` output). It is
// driven by the same Visitor/Walk machinery every other traversal uses.
func Print(w io.Writer, node Node) {
	depth := 0
	var visitor VisitorFunc
	visitor = func(n Node, dir VisitDirection) Visitor {
		if dir == VisitExit {
			depth--
			return nil
		}
		fmt.Fprintf(w, "%s%s @%s\n", strings.Repeat("  ", depth), describe(n), n.Loc())
		depth++
		return visitor
	}
	Walk(visitor, node)
}

func describe(n Node) string {
	switch n := n.(type) {
	case *Chunk:
		return fmt.Sprintf("chunk %s", n.Name)
	case *Block:
		return fmt.Sprintf("block {stmts=%d}", len(n.Stmts))
	case *AssignStmt:
		return fmt.Sprintf("let %s", n.Name)
	case *FnDefStmt:
		return fmt.Sprintf("fn %s", n.Name)
	case *ExprStmt:
		return "exprstmt"
	case *BinaryExpr:
		return fmt.Sprintf("binop %s", n.Op)
	case *UnaryExpr:
		return fmt.Sprintf("unop %s", n.Op)
	case *CondExpr:
		return "cond"
	case *AnonFnExpr:
		return "anonfn"
	case *CallExpr:
		return "call"
	case *IntLit:
		return fmt.Sprintf("int %d", n.Value)
	case *BoolLit:
		return fmt.Sprintf("bool %t", n.Value)
	case *UnitLit:
		return "unit"
	case *IdentExpr:
		return fmt.Sprintf("ident %s", n.Name)
	case *PrintExpr:
		return "print"
	case *BoolAnn:
		return "Bool"
	case *IntAnn:
		return "Int"
	case *UnitAnn:
		return "Unit"
	case *ArrowAnn:
		return "arrow"
	default:
		return fmt.Sprintf("%T", n)
	}
}
