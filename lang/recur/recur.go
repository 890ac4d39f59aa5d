// Package recur detects whether a named function definition is recursive,
// i.e. whether it refers to its own name anywhere inside its own body.
package recur

import "github.com/pijago/pijago/lang/ast"

// IsRecursive reports whether a function bound to name refers to itself
// somewhere within body, other than through a shadowing re-binding of the
// same name in a nested scope. Only body is examined, so the function's own
// parameters are not seen: a body that refers to a parameter sharing the
// function's name counts as recursive.
func IsRecursive(name string, body *ast.Block) bool {
	c := &checker{name: name}
	ast.Walk(c, body)
	if len(c.stack) != 0 {
		panic("recur: scope stack not empty after walk")
	}
	return c.isRec
}

// checker implements ast.Visitor. It walks the body tracking, for each
// lexical scope, whether name has been shadowed by a nested binding; a
// reference to name only counts as recursion if it isn't shadowed at the
// point it's used.
type checker struct {
	name       string
	isRec      bool
	isShadowed bool
	stack      []bool
}

func (c *checker) pushScope() { c.stack = append(c.stack, c.isShadowed) }

func (c *checker) popScope() {
	n := len(c.stack) - 1
	c.isShadowed = c.stack[n]
	c.stack = c.stack[:n]
}

func (c *checker) Visit(n ast.Node, dir ast.VisitDirection) ast.Visitor {
	if dir == ast.VisitExit {
		if _, ok := n.(*ast.Block); ok {
			c.popScope()
		}
		return nil
	}

	switch n := n.(type) {
	case *ast.Block:
		c.pushScope()
	case *ast.IdentExpr:
		if !c.isShadowed && n.Name == c.name {
			c.isRec = true
		}
	case *ast.AssignStmt:
		if n.Name == c.name {
			c.isShadowed = true
		}
	case *ast.FnDefStmt:
		if n.Name == c.name {
			c.isShadowed = true
		} else {
			saved := c.isShadowed
			c.shadowFromParams(n.Params)
			ast.Walk(c, n.Body)
			c.isShadowed = saved
			return nil
		}
	case *ast.AnonFnExpr:
		saved := c.isShadowed
		c.shadowFromParams(n.Params)
		ast.Walk(c, n.Body)
		c.isShadowed = saved
		return nil
	}

	return c
}

func (c *checker) shadowFromParams(params []ast.Param) {
	for _, p := range params {
		if p.Name == c.name {
			c.isShadowed = true
			return
		}
	}
}
