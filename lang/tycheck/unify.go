package tycheck

import "github.com/pijago/pijago/lang/types"

// Constraint states that two types must be equal. Expected is usually the
// type demanded by some typing rule and Found the type actually inferred
// for the term being checked against it.
type Constraint struct {
	Expected, Found types.Ty
}

// substitution replaces every occurrence of Old with New inside a type.
type substitution struct {
	old, new types.Ty
}

func (s substitution) apply(t types.Ty) types.Ty {
	if t.Equal(s.old) {
		return s.new
	}
	if t.IsArrow() {
		return types.Arrow(s.apply(t.From()), s.apply(t.To()))
	}
	return t
}

// unifier solves a queue of typing constraints by repeatedly popping one
// from the back (the oldest front-pushed constraint ends up at the back)
// and either discharging it, turning it into a substitution, or splitting
// it into sub-constraints for arrow types.
type unifier struct {
	substitutions []substitution
	constraints   []locatedConstraint
}

func newUnifier(constraints []locatedConstraint) (*unifier, error) {
	u := &unifier{constraints: constraints}
	if err := u.solve(); err != nil {
		return nil, err
	}
	return u, nil
}

// replace applies every substitution found so far to t, in the order they
// were discovered.
func (u *unifier) replace(t types.Ty) types.Ty {
	for _, s := range u.substitutions {
		t = s.apply(t)
	}
	return t
}

func (u *unifier) applySubstitution(s substitution) {
	for i, c := range u.constraints {
		u.constraints[i].constraint = Constraint{
			Expected: s.apply(c.constraint.Expected),
			Found:    s.apply(c.constraint.Found),
		}
	}
}

// addSubstitution composes a new substitution with the ones already found:
// it first resolves any variable in the substitution's replacement type
// using the existing solution, then records it.
func (u *unifier) addSubstitution(s substitution) {
	s.new = u.replace(s.new)
	u.substitutions = append(u.substitutions, s)
}

func (u *unifier) solve() error {
	if len(u.constraints) == 0 {
		return nil
	}

	n := len(u.constraints) - 1
	c := u.constraints[n]
	u.constraints = u.constraints[:n]

	lhs, rhs := c.constraint.Expected, c.constraint.Found

	switch {
	case lhs.Equal(rhs):
		return u.solve()

	case lhs.IsVar() && !rhs.Contains(lhs.VarIndex()):
		s := substitution{old: lhs, new: rhs}
		u.applySubstitution(s)
		if err := u.solve(); err != nil {
			return err
		}
		u.addSubstitution(s)
		return nil

	case rhs.IsVar() && !lhs.Contains(rhs.VarIndex()):
		s := substitution{old: rhs, new: lhs}
		u.applySubstitution(s)
		if err := u.solve(); err != nil {
			return err
		}
		u.addSubstitution(s)
		return nil

	case lhs.IsArrow() && rhs.IsArrow():
		u.constraints = append(u.constraints,
			locatedConstraint{constraint: Constraint{Expected: lhs.From(), Found: rhs.From()}, at: c.at},
			locatedConstraint{constraint: Constraint{Expected: lhs.To(), Found: rhs.To()}, at: c.at},
		)
		return u.solve()

	default:
		return mismatch(c.at, lhs, rhs)
	}
}
