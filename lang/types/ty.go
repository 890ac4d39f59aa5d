// Package types implements the type-checker's type representation: the
// small lattice of Bool, Int, Unit, Arrow and unification variables.
package types

import "fmt"

// Ty is a type used by the type-checker. The zero value is not a valid Ty;
// always use BoolTy, IntTy or UnitTy, or construct one through Arrow or Var.
type Ty struct {
	kind tyKind
	arg1 *Ty // Arrow.From
	arg2 *Ty // Arrow.To
	v    int // Var index
}

type tyKind uint8

const (
	kindBool tyKind = iota
	kindInt
	kindUnit
	kindArrow
	kindVar
)

var (
	// BoolTy is the type of booleans.
	BoolTy = Ty{kind: kindBool}
	// IntTy is the type of (signed) integers.
	IntTy = Ty{kind: kindInt}
	// UnitTy is the unit type.
	UnitTy = Ty{kind: kindUnit}
)

// Arrow builds the type of functions from `from` to `to`.
func Arrow(from, to Ty) Ty {
	return Ty{kind: kindArrow, arg1: &from, arg2: &to}
}

// Var builds a fresh type variable with the given index, used during
// unification before it is solved to a concrete type.
func Var(index int) Ty { return Ty{kind: kindVar, v: index} }

func (t Ty) IsBool() bool  { return t.kind == kindBool }
func (t Ty) IsInt() bool   { return t.kind == kindInt }
func (t Ty) IsUnit() bool  { return t.kind == kindUnit }
func (t Ty) IsArrow() bool { return t.kind == kindArrow }
func (t Ty) IsVar() bool   { return t.kind == kindVar }

// From and To panic if t is not an Arrow; callers must check IsArrow first.
func (t Ty) From() Ty { return *t.arg1 }
func (t Ty) To() Ty   { return *t.arg2 }

// VarIndex is meaningful only if t is a Var; callers must check IsVar first.
// For any other type it returns 0.
func (t Ty) VarIndex() int { return t.v }

// Equal reports whether two types have the same shape, recursively.
func (t Ty) Equal(other Ty) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case kindArrow:
		return t.arg1.Equal(*other.arg1) && t.arg2.Equal(*other.arg2)
	case kindVar:
		return t.v == other.v
	default:
		return true
	}
}

// Contains reports whether the type variable with the given index occurs
// anywhere inside t. Used by the occurs-check during unification.
func (t Ty) Contains(index int) bool {
	switch t.kind {
	case kindArrow:
		return t.arg1.Contains(index) || t.arg2.Contains(index)
	case kindVar:
		return t.v == index
	default:
		return false
	}
}

func (t Ty) String() string {
	switch t.kind {
	case kindBool:
		return "Bool"
	case kindInt:
		return "Int"
	case kindUnit:
		return "Unit"
	case kindArrow:
		if t.arg1.IsArrow() {
			return fmt.Sprintf("(%s) -> %s", t.arg1, t.arg2)
		}
		return fmt.Sprintf("%s -> %s", t.arg1, t.arg2)
	case kindVar:
		return fmt.Sprintf("?X%d", t.v)
	default:
		return "<invalid type>"
	}
}
