package types

import "fmt"

// LocalKind distinguishes the different flavors of Local name.
type LocalKind uint8

const (
	// LocalName is a user-written identifier.
	LocalName LocalKind = iota
	// LocalTemp is a compiler-generated name, numbered for uniqueness.
	LocalTemp
	// LocalMain names the implicit top-level binding a chunk's tail
	// expression is assigned to.
	LocalMain
	// LocalWildcard names a binding whose value is never read, e.g. the
	// target of an expression-statement. Two wildcards never compare equal
	// to each other, mirroring that each one is a distinct, unused slot.
	LocalWildcard
)

// Local identifies a binding target the way the surface language names it:
// either a real identifier, a compiler-synthesized temporary, the implicit
// "main" slot, or the wildcard used for statements evaluated for effect.
type Local struct {
	Kind LocalKind
	Name string // valid when Kind == LocalName
	Temp int    // valid when Kind == LocalTemp

	// wild disambiguates distinct wildcard values so that Equal never
	// reports two different LocalWildcard locals as the same binding.
	wild int
}

var wildcardCounter int

// NewName builds a Local for a user-written identifier.
func NewName(name string) Local { return Local{Kind: LocalName, Name: name} }

// NewTemp builds a Local for a compiler-synthesized temporary.
func NewTemp(n int) Local { return Local{Kind: LocalTemp, Temp: n} }

// Main is the Local naming a chunk's implicit top-level binding.
var Main = Local{Kind: LocalMain}

// NewWildcard builds a fresh wildcard Local, distinct from every other one.
func NewWildcard() Local {
	wildcardCounter++
	return Local{Kind: LocalWildcard, wild: wildcardCounter}
}

// Equal reports whether two Locals name the same binding. Two wildcards are
// never equal, even to themselves as distinct values: a wildcard represents
// a slot whose prior value must never be observed, so no later Local should
// ever resolve back to it.
func (l Local) Equal(other Local) bool {
	if l.Kind != other.Kind {
		return false
	}
	switch l.Kind {
	case LocalName:
		return l.Name == other.Name
	case LocalTemp:
		return l.Temp == other.Temp
	case LocalMain:
		return true
	case LocalWildcard:
		return false
	default:
		return false
	}
}

func (l Local) String() string {
	switch l.Kind {
	case LocalName:
		return l.Name
	case LocalTemp:
		return fmt.Sprintf("#%d", l.Temp)
	case LocalMain:
		return "#main"
	case LocalWildcard:
		return "_"
	default:
		return "<invalid local>"
	}
}
