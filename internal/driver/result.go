package driver

import (
	"fmt"

	"github.com/pijago/pijago/lang/types"
)

// formatResult renders a final result word as the surface-syntax value it
// represents, using the term's statically inferred type to disambiguate
// what an otherwise-opaque int64 means — the same dispatch lang/compiler
// uses at compile time to pick a Print* opcode, reused here for the one
// value the driver itself prints rather than the program's own print
// calls.
func formatResult(ty types.Ty, word int64) string {
	switch {
	case ty.IsBool():
		return fmt.Sprintf("%t", word != 0)
	case ty.IsInt():
		return fmt.Sprintf("%d", word)
	case ty.IsUnit():
		return "unit"
	case ty.IsArrow():
		return "<function>"
	default:
		return fmt.Sprintf("%d", word)
	}
}
