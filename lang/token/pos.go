package token

import "fmt"

// A Location is a half-open byte-offset span [Start, End) into a single
// source file. It is the position currency used throughout the pipeline:
// AST nodes, HIR locals and terms, and diagnostics all carry one.
//
// Unlike a packed line/column Pos, a Location only needs enough information
// to slice the original source text for a diagnostic; translating it to a
// line/column pair is LineMap's job, not the compiler's.
type Location struct {
	Start, End int
}

// NoLocation is the zero value, used for synthetic nodes that have no
// corresponding source text (e.g. a desugared wildcard binder).
var NoLocation = Location{}

// Join returns the smallest Location spanning both a and b.
func Join(a, b Location) Location {
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return Location{Start: start, End: end}
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Start, l.End)
}

// LineMap translates byte offsets into 1-based line/column pairs for
// rendering a Location against the original source text. Neither the
// compile pipeline nor the driver builds one; the driver's diagnostics print
// the raw byte-offset span.
type LineMap struct {
	// lineStarts[i] is the byte offset of the first byte of line i+1.
	lineStarts []int
}

// NewLineMap scans src for newlines and builds a LineMap for it.
func NewLineMap(src string) *LineMap {
	lm := &LineMap{lineStarts: []int{0}}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			lm.lineStarts = append(lm.lineStarts, i+1)
		}
	}
	return lm
}

// LineCol returns the 1-based line and column for a byte offset.
func (lm *LineMap) LineCol(offset int) (line, col int) {
	lo, hi := 0, len(lm.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lm.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - lm.lineStarts[lo] + 1
}
