package driver

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/pijago/pijago/lang/hir"
	"github.com/pijago/pijago/lang/parser"
	"github.com/pijago/pijago/lang/tycheck"
)

const (
	ansiBoldRed = "\x1b[1;31m"
	ansiBold    = "\x1b[1m"
	ansiReset   = "\x1b[0m"
)

// wantsColor decides whether to emit ANSI-colored diagnostics: only when
// stdout is a real terminal and the caller hasn't forced --no-color or
// PIJAGO_NO_COLOR.
func wantsColor(out io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// category classifies err into the one-line diagnostic header the driver
// prints ahead of the located error message, per the phase it came from.
func category(err error) string {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return "Parsing error"
	}
	var herr *hir.Error
	if errors.As(err, &herr) {
		return "Lowering error"
	}
	var terr *tycheck.Error
	if errors.As(err, &terr) {
		return "Type error"
	}
	return "Error"
}

// renderDiagnostic writes err to w as a one-line category followed by the
// located message, tagging every line with the run id so concurrent runs
// (or CI logs interleaving several invocations) can be told apart. Colors
// the category in bold red and the message in bold when color is enabled.
func renderDiagnostic(w io.Writer, runID uuid.UUID, err error, color bool) {
	cat := category(err)
	if color {
		fmt.Fprintf(w, "[run %s] %s%s%s: %s%s%s\n", runID, ansiBoldRed, cat, ansiReset, ansiBold, err, ansiReset)
		return
	}
	fmt.Fprintf(w, "[run %s] %s: %s\n", runID, cat, err)
}
