package driver

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pijago/pijago/lang/compiler"
	"github.com/pijago/pijago/lang/hir"
	"github.com/pijago/pijago/lang/lir"
	"github.com/pijago/pijago/lang/machine"
	"github.com/pijago/pijago/lang/parser"
	"github.com/pijago/pijago/lang/reducer"
	"github.com/pijago/pijago/lang/tycheck"
	"github.com/pijago/pijago/lang/types"
)

// strategyFor maps the driver's --overflow-check flag to a reducer
// Strategy, shared verbatim by both backends.
func strategyFor(overflowCheck bool) reducer.Strategy {
	if overflowCheck {
		return reducer.Checked
	}
	return reducer.Wrap
}

// compileAndRun runs a source file through the full pipeline (parse, lower,
// type-check, then either the tree reducer or the bytecode VM) and returns
// the rendered final value alongside the program's own stdout. Every phase
// up to and including type-checking is shared between backends; only the
// last stage forks.
func compileAndRun(filename string, src []byte, backend string, overflowCheck bool) (string, string, error) {
	ch, err := parser.Parse(filename, src)
	if err != nil {
		return "", "", fmt.Errorf("parsing %s: %w", filename, err)
	}

	ctx := types.NewContext()
	term, err := hir.Lower(ctx, ch.Block)
	if err != nil {
		return "", "", fmt.Errorf("lowering %s: %w", filename, err)
	}

	ty, err := tycheck.Check(ctx, term)
	if err != nil {
		return "", "", fmt.Errorf("type-checking %s: %w", filename, err)
	}

	var out bytes.Buffer
	word, err := run(ctx, term, backend, strategyFor(overflowCheck), &out)
	if err != nil {
		return "", "", err
	}
	return formatResult(ty, word), out.String(), nil
}

func run(ctx *types.Context, term *hir.Term, backend string, strategy reducer.Strategy, out io.Writer) (int64, error) {
	switch backend {
	case "", "reduce":
		low := lir.Lower(term)
		result := reducer.New(strategy, out).Evaluate(low)
		lit, ok := lir.IsLit(result)
		if !ok {
			return 0, fmt.Errorf("reducer: program did not reduce to a literal")
		}
		return lit.Val, nil

	case "vm":
		prog := compiler.Compile(ctx, term)
		return machine.New(strategy, out).Run(prog), nil

	default:
		return 0, fmt.Errorf("unknown backend: %s", backend)
	}
}
