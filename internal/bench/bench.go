// Package bench times the fact/fib scenarios on both execution engines and
// reports the results in human-readable form, grounded on funvibe-funxy's
// use of github.com/dustin/go-humanize for the same kind of report.
package bench

import (
	"fmt"
	"io"
	"time"

	humanize "github.com/dustin/go-humanize"

	"github.com/pijago/pijago/lang/compiler"
	"github.com/pijago/pijago/lang/hir"
	"github.com/pijago/pijago/lang/lir"
	"github.com/pijago/pijago/lang/machine"
	"github.com/pijago/pijago/lang/parser"
	"github.com/pijago/pijago/lang/reducer"
	"github.com/pijago/pijago/lang/tycheck"
	"github.com/pijago/pijago/lang/types"
)

// program names one of the two recursive scenarios benchmarked.
type program struct {
	name string
	src  string
}

var programs = []program{
	{name: "fact", src: `fn fact(n: Int) -> Int do if n <= 1 do 1 else n * fact(n - 1) end end; fact(20)`},
	{name: "fib", src: `fn fib(n: Int) -> Int do if n < 2 do n else fib(n-1) + fib(n-2) end end; fib(24)`},
}

// Result is one timed run of one program on one backend.
type Result struct {
	Program  string
	Backend  string
	Duration time.Duration
	Value    int64
}

func (r Result) String() string {
	finishedAt := time.Now().Add(-r.Duration)
	return fmt.Sprintf("%s/%s: %s => %d (%s)", r.Program, r.Backend, r.Duration, r.Value, humanize.Time(finishedAt))
}

// RunAll times every program on both backends and writes one report line
// per run to out, in the order programs are declared above.
func RunAll(out io.Writer) ([]Result, error) {
	results := make([]Result, 0, len(programs)*2)
	for _, p := range programs {
		ctx := types.NewContext()
		term, _, err := compile(p.src, ctx)
		if err != nil {
			return nil, fmt.Errorf("bench: %s: %w", p.name, err)
		}

		reduceResult, err := timeReduce(ctx, term)
		if err != nil {
			return nil, err
		}
		reduceResult.Program = p.name
		results = append(results, reduceResult)

		vmResult, err := timeVM(ctx, term)
		if err != nil {
			return nil, err
		}
		vmResult.Program = p.name
		results = append(results, vmResult)

		fmt.Fprintln(out, reduceResult)
		fmt.Fprintln(out, vmResult)
	}
	return results, nil
}

func compile(src string, ctx *types.Context) (*hir.Term, types.Ty, error) {
	ch, err := parser.Parse("bench", []byte(src))
	if err != nil {
		return nil, types.Ty{}, err
	}
	term, err := hir.Lower(ctx, ch.Block)
	if err != nil {
		return nil, types.Ty{}, err
	}
	ty, err := tycheck.Check(ctx, term)
	if err != nil {
		return nil, types.Ty{}, err
	}
	return term, ty, nil
}

func timeReduce(ctx *types.Context, term *hir.Term) (Result, error) {
	low := lir.Lower(term)
	start := time.Now()
	result := reducer.New(reducer.Wrap, io.Discard).Evaluate(low)
	elapsed := time.Since(start)

	lit, ok := lir.IsLit(result)
	if !ok {
		return Result{}, fmt.Errorf("bench: reducer did not produce a literal")
	}
	return Result{Backend: "reduce", Duration: elapsed, Value: lit.Val}, nil
}

func timeVM(ctx *types.Context, term *hir.Term) (Result, error) {
	prog := compiler.Compile(ctx, term)
	start := time.Now()
	value := machine.New(reducer.Wrap, io.Discard).Run(prog)
	elapsed := time.Since(start)
	return Result{Backend: "vm", Duration: elapsed, Value: value}, nil
}
