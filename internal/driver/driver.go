// Package driver implements the pijago command-line entry point: argument
// parsing and process lifecycle follow the teacher's internal/maincmd
// convention (github.com/mna/mainer's Parser/Stdio/ExitCode), generalized
// from the teacher's parse/resolve/tokenize subcommands down to the single
// parse-lower-typecheck-evaluate pipeline this language's driver runs.
package driver

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/mna/mainer"

	"github.com/pijago/pijago/internal/config"
)

const binName = "pijago"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <path>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <path>
       %[1]s -h|--help
       %[1]s -v|--version

Compiler and evaluator for the %[1]s functional language.

The <path> argument names a single source file to compile and run.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --overflow-check          Use checked arithmetic: panic on signed
                                 overflow, division by zero, and
                                 out-of-range shifts instead of wrapping.
       --backend=reduce|vm       Select the execution engine: the tree
                                 reducer (default) or the bytecode VM.
       --no-color                Disable ANSI-colored diagnostics.

More information on the %[1]s repository:
       https://github.com/pijago/pijago
`, binName)
)

// Cmd is the driver's flag/argument surface, read by mainer.Parser via the
// same struct-tag convention the teacher's maincmd.Cmd uses.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help          bool   `flag:"h,help"`
	Version       bool   `flag:"v,version"`
	OverflowCheck bool   `flag:"overflow-check"`
	Backend       string `flag:"backend"`
	NoColor       bool   `flag:"no-color"`

	args []string
}

func (c *Cmd) SetArgs(args []string)          { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) != 1 {
		return errors.New("exactly one source file path is required")
	}
	switch c.Backend {
	case "", "reduce", "vm":
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	return nil
}

// Main runs the driver to completion: it reads environment defaults,
// parses flags over them (so flags win, per the teacher's own go.mod
// comment about caarlos0/env), then either prints help/version or runs the
// compile-and-evaluate pipeline against the named source file.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid configuration: %s\n", err)
		return mainer.Failure
	}
	c.Backend = cfg.Backend
	c.OverflowCheck = cfg.OverflowCheck
	c.NoColor = cfg.NoColor

	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	_ = mainer.CancelOnSignal(context.Background(), os.Interrupt)

	runID := uuid.New()
	color := wantsColor(stdio.Stdout, c.NoColor)

	path := c.args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "[run %s] %s\n", runID, err)
		return mainer.Failure
	}

	result, stdout, err := compileAndRun(path, src, c.Backend, c.OverflowCheck)
	if err != nil {
		renderDiagnostic(stdio.Stderr, runID, err, color)
		return mainer.Failure
	}

	fmt.Fprint(stdio.Stdout, stdout)
	fmt.Fprintln(stdio.Stdout, result)
	return mainer.Success
}
