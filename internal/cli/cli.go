package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/codalotl/faildiff/internal/simplelogger"
)

// Version is the faildiff version. It is a var (not a const) so build tooling can override it (for example via `-ldflags "-X .../internal/cli.Version=1.2.3"`).
var Version = "0.1.0"

// In/Out/Err override standard I/O. If nil, defaults are used. Overriding is useful for testing.
type RunOptions struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run runs the CLI with args (typically you'd use os.Args).
//
// It returns a recommended exit code (0, 1, or 2) and an error, if any:
//   - 0 -> err == nil
//   - 1 -> err != nil, but the structure of args is sound (ex: an input file can't be read, or the configuration is invalid).
//   - 2 -> err != nil, args parse error or misuse of flags, etc.
//
// Note that in cases of errors, Run has already displayed an error message to opts.Err || Stderr. Callers may use os.Exit with the exit code.
func Run(args []string, opts *RunOptions) (int, error) {
	argv := []string{}
	if len(args) > 0 {
		argv = args[1:]
	}

	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	var errW io.Writer = os.Stderr
	if opts != nil {
		if opts.In != nil {
			in = opts.In
		}
		if opts.Out != nil {
			out = opts.Out
		}
		if opts.Err != nil {
			errW = opts.Err
		}
	}

	log := simplelogger.FromEnv()
	log.Log("run: %q", argv)

	root := newRootCommand(log)
	root.SetArgs(argv)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errW)

	err := root.ExecuteContext(context.Background())
	code := exitCodeFor(err)
	if err != nil {
		log.Log("exit %d: %v", code, err)
		fmt.Fprintf(errW, "Error: %v\n", err)
		if code == exitUsage {
			fmt.Fprintf(errW, "Run '%s --help' for usage.\n", root.Name())
		}
	}
	return code, err
}
