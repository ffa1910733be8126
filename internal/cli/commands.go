package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codalotl/faildiff/internal/diff"
	"github.com/codalotl/faildiff/internal/simplelogger"
)

// Flag names.
const (
	flagConfig       = "config"
	flagContext      = "context"
	flagContextLines = "context-lines"
	flagNoLineDiff   = "no-line-diff"
	flagFormat       = "format"
	flagColor        = "color"
	flagLiteral      = "literal"
)

// stdinArg in place of a file path reads that input from stdin.
const stdinArg = "-"

func newRootCommand(log *simplelogger.Logger) *cobra.Command {
	def := defaultConfig()

	root := &cobra.Command{
		Use:   "faildiff [flags] <expected> <actual>",
		Short: "Show how an actual value differs from an expected one",
		Long: `faildiff compares two texts and prints the difference the way a test assertion failure would.

Single-line inputs are shown side by side as "expected" and "but was", with long common prefixes and suffixes
elided ("…"). If either input has more than one line, a line diff is shown instead: lines only in expected are
prefixed with "-", lines only in actual with "+", and runs of common lines beyond the context are elided (" ⋮").

<expected> and <actual> are file paths; "-" reads one of them from stdin. With --literal they are the texts
themselves.

Configuration is read from (lowest precedence first) $XDG_CONFIG_HOME/faildiff/config.yaml, the nearest
.faildiff.yaml, FAILDIFF_* environment variables (ex: FAILDIFF_CONTEXT_LINES=5), and flags.`,
		Example: `  faildiff want.txt got.txt
  faildiff --literal "foo bar" "foo baz"
  go run ./gen | faildiff golden.txt -`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return usageErrorf("expected 2 arguments (<expected> <actual>), got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log.Log("config: %+v", cfg)

			literal, _ := cmd.Flags().GetBool(flagLiteral)
			in, err := readInputs(args, literal, cmd.InOrStdin())
			if err != nil {
				return err
			}

			f := diff.New(cfg.Options())
			mode := f.SelectMode(in.expected, in.actual)
			log.Log("mode=%s expected_bytes=%d actual_bytes=%d", mode, len(in.expected), len(in.actual))

			fields := f.Format(in.expected, in.actual)
			out := cmd.OutOrStdout()
			return writeFields(out, fields, cfg.Format, colorEnabled(cfg.Color, out))
		},
	}

	pf := root.PersistentFlags()
	pf.String(flagConfig, "", "Read configuration from this file instead of discovering config files")
	pf.Int(flagContext, def.Context, "Common characters kept next to a difference in single-value output")
	pf.Int(flagContextLines, def.ContextLines, "Common lines kept on each side of a line diff")
	pf.Bool(flagNoLineDiff, false, "Never use a line diff; show multi-line inputs as single values")
	pf.String(flagFormat, def.Format, "Output format: text, json, or yaml")
	pf.String(flagColor, def.Color, "Color text output: auto, always, or never")

	root.Flags().Bool(flagLiteral, false, "Treat <expected> and <actual> as the texts to compare, not file paths")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{Message: err.Error()}
	})

	root.AddCommand(newConfigCommand(log))
	return root
}

func newConfigCommand(log *simplelogger.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long:  "Print the configuration faildiff would use, after applying config files, environment variables, and flags. Printed as JSON with --format json, otherwise as YAML.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("config takes no arguments, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log.Log("config sources: %v", cfg.Sources)

			out := cmd.OutOrStdout()
			if cfg.Format != formatJSON {
				for _, src := range cfg.Sources {
					fmt.Fprintf(out, "# from %s\n", src)
				}
			}
			return writeConfig(out, cfg, cfg.Format)
		},
	}
}
