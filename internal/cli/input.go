package cli

import (
	"fmt"
	"io"
	"os"
)

// inputs are the two texts being compared.
type inputs struct {
	expected string
	actual   string
}

// readInputs resolves the positional arguments to texts. With literal set, the arguments are the texts. Otherwise each argument is a file path, and "-" reads that
// side from in; only one side may use "-".
func readInputs(args []string, literal bool, in io.Reader) (inputs, error) {
	if len(args) != 2 {
		return inputs{}, usageErrorf("expected 2 arguments (<expected> <actual>), got %d", len(args))
	}
	if literal {
		return inputs{expected: args[0], actual: args[1]}, nil
	}
	if args[0] == stdinArg && args[1] == stdinArg {
		return inputs{}, usageErrorf("only one of <expected> and <actual> may be %q (stdin)", stdinArg)
	}

	expected, err := readInput(args[0], in)
	if err != nil {
		return inputs{}, fmt.Errorf("read expected: %w", err)
	}
	actual, err := readInput(args[1], in)
	if err != nil {
		return inputs{}, fmt.Errorf("read actual: %w", err)
	}
	return inputs{expected: expected, actual: actual}, nil
}

func readInput(arg string, in io.Reader) (string, error) {
	if arg == stdinArg {
		b, err := io.ReadAll(in)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := os.ReadFile(arg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
