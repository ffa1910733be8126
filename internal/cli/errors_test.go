package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type customExit struct{}

func (customExit) Error() string { return "custom" }
func (customExit) ExitCode() int { return 7 }

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, 0, exitCodeFor(nil))
	assert.Equal(t, 1, exitCodeFor(errors.New("boom")))
	assert.Equal(t, 2, exitCodeFor(usageErrorf("bad %s", "args")))
	assert.Equal(t, 2, exitCodeFor(fmt.Errorf("wrapped: %w", UsageError{Message: "x"})))
	assert.Equal(t, 7, exitCodeFor(fmt.Errorf("wrapped: %w", customExit{})))
}

func TestUsageError(t *testing.T) {
	err := usageErrorf("expected %d", 2)
	assert.Equal(t, "expected 2", err.Error())
	assert.ErrorIs(t, err, ErrUsage)
	assert.NotErrorIs(t, errors.New("expected 2"), ErrUsage)
}
