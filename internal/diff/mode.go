package diff

import "strings"

// Mode is the strategy Format uses for a pair of inputs.
type Mode int

const (
	ModeSingleValue Mode = iota // each input shown on its own, with common prefix/suffix elided
	ModeLineDiff                // one line-oriented diff block
)

func (m Mode) String() string {
	switch m {
	case ModeSingleValue:
		return "single-value"
	case ModeLineDiff:
		return "line-diff"
	default:
		return "unknown"
	}
}

// SelectMode returns ModeLineDiff if either input contains a line terminator and line diffs are enabled; otherwise it returns ModeSingleValue.
func (f *Formatter) SelectMode(expected, actual string) Mode {
	if f.opts.DisableLineDiff {
		return ModeSingleValue
	}
	if strings.Contains(expected, defaultEOL) || strings.Contains(actual, defaultEOL) {
		return ModeLineDiff
	}
	return ModeSingleValue
}
