package diff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// defaultEOL is the line separator of rendered diffs and the terminator lines are split on ("\r\n" is normalized to it first).
const defaultEOL = "\n"

// maxInternedLines bounds the combined line count of inputs whose lines are interned with go-diff. go-diff encodes line ids as runes and panics on ids past the last
// code point it can encode (1112060).
const maxInternedLines = 1 << 20

// lineDiff is a line-level comparison of expected and actual: a common leading run, a differing middle, and a common trailing run.
//
// Invariants:
//   - lead+tail <= min(len(expected), len(actual))
//   - expected[:lead] == actual[:lead]
//   - expected[len(expected)-tail:] == actual[len(actual)-tail:]
type lineDiff struct {
	expected []string // lines of expected, without terminators
	actual   []string // lines of actual, without terminators
	lead     int      // common leading lines
	tail     int      // common trailing lines, disjoint from the leading run
}

// splitLines splits text on "\n" and "\r\n". A text ending in a terminator yields a trailing empty line.
func splitLines(text string) []string {
	return strings.Split(normalizeEOL(text), defaultEOL)
}

func normalizeEOL(text string) string {
	return strings.ReplaceAll(text, "\r\n", defaultEOL)
}

// lineMatcher finds common runs of lines of two texts.
//
// Lines are interned with go-diff and runs are matched over the resulting id strings. Inputs with too many lines to intern are matched by comparing line text.
type lineMatcher struct {
	dmp      *diffmatchpatch.DiffMatchPatch
	interned bool
	eIDs     []rune // one id per line of expected, if interned
	aIDs     []rune // one id per line of actual, if interned
	eLines   []string
	aLines   []string
}

func newLineMatcher(expected, actual string, eLines, aLines []string) lineMatcher {
	m := lineMatcher{dmp: diffmatchpatch.New(), eLines: eLines, aLines: aLines}
	if len(eLines)+len(aLines) >= maxInternedLines {
		return m
	}

	// Terminate every line, including the last, so a final line interns like any other:
	eIDs, aIDs, _ := m.dmp.DiffLinesToRunes(normalizeEOL(expected)+defaultEOL, normalizeEOL(actual)+defaultEOL)
	if len(eIDs) != len(eLines) || len(aIDs) != len(aLines) {
		return m
	}
	m.interned, m.eIDs, m.aIDs = true, eIDs, aIDs
	return m
}

// prefix returns the number of leading lines shared by both texts.
func (m lineMatcher) prefix() int {
	if m.interned {
		return m.dmp.DiffCommonPrefix(string(m.eIDs), string(m.aIDs))
	}
	n := min(len(m.eLines), len(m.aLines))
	i := 0
	for i < n && m.eLines[i] == m.aLines[i] {
		i++
	}
	return i
}

// suffix returns the number of trailing lines shared by both texts, never reaching into the first skip lines of either.
func (m lineMatcher) suffix(skip int) int {
	if m.interned {
		return m.dmp.DiffCommonSuffix(string(m.eIDs[skip:]), string(m.aIDs[skip:]))
	}
	ne, na := len(m.eLines), len(m.aLines)
	n := min(ne, na) - skip
	i := 0
	for i < n && m.eLines[ne-1-i] == m.aLines[na-1-i] {
		i++
	}
	return i
}

// newLineDiff compares expected and actual line by line.
//
// The leading run is matched first; the trailing run is matched on what remains, so the two never overlap. A leading run that covers no text at all is not counted
// as common. A trailing run that is only the empty segment after a shared final terminator is kept unless it would leave one side without differing lines, which
// keeps an added or removed final terminator visible.
func newLineDiff(expected, actual string) lineDiff {
	d := lineDiff{expected: splitLines(expected), actual: splitLines(actual)}
	m := newLineMatcher(expected, actual, d.expected, d.actual)
	ne, na := len(d.expected), len(d.actual)

	d.lead = m.prefix()
	if !spansText(d.expected[:d.lead], d.lead < ne && d.lead < na) {
		d.lead = 0
	}

	d.tail = m.suffix(d.lead)
	if !spansText(d.expected[ne-d.tail:], false) && (len(d.removed()) == 0 || len(d.added()) == 0) {
		d.tail = 0
	}

	return d
}

// spansText reports whether a run of common lines covers at least one character. terminated is true if the last line of the run is followed by a terminator in both
// texts.
func spansText(run []string, terminated bool) bool {
	switch {
	case len(run) == 0:
		return false
	case len(run) > 1 || terminated:
		return true
	default:
		return run[0] != ""
	}
}

// removed returns the lines only in expected.
func (d lineDiff) removed() []string {
	return d.expected[d.lead : len(d.expected)-d.tail]
}

// added returns the lines only in actual.
func (d lineDiff) added() []string {
	return d.actual[d.lead : len(d.actual)-d.tail]
}

// sameLines reports whether expected and actual have identical lines.
func (d lineDiff) sameLines() bool {
	return slices.Equal(d.expected, d.actual)
}

// LineDiff formats expected and actual as one line-oriented diff, returning the KeyDiff Field.
//
// Common leading and trailing lines are reduced to the context size, with LineEllipsis marking any elided lines. Lines only in expected are prefixed with "-" and
// come before lines only in actual, prefixed with "+". If the inputs only differ in their line-break characters, the value is LineBreakMismatch.
func (f *Formatter) LineDiff(expected, actual string) Field {
	d := newLineDiff(expected, actual)
	if d.sameLines() {
		if expected != actual {
			return Field{Key: KeyDiff, Value: LineBreakMismatch}
		}
		// Nothing differs; everything is common context.
		d.lead, d.tail = len(d.expected), 0
	}

	if err := d.validate(); err != nil {
		panic(fmt.Errorf("LineDiff: validate failed with %v", err))
	}

	return Field{Key: KeyDiff, Value: d.render(f.opts.ContextLines)}
}
