// Package diff formats the difference between an "expected" and an "actual" string for a failure report.
//
// Representation: the result is an ordered slice of Fields. It is always one of:
//   - two Fields keyed "expected" and "but was" (single-value mode), or
//   - one Field keyed "diff" (line-diff mode).
//
// Modes: if either input contains a line terminator ("\n" or "\r\n"), the inputs are compared line by line and rendered as a single diff block. Otherwise (or if line
// diffs are disabled via Options), each input is shown on its own, with long common prefixes and suffixes elided.
//
// Single-value mode: the common prefix and common suffix are measured in grapheme clusters, so a cut never splits a character. A common run longer than
// Options.Context is shortened to its Options.Context units nearest the difference and marked with Ellipsis ("…"). The suffix is measured after the elided part of
// the prefix is dropped, so the two runs never claim the same elided text.
//
// Line-diff mode: the rendered block looks like a unified diff without hunk headers:
//
//	 ⋮
//	 a
//	 a
//	 a
//	-old
//	+new
//	 z
//	 ⋮
//
// Common leading and trailing lines are kept as " "-prefixed context, at most Options.ContextLines on each side; LineEllipsis (" ⋮") marks elided common lines. All
// lines only in expected ("-") precede all lines only in actual ("+").
//
// Invariants:
//   - An elision marker is present iff at least one unit (or line) was elided behind it.
//   - If neither common run exceeds the context size, single-value output equals the input exactly.
//   - The differing region is never elided.
//
// Getting a result:
//
//	fields := diff.Format(expected, actual)
//	for _, f := range fields {
//		fmt.Printf("%s: %s\n", f.Key, f.Value)
//	}
//
// All functions are pure; a Formatter is safe for concurrent use.
package diff
