package uni

import (
	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation in TextWidth.
//
// Currently only relevant for East Asian code points and their locale.
type Options struct {
	EastAsianWidth   bool // if true, treats certain East Asian code points as 2 wide (e.g., Chinese, Japanese, Korean). Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. If true, treats emoji as wide (2 columns).
}

// Boundaries returns the byte offsets of the grapheme cluster boundaries of str, in increasing order. The result always starts with 0 and ends with len(str), so cluster
// i is str[b[i]:b[i+1]] and len(b)-1 is the number of clusters. Slicing str at any returned offset never splits a character.
func Boundaries(str string) []int {
	bounds := make([]int, 1, len(str)+1)
	iter := graphemes.FromString(str)
	for iter.Next() {
		bounds = append(bounds, iter.End())
	}
	return bounds
}

// Graphemes returns the grapheme clusters of str.
func Graphemes(str string) []string {
	var out []string
	iter := graphemes.FromString(str)
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out
}

// TextWidth returns the text width of str for monospace fonts in terminals. If opts is nil, locale is assumed to be non-East Asian.
func TextWidth(str string, opts *Options) int {
	return conditionFromOptions(opts).StringWidth(str)
}

func conditionFromOptions(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if opts == nil {
		return cond
	}

	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}

	return cond
}
