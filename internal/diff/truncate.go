package diff

import (
	"fmt"
	"strings"

	"github.com/codalotl/faildiff/internal/q/uni"
)

// units is a string segmented into grapheme clusters. Offsets taken from bounds never split a character.
type units struct {
	text   string
	bounds []int // byte offset of each cluster boundary; see uni.Boundaries
}

func segment(text string) units {
	return units{text: text, bounds: uni.Boundaries(text)}
}

// len returns the number of clusters.
func (u units) len() int {
	return len(u.bounds) - 1
}

// at returns cluster i.
func (u units) at(i int) string {
	return u.text[u.bounds[i]:u.bounds[i+1]]
}

// slice returns the text of clusters [i, j).
func (u units) slice(i, j int) string {
	return u.text[u.bounds[i]:u.bounds[j]]
}

// commonPrefix returns the number of leading clusters shared by x and y.
func commonPrefix(x, y units) int {
	n := min(x.len(), y.len())
	i := 0
	for i < n && x.at(i) == y.at(i) {
		i++
	}
	return i
}

// commonSuffix returns the number of trailing clusters shared by x and y, never reaching into the first skip clusters of either.
func commonSuffix(x, y units, skip int) int {
	n := min(x.len(), y.len()) - skip
	i := 0
	for i < n && x.at(x.len()-1-i) == y.at(y.len()-1-i) {
		i++
	}
	return i
}

// truncation says how much single-value mode elides from both inputs. All counts are in clusters.
type truncation struct {
	prefix int // common leading clusters
	suffix int // common trailing clusters of what remains once head is dropped
	head   int // leading clusters elided from both inputs
	tail   int // trailing clusters elided from both inputs
}

// truncation computes the elision for e and a.
//
// The prefix is matched first. Only its part beyond the context window is dropped, and the suffix is then matched on what remains. The suffix may therefore reuse
// clusters of the retained prefix context (shrinking the context actually shown after the difference) but can never reclaim elided clusters.
func (f *Formatter) truncation(e, a units) truncation {
	var t truncation
	t.prefix = commonPrefix(e, a)
	if t.prefix > f.opts.Context {
		t.head = t.prefix - f.opts.Context
	}
	t.suffix = commonSuffix(e, a, t.head)
	if t.suffix > f.opts.Context {
		t.tail = t.suffix - f.opts.Context
	}
	return t
}

// apply renders u with t's elisions.
func (t truncation) apply(u units) string {
	if t.head == 0 && t.tail == 0 {
		return u.text
	}
	var b strings.Builder
	if t.head > 0 {
		b.WriteString(Ellipsis)
	}
	b.WriteString(u.slice(t.head, u.len()-t.tail))
	if t.tail > 0 {
		b.WriteString(Ellipsis)
	}
	return b.String()
}

// Truncate formats expected and actual on their own, returning the KeyExpected and KeyButWas Fields.
//
// If the common prefix or common suffix is longer than the context size, all but the context nearest the difference is replaced by Ellipsis. Otherwise the input
// is returned unchanged.
func (f *Formatter) Truncate(expected, actual string) (Field, Field) {
	e, a := segment(expected), segment(actual)
	t := f.truncation(e, a)

	if err := t.validate(e, a); err != nil {
		panic(fmt.Errorf("Truncate: validate failed with %v", err))
	}

	expectedField := Field{Key: KeyExpected, Value: t.apply(e), ElidedHead: t.head > 0, ElidedTail: t.tail > 0}
	actualField := Field{Key: KeyButWas, Value: t.apply(a), ElidedHead: t.head > 0, ElidedTail: t.tail > 0}
	return expectedField, actualField
}
