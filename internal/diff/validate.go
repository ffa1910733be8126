package diff

import (
	"fmt"
	"slices"
)

// validate checks the truncation invariants for e and a and returns an error on the first violation.
//
// Elided text must be common to both inputs, so truncation never hides a difference.
func (t truncation) validate(e, a units) error {
	n := min(e.len(), a.len())

	if t.prefix < 0 || t.suffix < 0 || t.head < 0 || t.tail < 0 {
		return fmt.Errorf("truncation: negative count in %+v", t)
	}
	if t.prefix > n {
		return fmt.Errorf("truncation: prefix %d exceeds shorter input (%d units)", t.prefix, n)
	}
	if t.head > t.prefix {
		return fmt.Errorf("truncation: head %d exceeds prefix %d", t.head, t.prefix)
	}
	if t.tail > t.suffix {
		return fmt.Errorf("truncation: tail %d exceeds suffix %d", t.tail, t.suffix)
	}
	if t.head+t.suffix > n {
		return fmt.Errorf("truncation: suffix %d reaches into elided head %d (shorter input has %d units)", t.suffix, t.head, n)
	}

	if e.slice(0, t.head) != a.slice(0, t.head) {
		return fmt.Errorf("truncation: elided head differs between inputs")
	}
	if e.slice(e.len()-t.tail, e.len()) != a.slice(a.len()-t.tail, a.len()) {
		return fmt.Errorf("truncation: elided tail differs between inputs")
	}
	return nil
}

// validate checks the lineDiff invariants and returns an error on the first violation.
func (d lineDiff) validate() error {
	ne, na := len(d.expected), len(d.actual)

	if d.lead < 0 || d.tail < 0 {
		return fmt.Errorf("lines: negative run (lead=%d, tail=%d)", d.lead, d.tail)
	}
	if d.lead+d.tail > min(ne, na) {
		return fmt.Errorf("lines: lead %d and tail %d overlap (expected has %d lines, actual has %d)", d.lead, d.tail, ne, na)
	}
	if !slices.Equal(d.expected[:d.lead], d.actual[:d.lead]) {
		return fmt.Errorf("lines: leading run of %d lines is not common", d.lead)
	}
	if !slices.Equal(d.expected[ne-d.tail:], d.actual[na-d.tail:]) {
		return fmt.Errorf("lines: trailing run of %d lines is not common", d.tail)
	}
	return nil
}
