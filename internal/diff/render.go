package diff

import "strings"

// Line markers of a rendered line diff.
const (
	markerCommon  = " "
	markerRemoved = "-"
	markerAdded   = "+"
)

// render returns d as a unified-diff-like block without hunk headers. Each line is prefixed with " " for common context, "-" for lines only in expected, and "+"
// for lines only in actual. At most contextLines common lines are shown before and after the differing lines; LineEllipsis stands in for the rest.
//
// Lines are rendered without their terminators and joined with "\n".
func (d lineDiff) render(contextLines int) string {
	var out []string

	// Pre-context from the tail of the leading run.
	lead := d.expected[:d.lead]
	if len(lead) > contextLines {
		out = append(out, LineEllipsis)
		lead = lead[len(lead)-contextLines:]
	}
	for _, ln := range lead {
		out = append(out, markerCommon+ln)
	}

	// Removed block first, then the added block; never interleaved.
	for _, ln := range d.removed() {
		out = append(out, markerRemoved+ln)
	}
	for _, ln := range d.added() {
		out = append(out, markerAdded+ln)
	}

	// Post-context from the head of the trailing run.
	trail := d.expected[len(d.expected)-d.tail:]
	elided := len(trail) > contextLines
	if elided {
		trail = trail[:contextLines]
	}
	for _, ln := range trail {
		out = append(out, markerCommon+ln)
	}
	if elided {
		out = append(out, LineEllipsis)
	}

	return strings.Join(out, defaultEOL)
}
