package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/codalotl/faildiff/internal/diff"
	"github.com/codalotl/faildiff/internal/q/uni"
)

// blockIndent prefixes each line of a multi-line value in text output.
const blockIndent = "    "

// fieldOutput is the JSON/YAML form of a diff.Field.
type fieldOutput struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// writeFields writes fields to w in format. Color only applies to the text format.
func writeFields(w io.Writer, fields []diff.Field, format string, color bool) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(toOutput(fields))
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toOutput(fields)); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		_, err := io.WriteString(w, renderText(fields, newPalette(w, color)))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func toOutput(fields []diff.Field) []fieldOutput {
	out := make([]fieldOutput, len(fields))
	for i, f := range fields {
		out[i] = fieldOutput{Key: f.Key, Value: f.Value}
	}
	return out
}

// renderText renders fields one per line as "key: value", with keys padded to the same display width:
//
//	expected: foo
//	but was : bar
//
// A multi-line value is instead rendered as "key:" followed by the value's lines, each indented by blockIndent.
func renderText(fields []diff.Field, p palette) string {
	width := 0
	for _, f := range fields {
		width = max(width, uni.TextWidth(f.Key, nil))
	}

	var b strings.Builder
	for _, f := range fields {
		if strings.Contains(f.Value, "\n") {
			b.WriteString(p.key.render(f.Key))
			b.WriteString(":\n")
			for _, ln := range strings.Split(f.Value, "\n") {
				b.WriteString(blockIndent)
				if f.Key == diff.KeyDiff {
					b.WriteString(p.diffLine(ln))
				} else {
					b.WriteString(ln)
				}
				b.WriteString("\n")
			}
			continue
		}

		pad := strings.Repeat(" ", width-uni.TextWidth(f.Key, nil))
		b.WriteString(p.key.render(f.Key + pad))
		b.WriteString(": ")
		b.WriteString(p.value(f))
		b.WriteString("\n")
	}
	return b.String()
}

// style is a lipgloss style that can be switched off.
type style struct {
	lipgloss.Style
	enabled bool
}

func (s style) render(str string) string {
	if !s.enabled || str == "" {
		return str
	}
	return s.Render(str)
}

// palette holds the styles of text output.
type palette struct {
	key     style
	removed style
	added   style
	elided  style
}

// newPalette returns the styles for writing to w. If color is false, every style renders text unchanged.
func newPalette(w io.Writer, color bool) palette {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)

	return palette{
		key:     style{Style: base.Bold(true), enabled: color},
		removed: style{Style: base.Foreground(lipgloss.Color("1")), enabled: color},
		added:   style{Style: base.Foreground(lipgloss.Color("2")), enabled: color},
		elided:  style{Style: base.Faint(true), enabled: color},
	}
}

// diffLine styles one line of a line diff by its marker.
func (p palette) diffLine(ln string) string {
	switch {
	case ln == diff.LineEllipsis:
		return p.elided.render(ln)
	case strings.HasPrefix(ln, "-"):
		return p.removed.render(ln)
	case strings.HasPrefix(ln, "+"):
		return p.added.render(ln)
	default:
		return ln
	}
}

// value styles the value of a single-value field, dimming the ellipses that mark elided text.
func (p palette) value(f diff.Field) string {
	v := f.Value
	var head, tail string
	if f.ElidedHead {
		head, v = diff.Ellipsis, strings.TrimPrefix(v, diff.Ellipsis)
	}
	if f.ElidedTail {
		tail, v = diff.Ellipsis, strings.TrimSuffix(v, diff.Ellipsis)
	}
	return p.elided.render(head) + v + p.elided.render(tail)
}

// colorEnabled reports whether text output to w should be colored under mode (one of "auto", "always", "never"). In auto mode, color is used only when w is a
// terminal and NO_COLOR is unset.
func colorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}
