package diff

// Keys of the Fields returned by Format.
const (
	KeyExpected = "expected"
	KeyButWas   = "but was"
	KeyDiff     = "diff"
)

// Defaults used by DefaultOptions.
const (
	DefaultContext      = 20 // grapheme clusters of common text kept next to a difference in single-value mode
	DefaultContextLines = 3  // common lines kept on each side of the differing block in line-diff mode
)

// Markers for elided content.
const (
	Ellipsis     = "…"  // elided run of characters (single-value mode)
	LineEllipsis = " ⋮" // elided run of common lines (line-diff mode)
)

// LineBreakMismatch is the diff value when both inputs have the same lines but differ in their line-break characters (ex: "\r\n" vs "\n").
const LineBreakMismatch = "(line contents match, but line-break characters differ)"

// Field is one labeled entry of a formatted difference, such as ("expected", "foo").
type Field struct {
	Key   string
	Value string

	// ElidedHead and ElidedTail report whether Value starts or ends with an Ellipsis standing for elided text. An Ellipsis that was already part of the input does
	// not set them.
	ElidedHead bool
	ElidedTail bool
}

func (f Field) String() string {
	return f.Key + ": " + f.Value
}

// Options configure a Formatter.
type Options struct {
	Context         int  // Common grapheme clusters kept next to a difference in single-value mode. Must be >= 0.
	ContextLines    int  // Common lines kept on each side of the differing block in line-diff mode. Must be >= 0.
	DisableLineDiff bool // If true, multi-line inputs are formatted in single-value mode.
}

// DefaultOptions returns the options used by the package-level functions.
func DefaultOptions() Options {
	return Options{
		Context:      DefaultContext,
		ContextLines: DefaultContextLines,
	}
}

// Formatter formats differences between strings. It is immutable and safe for concurrent use.
type Formatter struct {
	opts Options
}

// New returns a Formatter using opts. Negative context sizes are treated as 0.
func New(opts Options) *Formatter {
	if opts.Context < 0 {
		opts.Context = 0
	}
	if opts.ContextLines < 0 {
		opts.ContextLines = 0
	}
	return &Formatter{opts: opts}
}

// Options returns the options f was created with (after normalization).
func (f *Formatter) Options() Options {
	return f.opts
}

var defaultFormatter = New(DefaultOptions())

// Format formats the difference between expected and actual using DefaultOptions.
func Format(expected, actual string) []Field {
	return defaultFormatter.Format(expected, actual)
}

// SelectMode returns the mode Format would use for expected and actual under DefaultOptions.
func SelectMode(expected, actual string) Mode {
	return defaultFormatter.SelectMode(expected, actual)
}

// Format formats the difference between expected and actual. The result has either two Fields (KeyExpected, KeyButWas) or one Field (KeyDiff).
func (f *Formatter) Format(expected, actual string) []Field {
	switch f.SelectMode(expected, actual) {
	case ModeLineDiff:
		return []Field{f.LineDiff(expected, actual)}
	default:
		e, a := f.Truncate(expected, actual)
		return []Field{e, a}
	}
}
