package mdr

// Font is the style descriptor for a run: an opaque font-like value with
// queryable bold, italic and monospace traits. Family and Size are passed
// through to the rendering target untouched.
type Font struct {
	Family    string
	Size      float64
	Bold      bool
	Italic    bool
	Monospace bool
}

// DefaultFont returns the fallback font used when a construct resolves no font.
func DefaultFont() Font {
	return Font{Family: "default", Size: 12}
}

// MergeFonts combines an inherited font with a newly resolved one. The
// resolved font wins on family, size and monospace, but bold and italic
// traits already on the inherited font are preserved. This keeps a code span
// inside **bold** rendered as bold monospace instead of plain monospace.
func MergeFonts(inherited, resolved Font) Font {
	merged := resolved
	merged.Bold = merged.Bold || inherited.Bold
	merged.Italic = merged.Italic || inherited.Italic
	return merged
}

// Color is an opaque style value for foreground or background color. For
// terminal targets it holds an SGR parameter string such as "38;5;39".
type Color string

// LineStyle selects underline or strikethrough decoration.
type LineStyle uint8

const (
	// LineNone disables the decoration.
	LineNone LineStyle = iota
	// LineSingle draws a single line.
	LineSingle
)

// Indent is a paragraph indentation value in points.
type Indent float64
