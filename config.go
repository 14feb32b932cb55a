package mdr

// Config drives style resolution for one render pass. It is read-only during
// rendering; independent renders may share a Config.
type Config struct {
	// Base is applied to all text by default.
	Base Attributes
	// Overrides maps construct types to attribute sets merged over Base.
	Overrides map[Construct]Attributes
	// HeadingSizes indexes font point sizes by heading level (level 1 is
	// index 0). The last entry is reused for deeper levels.
	HeadingSizes []float64
	// BulletGlyphs are the unordered list bullets, selected by
	// depth mod len(BulletGlyphs).
	BulletGlyphs []string
	// Supported is the allow-list of construct types. Unsupported
	// constructs degrade instead of erroring. A nil slice means all
	// constructs are supported.
	Supported []Construct
	// FirstItemAttributes, when non-nil, is merged into the first item of
	// the outermost list (block-start indentation hook).
	FirstItemAttributes Attributes
	// LastItemAttributes, when non-nil, is merged into the last item of
	// the outermost list.
	LastItemAttributes Attributes
	// AttachMetadata tags runs with element metadata. Off by default;
	// pure styling mode is cheaper.
	AttachMetadata bool
	// Diagnostics enables warning logs for degraded constructs.
	Diagnostics bool
	// TrimWhitespace trims leading and trailing whitespace from the final
	// result, on grapheme cluster boundaries.
	TrimWhitespace bool
}

// DefaultConfig returns a configuration with every construct supported and a
// conventional style set: bold strong, italic emphasis, monospace code,
// underlined links.
func DefaultConfig() Config {
	base := DefaultFont()
	mono := base
	mono.Family = "monospace"
	mono.Monospace = true
	boldBase := base
	boldBase.Bold = true
	italicBase := base
	italicBase.Italic = true
	return Config{
		Base: Attributes{AttrFont: base},
		Overrides: map[Construct]Attributes{
			Strong:        {AttrFont: boldBase},
			Emphasis:      {AttrFont: italicBase},
			Strikethrough: {AttrStrike: LineSingle},
			InlineCode:    {AttrFont: mono},
			CodeBlock:     {AttrFont: mono},
			Heading:       {AttrFont: boldBase},
			Link:          {AttrUnderline: LineSingle},
			Blockquote:    {AttrIndent: Indent(20)},
		},
		HeadingSizes: []float64{22, 18, 15, 14, 13, 11},
		BulletGlyphs: []string{"•", "◦", "▸"},
		Supported: []Construct{
			Strong, Emphasis, Strikethrough, InlineCode, CodeBlock,
			Heading, UnorderedList, OrderedList, ListItem, Link,
			Blockquote, ThematicBreak,
		},
	}
}

// AttributesFor resolves the attribute set for a construct: Base merged with
// the construct's override when one exists, else a copy of Base. Pure
// function of the configuration.
func (c Config) AttributesFor(kind Construct) Attributes {
	if ov, ok := c.Overrides[kind]; ok {
		return Merge(c.Base, ov)
	}
	return c.Base.Clone()
}

// FontFor extracts the resolved font for a construct, falling back to the
// default font when none is configured.
func (c Config) FontFor(kind Construct) Font {
	if f, ok := c.AttributesFor(kind).Font(); ok {
		return f
	}
	return DefaultFont()
}

// headingSize returns the point size for a 1-based heading level, reusing
// the table's last entry past its end.
func (c Config) headingSize(level int) float64 {
	if len(c.HeadingSizes) == 0 {
		return DefaultFont().Size
	}
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.HeadingSizes) {
		idx = len(c.HeadingSizes) - 1
	}
	return c.HeadingSizes[idx]
}

// bulletFor returns the bullet glyph for a 0-indexed nesting depth.
func (c Config) bulletFor(depth int) string {
	if len(c.BulletGlyphs) == 0 {
		return "-"
	}
	return c.BulletGlyphs[depth%len(c.BulletGlyphs)]
}

func (c Config) supports(kind Construct) bool {
	if c.Supported == nil {
		return true
	}
	for _, k := range c.Supported {
		if k == kind {
			return true
		}
	}
	return false
}
