// Package mdr renders parsed Markdown into a sequence of styled text runs.
//
// The renderer walks a goldmark syntax tree and emits an ordered run
// sequence: text fragments paired with fully resolved attribute sets (font,
// colors, underline, link target). Styling is driven by a Config holding a
// base attribute set plus per-construct overrides, heading sizes and bullet
// glyphs. Runs can optionally be tagged with element metadata recording which
// Markdown construct produced them, including list depth and ordinals, so a
// consumer can partially reconstruct the source structure.
//
// Core properties:
//   - Flat run output with per-offset attribute lookup
//   - Scoped style nesting (code spans inside emphasis keep the emphasis)
//   - Invertible element metadata, off by default
//   - Defined degradation for unsupported constructs; renders never panic
//
// Example:
//
//	res, err := mdr.Render([]byte("# Hello\n\nMarkdown in, runs out.\n"), mdr.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, run := range res.Runs() {
//		fmt.Printf("%q\n", run.Text)
//	}
//
// ANSIWriter realizes a run sequence on a terminal, with optional OSC 8
// hyperlinks and hard wrapping.
package mdr
