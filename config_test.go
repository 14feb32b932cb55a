package mdr

import "testing"

func TestAttributesForMergesOverride(t *testing.T) {
	cfg := DefaultConfig()

	strong := cfg.AttributesFor(Strong)
	f, ok := strong.Font()
	if !ok || !f.Bold {
		t.Fatalf("expected bold font for strong, got %+v", f)
	}

	code := cfg.AttributesFor(InlineCode)
	if f, _ := code.Font(); !f.Monospace {
		t.Fatalf("expected monospace font for inline code, got %+v", f)
	}

	link := cfg.AttributesFor(Link)
	if link[AttrUnderline] != LineSingle {
		t.Fatalf("expected underline for links, got %v", link[AttrUnderline])
	}
}

func TestAttributesForReturnsIndependentCopy(t *testing.T) {
	cfg := DefaultConfig()
	a := cfg.AttributesFor(Unknown)
	a[AttrForeground] = Color("31")
	if cfg.Base[AttrForeground] != nil {
		t.Fatalf("mutating a resolved set leaked into Base")
	}
}

func TestHeadingSizeClamping(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.headingSize(1); got != 22 {
		t.Fatalf("level 1 size = %v, want 22", got)
	}
	if got := cfg.headingSize(6); got != 11 {
		t.Fatalf("level 6 size = %v, want 11", got)
	}
	if got := cfg.headingSize(9); got != 11 {
		t.Fatalf("expected last entry reused past table end, got %v", got)
	}
	if got := cfg.headingSize(0); got != 22 {
		t.Fatalf("expected first entry for underflow, got %v", got)
	}

	cfg.HeadingSizes = nil
	if got := cfg.headingSize(3); got != DefaultFont().Size {
		t.Fatalf("expected default size with empty table, got %v", got)
	}
}

func TestBulletForCycles(t *testing.T) {
	cfg := DefaultConfig()
	want := []string{"•", "◦", "▸", "•", "◦"}
	for depth, glyph := range want {
		if got := cfg.bulletFor(depth); got != glyph {
			t.Fatalf("bulletFor(%d) = %q, want %q", depth, got, glyph)
		}
	}

	cfg.BulletGlyphs = nil
	if got := cfg.bulletFor(0); got != "-" {
		t.Fatalf("expected dash fallback, got %q", got)
	}
}

func TestSupports(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Supported = nil
	if !cfg.supports(Strong) || !cfg.supports(ThematicBreak) {
		t.Fatalf("nil Supported should mean everything is supported")
	}

	cfg.Supported = []Construct{Strong}
	if !cfg.supports(Strong) {
		t.Fatalf("expected listed construct to be supported")
	}
	if cfg.supports(Heading) {
		t.Fatalf("expected unlisted construct to be unsupported")
	}
}

func TestFontForFallback(t *testing.T) {
	cfg := Config{}
	if got := cfg.FontFor(Strong); got != DefaultFont() {
		t.Fatalf("expected default font fallback, got %+v", got)
	}

	cfg = DefaultConfig()
	if got := cfg.FontFor(InlineCode); !got.Monospace {
		t.Fatalf("expected configured monospace font, got %+v", got)
	}
}
