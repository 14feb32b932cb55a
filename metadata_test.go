package mdr

import "testing"

func TestListItemMetaUnordered(t *testing.T) {
	glyphs := []string{"•", "◦", "▸"}
	m := NewListItemMeta(false, 0, "-", glyphs)

	if m.Kind != ListItem {
		t.Fatalf("expected list item variant, got %s", m.Kind)
	}
	if !m.IsFirst() {
		t.Fatalf("expected fresh metadata to be first")
	}
	if m.List.Prefix != "\t• " {
		t.Fatalf("prefix = %q, want %q", m.List.Prefix, "\t• ")
	}
	if m.List.TypedDelimiter != "-" || m.List.RenderedDelimiter != "•" {
		t.Fatalf("delimiters = %q/%q, want -/•", m.List.TypedDelimiter, m.List.RenderedDelimiter)
	}

	m = m.Increment()
	if m.List.Index != 1 || m.IsFirst() {
		t.Fatalf("expected second item at index 1, got index %d", m.List.Index)
	}
	if m.List.Prefix != "\t• " {
		t.Fatalf("sibling increment changed prefix to %q", m.List.Prefix)
	}

	m = m.IncrementDepth(glyphs)
	if m.List.Depth != 1 || m.List.Index != 0 {
		t.Fatalf("expected depth 1 index 0, got depth %d index %d", m.List.Depth, m.List.Index)
	}
	if m.List.Prefix != "\t\t◦ " {
		t.Fatalf("nested prefix = %q, want %q", m.List.Prefix, "\t\t◦ ")
	}

	m = m.IncrementDepth(glyphs).IncrementDepth(glyphs)
	if m.List.Depth != 3 || m.List.RenderedDelimiter != "•" {
		t.Fatalf("expected glyphs to cycle at depth 3, got %q", m.List.RenderedDelimiter)
	}

	m = m.DecrementDepth(glyphs)
	if m.List.Depth != 2 || m.List.RenderedDelimiter != "▸" {
		t.Fatalf("expected depth 2 glyph ▸, got depth %d glyph %q", m.List.Depth, m.List.RenderedDelimiter)
	}
}

func TestListItemMetaDecrementFloorsAtZero(t *testing.T) {
	m := NewListItemMeta(false, 0, "", []string{"•"})
	m = m.DecrementDepth([]string{"•"})
	if m.List.Depth != 0 {
		t.Fatalf("expected depth floored at 0, got %d", m.List.Depth)
	}
}

func TestListItemMetaOrdered(t *testing.T) {
	m := NewListItemMeta(true, 3, "", nil)
	if !m.List.Ordered || m.List.Ordinal != 3 {
		t.Fatalf("expected ordered ordinal 3, got %+v", m.List)
	}
	if m.List.Prefix != "\t3. " {
		t.Fatalf("prefix = %q, want %q", m.List.Prefix, "\t3. ")
	}
	if m.List.RenderedDelimiter != "3." || m.List.TypedDelimiter != "3" {
		t.Fatalf("delimiters = %q/%q, want 3./3", m.List.RenderedDelimiter, m.List.TypedDelimiter)
	}

	m = m.Increment()
	if m.List.Ordinal != 4 || m.List.Prefix != "\t4. " {
		t.Fatalf("increment gave ordinal %d prefix %q", m.List.Ordinal, m.List.Prefix)
	}

	m = m.WithOrdinal(1)
	if m.List.Ordinal != 1 || m.List.Prefix != "\t1. " {
		t.Fatalf("WithOrdinal gave ordinal %d prefix %q", m.List.Ordinal, m.List.Prefix)
	}

	m = m.WithOrdinal(-5)
	if m.List.Ordinal != 1 {
		t.Fatalf("expected ordinal floored at 1, got %d", m.List.Ordinal)
	}
}

func TestWithOrdinalIgnoredForUnordered(t *testing.T) {
	m := NewListItemMeta(false, 0, "", []string{"•"})
	if got := m.WithOrdinal(7); got.List.Ordinal != 0 {
		t.Fatalf("expected WithOrdinal to be a no-op on unordered items, got %d", got.List.Ordinal)
	}
}

func TestElementMetaEquality(t *testing.T) {
	a := HeadingMeta(2)
	b := HeadingMeta(2)
	if a != b {
		t.Fatalf("expected structurally equal metadata to compare equal")
	}
	if HeadingMeta(2) == HeadingMeta(3) {
		t.Fatalf("expected different levels to compare unequal")
	}
	if LinkMeta("https://a") == LinkMeta("https://b") {
		t.Fatalf("expected different URLs to compare unequal")
	}
}

func TestMetadataSetOps(t *testing.T) {
	s := MetadataSet{}.With(BasicMeta(Strong)).With(HeadingMeta(1))
	if len(s) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(s))
	}

	s2 := s.With(HeadingMeta(4))
	if s[Heading].Level != 1 {
		t.Fatalf("With mutated its receiver")
	}
	if s2[Heading].Level != 4 {
		t.Fatalf("With did not replace the same-construct entry")
	}

	merged := s.Merge(MetadataSet{Emphasis: BasicMeta(Emphasis), Heading: HeadingMeta(6)})
	if len(merged) != 3 || merged[Heading].Level != 6 {
		t.Fatalf("Merge result wrong: %+v", merged)
	}
}
