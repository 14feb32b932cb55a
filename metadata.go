package mdr

import (
	"strconv"
	"strings"
)

// ListItemMeta carries the list-position payload of a list-item metadata
// variant. Depth and Index are 0-indexed; Ordinal is 1-based and meaningful
// only when Ordered is true.
type ListItemMeta struct {
	Depth   int
	Index   int
	Ordinal int
	Ordered bool
	// Prefix is the rendered item prefix, e.g. "\t1. " or "\t• ".
	Prefix string
	// TypedDelimiter is the literal marker character typed in the source
	// when introspectable ("-", "*", "+"), or the ordinal digits for
	// ordered items.
	TypedDelimiter string
	// RenderedDelimiter is the glyph or ordinal actually shown.
	RenderedDelimiter string
}

// ElementMeta is a tagged variant describing the construct a run came from.
// Kind selects the variant; the payload fields beyond it are valid only for
// the variants that declare them. All fields are comparable, so == is
// structural equality.
type ElementMeta struct {
	Kind Construct
	// Level is the heading level when Kind is Heading.
	Level int
	// URL is the destination when Kind is Link.
	URL string
	// List is the payload when Kind is ListItem.
	List ListItemMeta
}

// BasicMeta returns the payload-free variant for constructs needing no extra data.
func BasicMeta(kind Construct) ElementMeta {
	return ElementMeta{Kind: kind}
}

// HeadingMeta returns a heading variant with its level.
func HeadingMeta(level int) ElementMeta {
	return ElementMeta{Kind: Heading, Level: level}
}

// LinkMeta returns a link variant with its destination.
func LinkMeta(url string) ElementMeta {
	return ElementMeta{Kind: Link, URL: url}
}

// NewListItemMeta returns the list-item variant for the first item of a list
// at depth 0. For ordered lists start is the declared first ordinal; typed is
// the marker character found in the source, or "" when not introspectable.
func NewListItemMeta(ordered bool, start int, typed string, glyphs []string) ElementMeta {
	m := ElementMeta{Kind: ListItem, List: ListItemMeta{Ordered: ordered}}
	if ordered {
		if start < 1 {
			start = 1
		}
		m.List.Ordinal = start
	}
	return m.regenerate(typed, glyphs)
}

// Increment advances the item to its next sibling: index moves forward and,
// for ordered items, the ordinal and its derived delimiter strings advance.
func (m ElementMeta) Increment() ElementMeta {
	m.List.Index++
	if m.List.Ordered {
		m.List.Ordinal++
	}
	return m.regenerate("", nil)
}

// IncrementDepth descends into a nested list: depth grows, the index resets,
// and unordered items pick the bullet glyph for the new depth.
func (m ElementMeta) IncrementDepth(glyphs []string) ElementMeta {
	m.List.Depth++
	m.List.Index = 0
	return m.regenerate("", glyphs)
}

// DecrementDepth returns from a nested list, floored at depth 0.
func (m ElementMeta) DecrementDepth(glyphs []string) ElementMeta {
	if m.List.Depth > 0 {
		m.List.Depth--
	}
	m.List.Index = 0
	return m.regenerate("", glyphs)
}

// WithOrdinal resets an ordered item to the given 1-based ordinal, as when a
// nested ordered list declares its own start index.
func (m ElementMeta) WithOrdinal(ordinal int) ElementMeta {
	if !m.List.Ordered {
		return m
	}
	if ordinal < 1 {
		ordinal = 1
	}
	m.List.Ordinal = ordinal
	return m.regenerate("", nil)
}

// IsFirst reports whether this is the first item of the outermost list.
func (m ElementMeta) IsFirst() bool {
	return m.List.Depth == 0 && m.List.Index == 0
}

// regenerate recomputes prefix and delimiters from the current ordinal and
// depth. typed overrides the typed delimiter when non-empty; glyphs, when
// non-nil, re-selects the unordered bullet for the current depth.
func (m ElementMeta) regenerate(typed string, glyphs []string) ElementMeta {
	if m.Kind != ListItem {
		return m
	}
	if m.List.Ordered {
		digits := strconv.Itoa(m.List.Ordinal)
		m.List.RenderedDelimiter = digits + "."
		m.List.TypedDelimiter = digits
		m.List.Prefix = "\t" + digits + ". "
	} else {
		if len(glyphs) > 0 {
			m.List.RenderedDelimiter = glyphs[m.List.Depth%len(glyphs)]
		}
		if m.List.RenderedDelimiter == "" {
			m.List.RenderedDelimiter = "-"
		}
		if m.List.TypedDelimiter == "" {
			m.List.TypedDelimiter = "-"
		}
		m.List.Prefix = strings.Repeat("\t", m.List.Depth+1) + m.List.RenderedDelimiter + " "
	}
	if typed != "" {
		m.List.TypedDelimiter = typed
	}
	return m
}

// MetadataSet keys element metadata by construct type: at most one entry per
// construct, so a run inside both a Strong and an Emphasis span carries two
// entries.
type MetadataSet map[Construct]ElementMeta

// Clone returns an independent copy.
func (s MetadataSet) Clone() MetadataSet {
	out := make(MetadataSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge unions two sets into a new one; incoming entries override same-type
// entries from the receiver.
func (s MetadataSet) Merge(incoming MetadataSet) MetadataSet {
	out := s.Clone()
	for k, v := range incoming {
		out[k] = v
	}
	return out
}

// With returns a copy of the set with m added.
func (s MetadataSet) With(m ElementMeta) MetadataSet {
	out := s.Clone()
	out[m.Kind] = m
	return out
}
