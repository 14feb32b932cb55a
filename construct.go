package mdr

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// Construct identifies the Markdown construct a node or run belongs to.
type Construct uint8

const (
	// Unknown covers node kinds with no mapping; they render as pass-through.
	Unknown Construct = iota
	// Strong is **bold** emphasis.
	Strong
	// Emphasis is *italic* emphasis.
	Emphasis
	// Strikethrough is ~~struck~~ text.
	Strikethrough
	// InlineCode is a `code` span.
	InlineCode
	// CodeBlock is a fenced or indented code block.
	CodeBlock
	// Heading is an ATX or setext heading.
	Heading
	// UnorderedList is a bulleted list.
	UnorderedList
	// OrderedList is a numbered list.
	OrderedList
	// ListItem is a single item of either list kind.
	ListItem
	// Link is an inline or automatic link.
	Link
	// Blockquote is a > quoted block.
	Blockquote
	// ThematicBreak is a horizontal rule.
	ThematicBreak

	numConstructs
)

var constructNames = [numConstructs]string{
	"unknown", "strong", "emphasis", "strikethrough", "inline-code",
	"code-block", "heading", "unordered-list", "ordered-list", "list-item",
	"link", "blockquote", "thematic-break",
}

func (c Construct) String() string {
	if int(c) < len(constructNames) {
		return constructNames[c]
	}
	return "unknown"
}

// IsBlock reports whether the construct is block level.
func (c Construct) IsBlock() bool {
	switch c {
	case CodeBlock, Heading, UnorderedList, OrderedList, ListItem, Blockquote, ThematicBreak:
		return true
	default:
		return false
	}
}

// IsContainerBlock reports whether the construct is a block containing other blocks.
func (c Construct) IsContainerBlock() bool {
	switch c {
	case UnorderedList, OrderedList, ListItem, Blockquote:
		return true
	default:
		return false
	}
}

// IsLeafBlock reports whether the construct is a block with no block children.
func (c Construct) IsLeafBlock() bool {
	switch c {
	case Heading, CodeBlock, ThematicBreak:
		return true
	default:
		return false
	}
}

// constructOf maps a goldmark node to its construct. Node kinds with no
// mapping yield Unknown; structural kinds (document, paragraphs, text) are
// not constructs and are handled directly by the walker.
func constructOf(n ast.Node) Construct {
	switch n.Kind() {
	case ast.KindEmphasis:
		if em, ok := n.(*ast.Emphasis); ok && em.Level >= 2 {
			return Strong
		}
		return Emphasis
	case east.KindStrikethrough:
		return Strikethrough
	case ast.KindCodeSpan:
		return InlineCode
	case ast.KindCodeBlock, ast.KindFencedCodeBlock:
		return CodeBlock
	case ast.KindHeading:
		return Heading
	case ast.KindList:
		if l, ok := n.(*ast.List); ok && l.IsOrdered() {
			return OrderedList
		}
		return UnorderedList
	case ast.KindListItem:
		return ListItem
	case ast.KindLink, ast.KindAutoLink:
		return Link
	case ast.KindBlockquote:
		return Blockquote
	case ast.KindThematicBreak:
		return ThematicBreak
	default:
		return Unknown
	}
}
