package mdr

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/yuin/goldmark/ast"
	"go.uber.org/zap"

	"pkt.systems/mdr/internal/diag"
)

// maxWalkDepth bounds tree recursion so pathological nesting surfaces as
// ErrDepthExceeded instead of a stack overflow.
const maxWalkDepth = 192

const thematicBreakText = "* * *"

// listContext is the per-kind list state kept alive across sibling items and
// nested sublists of the same kind. It is cleared when the outermost list of
// that kind closes.
type listContext struct {
	meta   ElementMeta
	active bool
}

type walker struct {
	cfg         Config
	source      []byte
	out         *Result
	attrs       Attributes
	diag        *diag.Sink
	strictLinks bool

	ulist   listContext
	olist   listContext
	curList *listContext

	depth int
}

func newWalker(cfg Config, source []byte, sink *diag.Sink, strictLinks bool) *walker {
	return &walker{
		cfg:         cfg,
		source:      source,
		out:         newResult(cfg.Base.Clone()),
		attrs:       cfg.Base.Clone(),
		diag:        sink,
		strictLinks: strictLinks,
	}
}

// emit appends a run carrying a snapshot of the given attributes.
func (w *walker) emit(text string, attrs Attributes) {
	w.out.append(text, attrs.Clone())
}

// pushScope merges a resolved attribute set into the current attributes with
// trait-preserving font merging, returning the previous attributes for the
// caller to restore on leave.
func (w *walker) pushScope(resolved Attributes) Attributes {
	prev := w.attrs
	next := Merge(prev, resolved)
	if rf, ok := resolved.Font(); ok {
		if cf, ok2 := prev.Font(); ok2 {
			next[AttrFont] = MergeFonts(cf, rf)
		}
	}
	w.attrs = next
	return prev
}

// tag adds an element metadata entry to the current attribute scope. No-op
// unless metadata attachment is enabled.
func (w *walker) tag(m ElementMeta) {
	if !w.cfg.AttachMetadata {
		return
	}
	set, _ := w.attrs.Metadata()
	w.attrs = w.attrs.Clone()
	w.attrs[AttrMetadata] = set.With(m)
}

// tagged returns attrs with an extra metadata entry, leaving attrs untouched.
func (w *walker) tagged(attrs Attributes, m ElementMeta) Attributes {
	if !w.cfg.AttachMetadata {
		return attrs
	}
	set, _ := attrs.Metadata()
	out := attrs.Clone()
	out[AttrMetadata] = set.With(m)
	return out
}

func (w *walker) warn(msg string, fields ...zap.Field) {
	if w.cfg.Diagnostics {
		w.diag.Warn(msg, fields...)
	}
}

func (w *walker) walk(n ast.Node) error {
	w.depth++
	defer func() { w.depth-- }()
	if w.depth > maxWalkDepth {
		return fmt.Errorf("%w: nesting beyond %d levels", ErrDepthExceeded, maxWalkDepth)
	}

	switch n.Kind() {
	case ast.KindDocument:
		return w.walkChildren(n)
	case ast.KindParagraph, ast.KindTextBlock:
		return w.renderParagraph(n)
	case ast.KindText:
		w.renderText(n.(*ast.Text))
		return nil
	case ast.KindString:
		w.emit(string(n.(*ast.String).Value), w.attrs)
		return nil
	case ast.KindRawHTML:
		w.renderRawHTML(n.(*ast.RawHTML))
		return nil
	case ast.KindHTMLBlock:
		w.warn("html block unsupported, skipped")
		return nil
	case ast.KindAutoLink:
		return w.renderAutoLink(n.(*ast.AutoLink))
	}

	switch constructOf(n) {
	case Strong, Emphasis, Strikethrough:
		return w.renderSpan(n, constructOf(n))
	case InlineCode:
		w.renderCodeSpan(n)
		return nil
	case CodeBlock:
		w.renderCodeBlock(n)
		return nil
	case Heading:
		return w.renderHeading(n.(*ast.Heading))
	case UnorderedList, OrderedList:
		return w.renderList(n.(*ast.List))
	case ListItem:
		// List items outside a list context render as plain content.
		return w.walkChildren(n)
	case Link:
		return w.renderLink(n.(*ast.Link))
	case Blockquote:
		return w.renderBlockquote(n)
	case ThematicBreak:
		w.renderThematicBreak(n)
		return nil
	default:
		w.warn("unrecognized node kind", zap.String("kind", n.Kind().String()))
		return w.walkChildren(n)
	}
}

func (w *walker) walkChildren(n ast.Node) error {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := w.walk(c); err != nil {
			return err
		}
	}
	return nil
}

// renderText emits literal text. Soft breaks and hard breaks both emit a
// single newline: a deliberate deviation from strict Markdown joining that
// keeps the renderer robust against input not authored as literal Markdown.
func (w *walker) renderText(t *ast.Text) {
	w.emit(string(t.Segment.Value(w.source)), w.attrs)
	if t.SoftLineBreak() || t.HardLineBreak() {
		w.emit("\n", w.attrs)
	}
}

func (w *walker) renderParagraph(n ast.Node) error {
	if err := w.walkChildren(n); err != nil {
		return err
	}
	if n.NextSibling() != nil {
		attrs := w.attrs
		if w.curList != nil && w.curList.active {
			// Tag the separator so downstream consumers recognize the
			// newline as part of the enclosing list.
			attrs = w.tagged(attrs, w.curList.meta)
		}
		w.emit("\n", attrs)
	}
	return nil
}

func (w *walker) renderSpan(n ast.Node, kind Construct) error {
	if !w.cfg.supports(kind) {
		// Strip styling, preserve content.
		return w.walkChildren(n)
	}
	prev := w.pushScope(w.cfg.AttributesFor(kind))
	w.tag(BasicMeta(kind))
	err := w.walkChildren(n)
	w.attrs = prev
	return err
}

// renderCodeSpan emits the literal code text. Code spans are leaves with
// verbatim content; there is no child recursion. The span's font picks up
// bold and italic from every enclosing Strong or Emphasis ancestor, not just
// the nearest, while keeping its monospace family.
func (w *walker) renderCodeSpan(n ast.Node) {
	text := codeSpanText(n, w.source)
	if !w.cfg.supports(InlineCode) {
		w.emit(text, w.attrs)
		return
	}
	resolved := w.cfg.AttributesFor(InlineCode)
	font, ok := resolved.Font()
	if !ok {
		font = DefaultFont()
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch constructOf(p) {
		case Strong:
			font.Bold = true
		case Emphasis:
			font.Italic = true
		}
	}
	resolved[AttrFont] = font
	prev := w.attrs
	w.attrs = Merge(w.attrs, resolved)
	w.attrs[AttrFont] = font
	w.tag(BasicMeta(InlineCode))
	w.emit(text, w.attrs)
	w.attrs = prev
}

func codeSpanText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
	}
	return b.String()
}

func (w *walker) renderCodeBlock(n ast.Node) {
	text := blockLines(n, w.source)
	text = strings.TrimSuffix(text, "\n")
	if !w.cfg.supports(CodeBlock) {
		w.emit(text, w.attrs)
		if n.NextSibling() != nil {
			w.emit("\n", w.attrs)
		}
		return
	}
	prev := w.pushScope(w.cfg.AttributesFor(CodeBlock))
	w.tag(BasicMeta(CodeBlock))
	w.emit(text, w.attrs)
	w.attrs = prev
	if n.NextSibling() != nil {
		w.emit("\n", w.attrs)
	}
}

func blockLines(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

func (w *walker) renderHeading(n *ast.Heading) error {
	level := n.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	if !w.cfg.supports(Heading) {
		// Headings never silently disappear: re-synthesize the literal
		// delimiters and keep walking children for their text.
		if !w.out.Empty() {
			w.emit("\n", w.attrs)
		}
		w.emit(strings.Repeat("#", level)+" ", w.attrs)
		if err := w.walkChildren(n); err != nil {
			return err
		}
		if n.NextSibling() != nil {
			w.emit("\n", w.attrs)
		}
		return nil
	}
	resolved := w.cfg.AttributesFor(Heading)
	font, ok := resolved.Font()
	if !ok {
		font = DefaultFont()
	}
	font.Size = w.cfg.headingSize(level)
	resolved[AttrFont] = font
	prev := w.pushScope(resolved)
	w.tag(HeadingMeta(level))
	err := w.walkChildren(n)
	w.attrs = prev
	if err != nil {
		return err
	}
	if n.NextSibling() != nil {
		w.emit("\n", w.attrs)
	}
	return nil
}

// renderLink resolves link attributes and metadata around the link text. A
// destination that does not parse as a URL fails the render in strict mode
// and otherwise degrades to unlinked text with a warning.
func (w *walker) renderLink(n *ast.Link) error {
	if !w.cfg.supports(Link) {
		return w.walkChildren(n)
	}
	dest := string(n.Destination)
	u, err := url.Parse(dest)
	if err != nil {
		if w.strictLinks {
			return fmt.Errorf("%w: %q", ErrMalformedLink, dest)
		}
		w.warn("malformed link destination, rendering unlinked", zap.String("destination", dest))
		return w.walkChildren(n)
	}
	resolved := w.cfg.AttributesFor(Link)
	resolved[AttrLink] = u.String()
	prev := w.pushScope(resolved)
	w.tag(LinkMeta(u.String()))
	werr := w.walkChildren(n)
	w.attrs = prev
	return werr
}

func (w *walker) renderAutoLink(n *ast.AutoLink) error {
	label := string(n.Label(w.source))
	if !w.cfg.supports(Link) {
		w.emit(label, w.attrs)
		return nil
	}
	dest := string(n.URL(w.source))
	u, err := url.Parse(dest)
	if err != nil {
		if w.strictLinks {
			return fmt.Errorf("%w: %q", ErrMalformedLink, dest)
		}
		w.warn("malformed autolink destination, rendering unlinked", zap.String("destination", dest))
		w.emit(label, w.attrs)
		return nil
	}
	resolved := w.cfg.AttributesFor(Link)
	resolved[AttrLink] = u.String()
	prev := w.pushScope(resolved)
	w.tag(LinkMeta(u.String()))
	w.emit(label, w.attrs)
	w.attrs = prev
	return nil
}

func (w *walker) renderList(n *ast.List) error {
	kind := UnorderedList
	ctx := &w.ulist
	if n.IsOrdered() {
		kind = OrderedList
		ctx = &w.olist
	}
	if !w.cfg.supports(kind) {
		// Content still renders, one line per item, without markers.
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if err := w.walkChildren(c); err != nil {
				return err
			}
			w.emit("\n", w.attrs)
		}
		return nil
	}

	typed := ""
	if !n.IsOrdered() && n.Marker != 0 {
		typed = string(rune(n.Marker))
	}
	nested := ctx.active
	parentMeta := ctx.meta
	if nested {
		ctx.meta = ctx.meta.IncrementDepth(w.cfg.BulletGlyphs)
		if n.IsOrdered() {
			ctx.meta = ctx.meta.WithOrdinal(n.Start)
		} else if typed != "" {
			// The nested list carries its own source marker.
			ctx.meta.List.TypedDelimiter = typed
		}
	} else {
		ctx.meta = NewListItemMeta(n.IsOrdered(), n.Start, typed, w.cfg.BulletGlyphs)
		ctx.active = true
	}

	prevList := w.curList
	w.curList = ctx
	prev := w.pushScope(w.cfg.AttributesFor(kind))
	w.tag(BasicMeta(kind))

	var err error
	first := true
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if !first {
			ctx.meta = ctx.meta.Increment()
		}
		first = false
		if err = w.renderListItem(c, ctx, c.NextSibling() == nil); err != nil {
			break
		}
	}

	w.attrs = prev
	w.curList = prevList
	if nested {
		ctx.meta = parentMeta
	} else {
		ctx.active = false
		ctx.meta = ElementMeta{}
	}
	if err != nil {
		return err
	}
	if n.NextSibling() != nil {
		w.emit("\n", w.attrs)
	}
	return nil
}

func (w *walker) renderListItem(item ast.Node, ctx *listContext, last bool) error {
	meta := ctx.meta
	resolved := w.cfg.AttributesFor(ListItem)
	if meta.IsFirst() && w.cfg.FirstItemAttributes != nil {
		resolved = Merge(resolved, w.cfg.FirstItemAttributes)
	}
	if last && meta.List.Depth == 0 && w.cfg.LastItemAttributes != nil {
		resolved = Merge(resolved, w.cfg.LastItemAttributes)
	}
	prev := w.pushScope(resolved)
	w.tag(meta)
	w.emit(meta.List.Prefix, w.attrs)
	err := w.walkChildren(item)
	if err == nil && !hasChildList(item) {
		// Items followed by a nested list skip their terminal newline:
		// the nested items emit their own.
		w.emit("\n", w.attrs)
	}
	w.attrs = prev
	return err
}

func hasChildList(n ast.Node) bool {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == ast.KindList {
			return true
		}
	}
	return false
}

func (w *walker) renderBlockquote(n ast.Node) error {
	if !w.cfg.supports(Blockquote) {
		return w.walkChildren(n)
	}
	prev := w.pushScope(w.cfg.AttributesFor(Blockquote))
	w.tag(BasicMeta(Blockquote))
	err := w.walkChildren(n)
	w.attrs = prev
	if err != nil {
		return err
	}
	if n.NextSibling() != nil {
		w.emit("\n", w.attrs)
	}
	return nil
}

func (w *walker) renderThematicBreak(n ast.Node) {
	if !w.cfg.supports(ThematicBreak) {
		w.emit("\n", w.attrs)
		return
	}
	prev := w.pushScope(w.cfg.AttributesFor(ThematicBreak))
	w.tag(BasicMeta(ThematicBreak))
	w.emit(thematicBreakText, w.attrs)
	w.attrs = prev
	if n.NextSibling() != nil {
		w.emit("\n", w.attrs)
	}
}

// renderRawHTML supports <br> only; other inline HTML degrades to nothing
// with a warning, never an error.
func (w *walker) renderRawHTML(n *ast.RawHTML) {
	var b strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		b.Write(seg.Value(w.source))
	}
	tag := strings.ToLower(strings.TrimSpace(b.String()))
	switch tag {
	case "<br>", "<br/>", "<br />":
		w.emit("\n", w.attrs)
	default:
		w.warn("inline html unsupported, skipped", zap.String("tag", tag))
	}
}
