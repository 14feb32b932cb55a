package mdr

import (
	"errors"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"

	"pkt.systems/mdr/internal/diag"
)

var (
	// ErrDepthExceeded reports input nested beyond the recursion bound.
	ErrDepthExceeded = errors.New("nesting depth exceeded")
	// ErrMalformedLink reports an unparseable link destination in strict mode.
	ErrMalformedLink = errors.New("malformed link destination")
)

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	logger      *zap.Logger
	strictLinks bool
}

// WithLogger routes diagnostics to the given logger. Diagnostics are still
// gated by Config.Diagnostics; without a logger they are discarded.
func WithLogger(l *zap.Logger) RenderOption {
	return func(cfg *renderConfig) {
		cfg.logger = l
	}
}

// WithStrictLinks makes a malformed link destination fail the render with
// ErrMalformedLink. The default renders the link text unlinked and logs a
// warning.
func WithStrictLinks(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.strictLinks = enabled
	}
}

// Render parses source as Markdown and walks the tree into a styled run
// sequence. The only failure modes are invalid input (ErrInvalidUTF8,
// ErrBinaryInput), nesting beyond the recursion bound (ErrDepthExceeded) and,
// in strict mode, ErrMalformedLink; every other condition degrades locally.
//
// cfg is read-only during the pass; concurrent Render calls may share it.
func Render(source []byte, cfg Config, opts ...RenderOption) (*Result, error) {
	if err := ValidateInput(source); err != nil {
		return nil, err
	}
	var rc renderConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&rc)
		}
	}
	var sink *diag.Sink
	if cfg.Diagnostics && rc.logger != nil {
		sink = diag.New(rc.logger)
	} else {
		sink = diag.New(nil)
	}
	defer sink.Close()

	md := goldmark.New(goldmark.WithExtensions(extension.Strikethrough))
	doc := md.Parser().Parse(text.NewReader(source))

	w := newWalker(cfg, source, sink, rc.strictLinks)
	if err := w.walk(doc); err != nil {
		return nil, err
	}
	postProcess(w.out, cfg)
	return w.out, nil
}
