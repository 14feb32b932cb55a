package mdr

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/reflow/ansi"
)

const (
	ansiReset = "\x1b[0m"
	osc8Start = "\x1b]8;;"
	osc8End   = "\x1b]8;;\x1b\\"
)

// DetectOSC8Support reports whether the current environment likely renders
// OSC 8 hyperlinks. Setting OSC8=0 forces it off.
func DetectOSC8Support() bool {
	if os.Getenv("OSC8") == "0" {
		return false
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "vscode":
		return true
	}
	for _, name := range []string{"DOMTERM", "WT_SESSION"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	if strings.Contains(strings.ToLower(os.Getenv("TERM")), "kitty") {
		return true
	}
	// Recent VTE-based terminals (GNOME Terminal and friends).
	if n, err := strconv.Atoi(os.Getenv("VTE_VERSION")); err == nil && n >= 5000 {
		return true
	}
	return false
}

// ANSIOption configures an ANSIWriter.
type ANSIOption func(*ansiConfig)

type ansiConfig struct {
	width int
	osc8  bool
}

// WithWrapWidth enables hard wrapping at the given column width. Zero
// disables wrapping.
func WithWrapWidth(width int) ANSIOption {
	return func(cfg *ansiConfig) {
		cfg.width = width
	}
}

// WithHyperlinks enables OSC 8 hyperlinks for runs carrying a link target.
func WithHyperlinks(enabled bool) ANSIOption {
	return func(cfg *ansiConfig) {
		cfg.osc8 = enabled
	}
}

// ANSIWriter realizes a run sequence as ANSI-styled terminal output. Bold,
// italic, underline and strikethrough come from the run attributes; colors
// are emitted verbatim as SGR parameters.
type ANSIWriter struct {
	w         io.Writer
	width     int
	osc8      bool
	style     string
	link      string
	lineWidth int
	pending   string
}

// NewANSIWriter creates a writer targeting w.
func NewANSIWriter(w io.Writer, opts ...ANSIOption) *ANSIWriter {
	cfg := ansiConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &ANSIWriter{w: w, width: cfg.width, osc8: cfg.osc8}
}

// WriteResult writes every run of res, then resets style and link state.
func (a *ANSIWriter) WriteResult(res *Result) error {
	for _, run := range res.Runs() {
		if err := a.writeRun(run); err != nil {
			return err
		}
	}
	return a.flush()
}

func (a *ANSIWriter) writeRun(run Run) error {
	target, _ := run.Attributes.Link()
	if err := a.setLink(target); err != nil {
		return err
	}
	style := sgrFor(run.Attributes)
	isLink := target != ""
	text := run.Text
	for text != "" {
		if text[0] == '\n' {
			if err := a.newline(); err != nil {
				return err
			}
			text = text[1:]
			continue
		}
		if text[0] == ' ' {
			a.pending += " "
			text = text[1:]
			continue
		}
		cut := strings.IndexAny(text, " \n")
		if cut == -1 {
			cut = len(text)
		}
		word := text[:cut]
		text = text[cut:]
		if err := a.writeWord(word, style, isLink); err != nil {
			return err
		}
	}
	return nil
}

func (a *ANSIWriter) writeWord(word, style string, isLink bool) error {
	wordWidth := ansi.PrintableRuneWidth(word)
	spaceWidth := ansi.PrintableRuneWidth(a.pending)
	if a.width > 0 && a.lineWidth > 0 && a.lineWidth+spaceWidth+wordWidth > a.width {
		// Wrap instead of flushing the pending spaces.
		if err := a.newline(); err != nil {
			return err
		}
	} else if a.pending != "" {
		if err := a.emit(a.pending, ""); err != nil {
			return err
		}
		a.lineWidth += spaceWidth
	}
	a.pending = ""
	if a.width > 0 && wordWidth > a.width && isLink {
		word = fitURL(word, a.width)
		wordWidth = ansi.PrintableRuneWidth(word)
	}
	if err := a.emit(word, style); err != nil {
		return err
	}
	a.lineWidth += wordWidth
	return nil
}

func (a *ANSIWriter) newline() error {
	a.pending = ""
	if a.style != "" {
		if _, err := io.WriteString(a.w, ansiReset); err != nil {
			return err
		}
		a.style = ""
	}
	_, err := io.WriteString(a.w, "\n")
	a.lineWidth = 0
	return err
}

func (a *ANSIWriter) emit(text, style string) error {
	if text == "" {
		return nil
	}
	if style != a.style {
		if a.style != "" {
			if _, err := io.WriteString(a.w, ansiReset); err != nil {
				return err
			}
		}
		a.style = style
		if a.style != "" {
			if _, err := io.WriteString(a.w, a.style); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(a.w, text)
	return err
}

func (a *ANSIWriter) setLink(target string) error {
	if !a.osc8 || target == a.link {
		return nil
	}
	if a.link != "" {
		if _, err := io.WriteString(a.w, osc8End); err != nil {
			return err
		}
	}
	a.link = target
	if target != "" {
		if _, err := io.WriteString(a.w, osc8Start+target+"\x1b\\"); err != nil {
			return err
		}
	}
	return nil
}

func (a *ANSIWriter) flush() error {
	if a.pending != "" {
		if err := a.emit(a.pending, ""); err != nil {
			return err
		}
		a.pending = ""
	}
	if err := a.setLink(""); err != nil {
		return err
	}
	if a.style != "" {
		a.style = ""
		if _, err := io.WriteString(a.w, ansiReset); err != nil {
			return err
		}
	}
	return nil
}

// sgrFor builds the SGR escape for an attribute set, or "" for plain text.
func sgrFor(attrs Attributes) string {
	var codes []string
	if f, ok := attrs.Font(); ok {
		if f.Bold {
			codes = append(codes, "1")
		}
		if f.Italic {
			codes = append(codes, "3")
		}
	}
	if ls, ok := attrs[AttrUnderline].(LineStyle); ok && ls != LineNone {
		codes = append(codes, "4")
	}
	if ls, ok := attrs[AttrStrike].(LineStyle); ok && ls != LineNone {
		codes = append(codes, "9")
	}
	if c, ok := attrs[AttrForeground].(Color); ok && c != "" {
		codes = append(codes, string(c))
	}
	if c, ok := attrs[AttrBackground].(Color); ok && c != "" {
		codes = append(codes, string(c))
	}
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func truncateWithEllipsis(text string, limit int) string {
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	if limit == 1 {
		return "…"
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}

// fitURL shortens an overlong link word, preferring to drop the scheme
// before truncating with an ellipsis.
func fitURL(url string, limit int) string {
	if ansi.PrintableRuneWidth(url) <= limit {
		return url
	}
	if idx := strings.Index(url, "://"); idx != -1 {
		trimmed := url[idx+3:]
		if ansi.PrintableRuneWidth(trimmed) <= limit {
			return trimmed
		}
	}
	return truncateWithEllipsis(url, limit)
}
