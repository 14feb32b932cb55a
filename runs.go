package mdr

import "strings"

// Run is a contiguous text fragment sharing one fully resolved attribute set.
type Run struct {
	Text       string
	Attributes Attributes
}

// Result is the ordered run sequence produced by one render: equivalently, a
// single concatenated text plus a per-offset attribute lookup.
type Result struct {
	runs []Run
	base Attributes
}

func newResult(base Attributes) *Result {
	return &Result{base: base}
}

// Runs returns the run sequence. The returned slice and its attribute sets
// are owned by the Result and must be treated as read-only.
func (r *Result) Runs() []Run {
	return r.runs
}

// String returns the concatenated text of all runs.
func (r *Result) String() string {
	var b strings.Builder
	for _, run := range r.runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

// Len returns the total text length in bytes.
func (r *Result) Len() int {
	n := 0
	for _, run := range r.runs {
		n += len(run.Text)
	}
	return n
}

// Empty reports whether no text was emitted.
func (r *Result) Empty() bool {
	return r.Len() == 0
}

// AttributesAt returns the effective attributes at byte offset off in the
// concatenated text, or the base attributes when off is out of range.
func (r *Result) AttributesAt(off int) Attributes {
	if off >= 0 {
		pos := 0
		for _, run := range r.runs {
			if off < pos+len(run.Text) {
				return run.Attributes
			}
			pos += len(run.Text)
		}
	}
	return r.base
}

func (r *Result) append(text string, attrs Attributes) {
	if text == "" {
		return
	}
	r.runs = append(r.runs, Run{Text: text, Attributes: attrs})
}

func (r *Result) lastRun() *Run {
	if len(r.runs) == 0 {
		return nil
	}
	return &r.runs[len(r.runs)-1]
}
