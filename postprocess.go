package mdr

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// trailingArtifact is the zero-width object replacement an upstream parser
// can leave at the end of a document.
const trailingArtifact = "​"

// postProcess finalizes a run buffer: strips the trailing zero-width
// artifact, normalizes the trailing newline and, when enabled, trims
// surrounding whitespace on grapheme cluster boundaries.
func postProcess(res *Result, cfg Config) {
	stripTrailingArtifact(res)
	normalizeTrailingNewline(res)
	if cfg.TrimWhitespace {
		trimResult(res)
	}
}

func stripTrailingArtifact(res *Result) {
	last := res.lastRun()
	if last == nil {
		return
	}
	if strings.HasSuffix(last.Text, trailingArtifact) {
		last.Text = strings.TrimSuffix(last.Text, trailingArtifact)
		if last.Text == "" {
			res.runs = res.runs[:len(res.runs)-1]
		}
	}
}

// normalizeTrailingNewline guarantees non-empty output ends in exactly one
// newline, so trailing newlines are neither lost by right-trimming consumers
// nor multiplied by trailing blank lines in the input.
func normalizeTrailingNewline(res *Result) {
	for {
		last := res.lastRun()
		if last == nil {
			return
		}
		trimmed := strings.TrimRight(last.Text, "\n")
		if trimmed == last.Text {
			break
		}
		last.Text = trimmed
		if last.Text == "" {
			res.runs = res.runs[:len(res.runs)-1]
			continue
		}
		break
	}
	last := res.lastRun()
	if last == nil {
		return
	}
	attrs := last.Attributes.Clone()
	res.append("\n", attrs)
}

// trimResult slices the run buffer to the first and last non-whitespace
// grapheme clusters, never splitting a multi-code-point cluster. An
// all-whitespace result collapses to a single empty run carrying the base
// attributes.
func trimResult(res *Result) {
	text := res.String()
	start, end := -1, -1
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if isWhitespaceCluster(g.Str()) {
			continue
		}
		from, to := g.Positions()
		if start < 0 {
			start = from
		}
		end = to
	}
	if start < 0 {
		res.runs = []Run{{Text: "", Attributes: res.base.Clone()}}
		return
	}
	sliceRuns(res, start, end)
}

func isWhitespaceCluster(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// sliceRuns cuts the run sequence to the byte range [start, end) of the
// concatenated text, dropping runs that fall entirely outside it.
func sliceRuns(res *Result, start, end int) {
	var out []Run
	pos := 0
	for _, run := range res.runs {
		runStart, runEnd := pos, pos+len(run.Text)
		pos = runEnd
		if runEnd <= start || runStart >= end {
			continue
		}
		from, to := 0, len(run.Text)
		if runStart < start {
			from = start - runStart
		}
		if runEnd > end {
			to = end - runStart
		}
		run.Text = run.Text[from:to]
		if run.Text != "" {
			out = append(out, run)
		}
	}
	res.runs = out
}
