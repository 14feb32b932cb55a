package mdr

import "testing"

func resultWithRuns(runs ...Run) *Result {
	res := newResult(Attributes{AttrFont: DefaultFont()})
	for _, r := range runs {
		res.append(r.Text, r.Attributes)
	}
	return res
}

func TestNormalizeTrailingNewline(t *testing.T) {
	cases := []struct {
		name string
		in   []Run
		want string
	}{
		{"none", []Run{{Text: "abc"}}, "abc\n"},
		{"one", []Run{{Text: "abc\n"}}, "abc\n"},
		{"many", []Run{{Text: "abc\n\n\n"}}, "abc\n"},
		{"across runs", []Run{{Text: "abc\n"}, {Text: "\n"}, {Text: "\n\n"}}, "abc\n"},
		{"newlines only", []Run{{Text: "\n\n"}}, ""},
	}
	for _, tc := range cases {
		res := resultWithRuns(tc.in...)
		normalizeTrailingNewline(res)
		if got := res.String(); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	res := resultWithRuns(Run{Text: "abc\n\n"})
	normalizeTrailingNewline(res)
	normalizeTrailingNewline(res)
	if got := res.String(); got != "abc\n" {
		t.Fatalf("got %q after double normalization", got)
	}
}

func TestNewlineRunInheritsLastAttributes(t *testing.T) {
	bold := Attributes{AttrFont: Font{Family: "default", Size: 12, Bold: true}}
	res := resultWithRuns(Run{Text: "abc", Attributes: bold})
	normalizeTrailingNewline(res)

	runs := res.Runs()
	if len(runs) != 2 || runs[1].Text != "\n" {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	if f, _ := runs[1].Attributes.Font(); !f.Bold {
		t.Fatalf("appended newline lost preceding attributes: %+v", f)
	}
}

func TestStripTrailingArtifact(t *testing.T) {
	res := resultWithRuns(Run{Text: "abc" + trailingArtifact})
	stripTrailingArtifact(res)
	if got := res.String(); got != "abc" {
		t.Fatalf("got %q, want %q", got, "abc")
	}

	res = resultWithRuns(Run{Text: "abc"}, Run{Text: trailingArtifact})
	stripTrailingArtifact(res)
	if got, n := res.String(), len(res.Runs()); got != "abc" || n != 1 {
		t.Fatalf("got %q in %d runs, want %q in 1", got, n, "abc")
	}
}

func TestTrimResult(t *testing.T) {
	res := resultWithRuns(Run{Text: "  "}, Run{Text: " hello "}, Run{Text: " \n"})
	trimResult(res)
	if got := res.String(); got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestTrimIsIdempotent(t *testing.T) {
	res := resultWithRuns(Run{Text: "  a"}, Run{Text: " b  "}, Run{Text: "\n"})
	trimResult(res)
	first := res.String()
	firstRuns := len(res.Runs())

	trimResult(res)
	if got := res.String(); got != first || got != "a b" {
		t.Fatalf("second trim changed %q to %q", first, got)
	}
	if n := len(res.Runs()); n != firstRuns {
		t.Fatalf("second trim changed run count from %d to %d", firstRuns, n)
	}

	cfg := DefaultConfig()
	cfg.TrimWhitespace = true
	rendered, err := Render([]byte("hello"), cfg)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	before := rendered.String()
	trimResult(rendered)
	if got := rendered.String(); got != before {
		t.Fatalf("trimming a trimmed render changed %q to %q", before, got)
	}
}

func TestTrimResultGraphemeSafe(t *testing.T) {
	// The thumbs-up with skin tone is one grapheme cluster of two code
	// points; trimming must never split it.
	res := resultWithRuns(Run{Text: " \t👍🏽 \n"})
	trimResult(res)
	if got := res.String(); got != "👍🏽" {
		t.Fatalf("got %q, want the intact cluster", got)
	}
}

func TestTrimResultAllWhitespace(t *testing.T) {
	res := resultWithRuns(Run{Text: " \n\t "})
	trimResult(res)

	runs := res.Runs()
	if len(runs) != 1 || runs[0].Text != "" {
		t.Fatalf("expected single empty run, got %+v", runs)
	}
	if f, ok := runs[0].Attributes.Font(); !ok || f != DefaultFont() {
		t.Fatalf("expected base attributes on empty run, got %+v", runs[0].Attributes)
	}
}

func TestSliceRunsDropsOutsideRuns(t *testing.T) {
	res := resultWithRuns(Run{Text: "aa"}, Run{Text: "bb"}, Run{Text: "cc"})
	sliceRuns(res, 1, 5)
	if got := res.String(); got != "abbc" {
		t.Fatalf("got %q, want %q", got, "abbc")
	}
	if n := len(res.Runs()); n != 3 {
		t.Fatalf("expected 3 partial runs, got %d", n)
	}
}
