package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"
	"pkt.systems/mdr"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/mdr")
}

func main() {
	var (
		widthFlag   int
		osc8Flag    string
		outPath     string
		trim        bool
		plain       bool
		strictLinks bool
		verbose     bool
		dumpRuns    bool
	)

	flags := pflag.NewFlagSet("mdr", pflag.ExitOnError)
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available)")
	flags.StringVarP(&osc8Flag, "osc8", "8", "auto", "OSC8 hyperlinks: auto|on|off")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVar(&trim, "trim", false, "Trim leading/trailing whitespace from the result")
	flags.BoolVarP(&plain, "plain", "b", false, "Generate plain text without ANSI styling")
	flags.BoolVar(&strictLinks, "strict-links", false, "Fail on malformed link destinations")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log warning diagnostics to stderr")
	flags.BoolVar(&dumpRuns, "dump-runs", false, "Dump runs with element metadata instead of rendering")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mdr [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	source, err := readInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	cfg := mdr.DefaultConfig()
	cfg.TrimWhitespace = trim
	cfg.AttachMetadata = dumpRuns

	opts := []mdr.RenderOption{mdr.WithStrictLinks(strictLinks)}
	if verbose {
		cfg.Diagnostics = true
		logger, lerr := zap.NewDevelopment()
		if lerr == nil {
			defer func() { _ = logger.Sync() }()
			opts = append(opts, mdr.WithLogger(logger))
		}
	}

	res, err := mdr.Render(source, cfg, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}

	if dumpRuns {
		dump(writer, res)
		return
	}
	if plain {
		if _, err := io.WriteString(writer, res.String()); err != nil {
			fmt.Fprintf(os.Stderr, "write: %v\n", err)
			os.Exit(1)
		}
		return
	}

	osc8, err := resolveOSC8(osc8Flag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --osc8 %q: %v\n", osc8Flag, err)
		os.Exit(2)
	}
	aw := mdr.NewANSIWriter(writer,
		mdr.WithWrapWidth(resolveWidth(widthFlag)),
		mdr.WithHyperlinks(osc8),
	)
	if err := aw.WriteResult(res); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
}

func dump(w io.Writer, res *mdr.Result) {
	for i, run := range res.Runs() {
		fmt.Fprintf(w, "%d: %q", i, run.Text)
		if set, ok := run.Attributes.Metadata(); ok {
			kinds := make([]mdr.Construct, 0, len(set))
			for kind := range set {
				kinds = append(kinds, kind)
			}
			sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
			for _, kind := range kinds {
				meta := set[kind]
				switch kind {
				case mdr.Heading:
					fmt.Fprintf(w, " %s(level=%d)", kind, meta.Level)
				case mdr.Link:
					fmt.Fprintf(w, " %s(url=%s)", kind, meta.URL)
				case mdr.ListItem:
					fmt.Fprintf(w, " %s(depth=%d index=%d ordinal=%d)",
						kind, meta.List.Depth, meta.List.Index, meta.List.Ordinal)
				default:
					fmt.Fprintf(w, " %s", kind)
				}
			}
		}
		fmt.Fprintln(w)
	}
}

func readInputs(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	var buf []byte
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		buf = append(buf, data...)
	}
	return buf, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if path == "" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return mdr.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}
