package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/rssfixer"
	"github.com/fwojciec/rssfixer/etree"
	"github.com/fwojciec/rssfixer/fs"
	"github.com/fwojciec/rssfixer/generate"
	"github.com/fwojciec/rssfixer/goquery"
	rsshttp "github.com/fwojciec/rssfixer/http"
	"github.com/fwojciec/rssfixer/rod"
	rssslog "github.com/fwojciec/rssfixer/slog"
	"github.com/fwojciec/rssfixer/sqlite"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorMessage(err))
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Version is printed by --version.
	Version string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Version: version}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	// Help and version flags print and call Exit while parsing; exited
	// records that so the run stops wherever the flag appeared.
	exited := false
	parser, err := kong.New(cli,
		kong.Name("rssfixer"),
		kong.Description("Generate an RSS or Atom feed for a page that doesn't publish one."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { exited = true }),
		kong.Vars{"version": "rssfixer " + m.Version},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && args[0] == "help" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	_, err = parser.Parse(args)
	if exited {
		return nil
	}
	if err != nil {
		return err
	}

	job, err := cli.Job()
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Quiet, cli.Debug)

	fetcher, err := newFetcher(cli)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
		return err
	}
	defer fetcher.Close()

	gen := &generate.Generator{
		Fetcher:    rssslog.NewLoggingFetcher(fetcher, logger),
		Filter:     goquery.NewFilter(),
		Extractors: rssslog.NewLoggingRegistry(goquery.NewDefaultRegistry(), logger),
		Builder:    etree.NewFeedBuilder(),
		Writer:     feedWriter(stdout, logger),
	}

	if cli.History != "" {
		db := sqlite.NewDB(cli.History)
		if err := db.Open(); err != nil {
			return err
		}
		defer db.Close()
		gen.History = rssslog.NewLoggingEntryHistory(sqlite.NewEntryHistory(db), logger)
	}

	if cli.Debug {
		gen.Inspect = func(_ *rssfixer.Job, html string) {
			fmt.Fprintf(stderr, "DEBUG: Filtered HTML\n\n%s\n", html)
		}
	}

	if _, err := gen.Generate(ctx, job); err != nil {
		return err
	}

	if !cli.Quiet && !cli.Stdout {
		fmt.Fprintln(stdout, describe(job))
	}
	return nil
}

// newFetcher returns the headless browser fetcher when rendering was
// requested and the plain HTTP fetcher otherwise.
func newFetcher(cli *CLI) (rssfixer.Fetcher, error) {
	ua := cli.UserAgent
	if ua == "" {
		ua = rsshttp.DefaultUserAgent
	}
	if cli.Render {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout), rod.WithUserAgent(ua))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}
	return rsshttp.NewFetcher(rsshttp.WithTimeout(cli.Timeout), rsshttp.WithUserAgent(ua)), nil
}

// feedWriter writes a job's feed to its output file, or to stdout when the
// job has no output.
func feedWriter(stdout io.Writer, logger *slog.Logger) generate.WriterFunc {
	return func(job *rssfixer.Job) rssfixer.FeedWriter {
		if job.Output == "" {
			return rssslog.NewLoggingFeedWriter(fs.NewStreamWriter(stdout), "stdout", logger)
		}
		w := fs.NewFileWriter(job.Output)
		return rssslog.NewLoggingFeedWriter(w, w.String(), logger)
	}
}

// newLogger logs warnings by default, everything with debug and nothing
// when quiet.
func newLogger(w io.Writer, quiet, debug bool) *slog.Logger {
	if quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// errorMessage returns the message shown to the user for err.
func errorMessage(err error) string {
	var e *rssfixer.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
