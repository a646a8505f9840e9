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
	"github.com/fwojciec/rssfixer/yaml"
)

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
	// SQLite database holding entry history, when one is used.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("feedbatch"),
		kong.Description("Generate feeds for many pages at once."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'feedbatch --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	switch cmd {
	case "run":
		closeFetcher, err := m.wireRun(deps, &cli.Run)
		if err != nil {
			return err
		}
		defer closeFetcher()
	case "history":
		if err := m.openDB(cli.History.DB); err != nil {
			return err
		}
		deps.History = sqlite.NewEntryHistory(m.DB)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string) error {
	m.DB = sqlite.NewDB(path)
	return m.DB.Open()
}

// wireRun loads the job file and builds the generator. The returned
// function releases the fetcher.
func (m *Main) wireRun(deps *Dependencies, c *RunCmd) (func(), error) {
	file, err := yaml.LoadJobs(c.File)
	if err != nil {
		return nil, err
	}
	deps.Jobs = file.Jobs

	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))

	fetcher, err := newFetcher(c, file)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --render")
		return nil, err
	}

	deps.Generator = &generate.Generator{
		Fetcher:     rssslog.NewLoggingFetcher(fetcher, logger),
		Filter:      goquery.NewFilter(),
		Extractors:  rssslog.NewLoggingRegistry(goquery.NewDefaultRegistry(), logger),
		Builder:     etree.NewFeedBuilder(),
		RateLimiter: generate.NewDomainLimiter(c.RPS),
		Concurrency: c.Concurrency,
		Writer: func(job *rssfixer.Job) rssfixer.FeedWriter {
			w := fs.NewFileWriter(job.Output)
			return rssslog.NewLoggingFeedWriter(w, w.String(), logger)
		},
	}

	if c.DB != "" {
		if err := m.openDB(c.DB); err != nil {
			fetcher.Close()
			return nil, err
		}
		deps.History = rssslog.NewLoggingEntryHistory(sqlite.NewEntryHistory(m.DB), logger)
		deps.Generator.History = deps.History
	}

	return func() { _ = fetcher.Close() }, nil
}

// newFetcher applies the flag, then the job file, then built-in defaults.
func newFetcher(c *RunCmd, file *yaml.File) (rssfixer.Fetcher, error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = file.Timeout
	}
	if timeout == 0 {
		timeout = rsshttp.DefaultFetchTimeout
	}
	ua := c.UserAgent
	if ua == "" {
		ua = file.UserAgent
	}
	if ua == "" {
		ua = rsshttp.DefaultUserAgent
	}

	if c.Render {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(timeout), rod.WithUserAgent(ua))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return f, nil
	}
	return rsshttp.NewFetcher(rsshttp.WithTimeout(timeout), rsshttp.WithUserAgent(ua)), nil
}

// errorMessage returns the message shown to the user for err.
func errorMessage(err error) string {
	var e *rssfixer.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
