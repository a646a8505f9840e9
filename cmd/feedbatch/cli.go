package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/rssfixer"
	"github.com/fwojciec/rssfixer/generate"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Jobs      []*rssfixer.Job
	Generator *generate.Generator
	History   rssfixer.EntryHistory
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Generate every feed listed in a job file"`
	History HistoryCmd `cmd:"" help:"Show when the entries of a feed were first seen"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	File        string        `arg:"" type:"existingfile" help:"YAML file listing the feeds to generate"`
	Concurrency int           `short:"c" default:"3" help:"Feeds generated at once"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second to any one domain (0 disables the limit)"`
	DB          string        `name:"history" type:"path" help:"SQLite database remembering when entries first appeared"`
	Render      bool          `help:"Render pages in headless Chrome before extraction"`
	Timeout     time.Duration `short:"t" help:"Fetch timeout per page (default: from the job file, else 10s)"`
	UserAgent   string        `name:"user-agent" env:"RSSFIXER_USER_AGENT" help:"User agent sent with every request"`
	Verbose     bool          `short:"v" help:"Log every fetch, extraction and write"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	DB   string `arg:"" type:"existingfile" help:"SQLite history database"`
	Feed string `arg:"" help:"URL of the page the feed was generated from"`
}
