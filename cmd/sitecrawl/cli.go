package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Dependencies holds the services and configuration shared by every
// command.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Minimum log level (${enum})"`
	LogJSON  bool   `name:"log-json" help:"Write logs as JSON"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl a site section and extract the text of every page"`
	URLs    URLsCmd    `cmd:"" name:"urls" help:"Crawl a site section and record the reachable URLs"`
	Extract ExtractCmd `cmd:"" help:"Extract the text of every URL in a list"`
}

// FetchFlags configure fetching and persistence in every mode.
type FetchFlags struct {
	Output    string        `short:"o" default:"./data" help:"Directory for output artifacts"`
	Timeout   time.Duration `default:"15s" help:"Per-request timeout"`
	UserAgent string        `name:"user-agent" help:"User-Agent header (default: desktop browser)"`
	Robots    bool          `help:"Skip URLs disallowed by robots.txt"`
	Metrics   string        `help:"Write Prometheus metrics to this textfile after the run"`
}

// ExtractFlags configure text extraction.
type ExtractFlags struct {
	Extractor string `default:"heuristic" enum:"heuristic,trafilatura,readability" help:"Extraction engine (${enum})"`
	Format    string `default:"text" enum:"text,markdown" help:"Page text format (${enum})"`
	Filters   string `help:"YAML file overriding the built-in boilerplate filters"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL     string  `name:"url" short:"u" default:"https://www.angelone.in/support" help:"Seed URL; only pages under its path are crawled"`
	Depth   int     `short:"d" default:"5" help:"Maximum link depth from the seed"`
	Delay   float64 `default:"1.5" help:"Seconds to wait between requests"`
	Queries string  `default:"collapse" enum:"keep,collapse,strip" help:"Query string policy (${enum})"`

	FetchFlags   `embed:""`
	ExtractFlags `embed:""`
}

// URLsCmd is the "urls" subcommand.
type URLsCmd struct {
	URL     string  `name:"url" short:"u" default:"https://www.angelone.in/support" help:"Seed URL; only pages under its path are crawled"`
	Depth   int     `short:"d" default:"5" help:"Maximum link depth from the seed"`
	Delay   float64 `default:"1.5" help:"Seconds to wait between requests"`
	Queries string  `default:"collapse" enum:"keep,collapse,strip" help:"Query string policy (${enum})"`

	FetchFlags `embed:""`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLsFile string  `name:"urls-file" default:"./data/extracted_urls.txt" help:"Newline-delimited list of URLs to extract"`
	Delay    float64 `default:"1.0" help:"Seconds to wait between requests"`

	FetchFlags   `embed:""`
	ExtractFlags `embed:""`
}
