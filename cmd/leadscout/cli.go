package main

import (
	"context"
	"io"
	"time"

	"github.com/passivleads/leadscout"
	"github.com/passivleads/leadscout/crawl"
	"github.com/passivleads/leadscout/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Scans     leadscout.ScanService
	Sitemaps  leadscout.SitemapService
	Directory leadscout.DirectoryService
	Crawler   *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scan      ScanCmd      `cmd:"" help:"Crawl one website for contact emails"`
	Serve     ServeCmd     `cmd:"" help:"Run the HTTP API server"`
	Batch     BatchCmd     `cmd:"" help:"Enrich a CSV of websites with emails"`
	Directory DirectoryCmd `cmd:"" help:"Find businesses in a city via OpenStreetMap"`
	History   HistoryCmd   `cmd:"" help:"List stored scans"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	URL      string        `arg:"" help:"Website to crawl"`
	MaxPages int           `short:"p" default:"50" help:"Maximum pages to visit (1-500)"`
	Timeout  time.Duration `short:"t" default:"10s" help:"Per-page fetch timeout"`
	Workers  int           `short:"w" default:"20" help:"Concurrent fetch limit"`
	Sitemap  bool          `help:"Seed the crawl from the site's sitemaps"`
	RPS      float64       `name:"rps" help:"Per-domain request rate limit (0 disables)"`
	JSON     bool          `help:"Print the result as JSON"`
	Verbose  bool          `short:"v" help:"Print each visited page"`
	NoSave   bool          `help:"Do not record the scan"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":5000" help:"Bind address"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Input     string        `arg:"" help:"Input CSV file"`
	Output    string        `short:"o" help:"Output CSV file (default: <input>_with_emails.csv)"`
	URLColumn string        `default:"url" help:"Name of the column holding website URLs"`
	MaxPages  int           `short:"p" default:"50" help:"Maximum pages per site"`
	Timeout   time.Duration `short:"t" default:"10s" help:"Per-page fetch timeout"`
	Workers   int           `short:"w" default:"20" help:"Concurrent fetch limit per site"`
}

// DirectoryCmd is the "directory" subcommand.
type DirectoryCmd struct {
	City       string   `arg:"" help:"City to search"`
	Categories []string `short:"c" name:"category" help:"Business category (repeatable)"`
	CSV        string   `help:"Write results to a CSV file"`
	JSON       bool     `help:"Print results as JSON"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	BaseURL string `help:"Only scans of this base URL"`
	Limit   int    `default:"20" help:"Maximum scans to list"`
	Emails  bool   `help:"Include the emails of each scan"`
}
