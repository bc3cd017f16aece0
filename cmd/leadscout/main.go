package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/passivleads/leadscout"
	"github.com/passivleads/leadscout/crawl"
	"github.com/passivleads/leadscout/goquery"
	leadhttp "github.com/passivleads/leadscout/http"
	"github.com/passivleads/leadscout/overpass"
	leadslog "github.com/passivleads/leadscout/slog"
	"github.com/passivleads/leadscout/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Scan history service, exposed for end-to-end testing.
	ScanService leadscout.ScanService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
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
		kong.Name("leadscout"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'leadscout --help' to see available commands")
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

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set LEADSCOUT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ScanService = sqlite.NewScanService(m.DB)
	deps.DB = m.DB
	deps.Scans = m.ScanService
	deps.Sitemaps = leadhttp.NewSitemapService(nil)
	deps.Directory = overpass.NewDirectoryService(nil)

	// Per-page deadlines come from the crawl target, so the fetcher's own
	// client timeout is disabled.
	var fetcher leadscout.Fetcher = leadhttp.NewFetcher(leadhttp.WithTimeout(0))
	defer fetcher.Close()

	// The server and verbose scans log every fetch and sitemap lookup.
	logger := slog.New(slog.NewTextHandler(stderr, nil))
	if cmd == "serve" || (cmd == "scan" && cli.Scan.Verbose) {
		fetcher = leadslog.NewLoggingFetcher(fetcher, logger)
		deps.Sitemaps = leadslog.NewLoggingSitemapService(deps.Sitemaps, logger)
	}

	deps.Crawler = &crawl.Crawler{
		Fetcher: fetcher,
		Parser:  goquery.NewParser(),
		Emails:  goquery.NewEmailExtractor(),
		Links:   goquery.NewLinkExtractor(),
	}

	if cmd == "scan" {
		if cli.Scan.Sitemap {
			deps.Crawler.Sitemaps = deps.Sitemaps
		}
		if cli.Scan.RPS > 0 {
			deps.Crawler.RateLimiter = crawl.NewDomainLimiter(cli.Scan.RPS, cli.Scan.Workers)
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("LEADSCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "leadscout.db"
	}
	dir := filepath.Join(home, ".leadscout")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "leadscout.db")
}
