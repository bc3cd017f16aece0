package main

import (
	"encoding/json"
	"fmt"

	"github.com/passivleads/leadscout"
	"github.com/passivleads/leadscout/crawl"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	target := leadscout.NewTarget(c.URL)
	target.MaxPages = c.MaxPages
	target.Timeout = c.Timeout
	target.MaxWorkers = c.Workers
	if err := target.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "Crawling %s...\n", event.URL)
		case crawl.ProgressCompleted:
			if c.Verbose {
				fmt.Fprintf(deps.Stderr, "  %s (%d emails)\n", event.URL, event.Emails)
			}
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, target, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	if !c.NoSave {
		scan := &leadscout.Scan{
			BaseURL:      result.BaseURL,
			PagesScraped: result.PagesScraped,
			TotalEmails:  result.TotalEmails,
			Emails:       result.Emails,
		}
		if err := deps.Scans.CreateScan(deps.Ctx, scan); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: could not record scan: %s\n", leadscout.ErrorMessage(err))
		}
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d pages on %s\n", result.PagesScraped, result.BaseURL)
	if len(result.ImportantPages) > 0 {
		fmt.Fprintf(deps.Stdout, "Important pages visited: %d\n", len(result.ImportantPages))
	}
	if result.TotalEmails == 0 {
		fmt.Fprintln(deps.Stdout, "No emails found.")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Found %d emails:\n", result.TotalEmails)
	for _, email := range result.Emails {
		fmt.Fprintf(deps.Stdout, "  %s\n", email)
	}

	return nil
}
