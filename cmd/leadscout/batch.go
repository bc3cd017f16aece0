package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/passivleads/leadscout"
	"github.com/passivleads/leadscout/bloom"
)

// batchDedupSize is the expected number of distinct websites in a batch,
// used to size the dedup filter.
const batchDedupSize = 100_000

// Run executes the batch command: it reads a CSV of websites, crawls each
// one once, and writes the input back out with emails and pages_scraped
// columns appended.
func (c *BatchCmd) Run(deps *Dependencies) error {
	in, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	reader := csv.NewReader(in)
	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read CSV header: %w", err)
	}

	urlIdx := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), c.URLColumn) {
			urlIdx = i
			break
		}
	}
	if urlIdx < 0 {
		return leadscout.Errorf(leadscout.EINVALID, "Column %q not found in %s.", c.URLColumn, c.Input)
	}

	output := c.Output
	if output == "" {
		output = strings.TrimSuffix(c.Input, ".csv") + "_with_emails.csv"
	}
	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write(append(header, "emails", "pages_scraped")); err != nil {
		return err
	}

	dedup := bloom.NewDedup(batchDedupSize, 0.001)
	var crawled, skipped, failed int

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "  skip malformed row: %s\n", err)
			continue
		}
		if err := deps.Ctx.Err(); err != nil {
			return err
		}

		website := strings.TrimSpace(row[urlIdx])
		switch {
		case website == "":
			row = append(row, "", "")

		case !dedup.Visit(website):
			// Already crawled earlier in this batch.
			skipped++
			row = append(row, "", "0")

		default:
			target := leadscout.NewTarget(website)
			target.MaxPages = c.MaxPages
			target.Timeout = c.Timeout
			target.MaxWorkers = c.Workers

			result, err := deps.Crawler.Crawl(deps.Ctx, target, nil)
			if err != nil {
				failed++
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", website, leadscout.ErrorMessage(err))
				row = append(row, "", "0")
				break
			}
			crawled++
			fmt.Fprintf(deps.Stderr, "  %s: %d emails across %d pages\n",
				website, result.TotalEmails, result.PagesScraped)
			row = append(row, strings.Join(result.Emails, "; "), strconv.Itoa(result.PagesScraped))
		}

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d sites (%d duplicates skipped, %d failed). Results in %s\n",
		crawled, skipped, failed, output)
	return nil
}
