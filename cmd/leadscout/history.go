package main

import (
	"fmt"
	"time"

	"github.com/passivleads/leadscout"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := leadscout.ScanFilter{Limit: c.Limit}
	if c.BaseURL != "" {
		filter.BaseURL = &c.BaseURL
	}

	scans, err := deps.Scans.FindScans(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	if len(scans) == 0 {
		fmt.Fprintln(deps.Stdout, "No scans recorded. Use 'leadscout scan' to create one.")
		return nil
	}

	for _, scan := range scans {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d pages  %d emails\n",
			scan.ID, scan.CreatedAt.Format(time.RFC3339), scan.BaseURL,
			scan.PagesScraped, scan.TotalEmails)
		if c.Emails {
			for _, email := range scan.Emails {
				fmt.Fprintf(deps.Stdout, "    %s\n", email)
			}
		}
	}

	return nil
}
