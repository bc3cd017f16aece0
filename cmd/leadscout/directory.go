package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/passivleads/leadscout"
)

// Run executes the directory command.
func (c *DirectoryCmd) Run(deps *Dependencies) error {
	companies, err := deps.Directory.FindCompanies(deps.Ctx, c.City, c.Categories)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", leadscout.ErrorMessage(err))
		return err
	}

	if c.CSV != "" {
		if err := writeCompaniesCSV(c.CSV, companies); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %d companies to %s\n", len(companies), c.CSV)
		return nil
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(companies)
	}

	if len(companies) == 0 {
		fmt.Fprintf(deps.Stdout, "No companies found in %s.\n", c.City)
		return nil
	}
	for _, company := range companies {
		line := company.Name
		if company.Category != "" {
			line += " [" + company.Category + "]"
		}
		if addr := company.FullAddress(); addr != "" {
			line += " - " + addr
		}
		if company.Website != "" {
			line += " - " + company.Website
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	fmt.Fprintf(deps.Stdout, "%d companies found.\n", len(companies))

	return nil
}

// writeCompaniesCSV writes companies in a layout the batch command can
// consume directly via --url-column=website.
func writeCompaniesCSV(path string, companies []leadscout.Company) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"name", "category", "address", "phone", "website", "email", "opening_hours", "lat", "lon"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, c := range companies {
		row := []string{
			c.Name,
			c.Category,
			c.FullAddress(),
			c.Phone,
			c.Website,
			c.Email,
			c.OpeningHours,
			strconv.FormatFloat(c.Lat, 'f', -1, 64),
			strconv.FormatFloat(c.Lon, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
