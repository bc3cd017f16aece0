package leadscout

import (
	"context"
	"time"
)

// Scan is the stored record of a completed crawl.
type Scan struct {
	ID           string    `json:"id"`
	BaseURL      string    `json:"baseUrl"`
	PagesScraped int       `json:"pagesScraped"`
	TotalEmails  int       `json:"totalEmails"`
	Emails       []string  `json:"emails"`
	ResultHash   string    `json:"resultHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate returns an error if the scan contains invalid fields.
func (s *Scan) Validate() error {
	if s.BaseURL == "" {
		return Errorf(EINVALID, "scan base URL required")
	}
	return nil
}

// ScanService represents a service for recording and querying crawl history.
type ScanService interface {
	// CreateScan records a completed crawl.
	CreateScan(ctx context.Context, scan *Scan) error

	// FindScanByID retrieves a scan by ID.
	// Returns ENOTFOUND if the scan does not exist.
	FindScanByID(ctx context.Context, id string) (*Scan, error)

	// FindScans retrieves scans matching the filter, newest first.
	FindScans(ctx context.Context, filter ScanFilter) ([]*Scan, error)
}

// ScanFilter represents a filter for FindScans.
type ScanFilter struct {
	BaseURL *string `json:"baseUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
