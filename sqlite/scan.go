package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/passivleads/leadscout"
)

// Compile-time interface verification.
var _ leadscout.ScanService = (*ScanService)(nil)

// ScanService implements leadscout.ScanService using SQLite.
type ScanService struct {
	db *DB
}

// NewScanService creates a new ScanService.
func NewScanService(db *DB) *ScanService {
	return &ScanService{db: db}
}

// CreateScan records a completed crawl. The scan's ID, ResultHash and
// CreatedAt are assigned here.
func (s *ScanService) CreateScan(ctx context.Context, scan *leadscout.Scan) error {
	if err := scan.Validate(); err != nil {
		return err
	}

	scan.ID = uuid.New().String()
	scan.CreatedAt = time.Now().UTC()
	scan.ResultHash = hashEmails(scan.Emails)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO scans (id, base_url, pages_scraped, total_emails, result_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, scan.ID, scan.BaseURL, scan.PagesScraped, scan.TotalEmails, scan.ResultHash,
		scan.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for _, email := range scan.Emails {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO scan_emails (scan_id, email) VALUES (?, ?)
		`, scan.ID, email); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindScanByID retrieves a scan with its emails.
func (s *ScanService) FindScanByID(ctx context.Context, id string) (*leadscout.Scan, error) {
	var scan leadscout.Scan
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, base_url, pages_scraped, total_emails, result_hash, created_at
		FROM scans
		WHERE id = ?
	`, id).Scan(&scan.ID, &scan.BaseURL, &scan.PagesScraped, &scan.TotalEmails,
		&scan.ResultHash, &createdAt)

	if err == sql.ErrNoRows {
		return nil, leadscout.Errorf(leadscout.ENOTFOUND, "Scan not found.")
	}
	if err != nil {
		return nil, err
	}

	scan.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	if scan.Emails, err = s.findScanEmails(ctx, scan.ID); err != nil {
		return nil, err
	}

	return &scan, nil
}

// FindScans retrieves scans matching the filter, newest first.
func (s *ScanService) FindScans(ctx context.Context, filter leadscout.ScanFilter) ([]*leadscout.Scan, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT id, base_url, pages_scraped, total_emails, result_hash, created_at
		FROM scans WHERE 1=1`)

	if filter.BaseURL != nil {
		query.WriteString(" AND base_url = ?")
		args = append(args, *filter.BaseURL)
	}

	query.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []*leadscout.Scan
	for rows.Next() {
		var scan leadscout.Scan
		var createdAt string

		if err := rows.Scan(&scan.ID, &scan.BaseURL, &scan.PagesScraped, &scan.TotalEmails,
			&scan.ResultHash, &createdAt); err != nil {
			return nil, err
		}

		scan.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		scans = append(scans, &scan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, scan := range scans {
		if scan.Emails, err = s.findScanEmails(ctx, scan.ID); err != nil {
			return nil, err
		}
	}

	return scans, nil
}

// findScanEmails returns the sorted emails recorded for a scan.
func (s *ScanService) findScanEmails(ctx context.Context, scanID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT email FROM scan_emails WHERE scan_id = ? ORDER BY email
	`, scanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}

	return emails, rows.Err()
}

// hashEmails produces a stable hash of an email list, independent of
// input order. Two scans of the same site with identical findings share
// the same hash.
func hashEmails(emails []string) string {
	sorted := append([]string(nil), emails...)
	sort.Strings(sorted)

	h := xxhash.New()
	for _, email := range sorted {
		_, _ = h.WriteString(email)
		_, _ = h.WriteString("\n")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
