package mock

import (
	"context"

	"github.com/passivleads/leadscout"
)

var _ leadscout.ScanService = (*ScanService)(nil)

// ScanService is a mock implementation of leadscout.ScanService.
type ScanService struct {
	CreateScanFn   func(ctx context.Context, scan *leadscout.Scan) error
	FindScanByIDFn func(ctx context.Context, id string) (*leadscout.Scan, error)
	FindScansFn    func(ctx context.Context, filter leadscout.ScanFilter) ([]*leadscout.Scan, error)
}

func (s *ScanService) CreateScan(ctx context.Context, scan *leadscout.Scan) error {
	return s.CreateScanFn(ctx, scan)
}

func (s *ScanService) FindScanByID(ctx context.Context, id string) (*leadscout.Scan, error) {
	return s.FindScanByIDFn(ctx, id)
}

func (s *ScanService) FindScans(ctx context.Context, filter leadscout.ScanFilter) ([]*leadscout.Scan, error) {
	return s.FindScansFn(ctx, filter)
}
