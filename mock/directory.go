package mock

import (
	"context"

	"github.com/passivleads/leadscout"
)

var _ leadscout.DirectoryService = (*DirectoryService)(nil)

// DirectoryService is a mock implementation of leadscout.DirectoryService.
type DirectoryService struct {
	GeocodeFn       func(ctx context.Context, city string) (leadscout.BoundingBox, error)
	FindCompaniesFn func(ctx context.Context, city string, categories []string) ([]leadscout.Company, error)
}

func (d *DirectoryService) Geocode(ctx context.Context, city string) (leadscout.BoundingBox, error) {
	return d.GeocodeFn(ctx, city)
}

func (d *DirectoryService) FindCompanies(ctx context.Context, city string, categories []string) ([]leadscout.Company, error) {
	return d.FindCompaniesFn(ctx, city, categories)
}
