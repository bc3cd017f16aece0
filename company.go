package leadscout

import (
	"context"
	"strings"
)

// Company is a business listing from a directory source. Website, when
// present, is a candidate base URL for an email crawl.
type Company struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Street       string  `json:"street"`
	HouseNumber  string  `json:"housenumber"`
	Postcode     string  `json:"postcode"`
	City         string  `json:"city"`
	Phone        string  `json:"phone"`
	Website      string  `json:"website"`
	Email        string  `json:"email"`
	OpeningHours string  `json:"openingHours"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	SourceID     int64   `json:"sourceId"`
	SourceType   string  `json:"sourceType"`
}

// FullAddress joins the available address parts.
func (c Company) FullAddress() string {
	var parts []string
	for _, p := range []string{c.HouseNumber, c.Street, c.Postcode, c.City} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// BoundingBox is a geographic area in decimal degrees.
type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// DirectoryService finds companies in a city from a business directory.
type DirectoryService interface {
	// Geocode resolves a city name to its bounding box.
	// Returns ENOTFOUND if the city cannot be resolved.
	Geocode(ctx context.Context, city string) (BoundingBox, error)

	// FindCompanies returns named companies of the given categories within
	// the city. An empty categories list matches all business tags.
	FindCompanies(ctx context.Context, city string, categories []string) ([]Company, error)
}
