// Package overpass implements leadscout.DirectoryService on top of the
// OpenStreetMap Overpass API, with Nominatim for geocoding.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/passivleads/leadscout"
)

// DefaultInterpreterURL is the public Overpass API endpoint.
const DefaultInterpreterURL = "https://overpass-api.de/api/interpreter"

// DefaultNominatimURL is the public Nominatim search endpoint.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// DefaultQueryTimeout is the server-side timeout written into Overpass
// queries, in seconds.
const DefaultQueryTimeout = 30

// userAgent identifies the client to the OSM services, which reject
// anonymous requests.
const userAgent = "PassivLeads/1.0"

// pointOffset is the half-width in degrees of the fallback bounding box
// around a geocoded point, roughly 5km.
const pointOffset = 0.045

// Known values for the OSM tag each category belongs to. Categories not
// listed here fall back to a regex match across the business tags.
var (
	amenityCategories = tagSet("restaurant", "cafe", "bar", "hotel", "bank", "pharmacy",
		"hospital", "school", "university", "library", "cinema",
		"theatre", "fuel", "parking", "post_office", "police",
		"fire_station", "townhall", "courthouse")

	shopCategories = tagSet("supermarket", "bakery", "butcher", "clothes", "shoes",
		"electronics", "furniture", "bookshop", "jewelry", "hairdresser",
		"florist", "car", "bicycle", "hardware", "department_store")

	officeCategories = tagSet("lawyer", "accountant", "insurance", "estate_agent",
		"architect", "consulting", "it", "advertising")

	craftCategories = tagSet("carpenter", "electrician", "plumber", "painter",
		"photographer", "printmaker", "tailor", "blacksmith")
)

func tagSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Compile-time interface verification.
var _ leadscout.DirectoryService = (*DirectoryService)(nil)

// DirectoryService queries OpenStreetMap for business listings.
type DirectoryService struct {
	client         *http.Client
	interpreterURL string
	nominatimURL   string
	queryTimeout   int
}

// Option configures a DirectoryService.
type Option func(*DirectoryService)

// WithInterpreterURL overrides the Overpass endpoint.
func WithInterpreterURL(u string) Option {
	return func(s *DirectoryService) {
		s.interpreterURL = u
	}
}

// WithNominatimURL overrides the Nominatim endpoint.
func WithNominatimURL(u string) Option {
	return func(s *DirectoryService) {
		s.nominatimURL = u
	}
}

// WithQueryTimeout sets the server-side Overpass timeout in seconds.
func WithQueryTimeout(seconds int) Option {
	return func(s *DirectoryService) {
		s.queryTimeout = seconds
	}
}

// NewDirectoryService creates a DirectoryService. If client is nil,
// http.DefaultClient is used.
func NewDirectoryService(client *http.Client, opts ...Option) *DirectoryService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &DirectoryService{
		client:         client,
		interpreterURL: DefaultInterpreterURL,
		nominatimURL:   DefaultNominatimURL,
		queryTimeout:   DefaultQueryTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// nominatimPlace is the subset of a Nominatim search result we read.
type nominatimPlace struct {
	BoundingBox []string `json:"boundingbox"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
}

// Geocode resolves a city name to its bounding box via Nominatim. When
// the result carries no bounding box, a ~5km box around the place's
// center is returned instead.
func (s *DirectoryService) Geocode(ctx context.Context, city string) (leadscout.BoundingBox, error) {
	var box leadscout.BoundingBox

	q := url.Values{}
	q.Set("q", city)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.nominatimURL+"?"+q.Encode(), nil)
	if err != nil {
		return box, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return box, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return box, leadscout.Errorf(leadscout.EUNAVAILABLE, "geocoding %q: HTTP %d", city, resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return box, err
	}
	if len(places) == 0 {
		return box, leadscout.Errorf(leadscout.ENOTFOUND, "City %q could not be geocoded.", city)
	}
	place := places[0]

	// Nominatim bounding box order is min_lat, max_lat, min_lon, max_lon.
	if len(place.BoundingBox) == 4 {
		minLat, err1 := strconv.ParseFloat(place.BoundingBox[0], 64)
		maxLat, err2 := strconv.ParseFloat(place.BoundingBox[1], 64)
		minLon, err3 := strconv.ParseFloat(place.BoundingBox[2], 64)
		maxLon, err4 := strconv.ParseFloat(place.BoundingBox[3], 64)
		if err1 == nil && err2 == nil && err3 == nil && err4 == nil {
			return leadscout.BoundingBox{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon}, nil
		}
	}

	lat, err1 := strconv.ParseFloat(place.Lat, 64)
	lon, err2 := strconv.ParseFloat(place.Lon, 64)
	if err1 != nil || err2 != nil {
		return box, leadscout.Errorf(leadscout.ENOTFOUND, "City %q could not be geocoded.", city)
	}
	return leadscout.BoundingBox{
		MinLat: lat - pointOffset,
		MinLon: lon - pointOffset,
		MaxLat: lat + pointOffset,
		MaxLon: lon + pointOffset,
	}, nil
}

// FindCompanies geocodes the city, queries Overpass for the requested
// categories and returns the named businesses found.
func (s *DirectoryService) FindCompanies(ctx context.Context, city string, categories []string) ([]leadscout.Company, error) {
	box, err := s.Geocode(ctx, city)
	if err != nil {
		return nil, err
	}

	query := buildQuery(box, categories, s.queryTimeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.interpreterURL, strings.NewReader(query))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, leadscout.Errorf(leadscout.EUNAVAILABLE, "overpass query: HTTP %d", resp.StatusCode)
	}

	var payload struct {
		Elements []overpassElement `json:"elements"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	var companies []leadscout.Company
	for _, el := range payload.Elements {
		company, ok := el.company(city)
		if ok {
			companies = append(companies, company)
		}
	}
	return companies, nil
}

// buildQuery assembles an Overpass QL query covering nodes and ways for
// each category within the bounding box.
func buildQuery(box leadscout.BoundingBox, categories []string, timeout int) string {
	bbox := fmt.Sprintf("(%g,%g,%g,%g)", box.MinLat, box.MinLon, box.MaxLat, box.MaxLon)

	var filters strings.Builder
	appendExact := func(tag, value string) {
		fmt.Fprintf(&filters, "node[%q=%q]%s;way[%q=%q]%s;", tag, value, bbox, tag, value, bbox)
	}
	appendFuzzy := func(tag, value string) {
		pattern := ".*" + value + ".*"
		fmt.Fprintf(&filters, "node[%q~%q]%s;way[%q~%q]%s;", tag, pattern, bbox, tag, pattern, bbox)
	}

	for _, category := range categories {
		c := strings.ToLower(strings.TrimSpace(category))
		switch {
		case has(amenityCategories, c):
			appendExact("amenity", c)
		case has(shopCategories, c):
			appendExact("shop", c)
		case has(officeCategories, c):
			appendExact("office", c)
		case has(craftCategories, c):
			appendExact("craft", c)
		default:
			appendFuzzy("amenity", c)
			appendFuzzy("shop", c)
			appendFuzzy("office", c)
		}
	}

	// With no categories, match anything carrying a business tag.
	if filters.Len() == 0 {
		for _, tag := range []string{"amenity", "shop", "office"} {
			fmt.Fprintf(&filters, "node[%q]%s;way[%q]%s;", tag, bbox, tag, bbox)
		}
	}

	return fmt.Sprintf("[out:json][timeout:%d];\n(\n%s\n);\nout body;\n>;\nout skel qt;", timeout, filters.String())
}

func has(set map[string]struct{}, v string) bool {
	_, ok := set[v]
	return ok
}

// overpassElement is a node or way in an Overpass JSON response.
type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// company converts the element into a Company. Unnamed elements and
// non-node, non-way types are skipped.
func (el overpassElement) company(city string) (leadscout.Company, bool) {
	if el.Type != "node" && el.Type != "way" {
		return leadscout.Company{}, false
	}
	name := el.Tags["name"]
	if name == "" {
		return leadscout.Company{}, false
	}

	tag := func(keys ...string) string {
		for _, key := range keys {
			if v := el.Tags[key]; v != "" {
				return v
			}
		}
		return ""
	}

	company := leadscout.Company{
		Name:         name,
		Category:     tag("amenity", "shop", "office", "craft"),
		Street:       el.Tags["addr:street"],
		HouseNumber:  el.Tags["addr:housenumber"],
		Postcode:     el.Tags["addr:postcode"],
		City:         tag("addr:city"),
		Phone:        tag("phone", "contact:phone"),
		Website:      tag("website", "contact:website"),
		Email:        tag("email", "contact:email"),
		OpeningHours: el.Tags["opening_hours"],
		Lat:          el.Lat,
		Lon:          el.Lon,
		SourceID:     el.ID,
		SourceType:   el.Type,
	}
	if company.City == "" {
		company.City = city
	}
	if el.Type == "way" && el.Center != nil {
		company.Lat = el.Center.Lat
		company.Lon = el.Center.Lon
	}
	return company, true
}
