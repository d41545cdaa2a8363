// Package geocode resolves a city and country to coordinates using an
// OpenStreetMap Nominatim compatible search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultEndpoint  = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "ptolemy/1.0"
	DefaultTimeout   = 10 * time.Second
	DefaultLimit     = 5
)

// ErrNotFound is returned when the search has no results
var ErrNotFound = errors.New("location not found")

// Location is one search result
type Location struct {
	DisplayName string  `json:"display_name" msgpack:"display_name"`
	Latitude    float64 `json:"latitude" msgpack:"latitude"`
	Longitude   float64 `json:"longitude" msgpack:"longitude"`
	Type        string  `json:"type,omitempty" msgpack:"type,omitempty"`
	Importance  float64 `json:"importance,omitempty" msgpack:"importance,omitempty"`
}

func (l Location) String() string {
	return fmt.Sprintf("%s (%.4f, %.4f)", l.DisplayName, l.Latitude, l.Longitude)
}

// Config holds the client settings. Zero values take the package defaults.
type Config struct {
	Endpoint  string
	UserAgent string
	Timeout   time.Duration
	Limit     int
}

// Client queries the search endpoint
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

// nominatimPlace is the subset of the jsonv2 result we read. Coordinates
// arrive as strings.
type nominatimPlace struct {
	PlaceID     int64   `json:"place_id"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
}

// NewClient creates a client, filling in defaults
func NewClient(cfg Config, logger *zap.SugaredLogger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Lookup searches for "city, country" and returns the matches in the
// endpoint's ranking order. It returns ErrNotFound when nothing matches.
func (c *Client) Lookup(ctx context.Context, city, country string) ([]Location, error) {
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)
	if city == "" {
		return nil, fmt.Errorf("city is required")
	}

	query := city
	if country != "" {
		query = city + ", " + country
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", strconv.Itoa(c.config.Limit))
	params.Set("accept-language", "en")
	reqURL := c.config.Endpoint + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debugf("geocoding %q via %s", query, c.config.Endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach geocoder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code from geocoder: %d", resp.StatusCode)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("%s: %w", query, ErrNotFound)
	}

	locations := make([]Location, 0, len(places))
	for _, p := range places {
		lat, err := strconv.ParseFloat(p.Lat, 64)
		if err != nil {
			c.logger.Warnf("skipping place %d with bad latitude %q", p.PlaceID, p.Lat)
			continue
		}
		lon, err := strconv.ParseFloat(p.Lon, 64)
		if err != nil {
			c.logger.Warnf("skipping place %d with bad longitude %q", p.PlaceID, p.Lon)
			continue
		}
		locations = append(locations, Location{
			DisplayName: p.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
			Type:        p.Type,
			Importance:  p.Importance,
		})
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("%s: %w", query, ErrNotFound)
	}

	c.logger.Debugf("geocoder returned %d matches for %q", len(locations), query)
	return locations, nil
}
