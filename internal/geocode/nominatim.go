// Package geocode resolves street addresses to coordinates through the OSM
// Nominatim API, for locate mode only; the batch analysis never touches the
// network.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// ErrAddressNotFound is returned when Nominatim has no match for the query.
var ErrAddressNotFound = errors.New("address not found")

// Nominatim is a rate-limited client for the OSM Nominatim search API.
// The public instance's usage policy caps anonymous clients at one request
// per second and requires an identifying User-Agent.
type Nominatim struct {
	baseURL   string
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// NewNominatim builds a client. A nil httpClient falls back to a plain
// client with a 10 s timeout; callers normally pass the instrumented pooled
// client so geocoder latency shows up in the metrics.
func NewNominatim(httpClient *http.Client, userAgent string) *Nominatim {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Nominatim{
		baseURL:   defaultBaseURL,
		client:    httpClient,
		limiter:   rate.NewLimiter(rate.Limit(1), 1),
		userAgent: userAgent,
	}
}

// Geocode resolves an address to latitude/longitude in decimal degrees.
func (n *Nominatim) Geocode(ctx context.Context, address string) (lat, lon float64, err error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return 0, 0, err
	}

	params := url.Values{
		"q":      {address},
		"format": {"json"},
		"limit":  {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/search?%s", n.baseURL, params.Encode()), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create geocode request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, fmt.Errorf("failed to decode geocoder response: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrAddressNotFound, address)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return 0, 0, fmt.Errorf("geocoder returned unparsable coordinates %q/%q", results[0].Lat, results[0].Lon)
	}
	return lat, lon, nil
}
