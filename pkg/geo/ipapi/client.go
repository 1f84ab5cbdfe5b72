// Package ipapi provides a geo.Client implementation backed by the public
// ip-api.com service.
package ipapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"reporter/pkg/domain"
	"reporter/pkg/geo"
	"strings"

	"github.com/goccy/go-json"
)

// DefaultBaseURL is the ip-api.com endpoint used when none is configured.
const DefaultBaseURL = "http://ip-api.com"

// Client talks to the ip-api.com REST API and fulfills the geo.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client // httpClient performs HTTP requests to ip-api.com
	baseURL    string       // baseURL allows overriding the endpoint in tests
}

// Locate queries ip-api.com for the location of the caller's public IP.
// A response with a non-success status field (the service could not resolve
// the address) degrades to domain.UnknownLocation; only transport and decode
// failures are reported as errors.
func (c *Client) Locate(ctx context.Context) (domain.GeoContext, error) {
	// https://ip-api.com/docs/api:json
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json/", nil)
	if err != nil {
		return domain.GeoContext{}, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeoContext{}, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.GeoContext{}, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.GeoContext{}, fmt.Errorf("lookup failed: %s", strings.TrimSpace(string(b)))
	}

	var body struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		City    string  `json:"city"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.Unmarshal(b, &body); err != nil {
		return domain.GeoContext{}, fmt.Errorf("could not decode response: %w", err)
	}
	if body.Status != "success" {
		return domain.UnknownLocation, nil
	}

	return domain.GeoContext{
		City:    body.City,
		Country: body.Country,
		Lat:     body.Lat,
		Lon:     body.Lon,
	}, nil
}

// Ensure Client conforms to the geo.Client interface at compile time.
var _ geo.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client to query
// ip-api.com. An empty baseURL falls back to DefaultBaseURL.
func New(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}
