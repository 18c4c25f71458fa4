package amap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/artem13815/places/pkg/geocode"
	"github.com/artem13815/places/pkg/metrics"
)

// Client is a minimal AMap web-service geocoding client.
type Client struct {
	APIKey  string
	BaseURL string
	httpDo  *http.Client
}

func New(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://restapi.amap.com"
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpDo: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type geocodeResponse struct {
	Status   string `json:"status"`
	Info     string `json:"info"`
	Count    string `json:"count"`
	Geocodes []struct {
		FormattedAddress string `json:"formatted_address"`
		// "lng,lat"
		Location string `json:"location"`
	} `json:"geocodes"`
}

// Resolve looks up address and returns its coordinates. An address the
// provider cannot place yields geocode.ErrAddressNotFound; HTTP and decoding
// failures are returned as-is.
func (c *Client) Resolve(ctx context.Context, address string) (geocode.Coordinates, error) {
	if c.APIKey == "" {
		return geocode.Coordinates{}, errors.New("amap api key is empty")
	}
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.APIKey)
	q.Set("output", "JSON")
	endpoint := fmt.Sprintf("%s/v3/geocode/geo?%s", c.BaseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return geocode.Coordinates{}, err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return geocode.Coordinates{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return geocode.Coordinates{}, fmt.Errorf("amap http %d", resp.StatusCode)
	}
	var out geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return geocode.Coordinates{}, fmt.Errorf("decode amap response: %w", err)
	}
	if out.Status != "1" || len(out.Geocodes) == 0 {
		metrics.GeocodeRequests.WithLabelValues("not_found").Inc()
		return geocode.Coordinates{}, geocode.ErrAddressNotFound
	}
	coords, err := parseLocation(out.Geocodes[0].Location)
	if err != nil {
		metrics.GeocodeRequests.WithLabelValues("not_found").Inc()
		return geocode.Coordinates{}, geocode.ErrAddressNotFound
	}
	metrics.GeocodeRequests.WithLabelValues("ok").Inc()
	return coords, nil
}

func parseLocation(s string) (geocode.Coordinates, error) {
	lngStr, latStr, ok := strings.Cut(s, ",")
	if !ok {
		return geocode.Coordinates{}, fmt.Errorf("malformed location %q", s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return geocode.Coordinates{}, err
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return geocode.Coordinates{}, err
	}
	return geocode.Coordinates{Lat: lat, Lng: lng}, nil
}
