// Package osm fetches raw street topology from an Overpass API endpoint.
package osm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matteosandrin/shady-directions/geo"
	"github.com/matteosandrin/shady-directions/routing"
)

// DefaultOverpassURL is the public Overpass API endpoint.
const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

// Client queries an Overpass API server for street topology.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client for the given Overpass endpoint.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type overpassElement struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat"`
	Lon   float64           `json:"lon"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

// FetchTopology downloads all highway ways (and their nodes) within the
// bounding box. Network failures, non-2xx statuses and malformed payloads
// are reported as *routing.ProviderError.
func (c *Client) FetchTopology(ctx context.Context, bounds geo.BoundingBox) (*routing.Topology, error) {
	query := fmt.Sprintf(`[out:json][timeout:30];
(
  way["highway"](%f,%f,%f,%f);
);
out body;
>;
out skel qt;`, bounds.South, bounds.West, bounds.North, bounds.East)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &routing.ProviderError{Provider: "topology", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &routing.ProviderError{Provider: "topology", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &routing.ProviderError{
			Provider:   "topology",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &routing.ProviderError{Provider: "topology", Err: fmt.Errorf("decoding response: %w", err)}
	}

	topology := &routing.Topology{}
	for _, el := range parsed.Elements {
		switch el.Type {
		case "node":
			topology.Nodes = append(topology.Nodes, routing.RawNode{ID: el.ID, Lat: el.Lat, Lon: el.Lon})
		case "way":
			topology.Ways = append(topology.Ways, routing.RawWay{ID: el.ID, NodeIDs: el.Nodes, Tags: el.Tags})
		}
	}

	return topology, nil
}
