package shade

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"net/http"
	"time"

	"github.com/matteosandrin/shady-directions/geo"
	"github.com/matteosandrin/shady-directions/routing"
)

// Provider produces a shadow raster for a bounding box at a point in
// time. Implementations are free to compute or fetch the raster; callers
// only rely on the returned Field.
type Provider interface {
	FetchField(ctx context.Context, bounds geo.BoundingBox, at time.Time) (*Field, error)
}

// HTTPProvider fetches a pre-rendered shadow raster (PNG) from a shade
// map service.
type HTTPProvider struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPProvider returns a provider pointed at the given base URL.
func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchField requests the shadow raster covering bounds at the given
// time. Any network, status, or decode failure is reported as a
// *routing.ProviderError; callers may degrade to an unshaded graph.
func (p *HTTPProvider) FetchField(ctx context.Context, bounds geo.BoundingBox, at time.Time) (*Field, error) {
	url := fmt.Sprintf("%s/shadow?west=%f&east=%f&north=%f&south=%f&time=%d",
		p.BaseURL, bounds.West, bounds.East, bounds.North, bounds.South, at.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &routing.ProviderError{Provider: "shade", Err: err}
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, &routing.ProviderError{Provider: "shade", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &routing.ProviderError{
			Provider:   "shade",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	img, err := png.Decode(resp.Body)
	if err != nil {
		return nil, &routing.ProviderError{Provider: "shade", Err: fmt.Errorf("decoding raster: %w", err)}
	}

	return FieldFromImage(img, bounds), nil
}

// FieldFromImage converts a decoded raster into a Field covering bounds.
func FieldFromImage(img image.Image, bounds geo.BoundingBox) *Field {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	return &Field{
		Bounds: bounds,
		Pix:    rgba.Pix,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
}
