package shade

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matteosandrin/shady-directions/routing"
)

func encodeTestPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestHTTPProviderFetchField(t *testing.T) {
	raster := encodeTestPNG(t, 8, 6, color.RGBA{A: 255}) // all dark

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shadow", r.URL.Path)
		assert.NotEmpty(t, r.URL.Query().Get("west"))
		assert.NotEmpty(t, r.URL.Query().Get("time"))
		w.Write(raster)
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL)
	field, err := provider.FetchField(context.Background(), testBounds, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 8, field.Width)
	assert.Equal(t, 6, field.Height)
	assert.Equal(t, testBounds, field.Bounds)

	shaded, ok := field.SampleAt(41.05, 2.05)
	require.True(t, ok)
	assert.True(t, shaded)
}

func TestHTTPProviderServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL)
	_, err := provider.FetchField(context.Background(), testBounds, time.Now())

	var providerErr *routing.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "shade", providerErr.Provider)
	assert.Equal(t, http.StatusInternalServerError, providerErr.StatusCode)
}

func TestHTTPProviderBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("definitely not a png"))
	}))
	defer server.Close()

	provider := NewHTTPProvider(server.URL)
	_, err := provider.FetchField(context.Background(), testBounds, time.Now())

	var providerErr *routing.ProviderError
	assert.True(t, errors.As(err, &providerErr))
}
