package config

import (
	"os"
	"strconv"
)

// Config holds all configuration for the route server.
type Config struct {
	// Port the HTTP server listens on.
	Port string

	// OverpassURL is the topology provider endpoint.
	OverpassURL string

	// ShadeMapURL is the shade raster provider endpoint. Empty disables
	// shade fetching entirely (all routes are costed by time alone).
	ShadeMapURL string

	// BBoxPaddingMeters pads the bounding box derived from the query
	// endpoints before fetching topology.
	BBoxPaddingMeters float64

	// ShadeSamples is the per-edge shade sample count for graph building.
	ShadeSamples int

	// GraphCacheDir enables the on-disk topology cache when non-empty.
	GraphCacheDir string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		OverpassURL:       getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		ShadeMapURL:       getEnv("SHADEMAP_URL", ""),
		BBoxPaddingMeters: float64(getEnvInt("BBOX_PADDING_METERS", 500)),
		ShadeSamples:      getEnvInt("SHADE_SAMPLES", 10),
		GraphCacheDir:     getEnv("GRAPH_CACHE_DIR", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
