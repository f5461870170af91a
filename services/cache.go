package services

import (
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/matteosandrin/shady-directions/geo"
	"github.com/matteosandrin/shady-directions/routing"
)

// TopologyCache stores fetched street topology as gob files keyed by
// bounding box, so repeated queries over the same area skip the provider
// round trip. Shade fractions are sampled per query, so caching the raw
// topology does not change routing behavior.
type TopologyCache struct {
	dir string
}

// NewTopologyCache returns a cache rooted at dir, creating it if needed.
func NewTopologyCache(dir string) (*TopologyCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create cache directory: %w", err)
	}
	return &TopologyCache{dir: dir}, nil
}

// cacheKey rounds the box to ~10m so nearby queries share an entry.
func (c *TopologyCache) cacheKey(bounds geo.BoundingBox) string {
	return fmt.Sprintf("topology_%.4f_%.4f_%.4f_%.4f.gob",
		bounds.West, bounds.East, bounds.North, bounds.South)
}

// Load returns the cached topology for bounds, or nil on a miss. A
// corrupt entry is treated as a miss.
func (c *TopologyCache) Load(bounds geo.BoundingBox) *routing.Topology {
	path := filepath.Join(c.dir, c.cacheKey(bounds))

	file, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var topology routing.Topology
	if err := gob.NewDecoder(file).Decode(&topology); err != nil {
		log.Printf("Warning: discarding corrupt topology cache entry %s: %v", path, err)
		return nil
	}

	log.Printf("Loaded topology from cache %s: %d nodes, %d ways", path, len(topology.Nodes), len(topology.Ways))
	return &topology
}

// Store writes the topology for bounds. Failures are logged, not fatal.
func (c *TopologyCache) Store(bounds geo.BoundingBox, topology *routing.Topology) {
	path := filepath.Join(c.dir, c.cacheKey(bounds))

	file, err := os.Create(path)
	if err != nil {
		log.Printf("Warning: could not write topology cache entry %s: %v", path, err)
		return
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(topology); err != nil {
		log.Printf("Warning: could not encode topology cache entry %s: %v", path, err)
	}
}
