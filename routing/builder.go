package routing

import (
	"context"
	"log"

	"github.com/matteosandrin/shady-directions/geo"
)

// walkableHighways is the allow-list of highway tag values that produce
// pedestrian-traversable edges.
var walkableHighways = map[string]bool{
	"footway":        true,
	"path":           true,
	"pedestrian":     true,
	"steps":          true,
	"cycleway":       true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
	"track":          true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
}

// ctxCheckInterval is how many ways are processed between cancellation
// checks during a build.
const ctxCheckInterval = 100

// ShadeSampler reports whether a geographic point is shaded. ok is false
// when the point is outside the sampled area.
type ShadeSampler interface {
	SampleAt(lat, lon float64) (shaded, ok bool)
}

// BuilderOptions controls graph construction.
type BuilderOptions struct {
	// ShadeSamples is the number of intervals sampled along each edge
	// when a shade sampler is supplied. Clamped to [5, 20].
	ShadeSamples int
}

// DefaultBuilderOptions returns the standard build configuration.
func DefaultBuilderOptions() BuilderOptions {
	return BuilderOptions{ShadeSamples: 10}
}

func (o BuilderOptions) shadeSamples() int {
	switch {
	case o.ShadeSamples < 5:
		return 5
	case o.ShadeSamples > 20:
		return 20
	default:
		return o.ShadeSamples
	}
}

// BuildGraph converts raw topology into a routable directed graph. Ways
// that are not walkable are skipped. Ways referencing unknown nodes and
// degenerate zero-length edges are skipped with a warning; OSM data
// contains such inconsistencies routinely and they are not errors.
//
// When sampler is non-nil, each edge's shade fraction is the average of
// evenly spaced point samples along the edge; otherwise every edge has
// shade fraction 0. Building is a pure function of its inputs aside from
// warning logs. The context is checked periodically so a large build can
// be cancelled.
func BuildGraph(ctx context.Context, topology *Topology, sampler ShadeSampler, opts BuilderOptions) (*Graph, error) {
	graph := NewGraph(len(topology.Nodes))

	indexByOSMID := make(map[int64]int, len(topology.Nodes))
	for _, n := range topology.Nodes {
		if _, seen := indexByOSMID[n.ID]; seen {
			continue
		}
		indexByOSMID[n.ID] = graph.AddNode(n.Lat, n.Lon, n.ID)
	}

	nextEdgeID := 0
	for i, way := range topology.Ways {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if !isWalkable(way.Tags) {
			continue
		}
		highway := way.Tags["highway"]

		indices := make([]int, 0, len(way.NodeIDs))
		for _, osmID := range way.NodeIDs {
			if idx, ok := indexByOSMID[osmID]; ok {
				indices = append(indices, idx)
			}
		}
		if len(indices) < 2 {
			log.Printf("Warning: skipping way %d with %d resolvable nodes", way.ID, len(indices))
			continue
		}

		oneway := isOneway(way.Tags)
		for j := 1; j < len(indices); j++ {
			from, to := indices[j-1], indices[j]
			a, b := graph.Nodes[from], graph.Nodes[to]

			length := geo.Haversine(a.Lat, a.Lon, b.Lat, b.Lon)
			if length <= 0 {
				log.Printf("Warning: skipping zero-length edge on way %d (nodes %d -> %d)", way.ID, a.OSMID, b.OSMID)
				continue
			}

			fraction := edgeShadeFraction(sampler, a, b, opts.shadeSamples())

			edgeID := nextEdgeID
			nextEdgeID++

			graph.AddEdge(Edge{
				ID:            edgeID,
				From:          from,
				To:            to,
				LengthM:       length,
				WayID:         way.ID,
				Highway:       highway,
				ShadeFraction: fraction,
			})
			if !oneway {
				graph.AddEdge(Edge{
					ID:            edgeID,
					From:          to,
					To:            from,
					LengthM:       length,
					WayID:         way.ID,
					Highway:       highway,
					ShadeFraction: fraction,
				})
			}
		}
	}

	return graph, nil
}

// isWalkable reports whether a way contributes pedestrian edges: it must
// carry an allow-listed highway tag and not be explicitly closed to foot
// traffic.
func isWalkable(tags map[string]string) bool {
	highway, ok := tags["highway"]
	if !ok || !walkableHighways[highway] {
		return false
	}
	if tags["foot"] == "no" {
		return false
	}
	if access := tags["access"]; access == "private" || access == "no" {
		return tags["foot"] == "yes"
	}
	return true
}

// isOneway reports whether a way produces a forward edge only.
func isOneway(tags map[string]string) bool {
	switch tags["oneway"] {
	case "yes", "true", "1":
		return true
	}
	return false
}

// edgeShadeFraction averages boolean shade samples at evenly spaced
// points along the edge. Edges with zero valid samples default to 0,
// i.e. fully sunny.
func edgeShadeFraction(sampler ShadeSampler, a, b Node, samples int) float64 {
	if sampler == nil {
		return 0
	}

	shadedCount := 0
	validCount := 0
	for i := 0; i <= samples; i++ {
		fraction := float64(i) / float64(samples)
		lat, lon := geo.Interpolate(a.Lat, a.Lon, b.Lat, b.Lon, fraction)
		shaded, ok := sampler.SampleAt(lat, lon)
		if !ok {
			continue
		}
		validCount++
		if shaded {
			shadedCount++
		}
	}

	if validCount == 0 {
		return 0
	}
	return float64(shadedCount) / float64(validCount)
}
