package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/matteosandrin/shady-directions/config"
	"github.com/matteosandrin/shady-directions/geo"
	"github.com/matteosandrin/shady-directions/routing"
	"github.com/matteosandrin/shady-directions/shade"
)

// TopologyProvider fetches raw street topology for a bounding box.
type TopologyProvider interface {
	FetchTopology(ctx context.Context, bounds geo.BoundingBox) (*routing.Topology, error)
}

// QueryOptions configures a single walking-route query.
type QueryOptions struct {
	routing.RouteOptions

	// Debug enables extra per-stage diagnostics in the server log.
	Debug bool
}

// RouteDetail is the full result of a walking-route query.
type RouteDetail struct {
	QueryID string
	Route   *routing.Route
	Split   *routing.ShadeSplit

	// Degraded is set when the shade field could not be fetched and the
	// route was computed over an unshaded graph.
	Degraded bool
}

// RouteService composes the topology provider, shade provider, graph
// builder, router, and post-processor into a single query entry point.
type RouteService struct {
	topology TopologyProvider
	shade    shade.Provider
	cache    *TopologyCache
	cfg      *config.Config
}

// NewRouteService wires a route service. shadeProvider and cache may be
// nil; a nil shade provider disables shade costing entirely.
func NewRouteService(topology TopologyProvider, shadeProvider shade.Provider, cache *TopologyCache, cfg *config.Config) *RouteService {
	return &RouteService{
		topology: topology,
		shade:    shadeProvider,
		cache:    cache,
		cfg:      cfg,
	}
}

// FindWalkingRoute computes a shade-aware walking route between start and
// end for the given date. The result is all-or-nothing: topology fetch
// failures and routing failures abort the query, while a shade provider
// failure only degrades the query to plain time-based routing.
//
// observer receives each stage transition exactly once, in order. Pass
// routing.NopObserver{} when progress is not needed.
func (s *RouteService) FindWalkingRoute(ctx context.Context, start, end routing.Coordinate, date time.Time, opts QueryOptions, observer routing.ProgressObserver) (*RouteDetail, error) {
	queryID := uuid.New().String()
	bounds := geo.NewBoundingBox(
		[2]float64{start.Lat, start.Lon},
		[2]float64{end.Lat, end.Lon},
	).Pad(s.cfg.BBoxPaddingMeters)

	if opts.Debug {
		log.Printf("[%s] query start=(%.6f, %.6f) end=(%.6f, %.6f) bbox=(%.4f, %.4f, %.4f, %.4f)",
			queryID, start.Lat, start.Lon, end.Lat, end.Lon,
			bounds.South, bounds.West, bounds.North, bounds.East)
	}

	observer.OnStageChanged(routing.StageFetchingTopology)
	topology, err := s.fetchTopology(ctx, bounds)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		log.Printf("[%s] topology: %d nodes, %d ways", queryID, len(topology.Nodes), len(topology.Ways))
	}

	observer.OnStageChanged(routing.StageComputingShadeField)
	field, degraded := s.fetchShadeField(ctx, bounds, date, queryID)

	observer.OnStageChanged(routing.StageBuildingGraph)
	builderOpts := routing.DefaultBuilderOptions()
	builderOpts.ShadeSamples = s.cfg.ShadeSamples
	var sampler routing.ShadeSampler
	if field != nil {
		sampler = field
	}
	graph, err := routing.BuildGraph(ctx, topology, sampler, builderOpts)
	if err != nil {
		return nil, err
	}
	if opts.Debug {
		log.Printf("[%s] graph: %d nodes, %d edges", queryID, graph.NumNodes(), graph.NumEdges())
	}

	observer.OnStageChanged(routing.StageSearching)
	route, err := routing.FindRoute(graph, start, end, opts.RouteOptions)
	if err != nil {
		return nil, err
	}

	detail := &RouteDetail{
		QueryID:  queryID,
		Route:    route,
		Split:    routing.SplitByShade(route),
		Degraded: degraded,
	}

	observer.OnStageChanged(routing.StageCompleted)
	log.Printf("[%s] route found: %.0fm, %.0fs, %d%% shaded", queryID,
		route.DistanceM, route.DurationSec, detail.Split.Stats.ShadedPct)

	return detail, nil
}

func (s *RouteService) fetchTopology(ctx context.Context, bounds geo.BoundingBox) (*routing.Topology, error) {
	if s.cache != nil {
		if cached := s.cache.Load(bounds); cached != nil {
			return cached, nil
		}
	}

	topology, err := s.topology.FetchTopology(ctx, bounds)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Store(bounds, topology)
	}
	return topology, nil
}

// fetchShadeField returns the shadow raster for the query, or nil with
// degraded=true when the provider is missing or fails. Shade failures
// never abort a query.
func (s *RouteService) fetchShadeField(ctx context.Context, bounds geo.BoundingBox, date time.Time, queryID string) (*shade.Field, bool) {
	if s.shade == nil {
		return nil, true
	}

	field, err := s.shade.FetchField(ctx, bounds, date)
	if err != nil {
		log.Printf("[%s] Warning: shade field unavailable, routing without shade: %v", queryID, err)
		return nil, true
	}
	return field, false
}
