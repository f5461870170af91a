package routing

import (
	"container/heap"
	"math"

	"github.com/matteosandrin/shady-directions/geo"
)

// DefaultWalkSpeedMS is the assumed walking speed in meters per second.
const DefaultWalkSpeedMS = 1.4

// Coordinate is a (lat, lon) pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteOptions tune the edge cost function of the router.
type RouteOptions struct {
	// WalkSpeedMS is the walking speed in m/s. Zero means DefaultWalkSpeedMS.
	WalkSpeedMS float64
	// ShadePreference in [0,1] scales how much sun exposure is penalized.
	// 0 disables the shade term; 1 doubles the cost of a fully sunny edge
	// relative to a fully shaded one.
	ShadePreference float64
	// PedestrianPathPreference in [0,1] discounts dedicated pedestrian
	// facilities (footway/path/pedestrian/steps).
	PedestrianPathPreference float64
	// ValidateConnectivity excludes nodes with no outgoing and no
	// incoming edges from nearest-node resolution, so a query cannot be
	// snapped into a dead component.
	ValidateConnectivity bool
}

// DefaultRouteOptions returns the standard router configuration.
func DefaultRouteOptions() RouteOptions {
	return RouteOptions{
		WalkSpeedMS:              DefaultWalkSpeedMS,
		ShadePreference:          0,
		PedestrianPathPreference: 0.2,
		ValidateConnectivity:     true,
	}
}

func (o RouteOptions) walkSpeed() float64 {
	if o.WalkSpeedMS <= 0 {
		return DefaultWalkSpeedMS
	}
	return o.WalkSpeedMS
}

// EdgeCost is the routing cost of traversing e in seconds. The base
// walking time is scaled up for sun exposure and discounted on dedicated
// pedestrian paths. Both multipliers keep the cost at or above zero, and
// the shade multiplier never drops below 1, so an edge is never cheaper
// than its discounted walking time.
func (o RouteOptions) EdgeCost(e Edge) float64 {
	baseTime := e.LengthM / o.walkSpeed()

	pathTypeMultiplier := 1.0
	if e.PedestrianPriority() {
		pathTypeMultiplier = 1 - o.PedestrianPathPreference
	}

	shadeMultiplier := 1 + o.ShadePreference*(1-e.ShadeFraction)

	return baseTime * pathTypeMultiplier * shadeMultiplier
}

// Route is the result of a successful search. Coordinates are ordered
// (lon, lat) pairs, matching the downstream geographic convention.
// ShadeFractions is aligned with EdgeIDs.
type Route struct {
	Coordinates    [][2]float64 `json:"coordinates"`
	DistanceM      float64      `json:"distanceM"`
	DurationSec    float64      `json:"durationSec"`
	EdgeIDs        []int        `json:"edgeIds"`
	ShadeFractions []float64    `json:"shadeFractions"`
}

type pqItem struct {
	node     int
	priority float64
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].priority < pq[j].priority }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(*pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return item
}

// NearestNode resolves a query coordinate to the closest graph node by
// geodesic distance, breaking exact ties by lowest index. When
// validateConnectivity is set, isolated nodes are not candidates.
// Returns -1 when no candidate exists.
func NearestNode(g *Graph, c Coordinate, validateConnectivity bool) int {
	nearest := -1
	minDist := math.Inf(1)
	for i := range g.Nodes {
		if validateConnectivity && g.Isolated(i) {
			continue
		}
		dist := geo.Haversine(c.Lat, c.Lon, g.Nodes[i].Lat, g.Nodes[i].Lon)
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}
	return nearest
}

// FindRoute runs a goal-directed A* search between the graph nodes
// nearest to start and goal.
//
// The heuristic is the remaining geodesic distance divided by walking
// speed, a lower bound on pure walking time. With a nonzero
// PedestrianPathPreference an edge can cost less than its walking time,
// so optimality is best-effort for those parameter combinations; the
// returned route is always valid and connected.
//
// Returns ErrInvalidInput when start or goal resolves to no node, and
// ErrNoRouteFound when the open set empties before the goal is reached.
func FindRoute(g *Graph, start, goal Coordinate, opts RouteOptions) (*Route, error) {
	startNode := NearestNode(g, start, opts.ValidateConnectivity)
	goalNode := NearestNode(g, goal, opts.ValidateConnectivity)
	if startNode < 0 || goalNode < 0 {
		return nil, ErrInvalidInput
	}

	walkSpeed := opts.walkSpeed()
	heuristic := func(node int) float64 {
		n := g.Nodes[node]
		return geo.Haversine(n.Lat, n.Lon, g.Nodes[goalNode].Lat, g.Nodes[goalNode].Lon) / walkSpeed
	}

	gScore := make(map[int]float64, g.NumNodes())
	cameFrom := make(map[int]Edge)
	closed := make(map[int]bool)

	openSet := &priorityQueue{}
	heap.Init(openSet)
	gScore[startNode] = 0
	heap.Push(openSet, &pqItem{node: startNode, priority: heuristic(startNode)})

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*pqItem).node

		if current == goalNode {
			return reconstructRoute(g, cameFrom, startNode, goalNode, gScore[goalNode]), nil
		}

		// Lazy decrease-key: stale entries are skipped once finalized.
		if closed[current] {
			continue
		}
		closed[current] = true

		for _, e := range g.Out[current] {
			if closed[e.To] {
				continue
			}
			tentative := gScore[current] + opts.EdgeCost(e)
			if old, seen := gScore[e.To]; !seen || tentative < old {
				gScore[e.To] = tentative
				cameFrom[e.To] = e
				heap.Push(openSet, &pqItem{node: e.To, priority: tentative + heuristic(e.To)})
			}
		}
	}

	return nil, ErrNoRouteFound
}

// reconstructRoute walks the parent edges from goal back to start and
// emits the route in forward order. Distance is the sum of edge lengths;
// duration is the cost-weighted g-value at the goal.
func reconstructRoute(g *Graph, cameFrom map[int]Edge, startNode, goalNode int, goalCost float64) *Route {
	var edges []Edge
	for current := goalNode; current != startNode; {
		e := cameFrom[current]
		edges = append(edges, e)
		current = e.From
	}
	// Reverse into start-to-goal order.
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	route := &Route{
		Coordinates:    make([][2]float64, 0, len(edges)+1),
		DurationSec:    goalCost,
		EdgeIDs:        make([]int, 0, len(edges)),
		ShadeFractions: make([]float64, 0, len(edges)),
	}

	startN := g.Nodes[startNode]
	route.Coordinates = append(route.Coordinates, [2]float64{startN.Lon, startN.Lat})
	for _, e := range edges {
		n := g.Nodes[e.To]
		route.Coordinates = append(route.Coordinates, [2]float64{n.Lon, n.Lat})
		route.DistanceM += e.LengthM
		route.EdgeIDs = append(route.EdgeIDs, e.ID)
		route.ShadeFractions = append(route.ShadeFractions, e.ShadeFraction)
	}

	return route
}
