package routing

// Node is a graph vertex. Index is a dense identifier assigned at build
// time and owned by the graph; OSMID is kept for diagnostics only and is
// never used for identity.
type Node struct {
	Index int
	Lat   float64
	Lon   float64
	OSMID int64
}

// Edge is a directed connection between two nodes. A bidirectional way
// segment produces two Edge records (forward and reverse) sharing the
// same ID, length and shade fraction; a oneway segment produces one.
type Edge struct {
	ID            int
	From          int
	To            int
	LengthM       float64
	WayID         int64
	Highway       string
	ShadeFraction float64
}

// PedestrianPriority reports whether the edge is a dedicated pedestrian
// facility.
func (e Edge) PedestrianPriority() bool {
	switch e.Highway {
	case "footway", "path", "pedestrian", "steps":
		return true
	}
	return false
}

// Graph is a directed street graph with dense node indices. Out holds the
// outgoing edges per node index, in way-traversal insertion order.
type Graph struct {
	Nodes []Node
	Out   [][]Edge

	edgeCount int
	inDegree  []int
}

// NewGraph returns an empty graph with capacity for n nodes.
func NewGraph(n int) *Graph {
	return &Graph{
		Nodes:    make([]Node, 0, n),
		Out:      make([][]Edge, 0, n),
		inDegree: make([]int, 0, n),
	}
}

// AddNode appends a node and returns its dense index.
func (g *Graph) AddNode(lat, lon float64, osmID int64) int {
	idx := len(g.Nodes)
	g.Nodes = append(g.Nodes, Node{Index: idx, Lat: lat, Lon: lon, OSMID: osmID})
	g.Out = append(g.Out, nil)
	g.inDegree = append(g.inDegree, 0)
	return idx
}

// AddEdge appends a directed edge. Both endpoints must be valid indices.
func (g *Graph) AddEdge(e Edge) {
	g.Out[e.From] = append(g.Out[e.From], e)
	g.inDegree[e.To]++
	g.edgeCount++
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int { return len(g.Nodes) }

// NumEdges returns the number of directed edges in the graph.
func (g *Graph) NumEdges() int { return g.edgeCount }

// Isolated reports whether a node has neither outgoing nor incoming
// edges. Such nodes belong to no routable component.
func (g *Graph) Isolated(index int) bool {
	return len(g.Out[index]) == 0 && g.inDegree[index] == 0
}
