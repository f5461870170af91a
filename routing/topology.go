package routing

// RawNode is a street-network node as returned by the topology provider.
type RawNode struct {
	ID  int64
	Lat float64
	Lon float64
}

// RawWay is a tagged polyline of node references. Tags determine
// walkability and oneway status.
type RawWay struct {
	ID      int64
	NodeIDs []int64
	Tags    map[string]string
}

// Topology is the raw node and way set fetched for a bounding box.
type Topology struct {
	Nodes []RawNode
	Ways  []RawWay
}
