package routing

// Stage identifies a step of a route query. Stages are reported in strict
// order, each exactly once; a failing stage stops the sequence.
type Stage int

const (
	StageFetchingTopology Stage = iota
	StageComputingShadeField
	StageBuildingGraph
	StageSearching
	StageCompleted
)

func (s Stage) String() string {
	switch s {
	case StageFetchingTopology:
		return "fetching_topology"
	case StageComputingShadeField:
		return "computing_shade_field"
	case StageBuildingGraph:
		return "building_graph"
	case StageSearching:
		return "searching"
	case StageCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ProgressObserver receives stage transitions during a route query.
type ProgressObserver interface {
	OnStageChanged(stage Stage)
}

// NopObserver ignores all stage transitions.
type NopObserver struct{}

func (NopObserver) OnStageChanged(Stage) {}
