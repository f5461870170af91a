package routing

import (
	"math"

	"github.com/matteosandrin/shady-directions/geo"
)

// ShadeSplit groups the consecutive segments of a route into maximal
// shaded and sunny polylines, with distance statistics.
type ShadeSplit struct {
	ShadedSegments [][][2]float64 `json:"shadedSegments"`
	SunnySegments  [][][2]float64 `json:"sunnySegments"`
	Stats          ShadeStats     `json:"stats"`
}

// ShadeStats summarizes the sun exposure of a route. Percentages are
// rounded to the nearest integer and default to 0 on a zero-length route.
type ShadeStats struct {
	TotalM    float64 `json:"totalM"`
	ShadedM   float64 `json:"shadedM"`
	SunnyM    float64 `json:"sunnyM"`
	ShadedPct int     `json:"shadedPct"`
	SunnyPct  int     `json:"sunnyPct"`
}

// SplitByShade classifies each segment of the route and groups maximal
// runs of the same classification into polylines.
//
// A segment counts as shaded when its shade fraction is greater than 0:
// partial shade counts as shaded. This binary threshold is intentionally
// coarser than the continuous fraction used for edge costing; display
// wants binary, costing wants continuous.
func SplitByShade(route *Route) *ShadeSplit {
	split := &ShadeSplit{
		ShadedSegments: [][][2]float64{},
		SunnySegments:  [][][2]float64{},
	}
	if route == nil || len(route.Coordinates) < 2 {
		return split
	}

	var run [][2]float64
	var runShaded bool

	flush := func() {
		if len(run) < 2 {
			return
		}
		if runShaded {
			split.ShadedSegments = append(split.ShadedSegments, run)
		} else {
			split.SunnySegments = append(split.SunnySegments, run)
		}
	}

	for i := 0; i+1 < len(route.Coordinates); i++ {
		a := route.Coordinates[i]
		b := route.Coordinates[i+1]

		fraction := 0.0
		if i < len(route.ShadeFractions) {
			fraction = route.ShadeFractions[i]
		}
		shaded := fraction > 0

		// Coordinates are (lon, lat).
		length := geo.Haversine(a[1], a[0], b[1], b[0])
		split.Stats.TotalM += length
		if shaded {
			split.Stats.ShadedM += length
		}

		if len(run) == 0 {
			run = [][2]float64{a, b}
			runShaded = shaded
			continue
		}
		if shaded == runShaded {
			run = append(run, b)
			continue
		}
		flush()
		run = [][2]float64{a, b}
		runShaded = shaded
	}
	flush()

	split.Stats.SunnyM = split.Stats.TotalM - split.Stats.ShadedM
	if split.Stats.TotalM > 0 {
		split.Stats.ShadedPct = int(math.Round(split.Stats.ShadedM / split.Stats.TotalM * 100))
		split.Stats.SunnyPct = int(math.Round(split.Stats.SunnyM / split.Stats.TotalM * 100))
	}

	return split
}
