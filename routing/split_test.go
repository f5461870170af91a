package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// splitRoute builds a straight route with one coordinate per 100m step
// and the given per-segment shade fractions.
func splitRoute(shadeFractions []float64) *Route {
	route := &Route{ShadeFractions: shadeFractions}
	for i := 0; i <= len(shadeFractions); i++ {
		route.Coordinates = append(route.Coordinates, [2]float64{2.17, 41.38 + float64(i)*latStep100m})
	}
	return route
}

func TestSplitByShadeAllSunny(t *testing.T) {
	split := SplitByShade(splitRoute([]float64{0, 0, 0}))

	require.Len(t, split.SunnySegments, 1)
	assert.Len(t, split.SunnySegments[0], 4)
	assert.Empty(t, split.ShadedSegments)

	assert.InDelta(t, 300, split.Stats.TotalM, 1)
	assert.Zero(t, split.Stats.ShadedM)
	assert.Equal(t, 0, split.Stats.ShadedPct)
	assert.Equal(t, 100, split.Stats.SunnyPct)
}

func TestSplitByShadePartialShadeCountsAsShaded(t *testing.T) {
	split := SplitByShade(splitRoute([]float64{0.01}))

	require.Len(t, split.ShadedSegments, 1)
	assert.Empty(t, split.SunnySegments)
	assert.Equal(t, 100, split.Stats.ShadedPct)
}

func TestSplitByShadeGroupsRuns(t *testing.T) {
	// sunny, sunny, shaded, shaded, sunny
	split := SplitByShade(splitRoute([]float64{0, 0, 0.6, 1, 0}))

	require.Len(t, split.SunnySegments, 2)
	require.Len(t, split.ShadedSegments, 1)

	// First sunny run spans three coordinates, the shaded run three, the
	// trailing sunny run two.
	assert.Len(t, split.SunnySegments[0], 3)
	assert.Len(t, split.ShadedSegments[0], 3)
	assert.Len(t, split.SunnySegments[1], 2)

	assert.InDelta(t, 500, split.Stats.TotalM, 2)
	assert.InDelta(t, 200, split.Stats.ShadedM, 1)
	assert.InDelta(t, 300, split.Stats.SunnyM, 1)
	assert.Equal(t, 40, split.Stats.ShadedPct)
	assert.Equal(t, 60, split.Stats.SunnyPct)
}

func TestSplitByShadeRunEndpointsChain(t *testing.T) {
	split := SplitByShade(splitRoute([]float64{0, 1, 0}))

	require.Len(t, split.SunnySegments, 2)
	require.Len(t, split.ShadedSegments, 1)

	// Adjacent runs share their boundary coordinate.
	assert.Equal(t, split.SunnySegments[0][1], split.ShadedSegments[0][0])
	assert.Equal(t, split.ShadedSegments[0][1], split.SunnySegments[1][0])
}

func TestSplitByShadeEmptyRoute(t *testing.T) {
	split := SplitByShade(&Route{})
	assert.Empty(t, split.ShadedSegments)
	assert.Empty(t, split.SunnySegments)
	assert.Equal(t, 0, split.Stats.ShadedPct)
	assert.Equal(t, 0, split.Stats.SunnyPct)

	split = SplitByShade(nil)
	assert.Zero(t, split.Stats.TotalM)
}
