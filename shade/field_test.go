package shade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matteosandrin/shady-directions/geo"
)

// testField builds a width x height field where shadedCols[x] marks whole
// columns as dark (shaded).
func testField(bounds geo.BoundingBox, width, height int, shadedCols map[int]bool) *Field {
	pix := make([]uint8, width*height*4)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			value := uint8(255)
			if shadedCols[x] {
				value = 0
			}
			off := (y*width + x) * 4
			pix[off] = value
			pix[off+1] = value
			pix[off+2] = value
			pix[off+3] = 255
		}
	}
	return &Field{Bounds: bounds, Pix: pix, Width: width, Height: height}
}

var testBounds = geo.BoundingBox{West: 2.0, East: 2.1, South: 41.0, North: 41.1}

func TestSampleAtShaded(t *testing.T) {
	f := testField(testBounds, 10, 10, map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true})

	// Western half is dark, eastern half is light.
	shaded, ok := f.SampleAt(41.05, 2.01)
	require.True(t, ok)
	assert.True(t, shaded)

	shaded, ok = f.SampleAt(41.05, 2.09)
	require.True(t, ok)
	assert.False(t, shaded)
}

func TestSampleAtLuminanceThreshold(t *testing.T) {
	// Mean channel value 127 is shaded, 128 is not.
	f := &Field{
		Bounds: testBounds,
		Width:  1, Height: 1,
		Pix: []uint8{127, 127, 127, 255},
	}
	shaded, ok := f.SampleAt(41.05, 2.05)
	require.True(t, ok)
	assert.True(t, shaded)

	f.Pix = []uint8{128, 128, 128, 255}
	shaded, ok = f.SampleAt(41.05, 2.05)
	require.True(t, ok)
	assert.False(t, shaded)
}

func TestSampleAtOutOfBounds(t *testing.T) {
	f := testField(testBounds, 10, 10, nil)

	_, ok := f.SampleAt(40.0, 2.05) // south of the raster
	assert.False(t, ok)
	_, ok = f.SampleAt(41.05, 3.0) // east of the raster
	assert.False(t, ok)
}

func TestSampleAtJustOutsideWestAndNorth(t *testing.T) {
	// Within one pixel west and north of the raster: truncation toward
	// zero must not snap these onto pixel 0.
	f := testField(testBounds, 10, 10, nil)

	_, ok := f.SampleAt(41.05, 1.995) // half a pixel west
	assert.False(t, ok)
	_, ok = f.SampleAt(41.105, 2.05) // half a pixel north
	assert.False(t, ok)

	// The corresponding points just inside remain valid.
	_, ok = f.SampleAt(41.05, 2.005)
	assert.True(t, ok)
	_, ok = f.SampleAt(41.095, 2.05)
	assert.True(t, ok)
}

func TestSampleAtDegenerateBounds(t *testing.T) {
	f := testField(geo.BoundingBox{West: 2.0, East: 2.0, South: 41.0, North: 41.1}, 10, 10, nil)
	_, ok := f.SampleAt(41.05, 2.0)
	assert.False(t, ok)

	f = testField(geo.BoundingBox{West: 2.0, East: 2.1, South: 41.0, North: 41.0}, 10, 10, nil)
	_, ok = f.SampleAt(41.0, 2.05)
	assert.False(t, ok)
}

func TestSampleAtRowZeroIsNorth(t *testing.T) {
	// Top row dark, rest light.
	pix := make([]uint8, 2*2*4)
	for i := range pix {
		pix[i] = 255
	}
	pix[0], pix[1], pix[2] = 0, 0, 0
	pix[4], pix[5], pix[6] = 0, 0, 0
	f := &Field{Bounds: testBounds, Pix: pix, Width: 2, Height: 2}

	shaded, ok := f.SampleAt(41.09, 2.05) // near the northern edge
	require.True(t, ok)
	assert.True(t, shaded)

	shaded, ok = f.SampleAt(41.01, 2.05) // near the southern edge
	require.True(t, ok)
	assert.False(t, shaded)
}

func TestSampleAlongLineFraction(t *testing.T) {
	// Western half shaded: a west-east crossing should be about half
	// shaded.
	f := testField(testBounds, 100, 100, func() map[int]bool {
		cols := map[int]bool{}
		for x := 0; x < 50; x++ {
			cols[x] = true
		}
		return cols
	}())

	fraction := f.SampleAlongLine(41.05, 2.005, 41.05, 2.095, 5)
	assert.InDelta(t, 0.5, fraction, 0.05)
}

func TestSampleAlongLineSymmetric(t *testing.T) {
	f := testField(testBounds, 100, 100, map[int]bool{10: true, 11: true, 40: true})

	forward := f.SampleAlongLine(41.01, 2.01, 41.09, 2.09, 5)
	backward := f.SampleAlongLine(41.09, 2.09, 41.01, 2.01, 5)
	assert.InDelta(t, forward, backward, 1e-9)
}

func TestSampleAlongLineNoValidSamples(t *testing.T) {
	f := testField(testBounds, 10, 10, map[int]bool{0: true})

	// Entirely outside the raster.
	fraction := f.SampleAlongLine(45.0, 9.0, 45.01, 9.01, 5)
	assert.Zero(t, fraction)
}

func TestSampleAlongLineZeroLength(t *testing.T) {
	f := testField(testBounds, 10, 10, map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true, 8: true, 9: true})

	// Degenerate segment still takes one sample.
	fraction := f.SampleAlongLine(41.05, 2.05, 41.05, 2.05, 5)
	assert.Equal(t, 1.0, fraction)
}
