// Package shade samples a rasterized shadow field by geographic
// coordinate. The raster is produced externally for a bounding box and a
// timestamp; this package only consumes its output contract (a pixel
// buffer plus its geographic bounds).
package shade

import (
	"math"

	"github.com/matteosandrin/shady-directions/geo"
)

// DefaultSampleIntervalMeters is the spacing between samples when
// estimating the shade fraction along a line.
const DefaultSampleIntervalMeters = 5.0

// Field is a read-only shadow raster covering a geographic bounding box.
// Pix holds RGBA samples row by row, row 0 being the northern edge.
type Field struct {
	Bounds geo.BoundingBox
	Pix    []uint8
	Width  int
	Height int
}

// SampleAt reports whether the point is shaded. ok is false when the
// point falls outside the raster; callers treat that as not shaded.
//
// A pixel counts as shaded when the mean of its color channels is below
// 128. This is a luminance threshold, not an alpha threshold: the source
// raster draws shadow regions darker than open ground.
func (f *Field) SampleAt(lat, lon float64) (shaded, ok bool) {
	if f == nil || f.Width == 0 || f.Height == 0 {
		return false, false
	}
	if f.Bounds.East == f.Bounds.West || f.Bounds.North == f.Bounds.South {
		return false, false
	}
	nx := (lon - f.Bounds.West) / (f.Bounds.East - f.Bounds.West)
	ny := (f.Bounds.North - lat) / (f.Bounds.North - f.Bounds.South)
	// int() truncates toward zero, so negative normalized coordinates
	// would otherwise land on pixel 0 instead of out of bounds.
	if nx < 0 || ny < 0 {
		return false, false
	}

	x := int(nx * float64(f.Width))
	y := int(ny * float64(f.Height))
	if x >= f.Width || y >= f.Height {
		return false, false
	}

	off := (y*f.Width + x) * 4
	r := int(f.Pix[off])
	g := int(f.Pix[off+1])
	b := int(f.Pix[off+2])
	return (r+g+b)/3 < 128, true
}

// SampleAlongLine estimates the fraction of the segment from a to b that
// is shaded, sampling every intervalMeters along the geodesic line. It
// returns a value in [0,1]; 0 when no sample lands inside the raster.
func (f *Field) SampleAlongLine(aLat, aLon, bLat, bLon, intervalMeters float64) float64 {
	if intervalMeters <= 0 {
		intervalMeters = DefaultSampleIntervalMeters
	}
	length := geo.Haversine(aLat, aLon, bLat, bLon)
	samples := int(math.Ceil(length / intervalMeters))
	if samples < 1 {
		samples = 1
	}

	shadedCount := 0
	validCount := 0
	for i := 0; i <= samples; i++ {
		fraction := float64(i) / float64(samples)
		lat, lon := geo.Interpolate(aLat, aLon, bLat, bLon, fraction)
		shaded, ok := f.SampleAt(lat, lon)
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
