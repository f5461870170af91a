package geo

import "math"

// BoundingBox is a geographic rectangle in degrees.
type BoundingBox struct {
	West  float64 `json:"west"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
	South float64 `json:"south"`
}

// NewBoundingBox returns the smallest box containing all the given
// (lat, lon) points.
func NewBoundingBox(points ...[2]float64) BoundingBox {
	box := BoundingBox{
		West:  math.Inf(1),
		East:  math.Inf(-1),
		North: math.Inf(-1),
		South: math.Inf(1),
	}
	for _, p := range points {
		lat, lon := p[0], p[1]
		box.West = math.Min(box.West, lon)
		box.East = math.Max(box.East, lon)
		box.South = math.Min(box.South, lat)
		box.North = math.Max(box.North, lat)
	}
	return box
}

// Pad expands the box by the given distance in meters on every side.
// Longitude padding is scaled by the cosine of the mid latitude so the
// padding is roughly uniform in meters.
func (b BoundingBox) Pad(meters float64) BoundingBox {
	latDegrees := meters / 111320.0
	midLat := (b.North + b.South) / 2
	lonDegrees := latDegrees / math.Cos(toRadians(midLat))
	return BoundingBox{
		West:  b.West - lonDegrees,
		East:  b.East + lonDegrees,
		North: b.North + latDegrees,
		South: b.South - latDegrees,
	}
}

// Contains reports whether the point lies within the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.South && lat <= b.North && lon >= b.West && lon <= b.East
}
