package models

import "github.com/matteosandrin/shady-directions/routing"

// RouteResponse is the JSON body for a successful route computation.
type RouteResponse struct {
	RequestID      string             `json:"requestId"`
	Coordinates    [][2]float64       `json:"coordinates"` // (lon, lat) pairs
	DistanceM      float64            `json:"distanceM"`
	DurationSec    float64            `json:"durationSec"`
	ShadedSegments [][][2]float64     `json:"shadedSegments"`
	SunnySegments  [][][2]float64     `json:"sunnySegments"`
	Stats          routing.ShadeStats `json:"stats"`
	Degraded       bool               `json:"degraded"`
}

// ErrorResponse is the JSON body for a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
