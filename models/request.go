package models

// Location is a geographic point in a request body. The coordinates are
// pointers so a missing field is rejected while a legitimate 0 (equator,
// prime meridian) is accepted.
type Location struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lon *float64 `json:"lon" binding:"required"`
}

// RouteRequest is the body for POST /api/shade-route.
type RouteRequest struct {
	Start Location    `json:"start" binding:"required"`
	End   Location    `json:"end" binding:"required"`
	Date  string      `json:"date,omitempty"` // RFC3339; empty means now
	Opts  RequestOpts `json:"options,omitempty"`
}

// RequestOpts tunes the route computation per request.
// PedestrianPathPreference is a pointer so an explicit 0 (disable the
// discount) is distinguishable from an absent field (use the default).
type RequestOpts struct {
	WalkSpeedMS              float64  `json:"walkSpeedMs,omitempty"`
	ShadePreference          float64  `json:"shadePreference,omitempty" binding:"omitempty,gte=0,lte=1"`
	PedestrianPathPreference *float64 `json:"pedestrianPathPreference,omitempty" binding:"omitempty,gte=0,lte=1"`
	Debug                    bool     `json:"debug,omitempty"`
}
