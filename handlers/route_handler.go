package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/matteosandrin/shady-directions/models"
	"github.com/matteosandrin/shady-directions/routing"
	"github.com/matteosandrin/shady-directions/services"
)

// RouteFinder is the query entry point the handler depends on.
type RouteFinder interface {
	FindWalkingRoute(ctx context.Context, start, end routing.Coordinate, date time.Time, opts services.QueryOptions, observer routing.ProgressObserver) (*services.RouteDetail, error)
}

// RouteHandler serves the shade-route API.
type RouteHandler struct {
	service RouteFinder
}

// NewRouteHandler returns a handler backed by the given service.
func NewRouteHandler(service RouteFinder) *RouteHandler {
	return &RouteHandler{service: service}
}

// RegisterRoutes attaches the handler's endpoints to the gin engine.
func (h *RouteHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/shade-route", h.ComputeRoute)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
}

// ComputeRoute handles POST /api/shade-route.
func (h *RouteHandler) ComputeRoute(c *gin.Context) {
	var req models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "date must be RFC3339"})
			return
		}
		date = parsed
	}

	opts := services.QueryOptions{
		RouteOptions: routing.DefaultRouteOptions(),
		Debug:        req.Opts.Debug,
	}
	if req.Opts.WalkSpeedMS > 0 {
		opts.WalkSpeedMS = req.Opts.WalkSpeedMS
	}
	opts.ShadePreference = req.Opts.ShadePreference
	if req.Opts.PedestrianPathPreference != nil {
		opts.PedestrianPathPreference = *req.Opts.PedestrianPathPreference
	}

	start := routing.Coordinate{Lat: *req.Start.Lat, Lon: *req.Start.Lon}
	end := routing.Coordinate{Lat: *req.End.Lat, Lon: *req.End.Lon}

	detail, err := h.service.FindWalkingRoute(c.Request.Context(), start, end, date, opts, routing.NopObserver{})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RouteResponse{
		RequestID:      detail.QueryID,
		Coordinates:    detail.Route.Coordinates,
		DistanceM:      detail.Route.DistanceM,
		DurationSec:    detail.Route.DurationSec,
		ShadedSegments: detail.Split.ShadedSegments,
		SunnySegments:  detail.Split.SunnySegments,
		Stats:          detail.Split.Stats,
		Degraded:       detail.Degraded,
	})
}

func (h *RouteHandler) writeError(c *gin.Context, err error) {
	var providerErr *routing.ProviderError
	switch {
	case errors.Is(err, routing.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, routing.ErrNoRouteFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
	case errors.As(err, &providerErr):
		log.Printf("ERROR: provider failure: %v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: err.Error()})
	default:
		log.Printf("ERROR: route computation failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
}
