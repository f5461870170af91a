package routing

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRouteFound means start and goal resolved to graph nodes but no
	// path connects them (e.g. disconnected components).
	ErrNoRouteFound = errors.New("no route found between start and end points")

	// ErrInvalidInput means a query coordinate could not be resolved to
	// any graph node at all.
	ErrInvalidInput = errors.New("coordinates did not resolve to any graph node")
)

// ProviderError is returned when an external data provider (topology or
// shade field) fails with a network, status, or parse error.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s provider request failed with status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s provider request failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
