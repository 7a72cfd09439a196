// Package sysmetrics gathers host system metrics into the fixed-shape
// sample carried in every transmitted payload. Individual readings come
// from small collectors run concurrently by a registry; a rolling buffer
// retains the most recent samples for the history view.
package sysmetrics

import "context"

// Collector is the interface that all metric collectors must implement.
// Each collector gathers a specific type of system metric.
type Collector interface {
	// Name returns the unique identifier for this collector.
	Name() string

	// Collect gathers the metric data and returns it.
	// The context allows for cancellation and timeout control.
	Collect(ctx context.Context) (interface{}, error)

	// IsAvailable checks if this collector can run on the current platform.
	// Collectors that return false will not be registered.
	IsAvailable() bool
}
