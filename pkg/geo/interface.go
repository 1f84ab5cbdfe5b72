// Package geo defines the interface used to look up the geographic location
// of the host generating a report from a backing provider.
package geo

import (
	"context"
	"reporter/pkg/domain"
)

// Client is the abstraction for geolocation lookups. Implementations resolve
// the current host's public location.
//
// Lookups are best-effort enrichment: an unresolvable address degrades to
// domain.UnknownLocation inside the implementation, while transport failures
// surface as errors so the caller can substitute its own sentinel.
//
//go:generate mockgen -package mockgeo -source=interface.go -destination=mock/mockgeo.go *
type Client interface {
	// Locate resolves the current host's public geographic location.
	Locate(ctx context.Context) (domain.GeoContext, error)
}
