// Package storage defines the storage interfaces that the application relies
// on. It abstracts persistence operations so that different backends (e.g.
// PostgreSQL) can provide concrete implementations.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import (
	"context"
	"reporter/pkg/domain"
)

// CatalogStorage defines the read-only queries the report pipeline and the
// front ends need. The catalog is sourced fresh per call; rows are never
// cached or mutated by this application.
type CatalogStorage interface {
	// CatalogItems returns catalog rows matching the filter, ordered by ID
	// ascending. A numeric filter term matches the ID exactly, any other
	// non-empty term matches a case-insensitive substring of the name.
	// A zero filter limit disables the row cap.
	CatalogItems(ctx context.Context, filter domain.CatalogFilter) ([]domain.CatalogItem, error)
	// Recipients returns all delivery recipients, unfiltered and unpaginated.
	Recipients(ctx context.Context) ([]domain.Recipient, error)
}

// Storage describes a storage handle with lifecycle management. Connections
// are acquired per query and always released, so callers only need to Close
// the handle once on shutdown.
type Storage interface {
	CatalogStorage

	// Close releases any resources held by the storage implementation (e.g. the
	// underlying connection pool). After Close, the instance should not be used.
	Close() error
}
