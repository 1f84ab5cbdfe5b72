// Package pdfgen builds the paginated catalog report document delivered to
// recipients. The produced file is a transient artifact: the caller owns its
// lifecycle and removes it once the pipeline iteration finishes.
package pdfgen

import (
	"context"
	"reporter/pkg/domain"
)

// Renderer produces an unencrypted catalog report file from a row set plus an
// optional geolocation context.
//
//go:generate mockgen -package mockpdfgen -source=interface.go -destination=mock/mockpdfgen.go *
type Renderer interface {
	// Render writes a new uniquely named PDF file and returns its path. It
	// never fails on missing optional fields: placeholders are substituted.
	// On a write failure no partially-written file is left behind.
	Render(ctx context.Context, items []domain.CatalogItem, location *domain.GeoContext) (string, error)
}
