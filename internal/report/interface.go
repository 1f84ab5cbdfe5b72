package report

import (
	"context"
	"reporter/pkg/domain"
)

// Summary describes the outcome of one batch run. Individual recipient
// failures do not fail the batch; they only show up here and in the logs.
type Summary struct {
	// Total is the number of recipients the run iterated over.
	Total int
	// Delivered is the number of recipients that received their report.
	Delivered int
	// Skipped is the number of recipients whose iteration failed and was
	// skipped.
	Skipped int
}

// Reporter is the batch orchestrator. SendReports runs one end-to-end batch;
// Catalog backs the interactive catalog queries of both front ends.
//
//go:generate mockgen -package mockreport -source=interface.go -destination=mock/mockreport.go *
type Reporter interface {
	// SendReports runs one batch: fetch context and catalog once, then
	// render, encrypt and deliver one document per recipient, cleaning up
	// artifacts after every iteration. A fetch-phase failure aborts the run;
	// per-recipient failures are logged and skipped.
	SendReports(ctx context.Context) (Summary, error)
	// Catalog returns catalog rows matching the term, capped at the
	// interactive page size.
	Catalog(ctx context.Context, term string) ([]domain.CatalogItem, error)
}
