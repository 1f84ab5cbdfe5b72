package report

import (
	"context"
	"fmt"
	"os"
	"time"

	"reporter/internal/config"
	"reporter/pkg/domain"
	"reporter/pkg/geo"
	"reporter/pkg/logger"
	"reporter/pkg/mailer"
	"reporter/pkg/metrics"
	"reporter/pkg/pdfcrypt"
	"reporter/pkg/pdfgen"
	"reporter/pkg/storage"

	"go.uber.org/zap"
)

// interactivePageSize caps catalog listings requested from the front ends.
const interactivePageSize = 20

// Options configure how a batch run sources its recipients and context.
// These settings are typically derived from application configuration.
type Options struct {
	// RecipientSource is config.RecipientSourceTable or
	// config.RecipientSourceSingle.
	RecipientSource string
	// SingleEmail is the delivery address in single-address mode.
	SingleEmail string
	// SinglePassword is the document password in single-address mode.
	SinglePassword string
	// GeoLookup toggles the best-effort location enrichment.
	GeoLookup bool
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		RecipientSource: cfg.Report.RecipientSource,
		SingleEmail:     cfg.Report.SingleEmail,
		SinglePassword:  cfg.Report.SinglePassword,
		GeoLookup:       cfg.Report.GeoLookup,
	}
}

// reporter is the concrete implementation of the Reporter interface. It
// coordinates the storage, renderer, encryptor, mailer and geolocation
// collaborators into the sequential per-recipient pipeline.
type reporter struct {
	options   Options
	storage   storage.Storage
	renderer  pdfgen.Renderer
	encryptor pdfcrypt.Encryptor
	mailer    mailer.Mailer
	geo       geo.Client
	pipeline  *metrics.Pipeline
}

// New creates a Reporter backed by the provided collaborators. pipeline may
// be nil to disable instrumentation (e.g. in tests).
func New(
	strg storage.Storage,
	renderer pdfgen.Renderer,
	encryptor pdfcrypt.Encryptor,
	m mailer.Mailer,
	geoClient geo.Client,
	pipeline *metrics.Pipeline,
	options Options,
) Reporter {
	return &reporter{
		options:   options,
		storage:   strg,
		renderer:  renderer,
		encryptor: encryptor,
		mailer:    m,
		geo:       geoClient,
		pipeline:  pipeline,
	}
}

// Catalog returns catalog rows matching the term, capped at the interactive
// page size. An empty term lists the catalog from the first ID.
func (r *reporter) Catalog(ctx context.Context, term string) ([]domain.CatalogItem, error) {
	items, err := r.storage.CatalogItems(ctx, domain.CatalogFilter{Term: term, Limit: interactivePageSize})
	if err != nil {
		return nil, fmt.Errorf("could not query catalog: %w", err)
	}

	return items, nil
}

// SendReports runs one batch. The fetch phases run once; a failure there
// aborts the whole run with zero deliveries. The per-recipient loop is
// sequential and isolated: a failing iteration is logged and skipped, and the
// batch still completes.
func (r *reporter) SendReports(ctx context.Context) (Summary, error) {
	logger.Info(ctx, "starting batch report run")

	location := r.lookupLocation(ctx)

	items, err := r.storage.CatalogItems(ctx, domain.CatalogFilter{})
	if err != nil {
		r.pipeline.IncrementBatch("failed")

		return Summary{}, fmt.Errorf("could not fetch catalog: %w", err)
	}

	recipients, err := r.recipients(ctx)
	if err != nil {
		r.pipeline.IncrementBatch("failed")

		return Summary{}, fmt.Errorf("could not fetch recipients: %w", err)
	}

	logger.Info(ctx, "processing recipients",
		zap.Int("recipients", len(recipients)),
		zap.Int("items", len(items)))

	summary := Summary{Total: len(recipients)}
	for _, recipient := range recipients {
		if err := r.processRecipient(ctx, items, location, recipient); err != nil {
			logger.Error(ctx, "skipping recipient after pipeline failure",
				zap.String("email", recipient.Email),
				zap.Error(err))
			r.pipeline.IncrementRecipient("skipped")
			summary.Skipped++

			continue
		}

		r.pipeline.IncrementRecipient("delivered")
		summary.Delivered++
	}

	r.pipeline.IncrementBatch("completed")
	logger.Info(ctx, "batch report run finished",
		zap.Int("total", summary.Total),
		zap.Int("delivered", summary.Delivered),
		zap.Int("skipped", summary.Skipped))

	return summary, nil
}

// lookupLocation resolves the host location for the report header. Lookup
// failures degrade to sentinel values instead of failing the batch.
func (r *reporter) lookupLocation(ctx context.Context) *domain.GeoContext {
	if !r.options.GeoLookup {
		return nil
	}

	loc, err := r.geo.Locate(ctx)
	if err != nil {
		logger.Warn(ctx, "geolocation lookup failed, using sentinel", zap.Error(err))
		loc = domain.NetworkErrorLocation
	}

	return &loc
}

// recipients resolves the delivery targets per the configured source.
func (r *reporter) recipients(ctx context.Context) ([]domain.Recipient, error) {
	if r.options.RecipientSource == config.RecipientSourceSingle {
		return []domain.Recipient{{
			Cedula: r.options.SinglePassword,
			Email:  r.options.SingleEmail,
		}}, nil
	}

	return r.storage.Recipients(ctx)
}

// processRecipient runs one pipeline iteration. Both artifact files are
// removed before returning, on success or failure.
func (r *reporter) processRecipient(ctx context.Context,
	items []domain.CatalogItem,
	location *domain.GeoContext,
	recipient domain.Recipient,
) error {
	var tempPath, encryptedPath string
	defer func() {
		r.removeArtifact(ctx, tempPath)
		r.removeArtifact(ctx, encryptedPath)
	}()

	start := time.Now()
	tempPath, err := r.renderer.Render(ctx, items, location)
	r.pipeline.ObserveStage("render", time.Since(start))
	if err != nil {
		return fmt.Errorf("could not render report: %w", err)
	}

	start = time.Now()
	encryptedPath, err = r.encryptor.Encrypt(ctx, tempPath, recipient.Cedula)
	r.pipeline.ObserveStage("encrypt", time.Since(start))
	if err != nil {
		return fmt.Errorf("could not encrypt report: %w", err)
	}

	start = time.Now()
	err = r.mailer.Send(ctx, mailer.Message{
		To:             recipient.Email,
		Subject:        reportSubject(time.Now()),
		HTMLBody:       reportBody(),
		AttachmentPath: encryptedPath,
	})
	r.pipeline.ObserveStage("deliver", time.Since(start))
	if err != nil {
		return fmt.Errorf("could not deliver report: %w", err)
	}

	logger.Info(ctx, "report delivered", zap.String("email", recipient.Email))

	return nil
}

// removeArtifact deletes a transient pipeline file if it was created.
func (r *reporter) removeArtifact(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logger.Warn(ctx, "could not remove report artifact",
			zap.String("path", path),
			zap.Error(err))
	}
}
