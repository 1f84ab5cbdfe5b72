package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"reporter/internal/api"
	"reporter/internal/bot"
	"reporter/internal/config"
	"reporter/internal/report"
	"reporter/pkg/geo/ipapi"
	"reporter/pkg/logger"
	"reporter/pkg/mailer/smtp"
	"reporter/pkg/metrics"
	"reporter/pkg/pdfcrypt/qpdf"
	"reporter/pkg/pdfgen"
	"reporter/pkg/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// geoLookupTimeout bounds the best-effort location request so a slow lookup
// service cannot stall a batch run.
const geoLookupTimeout = 10 * time.Second

// buildReporter assembles the report engine from configuration: renderer,
// encryptor, mail sender, geolocation client and pipeline metrics.
func buildReporter(cfg *config.Config, strg storage.Storage) report.Reporter {
	renderer := pdfgen.New(pdfgen.Options{WorkDir: cfg.Report.WorkDir})
	encryptor := qpdf.New(qpdf.Options{Path: cfg.Report.QPDFPath})
	sender := smtp.New(smtp.Options{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.User,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	})
	geoClient := ipapi.New(&http.Client{Timeout: geoLookupTimeout}, ipapi.DefaultBaseURL)

	return report.New(strg, renderer, encryptor, sender, geoClient, metrics.NewPipeline(), report.NewOptions(cfg))
}

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server := api.NewServer(deps, api.NewOptions(cfg))

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the HTTP server and the Telegram bot coordinator",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			reporter := buildReporter(cfg, strg)

			// The bot stays NotStarted until the /iniciar/bot route is hit.
			coordinator := bot.New(reporter, bot.NewOptions(cfg))
			defer coordinator.Stop()

			stopWebserver := setupServer(ctx, cfg, api.Deps{
				Reporter: reporter,
				Bot:      coordinator,
			})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
