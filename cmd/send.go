package main

import (
	"context"
	"os/signal"
	"syscall"

	"reporter/internal/config"
	"reporter/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func sendCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Runs one report batch and exits",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			summary, err := buildReporter(cfg, strg).SendReports(ctx)
			if err != nil {
				logger.Fatal(ctx, "batch run failed", zap.Error(err))
			}

			logger.Info(ctx, "batch run finished",
				zap.Int("total", summary.Total),
				zap.Int("delivered", summary.Delivered),
				zap.Int("skipped", summary.Skipped))
		},
	}

	return cmd
}
