package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	apiserver "github.com/incomewatch/tax-estimator/internal/api_server"
	"github.com/incomewatch/tax-estimator/internal/config"
	"github.com/incomewatch/tax-estimator/internal/service"
	"github.com/incomewatch/tax-estimator/pkg/log"
	"github.com/incomewatch/tax-estimator/pkg/version"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the tax-estimator api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := log.InitLog(log.ParseLevel(cfg.Service.LogLevel), cfg.Service.LogFormat)
		defer func() { _ = logger.Sync() }()

		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Infow("Starting API service", "version", version.Get().String())
		defer zap.S().Info("API service stopped")

		estimationSrv, err := service.NewEstimationServiceFromFiles(cfg.Service.BracketsFile, cfg.Service.CatalogFile, cfg.Service.ContributionMultiplier)
		if err != nil {
			zap.S().Fatalw("building estimation service", "error", err)
		}
		reportSrv := service.NewReportService()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, estimationSrv, reportSrv, listener)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("Error running server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("Error running metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
