package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hh-harvester/internal/clients/hh"
	"github.com/maxaizer/hh-harvester/internal/config"
	"github.com/maxaizer/hh-harvester/internal/export"
	"github.com/maxaizer/hh-harvester/internal/logger"
	"github.com/maxaizer/hh-harvester/internal/metrics"
	"github.com/maxaizer/hh-harvester/internal/notify"
	"github.com/maxaizer/hh-harvester/internal/repositories"
	"github.com/maxaizer/hh-harvester/internal/salary"
	"github.com/maxaizer/hh-harvester/internal/services"
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"syscall"
)

func newCollector(cfg *config.Config, bus EventBus.Bus) *services.Collector {

	hhClient := hh.NewClient()
	hhClient.SetBaseURL(cfg.HH.BaseURL)
	if cfg.HH.MaxRequestsPerSecond > 0 {
		hhClient.SetRateLimit(cfg.HH.MaxRequestsPerSecond)
	}
	hhClient.SetRequestTimeout(cfg.HH.RequestTimeout)
	hhClient.SetSearchParameters(cfg.HH.SearchParameters())

	normalizer := salary.NewNormalizer(cfg.Collector.SalaryRates(), cfg.Collector.GrossFactor)
	fetcher := services.NewDetailFetcher(hhClient, normalizer, cfg.Collector.DetailCacheTTL)

	collector, err := services.NewCollector(services.NewIDCollector(hhClient), fetcher, bus,
		cfg.Collector.Workers, services.FailurePolicy(cfg.Collector.FailurePolicy))
	if err != nil {
		log.Fatalf("can't create collector: %v", err)
	}
	return collector
}

func newExporters(ctx context.Context, cfg config.ExportConfig) ([]services.Exporter, func()) {

	var exporters []services.Exporter
	var closers []func()

	if cfg.CSVPath != "" {
		exporters = append(exporters, export.NewCSVExporter(cfg.CSVPath))
	}

	if cfg.ClickHouse.Addr != "" {
		clickhouse, err := export.NewClickHouseExporter(cfg.ClickHouse)
		if err != nil {
			log.Fatalf("can't connect to clickhouse: %v", err)
		}
		if err = clickhouse.CreateTable(ctx); err != nil {
			log.Fatalf("can't create clickhouse table: %v", err)
		}
		exporters = append(exporters, clickhouse)
		closers = append(closers, func() { _ = clickhouse.Close() })
	}

	if cfg.NATS.URL != "" {
		nats, err := export.NewNATSExporter(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			log.Fatalf("can't connect to nats: %v", err)
		}
		exporters = append(exporters, nats)
		closers = append(closers, nats.Close)
	}

	return exporters, func() {
		for _, closeExporter := range closers {
			closeExporter()
		}
	}
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run returns the error of a single collection run; scheduled mode returns
// nil on shutdown.
func run() error {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer(cfg.Metrics.Address)

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	runs := repositories.NewRunsRepository(dbContext.DB)

	bus := EventBus.New()
	if _, err = services.NewProgressReporter(bus, 10); err != nil {
		log.Fatalf("can't subscribe progress reporter: %v", err)
	}

	exporters, closeExporters := newExporters(ctx, cfg.Export)
	defer closeExporters()

	harvester := services.NewHarvester(newCollector(cfg, bus), exporters, runs, cfg.Collector.PageLimit)

	if cfg.Telegram.Enabled() {
		notifier, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Fatalf("can't create telegram notifier: %v", err)
		}
		harvester.WithNotifier(notifier)
	}

	cleaner, err := services.NewHistoryCleaner(runs, cfg.DB.HistoryDays)
	if err != nil {
		log.Fatalf("can't create history cleaner: %v", err)
	}

	if cfg.Collector.Schedule == "" {
		cleaner.Clean(ctx)
		return harvester.Run(ctx)
	}

	if err = cleaner.Start(); err != nil {
		log.Fatalf("can't start history cleaner: %v", err)
	}
	defer cleaner.Stop()

	scheduler := services.NewScheduler(cfg.Collector.Schedule, harvester)
	if err = scheduler.Start(ctx); err != nil {
		log.Fatalf("can't start scheduler: %v", err)
	}

	<-ctx.Done()

	log.Info("Shutting down services...")
	scheduler.Stop()
	log.Info("Services stopped.")
	return nil
}
