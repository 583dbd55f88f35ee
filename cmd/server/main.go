package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultry/internal/backup"
	"github.com/mamadbah2/poultry/internal/config"
	"github.com/mamadbah2/poultry/internal/metrics"
	"github.com/mamadbah2/poultry/internal/scheduler"
	"github.com/mamadbah2/poultry/internal/server/handlers"
	"github.com/mamadbah2/poultry/internal/server/router"
	commandsvc "github.com/mamadbah2/poultry/internal/service/commands"
	"github.com/mamadbah2/poultry/internal/service/husbandry"
	reportingsvc "github.com/mamadbah2/poultry/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/poultry/internal/service/whatsapp"
	"github.com/mamadbah2/poultry/pkg/clients/anthropic"
	whatsappclient "github.com/mamadbah2/poultry/pkg/clients/whatsapp"
	"github.com/mamadbah2/poultry/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, closeStores, err := openStores(ctx, cfg, logger.Named(baseLogger, "stores"))
	if err != nil {
		baseLogger.Fatal("failed to open record stores", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer closeStores()
	baseLogger.Info("record stores ready", zap.String("driver", cfg.Store.Driver))

	prom := metrics.NewPrometheus()
	records := husbandry.NewServices(stores, husbandry.Options{Metrics: prom}, logger.Named(baseLogger, "svc.husbandry"))

	reportingSvc := reportingsvc.NewService(reportingsvc.Sources{
		Broilers: records.Broilers,
		Layers:   records.Layers,
		Eggs:     records.Eggs,
		Profiles: records.Poultry,
	}, logger.Named(baseLogger, "svc.reporting"))

	routes := router.Handlers{
		Records: handlers.NewRecordsHandler(records, logger.Named(baseLogger, "handlers.records")),
		Reports: handlers.NewReportHandler(reportingSvc, logger.Named(baseLogger, "handlers.reports")),
		Metrics: prom.Handler(),
	}

	jobs := scheduler.Jobs{Reporter: reportingSvc}

	if cfg.WhatsApp.Enabled() {
		var translator anthropic.Translator
		if cfg.AI.AnthropicKey != "" {
			translator = anthropic.NewClient(cfg.AI.AnthropicKey, logger.Named(baseLogger, "clients.anthropic"))
			baseLogger.Info("anthropic ai client enabled")
		} else {
			baseLogger.Warn("anthropic api key missing, natural language processing disabled")
		}

		dispatcher := commandsvc.NewService(records, reportingSvc, logger.Named(baseLogger, "svc.commands"))
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsappclient.NewClient(cfg.WhatsApp), dispatcher, translator, logger.Named(baseLogger, "svc.whatsapp"))
		routes.Webhook = handlers.NewWebhookHandler(messagingSvc, logger.Named(baseLogger, "handlers.whatsapp"))
		jobs.Notifier = messagingSvc
	} else {
		baseLogger.Warn("whatsapp token missing, webhook routes disabled")
	}

	if cfg.Backup.Enabled() {
		uploader, err := backup.NewS3Uploader(ctx, cfg.Backup)
		if err != nil {
			baseLogger.Fatal("failed to init s3 backup", zap.Error(err))
		}
		jobs.Backup = backup.NewService(uploader, cfg.Backup.Prefix, []backup.Source{
			records.Poultry, records.Broilers, records.Layers, records.Eggs,
		}, logger.Named(baseLogger, "backup"))
	}

	sched, err := scheduler.NewScheduler(*cfg, jobs, logger.Named(baseLogger, "scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.New(routes, logger.Named(baseLogger, "router")),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
