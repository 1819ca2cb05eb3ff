// Package main generates a dataset and loads it into the staging backends:
// the Postgres staging schema, verified by quality checks, and optionally
// the ClickHouse analytics table.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"shield-data-lab/internal/config"
	"shield-data-lab/internal/logging"
	"shield-data-lab/internal/pipeline"
	"shield-data-lab/internal/storage/clickhouse"
	"shield-data-lab/internal/storage/migrations"
	"shield-data-lab/internal/storage/postgres"
)

func main() {
	env := flag.String("env", "development", "Environment (development|production)")
	skipClickhouse := flag.Bool("skip-clickhouse", false, "Skip the analytics load")
	flag.Parse()

	log := logging.Must(*env)
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	if cfg.PostgresDSN == "" {
		log.Fatal("SHIELD_POSTGRES_DSN is required for staging")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("received signal, cancelling run", zap.String("signal", sig.String()))
		cancel()
	}()

	result, err := pipeline.New(cfg, log).Run(ctx)
	if err != nil {
		log.Fatal("pipeline failed", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		log.Fatal("postgres migrations", zap.Error(err))
	}

	report, err := postgres.NewImporter(pool).Import(ctx, result.Data)
	if err != nil {
		log.Fatal("staging import", zap.Error(err))
	}
	if !report.Clean() {
		log.Fatal("staging quality checks failed",
			zap.Int64("orphan_transactions", report.OrphanTransactions),
			zap.Int64("orphan_devices", report.OrphanDevices),
			zap.Int64("orphan_alerts", report.OrphanAlerts),
			zap.Int64("label_mismatches", report.LabelMismatches),
		)
	}
	log.Info("staging import complete",
		zap.Int64("transactions", report.Transactions),
		zap.Int64("fraud", report.FraudCount),
		zap.Float64("fraud_rate", report.FraudRate),
	)

	if *skipClickhouse {
		return
	}
	if cfg.ClickHouseDSN == "" {
		log.Warn("SHIELD_CLICKHOUSE_DSN not set, skipping analytics load")
		return
	}

	conn, err := clickhouse.NewConn(ctx, cfg.ClickHouseDSN)
	if err != nil {
		log.Fatal("connect clickhouse", zap.Error(err))
	}
	defer conn.Close()

	if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
		log.Fatal("clickhouse migrations", zap.Error(err))
	}

	analytics := clickhouse.NewAnalyticsStore(conn)
	if err := analytics.Truncate(ctx); err != nil {
		log.Fatal("truncate analytics", zap.Error(err))
	}
	if err := analytics.InsertBulk(ctx, result.Data.Transactions); err != nil {
		log.Fatal("analytics load", zap.Error(err))
	}
	log.Info("analytics load complete", zap.Int("transactions", len(result.Data.Transactions)))
}
