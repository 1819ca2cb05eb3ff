// Package main generates a full synthetic fraud dataset and exports it as
// CSV files: customers, merchants, transactions, devices and alerts.
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
	"shield-data-lab/internal/reporting"
)

func main() {
	env := flag.String("env", "development", "Environment (development|production)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV exports (overrides SHIELD_OUTPUT_DIR)")
	seed := flag.Int64("seed", 0, "Generation seed (overrides SHIELD_SEED when non-zero)")
	flag.Parse()

	log := logging.Must(*env)
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *seed != 0 {
		cfg.Seed = *seed
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

	if err := reporting.Export(cfg.OutputDir, result.Data); err != nil {
		log.Fatal("csv export failed", zap.Error(err))
	}

	log.Info("dataset exported",
		zap.String("dir", cfg.OutputDir),
		zap.Int("transactions", result.Summary.Transactions),
		zap.Int("fraud", result.Summary.FraudCount),
		zap.Float64("fraud_rate", result.Summary.FraudRate),
		zap.Int("alerts", result.Summary.Alerts),
	)
}
