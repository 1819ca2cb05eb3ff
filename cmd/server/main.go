// Package main generates a dataset in memory and serves it over the HTTP
// preview API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"shield-data-lab/internal/api"
	"shield-data-lab/internal/config"
	"shield-data-lab/internal/logging"
	"shield-data-lab/internal/pipeline"
)

func main() {
	env := flag.String("env", "development", "Environment (development|production)")
	addr := flag.String("addr", "", "Listen address (overrides SHIELD_HTTP_ADDR)")
	flag.Parse()

	log := logging.Must(*env)
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := pipeline.New(cfg, log).Run(ctx)
	if err != nil {
		log.Fatal("pipeline failed", zap.Error(err))
	}

	handler := api.NewHandler(result.Data, result.Summary)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewRouter(handler, log),
	}

	go func() {
		log.Info("serving dataset preview", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info("received signal, shutting down", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
