package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Brownie44l1/doodle-api/internal/config"
	"github.com/Brownie44l1/doodle-api/internal/logger"
	"github.com/Brownie44l1/doodle-api/internal/metrics"
	"github.com/Brownie44l1/doodle-api/internal/model"
	"github.com/Brownie44l1/doodle-api/internal/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	collector := metrics.NewCollector(prometheus.DefaultRegisterer)

	// A failed load leaves the service up but degraded.
	models := model.NewHolder()
	state := models.Load(model.Options{
		ModelPath:    cfg.Model.Path,
		MetadataPath: cfg.Model.MetadataPath,
		LabelsPath:   cfg.Model.LabelsPath,
		LibraryPath:  cfg.Model.LibraryPath,
		TopK:         cfg.Model.TopK,
		Invert:       cfg.Preprocess.Invert,
		Recorder:     collector,
	}, log)
	collector.SetModelLoaded(state == model.StateLoaded)
	defer func() {
		if err := models.Close(); err != nil {
			log.Error("Failed to release model", zap.Error(err))
		}
	}()

	srv := server.NewServer(&server.Config{
		Addr:           cfg.Addr(),
		Mode:           cfg.Server.Mode,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		Models:         models,
		Metrics:        collector,
		Logger:         log,
	})

	log.Info("Doodle Recognition API starting",
		zap.String("address", cfg.Addr()),
		zap.String("model_state", state.String()),
		zap.Strings("cors_origins", cfg.CORS.AllowedOrigins))
	log.Info("Endpoints",
		zap.Strings("routes", []string{
			"GET / - status message",
			"GET /health - model state",
			"GET /metrics - Prometheus metrics",
			"POST /predict/ - predict from image upload (field 'file')",
			"POST /predict/tensor - predict from preprocessed tensor",
		}))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("Received shutdown signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
