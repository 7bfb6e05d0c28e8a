package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"formpilot/internal/browser"
	"formpilot/internal/config"
	"formpilot/internal/email/noop"
	"formpilot/internal/email/ses"
	"formpilot/internal/extractor"
	_ "formpilot/internal/extractor/claude"
	_ "formpilot/internal/extractor/gemini"
	_ "formpilot/internal/extractor/openai"
	"formpilot/internal/handler"
	"formpilot/internal/mapper"
	"formpilot/internal/port"
	"formpilot/internal/repository/memory"
	"formpilot/internal/router"
	"formpilot/internal/service"
	localstorage "formpilot/internal/storage/local"
	s3storage "formpilot/internal/storage/s3"
	recordvalidator "formpilot/internal/validator/record"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize the record store
	recordStore := memory.NewRecordStore(cfg.Records.TTL, cfg.Records.CleanupInterval)

	// Initialize the model clients
	recordExtractor, err := extractor.BuildFromConfig(&cfg.Extractor)
	if err != nil {
		return fmt.Errorf("failed to build extractor: %w", err)
	}
	fieldMapper, err := mapper.BuildFromConfig(&cfg.Mapper)
	if err != nil {
		return fmt.Errorf("failed to build mapper: %w", err)
	}

	// Initialize the browser provider and run sinks
	browserProvider, err := browser.NewProvider(&cfg.Browser)
	if err != nil {
		return fmt.Errorf("failed to build browser provider: %w", err)
	}
	artifactStore, err := buildArtifactStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to build artifact store: %w", err)
	}
	notifier, err := buildNotifier(cfg)
	if err != nil {
		return fmt.Errorf("failed to build notifier: %w", err)
	}

	// Initialize services
	extractSvc := service.NewExtractService(recordExtractor, recordStore, recordvalidator.NewEngine(), cfg)
	recordSvc := service.NewRecordService(recordStore)
	populateSvc := service.NewPopulateService(recordStore, browserProvider, fieldMapper, artifactStore, notifier, cfg)

	// Initialize handlers
	extractH := handler.NewExtractHandler(extractSvc)
	populateH := handler.NewPopulateHandler(populateSvc)
	recordH := handler.NewRecordHandler(recordSvc)
	healthH := handler.NewHealthHandler(cfg)

	// Setup router
	r := router.Setup(cfg, extractH, populateH, recordH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if serr := srv.ListenAndServe(); serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func buildArtifactStore(cfg *config.Config) (port.ArtifactStore, error) {
	switch cfg.Artifacts.Backend {
	case "s3":
		return s3storage.NewArtifactStore(&cfg.Artifacts.S3)
	case "", "local":
		return localstorage.NewArtifactStore(cfg.Artifacts.LocalDir)
	default:
		return nil, fmt.Errorf("unknown artifacts backend: %s", cfg.Artifacts.Backend)
	}
}

func buildNotifier(cfg *config.Config) (port.RunNotifier, error) {
	switch cfg.Email.Provider {
	case "ses":
		return ses.NewRunNotifier(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.ToAddress)
	case "", "noop":
		return noop.NewNotifier(), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Email.Provider)
	}
}
