package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	grpcapi "nexuscore-backend/internal/api/grpc"
	httpapi "nexuscore-backend/internal/api/http"
	"nexuscore-backend/internal/config"
	"nexuscore-backend/internal/enrichment"
	"nexuscore-backend/internal/flow"
	"nexuscore-backend/internal/jobs"
	"nexuscore-backend/internal/logger"
	"nexuscore-backend/internal/metrics"
	"nexuscore-backend/internal/repository/memory"
	"nexuscore-backend/internal/scheduler"
	"nexuscore-backend/internal/security"
	"nexuscore-backend/internal/service"
)

const shutdownGrace = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the gRPC health endpoint and the cron scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return serve(cmd.Context(), configPath)
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting NexusCore backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "http", cfg.GetServerAddress(), "grpc", cfg.GetGRPCAddress())

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Repositories
	store := memory.NewStore(nil)
	m := metrics.New("nexuscore")

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// Initialize Enrichment
	var gen enrichment.Generator = enrichment.Unavailable{}
	if cfg.Enrichment.APIKey != "" {
		gemini, err := enrichment.NewGeminiGenerator(ctx, enrichment.GeminiConfig{
			APIKey:     cfg.Enrichment.APIKey,
			Model:      cfg.Enrichment.Model,
			Endpoint:   cfg.Enrichment.Endpoint,
			MaxRetries: cfg.Enrichment.MaxRetries,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize gemini client: %w", err)
		}
		gen = gemini
		logger.Info("Generative text enabled", "model", cfg.Enrichment.Model)
	} else {
		logger.Warn("No generative text API key configured, fallback text only")
	}
	enricher := enrichment.NewEnricher(gen, cfg.Enrichment.Timeout, m)

	// Initialize Services
	sessionSvc := service.NewSessionService(store, tokenManager, flow.RealClock(), cfg.Session.IdleTTL, m)
	insightSvc := service.NewInsightService(store, enricher)
	handler := httpapi.NewHandler(httpapi.Services{
		Sessions: sessionSvc,
		Auth:     service.NewAuthService(store, cfg.Latency, m),
		Profile:  service.NewProfileService(store, cfg.Latency),
		Checkout: service.NewCheckoutService(store, cfg.Latency, m),
		Gateways: service.NewGatewayService(store, cfg.Latency, m),
		Insight:  insightSvc,
	})

	// Set up scheduler
	sched := scheduler.NewScheduler(jobs.NewJobRunner(&jobs.Services{
		Sessions: sessionSvc,
		Insight:  insightSvc,
	}, cfg))
	sched.Start()
	defer sched.Stop()

	// Set up gRPC server
	lis, err := net.Listen("tcp", cfg.GetGRPCAddress())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.GetGRPCAddress(), err)
	}
	grpcServer := grpcapi.NewServer(sessionSvc)

	httpServer := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(handler, m),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("gRPC server listening", "address", cfg.GetGRPCAddress())
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	case err = <-errCh:
		logger.Error("Server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if serr := httpServer.Shutdown(shutdownCtx); serr != nil {
		logger.Error("HTTP shutdown error", "error", serr)
	}
	grpcServer.Shutdown()
	logger.Info("NexusCore backend stopped")
	return err
}
