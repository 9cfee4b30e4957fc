package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haukened/linkcheck/internal/link/bootstrap"
	"github.com/haukened/linkcheck/internal/link/common/clock"
	"github.com/haukened/linkcheck/internal/link/common/log"
	"github.com/haukened/linkcheck/internal/link/config"
	"github.com/haukened/linkcheck/internal/link/gateways/transport"
	"github.com/haukened/linkcheck/internal/link/services/checker"
)

const (
	version = "0.1.0-dev"
	appName = "linkcheckd"
)

// Application holds the wired components of the link checking daemon.
type Application struct {
	config    *config.AppConfig
	transport transport.ServerTransport
	checker   *checker.Checker
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info(map[string]any{
		"app":           appName,
		"version":       version,
		"env":           cfg.Env,
		"log_level":     cfg.LogLevel,
		"port":          cfg.Port,
		"cache_size":    cfg.CacheSize,
		"builtin_rules": cfg.BuiltinRules,
		"rules_file":    cfg.RulesFile,
		"rule_lists":    cfg.RuleLists,
	}, "Starting linkcheck server")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err}, "Failed to build application")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatal(map[string]any{"error": err}, "Server failed")
	}

	log.Info(nil, "linkcheck server stopped gracefully")
}

// buildApplication loads the rule set and wires repositories, services and the
// HTTP transport.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	clk := clock.RealClock{}
	logger := log.GetLogger()

	svc, err := bootstrap.NewChecker(cfg, clk, logger)
	if err != nil {
		return nil, err
	}

	httpTransport := transport.NewHTTPTransport(transport.HTTPOptions{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		MaxUploadBytes: cfg.MaxUploadBytes,
		Clock:          clk,
		Logger:         logger.With(map[string]any{"component": "transport"}),
	})

	return &Application{
		config:    cfg,
		transport: httpTransport,
		checker:   svc,
	}, nil
}

// Run starts the transport and blocks until ctx is cancelled.
func (app *Application) Run(ctx context.Context) error {
	if err := app.transport.Start(ctx, app.checker); err != nil {
		return fmt.Errorf("failed to start HTTP transport: %w", err)
	}

	log.Info(map[string]any{
		"address":   app.transport.Address(),
		"transport": "HTTP",
	}, "linkcheck server started")

	<-ctx.Done()
	log.Info(nil, "Shutdown initiated")

	if err := app.transport.Stop(); err != nil {
		return fmt.Errorf("transport shutdown: %w", err)
	}
	log.Info(nil, "Graceful shutdown completed")
	return nil
}
