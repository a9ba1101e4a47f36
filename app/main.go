package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/alittlebirdy/briefgen/app/api"
	"github.com/alittlebirdy/briefgen/app/brief"
	"github.com/alittlebirdy/briefgen/app/cfg"
	"github.com/alittlebirdy/briefgen/app/config"
	"github.com/alittlebirdy/briefgen/app/database"
	"github.com/alittlebirdy/briefgen/app/feed"
	"github.com/alittlebirdy/briefgen/app/notify"
	"github.com/alittlebirdy/briefgen/app/oracle"
	"github.com/alittlebirdy/briefgen/app/publish"
	"github.com/alittlebirdy/briefgen/app/tasks"
)

func main() {
	// Local development convenience; in CI the environment is already set
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)
	slog.Info("Starting briefgen", "version", appCfg.Version)

	loader := config.NewLoader(appCfg.VerticalsDir)
	verticals, err := loader.LoadAll()
	if err != nil {
		slog.Error("Failed to load vertical configurations", "error", err)
		os.Exit(1)
	}
	if len(verticals) == 0 {
		slog.Error("No vertical configurations found", "dir", appCfg.VerticalsDir)
		os.Exit(1)
	}
	slog.Info("Loaded vertical configurations", "count", len(verticals))

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open run history database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Debug("Database migrated", "version", version, "dirty", dirty)

	deps := buildDeps(appCfg, database.NewRunRepository(db))

	if appCfg.Daemon {
		runDaemon(appCfg, verticals, deps)
		return
	}

	runOnce(verticals, deps)
}

func buildDeps(appCfg *cfg.Cfg, runRepo database.RunRepositoryInterface) tasks.Deps {
	// Per-request timeouts are handled via contexts; the shared client
	// itself stays unbounded.
	httpClient := &http.Client{}
	timeout := time.Duration(appCfg.FetchTimeout) * time.Second

	renderer := publish.NewRenderer()

	deps := tasks.Deps{
		Fetcher:    feed.NewFetcher(httpClient, timeout, appCfg.UserAgent),
		Normalizer: feed.NewNormalizer(),
		Extractor:  feed.NewExtractor(httpClient, timeout, appCfg.UserAgent),
		Composer:   brief.NewComposer(),
		Converter:  brief.NewConverter(),
		Summarizer: oracle.NewClient(appCfg.OpenAIAPIKey, appCfg.Model, appCfg.MaxTokens),
		Renderer:   renderer,
		Mutator:    publish.NewMutator(),
		Archive:    publish.NewArchive(appCfg.SiteDir, renderer),
		RunRepo:    runRepo,
		SiteDir:    appCfg.SiteDir,
	}

	if appCfg.TelegramToken != "" && appCfg.TelegramChatID != 0 {
		notifier, err := notify.NewTelegramNotifier(appCfg.TelegramToken, appCfg.TelegramChatID)
		if err != nil {
			slog.Warn("Failed to set up telegram notifications", "error", err)
		} else {
			deps.Notifier = notifier
			slog.Info("Telegram notifications enabled")
		}
	}

	return deps
}

// runOnce publishes every enabled vertical sequentially and exits
// non-zero when any vertical failed.
func runOnce(verticals []*config.Vertical, deps tasks.Deps) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed := 0
	for _, vertical := range verticals {
		if !vertical.Settings.Enabled {
			slog.Debug("Vertical disabled, skipping", "vertical", vertical.ID)
			continue
		}

		task := tasks.NewPublishVerticalTask(vertical, deps)
		task.Start()
		if err := task.Execute(ctx); err != nil {
			slog.Error("Vertical run failed", "vertical", vertical.ID, "error", err)
			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func runDaemon(appCfg *cfg.Cfg, verticals []*config.Vertical, deps tasks.Deps) {
	scheduler := tasks.NewScheduler(verticals, deps,
		time.Duration(appCfg.SchedulerInterval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(deps.RunRepo, appCfg.Version)
	server := api.NewServer(handler, appCfg.SiteDir)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("HTTP server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
