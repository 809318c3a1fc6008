package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gorm.io/gorm"

	"chaoscatering/internal/ai"
	"chaoscatering/internal/config"
	"chaoscatering/internal/db"
	"chaoscatering/internal/db/mock"
	applog "chaoscatering/internal/log"
	"chaoscatering/internal/server"
	"chaoscatering/internal/workspace"
	"chaoscatering/models"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc = func() (config.Config, error) {
		if err := config.LoadDotEnv(); err != nil {
			return config.Config{}, err
		}
		return config.Load()
	}
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	openKitchenFunc     = func(ctx context.Context, database *gorm.DB) (*workspace.Workspace, error) {
		repo, err := db.NewRepository(database)
		if err != nil {
			return nil, err
		}
		return workspace.Open(ctx, repo)
	}
	newAssistantFunc = func(cfg config.AIConfig) (*ai.Client, error) {
		return ai.NewClient(ai.Config{
			APIKey:            cfg.APIKey,
			Model:             cfg.Model,
			BaseURL:           cfg.BaseURL,
			Timeout:           cfg.Timeout,
			RequestsPerMinute: cfg.RequestsPerMinute,
			PriceCacheTTL:     cfg.PriceCacheTTL,
		})
	}
	newServerFunc = func(cfg server.Config) (serverLifecycle, error) {
		srv, err := server.New(cfg)
		if err != nil {
			return nil, err
		}
		return srv, nil
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}
	defer func() { _ = applog.Sync() }()

	var database *gorm.DB
	if cfg.Database.UseMock || cfg.Database.URL == "" {
		applog.Info(ctx, "using in-memory demo database")
		database, err = newMockDatabaseFunc(ctx)
	} else {
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "database setup failed", "error", err)
		return 1
	}

	kitchen, err := openKitchenFunc(ctx, database)
	if err != nil {
		applog.Error(ctx, "failed to load kitchen", "error", err)
		return 1
	}

	serverCfg := server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		Database:     database,
		Kitchen:      kitchen,
		PrepSections: prepSections(ctx, cfg.Kitchen.PrepSections),
	}

	if cfg.AI.APIKey != "" {
		client, err := newAssistantFunc(cfg.AI)
		if err != nil {
			applog.Warn(ctx, "ai assistant disabled", "error", err)
		} else if client != nil {
			serverCfg.Assistant = client
		}
	} else {
		applog.Info(ctx, "no ai api key configured, document extraction disabled")
	}

	srv, err := newServerFunc(serverCfg)
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", serverCfg.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server exited with error", "error", err)
		return 1
	}
	return 0
}

// prepSections maps configured station names onto known sections. Unknown
// names are skipped; nil keeps the kitchen default.
func prepSections(ctx context.Context, names []string) []models.Section {
	var out []models.Section
	for _, name := range names {
		section := models.NormalizeSection(name)
		if !strings.EqualFold(string(section), strings.TrimSpace(name)) {
			applog.Warn(ctx, "ignoring unknown prep section", "section", name)
			continue
		}
		out = append(out, section)
	}
	return out
}
