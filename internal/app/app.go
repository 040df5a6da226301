// Package app wires configuration, storage, the catalog and the
// presentation layers together.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"booklib/internal/api"
	"booklib/internal/asset"
	"booklib/internal/bot"
	"booklib/internal/catalog"
	"booklib/internal/config"
	"booklib/internal/storage"
	"booklib/internal/storage/ch"
	"booklib/internal/storage/file"
	"booklib/internal/storage/stubs"
)

// App represents the application
type App struct {
	config  *config.Config
	logger  *zap.Logger
	db      storage.Storage
	catalog *catalog.Catalog
}

// baseWriteTimeout bounds a response apart from the configured add delay
const baseWriteTimeout = 10 * time.Second

// LoadConfig loads .env (if present) and then the environment
func LoadConfig() (*config.Config, error) {
	// Load .env file if it exists
	envErr := godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if envErr == nil {
		cfg.EnvFile = ".env"
	}
	return cfg, nil
}

// New opens storage and loads the catalog
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	db, err := OpenStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Open(ctx, db, logger, catalog.WithAddDelay(cfg.AddDelay))
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{
		config:  cfg,
		logger:  logger,
		db:      db,
		catalog: cat,
	}, nil
}

// OpenStorage creates the configured storage backend
func OpenStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Info("Using in-memory storage, changes are lost on exit")
		return stubs.NewMockDB(), nil

	case config.BackendClickHouse:
		logger.Info("Connecting to ClickHouse",
			zap.String("host", cfg.ClickHouseHost),
			zap.Int("port", cfg.ClickHousePort),
			zap.String("database", cfg.ClickHouseDatabase),
			zap.String("user", cfg.ClickHouseUser),
			zap.Bool("tls", cfg.ClickHouseUseTLS),
		)
		db, err := ch.NewClickHouseDB(
			cfg.ClickHouseHost,
			cfg.ClickHousePort,
			cfg.ClickHouseDatabase,
			cfg.ClickHouseUser,
			cfg.ClickHousePassword,
			cfg.ClickHouseUseTLS,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
		}
		return db, nil

	default:
		logger.Info("Using library file", zap.String("path", cfg.LibraryFile))
		return file.New(cfg.LibraryFile, logger), nil
	}
}

// Catalog returns the loaded catalog
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}

// Serve runs the HTTP server and, when configured, the Telegram bot until
// ctx is cancelled
func (a *App) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	apiServer := api.NewServer(a.catalog, a.logger)
	mux := http.NewServeMux()
	apiServer.RegisterRoutes(mux)

	go a.loadAnimation(ctx, apiServer)

	var telegramBot *bot.Bot
	if a.config.BotEnabled() {
		var err error
		telegramBot, err = bot.NewBot(a.config.TelegramToken, a.catalog, a.config.AllowedUserIDs, a.logger)
		if err != nil {
			return fmt.Errorf("failed to create Telegram bot: %w", err)
		}
		a.logger.Info("Bot created successfully", zap.Int64s("allowed_users", a.config.AllowedUserIDs))

		if a.config.WebhookMode {
			telegramBot.RegisterWebhook(ctx, mux)
		}
	} else {
		a.logger.Info("TELEGRAM_BOT_TOKEN not set, running without the bot")
	}

	server := &http.Server{
		Addr:         ":" + a.config.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: a.writeTimeout(),
	}

	errChan := make(chan error, 2)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("port", a.config.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	if telegramBot != nil {
		if a.config.WebhookMode {
			a.logger.Info("Starting bot in webhook mode", zap.String("webhook_url", a.config.WebhookURL))
			if err := telegramBot.StartWebhook(a.config.WebhookURL); err != nil {
				a.shutdownServer(server)
				return fmt.Errorf("failed to setup webhook: %w", err)
			}
		} else {
			go func() {
				if err := telegramBot.Start(ctx); err != nil {
					errChan <- fmt.Errorf("bot error: %w", err)
				}
			}()
		}
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down...")
	case runErr = <-errChan:
		a.logger.Error("Stopping after error", zap.Error(runErr))
	}

	cancel()
	a.shutdownServer(server)
	return runErr
}

// writeTimeout leaves room for the add delay that POST /api/books waits out
func (a *App) writeTimeout() time.Duration {
	return baseWriteTimeout + a.config.AddDelay
}

// loadAnimation fetches the decorative animation once. Failure only means
// the UI renders without it.
func (a *App) loadAnimation(ctx context.Context, apiServer *api.Server) {
	client := asset.NewClient(a.config.AnimationTimeout, a.logger)
	anim, err := client.FetchAnimation(ctx, a.config.AnimationURL)
	if err != nil {
		a.logger.Info("Animation unavailable, continuing without it",
			zap.String("url", a.config.AnimationURL),
			zap.Error(err),
		)
		return
	}
	apiServer.SetAnimation(anim)
}

func (a *App) shutdownServer(server *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("HTTP server shutdown error", zap.Error(err))
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	if err := a.db.Close(); err != nil {
		a.logger.Error("Error closing storage", zap.Error(err))
		return err
	}
	a.logger.Info("Shutdown complete")
	return nil
}
