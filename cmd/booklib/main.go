package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"booklib/internal/app"
	"booklib/internal/config"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "booklib",
	Short: "booklib - a personal library catalog",
	Long: `booklib keeps track of the books you own: what you have read,
who wrote them and when they were published.

Run "booklib serve" to start the HTTP API and the optional Telegram bot.
The other commands work on the same library from the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = app.LoadConfig()
		if err != nil {
			return err
		}
		logger, err = app.NewLogger(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		if cfg.EnvFile == "" {
			logger.Debug("No .env file found, using system environment variables")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and, when configured, the Telegram bot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("Starting booklib")
		application, err := app.New(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer application.Close()

		return application.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, listCmd, addCmd, removeCmd, searchCmd, statsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
