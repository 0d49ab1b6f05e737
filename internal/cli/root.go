package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ogulcanaydogan/vitals-guardian/internal/config"
	"github.com/ogulcanaydogan/vitals-guardian/pkg/alerts"
	"github.com/ogulcanaydogan/vitals-guardian/pkg/monitor"
	"github.com/ogulcanaydogan/vitals-guardian/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "vitals",
	Short: "Vitals Guardian - patient vital sign monitoring and alerting",
	Long: `Vitals Guardian checks blood pressure and temperature readings against
each patient's own baseline and raises a warning through the configured
notifiers (Slack, webhook or log) when a reading deviates.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.vitals/config.yaml)")
}

// loadConfig loads the configuration.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger creates a structured logger from config.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

// initStorage opens the patient directory and applies the seed file, if any.
func initStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	var (
		store storage.Storage
		err   error
	)
	switch cfg.Storage.Driver {
	case "memory":
		store = storage.NewMemory()
	default:
		store, err = storage.NewSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
	}

	if cfg.Directory.SeedFile != "" {
		patients, err := storage.LoadSeed(cfg.Directory.SeedFile)
		if err != nil {
			store.Close()
			return nil, err
		}
		if err := storage.Seed(ctx, store, patients); err != nil {
			store.Close()
			return nil, err
		}
	}

	return store, nil
}

// initNotifier builds the alert channel from config. Without any
// integration enabled, alerts go to the log.
func initNotifier(cfg *config.Config, logger *slog.Logger) alerts.Notifier {
	var notifiers []alerts.Notifier

	if cfg.Alerts.Slack.Enabled && cfg.Alerts.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alerts.NewSlackNotifier(
			cfg.Alerts.Slack.WebhookURL,
			cfg.Alerts.Slack.Channel,
		))
	}

	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alerts.NewWebhookNotifier(
			cfg.Alerts.Webhook.URL,
			cfg.Alerts.Webhook.Secret,
		))
	}

	switch len(notifiers) {
	case 0:
		return alerts.NewLogNotifier(logger)
	case 1:
		return notifiers[0]
	default:
		return alerts.NewMulti(notifiers...)
	}
}

// initMonitor creates a fully wired monitor.
func initMonitor(ctx context.Context, cfg *config.Config) (*monitor.Monitor, storage.Storage, error) {
	logger := newLogger(cfg)

	margin, err := decimal.NewFromString(cfg.Monitor.TemperatureMargin)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid monitor.temperature_margin %q: %w", cfg.Monitor.TemperatureMargin, err)
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	m := monitor.NewMonitor(store, initNotifier(cfg, logger), margin, logger)
	return m, store, nil
}
