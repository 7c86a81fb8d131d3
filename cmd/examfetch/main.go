// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the examfetch CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/examfetch/internal/config"
	"github.com/pdiddy/examfetch/internal/secrets"
	"github.com/pdiddy/examfetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Populated by the root command before any subcommand runs.
var (
	appConfig     types.Config
	logger        = zap.NewNop()
	loadedSecrets secrets.Set
)

// rootCmd is the base command for the examfetch CLI.
var rootCmd = &cobra.Command{
	Use:   "examfetch",
	Short: "Fetch study information for an exam",
	Long: `examfetch gathers study information for a named exam. It looks the exam up
on Wikipedia and pulls out the summary, syllabus and exam pattern sections,
then suggests preparation videos (YouTube, needs an API key) and books
(Google Books).

API keys are read from flags, the config file or EXAMFETCH_* environment,
the .secrets/ directory (one file per key, e.g. youtube-api-key), or a
.env file (YOUTUBE_API_KEY=...), in that order.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./examfetch.yaml or ~/.config/examfetch/examfetch.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of API key files")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file with API keys")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (overrides config)")
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, used, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}

	log, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	if used != "" {
		log.Info("using config file", zap.String("path", used))
	}

	secretsDir, _ := cmd.Flags().GetString("secrets-dir")
	files, err := secrets.Load(secretsDir, log)
	if err != nil {
		return err
	}
	envFile, _ := cmd.Flags().GetString("env-file")
	dotenv, err := secrets.LoadDotEnv(envFile)
	if err != nil {
		return err
	}
	loadedSecrets = secrets.NewSet(files, dotenv)
	if names := loadedSecrets.Names(); len(names) > 0 {
		sort.Strings(names)
		log.Info("loaded secrets", zap.Strings("keys", names))
	}

	appConfig = cfg
	logger = log
	return nil
}

// secretDefault returns value if it is set, otherwise the named secret.
func secretDefault(value, fileKey, envKey string) string {
	if value != "" {
		return value
	}
	v, _ := loadedSecrets.Lookup(fileKey, envKey)
	return v
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
