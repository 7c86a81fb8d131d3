// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads examfetch settings from an optional YAML file, the
// EXAMFETCH_* environment and built-in defaults, and builds the logger.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/examfetch/internal/httputil"
	"github.com/pdiddy/examfetch/internal/wiki"
	"github.com/pdiddy/examfetch/pkg/types"
)

const (
	// Name is the config file base name and the ~/.config subdirectory.
	Name = "examfetch"
	// EnvPrefix prefixes every environment override, e.g. EXAMFETCH_VIDEOS_API_KEY.
	EnvPrefix = "EXAMFETCH"

	DefaultTimeout = 12 * time.Second
)

// SetDefaults registers every known key on v. Keys must be registered for
// AutomaticEnv to reach them during Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", DefaultTimeout)
	v.SetDefault("http.user_agent", httputil.DefaultUserAgent)
	v.SetDefault("wiki.search_url", wiki.DefaultSearchURL)
	v.SetDefault("wiki.page_url", wiki.DefaultPageURL)
	v.SetDefault("wiki.search_limit", 5)
	v.SetDefault("videos.enabled", true)
	v.SetDefault("videos.api_key", "")
	v.SetDefault("videos.endpoint", "")
	v.SetDefault("videos.max_results", 6)
	v.SetDefault("videos.timeout", 0)
	v.SetDefault("books.api_key", "")
	v.SetDefault("books.endpoint", "")
	v.SetDefault("books.max_results", 6)
	v.SetDefault("books.timeout", 0)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// Load reads configuration from cfgFile, or from examfetch.yaml in the
// working directory or ~/.config/examfetch/ when cfgFile is empty. A
// missing file in the search path is not an error; a missing explicit
// file is.
func Load(cfgFile string) (types.Config, string, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, "", eris.Wrap(err, "config: read file")
		}
	}

	cfg, err := Unmarshal(v)
	if err != nil {
		return types.Config{}, "", err
	}
	return cfg, v.ConfigFileUsed(), nil
}

// Unmarshal decodes v into a Config and fills derived values: per-lookup
// timeouts inherit http.timeout when unset.
func Unmarshal(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, eris.Wrap(err, "config: unmarshal")
	}
	if cfg.HTTP.Timeout <= 0 {
		cfg.HTTP.Timeout = DefaultTimeout
	}
	if cfg.Videos.Timeout <= 0 {
		cfg.Videos.Timeout = cfg.HTTP.Timeout
	}
	if cfg.Books.Timeout <= 0 {
		cfg.Books.Timeout = cfg.HTTP.Timeout
	}
	return cfg, nil
}

// NewLogger builds a zap logger writing to stderr. Format "json" selects
// the production encoder; anything else gets the console encoder.
func NewLogger(cfg types.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
	}

	levelName := cfg.Level
	if levelName == "" {
		levelName = "warn"
	}
	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return nil, eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, eris.Wrap(err, "config: build logger")
	}
	return logger, nil
}
