// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every lookup that makes
// network requests.
type HTTPConfig struct {
	// Timeout bounds each individual network call.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "examfetch/0.1"). Wikipedia rejects anonymous agents.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// WikiConfig holds settings for the encyclopedia lookup.
type WikiConfig struct {
	// SearchURL is the MediaWiki action API endpoint.
	SearchURL string `json:"search_url" yaml:"search_url" mapstructure:"search_url"`

	// PageURL is the REST endpoint that serves rendered page HTML; the page
	// slug is appended as the final path segment.
	PageURL string `json:"page_url" yaml:"page_url" mapstructure:"page_url"`

	// SearchLimit is the srlimit sent with each search (default 5).
	SearchLimit int `json:"search_limit" yaml:"search_limit" mapstructure:"search_limit"`
}

// VideoConfig holds settings for the YouTube lookup.
type VideoConfig struct {
	// Enabled turns the lookup off entirely when false.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// APIKey is the YouTube Data API key. Without it the lookup is disabled.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Endpoint overrides the Google API base URL (tests, proxies).
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`

	// MaxResults caps the number of videos in a report (default 6).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// Timeout bounds each search call.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// BookConfig holds settings for the Google Books lookup.
type BookConfig struct {
	// APIKey is optional; Google Books serves anonymous volume searches.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Endpoint overrides the Google API base URL (tests, proxies).
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`

	// MaxResults caps the number of books in a report (default 6).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// Timeout bounds each search call.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "console" or "json".
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings for one examfetch invocation.
type Config struct {
	HTTP   HTTPConfig  `json:"http" yaml:"http" mapstructure:"http"`
	Wiki   WikiConfig  `json:"wiki" yaml:"wiki" mapstructure:"wiki"`
	Videos VideoConfig `json:"videos" yaml:"videos" mapstructure:"videos"`
	Books  BookConfig  `json:"books" yaml:"books" mapstructure:"books"`
	Log    LogConfig   `json:"log" yaml:"log" mapstructure:"log"`
}
