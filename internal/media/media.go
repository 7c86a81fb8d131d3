// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package media suggests preparation videos (YouTube Data API) and books
// (Google Books) for an exam. Both lookups are best-effort: failures are
// logged and produce an empty result.
package media

import (
	"strings"

	"google.golang.org/api/option"
)

// clientOptions builds the Google API client options for an optional key
// and an optional endpoint override.
func clientOptions(apiKey, endpoint string) []option.ClientOption {
	var opts []option.ClientOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else {
		opts = append(opts, option.WithoutAuthentication())
	}
	if endpoint != "" {
		if !strings.HasSuffix(endpoint, "/") {
			endpoint += "/"
		}
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	return opts
}

func capResults(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}
