// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wiki resolves an exam name to a Wikipedia page and turns that
// page into a WikiInfo. Every failure is logged and reported as absence;
// nothing in this package returns an error to the aggregator.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pdiddy/examfetch/internal/httputil"
	"github.com/pdiddy/examfetch/internal/sections"
	"github.com/pdiddy/examfetch/pkg/types"
)

const (
	// DefaultSearchURL is the MediaWiki action API endpoint.
	DefaultSearchURL = "https://en.wikipedia.org/w/api.php"
	// DefaultPageURL serves rendered page HTML; the slug is appended.
	DefaultPageURL = "https://en.wikipedia.org/api/rest_v1/page/html/"

	defaultSearchLimit = 5
	examSuffix         = " exam"
)

var errNoResults = errors.New("no search results")

// Client talks to the MediaWiki search API and the REST page endpoint.
type Client struct {
	http *http.Client
	cfg  types.WikiConfig
	log  *zap.Logger
}

// NewClient returns a Client. Empty endpoints in cfg fall back to the
// English Wikipedia defaults; a nil log discards diagnostics.
func NewClient(hc *http.Client, cfg types.WikiConfig, log *zap.Logger) *Client {
	if cfg.SearchURL == "" {
		cfg.SearchURL = DefaultSearchURL
	}
	if cfg.PageURL == "" {
		cfg.PageURL = DefaultPageURL
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = defaultSearchLimit
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{http: hc, cfg: cfg, log: log.Named("wiki")}
}

// Lookup resolves query to a page, extracts its sections, and classifies
// them. Fields that cannot be determined stay empty.
func (c *Client) Lookup(ctx context.Context, query string) types.WikiInfo {
	info := types.WikiInfo{OtherSections: types.NewSectionMap()}

	title, ok := c.ResolveTitle(ctx, query)
	if !ok {
		c.log.Info("no encyclopedia page found", zap.String("query", query))
		return info
	}
	info.Title = title

	markup, ok := c.FetchPageMarkup(ctx, title)
	if !ok {
		return info
	}

	secs := sections.Extract(markup)
	cls := sections.Classify(secs)
	cls.Apply(&info)
	info.OtherSections = secs

	c.log.Debug("classified page",
		zap.String("title", title),
		zap.Int("sections", secs.Len()),
		zap.Stringer("syllabus_match", cls.Syllabus.Kind),
		zap.Stringer("pattern_match", cls.Pattern.Kind),
	)
	return info
}

// ResolveTitle searches for "<query> exam" and, when that yields nothing,
// for the bare query. It returns the first-ranked title.
func (c *Client) ResolveTitle(ctx context.Context, query string) (string, bool) {
	for _, term := range []string{query + examSuffix, query} {
		title, err := c.searchTitle(ctx, term)
		if err == nil {
			return title, true
		}
		if !errors.Is(err, errNoResults) {
			c.log.Warn("search failed", zap.String("term", term), zap.Error(err))
		}
	}
	return "", false
}

// FetchPageMarkup downloads the rendered HTML of the page titled title.
// Any transport failure or non-200 status reports not found.
func (c *Client) FetchPageMarkup(ctx context.Context, title string) (string, bool) {
	u := strings.TrimRight(c.cfg.PageURL, "/") + "/" + Slug(title)
	body, err := httputil.GetBody(ctx, c.http, u)
	if err != nil {
		c.log.Warn("page fetch failed", zap.String("title", title), zap.Error(err))
		return "", false
	}
	return string(body), true
}

// Slug converts a page title into the path segment the REST API expects:
// spaces become underscores and the rest is path-escaped.
func Slug(title string) string {
	return url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

func (c *Client) searchTitle(ctx context.Context, term string) (string, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {term},
		"format":   {"json"},
		"srlimit":  {strconv.Itoa(c.cfg.SearchLimit)},
	}
	body, err := httputil.GetBody(ctx, c.http, c.cfg.SearchURL+"?"+params.Encode())
	if err != nil {
		return "", err
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", eris.Wrap(err, "wiki: parse search response")
	}
	if len(sr.Query.Search) == 0 {
		return "", errNoResults
	}
	return sr.Query.Search[0].Title, nil
}

// MediaWiki search JSON structures.
type searchResponse struct {
	Query searchQuery `json:"query"`
}

type searchQuery struct {
	Search []searchHit `json:"search"`
}

type searchHit struct {
	Title  string `json:"title"`
	PageID int    `json:"pageid"`
}
