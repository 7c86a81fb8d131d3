// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package media

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"google.golang.org/api/books/v1"

	"github.com/pdiddy/examfetch/pkg/types"
)

const (
	defaultMaxBooks = 6
	// maxBooksPerRequest is the Google Books API ceiling for maxResults.
	maxBooksPerRequest = 40
)

// Books searches Google Books for preparation material.
type Books struct {
	svc     *books.Service
	timeout time.Duration
	log     *zap.Logger
}

// NewBooks returns a book searcher. The API key is optional.
func NewBooks(ctx context.Context, cfg types.BookConfig, log *zap.Logger) (*Books, error) {
	if log == nil {
		log = zap.NewNop()
	}
	svc, err := books.NewService(ctx, clientOptions(cfg.APIKey, cfg.Endpoint)...)
	if err != nil {
		return nil, eris.Wrap(err, "media: create books service")
	}
	return &Books{svc: svc, timeout: cfg.Timeout, log: log.Named("books")}, nil
}

// BookQuery builds the disjunctive search string for an exam name.
func BookQuery(q string) string {
	return fmt.Sprintf("%s preparation OR %s syllabus OR %s guide", q, q, q)
}

// SearchBooks returns up to maxResults books for query. Any failure yields
// an empty slice; partial results are never returned.
func (b *Books) SearchBooks(ctx context.Context, query string, maxResults int) []types.BookResult {
	out := []types.BookResult{}
	if b == nil || b.svc == nil {
		return out
	}
	maxResults = capResults(maxResults, defaultMaxBooks)
	if maxResults > maxBooksPerRequest {
		maxResults = maxBooksPerRequest
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	vols, err := b.svc.Volumes.List(BookQuery(query)).
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		b.log.Warn("book search failed", zap.String("query", query), zap.Error(err))
		return out
	}

	items := vols.Items
	if len(items) > maxResults {
		items = items[:maxResults]
	}
	for _, v := range items {
		var r types.BookResult
		if v != nil && v.VolumeInfo != nil {
			r = types.BookResult{
				Title:     v.VolumeInfo.Title,
				Authors:   v.VolumeInfo.Authors,
				Publisher: v.VolumeInfo.Publisher,
				InfoLink:  v.VolumeInfo.InfoLink,
			}
		}
		out = append(out, r)
	}
	return out
}
