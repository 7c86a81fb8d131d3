// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report assembles exam reports from the encyclopedia, video and
// book lookups and renders them as text, JSON or YAML.
package report

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/examfetch/pkg/types"
)

// ErrEmptyQuery is returned by FetchExamInfo for a blank query.
var ErrEmptyQuery = eris.New("query is empty: provide an exam name")

// WikiSource looks up the encyclopedia entry for an exam. Implementations
// never fail; a missing page is an empty WikiInfo.
type WikiSource interface {
	Lookup(ctx context.Context, query string) types.WikiInfo
}

// VideoSource suggests preparation videos. Failures yield an empty slice.
type VideoSource interface {
	SearchVideos(ctx context.Context, query string, maxResults int) []types.VideoResult
}

// BookSource suggests preparation books. Failures yield an empty slice.
type BookSource interface {
	SearchBooks(ctx context.Context, query string, maxResults int) []types.BookResult
}

// Options selects which lookups run and how many results each may return.
type Options struct {
	IncludeVideos bool
	IncludeBooks  bool
	MaxVideos     int
	MaxBooks      int
	// Concurrent runs the three lookups in parallel. The report is the same
	// either way.
	Concurrent bool
}

// DefaultOptions enables both media lookups with six results each.
func DefaultOptions() Options {
	return Options{
		IncludeVideos: true,
		IncludeBooks:  true,
		MaxVideos:     6,
		MaxBooks:      6,
	}
}

// Aggregator runs the lookups for one exam and builds the report. A nil
// Videos or Books source behaves as if that lookup were switched off.
type Aggregator struct {
	Wiki   WikiSource
	Videos VideoSource
	Books  BookSource
	Log    *zap.Logger
}

// FetchExamInfo builds the report for query. The only error is a blank
// query; every upstream failure degrades to an empty field instead.
func (a *Aggregator) FetchExamInfo(ctx context.Context, query string, opts Options) (types.ExamReport, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.ExamReport{}, ErrEmptyQuery
	}
	log := a.Log
	if log == nil {
		log = zap.NewNop()
	}

	rep := types.NewExamReport(query)
	steps := a.steps(query, opts, &rep)

	if opts.Concurrent {
		// Steps never return errors, so one lookup cannot cancel another.
		g, gctx := errgroup.WithContext(ctx)
		for _, step := range steps {
			g.Go(func() error {
				step(gctx)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for _, step := range steps {
			step(ctx)
		}
	}

	log.Debug("report assembled",
		zap.String("query", query),
		zap.String("title", rep.Wikipedia.Title),
		zap.Int("sections", rep.Wikipedia.OtherSections.Len()),
		zap.Int("videos", len(rep.Videos)),
		zap.Int("books", len(rep.Books)),
		zap.Bool("concurrent", opts.Concurrent),
	)
	return rep, nil
}

// steps returns the lookups to run in order. Each step writes a distinct
// report field.
func (a *Aggregator) steps(query string, opts Options, rep *types.ExamReport) []func(context.Context) {
	var steps []func(context.Context)
	if a.Wiki != nil {
		steps = append(steps, func(ctx context.Context) {
			rep.Wikipedia = a.Wiki.Lookup(ctx, query)
		})
	}
	if opts.IncludeVideos && a.Videos != nil {
		steps = append(steps, func(ctx context.Context) {
			if v := a.Videos.SearchVideos(ctx, query, opts.MaxVideos); v != nil {
				rep.Videos = capSlice(v, opts.MaxVideos)
			}
		})
	}
	if opts.IncludeBooks && a.Books != nil {
		steps = append(steps, func(ctx context.Context) {
			if b := a.Books.SearchBooks(ctx, query, opts.MaxBooks); b != nil {
				rep.Books = capSlice(b, opts.MaxBooks)
			}
		})
	}
	return steps
}

func capSlice[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
