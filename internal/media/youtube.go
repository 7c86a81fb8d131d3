// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package media

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"google.golang.org/api/youtube/v3"

	"github.com/pdiddy/examfetch/pkg/types"
)

const (
	watchURL          = "https://www.youtube.com/watch?v="
	defaultMaxVideos  = 5
	videoQuerySuffix  = " preparation"
	relevanceLanguage = "en"
)

// YouTube searches for exam preparation videos. Whether it can search is
// decided once, when it is constructed. The zero value is a disabled
// searcher.
type YouTube struct {
	svc     *youtube.Service
	timeout time.Duration
	log     *zap.Logger
}

// NewYouTube returns a video searcher. Without an API key, or with the
// lookup switched off in cfg, the searcher is disabled and never touches
// the network.
func NewYouTube(ctx context.Context, cfg types.VideoConfig, log *zap.Logger) (*YouTube, error) {
	if log == nil {
		log = zap.NewNop()
	}
	yt := &YouTube{timeout: cfg.Timeout, log: log.Named("youtube")}

	if !cfg.Enabled || cfg.APIKey == "" {
		yt.log.Debug("video lookup disabled", zap.Bool("enabled", cfg.Enabled), zap.Bool("has_key", cfg.APIKey != ""))
		return yt, nil
	}

	svc, err := youtube.NewService(ctx, clientOptions(cfg.APIKey, cfg.Endpoint)...)
	if err != nil {
		return nil, eris.Wrap(err, "media: create youtube service")
	}
	yt.svc = svc
	return yt, nil
}

// Enabled reports whether the searcher will issue requests.
func (y *YouTube) Enabled() bool {
	return y != nil && y.svc != nil
}

// SearchVideos returns up to maxResults videos for "<query> preparation",
// restricted to videos with English relevance. A disabled searcher returns
// an empty slice immediately.
func (y *YouTube) SearchVideos(ctx context.Context, query string, maxResults int) []types.VideoResult {
	out := []types.VideoResult{}
	if !y.Enabled() {
		return out
	}
	maxResults = capResults(maxResults, defaultMaxVideos)

	if y.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.timeout)
		defer cancel()
	}

	resp, err := y.svc.Search.List([]string{"snippet"}).
		Q(query + videoQuerySuffix).
		Type("video").
		RelevanceLanguage(relevanceLanguage).
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		y.log.Warn("video search failed", zap.String("query", query), zap.Error(err))
		return out
	}

	for _, item := range resp.Items {
		if len(out) == maxResults {
			break
		}
		if item == nil || item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		v := types.VideoResult{
			VideoID: item.Id.VideoId,
			URL:     watchURL + item.Id.VideoId,
		}
		if item.Snippet != nil {
			v.Title = item.Snippet.Title
		}
		out = append(out, v)
	}
	return out
}
