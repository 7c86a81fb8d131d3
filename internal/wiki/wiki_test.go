// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pdiddy/examfetch/pkg/types"
)

const neetPage = `<html><body>
<p>The National Eligibility cum Entrance Test is an entrance examination.</p>
<h2>Exam pattern</h2>
<p>200 multiple choice questions.</p>
<h2>Syllabus</h2>
<p>Physics, chemistry and biology.</p>
<h2>History</h2>
<p>First held in 2013.</p>
</body></html>`

// fakeWiki serves a MediaWiki search endpoint and a REST page endpoint.
// titles maps a search term to its ranked titles; pages maps a slug to HTML.
type fakeWiki struct {
	mu       sync.Mutex
	titles   map[string][]string
	pages    map[string]string
	searches []string
	fetched  []string
	status   int
}

func (f *fakeWiki) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/w/api.php", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f.mu.Lock()
		f.searches = append(f.searches, q.Get("srsearch"))
		status := f.status
		f.mu.Unlock()
		if status != 0 {
			w.WriteHeader(status)
			return
		}
		if q.Get("action") != "query" || q.Get("list") != "search" || q.Get("format") != "json" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var hits []map[string]any
		for i, t := range f.titles[q.Get("srsearch")] {
			hits = append(hits, map[string]any{"title": t, "pageid": i + 1})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"query": map[string]any{"search": hits}})
	})
	mux.HandleFunc("/page/html/", func(w http.ResponseWriter, r *http.Request) {
		slug := r.URL.EscapedPath()[len("/page/html/"):]
		f.mu.Lock()
		f.fetched = append(f.fetched, slug)
		f.mu.Unlock()
		page, ok := f.pages[slug]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, page)
	})
	return mux
}

func newTestClient(t *testing.T, f *fakeWiki, log *zap.Logger) *Client {
	t.Helper()
	ts := httptest.NewServer(f.handler())
	t.Cleanup(ts.Close)
	return NewClient(ts.Client(), types.WikiConfig{
		SearchURL: ts.URL + "/w/api.php",
		PageURL:   ts.URL + "/page/html/",
	}, log)
}

func TestResolveTitlePrefersExamSuffix(t *testing.T) {
	f := &fakeWiki{titles: map[string][]string{
		"NEET exam": {"National Eligibility cum Entrance Test", "NEET PG"},
		"NEET":      {"Neet (disambiguation)"},
	}}
	c := newTestClient(t, f, nil)

	title, ok := c.ResolveTitle(context.Background(), "NEET")
	require.True(t, ok)
	assert.Equal(t, "National Eligibility cum Entrance Test", title)
	assert.Equal(t, []string{"NEET exam"}, f.searches)
}

func TestResolveTitleFallsBackToBareQuery(t *testing.T) {
	f := &fakeWiki{titles: map[string][]string{
		"CLAT": {"Common Law Admission Test"},
	}}
	c := newTestClient(t, f, nil)

	title, ok := c.ResolveTitle(context.Background(), "CLAT")
	require.True(t, ok)
	assert.Equal(t, "Common Law Admission Test", title)
	assert.Equal(t, []string{"CLAT exam", "CLAT"}, f.searches)
}

func TestResolveTitleNotFound(t *testing.T) {
	f := &fakeWiki{}
	c := newTestClient(t, f, nil)

	title, ok := c.ResolveTitle(context.Background(), "zzqx")
	assert.False(t, ok)
	assert.Empty(t, title)
}

func TestResolveTitleIsIdempotent(t *testing.T) {
	f := &fakeWiki{titles: map[string][]string{"JEE exam": {"Joint Entrance Examination"}}}
	c := newTestClient(t, f, nil)

	first, _ := c.ResolveTitle(context.Background(), "JEE")
	second, _ := c.ResolveTitle(context.Background(), "JEE")
	assert.Equal(t, first, second)
}

func TestResolveTitleServerErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := &fakeWiki{status: http.StatusServiceUnavailable}
	c := newTestClient(t, f, zap.New(core))

	_, ok := c.ResolveTitle(context.Background(), "UPSC")
	assert.False(t, ok)
	// Both the suffixed and the bare search fail and are reported.
	assert.Equal(t, 2, logs.FilterMessage("search failed").Len())
}

func TestResolveTitleMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{not json`)
	}))
	defer ts.Close()

	c := NewClient(ts.Client(), types.WikiConfig{SearchURL: ts.URL}, nil)
	_, ok := c.ResolveTitle(context.Background(), "GATE")
	assert.False(t, ok)
}

func TestFetchPageMarkupUsesSlug(t *testing.T) {
	f := &fakeWiki{pages: map[string]string{"SSC_CGL": "<p>hi</p>"}}
	c := newTestClient(t, f, nil)

	markup, ok := c.FetchPageMarkup(context.Background(), "SSC CGL")
	require.True(t, ok)
	assert.Equal(t, "<p>hi</p>", markup)
	assert.Equal(t, []string{"SSC_CGL"}, f.fetched)
}

func TestFetchPageMarkupNotFound(t *testing.T) {
	f := &fakeWiki{}
	c := newTestClient(t, f, nil)

	_, ok := c.FetchPageMarkup(context.Background(), "Missing Page")
	assert.False(t, ok)
}

func TestSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"NEET", "NEET"},
		{"SSC CGL", "SSC_CGL"},
		{"Joint Entrance Examination – Main", "Joint_Entrance_Examination_%E2%80%93_Main"},
		{"AC/DC", "AC%2FDC"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.title))
		})
	}
}

func TestLookup(t *testing.T) {
	f := &fakeWiki{
		titles: map[string][]string{"NEET exam": {"National Eligibility cum Entrance Test"}},
		pages:  map[string]string{"National_Eligibility_cum_Entrance_Test": neetPage},
	}
	c := newTestClient(t, f, nil)

	info := c.Lookup(context.Background(), "NEET")

	assert.Equal(t, "National Eligibility cum Entrance Test", info.Title)
	assert.Equal(t, "The National Eligibility cum Entrance Test is an entrance examination.", info.Summary)
	assert.Equal(t, "200 multiple choice questions.", info.Pattern)
	assert.Equal(t, "Physics, chemistry and biology.", info.Syllabus)
	assert.Equal(t, []string{"exam pattern", "syllabus", "history", "summary"}, info.OtherSections.Keys())
}

func TestLookupPageMissingKeepsTitle(t *testing.T) {
	f := &fakeWiki{titles: map[string][]string{"CUET exam": {"Common University Entrance Test"}}}
	c := newTestClient(t, f, nil)

	info := c.Lookup(context.Background(), "CUET")

	assert.Equal(t, "Common University Entrance Test", info.Title)
	assert.Empty(t, info.Summary)
	assert.Equal(t, 0, info.OtherSections.Len())
}

func TestLookupUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := NewClient(http.DefaultClient, types.WikiConfig{SearchURL: url, PageURL: url}, nil)
	info := c.Lookup(context.Background(), "NTSE")

	assert.Empty(t, info.Title)
	assert.Equal(t, 0, info.OtherSections.Len())
}
