// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/examfetch/pkg/types"
)

// Excerpt limits for the text renderer, in runes.
const (
	SummaryExcerpt   = 1000
	SectionExcerpt   = 1500
	MaxHeadingsShown = 15
)

// FormatText writes a human-readable summary of r to w.
func FormatText(r types.ExamReport, w io.Writer) {
	fmt.Fprintln(w, "=== Result Summary ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Query: %s\n", r.Query)

	wi := r.Wikipedia
	if wi.Title != "" {
		fmt.Fprintf(w, "Wikipedia Page Title: %s\n", wi.Title)
	}
	if wi.Summary != "" {
		summary, cut := excerpt(wi.Summary, SummaryExcerpt)
		if cut {
			summary += "..."
		}
		fmt.Fprintf(w, "\nSummary (lead):\n%s\n", summary)
	}
	if wi.Pattern != "" {
		text, _ := excerpt(wi.Pattern, SectionExcerpt)
		fmt.Fprintf(w, "\nExam Pattern / Format:\n%s\n", text)
	}
	if wi.Syllabus != "" {
		text, _ := excerpt(wi.Syllabus, SectionExcerpt)
		fmt.Fprintf(w, "\nSyllabus / Curriculum (excerpt):\n%s\n", text)
	}
	if keys := wi.OtherSections.Keys(); len(keys) > 0 {
		fmt.Fprintln(w, "\nOther sections found on Wikipedia (headings):")
		if len(keys) > MaxHeadingsShown {
			keys = keys[:MaxHeadingsShown]
		}
		for _, k := range keys {
			fmt.Fprintf(w, " - %s\n", k)
		}
	}

	if len(r.Videos) > 0 {
		fmt.Fprintln(w, "\nSuggested Videos:")
		for _, v := range r.Videos {
			fmt.Fprintf(w, " - %s  (%s)\n", v.Title, v.URL)
		}
	} else {
		fmt.Fprintln(w, "\nYouTube results not available (no API key configured).")
	}

	if len(r.Books) > 0 {
		fmt.Fprintln(w, "\nSuggested Books:")
		for _, b := range r.Books {
			fmt.Fprintf(w, " - %s | %s - %s\n", b.Title, strings.Join(b.Authors, ", "), b.InfoLink)
		}
	} else {
		fmt.Fprintln(w, "\nNo book suggestions found.")
	}

	fmt.Fprintln(w, "\n--- End ---")
}

// FormatJSON writes r as indented JSON to w.
func FormatJSON(r types.ExamReport, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// FormatYAML writes r as YAML to w.
func FormatYAML(r types.ExamReport, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return eris.Wrap(err, "encoding report as yaml")
	}
	return enc.Close()
}

// WriteFile saves r to path, choosing JSON or YAML from the extension.
func WriteFile(path string, r types.ExamReport) error {
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = FormatJSON(r, &buf)
	case ".yaml", ".yml":
		err = FormatYAML(r, &buf)
	default:
		return eris.Errorf("unsupported report format %q: use .json, .yaml or .yml", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "creating %s", dir)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return eris.Wrapf(err, "writing %s", path)
	}
	return nil
}

// excerpt returns the first n runes of s and whether s was longer.
func excerpt(s string, n int) (string, bool) {
	if n <= 0 {
		return "", s != ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], true
		}
		i++
	}
	return s, false
}
