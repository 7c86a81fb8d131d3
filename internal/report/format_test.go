// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/examfetch/pkg/types"
)

func sampleReport() types.ExamReport {
	r := types.NewExamReport("NEET")
	r.Wikipedia = neetWiki()
	r.Videos = []types.VideoResult{{Title: "NEET Physics", VideoID: "abc", URL: "https://www.youtube.com/watch?v=abc"}}
	r.Books = []types.BookResult{{
		Title:    "NEET Guide",
		Authors:  []string{"A. Author", "B. Author"},
		InfoLink: "https://books.google.com/books?id=x",
	}}
	return r
}

func TestFormatText(t *testing.T) {
	var buf bytes.Buffer
	FormatText(sampleReport(), &buf)
	out := buf.String()

	assert.Contains(t, out, "Query: NEET\n")
	assert.Contains(t, out, "Wikipedia Page Title: National Eligibility cum Entrance Test (Undergraduate)\n")
	assert.Contains(t, out, "Summary (lead):\nNEET is an entrance exam.\n")
	assert.Contains(t, out, "Exam Pattern / Format:\n180 questions in three hours.\n")
	assert.Contains(t, out, "Syllabus / Curriculum (excerpt):\nPhysics, chemistry and biology.\n")
	assert.Contains(t, out, " - exam pattern\n - syllabus\n - summary\n")
	assert.Contains(t, out, " - NEET Physics  (https://www.youtube.com/watch?v=abc)\n")
	assert.Contains(t, out, " - NEET Guide | A. Author, B. Author - https://books.google.com/books?id=x\n")
	assert.True(t, strings.HasSuffix(out, "--- End ---\n"))

	// Pattern is printed before syllabus.
	assert.Less(t, strings.Index(out, "Exam Pattern"), strings.Index(out, "Syllabus / Curriculum"))
}

func TestFormatTextEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	FormatText(types.NewExamReport("zzqx"), &buf)
	out := buf.String()

	assert.Contains(t, out, "Query: zzqx\n")
	assert.NotContains(t, out, "Wikipedia Page Title")
	assert.NotContains(t, out, "Summary (lead)")
	assert.NotContains(t, out, "Other sections")
	assert.Contains(t, out, "YouTube results not available (no API key configured).")
	assert.Contains(t, out, "No book suggestions found.")
	assert.Contains(t, out, "--- End ---")
}

func TestFormatTextTruncatesSummary(t *testing.T) {
	r := types.NewExamReport("JEE")
	// Multi-byte runes: truncation counts runes, not bytes.
	r.Wikipedia.Summary = strings.Repeat("é", 1200)

	var buf bytes.Buffer
	FormatText(r, &buf)

	want := "Summary (lead):\n" + strings.Repeat("é", 1000) + "...\n"
	assert.Contains(t, buf.String(), want)
}

func TestFormatTextShortSummaryHasNoEllipsis(t *testing.T) {
	r := types.NewExamReport("JEE")
	r.Wikipedia.Summary = strings.Repeat("a", 1000)

	var buf bytes.Buffer
	FormatText(r, &buf)
	assert.NotContains(t, buf.String(), "...")
}

func TestFormatTextTruncatesSections(t *testing.T) {
	r := types.NewExamReport("UPSC")
	r.Wikipedia.Syllabus = strings.Repeat("s", 2000)
	r.Wikipedia.Pattern = strings.Repeat("p", 1600)

	var buf bytes.Buffer
	FormatText(r, &buf)
	out := buf.String()

	assert.Contains(t, out, "(excerpt):\n"+strings.Repeat("s", 1500)+"\n")
	assert.Contains(t, out, "Format:\n"+strings.Repeat("p", 1500)+"\n")
	assert.NotContains(t, out, strings.Repeat("s", 1501))
}

func TestFormatTextLimitsHeadings(t *testing.T) {
	r := types.NewExamReport("CUET")
	for i := 0; i < 20; i++ {
		r.Wikipedia.OtherSections.Set(fmt.Sprintf("heading %02d", i), "body")
	}

	var buf bytes.Buffer
	FormatText(r, &buf)
	out := buf.String()

	assert.Equal(t, MaxHeadingsShown, strings.Count(out, " - heading "))
	assert.Contains(t, out, " - heading 14\n")
	assert.NotContains(t, out, "heading 15")
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in      string
		n       int
		want    string
		wantCut bool
	}{
		{"", 5, "", false},
		{"abc", 5, "abc", false},
		{"abcde", 5, "abcde", false},
		{"abcdef", 5, "abcde", true},
		{"日本語テキスト", 3, "日本語", true},
	}
	for _, tt := range tests {
		got, cut := excerpt(tt.in, tt.n)
		assert.Equal(t, tt.want, got, "excerpt(%q, %d)", tt.in, tt.n)
		assert.Equal(t, tt.wantCut, cut, "excerpt(%q, %d) cut", tt.in, tt.n)
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(sampleReport(), &buf))
	out := buf.String()

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "NEET", decoded["query"])

	// Section order follows the page.
	start := strings.Index(out, `"other_sections"`)
	require.GreaterOrEqual(t, start, 0, out)
	sections := out[start:]
	iPattern := strings.Index(sections, `"exam pattern"`)
	iSyllabus := strings.Index(sections, `"syllabus"`)
	iSummary := strings.Index(sections, `"summary"`)
	require.True(t, iPattern >= 0 && iSyllabus >= 0 && iSummary >= 0, out)
	assert.Less(t, iPattern, iSyllabus)
	assert.Less(t, iSyllabus, iSummary)
	assert.Contains(t, out, `"videoId": "abc"`)
	assert.Contains(t, out, `"infoLink": "https://books.google.com/books?id=x"`)
}

func TestFormatJSONEmptyReportHasLists(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(types.NewExamReport("zzqx"), &buf))

	out := buf.String()
	assert.Contains(t, out, `"videos": []`)
	assert.Contains(t, out, `"books": []`)
	assert.Contains(t, out, `"other_sections": {}`)
}

func TestFormatYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatYAML(sampleReport(), &buf))
	out := buf.String()

	assert.Contains(t, out, "query: NEET\n")
	assert.Contains(t, out, "video_id: abc")
	start := strings.Index(out, "other_sections:")
	require.GreaterOrEqual(t, start, 0, out)
	sections := out[start:]
	assert.Less(t, strings.Index(sections, "exam pattern:"), strings.Index(sections, "summary:"))
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport()

	jsonPath := filepath.Join(dir, "out", "neet.json")
	require.NoError(t, WriteFile(jsonPath, r))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var back types.ExamReport
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r.Wikipedia.OtherSections.Keys(), back.Wikipedia.OtherSections.Keys())
	assert.Equal(t, r.Videos, back.Videos)

	yamlPath := filepath.Join(dir, "neet.YML")
	require.NoError(t, WriteFile(yamlPath, r))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "query: NEET")
}

func TestWriteFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neet.txt")
	err := WriteFile(path, sampleReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
