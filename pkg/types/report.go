// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for examfetch: the exam report
// and its parts, the ordered section map, and per-lookup configuration.
package types

// WikiInfo is what the encyclopedia lookup learned about an exam. Empty
// strings mean the field could not be found.
type WikiInfo struct {
	// Title is the resolved encyclopedia page title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Summary is the lead paragraph or the "introduction" section.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Syllabus is the body of the section judged to describe the syllabus.
	Syllabus string `json:"syllabus,omitempty" yaml:"syllabus,omitempty"`

	// Pattern is the body of the section judged to describe the exam pattern.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// OtherSections holds every section extracted from the page.
	OtherSections SectionMap `json:"other_sections" yaml:"other_sections"`
}

// VideoResult is one video suggested for exam preparation.
type VideoResult struct {
	Title   string `json:"title" yaml:"title"`
	VideoID string `json:"videoId" yaml:"video_id"`
	URL     string `json:"url" yaml:"url"`
}

// BookResult is one book suggested for exam preparation. All fields are
// optional; the upstream catalogue omits them freely.
type BookResult struct {
	Title     string   `json:"title,omitempty" yaml:"title,omitempty"`
	Authors   []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Publisher string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	InfoLink  string   `json:"infoLink,omitempty" yaml:"info_link,omitempty"`
}

// ExamReport is the aggregated result of one exam query. Videos and Books
// are never nil so that serialised reports always carry both lists.
type ExamReport struct {
	Query     string        `json:"query" yaml:"query"`
	Wikipedia WikiInfo      `json:"wikipedia" yaml:"wikipedia"`
	Videos    []VideoResult `json:"videos" yaml:"videos"`
	Books     []BookResult  `json:"books" yaml:"books"`
}

// NewExamReport returns an empty report for query with both result lists
// initialised.
func NewExamReport(query string) ExamReport {
	return ExamReport{
		Query:     query,
		Wikipedia: WikiInfo{OtherSections: NewSectionMap()},
		Videos:    []VideoResult{},
		Books:     []BookResult{},
	}
}
