// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sections

import (
	"strings"

	"github.com/pdiddy/examfetch/pkg/types"
)

// MatchKind records how a section was selected.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchExact
	MatchFallback
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Match is the section chosen for one label.
type Match struct {
	Key  string
	Text string
	Kind MatchKind
}

// Found reports whether a section was selected.
func (m Match) Found() bool { return m.Kind != MatchNone }

// Classification holds the sections judged to describe an exam.
type Classification struct {
	Summary  string
	Syllabus Match
	Pattern  Match
}

// Exact keys are tried in order; hints are substrings tried against every
// key in document order when no exact key exists.
var (
	summaryKeys = []string{SummaryKey, "introduction"}

	syllabusKeys  = []string{"syllabus", "curriculum", "exam syllabus", "syllabus and exam pattern", "syllabus and structure"}
	syllabusHints = []string{"syllabus", "curriculum", "subjects", "paper", "exam"}

	patternKeys  = []string{"exam pattern", "pattern", "format", "structure", "scheme"}
	patternHints = []string{"pattern", "structure", "format", "scheme", "paper"}
)

// Classify picks the summary, syllabus, and pattern sections from m.
//
// Syllabus is resolved before pattern and the two are independent, so a
// heading such as "exam paper pattern and syllabus" can feed both fields
// when neither has an exact match.
func Classify(m types.SectionMap) Classification {
	var c Classification
	for _, k := range summaryKeys {
		if v, _ := m.Get(k); v != "" {
			c.Summary = v
			break
		}
	}
	c.Syllabus = selectSection(m, syllabusKeys, syllabusHints)
	c.Pattern = selectSection(m, patternKeys, patternHints)
	return c
}

// Apply copies the classification into info.
func (c Classification) Apply(info *types.WikiInfo) {
	info.Summary = c.Summary
	info.Syllabus = c.Syllabus.Text
	info.Pattern = c.Pattern.Text
}

func selectSection(m types.SectionMap, exact, hints []string) Match {
	for _, k := range exact {
		if v, _ := m.Get(k); v != "" {
			return Match{Key: k, Text: v, Kind: MatchExact}
		}
	}
	for _, k := range m.Keys() {
		if !containsAny(k, hints) {
			continue
		}
		v, _ := m.Get(k)
		return Match{Key: k, Text: v, Kind: MatchFallback}
	}
	return Match{}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
