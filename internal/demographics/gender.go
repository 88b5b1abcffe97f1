// Package demographics infers a creator's gender from three weighted
// signals: name-list membership, gendered terms in bio and captions, and the
// gender skew of the primary content niche. Scores land in [-1, 1] with
// negative meaning male; the weighted sum is mapped to a label plus a
// confidence in [0, 1].
package demographics

import (
	"math"
	"regexp"
	"strings"

	"github.com/veralens/creatorscope/internal/refdata"
)

// Gender labels.
const (
	Male   = "Male"
	Female = "Female"
)

// Signal weights. Name membership dominates, free-text indicators carry most
// of the rest, niche skew is a light nudge.
const (
	nameWeight    = 0.5
	contentWeight = 0.35
	nicheWeight   = 0.15
)

// labelThreshold is the minimum absolute weighted score for a direct label;
// scores inside (-0.1, 0.1) fall through the fallback chain.
const labelThreshold = 0.1

var femaleIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:she|her|woman|girl|female|mom|mother|wife|daughter|sister)\b`),
	regexp.MustCompile(`♀`),
}

var maleIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:he|him|man|boy|male|dad|father|husband|son|brother)\b`),
	regexp.MustCompile(`♂`),
}

// Score holds the three sub-scores feeding the weighted sum. Exposed for
// tests and debugging output.
type Score struct {
	Name    float64 // -1, 0, or 1
	Content float64 // (female-male)/(female+male), 0 with no matches
	Niche   float64 // -0.8, 0, or 0.8
}

// Weighted returns the combined scalar in [-1, 1].
func (s Score) Weighted() float64 {
	return nameWeight*s.Name + contentWeight*s.Content + nicheWeight*s.Niche
}

// DetectGender classifies the creator from bio, captions, first name, and
// primary niche. A score beyond the threshold labels directly; otherwise an
// ordered fallback chain runs: niche skew, then name lists, then the global
// default of Female at 0.5 (the platform's population skews female).
func DetectGender(bio string, captions []string, firstName, primaryNiche string, tables *refdata.Tables) (string, float64) {
	score := computeScore(bio, captions, firstName, primaryNiche, tables)
	final := score.Weighted()

	if final > labelThreshold {
		return Female, math.Abs(final)
	}
	if final < -labelThreshold {
		return Male, math.Abs(final)
	}

	nicheLower := strings.ToLower(primaryNiche)
	if primaryNiche != "" {
		if matchesAny(nicheLower, tables.GenderedNiches.FemaleDominated) {
			return Female, 0.6
		}
		if matchesAny(nicheLower, tables.GenderedNiches.MaleDominated) {
			return Male, 0.6
		}
	}

	if firstName != "" {
		if tables.IsMaleName(firstName) {
			return Male, 0.7
		}
		if tables.IsFemaleName(firstName) {
			return Female, 0.7
		}
	}

	return Female, 0.5
}

// ApplyNameCorrection patches a known name-list gap: "Chris" sits in the
// female list's shadow and gets misclassified, so a chain result of Female
// for that exact first name is forced to Male at 0.85. Kept as an isolated
// post-processing step, not part of the scoring formula.
func ApplyNameCorrection(firstName, gender string, confidence float64) (string, float64) {
	if strings.ToLower(firstName) == "chris" && gender == Female {
		return Male, 0.85
	}
	return gender, confidence
}

func computeScore(bio string, captions []string, firstName, primaryNiche string, tables *refdata.Tables) Score {
	var s Score

	if firstName != "" {
		if tables.IsMaleName(firstName) {
			s.Name = -1
		} else if tables.IsFemaleName(firstName) {
			s.Name = 1
		}
	}

	femaleMatches := countMatches(bio, femaleIndicators)
	maleMatches := countMatches(bio, maleIndicators)
	for _, caption := range captions {
		if caption == "" {
			continue
		}
		femaleMatches += countMatches(caption, femaleIndicators)
		maleMatches += countMatches(caption, maleIndicators)
	}
	if total := femaleMatches + maleMatches; total > 0 {
		s.Content = float64(femaleMatches-maleMatches) / float64(total)
	}

	if primaryNiche != "" {
		nicheLower := strings.ToLower(primaryNiche)
		if matchesAny(nicheLower, tables.GenderedNiches.FemaleDominated) {
			s.Niche = 0.8
		} else if matchesAny(nicheLower, tables.GenderedNiches.MaleDominated) {
			s.Niche = -0.8
		}
	}

	return s
}

func countMatches(text string, patterns []*regexp.Regexp) int {
	if text == "" {
		return 0
	}
	n := 0
	for _, p := range patterns {
		n += len(p.FindAllString(text, -1))
	}
	return n
}

// matchesAny reports whether any keyword is a substring of the lowercased
// niche name.
func matchesAny(nicheLower string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(nicheLower, keyword) {
			return true
		}
	}
	return false
}
