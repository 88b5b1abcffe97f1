// Package textsig pulls typed facts out of noisy free text: contact details,
// age hints, hashtags, mentions, and US-residency signals. Every extractor is
// a stateless pure function; a missing signal is reported as a zero value,
// never an error.
package textsig

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// phonePatterns are tried in fixed priority order: the first pattern is
// searched across the whole text before the second is considered.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+\d{1,3}\s?\(\d{1,4}\)\s?\d{3,4}[-\s]?\d{3,4}`), // +1 (123) 456-7890
	regexp.MustCompile(`\+\d{1,3}\s?\d{1,4}\s?\d{3,4}\s?\d{3,4}`),       // +1 123 456 7890
	regexp.MustCompile(`\(\d{3,4}\)\s?\d{3,4}[-\s]?\d{3,4}`),            // (123) 456-7890
	regexp.MustCompile(`\d{3,4}[-\s]?\d{3,4}[-\s]?\d{3,4}`),             // 123-456-7890
}

var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:I am|I'm)\s+(\d{1,2})`),
	regexp.MustCompile(`(?i)age\s*:?\s*(\d{1,2})`),
	regexp.MustCompile(`(?i)(\d{1,2})\s*(?:years|yrs)\s*old`),
	regexp.MustCompile(`(?i)(\d{1,2})\s*y\.?o`),
}

var birthYearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)born\s+in\s+(\d{4})`),
	regexp.MustCompile(`(?i)b\.\s*(\d{4})`),
	regexp.MustCompile(`(?i)est\.\s*(\d{4})`),
}

var (
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
)

// ExtractEmail returns the first email-shaped token in text, or empty.
func ExtractEmail(text string) string {
	if text == "" {
		return ""
	}
	return emailPattern.FindString(text)
}

// ExtractPhone returns the first phone-shaped token in text, trying each
// pattern in priority order, or empty.
func ExtractPhone(text string) string {
	if text == "" {
		return ""
	}
	for _, p := range phonePatterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// AgeGroupFor maps an exact age to its display bucket. The <30 band shadows
// the <35 one for direct ages, so "25-34" is unreachable here; the ordering
// matches the upstream product behavior and is kept as-is.
func AgeGroupFor(age int) string {
	switch {
	case age < 18:
		return "Under 18"
	case age < 25:
		return "18-24"
	case age < 30:
		return "25-29"
	case age < 35:
		return "25-34"
	case age < 45:
		return "35-44"
	default:
		return "45+"
	}
}

// ExtractAge infers an age and age group from free text. The chain is:
// direct age mentions, then birth-year mentions, then life-stage keywords,
// then the default "25-29" group. Age is 0 when only a group could be
// inferred; both results are empty for empty text.
func ExtractAge(text string, now time.Time) (int, string) {
	if text == "" {
		return 0, ""
	}

	for _, p := range agePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		age, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if age >= 13 && age <= 100 {
			return age, AgeGroupFor(age)
		}
	}

	currentYear := now.Year()
	for _, p := range birthYearPatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if year < 1920 || year > currentYear-13 {
			continue
		}
		age := currentYear - year
		if age >= 13 && age <= 100 {
			return age, AgeGroupFor(age)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "college") || strings.Contains(lower, "university") {
			return 0, "18-24"
		}
		if strings.Contains(lower, "career") || strings.Contains(lower, "job") {
			return 0, "25-29"
		}
	}

	// Most common creator age group.
	return 0, "25-29"
}

// ExtractHashtags returns all #token occurrences in order of appearance,
// duplicates retained.
func ExtractHashtags(text string) []string {
	if text == "" {
		return nil
	}
	var tags []string
	for _, m := range hashtagPattern.FindAllStringSubmatch(text, -1) {
		tags = append(tags, m[1])
	}
	return tags
}

// ExtractMentions returns all @token occurrences in order of appearance,
// duplicates retained.
func ExtractMentions(text string) []string {
	if text == "" {
		return nil
	}
	var mentions []string
	for _, m := range mentionPattern.FindAllStringSubmatch(text, -1) {
		mentions = append(mentions, m[1])
	}
	return mentions
}
