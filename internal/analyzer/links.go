package analyzer

import (
	"regexp"
	"strings"
)

var instagramURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://(?:www\.)?instagram\.com/[A-Za-z0-9_.-]+/?`),
	regexp.MustCompile(`(?i)https?://(?:www\.)?instagr\.am/[A-Za-z0-9_.-]+/?`),
}

var instagramHandlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ig:?\s*@?([A-Za-z0-9_.-]+)`),
	regexp.MustCompile(`(?i)instagram:?\s*@?([A-Za-z0-9_.-]+)`),
	regexp.MustCompile(`(?i)@([A-Za-z0-9_.-]+) on instagram`),
}

var tiktokURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)https?://(?:www\.)?tiktok\.com/@?[A-Za-z0-9_.-]+/?`),
	regexp.MustCompile(`(?i)https?://(?:www\.)?vm\.tiktok\.com/[A-Za-z0-9_.-]+/?`),
}

var tiktokHandlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)tt:?\s*@?([A-Za-z0-9_.-]+)`),
	regexp.MustCompile(`(?i)tiktok:?\s*@?([A-Za-z0-9_.-]+)`),
	regexp.MustCompile(`(?i)@([A-Za-z0-9_.-]+) on tiktok`),
}

var (
	instagramUsernamePattern = regexp.MustCompile(`instagram\.com/([A-Za-z0-9_.-]+)`)
	tiktokUsernamePattern    = regexp.MustCompile(`tiktok\.com/@?([A-Za-z0-9_.-]+)`)
)

var handleStopwords = map[string]struct{}{
	"and": {}, "the": {}, "for": {}, "from": {}, "with": {}, "this": {}, "that": {},
	"have": {}, "has": {}, "her": {}, "his": {}, "our": {}, "my": {}, "your": {},
	"their": {}, "its": {}, "as": {}, "at": {}, "by": {}, "to": {}, "in": {}, "on": {},
	"of": {}, "or": {}, "if": {},
}

// ExtractSocialLinks finds Instagram and TikTok links for a creator, first
// from explicit bio links, then from URLs in the bio text, and finally from
// looser handle patterns ("ig: @name") with extra verification. Handles
// shorter than three characters or matching common words are rejected as
// artifacts.
func ExtractSocialLinks(text string, links []string) (instagram, tiktok string) {
	for _, link := range links {
		if link == "" {
			continue
		}
		if strings.Contains(link, "instagram.com") || strings.Contains(link, "instagr.am") {
			instagram = link
		} else if strings.Contains(link, "tiktok.com") || strings.Contains(link, "vm.tiktok.com") {
			tiktok = link
		}
	}

	if instagram == "" && text != "" {
		for _, p := range instagramURLPatterns {
			if m := p.FindString(text); m != "" {
				instagram = m
				break
			}
		}
		if instagram == "" {
			if handle := findHandle(text, instagramHandlePatterns); handle != "" {
				instagram = "https://www.instagram.com/" + handle
			}
		}
	}

	if tiktok == "" && text != "" {
		for _, p := range tiktokURLPatterns {
			if m := p.FindString(text); m != "" {
				tiktok = m
				break
			}
		}
		if tiktok == "" {
			if handle := findHandle(text, tiktokHandlePatterns); handle != "" {
				tiktok = "https://www.tiktok.com/@" + handle
			}
		}
	}

	if instagram != "" && strings.Contains(instagram, "instagram.com") {
		if m := instagramUsernamePattern.FindStringSubmatch(instagram); m != nil && len(m[1]) < 3 {
			instagram = ""
		}
	}
	if tiktok != "" && strings.Contains(tiktok, "tiktok.com") {
		if m := tiktokUsernamePattern.FindStringSubmatch(tiktok); m != nil && len(m[1]) < 3 {
			tiktok = ""
		}
	}

	return instagram, tiktok
}

func findHandle(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		handle := m[1]
		if len(handle) < 3 {
			continue
		}
		if _, stop := handleStopwords[strings.ToLower(handle)]; stop {
			continue
		}
		return handle
	}
	return ""
}
