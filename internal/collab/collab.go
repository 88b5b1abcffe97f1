// Package collab detects brand collaborations in a creator's post timeline.
// Mentions and hashtags are accumulated into per-brand stats over one
// analysis pass, classified organic vs. ad, and ranked; the overall
// partnership status comes from a strict ordered rule chain evaluated over
// the whole timeline.
package collab

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/veralens/creatorscope/internal/models"
)

// recencyWindow is the trailing window within which a brand occurrence counts
// as recent.
const recencyWindow = 300 * 24 * time.Hour

// minBrandCount drops one-off tokens as incidental noise.
const minBrandCount = 2

// StatusActive is the only positive partnership status; the alternative is
// null.
const StatusActive = "Active"

var (
	brandMentionPattern = regexp.MustCompile(`@([A-Za-z0-9._]+)`)
	brandHashtagPattern = regexp.MustCompile(`#(\w+)`)
)

// mentionStopwords are common words that appear after @ without being
// usernames.
var mentionStopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "from": {}, "with": {}, "this": {}, "that": {},
	"have": {}, "has": {}, "her": {}, "his": {}, "our": {}, "my": {}, "your": {},
	"their": {}, "its": {}, "as": {}, "at": {}, "by": {}, "to": {}, "in": {}, "on": {},
	"of": {}, "or": {}, "if": {},
}

var adIndicatorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:ad|sponsored|paid|partner|collab|ambassador)\b`),
	regexp.MustCompile(`(?i)#ad\b`),
	regexp.MustCompile(`(?i)#sponsored\b`),
	regexp.MustCompile(`(?i)#paidpartner\b`),
	regexp.MustCompile(`(?i)#sponsored_by\b`),
	regexp.MustCompile(`(?i)#partnership\b`),
}

// statusHashtags trigger rule 2 of the status chain when present as a #tag
// anywhere in a caption.
var statusHashtags = []string{"ads", "ad", "collaboration", "collab", "usemycode", "partnership", "partner"}

// brandStat accumulates one token's occurrences across the timeline.
type brandStat struct {
	count    int
	isRecent bool
	mention  bool
	hashtag  bool
}

// brandedPost is the engagement snapshot of one post that names at least one
// tracked brand.
type brandedPost struct {
	engagement int
	likes      int
	comments   int
	brands     map[string]struct{}
}

// Analyze builds the collaboration section for one creator's timeline.
// The creator's own identity for the status chain is derived from the first
// post's embedded username, not the profile document.
func Analyze(posts []models.PostRecord, now time.Time) models.CollaborationAnalysis {
	cutoff := now.Add(-recencyWindow)

	mentions := make(map[string]*brandStat)
	hashtags := make(map[string]*brandStat)
	var mentionOrder, hashtagOrder []string

	for i := range posts {
		caption := posts[i].Caption
		if caption == "" {
			continue
		}
		isRecent := posts[i].TakenAt != 0 && posts[i].TakenTime().After(cutoff)

		for _, m := range brandMentionPattern.FindAllStringSubmatch(caption, -1) {
			token := m[1]
			if len(token) < 3 {
				continue
			}
			if _, stop := mentionStopwords[strings.ToLower(token)]; stop {
				continue
			}
			stat, ok := mentions[token]
			if !ok {
				stat = &brandStat{mention: true}
				mentions[token] = stat
				mentionOrder = append(mentionOrder, token)
			}
			stat.count++
			if isRecent {
				stat.isRecent = true
			}
		}

		for _, m := range brandHashtagPattern.FindAllStringSubmatch(caption, -1) {
			token := m[1]
			stat, ok := hashtags[token]
			if !ok {
				stat = &brandStat{hashtag: true}
				hashtags[token] = stat
				hashtagOrder = append(hashtagOrder, token)
			}
			stat.count++
			if isRecent {
				stat.isRecent = true
			}
			// A token seen both ways carries both source tags.
			if ms, ok := mentions[token]; ok {
				ms.hashtag = true
			}
		}
	}

	branded := collectBrandedPosts(posts, mentionOrder, hashtagOrder)

	analysis := models.CollaborationAnalysis{
		RecentBrands:       []models.BrandRef{},
		PreviousBrands:     []models.BrandRef{},
		RecentBrandNames:   []string{},
		PreviousBrandNames: []string{},
		TopCollaborations:  []models.Collaboration{},
	}

	// Mentions are processed before hashtags; a token already captured as a
	// mention is skipped during the hashtag pass.
	for _, name := range mentionOrder {
		stat := mentions[name]
		if stat.count < minBrandCount {
			continue
		}
		if hs, ok := hashtags[name]; ok && hs.hashtag {
			stat.hashtag = true
		}
		addBrand(&analysis, posts, branded, name, stat, mentionAdMatcher(name))
	}
	for _, name := range hashtagOrder {
		if _, seen := mentions[name]; seen {
			continue
		}
		stat := hashtags[name]
		if stat.count < minBrandCount {
			continue
		}
		addBrand(&analysis, posts, branded, name, stat, hashtagAdMatcher(name))
	}

	sort.SliceStable(analysis.TopCollaborations, func(a, b int) bool {
		ca, cb := analysis.TopCollaborations[a], analysis.TopCollaborations[b]
		if ca.IsRecent != cb.IsRecent {
			return ca.IsRecent
		}
		return ca.Engagement > cb.Engagement
	})

	totalEngagement, totalLikes, totalComments := 0, 0, 0
	for _, bp := range branded {
		totalEngagement += bp.engagement
		totalLikes += bp.likes
		totalComments += bp.comments
	}
	if n := len(branded); n > 0 {
		rate := round1(float64(totalEngagement) / float64(n))
		analysis.Metrics.EngagementRate = rate
		analysis.EngagementMetrics.BrandedEngagementRate = rate
		analysis.EngagementMetrics.AvgBrandedLikes = int(math.Round(float64(totalLikes) / float64(n)))
		analysis.EngagementMetrics.AvgBrandedComments = int(math.Round(float64(totalComments) / float64(n)))
	}
	analysis.Metrics.TotalCollaborations = len(analysis.PreviousBrands)
	analysis.Metrics.RecentCount = len(analysis.RecentBrands)

	analysis.Status = determineStatus(posts)

	return analysis
}

// addBrand finishes one surviving token: averages engagement over exactly the
// posts naming it, classifies ad vs. organic, and appends to the output
// lists.
func addBrand(analysis *models.CollaborationAnalysis, posts []models.PostRecord, branded []brandedPost, name string, stat *brandStat, adScope *regexp.Regexp) {
	source := sourceLabel(stat)

	if stat.isRecent {
		analysis.RecentBrands = append(analysis.RecentBrands, models.BrandRef{Name: name, Source: source})
		analysis.RecentBrandNames = append(analysis.RecentBrandNames, name)
	}
	analysis.PreviousBrands = append(analysis.PreviousBrands, models.BrandRef{Name: name, Source: source})
	analysis.PreviousBrandNames = append(analysis.PreviousBrandNames, name)

	engagementSum, engagementN := 0, 0
	for _, bp := range branded {
		if _, ok := bp.brands[name]; ok {
			engagementSum += bp.engagement
			engagementN++
		}
	}
	avgEngagement := 0
	if engagementN > 0 {
		avgEngagement = int(math.Round(float64(engagementSum) / float64(engagementN)))
	}

	isAd := false
	for i := range posts {
		caption := posts[i].Caption
		if caption == "" || !adScope.MatchString(caption) {
			continue
		}
		for _, p := range adIndicatorPatterns {
			if p.MatchString(caption) {
				isAd = true
				break
			}
		}
		if isAd {
			break
		}
	}
	types := []string{"organic"}
	if isAd {
		types = []string{"ad"}
	}

	analysis.TopCollaborations = append(analysis.TopCollaborations, models.Collaboration{
		Name:       name,
		Count:      stat.count,
		Types:      types,
		Engagement: avgEngagement,
		IsRecent:   stat.isRecent,
		Source:     source,
	})
}

// collectBrandedPosts snapshots engagement for every post whose caption names
// any tracked token as a word-bounded @mention or #hashtag.
func collectBrandedPosts(posts []models.PostRecord, mentionOrder, hashtagOrder []string) []brandedPost {
	seen := make(map[string]struct{}, len(mentionOrder)+len(hashtagOrder))
	var allBrands []string
	for _, name := range append(append([]string{}, mentionOrder...), hashtagOrder...) {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		allBrands = append(allBrands, name)
	}

	matchers := make(map[string]*regexp.Regexp, len(allBrands))
	for _, name := range allBrands {
		matchers[name] = regexp.MustCompile(`(?i)(?:@|#)` + regexp.QuoteMeta(name) + `\b`)
	}

	var branded []brandedPost
	for i := range posts {
		caption := posts[i].Caption
		if caption == "" {
			continue
		}
		var matched map[string]struct{}
		for _, name := range allBrands {
			if matchers[name].MatchString(caption) {
				if matched == nil {
					matched = make(map[string]struct{})
				}
				matched[name] = struct{}{}
			}
		}
		if matched != nil {
			branded = append(branded, brandedPost{
				engagement: posts[i].LikeCount + posts[i].CommentCount,
				likes:      posts[i].LikeCount,
				comments:   posts[i].CommentCount,
				brands:     matched,
			})
		}
	}
	return branded
}

// mentionAdMatcher scopes the ad-indicator scan to posts naming the brand
// either way; hashtag-only brands scan only #brand posts.
func mentionAdMatcher(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:@|#)` + regexp.QuoteMeta(name))
}

func hashtagAdMatcher(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)#` + regexp.QuoteMeta(name))
}

func sourceLabel(stat *brandStat) string {
	switch {
	case stat.mention && stat.hashtag:
		return "mention & hashtag"
	case stat.hashtag:
		return "hashtag"
	default:
		return "mention"
	}
}

// determineStatus runs the ordered partnership rule chain. Each rule is
// tested over all posts before falling through to the next; the first hit
// yields "Active" and nothing below runs. No rule hitting leaves the status
// null.
func determineStatus(posts []models.PostRecord) *string {
	// Rule 1: a platform-flagged paid partnership.
	for i := range posts {
		if posts[i].IsPaidPartnership {
			return models.StringPtr(StatusActive)
		}
	}

	// Rule 2: a disclosure hashtag in any caption.
	for i := range posts {
		caption := strings.ToLower(posts[i].Caption)
		if caption == "" {
			continue
		}
		for _, tag := range statusHashtags {
			if strings.Contains(caption, "#"+tag) {
				return models.StringPtr(StatusActive)
			}
		}
	}

	self := models.SelfUsername(posts)

	// Rule 3: a post owned by someone other than the creator.
	for i := range posts {
		if posts[i].OwnerUsername != "" && posts[i].OwnerUsername != self {
			return models.StringPtr(StatusActive)
		}
	}

	// Rule 4: a coauthor other than the creator.
	for i := range posts {
		for _, coauthor := range posts[i].CoauthorUsernames {
			if coauthor != "" && coauthor != self {
				return models.StringPtr(StatusActive)
			}
		}
	}

	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
