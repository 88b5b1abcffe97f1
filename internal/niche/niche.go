// Package niche classifies a creator's content into a fixed taxonomy of 20
// categories by scoring hashtag frequency against per-category keyword lists.
//
// Keyword matching is deliberately substring-based, not whole-word: "fit"
// matches "#fitfam" and "#outfit" alike. That over-matching is part of the
// product behavior the taxonomy keywords were tuned against.
package niche

import (
	"math"
	"sort"
	"strings"

	"github.com/veralens/creatorscope/internal/models"
	"github.com/veralens/creatorscope/internal/textsig"
)

// Category pairs a taxonomy label with its match keywords.
type Category struct {
	Name     string
	Keywords []string
}

// Categories is the closed taxonomy. Declaration order is the tie-break for
// equal scores, so the order is part of the contract.
var Categories = []Category{
	{"Fashion & Style", []string{"fashion", "style", "outfit", "clothing", "model", "dress", "accessories", "fashionista"}},
	{"Beauty", []string{"makeup", "skincare", "beauty", "cosmetics", "haircare", "nails", "glam", "makeupartist"}},
	{"Lifestyle", []string{"lifestyle", "life", "daily", "routine", "inspiration", "motivation"}},
	{"Fitness", []string{"fitness", "workout", "gym", "exercise", "health", "training", "muscle", "fit"}},
	{"Health", []string{"health", "wellness", "nutrition", "diet", "healthy", "mindfulness", "meditation"}},
	{"Food", []string{"food", "cooking", "recipe", "chef", "foodie", "cuisine", "baking", "delicious", "yummy"}},
	{"Travel", []string{"travel", "wanderlust", "adventure", "explore", "tourism", "vacation", "trip", "journey", "destination"}},
	{"Technology", []string{"technology", "tech", "gadget", "device", "software", "app", "smartphone", "computer"}},
	{"Gaming", []string{"gaming", "gamer", "videogames", "game", "esports", "playstation", "xbox", "nintendo"}},
	{"Entertainment", []string{"entertainment", "movie", "film", "tv", "television", "cinema", "streaming"}},
	{"Comedy", []string{"comedy", "funny", "humor", "laugh", "joke", "prank", "skit"}},
	{"Education", []string{"education", "learning", "school", "knowledge", "teach", "study", "student", "lesson"}},
	{"Business", []string{"business", "entrepreneur", "marketing", "startup", "success", "money"}},
	{"Finance", []string{"finance", "investing", "stocks", "cryptocurrency", "money", "financial", "wealth"}},
	{"Art & Design", []string{"art", "artist", "drawing", "painting", "creative", "design", "illustration"}},
	{"Music", []string{"music", "musician", "song", "singer", "artist", "band", "concert"}},
	{"Dance", []string{"dance", "dancer", "choreography", "ballet", "hiphop"}},
	{"Sports", []string{"sports", "athlete", "basketball", "football", "soccer", "baseball", "tennis"}},
	{"Pets & Animals", []string{"pets", "dog", "cat", "animal", "puppy", "kitten", "wildlife"}},
	{"Family & Parenting", []string{"family", "parenting", "mom", "dad", "children", "kids", "baby"}},
}

// distributionCutoff drops categories below this share of the total score.
const distributionCutoff = 2.0

// Classify scores every taxonomy category against the hashtags of the posts
// and derives the primary category, up to three secondary categories, the
// percentage distribution, and a 0-100 confidence per category. The
// confidence map always carries all categories; primary is nil when nothing
// scored.
func Classify(posts []models.PostRecord) models.NicheAnalysis {
	counts := hashtagCounts(posts)

	scores := make([]int, len(Categories))
	for tag, count := range counts {
		for i, cat := range Categories {
			for _, keyword := range cat.Keywords {
				if strings.Contains(tag, keyword) {
					scores[i] += count
					break
				}
			}
		}
	}

	// Rank by score descending, first-declared wins ties.
	order := make([]int, len(Categories))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	total := 0
	for _, s := range scores {
		total += s
	}

	analysis := models.NicheAnalysis{
		Secondary:        []string{},
		Distribution:     make(map[string]float64),
		ConfidenceScores: make(map[string]int, len(Categories)),
	}

	if total > 0 {
		for i, cat := range Categories {
			if scores[i] == 0 {
				continue
			}
			pct := math.Round(float64(scores[i])/float64(total)*1000) / 10
			if pct >= distributionCutoff {
				analysis.Distribution[cat.Name] = pct
			}
		}
	}

	topScore := scores[order[0]]
	if topScore > 0 {
		analysis.Primary = models.StringPtr(Categories[order[0]].Name)
		for _, idx := range order[1:4] {
			if scores[idx] > 0 {
				analysis.Secondary = append(analysis.Secondary, Categories[idx].Name)
			}
		}
	}

	maxScore := topScore
	if maxScore == 0 {
		maxScore = 1
	}
	for i, cat := range Categories {
		confidence := int(float64(scores[i]) / float64(maxScore) * 100)
		if confidence > 100 {
			confidence = 100
		}
		analysis.ConfidenceScores[cat.Name] = confidence
	}

	return analysis
}

// hashtagCounts builds a lowercased hashtag frequency table across all post
// captions.
func hashtagCounts(posts []models.PostRecord) map[string]int {
	counts := make(map[string]int)
	for i := range posts {
		for _, tag := range textsig.ExtractHashtags(posts[i].Caption) {
			counts[strings.ToLower(tag)]++
		}
	}
	return counts
}
