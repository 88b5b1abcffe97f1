package analyzer

import (
	"math"

	"github.com/veralens/creatorscope/internal/demographics"
	"github.com/veralens/creatorscope/internal/models"
)

// audienceAnalysis estimates audience composition from the creator's own
// demographics and niche, plus the raw engagement rate over the timeline.
func audienceAnalysis(profile models.ProfileRecord, posts []models.PostRecord, gender, ageGroup, primaryNiche string) models.AudienceAnalysis {
	totalLikes, totalComments := 0, 0
	for i := range posts {
		totalLikes += posts[i].LikeCount
		totalComments += posts[i].CommentCount
	}

	rate := 0.0
	if profile.FollowerCount > 0 && len(posts) > 0 {
		perPost := float64(totalLikes+totalComments) / float64(len(posts))
		rate = perPost / float64(profile.FollowerCount) * 100
		rate = math.Round(rate*100) / 100
	}

	return models.AudienceAnalysis{
		EngagementRate:    rate,
		EngagementQuality: engagementQuality(rate),
		FollowerCount:     profile.FollowerCount,
		EstimatedDemographics: models.EstimatedDemographics{
			AgeGroups:   audienceAgeGroups(ageGroup, primaryNiche),
			GenderRatio: audienceGenderRatio(gender, primaryNiche),
		},
	}
}

func engagementQuality(rate float64) *string {
	switch {
	case rate > 10:
		return models.StringPtr("Excellent")
	case rate > 5:
		return models.StringPtr("Good")
	case rate > 2:
		return models.StringPtr("Average")
	case rate > 0:
		return models.StringPtr("Below Average")
	default:
		return nil
	}
}

// audienceAgeGroups projects the creator's age group onto likely audience
// bands, falling back to niche heuristics when the creator's band gives no
// strong signal.
func audienceAgeGroups(ageGroup, primaryNiche string) []string {
	switch ageGroup {
	case "18-24", "25-34":
		return []string{"18-24", "25-29", "25-34"}
	case "35-44":
		return []string{"25-34", "35-44"}
	case "Under 18":
		return []string{"13-17", "18-24"}
	}

	switch primaryNiche {
	case "Travel", "Food":
		return []string{"25-29", "25-34", "35-44"}
	default:
		return []string{"18-24", "25-29", "25-34"}
	}
}

// audienceGenderRatio estimates the follower gender split. Creators mostly
// attract a majority of their own gender; gender-neutral cases lean on the
// niche's known skew.
func audienceGenderRatio(gender, primaryNiche string) models.GenderRatio {
	switch gender {
	case demographics.Female:
		return models.GenderRatio{Female: 66, Male: 34}
	case demographics.Male:
		return models.GenderRatio{Female: 34, Male: 66}
	}

	switch primaryNiche {
	case "Gaming", "Technology":
		return models.GenderRatio{Female: 30, Male: 70}
	case "Fashion & Style", "Beauty":
		return models.GenderRatio{Female: 70, Male: 30}
	case "Travel", "Food":
		return models.GenderRatio{Female: 55, Male: 45}
	default:
		return models.GenderRatio{Female: 50, Male: 50}
	}
}
