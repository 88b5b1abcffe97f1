package collab

import (
	"testing"
	"time"

	"github.com/veralens/creatorscope/internal/models"
)

var collabNow = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func unix(t time.Time) int64 { return t.Unix() }

func TestAnalyzeBrandDetection(t *testing.T) {
	recent := unix(collabNow.AddDate(0, 0, -10))

	posts := []models.PostRecord{
		{Caption: "loving my @glowbrand set", TakenAt: recent, LikeCount: 100, CommentCount: 10, PosterUsername: "creator1"},
		{Caption: "restock day @glowbrand", TakenAt: recent, LikeCount: 200, CommentCount: 20, PosterUsername: "creator1"},
		{Caption: "one off @otherbrand", TakenAt: recent, PosterUsername: "creator1"},
	}

	analysis := Analyze(posts, collabNow)

	if len(analysis.PreviousBrands) != 1 {
		t.Fatalf("PreviousBrands = %v, want exactly glowbrand", analysis.PreviousBrands)
	}
	if analysis.PreviousBrands[0].Name != "glowbrand" {
		t.Errorf("brand name = %q, want glowbrand", analysis.PreviousBrands[0].Name)
	}
	if analysis.PreviousBrands[0].Source != "mention" {
		t.Errorf("source = %q, want mention", analysis.PreviousBrands[0].Source)
	}
	if len(analysis.RecentBrands) != 1 {
		t.Errorf("RecentBrands = %v, want glowbrand", analysis.RecentBrands)
	}
	if len(analysis.TopCollaborations) != 1 {
		t.Fatalf("TopCollaborations = %v, want one entry", analysis.TopCollaborations)
	}

	top := analysis.TopCollaborations[0]
	if top.Count != 2 {
		t.Errorf("count = %d, want 2", top.Count)
	}
	// Two posts name glowbrand: engagement 110 and 220, averaged to 165.
	if top.Engagement != 165 {
		t.Errorf("engagement = %d, want 165", top.Engagement)
	}
	if !top.IsRecent {
		t.Error("expected recent brand")
	}
	if len(top.Types) != 1 || top.Types[0] != "organic" {
		t.Errorf("types = %v, want [organic]", top.Types)
	}
}

func TestAnalyzeRecencyWindow(t *testing.T) {
	old := unix(collabNow.AddDate(0, 0, -400))

	posts := []models.PostRecord{
		{Caption: "throwback @oldbrand", TakenAt: old, PosterUsername: "creator1"},
		{Caption: "more @oldbrand", TakenAt: old, PosterUsername: "creator1"},
	}

	analysis := Analyze(posts, collabNow)

	if len(analysis.RecentBrands) != 0 {
		t.Errorf("RecentBrands = %v, want none for 400-day-old posts", analysis.RecentBrands)
	}
	if len(analysis.PreviousBrands) != 1 {
		t.Errorf("PreviousBrands = %v, want oldbrand", analysis.PreviousBrands)
	}
	if analysis.Metrics.TotalCollaborations != 1 {
		t.Errorf("TotalCollaborations = %d, want 1", analysis.Metrics.TotalCollaborations)
	}
	if analysis.Metrics.RecentCount != 0 {
		t.Errorf("RecentCount = %d, want 0", analysis.Metrics.RecentCount)
	}
}

func TestAnalyzeAdClassification(t *testing.T) {
	recent := unix(collabNow.AddDate(0, 0, -5))

	posts := []models.PostRecord{
		{Caption: "so excited to partner with @sponsorco #ad", TakenAt: recent, PosterUsername: "creator1"},
		{Caption: "back with @sponsorco", TakenAt: recent, PosterUsername: "creator1"},
	}

	analysis := Analyze(posts, collabNow)

	if len(analysis.TopCollaborations) != 1 {
		t.Fatalf("TopCollaborations = %v, want one entry", analysis.TopCollaborations)
	}
	if got := analysis.TopCollaborations[0].Types; len(got) != 1 || got[0] != "ad" {
		t.Errorf("types = %v, want [ad]", got)
	}
}

func TestAnalyzeHashtagBrands(t *testing.T) {
	recent := unix(collabNow.AddDate(0, 0, -5))

	posts := []models.PostRecord{
		{Caption: "new drop #glowbrand", TakenAt: recent, PosterUsername: "creator1"},
		{Caption: "still obsessed #glowbrand", TakenAt: recent, PosterUsername: "creator1"},
	}

	analysis := Analyze(posts, collabNow)

	if len(analysis.PreviousBrands) != 1 {
		t.Fatalf("PreviousBrands = %v, want glowbrand", analysis.PreviousBrands)
	}
	if analysis.PreviousBrands[0].Source != "hashtag" {
		t.Errorf("source = %q, want hashtag", analysis.PreviousBrands[0].Source)
	}
}

func TestAnalyzeSortOrder(t *testing.T) {
	recent := unix(collabNow.AddDate(0, 0, -5))
	old := unix(collabNow.AddDate(0, 0, -400))

	posts := []models.PostRecord{
		{Caption: "@lowengage here", TakenAt: recent, LikeCount: 10, PosterUsername: "creator1"},
		{Caption: "@lowengage again", TakenAt: recent, LikeCount: 10, PosterUsername: "creator1"},
		{Caption: "@highengage wow", TakenAt: recent, LikeCount: 500, PosterUsername: "creator1"},
		{Caption: "@highengage more", TakenAt: recent, LikeCount: 500, PosterUsername: "creator1"},
		{Caption: "@staleone then", TakenAt: old, LikeCount: 9000, PosterUsername: "creator1"},
		{Caption: "@staleone now then", TakenAt: old, LikeCount: 9000, PosterUsername: "creator1"},
	}

	analysis := Analyze(posts, collabNow)

	if len(analysis.TopCollaborations) != 3 {
		t.Fatalf("TopCollaborations has %d entries, want 3", len(analysis.TopCollaborations))
	}
	if analysis.TopCollaborations[0].Name != "highengage" {
		t.Errorf("first = %q, want highengage", analysis.TopCollaborations[0].Name)
	}
	if analysis.TopCollaborations[1].Name != "lowengage" {
		t.Errorf("second = %q, want lowengage", analysis.TopCollaborations[1].Name)
	}
	if analysis.TopCollaborations[2].Name != "staleone" {
		t.Errorf("third = %q, want staleone despite higher engagement", analysis.TopCollaborations[2].Name)
	}
}

func TestDetermineStatus(t *testing.T) {
	tests := []struct {
		name     string
		posts    []models.PostRecord
		expected bool
	}{
		{
			name: "paid partnership flag",
			posts: []models.PostRecord{
				{Caption: "hi", IsPaidPartnership: true, PosterUsername: "me"},
			},
			expected: true,
		},
		{
			name: "disclosure hashtag",
			posts: []models.PostRecord{
				{Caption: "check this #collab video", PosterUsername: "me"},
			},
			expected: true,
		},
		{
			name: "foreign owner",
			posts: []models.PostRecord{
				{Caption: "x", PosterUsername: "me", OwnerUsername: "someoneelse"},
			},
			expected: true,
		},
		{
			name: "foreign coauthor",
			posts: []models.PostRecord{
				{Caption: "x", PosterUsername: "me", OwnerUsername: "me", CoauthorUsernames: []string{"brandpage"}},
			},
			expected: true,
		},
		{
			name: "own posts only",
			posts: []models.PostRecord{
				{Caption: "just me", PosterUsername: "me", OwnerUsername: "me", CoauthorUsernames: []string{"me"}},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := Analyze(tt.posts, collabNow)
			got := analysis.Status != nil && *analysis.Status == StatusActive
			if got != tt.expected {
				t.Errorf("status active = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAnalyzeEmptyTimeline(t *testing.T) {
	analysis := Analyze(nil, collabNow)

	if analysis.Status != nil {
		t.Errorf("status = %v, want nil", *analysis.Status)
	}
	if len(analysis.PreviousBrands) != 0 || len(analysis.TopCollaborations) != 0 {
		t.Error("expected empty brand lists")
	}
	if analysis.Metrics.EngagementRate != 0 {
		t.Errorf("engagement rate = %v, want 0", analysis.Metrics.EngagementRate)
	}
}
