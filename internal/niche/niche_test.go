package niche

import (
	"testing"

	"github.com/veralens/creatorscope/internal/models"
)

func postsWithCaptions(captions ...string) []models.PostRecord {
	posts := make([]models.PostRecord, len(captions))
	for i, c := range captions {
		posts[i] = models.PostRecord{Caption: c}
	}
	return posts
}

func TestClassifyPrimary(t *testing.T) {
	posts := postsWithCaptions(
		"leg day #gym #workout #fitness",
		"meal prep sunday #fitness #healthy",
		"quick pasta #recipe",
	)

	analysis := Classify(posts)

	if analysis.Primary == nil {
		t.Fatal("expected a primary niche")
	}
	if *analysis.Primary != "Fitness" {
		t.Errorf("Primary = %q, want Fitness", *analysis.Primary)
	}
	if analysis.ConfidenceScores["Fitness"] != 100 {
		t.Errorf("Fitness confidence = %d, want 100", analysis.ConfidenceScores["Fitness"])
	}
}

func TestClassifySubstringMatch(t *testing.T) {
	// "fit" must match inside "#fitfam".
	analysis := Classify(postsWithCaptions("squad goals #fitfam"))

	if analysis.Primary == nil || *analysis.Primary != "Fitness" {
		t.Fatalf("expected Fitness primary, got %v", analysis.Primary)
	}
}

func TestClassifyDistributionSums(t *testing.T) {
	posts := postsWithCaptions(
		"#fashion #style #ootd",
		"#makeup #skincare",
		"#travel #wanderlust #explore",
		"#fitness #gym",
	)

	analysis := Classify(posts)

	sum := 0.0
	for _, pct := range analysis.Distribution {
		if pct < 2.0 {
			t.Errorf("distribution entry below cutoff: %v", pct)
		}
		sum += pct
	}
	// Entries below the 2% cutoff are dropped and rounding is to one
	// decimal, so the sum only approximates 100.
	if sum < 90 || sum > 101 {
		t.Errorf("distribution sum = %v, want roughly 100", sum)
	}
}

func TestClassifyNoHashtags(t *testing.T) {
	analysis := Classify(postsWithCaptions("no tags here", ""))

	if analysis.Primary != nil {
		t.Errorf("expected nil primary, got %q", *analysis.Primary)
	}
	if len(analysis.Secondary) != 0 {
		t.Errorf("expected no secondary niches, got %v", analysis.Secondary)
	}
	if len(analysis.Distribution) != 0 {
		t.Errorf("expected empty distribution, got %v", analysis.Distribution)
	}
	if len(analysis.ConfidenceScores) != len(Categories) {
		t.Errorf("confidence map has %d entries, want %d", len(analysis.ConfidenceScores), len(Categories))
	}
	for name, c := range analysis.ConfidenceScores {
		if c != 0 {
			t.Errorf("confidence for %s = %d, want 0", name, c)
		}
	}
}

func TestClassifyDeclarationOrderTieBreak(t *testing.T) {
	// "health" scores both Fitness and Health equally; Fitness is declared
	// first and must win the tie.
	analysis := Classify(postsWithCaptions("#health"))

	if analysis.Primary == nil || *analysis.Primary != "Fitness" {
		t.Fatalf("expected Fitness on tie, got %v", analysis.Primary)
	}
	if len(analysis.Secondary) == 0 || analysis.Secondary[0] != "Health" {
		t.Errorf("expected Health as first secondary, got %v", analysis.Secondary)
	}
}

func TestClassifyConfidenceAlwaysComplete(t *testing.T) {
	analysis := Classify(postsWithCaptions("#travel"))

	if len(analysis.ConfidenceScores) != len(Categories) {
		t.Fatalf("confidence map has %d entries, want %d", len(analysis.ConfidenceScores), len(Categories))
	}
	if analysis.ConfidenceScores["Travel"] != 100 {
		t.Errorf("Travel confidence = %d, want 100", analysis.ConfidenceScores["Travel"])
	}
	if analysis.ConfidenceScores["Gaming"] != 0 {
		t.Errorf("Gaming confidence = %d, want 0", analysis.ConfidenceScores["Gaming"])
	}
}
