package analyzer

import (
	"testing"
	"time"

	"github.com/veralens/creatorscope/internal/models"
)

func postAt(t time.Time) models.PostRecord {
	return models.PostRecord{TakenAt: t.Unix()}
}

func TestPostingFrequencyLabels(t *testing.T) {
	tests := []struct {
		name     string
		gapHours int
		expected string
	}{
		{"multiple daily", 12, "Multiple times daily"},
		{"daily", 30, "Daily"},
		{"weekly", 96, "Weekly"},
		{"bi-weekly", 240, "Bi-weekly"},
		{"monthly", 500, "Monthly"},
		{"infrequent", 900, "Infrequent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := []models.PostRecord{
				postAt(analyzerNow.Add(-1 * time.Hour)),
				postAt(analyzerNow.Add(-1*time.Hour - time.Duration(tt.gapHours)*time.Hour)),
				postAt(analyzerNow.Add(-1*time.Hour - 2*time.Duration(tt.gapHours)*time.Hour)),
			}
			freq := postingFrequency(posts, analyzerNow)
			if freq.OverallFrequency == nil || *freq.OverallFrequency != tt.expected {
				t.Errorf("frequency = %v, want %q", freq.OverallFrequency, tt.expected)
			}
		})
	}
}

func TestPostingFrequencySinglePost(t *testing.T) {
	freq := postingFrequency([]models.PostRecord{postAt(analyzerNow.AddDate(0, 0, -6))}, analyzerNow)

	if freq.OverallFrequency == nil || *freq.OverallFrequency != "N/A" {
		t.Errorf("frequency = %v, want N/A for a single post", freq.OverallFrequency)
	}
	if freq.DaysSinceLastPost == nil || *freq.DaysSinceLastPost != 6 {
		t.Errorf("days since last post = %v, want 6", freq.DaysSinceLastPost)
	}
	if freq.ConsistentSchedule != nil {
		t.Errorf("consistency = %v, want nil with one post", freq.ConsistentSchedule)
	}
}

func TestPostingFrequencyConsistency(t *testing.T) {
	// Exactly every 3 days: consistent.
	regular := []models.PostRecord{
		postAt(analyzerNow.AddDate(0, 0, -1)),
		postAt(analyzerNow.AddDate(0, 0, -4)),
		postAt(analyzerNow.AddDate(0, 0, -7)),
		postAt(analyzerNow.AddDate(0, 0, -10)),
	}
	freq := postingFrequency(regular, analyzerNow)
	if freq.ConsistentSchedule == nil || !*freq.ConsistentSchedule {
		t.Errorf("consistency = %v, want true for regular cadence", freq.ConsistentSchedule)
	}

	// A 20-day gap among 1-day gaps: inconsistent.
	bursty := []models.PostRecord{
		postAt(analyzerNow.AddDate(0, 0, -1)),
		postAt(analyzerNow.AddDate(0, 0, -2)),
		postAt(analyzerNow.AddDate(0, 0, -3)),
		postAt(analyzerNow.AddDate(0, 0, -23)),
	}
	freq = postingFrequency(bursty, analyzerNow)
	if freq.ConsistentSchedule == nil || *freq.ConsistentSchedule {
		t.Errorf("consistency = %v, want false for bursty cadence", freq.ConsistentSchedule)
	}
}

func TestPostingFrequencyBestDays(t *testing.T) {
	base := analyzerNow.AddDate(0, 0, -28)
	dominant := time.Unix(base.Unix(), 0).Weekday().String()

	posts := []models.PostRecord{
		postAt(base),
		postAt(base.AddDate(0, 0, 7)),
		postAt(base.AddDate(0, 0, 14)),
		postAt(base.AddDate(0, 0, 1)),
	}

	freq := postingFrequency(posts, analyzerNow)

	if len(freq.BestDays) != 2 {
		t.Fatalf("BestDays = %v, want 2 distinct days", freq.BestDays)
	}
	if freq.BestDays[0] != dominant {
		t.Errorf("best day = %q, want %q", freq.BestDays[0], dominant)
	}
}

func TestPostingFrequencyEmpty(t *testing.T) {
	freq := postingFrequency(nil, analyzerNow)

	if freq.OverallFrequency != nil {
		t.Errorf("frequency = %v, want nil", freq.OverallFrequency)
	}
	if freq.DaysSinceLastPost != nil {
		t.Errorf("days since last post = %v, want nil", freq.DaysSinceLastPost)
	}
	if len(freq.BestDays) != 0 || len(freq.BestTimes) != 0 {
		t.Errorf("best days/times = %v/%v, want empty", freq.BestDays, freq.BestTimes)
	}
}

func TestTopTimeRanges(t *testing.T) {
	// Evening hours dominate, morning second, one stray night post. Only the
	// top two ranges survive.
	hourCounts := map[int]int{
		19: 5, 20: 4, // Evening
		9: 3, 10: 2, // Morning
		2: 1, // Night
	}

	got := topTimeRanges(hourCounts, 2)

	if len(got) != 2 {
		t.Fatalf("topTimeRanges = %v, want 2 entries", got)
	}
	if got[0] != "Evening (5pm-10pm)" {
		t.Errorf("first range = %q, want Evening", got[0])
	}
	if got[1] != "Morning (8am-12pm)" {
		t.Errorf("second range = %q, want Morning", got[1])
	}
}

func TestTopTimeRangesDropsZeroCounts(t *testing.T) {
	got := topTimeRanges(map[int]int{14: 2}, 2)

	if len(got) != 1 || got[0] != "Afternoon (12pm-5pm)" {
		t.Errorf("topTimeRanges = %v, want only Afternoon", got)
	}
}
