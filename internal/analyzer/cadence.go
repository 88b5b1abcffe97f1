package analyzer

import (
	"math"
	"sort"
	"time"

	"github.com/veralens/creatorscope/internal/models"
)

// consistencyThresholdDays is the max deviation from the mean gap before a
// schedule stops counting as consistent.
const consistencyThresholdDays = 2.0

// timeRange buckets posting hours into display ranges. Declaration order is
// the tie-break when counts are equal.
type timeRange struct {
	label string
	hours []int
}

var timeRanges = []timeRange{
	{"Early Morning (5am-8am)", []int{5, 6, 7, 8}},
	{"Morning (8am-12pm)", []int{9, 10, 11, 12}},
	{"Afternoon (12pm-5pm)", []int{13, 14, 15, 16, 17}},
	{"Evening (5pm-10pm)", []int{18, 19, 20, 21, 22}},
	{"Night (10pm-5am)", []int{23, 0, 1, 2, 3, 4}},
}

// postingFrequency derives the cadence section from post timestamps: overall
// frequency label from the mean gap, days since the last post, schedule
// consistency, and the best-performing days and time ranges.
func postingFrequency(posts []models.PostRecord, now time.Time) models.PostingFrequency {
	freq := models.PostingFrequency{
		BestDays:  []string{},
		BestTimes: []string{},
	}

	var timestamps []int64
	dayCounts := make(map[string]int)
	var dayOrder []string
	hourCounts := make(map[int]int)

	for i := range posts {
		ts := posts[i].TakenAt
		if ts == 0 {
			continue
		}
		timestamps = append(timestamps, ts)
		t := time.Unix(ts, 0)

		day := t.Weekday().String()
		if _, seen := dayCounts[day]; !seen {
			dayOrder = append(dayOrder, day)
		}
		dayCounts[day]++
		hourCounts[t.Hour()]++
	}

	if len(timestamps) == 0 {
		return freq
	}

	sorted := make([]int64, len(timestamps))
	copy(sorted, timestamps)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a] > sorted[b] })

	daysSince := int(now.Sub(time.Unix(sorted[0], 0)).Hours() / 24)
	freq.DaysSinceLastPost = models.IntPtr(daysSince)

	if len(sorted) > 1 {
		var gaps []float64
		sum := 0.0
		for i := 0; i < len(sorted)-1; i++ {
			gap := float64(sorted[i]-sorted[i+1]) / (24 * 3600)
			gaps = append(gaps, gap)
			sum += gap
		}
		avg := sum / float64(len(gaps))

		freq.OverallFrequency = models.StringPtr(frequencyLabel(avg))

		consistent := true
		for _, gap := range gaps {
			if math.Abs(gap-avg) > consistencyThresholdDays {
				consistent = false
				break
			}
		}
		freq.ConsistentSchedule = models.BoolPtr(consistent)
	} else {
		freq.OverallFrequency = models.StringPtr("N/A")
	}

	freq.BestDays = topDays(dayCounts, dayOrder, 3)
	freq.BestTimes = topTimeRanges(hourCounts, 2)

	return freq
}

func frequencyLabel(avgDays float64) string {
	switch {
	case avgDays < 1:
		return "Multiple times daily"
	case avgDays < 2:
		return "Daily"
	case avgDays < 7:
		return "Weekly"
	case avgDays < 14:
		return "Bi-weekly"
	case avgDays < 31:
		return "Monthly"
	default:
		return "Infrequent"
	}
}

func topDays(counts map[string]int, order []string, n int) []string {
	days := make([]string, len(order))
	copy(days, order)
	sort.SliceStable(days, func(a, b int) bool {
		return counts[days[a]] > counts[days[b]]
	})
	if len(days) > n {
		days = days[:n]
	}
	if days == nil {
		return []string{}
	}
	return days
}

func topTimeRanges(hourCounts map[int]int, n int) []string {
	type rangeCount struct {
		label string
		count int
	}
	ranges := make([]rangeCount, len(timeRanges))
	for i, tr := range timeRanges {
		ranges[i].label = tr.label
		for _, h := range tr.hours {
			ranges[i].count += hourCounts[h]
		}
	}
	sort.SliceStable(ranges, func(a, b int) bool {
		return ranges[a].count > ranges[b].count
	})

	// Only the top-n ranges are considered; zero-count ones are dropped
	// rather than replaced.
	if len(ranges) > n {
		ranges = ranges[:n]
	}
	best := []string{}
	for _, rc := range ranges {
		if rc.count > 0 {
			best = append(best, rc.label)
		}
	}
	return best
}
