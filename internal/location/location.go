// Package location aggregates per-post tagged locations into a ranked home
// location and parses free-form place strings into city/state/country parts.
package location

import (
	"sort"
	"strings"
	"time"

	"github.com/veralens/creatorscope/internal/models"
)

// recencyWindow is the trailing window within which a tagged location counts
// as recent.
const recencyWindow = 90 * 24 * time.Hour

// topLocationLimit caps the ranked location lists in the output.
const topLocationLimit = 5

// HomeConfidenceCount is the minimum tag count before callers should trust
// address fields inferred from the home location.
const HomeConfidenceCount = 3

// countryExpansions maps common country abbreviations in place strings to
// their full names.
var countryExpansions = map[string]string{
	"UAE": "United Arab Emirates",
	"UK":  "United Kingdom",
	"USA": "United States",
	"US":  "United States",
}

// Aggregate counts named locations across the timeline, ranks them by
// frequency, and derives the home location from the top entry. Posts without
// a location name are skipped entirely.
func Aggregate(posts []models.PostRecord, now time.Time) models.LocationAnalysis {
	cutoff := now.Add(-recencyWindow)

	data := make(map[string]*models.LocationDetail)
	var order []string
	var recentNames []string

	for i := range posts {
		loc := posts[i].Location
		if loc == nil || loc.Name == "" {
			continue
		}

		isRecent := posts[i].TakenAt != 0 && posts[i].TakenTime().After(cutoff)

		detail, ok := data[loc.Name]
		if !ok {
			detail = &models.LocationDetail{ID: loc.ID, Count: 0, IsRecent: isRecent}
			if loc.HasCoordinates() {
				detail.Coordinates = &models.Coordinates{Lat: loc.Lat, Lng: loc.Lng}
			}
			data[loc.Name] = detail
			order = append(order, loc.Name)
		}
		detail.Count++
		if isRecent {
			detail.IsRecent = true
		}

		if isRecent && !containsString(recentNames, loc.Name) {
			recentNames = append(recentNames, loc.Name)
		}
	}

	ranked := make([]models.LocationCount, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, models.LocationCount{Name: name, Count: data[name].Count})
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Count > ranked[b].Count
	})

	analysis := models.LocationAnalysis{
		TopLocations:    limitCounts(ranked, topLocationLimit),
		RecentLocations: limitStrings(recentNames, topLocationLimit),
		LocationData:    data,
		TotalLocations:  len(data),
	}

	if len(ranked) > 0 {
		top := ranked[0]
		home := ParsePlaceString(top.Name)
		if home != nil {
			home.Count = top.Count
			home.Coordinates = data[top.Name].Coordinates
			analysis.HomeLocation = home
		}
	}

	return analysis
}

// ParsePlaceString splits a free-form place string on ", " and assigns the
// parts positionally: one part is a bare city; two parts are city plus either
// a known country expansion, a two-letter uppercase US state, or a literal
// country; three or more parts are city, state, country. Returns nil for an
// empty string.
func ParsePlaceString(s string) *models.HomeLocation {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ", ")
	home := &models.HomeLocation{FullLocation: models.StringPtr(s)}

	switch {
	case len(parts) == 1:
		home.City = models.StringPtr(parts[0])
	case len(parts) == 2:
		home.City = models.StringPtr(parts[0])
		second := parts[1]
		if expanded, ok := countryExpansions[second]; ok {
			home.Country = models.StringPtr(expanded)
		} else if isUpperTwoLetter(second) {
			home.State = models.StringPtr(second)
			home.Country = models.StringPtr("United States")
		} else {
			home.Country = models.StringPtr(second)
		}
	default:
		home.City = models.StringPtr(parts[0])
		home.State = models.StringPtr(parts[1])
		home.Country = models.StringPtr(parts[2])
	}

	return home
}

// isUpperTwoLetter matches a US-state-style abbreviation like "CA" or "NY".
func isUpperTwoLetter(s string) bool {
	if len(s) != 2 {
		return false
	}
	return s[0] >= 'A' && s[0] <= 'Z' && s[1] >= 'A' && s[1] <= 'Z'
}

func limitCounts(items []models.LocationCount, n int) []models.LocationCount {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func limitStrings(items []string, n int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
