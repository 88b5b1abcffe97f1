// Package analyzer composes the individual classifiers into one complete
// AnalysisRecord per creator. Composition is by data-passing only: the niche
// result feeds gender detection, the location result feeds the residency
// override chain, and nothing shares internal state.
package analyzer

import (
	"strings"
	"time"

	"github.com/veralens/creatorscope/internal/collab"
	"github.com/veralens/creatorscope/internal/demographics"
	"github.com/veralens/creatorscope/internal/location"
	"github.com/veralens/creatorscope/internal/models"
	"github.com/veralens/creatorscope/internal/niche"
	"github.com/veralens/creatorscope/internal/refdata"
	"github.com/veralens/creatorscope/internal/textsig"
)

// Creator type labels derived from the business-category map.
const (
	TypeContentCreator = "Content Creator"
	TypeBusiness       = "Business"
	TypeBlank          = "BLANK"
)

// Analyzer runs the full per-creator analysis. It is safe for concurrent use:
// the reference tables are read-only and every call works on its own inputs.
type Analyzer struct {
	tables *refdata.Tables
	now    func() time.Time
}

// New creates an Analyzer over the given reference tables.
func New(tables *refdata.Tables) *Analyzer {
	return &Analyzer{tables: tables, now: time.Now}
}

// NewAt creates an Analyzer with a fixed clock. Used by tests.
func NewAt(tables *refdata.Tables, now func() time.Time) *Analyzer {
	return &Analyzer{tables: tables, now: now}
}

// Analyze derives the complete record for one creator. Every section is
// always populated; a classifier finding no signal resolves to an explicit
// default, never an error.
func (a *Analyzer) Analyze(profile models.ProfileRecord, posts []models.PostRecord) models.AnalysisRecord {
	now := a.now()

	firstName, lastName := splitName(profile.FullName)
	bio := profile.Biography

	instagramLink := ""
	if profile.Username != "" {
		instagramLink = "https://www.instagram.com/" + profile.Username
	}
	_, tiktokLink := ExtractSocialLinks(bio, profile.BioLinks)
	otherLinks := filterOtherLinks(profile.BioLinks, instagramLink, tiktokLink)

	allText := bio
	for i := range posts {
		if posts[i].Caption != "" {
			allText += "\n" + posts[i].Caption
		}
	}
	age, ageGroup := textsig.ExtractAge(allText, now)

	nicheAnalysis := niche.Classify(posts)
	primaryNiche := ""
	if nicheAnalysis.Primary != nil {
		primaryNiche = *nicheAnalysis.Primary
	}

	captions := make([]string, len(posts))
	for i := range posts {
		captions[i] = posts[i].Caption
	}
	gender, confidence := demographics.DetectGender(bio, captions, firstName, primaryNiche, a.tables)
	gender, _ = demographics.ApplyNameCorrection(firstName, gender, confidence)

	locationAnalysis := location.Aggregate(posts, now)
	collabAnalysis := collab.Analyze(posts, now)

	basedOn := a.determineBasedOn(profile, locationAnalysis)

	record := models.AnalysisRecord{
		CollaborationAnalysis: collabAnalysis,
		NicheAnalysis:         nicheAnalysis,
		LocationAnalysis:      locationAnalysis,
		PersonalDetails: models.PersonalDetails{
			FirstName:        models.StringPtr(firstName),
			LastName:         models.StringPtr(lastName),
			Username:         profile.Username,
			Age:              agePtr(age),
			Gender:           gender,
			Email:            models.StringPtr(textsig.ExtractEmail(bio)),
			PhoneNumber:      models.StringPtr(textsig.ExtractPhone(bio)),
			InstagramLink:    models.StringPtr(instagramLink),
			TikTokLink:       models.StringPtr(tiktokLink),
			OtherLinks:       otherLinks,
			Address:          a.buildAddress(profile, locationAnalysis),
			CreatorSize:      creatorSize(profile.FollowerCount),
			CreatorType:      a.CreatorType(profile.BusinessCategory),
			BusinessCategory: profile.BusinessCategory,
			ProfilePicture:   profile.Username + ".jpg",
			AgeGroup:         ageGroup,
			CreatorBasedOn:   basedOn,
			BioData:          bio,
		},
		PostingFrequency: postingFrequency(posts, now),
		AudienceAnalysis: audienceAnalysis(profile, posts, gender, ageGroup, primaryNiche),
		Username:         profile.Username,
	}

	a.applyGeoRegionOverride(&record)
	a.applyUSIndicatorOverride(&record)

	return record
}

// determineBasedOn classifies US vs. Global residency from the combined text
// of bio, address fields, and the top tagged location names. A literal
// "United States" city field forces USA.
func (a *Analyzer) determineBasedOn(profile models.ProfileRecord, loc models.LocationAnalysis) string {
	var sb strings.Builder
	if profile.Biography != "" {
		sb.WriteString(profile.Biography)
		sb.WriteString(" ")
	}
	for _, field := range []string{profile.AddressStreet, profile.CityName, profile.State, profile.Country} {
		if field != "" {
			sb.WriteString(field)
			sb.WriteString(" ")
		}
	}
	for _, top := range loc.TopLocations {
		if top.Name != "" {
			sb.WriteString(top.Name)
			sb.WriteString(" ")
		}
	}

	basedOn := textsig.RegionFromText(sb.String())
	if profile.CityName == "United States" {
		basedOn = textsig.RegionUSA
	}
	return basedOn
}

// buildAddress starts from the profile's address fields and backfills missing
// city/state/country from the inferred home location once it is confident
// enough (count >= 3).
func (a *Analyzer) buildAddress(profile models.ProfileRecord, loc models.LocationAnalysis) models.Address {
	addr := models.Address{
		StreetAddress: profile.AddressStreet,
		City:          profile.CityName,
		State:         profile.State,
		Country:       profile.Country,
		PostalCode:    profile.PostalCode,
	}

	home := loc.HomeLocation
	if home == nil || home.Count < location.HomeConfidenceCount {
		return addr
	}
	if addr.City == "" && home.City != nil {
		addr.City = *home.City
	}
	if addr.State == "" && home.State != nil {
		addr.State = *home.State
	}
	if addr.Country == "" && home.Country != nil {
		addr.Country = *home.Country
	}
	return addr
}

// applyGeoRegionOverride upgrades the residency label to USA when the home
// location's coordinates fall inside the US bounding boxes. The text
// classifier cannot see coordinates, so this runs after it.
func (a *Analyzer) applyGeoRegionOverride(rec *models.AnalysisRecord) {
	home := rec.LocationAnalysis.HomeLocation
	if home == nil || home.Coordinates == nil {
		return
	}
	if textsig.RegionFromCoordinates(home.Coordinates.Lat, home.Coordinates.Lng) == textsig.RegionUSA {
		rec.PersonalDetails.CreatorBasedOn = textsig.RegionUSA
	}
}

// usResidencyTerms are checked as plain substrings over the record's location
// fields, deliberately looser than the word-bounded text classifier.
var usResidencyTerms = []string{"united states", "usa", "america", "us", "u.s.a", "u.s."}

// applyUSIndicatorOverride is the final residency upgrade: any US term in the
// record's location fields, a US state abbreviation or major-city name in the
// bio, or a literal "United States" city all force USA.
func (a *Analyzer) applyUSIndicatorOverride(rec *models.AnalysisRecord) {
	pd := &rec.PersonalDetails

	found := false
	fields := []string{
		pd.BioData,
		pd.Address.StreetAddress,
		pd.Address.City,
		pd.Address.State,
		pd.Address.Country,
	}
	for _, field := range fields {
		if field == "" {
			continue
		}
		lower := strings.ToLower(field)
		for _, term := range usResidencyTerms {
			if strings.Contains(lower, term) {
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	if !found && pd.BioData != "" {
		if textsig.HasUSStateAbbrev(pd.BioData) || textsig.HasUSCityMention(pd.BioData) {
			found = true
		}
	}

	if pd.Address.City == "United States" {
		found = true
	}

	if found {
		pd.CreatorBasedOn = textsig.RegionUSA
	}
}

// CreatorType maps the profile's business category onto a creator-vs-business
// label. A blank category means an ordinary creator account; a category in
// neither list yields the explicit BLANK marker.
func (a *Analyzer) CreatorType(category string) string {
	if category == "" {
		return TypeContentCreator
	}
	if a.tables.IsCreatorCategory(category) {
		return TypeContentCreator
	}
	if a.tables.IsBusinessCategory(category) {
		return TypeBusiness
	}
	return TypeBlank
}

// Influencer size tiers by follower count.
func creatorSize(followers int) *string {
	if followers == 0 {
		return nil
	}
	var size string
	switch {
	case followers < 5000:
		size = "Nano-Influencer"
	case followers < 50000:
		size = "Micro-Influencer"
	case followers < 500000:
		size = "Mid-Tier Influencer"
	case followers < 1000000:
		size = "Macro-Influencer"
	default:
		size = "Mega-Influencer"
	}
	return &size
}

// splitName separates a display name into first and last. A " - " suffix
// (taglines like "Jane Doe - travel") is dropped first.
func splitName(fullName string) (string, string) {
	name := fullName
	if idx := strings.Index(name, " - "); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func agePtr(age int) *int {
	if age == 0 {
		return nil
	}
	return models.IntPtr(age)
}

func filterOtherLinks(links []string, instagramLink, tiktokLink string) []string {
	other := []string{}
	for _, link := range links {
		if link == "" || link == instagramLink || link == tiktokLink {
			continue
		}
		if strings.Contains(link, "instagram.com") || strings.Contains(link, "tiktok.com") {
			continue
		}
		other = append(other, link)
	}
	return other
}
