package models

// AnalysisRecord is the structured analytics record produced for one creator.
// All six top-level sections are always present, even when no signal was
// found; fields default to null or empty collections, never disappear.
// Downstream consumers rely on the stable shape.
type AnalysisRecord struct {
	CollaborationAnalysis CollaborationAnalysis `json:"collaboration_analysis"`
	NicheAnalysis         NicheAnalysis         `json:"niche_analysis"`
	LocationAnalysis      LocationAnalysis      `json:"location_analysis"`
	PersonalDetails       PersonalDetails       `json:"personal_details"`
	PostingFrequency      PostingFrequency      `json:"posting_frequency"`
	AudienceAnalysis      AudienceAnalysis      `json:"audience_analysis"`
	Username              string                `json:"username"`
	ScrapedDateTime       string                `json:"scraped_date_time,omitempty"`
	AnalyzedDateTime      string                `json:"analyzed_date_time,omitempty"`
	MissingData           bool                  `json:"missing_data,omitempty"`
}

// BrandRef names a detected brand together with where it was seen
// (mention, hashtag, or both).
type BrandRef struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// Collaboration is one detected brand relationship, accumulated over a single
// analysis pass and rebuilt from scratch per creator.
type Collaboration struct {
	Name       string   `json:"name"`
	Count      int      `json:"count"`
	Types      []string `json:"types"`
	Engagement int      `json:"engagement"`
	IsRecent   bool     `json:"is_recent"`
	Source     string   `json:"source"`
}

// CollaborationMetrics summarizes brand activity counts.
type CollaborationMetrics struct {
	TotalCollaborations int     `json:"total_collaborations"`
	RecentCount         int     `json:"recent_count"`
	EngagementRate      float64 `json:"engagement_rate"`
}

// BrandedEngagementMetrics summarizes engagement on brand-tagged posts.
type BrandedEngagementMetrics struct {
	BrandedEngagementRate float64 `json:"branded_engagement_rate"`
	AvgBrandedLikes       int     `json:"avg_branded_likes"`
	AvgBrandedComments    int     `json:"avg_branded_comments"`
}

// CollaborationAnalysis is the brand-partnership section of the record.
// Status is "Active" or null; there is no inactive label.
type CollaborationAnalysis struct {
	Status             *string                  `json:"status"`
	RecentBrands       []BrandRef               `json:"recent_brands_with_source"`
	PreviousBrands     []BrandRef               `json:"previous_brands_with_source"`
	RecentBrandNames   []string                 `json:"recent_brands"`
	PreviousBrandNames []string                 `json:"previous_brands"`
	Metrics            CollaborationMetrics     `json:"metrics"`
	TopCollaborations  []Collaboration          `json:"top_collaborations"`
	EngagementMetrics  BrandedEngagementMetrics `json:"engagement_metrics"`
}

// NicheAnalysis is the content-category section of the record. The confidence
// map always carries every category of the taxonomy, even at zero.
type NicheAnalysis struct {
	Primary          *string            `json:"primary"`
	Secondary        []string           `json:"secondary"`
	Distribution     map[string]float64 `json:"distribution"`
	ConfidenceScores map[string]int     `json:"confidence_scores"`
}

// LocationCount is a named location with its tag frequency.
type LocationCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LocationDetail carries per-location aggregation state.
type LocationDetail struct {
	ID          string       `json:"id"`
	Coordinates *Coordinates `json:"coordinates"`
	Count       int          `json:"count"`
	IsRecent    bool         `json:"is_recent"`
}

// HomeLocation is the most frequently tagged location, parsed into place
// parts. Count and Coordinates let callers gate confidence (count >= 3 before
// trusting inferred address fields). Landmark and County are filled by the
// geo-resolution pass when coordinates are present.
type HomeLocation struct {
	City         *string      `json:"city"`
	State        *string      `json:"state"`
	Country      *string      `json:"country"`
	PostalCode   *string      `json:"postal_code"`
	FullLocation *string      `json:"full_location"`
	Count        int          `json:"count"`
	Coordinates  *Coordinates `json:"coordinates"`
	Landmark     *string      `json:"landmark,omitempty"`
	County       *string      `json:"county,omitempty"`
}

// LocationAnalysis is the location section of the record.
type LocationAnalysis struct {
	TopLocations    []LocationCount            `json:"top_locations"`
	RecentLocations []string                   `json:"recent_locations"`
	LocationData    map[string]*LocationDetail `json:"location_data"`
	TotalLocations  int                        `json:"total_locations"`
	HomeLocation    *HomeLocation              `json:"home_location"`
}

// Address is the creator's structured postal address, partly from the profile
// and partly backfilled from the inferred home location.
type Address struct {
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	PostalCode    string `json:"postal_code"`
}

// PersonalDetails is the demographic section of the record.
type PersonalDetails struct {
	FirstName        *string  `json:"first_name"`
	LastName         *string  `json:"last_name"`
	Username         string   `json:"user_name"`
	Birth            *string  `json:"birth"`
	Age              *int     `json:"age"`
	Gender           string   `json:"gender"`
	Email            *string  `json:"email"`
	PhoneNumber      *string  `json:"phone_number"`
	InstagramLink    *string  `json:"instagram_link"`
	TikTokLink       *string  `json:"tiktok_link"`
	OtherLinks       []string `json:"other_links"`
	Address          Address  `json:"address"`
	RegistrationDate *string  `json:"registration_date"`
	CreatorSize      *string  `json:"creator_size"`
	CreatorType      string   `json:"creator_type"`
	BusinessCategory string   `json:"business_category"`
	ProfilePicture   string   `json:"profile_picture"`
	AgeGroup         string   `json:"age_group"`
	CreatorBasedOn   string   `json:"creator_based_on"`
	BioData          string   `json:"bio_data"`
}

// PostingFrequency is the cadence section of the record.
type PostingFrequency struct {
	OverallFrequency   *string  `json:"overall_frequency"`
	DaysSinceLastPost  *int     `json:"days_since_last_post"`
	ConsistentSchedule *bool    `json:"consistent_schedule"`
	BestDays           []string `json:"best_days"`
	BestTimes          []string `json:"best_times"`
}

// GenderRatio is an estimated audience split in whole percentages.
type GenderRatio struct {
	Female int `json:"female"`
	Male   int `json:"male"`
}

// EstimatedDemographics carries the inferred audience composition.
type EstimatedDemographics struct {
	AgeGroups   []string    `json:"age_groups"`
	GenderRatio GenderRatio `json:"gender_ratio"`
}

// AudienceAnalysis is the engagement section of the record.
type AudienceAnalysis struct {
	EngagementRate        float64               `json:"engagement_rate"`
	EngagementQuality     *string               `json:"engagement_quality"`
	FollowerCount         int                   `json:"follower_count"`
	EstimatedDemographics EstimatedDemographics `json:"estimated_demographics"`
}

// StringPtr returns a pointer to s, or nil when s is empty. Used where the
// output contract requires null rather than an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// IntPtr returns a pointer to n.
func IntPtr(n int) *int {
	return &n
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}
