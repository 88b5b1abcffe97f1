package textsig

import (
	"regexp"
	"strings"
)

// Region labels produced by the residency classifiers.
const (
	RegionUSA    = "USA"
	RegionGlobal = "Global"
)

var usIndicatorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:usa|us|united\s+states|america|u\.s\.a?)\b`),
	regexp.MustCompile(`\b(?:ny|nyc|new\s+york|la|los\s+angeles|california|ca|fl|florida|tx|texas)\b`),
}

var usStateNames = []string{
	"alabama", "alaska", "arizona", "arkansas", "california", "colorado", "connecticut",
	"delaware", "florida", "georgia", "hawaii", "idaho", "illinois", "indiana", "iowa",
	"kansas", "kentucky", "louisiana", "maine", "maryland", "massachusetts", "michigan",
	"minnesota", "mississippi", "missouri", "montana", "nebraska", "nevada", "new hampshire",
	"new jersey", "new mexico", "new york", "north carolina", "north dakota", "ohio", "oklahoma",
	"oregon", "pennsylvania", "rhode island", "south carolina", "south dakota", "tennessee",
	"texas", "utah", "vermont", "virginia", "washington", "west virginia", "wisconsin", "wyoming",
}

var usStateAbbrevs = []string{
	"al", "ak", "az", "ar", "ca", "co", "ct", "de", "fl", "ga", "hi", "id", "il", "in", "ia",
	"ks", "ky", "la", "me", "md", "ma", "mi", "mn", "ms", "mo", "mt", "ne", "nv", "nh", "nj",
	"nm", "ny", "nc", "nd", "oh", "ok", "or", "pa", "ri", "sc", "sd", "tn", "tx", "ut", "vt",
	"va", "wa", "wv", "wi", "wy",
}

var usCityNames = []string{
	"new york", "los angeles", "chicago", "houston", "phoenix", "philadelphia",
	"san antonio", "san diego", "dallas", "san jose", "austin", "jacksonville",
	"fort worth", "columbus", "san francisco", "charlotte", "indianapolis",
	"seattle", "denver", "washington dc", "boston", "nashville", "vegas", "nyc", "la",
}

var (
	usStateNamePattern   = wordListPattern(usStateNames)
	usStateAbbrevPattern = wordListPattern(usStateAbbrevs)
	usCityPattern        = wordListPattern(usCityNames)
)

func wordListPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// RegionFromText reports "USA" when the text contains a whole-word match of a
// country synonym, US state name, or state abbreviation; "Global" otherwise.
// Matching is case-insensitive and word-bounded to avoid substring false
// positives ("Paris lover" must not match on "ar").
func RegionFromText(text string) string {
	if text == "" {
		return RegionGlobal
	}
	lower := strings.ToLower(text)

	for _, p := range usIndicatorPatterns {
		if p.MatchString(lower) {
			return RegionUSA
		}
	}
	if usStateNamePattern.MatchString(lower) {
		return RegionUSA
	}
	if usStateAbbrevPattern.MatchString(lower) {
		return RegionUSA
	}
	return RegionGlobal
}

// HasUSStateAbbrev reports a whole-word US state abbreviation in the text.
func HasUSStateAbbrev(text string) bool {
	return usStateAbbrevPattern.MatchString(strings.ToLower(text))
}

// HasUSCityMention reports a whole-word major-US-city name in the text.
func HasUSCityMention(text string) bool {
	return usCityPattern.MatchString(strings.ToLower(text))
}

// Approximate bounding boxes for the continental US, Alaska, and Hawaii.
// Alaska wraps the antimeridian, so its eastern lobe is checked separately.
type boundingBox struct {
	south, north, west, east float64
}

var (
	continentalUS = boundingBox{24.396308, 49.384358, -125.000000, -66.934570}
	alaskaWest    = boundingBox{51.214183, 71.365162, -179.148909, -129.974167}
	alaskaEast    = boundingBox{51.214183, 71.365162, 129.974167, 180.0}
	hawaii        = boundingBox{18.910361, 22.236428, -160.242167, -154.806773}
)

func (b boundingBox) contains(lat, lng float64) bool {
	return b.south <= lat && lat <= b.north && b.west <= lng && lng <= b.east
}

// RegionFromCoordinates reports "USA" when the point falls inside any of the
// fixed US bounding boxes; "Global" otherwise.
func RegionFromCoordinates(lat, lng float64) string {
	if continentalUS.contains(lat, lng) ||
		alaskaWest.contains(lat, lng) ||
		alaskaEast.contains(lat, lng) ||
		hawaii.contains(lat, lng) {
		return RegionUSA
	}
	return RegionGlobal
}
