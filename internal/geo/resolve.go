package geo

import (
	"math"

	"github.com/veralens/creatorscope/internal/models"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371

// Search radii in kilometers. Landmarks are precise points so the snap
// radius is tight; cities cover a wide area.
const (
	landmarkMaxKm = 5
	cityMaxKm     = 50
	countyMaxKm   = 1
)

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// Place is a resolved location. Every resolution is a nearest-match against a
// sparse database, never an authoritative geocode, so Approximate is always
// true.
type Place struct {
	City         *string `json:"city"`
	State        *string `json:"state"`
	Country      *string `json:"country"`
	County       *string `json:"county"`
	Landmark     *string `json:"landmark"`
	PostalCode   *string `json:"postal_code"`
	FullLocation *string `json:"full_location"`
	Approximate  bool    `json:"approximate"`
}

// FindCountry returns the first country whose bounding box contains the
// point, in declared order. Overlaps are not resolved beyond iteration order.
func (db *Database) FindCountry(lat, lng float64) *Country {
	for i := range db.Countries {
		if db.Countries[i].Bounds.Contains(lat, lng) {
			return &db.Countries[i]
		}
	}
	return nil
}

// FindSubdivision scans the country's subdivision buckets in fixed priority
// order and returns the first subdivision whose bounding box contains the
// point.
func (c *Country) FindSubdivision(lat, lng float64) *Subdivision {
	for _, bucket := range subdivisionBuckets {
		subs := c.Buckets[bucket]
		for i := range subs {
			if subs[i].Bounds.Contains(lat, lng) {
				return &subs[i]
			}
		}
	}
	return nil
}

// NearestLandmark returns the closest landmark within maxKm, or nil. Ties go
// to the earlier-declared landmark.
func (s *Subdivision) NearestLandmark(lat, lng, maxKm float64) *Landmark {
	var best *Landmark
	bestDist := math.Inf(1)
	for i := range s.Landmarks {
		d := HaversineKm(lat, lng, s.Landmarks[i].Lat, s.Landmarks[i].Lng)
		if d <= maxKm && d < bestDist {
			bestDist = d
			best = &s.Landmarks[i]
		}
	}
	return best
}

// NearestCity returns the closest named city within maxKm, or empty.
func (s *Subdivision) NearestCity(lat, lng, maxKm float64) string {
	bestName := ""
	bestDist := math.Inf(1)
	for i := range s.Cities {
		d := HaversineKm(lat, lng, s.Cities[i].Lat, s.Cities[i].Lng)
		if d < bestDist {
			bestDist = d
			bestName = s.Cities[i].Name
		}
	}
	if bestDist > maxKm {
		return ""
	}
	return bestName
}

// countyNear returns the county of the first landmark within countyMaxKm
// that carries one, in declared order.
func (s *Subdivision) countyNear(lat, lng float64) string {
	for i := range s.Landmarks {
		if s.Landmarks[i].County == "" {
			continue
		}
		if HaversineKm(lat, lng, s.Landmarks[i].Lat, s.Landmarks[i].Lng) <= countyMaxKm {
			return s.Landmarks[i].County
		}
	}
	return ""
}

// Resolve maps a coordinate to a Place: country containment, subdivision
// containment, landmark snap within 5 km (inheriting its city/county), city
// snap within 50 km, and a county lookup within 1 km for US points. The
// database is never mutated.
func (db *Database) Resolve(lat, lng float64) Place {
	result := Place{Approximate: true}

	country := db.FindCountry(lat, lng)
	if country == nil {
		return result
	}
	result.Country = models.StringPtr(country.Name)

	sub := country.FindSubdivision(lat, lng)
	if sub != nil {
		result.State = models.StringPtr(sub.Name)

		if lm := sub.NearestLandmark(lat, lng, landmarkMaxKm); lm != nil {
			result.Landmark = models.StringPtr(lm.Name)
			if lm.City != "" {
				result.City = models.StringPtr(lm.City)
			}
			if lm.County != "" {
				result.County = models.StringPtr(lm.County)
			}
		}

		if result.City == nil {
			if city := sub.NearestCity(lat, lng, cityMaxKm); city != "" {
				result.City = models.StringPtr(city)
			}
		}

		if country.Code == "USA" && result.County == nil {
			if county := sub.countyNear(lat, lng); county != "" {
				result.County = models.StringPtr(county)
			}
		}
	}

	result.FullLocation = assembleFullLocation(&result, country.Code)
	return result
}

// assembleFullLocation joins the resolved parts in display order. The city is
// skipped when it duplicates the landmark name, and the county suffix applies
// only to US places. With nothing finer resolved, the country name stands
// alone.
func assembleFullLocation(p *Place, countryCode string) *string {
	var parts []string
	if p.Landmark != nil {
		parts = append(parts, *p.Landmark)
	}
	if p.City != nil && (p.Landmark == nil || *p.Landmark != *p.City) {
		parts = append(parts, *p.City)
	}
	if p.County != nil && countryCode == "USA" {
		parts = append(parts, *p.County+" County")
	}
	if p.State != nil {
		parts = append(parts, *p.State)
	}
	if p.Country != nil {
		parts = append(parts, *p.Country)
	}

	if len(parts) == 0 {
		return p.Country
	}
	joined := parts[0]
	for _, part := range parts[1:] {
		joined += ", " + part
	}
	return &joined
}

// PatchRecord rewrites the record's home-location place fields from its
// coordinates. Records without a home location or without coordinates are
// left byte-identical. All fields outside home_location are preserved.
// Returns true when the record was patched.
func PatchRecord(rec *models.AnalysisRecord, db *Database) bool {
	home := rec.LocationAnalysis.HomeLocation
	if home == nil || home.Coordinates == nil {
		return false
	}

	place := db.Resolve(home.Coordinates.Lat, home.Coordinates.Lng)

	home.City = place.City
	home.State = place.State
	home.Country = place.Country
	if place.Landmark != nil {
		home.Landmark = place.Landmark
	}
	if place.County != nil {
		home.County = place.County
	}
	if place.FullLocation != nil {
		home.FullLocation = place.FullLocation
	}
	return true
}
