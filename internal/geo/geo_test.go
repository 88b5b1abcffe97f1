package geo

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/veralens/creatorscope/internal/models"
)

const testDatabaseJSON = `{
  "countries": {
    "USA": {
      "name": "United States",
      "bounds": {"north": 49.4, "south": 24.4, "east": -66.9, "west": -125.0},
      "states": {
        "NY": {
          "name": "New York",
          "bounds": {"north": 45.0, "south": 40.5, "east": -71.8, "west": -79.8},
          "major_cities": {
            "New York City": {"lat": 40.7128, "lng": -74.0060},
            "Buffalo": {"lat": 42.8864, "lng": -78.8784}
          },
          "landmarks": {
            "Statue of Liberty": {"lat": 40.6892, "lng": -74.0445, "city": "New York City", "county": "New York"},
            "Niagara Falls": {"lat": 43.0962, "lng": -79.0377}
          }
        },
        "CA": {
          "name": "California",
          "bounds": {"north": 42.0, "south": 32.5, "east": -114.1, "west": -124.4},
          "major_cities": {
            "Los Angeles": {"lat": 34.0522, "lng": -118.2437}
          },
          "landmarks": {}
        }
      }
    },
    "FRA": {
      "name": "France",
      "bounds": {"north": 51.1, "south": 41.3, "east": 9.6, "west": -5.1},
      "regions": {
        "IDF": {
          "name": "Île-de-France",
          "bounds": {"north": 49.2, "south": 48.1, "east": 3.6, "west": 1.4},
          "major_cities": {
            "Paris": {"lat": 48.8566, "lng": 2.3522}
          },
          "landmarks": {
            "Eiffel Tower": {"lat": 48.8584, "lng": 2.2945, "city": "Paris"}
          }
        }
      }
    }
  }
}`

func testDatabase(t *testing.T) *Database {
	t.Helper()
	var db Database
	if err := json.Unmarshal([]byte(testDatabaseJSON), &db); err != nil {
		t.Fatalf("failed to decode test database: %v", err)
	}
	return &db
}

func TestHaversineKm(t *testing.T) {
	// New York to Los Angeles is roughly 3936 km.
	d := HaversineKm(40.7128, -74.0060, 34.0522, -118.2437)
	if math.Abs(d-3936) > 50 {
		t.Errorf("HaversineKm NYC-LA = %v, want about 3936", d)
	}

	if d := HaversineKm(48.85, 2.35, 48.85, 2.35); d != 0 {
		t.Errorf("zero distance = %v, want 0", d)
	}
}

func TestDecodePreservesOrder(t *testing.T) {
	db := testDatabase(t)

	if len(db.Countries) != 2 {
		t.Fatalf("decoded %d countries, want 2", len(db.Countries))
	}
	if db.Countries[0].Code != "USA" || db.Countries[1].Code != "FRA" {
		t.Errorf("country order = [%s, %s], want declared order", db.Countries[0].Code, db.Countries[1].Code)
	}

	states := db.Countries[0].Buckets["states"]
	if len(states) != 2 || states[0].Code != "NY" || states[1].Code != "CA" {
		t.Errorf("state order not preserved: %+v", states)
	}

	landmarks := states[0].Landmarks
	if len(landmarks) != 2 || landmarks[0].Name != "Statue of Liberty" {
		t.Errorf("landmark order not preserved: %+v", landmarks)
	}
}

func TestResolveUSCity(t *testing.T) {
	db := testDatabase(t)

	// Midtown Manhattan: inside NY bounds, no landmark within 5 km of this
	// exact point being required, city within 50 km.
	place := db.Resolve(40.7580, -73.9855)

	if place.Country == nil || *place.Country != "United States" {
		t.Fatalf("country = %v, want United States", place.Country)
	}
	if place.State == nil || *place.State != "New York" {
		t.Errorf("state = %v, want New York", place.State)
	}
	if place.City == nil || *place.City != "New York City" {
		t.Errorf("city = %v, want New York City", place.City)
	}
	if !place.Approximate {
		t.Error("resolution must always be approximate")
	}
}

func TestResolveLandmarkSnap(t *testing.T) {
	db := testDatabase(t)

	// Right at the Statue of Liberty: landmark within 5 km contributes its
	// name, city, and county.
	place := db.Resolve(40.6892, -74.0445)

	if place.Landmark == nil || *place.Landmark != "Statue of Liberty" {
		t.Fatalf("landmark = %v, want Statue of Liberty", place.Landmark)
	}
	if place.City == nil || *place.City != "New York City" {
		t.Errorf("city = %v, want inherited New York City", place.City)
	}
	if place.County == nil || *place.County != "New York" {
		t.Errorf("county = %v, want New York", place.County)
	}
	want := "Statue of Liberty, New York City, New York County, New York, United States"
	if place.FullLocation == nil || *place.FullLocation != want {
		t.Errorf("full_location = %v, want %q", place.FullLocation, want)
	}
}

func TestResolveNonUSNoCounty(t *testing.T) {
	db := testDatabase(t)

	place := db.Resolve(48.8584, 2.2945)

	if place.Country == nil || *place.Country != "France" {
		t.Fatalf("country = %v, want France", place.Country)
	}
	if place.Landmark == nil || *place.Landmark != "Eiffel Tower" {
		t.Errorf("landmark = %v, want Eiffel Tower", place.Landmark)
	}
	if place.County != nil {
		t.Errorf("county = %q, want unset outside the US", *place.County)
	}
	want := "Eiffel Tower, Paris, Île-de-France, France"
	if place.FullLocation == nil || *place.FullLocation != want {
		t.Errorf("full_location = %v, want %q", place.FullLocation, want)
	}
}

func TestResolveOutsideEverything(t *testing.T) {
	db := testDatabase(t)

	// Middle of the Pacific.
	place := db.Resolve(0, -150)

	if place.Country != nil {
		t.Errorf("country = %v, want nil", place.Country)
	}
	if place.FullLocation != nil {
		t.Errorf("full_location = %v, want nil", place.FullLocation)
	}
	if !place.Approximate {
		t.Error("resolution must always be approximate")
	}
}

func TestResolveCountryOnly(t *testing.T) {
	db := testDatabase(t)

	// Inside the US bounding box but outside every state box.
	place := db.Resolve(30.0, -90.0)

	if place.Country == nil || *place.Country != "United States" {
		t.Fatalf("country = %v, want United States", place.Country)
	}
	if place.State != nil {
		t.Errorf("state = %v, want nil", place.State)
	}
	if place.FullLocation == nil || *place.FullLocation != "United States" {
		t.Errorf("full_location = %v, want bare country name", place.FullLocation)
	}
}

func TestPatchRecord(t *testing.T) {
	db := testDatabase(t)

	rec := &models.AnalysisRecord{
		Username: "creator1",
		LocationAnalysis: models.LocationAnalysis{
			HomeLocation: &models.HomeLocation{
				City:        models.StringPtr("somewhere"),
				Count:       4,
				Coordinates: &models.Coordinates{Lat: 48.8566, Lng: 2.3522},
			},
		},
	}

	if !PatchRecord(rec, db) {
		t.Fatal("expected record to be patched")
	}

	home := rec.LocationAnalysis.HomeLocation
	if home.Country == nil || *home.Country != "France" {
		t.Errorf("country = %v, want France", home.Country)
	}
	if home.State == nil || *home.State != "Île-de-France" {
		t.Errorf("state = %v, want Île-de-France", home.State)
	}
	if home.City == nil || *home.City != "Paris" {
		t.Errorf("city = %v, want Paris", home.City)
	}
	if home.Count != 4 {
		t.Errorf("count = %d, want preserved 4", home.Count)
	}

	// Resolution is idempotent: a second pass yields the same values.
	beforeFull := *home.FullLocation
	if !PatchRecord(rec, db) {
		t.Fatal("expected second patch to run")
	}
	after := rec.LocationAnalysis.HomeLocation
	if *after.FullLocation != beforeFull || *after.Country != "France" || *after.City != "Paris" {
		t.Error("second patch changed the resolved values")
	}
}

func TestPatchRecordNoCoordinates(t *testing.T) {
	db := testDatabase(t)

	rec := &models.AnalysisRecord{
		Username: "creator2",
		LocationAnalysis: models.LocationAnalysis{
			HomeLocation: &models.HomeLocation{City: models.StringPtr("Tokyo")},
		},
	}

	if PatchRecord(rec, db) {
		t.Error("record without coordinates must not be patched")
	}
	if *rec.LocationAnalysis.HomeLocation.City != "Tokyo" {
		t.Error("record was modified")
	}

	if PatchRecord(&models.AnalysisRecord{Username: "creator3"}, db) {
		t.Error("record without home location must not be patched")
	}
}
