// Package geo resolves a coordinate pair into structured place names using a
// static nested bounded-region database: country and subdivision containment
// via axis-aligned bounding boxes, then nearest-point search over named
// cities and landmarks.
//
// Bounding boxes in the database may overlap or leave gaps; the first match
// in declared order wins, so decoding preserves the member order of the
// source JSON objects instead of using Go maps.
package geo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Bounds is an axis-aligned latitude/longitude rectangle.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Contains reports whether the point lies inside the rectangle, edges
// inclusive.
func (b Bounds) Contains(lat, lng float64) bool {
	return b.South <= lat && lat <= b.North && b.West <= lng && lng <= b.East
}

// City is a named major city with its coordinates.
type City struct {
	Name string
	Lat  float64
	Lng  float64
}

// Landmark is a named point of interest. City and County are optional
// refinements the resolver inherits when the landmark wins.
type Landmark struct {
	Name   string
	Lat    float64
	Lng    float64
	City   string
	County string
}

// Subdivision is a state, province, region, emirate, constituent country, or
// governorate within a country. Cities and Landmarks keep declared order for
// deterministic tie-breaking in nearest-point search.
type Subdivision struct {
	Code      string
	Name      string
	Bounds    Bounds
	Cities    []City
	Landmarks []Landmark
}

// subdivisionBuckets lists the subdivision member names in scan priority
// order.
var subdivisionBuckets = []string{"states", "provinces", "regions", "emirates", "countries", "governorates"}

// Country is one top-level region of the database. Subdivisions are grouped
// by bucket name, each bucket keeping declared order.
type Country struct {
	Code    string
	Name    string
	Bounds  Bounds
	Buckets map[string][]Subdivision
}

// Database is the full static region hierarchy. Countries keep declared
// order.
type Database struct {
	Countries []Country
}

// LoadDatabase reads and decodes a region database file.
func LoadDatabase(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read geo database: %w", err)
	}
	var db Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("failed to decode geo database: %w", err)
	}
	return &db, nil
}

// forEachMember walks the members of a JSON object in declared order,
// handing each key and raw value to fn.
func forEachMember(data []byte, fn func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := t.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", t)
	}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", kt)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

// UnmarshalJSON decodes {"countries": {code: {...}, ...}} preserving country
// order.
func (db *Database) UnmarshalJSON(data []byte) error {
	return forEachMember(data, func(key string, value json.RawMessage) error {
		if key != "countries" {
			return nil
		}
		return forEachMember(value, func(code string, raw json.RawMessage) error {
			var c Country
			if err := json.Unmarshal(raw, &c); err != nil {
				return fmt.Errorf("country %s: %w", code, err)
			}
			c.Code = code
			db.Countries = append(db.Countries, c)
			return nil
		})
	})
}

// UnmarshalJSON decodes a country object, routing subdivision buckets by
// member name.
func (c *Country) UnmarshalJSON(data []byte) error {
	c.Buckets = make(map[string][]Subdivision)
	return forEachMember(data, func(key string, value json.RawMessage) error {
		switch key {
		case "name":
			return json.Unmarshal(value, &c.Name)
		case "bounds":
			return json.Unmarshal(value, &c.Bounds)
		}
		for _, bucket := range subdivisionBuckets {
			if key != bucket {
				continue
			}
			return forEachMember(value, func(code string, raw json.RawMessage) error {
				var s Subdivision
				if err := json.Unmarshal(raw, &s); err != nil {
					return fmt.Errorf("subdivision %s: %w", code, err)
				}
				s.Code = code
				c.Buckets[bucket] = append(c.Buckets[bucket], s)
				return nil
			})
		}
		return nil
	})
}

// UnmarshalJSON decodes a subdivision object, keeping city and landmark
// declaration order.
func (s *Subdivision) UnmarshalJSON(data []byte) error {
	return forEachMember(data, func(key string, value json.RawMessage) error {
		switch key {
		case "name":
			return json.Unmarshal(value, &s.Name)
		case "bounds":
			return json.Unmarshal(value, &s.Bounds)
		case "major_cities":
			return forEachMember(value, func(name string, raw json.RawMessage) error {
				var coord struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				}
				if err := json.Unmarshal(raw, &coord); err != nil {
					return fmt.Errorf("city %s: %w", name, err)
				}
				s.Cities = append(s.Cities, City{Name: name, Lat: coord.Lat, Lng: coord.Lng})
				return nil
			})
		case "landmarks":
			return forEachMember(value, func(name string, raw json.RawMessage) error {
				var lm struct {
					Lat    float64 `json:"lat"`
					Lng    float64 `json:"lng"`
					City   string  `json:"city"`
					County string  `json:"county"`
				}
				if err := json.Unmarshal(raw, &lm); err != nil {
					return fmt.Errorf("landmark %s: %w", name, err)
				}
				s.Landmarks = append(s.Landmarks, Landmark{
					Name: name, Lat: lm.Lat, Lng: lm.Lng, City: lm.City, County: lm.County,
				})
				return nil
			})
		}
		return nil
	})
}
