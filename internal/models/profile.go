// Package models defines the core domain entities for the creatorscope application.
// These models represent creator profiles, their post timelines, and the structured
// analysis records derived from them. Input models include built-in validation to
// ensure data integrity before analysis runs.
//
// Terminology:
//   - Creator: the subject profile being analyzed.
//   - Profile: the creator's user metadata (name, bio, follower count, address).
//   - Post: one immutable timeline entry (caption, timestamps, engagement counters).
package models

import (
	"errors"
)

// ProfileRecord holds the user metadata read from a creator's profile export.
// Only the fields the analysis actually consumes are modeled; everything else
// in the source document is ignored at the decode boundary.
type ProfileRecord struct {
	FullName         string   `json:"full_name"`
	Username         string   `json:"username"`
	Biography        string   `json:"biography"`
	FollowerCount    int      `json:"follower_count"`
	BusinessCategory string   `json:"category"`
	AddressStreet    string   `json:"address_street"`
	CityName         string   `json:"city_name"`
	State            string   `json:"state"`
	Country          string   `json:"country"`
	PostalCode       string   `json:"postal_code"`
	BioLinks         []string `json:"bio_links"`
}

// Validate checks that the profile carries the minimum required fields.
func (p *ProfileRecord) Validate() error {
	if p.Username == "" {
		return errors.New("profile username must not be empty")
	}
	if p.FollowerCount < 0 {
		return errors.New("follower count must not be negative")
	}
	return nil
}
