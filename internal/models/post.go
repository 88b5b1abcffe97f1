package models

import (
	"errors"
	"time"
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PostLocation is the named place a post was tagged with. Lat/Lng of zero are
// treated as absent, matching the upstream export where untagged coordinates
// are omitted entirely.
type PostLocation struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// HasCoordinates reports whether the location carries a usable coordinate pair.
func (l *PostLocation) HasCoordinates() bool {
	return l != nil && l.Lat != 0 && l.Lng != 0
}

// PostRecord is one immutable timeline entry. Posts are never re-ordered in
// place; any sorting happens on derived sequences.
type PostRecord struct {
	Caption           string        `json:"caption"`
	TakenAt           int64         `json:"taken_at"`
	LikeCount         int           `json:"like_count"`
	CommentCount      int           `json:"comment_count"`
	Location          *PostLocation `json:"location,omitempty"`
	IsPaidPartnership bool          `json:"is_paid_partnership"`
	OwnerUsername     string        `json:"owner_username"`
	CoauthorUsernames []string      `json:"coauthor_usernames"`
	// PosterUsername is the username embedded in the timeline entry itself.
	// The collaboration detector derives the creator's own identity from the
	// first post's value rather than trusting the profile document.
	PosterUsername string `json:"poster_username"`
}

// TakenTime returns the post timestamp as a time.Time. Zero TakenAt yields the
// zero time.
func (p *PostRecord) TakenTime() time.Time {
	if p.TakenAt == 0 {
		return time.Time{}
	}
	return time.Unix(p.TakenAt, 0)
}

// Validate checks that post counters are sane.
func (p *PostRecord) Validate() error {
	if p.LikeCount < 0 {
		return errors.New("like count must not be negative")
	}
	if p.CommentCount < 0 {
		return errors.New("comment count must not be negative")
	}
	if p.TakenAt < 0 {
		return errors.New("taken at must not be negative")
	}
	return nil
}

// SelfUsername returns the creator's own username as embedded in the first
// post of the timeline, or empty when the timeline carries none.
func SelfUsername(posts []PostRecord) string {
	if len(posts) == 0 {
		return ""
	}
	return posts[0].PosterUsername
}
