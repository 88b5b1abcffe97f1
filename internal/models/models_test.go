package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProfileRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile ProfileRecord
		wantErr bool
	}{
		{"valid", ProfileRecord{Username: "janedoe", FollowerCount: 100}, false},
		{"missing username", ProfileRecord{FollowerCount: 100}, true},
		{"negative followers", ProfileRecord{Username: "janedoe", FollowerCount: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPostRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		post    PostRecord
		wantErr bool
	}{
		{"valid", PostRecord{TakenAt: 1700000000, LikeCount: 10}, false},
		{"negative likes", PostRecord{LikeCount: -1}, true},
		{"negative comments", PostRecord{CommentCount: -5}, true},
		{"negative timestamp", PostRecord{TakenAt: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPostLocationHasCoordinates(t *testing.T) {
	if (&PostLocation{Lat: 40.7, Lng: -74.0}).HasCoordinates() == false {
		t.Error("expected coordinates to be present")
	}
	if (&PostLocation{Name: "Somewhere"}).HasCoordinates() {
		t.Error("zero coordinates must count as absent")
	}
	var nilLoc *PostLocation
	if nilLoc.HasCoordinates() {
		t.Error("nil location must not have coordinates")
	}
}

func TestTakenTime(t *testing.T) {
	p := PostRecord{TakenAt: 1700000000}
	if p.TakenTime().Unix() != 1700000000 {
		t.Errorf("TakenTime = %v", p.TakenTime())
	}
	if !(&PostRecord{}).TakenTime().IsZero() {
		t.Error("zero TakenAt must yield the zero time")
	}
}

func TestSelfUsername(t *testing.T) {
	posts := []PostRecord{
		{PosterUsername: "creator1"},
		{PosterUsername: "other"},
	}
	if got := SelfUsername(posts); got != "creator1" {
		t.Errorf("SelfUsername = %q, want creator1", got)
	}
	if got := SelfUsername(nil); got != "" {
		t.Errorf("SelfUsername(nil) = %q, want empty", got)
	}
}

func TestRunSummary(t *testing.T) {
	s := RunSummary{RunID: "r1", TotalCreators: 4, Successful: 3, Skipped: 1}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
	if s.SuccessRate() != 75 {
		t.Errorf("SuccessRate = %v, want 75", s.SuccessRate())
	}

	empty := RunSummary{RunID: "r2"}
	if empty.SuccessRate() != 0 {
		t.Errorf("SuccessRate on empty run = %v, want 0", empty.SuccessRate())
	}

	bad := RunSummary{RunID: "r3", TotalCreators: 1, Successful: 2}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for counters exceeding total")
	}

	noID := RunSummary{TotalCreators: 1}
	if err := noID.Validate(); err == nil {
		t.Error("expected error for missing run ID")
	}
}

func TestStringPtr(t *testing.T) {
	if StringPtr("") != nil {
		t.Error("StringPtr(empty) must be nil")
	}
	p := StringPtr("hello")
	if p == nil || *p != "hello" {
		t.Errorf("StringPtr = %v", p)
	}
}

func TestAnalysisRecordNullFields(t *testing.T) {
	// Unset optional fields must serialize as JSON null, not empty strings.
	rec := AnalysisRecord{Username: "janedoe"}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	out := string(data)

	if !strings.Contains(out, `"primary":null`) {
		t.Errorf("primary niche not null: %s", out)
	}
	if !strings.Contains(out, `"status":null`) {
		t.Errorf("status not null: %s", out)
	}
	if !strings.Contains(out, `"home_location":null`) {
		t.Errorf("home_location not null: %s", out)
	}
}
