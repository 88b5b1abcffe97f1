package models

import (
	"errors"
	"time"
)

// RunSummary describes the outcome of one batch analysis run. Skipped counts
// creators whose source files were missing; Errors counts creators whose
// inputs existed but could not be analyzed.
type RunSummary struct {
	RunID            string         `json:"run_id"`
	TotalCreators    int            `json:"total_creators"`
	Successful       int            `json:"successful"`
	Skipped          int            `json:"skipped"`
	Errors           int            `json:"errors"`
	Elapsed          time.Duration  `json:"elapsed"`
	USACreators      int            `json:"usa_creators"`
	GlobalCreators   int            `json:"global_creators"`
	SizeDistribution map[string]int `json:"size_distribution"`
}

// SuccessRate returns the share of creators analyzed successfully, 0-100.
func (s *RunSummary) SuccessRate() float64 {
	if s.TotalCreators == 0 {
		return 0
	}
	return float64(s.Successful) / float64(s.TotalCreators) * 100
}

// Validate checks that the summary counters are consistent.
func (s *RunSummary) Validate() error {
	if s.RunID == "" {
		return errors.New("run ID must not be empty")
	}
	if s.Successful < 0 || s.Skipped < 0 || s.Errors < 0 {
		return errors.New("counters must not be negative")
	}
	if s.Successful+s.Skipped+s.Errors > s.TotalCreators {
		return errors.New("counters must not exceed total creators")
	}
	return nil
}
