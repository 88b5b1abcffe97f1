// Package storage provides thread-safe collection of analysis records with
// file-based persistence. Worker goroutines add records as creators finish,
// and the collected set is persisted both per creator and as a single master
// file used by the geo-resolution pass.
//
// Storage is designed for reliability with atomic file writes and graceful
// handling of persistence failures.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/veralens/creatorscope/internal/models"
)

// Storage provides thread-safe in-memory record collection with file-based persistence
type Storage struct {
	records map[string]*models.AnalysisRecord
	order   []string
	mu      sync.RWMutex

	// Configuration
	masterPath      string
	filePermissions os.FileMode
	dirPermissions  os.FileMode
}

// MasterFile represents the file structure for the master collection
type MasterFile struct {
	Version string                   `json:"version"`
	SavedAt time.Time                `json:"saved_at"`
	Records []*models.AnalysisRecord `json:"records"`
}

// New creates a new Storage instance persisting the master collection to masterPath.
// If masterPath is empty, uses OS-appropriate tmp directory.
func New(masterPath string, filePermissions, dirPermissions os.FileMode) *Storage {
	if masterPath == "" {
		masterPath = filepath.Join(os.TempDir(), "creatorscope", "analyzed_profiles.json")
	}

	return &Storage{
		records:         make(map[string]*models.AnalysisRecord),
		order:           make([]string, 0),
		masterPath:      masterPath,
		filePermissions: filePermissions,
		dirPermissions:  dirPermissions,
	}
}

// AddRecord adds or replaces the analysis record for a creator
func (s *Storage) AddRecord(record *models.AnalysisRecord) error {
	if record == nil || record.Username == "" {
		return fmt.Errorf("invalid record: missing username")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.Username]; !exists {
		s.order = append(s.order, record.Username)
	}
	s.records[record.Username] = record
	return nil
}

// GetRecord retrieves a record by username
func (s *Storage) GetRecord(username string) (*models.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.records[username]
	if !exists {
		return nil, fmt.Errorf("record not found: %s", username)
	}
	return record, nil
}

// GetAllRecords returns all records in insertion order
func (s *Storage) GetAllRecords() []*models.AnalysisRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*models.AnalysisRecord, 0, len(s.records))
	for _, username := range s.order {
		records = append(records, s.records[username])
	}
	return records
}

// Count returns the number of collected records
func (s *Storage) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// SaveCreatorFile writes a single creator's record to dir/analyzed.json
func (s *Storage) SaveCreatorFile(dir string, record *models.AnalysisRecord) error {
	if err := os.MkdirAll(dir, s.dirPermissions); err != nil {
		return fmt.Errorf("failed to create creator directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	return s.writeAtomic(filepath.Join(dir, "analyzed.json"), jsonData)
}

// SaveMaster persists the full record collection to the master file
func (s *Storage) SaveMaster() error {
	s.mu.RLock()
	records := make([]*models.AnalysisRecord, 0, len(s.records))
	for _, username := range s.order {
		records = append(records, s.records[username])
	}
	s.mu.RUnlock()

	dir := filepath.Dir(s.masterPath)
	if err := os.MkdirAll(dir, s.dirPermissions); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data := MasterFile{
		Version: "1.0",
		SavedAt: time.Now(),
		Records: records,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	return s.writeAtomic(s.masterPath, jsonData)
}

// LoadMaster restores the record collection from the master file. Used by the
// geo-resolution pass to pick up the batch output.
func (s *Storage) LoadMaster() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Clean up any stale temp files from previous crashes
	tempPath := s.masterPath + ".tmp"
	if _, err := os.Stat(tempPath); err == nil {
		_ = os.Remove(tempPath)
	}

	if _, err := os.Stat(s.masterPath); os.IsNotExist(err) {
		return fmt.Errorf("master file not found: %s", s.masterPath)
	}

	jsonData, err := os.ReadFile(s.masterPath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var data MasterFile
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}

	s.records = make(map[string]*models.AnalysisRecord, len(data.Records))
	s.order = make([]string, 0, len(data.Records))
	for _, record := range data.Records {
		if record == nil || record.Username == "" {
			continue
		}
		if _, exists := s.records[record.Username]; !exists {
			s.order = append(s.order, record.Username)
		}
		s.records[record.Username] = record
	}

	return nil
}

// SizeDistribution counts records per creator size tier
func (s *Storage) SizeDistribution() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dist := make(map[string]int)
	for _, record := range s.records {
		if record.PersonalDetails.CreatorSize != nil {
			dist[*record.PersonalDetails.CreatorSize]++
		}
	}
	return dist
}

// RegionCounts returns the number of USA-based and global records
func (s *Storage) RegionCounts() (usa, global int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.records {
		if record.MissingData {
			continue
		}
		if record.PersonalDetails.CreatorBasedOn == "USA" {
			usa++
		} else {
			global++
		}
	}
	return usa, global
}

// Usernames returns the collected usernames sorted alphabetically
func (s *Storage) Usernames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	usernames := make([]string, len(s.order))
	copy(usernames, s.order)
	sort.Strings(usernames)
	return usernames
}

func (s *Storage) writeAtomic(path string, data []byte) error {
	// Write to temporary file first (atomic write)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, s.filePermissions); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath) // Clean up temp file on rename failure
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}
