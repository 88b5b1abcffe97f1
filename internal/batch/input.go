package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/veralens/creatorscope/internal/models"
)

const (
	userInfoFile = "userInfo.json"
	postInfoFile = "postInfo.json"

	timestampLayout = "2006-01-02 15:04:05"
)

// SkipError marks a creator whose input files are absent. Skipped creators
// are counted separately from decode failures.
type SkipError struct {
	Username string
	File     string
}

func (e *SkipError) Error() string {
	return fmt.Sprintf("creator %s: missing %s", e.Username, e.File)
}

// rawUserInfo mirrors the scraped user-info document shape
type rawUserInfo struct {
	Data struct {
		User struct {
			FullName      string `json:"full_name"`
			Username      string `json:"username"`
			Biography     string `json:"biography"`
			FollowerCount int    `json:"follower_count"`
			Category      string `json:"category"`
			AddressStreet string `json:"address_street"`
			CityName      string `json:"city_name"`
			State         string `json:"state"`
			Country       string `json:"country"`
			Zip           string `json:"zip"`
			BioLinks      []struct {
				URL string `json:"url"`
			} `json:"bio_links"`
		} `json:"user"`
	} `json:"data"`
}

// rawPostInfo mirrors the scraped timeline document shape
type rawPostInfo struct {
	Data struct {
		Timeline struct {
			Edges []struct {
				Node struct {
					Caption *struct {
						Text string `json:"text"`
					} `json:"caption"`
					TakenAt      int64 `json:"taken_at"`
					LikeCount    int   `json:"like_count"`
					CommentCount int   `json:"comment_count"`
					Location     *struct {
						ID   json.Number `json:"pk"`
						Name string      `json:"name"`
						Lat  float64     `json:"lat"`
						Lng  float64     `json:"lng"`
					} `json:"location"`
					IsPaidPartnership bool `json:"is_paid_partnership"`
					Owner             *struct {
						Username string `json:"username"`
					} `json:"owner"`
					CoauthorProducers []struct {
						Username string `json:"username"`
					} `json:"coauthor_producers"`
					User *struct {
						Username string `json:"username"`
					} `json:"user"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"xdt_api__v1__feed__user_timeline_graphql_connection"`
	} `json:"data"`
}

// LoadProfile reads and decodes a creator's user-info document. The returned
// scraped timestamp comes from the file's modification time.
func LoadProfile(dir, username string) (*models.ProfileRecord, string, error) {
	path := filepath.Join(dir, userInfoFile)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, "", &SkipError{Username: username, File: userInfoFile}
	}
	if err != nil {
		return nil, "", fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}

	var raw rawUserInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", path, err)
	}

	user := raw.Data.User
	if user.Username == "" {
		return nil, "", fmt.Errorf("decode %s: no user data", path)
	}

	profile := &models.ProfileRecord{
		FullName:         user.FullName,
		Username:         user.Username,
		Biography:        user.Biography,
		FollowerCount:    user.FollowerCount,
		BusinessCategory: user.Category,
		AddressStreet:    user.AddressStreet,
		CityName:         user.CityName,
		State:            user.State,
		Country:          user.Country,
		PostalCode:       user.Zip,
	}
	for _, link := range user.BioLinks {
		if link.URL != "" {
			profile.BioLinks = append(profile.BioLinks, link.URL)
		}
	}

	scraped := info.ModTime().Format(timestampLayout)
	return profile, scraped, nil
}

// LoadPosts reads and decodes a creator's timeline document
func LoadPosts(dir, username string) ([]models.PostRecord, error) {
	path := filepath.Join(dir, postInfoFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &SkipError{Username: username, File: postInfoFile}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw rawPostInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	posts := make([]models.PostRecord, 0, len(raw.Data.Timeline.Edges))
	for _, edge := range raw.Data.Timeline.Edges {
		node := edge.Node
		post := models.PostRecord{
			TakenAt:           node.TakenAt,
			LikeCount:         node.LikeCount,
			CommentCount:      node.CommentCount,
			IsPaidPartnership: node.IsPaidPartnership,
		}
		if node.Caption != nil {
			post.Caption = node.Caption.Text
		}
		if node.Location != nil {
			post.Location = &models.PostLocation{
				ID:   node.Location.ID.String(),
				Name: node.Location.Name,
				Lat:  node.Location.Lat,
				Lng:  node.Location.Lng,
			}
		}
		if node.Owner != nil {
			post.OwnerUsername = node.Owner.Username
		}
		if node.User != nil {
			post.PosterUsername = node.User.Username
		}
		for _, co := range node.CoauthorProducers {
			if co.Username != "" {
				post.CoauthorUsernames = append(post.CoauthorUsernames, co.Username)
			}
		}
		posts = append(posts, post)
	}

	return posts, nil
}

// ReadCreatorList parses a CSV of profile URLs into usernames, preserving
// file order. The first column of each row is expected to hold the URL; a
// header row is tolerated.
func ReadCreatorList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open creator list: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read creator list: %w", err)
	}

	var usernames []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		username := usernameFromProfileURL(strings.TrimSpace(row[0]))
		if username == "" {
			continue
		}
		if _, dup := seen[username]; dup {
			continue
		}
		seen[username] = struct{}{}
		usernames = append(usernames, username)
	}

	return usernames, nil
}

// usernameFromProfileURL extracts the username from a profile URL or returns
// the value unchanged when it is already a bare username. Header-looking
// values are rejected.
func usernameFromProfileURL(value string) string {
	if value == "" {
		return ""
	}
	lower := strings.ToLower(value)
	if lower == "url" || lower == "profile" || lower == "username" || lower == "link" {
		return ""
	}

	value = strings.TrimPrefix(value, "https://")
	value = strings.TrimPrefix(value, "http://")
	value = strings.TrimPrefix(value, "www.")
	if idx := strings.Index(value, "instagram.com/"); idx >= 0 {
		value = value[idx+len("instagram.com/"):]
	}
	value = strings.Trim(value, "/")
	if idx := strings.IndexAny(value, "/?"); idx >= 0 {
		value = value[:idx]
	}
	value = strings.TrimPrefix(value, "@")
	if value == "" || strings.Contains(value, ".com") {
		return ""
	}
	return value
}

// DiscoverCreators lists creator directories under baseDir in name order
func DiscoverCreators(baseDir string) ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("read base directory: %w", err)
	}

	var usernames []string
	for _, entry := range entries {
		if entry.IsDir() {
			usernames = append(usernames, entry.Name())
		}
	}
	return usernames, nil
}

// now is swappable for tests
var now = time.Now
