// Package refdata loads the static reference tables the classifiers depend
// on: gendered name lists, the gendered-niche keyword map, the business
// category map, and the geo region database. Tables are loaded once at
// process start and injected into classifiers as an immutable value, keeping
// the classifiers pure and independently testable.
package refdata

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/veralens/creatorscope/internal/geo"
)

// GenderedNiches maps niche keywords to the gender they skew toward.
type GenderedNiches struct {
	FemaleDominated []string `json:"female_dominated"`
	MaleDominated   []string `json:"male_dominated"`
	Neutral         []string `json:"neutral"`
}

// CategoryTypeMap splits business categories into creator-run and
// business-run lists. Lookups are case-insensitive.
type CategoryTypeMap struct {
	Creator  []string `json:"creator"`
	Business []string `json:"business"`
}

// Tables bundles every reference table. Treat as read-only after Load.
type Tables struct {
	MaleNames      map[string]struct{}
	FemaleNames    map[string]struct{}
	GenderedNiches GenderedNiches
	CategoryTypes  CategoryTypeMap
	Geo            *geo.Database

	creatorCategories  map[string]struct{}
	businessCategories map[string]struct{}
}

// Paths names the source file of each table. Geo may be empty when only the
// analysis pass runs.
type Paths struct {
	MaleNames       string
	FemaleNames     string
	GenderedNiches  string
	CategoryTypeMap string
	GeoDatabase     string
}

// Load reads every reference table. Any unreadable table is fatal to the
// caller; there is no degraded mode.
func Load(p Paths) (*Tables, error) {
	t := &Tables{}

	var err error
	if t.MaleNames, err = loadNameList(p.MaleNames); err != nil {
		return nil, fmt.Errorf("male names: %w", err)
	}
	if t.FemaleNames, err = loadNameList(p.FemaleNames); err != nil {
		return nil, fmt.Errorf("female names: %w", err)
	}
	if err = loadJSON(p.GenderedNiches, &t.GenderedNiches); err != nil {
		return nil, fmt.Errorf("gendered niches: %w", err)
	}
	if err = loadJSON(p.CategoryTypeMap, &t.CategoryTypes); err != nil {
		return nil, fmt.Errorf("category type map: %w", err)
	}
	if p.GeoDatabase != "" {
		if t.Geo, err = geo.LoadDatabase(p.GeoDatabase); err != nil {
			return nil, err
		}
	}

	t.index()
	return t, nil
}

// NewTables builds a Tables value from in-memory lists. Used by tests and by
// callers that source tables elsewhere.
func NewTables(maleNames, femaleNames []string, niches GenderedNiches, categories CategoryTypeMap) *Tables {
	t := &Tables{
		MaleNames:      make(map[string]struct{}, len(maleNames)),
		FemaleNames:    make(map[string]struct{}, len(femaleNames)),
		GenderedNiches: niches,
		CategoryTypes:  categories,
	}
	for _, n := range maleNames {
		t.MaleNames[strings.ToLower(n)] = struct{}{}
	}
	for _, n := range femaleNames {
		t.FemaleNames[strings.ToLower(n)] = struct{}{}
	}
	t.index()
	return t
}

func (t *Tables) index() {
	t.creatorCategories = lowerSet(t.CategoryTypes.Creator)
	t.businessCategories = lowerSet(t.CategoryTypes.Business)
}

func lowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = struct{}{}
	}
	return set
}

// IsMaleName reports an exact lowercase match against the male name list.
func (t *Tables) IsMaleName(name string) bool {
	_, ok := t.MaleNames[strings.ToLower(name)]
	return ok
}

// IsFemaleName reports an exact lowercase match against the female name list.
func (t *Tables) IsFemaleName(name string) bool {
	_, ok := t.FemaleNames[strings.ToLower(name)]
	return ok
}

// IsCreatorCategory reports whether the business category belongs to the
// creator list.
func (t *Tables) IsCreatorCategory(category string) bool {
	_, ok := t.creatorCategories[strings.ToLower(category)]
	return ok
}

// IsBusinessCategory reports whether the business category belongs to the
// business list.
func (t *Tables) IsBusinessCategory(category string) bool {
	_, ok := t.businessCategories[strings.ToLower(category)]
	return ok
}

func loadNameList(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if name != "" {
			names[name] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
