// Package casestore holds the case library: an in-memory store keyed by case
// id, populated from YAML files discovered on disk.
package casestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/nice-copacabana/meteor-shower/internal/models"
	"github.com/nice-copacabana/meteor-shower/internal/validation"
)

// ErrCaseNotFound reports a lookup for a case id the store does not hold.
var ErrCaseNotFound = errors.New("case not found in store")

// Store is an in-memory case library. Safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	cases map[string]*models.Case
}

// NewStore creates an empty case store.
func NewStore() *Store {
	return &Store{cases: make(map[string]*models.Case)}
}

// Put validates and adds a case, replacing any case with the same id.
func (s *Store) Put(c *models.Case) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cases[c.ID] = c
	return nil
}

// GetCase returns the case with the given id.
func (s *Store) GetCase(id string) (*models.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrCaseNotFound, id)
	}
	return c, nil
}

// List returns all cases sorted by id.
func (s *Store) List() []*models.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cases := make([]*models.Case, 0, len(s.cases))
	for _, c := range s.cases {
		cases = append(cases, c)
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].ID < cases[j].ID })
	return cases
}

// ByCategory returns the cases in a category, sorted by id.
func (s *Store) ByCategory(category string) []*models.Case {
	var filtered []*models.Case
	for _, c := range s.List() {
		if c.Category == category {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// IDs returns the sorted ids of all stored cases.
func (s *Store) IDs() []string {
	cases := s.List()
	ids := make([]string, len(cases))
	for i, c := range cases {
		ids[i] = c.ID
	}
	return ids
}

// Len returns the number of stored cases.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cases)
}

// LoadDir walks root and loads every .yaml/.yml file as a case. Hidden
// directories and vendor trees are skipped. Duplicate case ids across files
// are an error, as silently shadowing a case would corrupt comparisons.
// Returns the number of cases loaded.
func (s *Store) LoadDir(root string) (int, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return 0, fmt.Errorf("resolving case directory: %w", err)
	}
	if _, err := os.Stat(absRoot); err != nil {
		return 0, fmt.Errorf("case directory: %w", err)
	}

	loaded := 0
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") || d.Name() == "node_modules" || d.Name() == "vendor" {
				return fs.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		// Schema validation first: shape errors are reported with their
		// JSON-pointer locations instead of a generic parse failure.
		if violations := validation.ValidateCaseBytes(data); len(violations) > 0 {
			return fmt.Errorf("case %s fails schema validation:\n  %s", path, strings.Join(violations, "\n  "))
		}

		c, err := models.ParseCase(data)
		if err != nil {
			return fmt.Errorf("invalid case %s: %w", path, err)
		}

		s.mu.Lock()
		_, dup := s.cases[c.ID]
		if !dup {
			s.cases[c.ID] = c
		}
		s.mu.Unlock()

		if dup {
			return fmt.Errorf("duplicate case id %q in %s", c.ID, path)
		}
		loaded++
		return nil
	})
	if err != nil {
		return loaded, fmt.Errorf("loading cases from %s: %w", absRoot, err)
	}
	return loaded, nil
}
