// Package history persists scored executions as JSON files, one file per
// tool, so tool performance can be aggregated across runs.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"

	"github.com/nice-copacabana/meteor-shower/internal/models"
)

// Store persists executions under a directory, one JSON file per tool.
// An empty directory disables persistence: Put becomes a no-op and List
// returns nothing.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates a history store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// toolFileRe keeps tool names from escaping the store directory.
var toolFileRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Put appends an execution to its tool's history file.
func (s *Store) Put(exec *models.Execution) error {
	if s.dir == "" {
		return nil
	}
	if exec.Tool == "" {
		return fmt.Errorf("execution has no tool")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	executions, err := s.readTool(exec.Tool)
	if err != nil {
		return err
	}
	executions = append(executions, exec)

	data, err := json.MarshalIndent(executions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}
	if err := os.WriteFile(s.toolPath(exec.Tool), data, 0644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}

// List returns the stored executions for a tool, oldest first. A tool with
// no history yields an empty slice, not an error.
func (s *Store) List(tool string) ([]*models.Execution, error) {
	if s.dir == "" {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readTool(tool)
}

// Tools returns the tools that have stored history, sorted.
func (s *Store) Tools() ([]string, error) {
	if s.dir == "" {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history directory: %w", err)
	}

	var tools []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		tools = append(tools, entry.Name()[:len(entry.Name())-len(".json")])
	}
	sort.Strings(tools)
	return tools, nil
}

func (s *Store) readTool(tool string) ([]*models.Execution, error) {
	data, err := os.ReadFile(s.toolPath(tool))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var executions []*models.Execution
	if err := json.Unmarshal(data, &executions); err != nil {
		return nil, fmt.Errorf("parsing history for %q: %w", tool, err)
	}
	return executions, nil
}

func (s *Store) toolPath(tool string) string {
	safe := toolFileRe.ReplaceAllString(tool, "_")
	return filepath.Join(s.dir, safe+".json")
}
