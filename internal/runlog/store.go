// Package runlog persists the outcome of apply invocations as JSON records
// so past runs can be listed and inspected.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dkim-dev/changeset/internal/engine"
	"github.com/dkim-dev/changeset/internal/fsops"
)

// idFormat is the timestamp layout used for record IDs. Nanoseconds keep
// IDs unique for back-to-back runs.
const idFormat = "20060102-150405.000000000"

// Record is one persisted apply invocation.
type Record struct {
	// ID identifies the record and orders it chronologically.
	ID string `json:"id"`

	// StartedAt is when the apply began.
	StartedAt time.Time `json:"startedAt"`

	// TaskFile is the task file the changes came from, if any.
	TaskFile string `json:"taskFile,omitempty"`

	// TaskName is the task's optional label.
	TaskName string `json:"taskName,omitempty"`

	// RootDir is the sandbox root the changes were applied to.
	RootDir string `json:"rootDir"`

	// DryRun echoes the invocation mode.
	DryRun bool `json:"dryRun"`

	// Counts is the per-status tally from the summary.
	Counts map[engine.Status]int `json:"counts"`

	// Operations holds the per-change results.
	Operations []engine.FileOperationResult `json:"operations"`
}

// Store reads and writes run records under a single directory.
type Store struct {
	fs  fsops.FS
	dir string
	now func() time.Time
}

// NewStore creates a Store rooted at dir.
func NewStore(fs fsops.FS, dir string) *Store {
	return &Store{fs: fs, dir: dir, now: time.Now}
}

// Record persists the summary of one invocation and returns the stored
// record.
func (s *Store) Record(taskFile, taskName, rootDir string, summary *engine.ApplySummary) (*Record, error) {
	startedAt := s.now().UTC()

	rec := &Record{
		ID:         startedAt.Format(idFormat),
		StartedAt:  startedAt,
		TaskFile:   taskFile,
		TaskName:   taskName,
		RootDir:    rootDir,
		DryRun:     summary.DryRun,
		Counts:     summary.Counts,
		Operations: summary.Operations,
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run record: %w", err)
	}

	path := filepath.Join(s.dir, rec.ID+".json")
	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write run record: %w", err)
	}

	return rec, nil
}

// Load reads one record by ID.
func (s *Store) Load(id string) (*Record, error) {
	data, err := s.fs.ReadFile(filepath.Join(s.dir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("run %q not found", id)
		}
		return nil, fmt.Errorf("failed to read run record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run record: %w", err)
	}

	return &rec, nil
}

// List returns all records, newest first.
func (s *Store) List() ([]*Record, error) {
	ids, err := s.listIDs()
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Load(id)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	// IDs are timestamps, so lexical order is chronological.
	sort.Slice(records, func(i, j int) bool { return records[i].ID > records[j].ID })

	return records, nil
}

// Prune deletes the oldest records beyond max and reports how many were
// removed. A non-positive max removes nothing.
func (s *Store) Prune(max int) (int, error) {
	if max <= 0 {
		return 0, nil
	}

	ids, err := s.listIDs()
	if err != nil {
		return 0, err
	}
	if len(ids) <= max {
		return 0, nil
	}

	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	removed := 0
	for _, id := range ids[max:] {
		if err := s.fs.Remove(filepath.Join(s.dir, id+".json")); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to remove run record %q: %w", id, err)
		}
		removed++
	}

	return removed, nil
}

func (s *Store) listIDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read runs directory: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}

	return ids, nil
}
