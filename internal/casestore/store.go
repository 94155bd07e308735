package casestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"osce-simulator/internal/logging"
	"osce-simulator/pkg"
)

// Store loads case records from a directory of JSON files. Records are
// immutable once loaded and safe to share across sessions.
type Store struct {
	dir string
	log *logging.Logger
}

// New constructs a Store reading from dir.
func New(dir string, log *logging.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// Load scans the case directory and returns the catalog keyed by case id.
// The key is the record's case_id field, falling back to the filename without
// its extension. A malformed file is logged and skipped; the rest of the set
// still loads. An absent directory yields an empty catalog, not an error:
// callers must treat that as "no cases available".
func (s *Store) Load() map[string]pkg.CaseRecord {
	cases := make(map[string]pkg.CaseRecord)
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("failed to read cases directory", "dir", s.dir, "error", err)
		}
		return cases
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		record, err := parseFile(path)
		if err != nil {
			s.log.Error("skipping malformed case file", "file", entry.Name(), "error", err)
			continue
		}
		if record.CaseID == "" {
			record.CaseID = strings.TrimSuffix(entry.Name(), ".json")
		}
		cases[record.CaseID] = record
	}
	return cases
}

func parseFile(path string) (pkg.CaseRecord, error) {
	var record pkg.CaseRecord
	data, err := os.ReadFile(path)
	if err != nil {
		return record, fmt.Errorf("read case file: %w", err)
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("parse case file: %w", err)
	}
	return record, nil
}

// SortedIDs returns the catalog's case ids in lexical order so the case
// selector renders stably across requests.
func SortedIDs(cases map[string]pkg.CaseRecord) []string {
	ids := make([]string, 0, len(cases))
	for id := range cases {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
