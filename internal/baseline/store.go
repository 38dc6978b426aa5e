// Package baseline persists named snapshots of resolved configuration.
package baseline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when a baseline doesn't exist.
var ErrNotFound = errors.New("baseline not found")

// ErrInvalidName is returned for names that cannot be stored.
var ErrInvalidName = errors.New("invalid baseline name")

// DirName is the per-project directory baselines live in by default.
const DirName = ".rnconfig/baselines"

// Store manages baseline files in a directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the baseline directory of the project at root.
func DefaultDir(root string) string {
	return filepath.Join(root, filepath.FromSlash(DirName))
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

// Save stores b, replacing any baseline with the same name.
func (s *Store) Save(b Baseline) error {
	path, err := s.path(b.Name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating baseline dir: %w", err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding baseline %s: %w", b.Name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing baseline %s: %w", b.Name, err)
	}
	return nil
}

// Load retrieves a baseline by name.
func (s *Store) Load(name string) (Baseline, error) {
	path, err := s.path(name)
	if err != nil {
		return Baseline{}, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Baseline{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Baseline{}, fmt.Errorf("reading baseline %s: %w", name, err)
	}

	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return Baseline{}, fmt.Errorf("decoding baseline %s: %w", name, err)
	}
	return b, nil
}

// List returns summaries of all stored baselines sorted by name. Unreadable
// files are skipped.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Summary{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing baselines: %w", err)
	}

	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".json")
		if entry.IsDir() || !ok {
			continue
		}
		b, err := s.Load(name)
		if err != nil {
			continue
		}
		summaries = append(summaries, Summary{
			Name:          b.Name,
			ConfigVersion: b.Snapshot.ConfigVersion,
			Keys:          len(b.Snapshot.Values),
			CreatedAt:     b.CreatedAt,
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}

// Delete removes a baseline by name.
func (s *Store) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return err
}

// path returns the file for name. Names are single path elements.
func (s *Store) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name+".json"), nil
}
