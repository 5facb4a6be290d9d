package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Store persists templates as a single flat JSON file keyed by template
// name. Reads tolerate a missing, empty, or corrupt file by treating it as
// an empty store so a damaged cache never takes training or inference down;
// write failures are surfaced, since silent template loss is worse than a
// visible error. Every write is a full read-modify-write of the file,
// serialized by the store's write lock.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewStore creates a Store backed by the JSON file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger.With("system", "templates"),
	}
}

// All returns every stored template, sorted by name.
func (s *Store) All() ([]Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byName := s.load()
	out := make([]Template, 0, len(byName))
	for _, t := range byName {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns the template with the given name, or ErrNotFound.
func (s *Store) Get(name string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.load()[name]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", name, ErrNotFound)
	}
	return &t, nil
}

// Contains reports whether a template with the given name exists.
func (s *Store) Contains(name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.load()[name]
	return ok, nil
}

// Upsert stores the template, replacing any prior entry with the same name.
func (s *Store) Upsert(t Template) error {
	if err := validateName(t.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byName := s.load()
	byName[t.Name] = t
	return s.save(byName)
}

// load reads the whole store. Unreadable content downgrades to an empty
// store with a logged warning; this is a deliberate availability-over-
// consistency choice.
func (s *Store) load() map[string]Template {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("template store unreadable, treating as empty", "path", s.path, "error", err)
		}
		return map[string]Template{}
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]Template{}
	}

	var byName map[string]Template
	if err := json.Unmarshal(data, &byName); err != nil {
		s.logger.Warn("template store corrupt, treating as empty", "path", s.path, "error", err)
		return map[string]Template{}
	}
	return byName
}

func (s *Store) save(byName map[string]Template) error {
	data, err := json.MarshalIndent(byName, "", "  ")
	if err != nil {
		return fmt.Errorf("encode template store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prepare template store directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write template store: %w", err)
	}

	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		return ErrInvalidName
	}
	return nil
}
