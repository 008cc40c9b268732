package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/xgraphix/internal/logger"
)

// file is the on-disk layout of the saved-functions document.
type file struct {
	Functions []Function `yaml:"functions"`
}

// Store is the set of user-saved functions, backed by a YAML file. Defaults
// are visible through the store but never written to it.
type Store struct {
	path  string
	saved map[string]Function
}

// Open loads the store at path. A missing file is an empty store. An empty
// path gives an in-memory store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, saved: make(map[string]Function)}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc file
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, f := range doc.Functions {
		if f.Name == "" || IsDefault(f.Name) {
			logger.Warn("skipping saved function", zap.String("name", f.Name), zap.String("path", path))
			continue
		}
		f.Builtin = false
		s.saved[f.Name] = f
	}

	logger.Debug("function library loaded", zap.String("path", path), zap.Int("saved", len(s.saved)))
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Get looks a function up by name, defaults first.
func (s *Store) Get(name string) (Function, bool) {
	if f, ok := lookupDefault(name); ok {
		return f, true
	}
	f, ok := s.saved[name]
	return f, ok
}

// Exists reports whether name is a default or a saved function.
func (s *Store) Exists(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Put saves f, replacing any saved function with the same name.
func (s *Store) Put(f Function) error {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return ErrEmptyName
	}
	if IsDefault(f.Name) {
		return fmt.Errorf("%w: %q", ErrProtected, f.Name)
	}
	f.Builtin = false

	prev, had := s.saved[f.Name]
	s.saved[f.Name] = f
	if err := s.flush(); err != nil {
		if had {
			s.saved[f.Name] = prev
		} else {
			delete(s.saved, f.Name)
		}
		return err
	}
	return nil
}

// Delete removes a saved function.
func (s *Store) Delete(name string) error {
	if IsDefault(name) {
		return fmt.Errorf("%w: %q", ErrProtected, name)
	}
	prev, ok := s.saved[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	delete(s.saved, name)
	if err := s.flush(); err != nil {
		s.saved[name] = prev
		return err
	}
	return nil
}

// Names lists defaults in table order followed by saved names sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(defaults)+len(s.saved))
	for _, f := range defaults {
		names = append(names, f.Name)
	}
	return append(names, s.savedNames()...)
}

// Saved returns the saved functions sorted by name.
func (s *Store) Saved() []Function {
	names := s.savedNames()
	out := make([]Function, len(names))
	for i, n := range names {
		out[i] = s.saved[n]
	}
	return out
}

func (s *Store) savedNames() []string {
	names := make([]string, 0, len(s.saved))
	for n := range s.saved {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// flush writes the saved functions through a temp file and rename.
func (s *Store) flush() error {
	if s.path == "" {
		return nil
	}

	data, err := yaml.Marshal(file{Functions: s.Saved()})
	if err != nil {
		return fmt.Errorf("encoding library: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".functions-*.yaml")
	if err != nil {
		return fmt.Errorf("writing library: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing library: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing library: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("writing library: %w", err)
	}
	return nil
}
