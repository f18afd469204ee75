package index

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lexcodex/outlinify/outline"
)

// Config controls which files a Manager indexes.
type Config struct {
	WorkspacePath string
	Includes      []string
	Excludes      []string
}

// Progress is invoked once per visited file during a workspace walk.
type Progress func(path string)

// Manager walks a workspace, outlines matching files, and persists the
// flattened entries. Unchanged files (same content hash) are skipped.
type Manager struct {
	store  *Store
	config Config

	mu       sync.Mutex
	indexing map[string]bool
}

// NewManager builds a manager over an open store.
func NewManager(store *Store, config Config) *Manager {
	return &Manager{
		store:    store,
		config:   config,
		indexing: make(map[string]bool),
	}
}

// IndexFile outlines and stores one file. Parse problems do not fail the
// call; whatever declarations were recovered get indexed.
func (m *Manager) IndexFile(path string) error {
	m.mu.Lock()
	if m.indexing[path] {
		m.mu.Unlock()
		return fmt.Errorf("index already running for %s", path)
	}
	m.indexing[path] = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		delete(m.indexing, path)
		m.mu.Unlock()
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	content := string(data)
	hash := HashContent(content)
	if existing, err := m.store.GetFileByPath(path); err != nil {
		return err
	} else if existing != nil && existing.ContentHash == hash {
		return nil
	}
	entries := outline.Flatten(outline.FromSource(content))
	return m.store.SaveOutline(path, hash, entries)
}

// IndexWorkspace walks the configured workspace and indexes every matching
// file. The first error from the store aborts the walk; per-file read
// errors do not.
func (m *Manager) IndexWorkspace(progress Progress) (int, error) {
	root := m.config.WorkspacePath
	if root == "" {
		root = "."
	}
	count := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if m.excluded(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !m.matches(rel) {
			return nil
		}
		if progress != nil {
			progress(path)
		}
		if err := m.IndexFile(path); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

func (m *Manager) matches(rel string) bool {
	if m.excluded(rel) {
		return false
	}
	for _, pattern := range m.config.Includes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func (m *Manager) excluded(rel string) bool {
	for _, pattern := range m.config.Excludes {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
