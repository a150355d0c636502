// Package config manages the user's tracked configuration files: adding
// existing files, creating new ones with per-format default content,
// updating and deleting them. Format syntax checking is deliberately left
// to an external Validator collaborator.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// File is one managed configuration file.
type File struct {
	Name         string
	Path         string
	Format       Format
	Content      string
	LastModified time.Time
}

// Validator checks config content before it is written. Implementations
// live outside this package; a nil validator accepts everything.
type Validator interface {
	Validate(f *File) error
}

// Manager keeps an in-memory registry of managed config files keyed by
// name and mirrors every mutation to disk.
type Manager struct {
	configs   map[string]*File
	validator Validator
}

// NewManager returns a manager with no validator.
func NewManager() *Manager {
	return &Manager{configs: make(map[string]*File)}
}

// NewManagerWithValidator returns a manager that runs every create and
// update through v.
func NewManagerWithValidator(v Validator) *Manager {
	return &Manager{configs: make(map[string]*File), validator: v}
}

func (m *Manager) validate(f *File) error {
	if m.validator == nil {
		return nil
	}
	if err := m.validator.Validate(f); err != nil {
		return &ValidationError{Name: f.Name, Err: err}
	}
	return nil
}

// Add registers an existing config file under its base filename.
func (m *Manager) Add(path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Name: path}
		}
		return &IOError{Path: path, Err: err}
	}

	name := filepath.Base(path)
	if m.Exists(name) {
		return &ExistsError{Name: name}
	}

	f := &File{
		Name:         name,
		Path:         path,
		Format:       format,
		Content:      string(content),
		LastModified: time.Now().UTC(),
	}
	if err := m.validate(f); err != nil {
		return err
	}
	m.configs[name] = f
	return nil
}

// Create makes a new config file on disk and registers it. Empty
// initContent falls back to the format's default content. Fails when the
// name is already managed or a file already exists at path.
func (m *Manager) Create(name string, path string, format Format, initContent string) error {
	if m.Exists(name) {
		return &ExistsError{Name: name}
	}
	if _, err := os.Stat(path); err == nil {
		return &ExistsError{Name: path}
	}

	content := initContent
	if content == "" {
		content = format.DefaultContent()
	}

	f := &File{
		Name:         name,
		Path:         path,
		Format:       format,
		Content:      content,
		LastModified: time.Now().UTC(),
	}
	if err := m.validate(f); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &IOError{Path: dir, Err: err}
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return &IOError{Path: path, Err: err}
	}

	m.configs[name] = f
	return nil
}

// Get returns the managed config under name, or nil.
func (m *Manager) Get(name string) *File {
	return m.configs[name]
}

// Update replaces the content of a managed config, on disk and in memory.
func (m *Manager) Update(name string, content string) error {
	f, ok := m.configs[name]
	if !ok {
		return &NotFoundError{Name: name}
	}

	next := *f
	next.Content = content
	next.LastModified = time.Now().UTC()
	if err := m.validate(&next); err != nil {
		return err
	}

	if _, err := os.Stat(f.Path); err != nil {
		// The backing file disappeared since it was added.
		return &NotFoundError{Name: f.Path}
	}
	if err := os.WriteFile(f.Path, []byte(content), 0o644); err != nil {
		return &IOError{Path: f.Path, Err: err}
	}

	*f = next
	return nil
}

// Delete removes a managed config from the registry and from disk. A
// backing file that is already gone counts as success; a disk failure
// restores the registry entry.
func (m *Manager) Delete(name string) error {
	f, ok := m.configs[name]
	if !ok {
		return &NotFoundError{Name: name}
	}
	delete(m.configs, name)

	if _, err := os.Stat(f.Path); err != nil {
		return nil
	}
	if err := os.Remove(f.Path); err != nil {
		m.configs[name] = f
		return &IOError{Path: f.Path, Err: err}
	}
	return nil
}

// List returns all managed configs.
func (m *Manager) List() []*File {
	out := make([]*File, 0, len(m.configs))
	for _, f := range m.configs {
		out = append(out, f)
	}
	return out
}

// Exists reports whether a config is managed under name.
func (m *Manager) Exists(name string) bool {
	_, ok := m.configs[name]
	return ok
}
