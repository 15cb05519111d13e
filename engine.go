package blockgen

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// Engine loads template files from a filesystem and hands out Blocks.
type Engine struct {
	dirPrefix string
	fs        fs.FS
	exts      []string
	logger    *slog.Logger
	files     map[string]*File
	mu        sync.RWMutex
}

// NewEngine creates a new engine pointing to a directory with files.
func NewEngine(dir string, options ...Option) *Engine {
	return NewEngineFS(os.DirFS(dir), options...)
}

// NewEngineFS creates a new engine pointing to a filesystem.
func NewEngineFS(fsys fs.FS, options ...Option) *Engine {
	c := newConfig(options...)
	return &Engine{
		dirPrefix: c.prefix,
		fs:        fsys,
		exts:      c.exts.val,
		logger:    c.logger.val,
		files:     map[string]*File{},
	}
}

// Load reads every file with a known extension from the fs. A loaded file is
// parsed again only when its modification time is after its ParsedAt, and
// files that disappeared are dropped. All parse errors are reported together;
// files that failed keep their previous version and are retried on the next
// Load.
func (e *Engine) Load() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	root := "."
	if e.dirPrefix != "" {
		root = e.dirPrefix
	}

	seen := map[string]struct{}{}
	var errs []error

	err := fs.WalkDir(e.fs, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !validExt(e.exts, filepath.Ext(path)) {
			return nil
		}

		name := e.nameFromPath(path)
		seen[name] = struct{}{}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if f, loaded := e.files[name]; loaded && !info.ModTime().After(time.UnixMilli(f.ParsedAt)) {
			e.logger.Debug("template file unchanged", "file", name)
			return nil
		}

		raw, err := fs.ReadFile(e.fs, path)
		if err != nil {
			return err
		}
		f, err := Parse(name, string(raw))
		if err != nil {
			e.logger.Error("template file failed to parse", "file", name, "error", err)
			errs = append(errs, err)
			return nil
		}
		for _, dup := range f.Duplicates() {
			e.logger.Warn("duplicate template name, first definition wins", "file", name, "template", dup)
		}
		e.logger.Debug("template file parsed", "file", name, "templates", len(f.Templates))
		e.files[name] = f
		return nil
	})
	if err != nil {
		return fmt.Errorf("error loading templates: %w", err)
	}

	for name := range e.files {
		if _, ok := seen[name]; !ok {
			e.logger.Debug("template file removed", "file", name)
			delete(e.files, name)
		}
	}

	return errors.Join(errs...)
}

// File returns a loaded file by name, e.g. "pages/home" for pages/home.blocks.
func (e *Engine) File(name string) (*File, error) {
	name = normalizeName(name, e.exts)
	e.mu.RLock()
	defer e.mu.RUnlock()
	f, ok := e.files[name]
	if !ok {
		return nil, fmt.Errorf(`%w: "%s"`, ErrFileNotFound, name)
	}
	return f, nil
}

// Files returns the names of all loaded files, sorted.
func (e *Engine) Files() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.files))
	for name := range e.files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Template returns a new Block for template tmpl of file.
func (e *Engine) Template(file, tmpl string) (*Block, error) {
	f, err := e.File(file)
	if err != nil {
		return nil, err
	}
	return f.Template(tmpl)
}

// Render fills template tmpl of file with values and writes the result to w.
func (e *Engine) Render(w io.Writer, file, tmpl string, values Values) error {
	b, err := e.Template(file, tmpl)
	if err != nil {
		return err
	}
	_, err = b.SetValues(values).WriteTo(w)
	return err
}

// nameFromPath converts a filesystem path to a file name, relative to the engine prefix.
func (e *Engine) nameFromPath(path string) string {
	rel := path
	if e.dirPrefix != "" {
		if r, err := filepath.Rel(e.dirPrefix, path); err == nil {
			rel = r
		}
	}
	// normalize separators and drop extension
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return normalizeName(rel, nil)
}

// normalizeName: remove quotes/spaces and known extensions, normalize slashes
func normalizeName(n string, exts []string) string {
	n = strings.TrimSpace(n)
	n = strings.Trim(n, `"' `)
	if validExt(exts, filepath.Ext(n)) {
		n = strings.TrimSuffix(n, filepath.Ext(n))
	}
	n = filepath.ToSlash(n)
	return n
}
