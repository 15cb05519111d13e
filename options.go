package blockgen

import (
	"io"
	"log/slog"
	"strings"
)

// DefaultExtensions are the file extensions the Engine loads unless
// WithExtensions says otherwise.
var DefaultExtensions = []string{".blocks", ".tmpl"}

// Option configures an Engine.
type Option func(*config)

type config struct {
	prefix string
	exts   optionVal[[]string]
	logger optionVal[*slog.Logger]
}

// WithPrefix sets the directory inside the filesystem that file names are
// relative to. When using embed.FS, pass the embedded folder.
func WithPrefix(dir string) Option {
	return func(c *config) {
		c.prefix = dir
	}
}

// WithExtensions replaces the set of file extensions the Engine loads.
// Extensions are matched case insensitively, with or without the dot.
func WithExtensions(exts ...string) Option {
	return func(c *config) {
		c.exts = newVal(exts)
	}
}

// WithLogger sets the logger used while loading files.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = newVal(l)
	}
}

func newConfig(options ...Option) config {
	var c config
	for _, opt := range options {
		opt(&c)
	}
	if !c.exts.set {
		c.exts.update(DefaultExtensions)
	}
	if !c.logger.set || c.logger.val == nil {
		c.logger.update(slog.New(slog.NewTextHandler(io.Discard, nil)))
	}
	return c
}

func validExt(exts []string, ext string) bool {
	if ext == "" {
		return false
	}

	sanitize := func(ext string) string {
		return strings.ToLower(strings.TrimPrefix(ext, "."))
	}

	for _, e := range exts {
		if sanitize(e) == sanitize(ext) {
			return true
		}
	}

	return false
}

type optionVal[T any] struct {
	val T
	set bool
}

func newVal[T any](val T) optionVal[T] {
	return optionVal[T]{val: val, set: true}
}

func (o *optionVal[T]) update(val T) {
	o.val = val
}
