package blockgen

import (
	"fmt"
)

// File holds every template defined in one source file, in source order.
// A File is immutable once parsed and safe for concurrent use.
type File struct {
	// Name identifies the file in errors; it may be empty.
	Name string
	// Templates in the order they were defined. Duplicate names are kept.
	Templates []*Template
	// ParsedAt is the time when the file was parsed in unix milliseconds.
	// The Engine parses a file again once it is modified after this time.
	ParsedAt int64
}

// lookup returns the first template called name.
func (f *File) lookup(name string) (*Template, bool) {
	for _, t := range f.Templates {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Definition returns the parsed definition of the first template called name.
func (f *File) Definition(name string) (*Template, bool) {
	return f.lookup(name)
}

// Lookup returns a new Block for the first template called name.
func (f *File) Lookup(name string) (*Block, bool) {
	t, ok := f.lookup(name)
	if !ok {
		return nil, false
	}
	return t.Block(), true
}

// Template returns a new Block for the first template called name. Every call
// returns an independent Block.
func (f *File) Template(name string) (*Block, error) {
	t, ok := f.lookup(name)
	if !ok {
		return nil, fmt.Errorf(`[%s] %w: "%s"`, f.Name, ErrTemplateNotFound, name)
	}
	return t.Block(), nil
}

// MustTemplate is like Template but panics if the template does not exist.
func (f *File) MustTemplate(name string) *Block {
	b, err := f.Template(name)
	if err != nil {
		panic(err)
	}
	return b
}

// Call looks up a template and fills its placeholders positionally, in the
// order returned by Template.PlaceholderNames. Arguments are converted like
// Values entries.
func (f *File) Call(name string, args ...any) (*Block, error) {
	t, ok := f.lookup(name)
	if !ok {
		return nil, fmt.Errorf(`[%s] %w: "%s"`, f.Name, ErrTemplateNotFound, name)
	}
	names := t.PlaceholderNames()
	if len(args) != len(names) {
		return nil, fmt.Errorf(`[%s] template "%s": %w: want %d (%v), got %d`, f.Name, name, ErrArity, len(names), names, len(args))
	}
	b := t.Block()
	for i, n := range names {
		b.Set(n, toBlock(args[i]))
	}
	return b, nil
}

// Names returns the template names in source order, duplicates included.
func (f *File) Names() []string {
	names := make([]string, len(f.Templates))
	for i, t := range f.Templates {
		names[i] = t.Name
	}
	return names
}

// Duplicates returns the names defined more than once. Only the first
// definition of such a name is reachable through lookups.
func (f *File) Duplicates() []string {
	count := map[string]int{}
	var dups []string
	for _, t := range f.Templates {
		count[t.Name]++
		if count[t.Name] == 2 {
			dups = append(dups, t.Name)
		}
	}
	return dups
}
