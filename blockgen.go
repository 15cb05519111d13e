// Package blockgen is a templating engine for generating indented text such
// as source code.
//
// Templates live in plain text files. A template starts with its name and an
// equals sign and ends with a line of dashes:
//
//	entry = "${key}": ${value},
//
//	main =
//	    var MAP = {
//	        ${entries}
//	    };
//	----
//
// The number of dashes is the indentation stripped from every body line,
// so the body above renders without its four leading spaces. A template written on the declaration line needs no terminator.
// ${name} marks a placeholder and \$ is a literal dollar sign.
//
// Templates are looked up by name and filled by the host program:
//
//	f, err := blockgen.Parse("map.blocks", src)
//	if err != nil {
//	    // handle error
//	}
//	entries := blockgen.JoinMap(pairs, func(p pair, _ blockgen.Position) *blockgen.Block {
//	    return f.MustTemplate("entry").SetText("key", p.key).SetText("value", p.value)
//	})
//	fmt.Println(f.MustTemplate("main").Set("entries", entries))
//
// A block substituted into the middle of a line is indented to the column it
// was inserted at, so every line of the entries above lines up under the first.
package blockgen

import "time"

// Parse parses template source. name is only used in error messages.
func Parse(name, src string) (*File, error) {
	templates, err := parseTemplates(name, src)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:      name,
		Templates: templates,
		ParsedAt:  time.Now().UnixMilli(),
	}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(name, src string) *File {
	f, err := Parse(name, src)
	if err != nil {
		panic(err)
	}
	return f
}
