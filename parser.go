package blockgen

import (
	"strings"
)

// parseTemplates splits source into template definitions.
//
// The grammar is line oriented:
//
//	file        = { blank | comment | template } .
//	template    = decl ( inline | newline { body } terminator ) .
//	decl        = ident { " " | tab } "=" .
//	terminator  = "-" { "-" } newline .
//	comment     = { " " | tab } "#" text newline .
//
// A body line keeps its leading whitespace as indentation; the remainder is
// handed to scanContent.
func parseTemplates(file, src string) ([]*Template, error) {
	p := &parser{file: file, lines: splitLines(src)}
	return p.run()
}

type parser struct {
	file  string
	lines []string
	pos   int
}

func (p *parser) run() ([]*Template, error) {
	var templates []*Template
	for p.pos < len(p.lines) {
		raw := p.lines[p.pos]
		lineNo := p.pos + 1
		p.pos++

		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		name, inline, err := p.declaration(raw, lineNo)
		if err != nil {
			return nil, err
		}
		t := &Template{Name: name, Line: lineNo}
		if inline != "" {
			segments, err := p.content(inline, lineNo)
			if err != nil {
				return nil, err
			}
			t.Lines = []TemplateLine{{Segments: segments}}
			templates = append(templates, t)
			continue
		}
		if err := p.body(t); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// declaration reads `name =` and returns the inline content following it, if any.
func (p *parser) declaration(raw string, lineNo int) (name, inline string, err error) {
	before, after, found := strings.Cut(raw, "=")
	if !found {
		return "", "", syntaxErrorf(p.file, lineNo, "expected template declaration `name =`, got %q", raw)
	}
	name = strings.TrimRight(before, " \t")
	if !isIdent(name) {
		return "", "", syntaxErrorf(p.file, lineNo, "invalid template name %q", name)
	}
	inline = strings.TrimLeft(after, " \t")
	if strings.TrimSpace(inline) == "" {
		inline = ""
	}
	return name, inline, nil
}

func (p *parser) body(t *Template) error {
	for p.pos < len(p.lines) {
		raw := p.lines[p.pos]
		lineNo := p.pos + 1
		p.pos++

		if n, ok := terminatorLen(raw); ok {
			t.IndentIgnored = n
			return nil
		}

		indentation, content := splitIndent(raw)
		if strings.TrimSpace(content) == "" {
			t.Lines = append(t.Lines, TemplateLine{})
			continue
		}
		segments, err := p.content(content, lineNo)
		if err != nil {
			return err
		}
		t.Lines = append(t.Lines, TemplateLine{
			Indentation: indentation,
			Segments:    segments,
		})
	}
	return syntaxErrorf(p.file, t.Line, "template %q is never terminated (expected a line of dashes)", t.Name)
}

func (p *parser) content(content string, lineNo int) ([]Segment, error) {
	segments, err := scanContent(p.file, content)
	if err != nil {
		return nil, syntaxErrorf(p.file, lineNo, "%s", err.Error())
	}
	return segments, nil
}

// terminatorLen reports whether raw is a run of dashes starting at column one.
func terminatorLen(raw string) (int, bool) {
	line := strings.TrimRight(raw, " \t")
	if line == "" || strings.Trim(line, "-") != "" {
		return 0, false
	}
	return len(line), true
}

func splitIndent(raw string) (indentation, content string) {
	i := 0
	for i < len(raw) && (raw[i] == ' ' || raw[i] == '\t') {
		i++
	}
	return raw[:i], raw[i:]
}

func splitLines(src string) []string {
	src = strings.TrimSuffix(src, "\n")
	if src == "" {
		return nil
	}
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
