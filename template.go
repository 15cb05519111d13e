package blockgen

// SegmentKind tells literal content apart from a placeholder reference.
type SegmentKind int

const (
	SegmentContent SegmentKind = iota
	SegmentPlaceholder
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentContent:
		return "content"
	case SegmentPlaceholder:
		return "placeholder"
	default:
		return "unknown"
	}
}

// Segment is a piece of a parsed template line. Value holds the literal text
// for content segments and the referenced name for placeholders.
type Segment struct {
	Kind  SegmentKind
	Value string
}

// TemplateLine is a single body line of a template.
type TemplateLine struct {
	// Indentation is the raw leading whitespace of the source line.
	Indentation string
	// Segments is empty for blank lines.
	Segments []Segment
}

// Template is a named template definition as it appears in the source.
// Templates are read only once parsed.
type Template struct {
	Name string
	// IndentIgnored is the number of leading indentation characters stripped
	// from every line. It equals the number of dashes in the terminator.
	IndentIgnored int
	Lines         []TemplateLine
	// Line is the source line of the declaration.
	Line int
}

// PlaceholderNames returns the distinct placeholder names of the template in
// order of first appearance.
func (t *Template) PlaceholderNames() []string {
	seen := map[string]struct{}{}
	var names []string
	for _, line := range t.Lines {
		for _, seg := range line.Segments {
			if seg.Kind != SegmentPlaceholder {
				continue
			}
			if _, ok := seen[seg.Value]; ok {
				continue
			}
			seen[seg.Value] = struct{}{}
			names = append(names, seg.Value)
		}
	}
	return names
}

// Block materializes a fresh Block from the template. Lines whose indentation
// is shorter than IndentIgnored are treated as having no indentation.
func (t *Template) Block() *Block {
	lines := make([]Line, 0, len(t.Lines))
	for _, tl := range t.Lines {
		segments := make(Line, 0, len(tl.Segments)+1)
		if len(tl.Indentation) > t.IndentIgnored {
			segments = append(segments, Content(tl.Indentation[t.IndentIgnored:]))
		}
		for _, seg := range tl.Segments {
			switch seg.Kind {
			case SegmentPlaceholder:
				segments = append(segments, Placeholder(seg.Value))
			default:
				segments = append(segments, Content(seg.Value))
			}
		}
		lines = append(lines, segments)
	}
	return &Block{Lines: lines}
}
