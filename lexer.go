package blockgen

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// contentLexer splits the content part of a body line. Rules are tried in
	// order, so an escaped dollar wins over a placeholder and a lone `$` or `\`
	// falls through to Text. Text matches any byte, so lexing never fails.
	contentLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Escape", Pattern: `\\\$`},
		{Name: "Placeholder", Pattern: `\$\{[A-Za-z_][A-Za-z0-9_]*\}`},
		{Name: "Text", Pattern: `[^\\$]+|[\\$]`},
	})

	contentSymbols   = contentLexer.Symbols()
	escapeToken      = contentSymbols["Escape"]
	placeholderToken = contentSymbols["Placeholder"]
)

// scanContent turns the content of a single line into segments. Adjacent
// text tokens are merged; an escape always yields its own "$" segment.
func scanContent(file string, content string) ([]Segment, error) {
	lx, err := contentLexer.LexString(file, content)
	if err != nil {
		return nil, err
	}
	tokens, err := lexer.ConsumeAll(lx)
	if err != nil {
		return nil, err
	}

	var segments []Segment
	merge := false
	for _, tok := range tokens {
		if tok.EOF() {
			break
		}
		switch tok.Type {
		case escapeToken:
			segments = append(segments, Segment{Kind: SegmentContent, Value: "$"})
			merge = false
		case placeholderToken:
			name := tok.Value[2 : len(tok.Value)-1]
			segments = append(segments, Segment{Kind: SegmentPlaceholder, Value: name})
			merge = false
		default:
			if merge {
				segments[len(segments)-1].Value += tok.Value
				continue
			}
			segments = append(segments, Segment{Kind: SegmentContent, Value: tok.Value})
			merge = true
		}
	}
	return segments, nil
}
