package blockgen

import (
	"io"
	"iter"
	"strings"
)

// LineSegment is one piece of a Line: Content, Placeholder or a nested *Block.
type LineSegment interface {
	lineSegment()
}

// Content is literal text. It is never modified once created.
type Content string

// Placeholder is an unresolved substitution point. It renders as ${name}.
type Placeholder string

func (Content) lineSegment()     {}
func (Placeholder) lineSegment() {}
func (*Block) lineSegment()      {}

// Line is a single output line made of segments.
type Line []LineSegment

// Block is one or more lines of text. Blocks embedded in a line keep the
// indentation of the text printed before them on that line.
//
// A Block owns its nested blocks; Set and Join store clones or take ownership,
// they never share a subtree between two parents.
type Block struct {
	Lines []Line
}

// Empty returns a block with no lines. It renders as the empty string.
func Empty() *Block {
	return &Block{}
}

// Text returns a single line block holding s as one Content segment. Newlines
// in s are written as they are, without the prefix of the surrounding line.
func Text(s string) *Block {
	return &Block{Lines: []Line{{Content(s)}}}
}

// Lines returns a block with one line per line of s, so every line of s
// lines up with the first when embedded.
func Lines(s string) *Block {
	parts := strings.Split(s, "\n")
	lines := make([]Line, len(parts))
	for i, part := range parts {
		lines[i] = Line{Content(part)}
	}
	return &Block{Lines: lines}
}

// Set replaces every unresolved placeholder called name with a copy of content.
// Placeholders resolved by an earlier call are left alone, and names that do
// not occur are ignored. Set returns b so calls can be chained.
func (b *Block) Set(name string, content *Block) *Block {
	if content == nil {
		content = Empty()
	}
	for _, line := range b.Lines {
		for i, seg := range line {
			if p, ok := seg.(Placeholder); ok && string(p) == name {
				line[i] = content.Clone()
			}
		}
	}
	return b
}

// SetText is Set with a literal string.
func (b *Block) SetText(name, text string) *Block {
	return b.Set(name, Text(text))
}

// Placeholders returns the names of the unresolved placeholders directly in b,
// in order of first appearance.
func (b *Block) Placeholders() []string {
	seen := map[string]struct{}{}
	var names []string
	for _, line := range b.Lines {
		for _, seg := range line {
			p, ok := seg.(Placeholder)
			if !ok {
				continue
			}
			if _, dup := seen[string(p)]; dup {
				continue
			}
			seen[string(p)] = struct{}{}
			names = append(names, string(p))
		}
	}
	return names
}

// Clone returns a deep copy of b.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	lines := make([]Line, len(b.Lines))
	for i, line := range b.Lines {
		cp := make(Line, len(line))
		for j, seg := range line {
			if nested, ok := seg.(*Block); ok {
				cp[j] = nested.Clone()
				continue
			}
			cp[j] = seg
		}
		lines[i] = cp
	}
	return &Block{Lines: lines}
}

// Append adds the lines of other to the end of b and returns b.
func (b *Block) Append(other *Block) *Block {
	if other == nil {
		return b
	}
	b.Lines = append(b.Lines, other.Clone().Lines...)
	return b
}

// Join returns a block with one line per input block, each line wrapping the
// whole input block. Join takes ownership of the blocks passed in.
func Join(blocks ...*Block) *Block {
	lines := make([]Line, 0, len(blocks))
	for _, block := range blocks {
		if block == nil {
			block = Empty()
		}
		lines = append(lines, Line{block})
	}
	return &Block{Lines: lines}
}

// JoinMap maps every item to a block and joins the results. The mapper is told
// where each item sits in the sequence.
func JoinMap[T any](items []T, mapper func(item T, pos Position) *Block) *Block {
	n := len(items)
	blocks := make([]*Block, 0, n)
	for i, item := range items {
		blocks = append(blocks, mapper(item, positionOf(i, n)))
	}
	return Join(blocks...)
}

// JoinSeq is JoinMap over an iterator.
func JoinSeq[T any](seq iter.Seq[T], mapper func(item T, pos Position) *Block) *Block {
	var items []T
	for item := range seq {
		items = append(items, item)
	}
	return JoinMap(items, mapper)
}

// String renders the block.
func (b *Block) String() string {
	var sb strings.Builder
	b.writeTo(&sb, "")
	return sb.String()
}

// WriteTo renders the block into w.
func (b *Block) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (b *Block) writeTo(sb *strings.Builder, prefix string) {
	if b == nil {
		return
	}
	for i, line := range b.Lines {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(prefix)
		}
		line.writeTo(sb, prefix)
	}
}

func (l Line) writeTo(sb *strings.Builder, prefix string) {
	sub := prefix
	for _, seg := range l {
		switch s := seg.(type) {
		case Content:
			sb.WriteString(string(s))
			sub += string(s)
		case Placeholder:
			sb.WriteString("${")
			sb.WriteString(string(s))
			sb.WriteString("}")
		case *Block:
			s.writeTo(sb, whitespaceOf(sub))
		}
	}
}

// whitespaceOf maps every character of s to a space, keeping tabs.
func whitespaceOf(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
