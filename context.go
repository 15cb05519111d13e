package blockgen

import (
	"fmt"
	"strings"
)

// Values maps placeholder names to content. Entries may be a *Block, a
// string, a []string (one line per element), a fmt.Stringer or any value
// printable with fmt.Sprint.
type Values map[string]any

// SetValues calls Set for every entry of values.
func (b *Block) SetValues(values Values) *Block {
	for name, v := range values {
		b.Set(name, toBlock(v))
	}
	return b
}

func toBlock(v any) *Block {
	switch v := v.(type) {
	case nil:
		return Empty()
	case *Block:
		return v
	case Block:
		return &v
	case string:
		return Text(v)
	case []string:
		return Lines(strings.Join(v, "\n"))
	case fmt.Stringer:
		return Text(v.String())
	default:
		return Text(fmt.Sprint(v))
	}
}

// valuesOf accepts the data shapes a caller outside the package may hand in.
func valuesOf(data any) (Values, error) {
	switch d := data.(type) {
	case nil:
		return nil, nil
	case Values:
		return d, nil
	case map[string]any:
		return Values(d), nil
	case map[string]string:
		v := make(Values, len(d))
		for k, s := range d {
			v[k] = s
		}
		return v, nil
	case map[string]*Block:
		v := make(Values, len(d))
		for k, b := range d {
			v[k] = b
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported data type %T, want blockgen.Values", data)
	}
}
