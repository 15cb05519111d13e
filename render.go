package blockgen

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin/render"
)

var (
	_ render.HTMLRender = (*TextRender)(nil)
	_ render.Render     = (*Render)(nil)
	_ render.Render     = BlockRender{}
)

var plainContentType = []string{"text/plain; charset=utf-8"}

// TextRender lets gin serve templates loaded by an Engine. Names passed to
// gin's Context.HTML take the form "file:template", and data is anything
// SetValues accepts as a map (Values, map[string]any, map[string]string).
type TextRender struct {
	e *Engine
}

// NewTextRender creates a new TextRender
func NewTextRender(e *Engine) *TextRender {
	return &TextRender{e: e}
}

// Instance returns a new render.Render
func (h *TextRender) Instance(name string, data any) render.Render {
	return &Render{e: h.e, name: name, data: data}
}

// Render renders a template entry with data and writes it to the response.
type Render struct {
	e    *Engine
	name string
	data any
}

// Render renders the template entry and writes it to w
func (r *Render) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	file, tmpl, err := splitEntry(r.name)
	if err != nil {
		return err
	}
	values, err := valuesOf(r.data)
	if err != nil {
		return fmt.Errorf(`[%s] %w`, r.name, err)
	}
	return r.e.Render(w, file, tmpl, values)
}

// WriteContentType writes a plain text content type to the response header if not set
func (r *Render) WriteContentType(w http.ResponseWriter) {
	writeContentType(w)
}

// BlockRender serves an already composed Block.
type BlockRender struct {
	Block *Block
}

func (b BlockRender) Render(w http.ResponseWriter) error {
	b.WriteContentType(w)
	_, err := b.Block.WriteTo(w)
	return err
}

func (b BlockRender) WriteContentType(w http.ResponseWriter) {
	writeContentType(w)
}

func writeContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = plainContentType
	}
}

func splitEntry(entry string) (file, tmpl string, err error) {
	i := strings.LastIndexByte(entry, ':')
	if i <= 0 || i == len(entry)-1 {
		return "", "", fmt.Errorf(`invalid entry "%s", want "file:template"`, entry)
	}
	return entry[:i], entry[i+1:], nil
}
