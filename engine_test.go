package blockgen

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"views/map.blocks":         {Data: []byte(mapTemplates)},
		"views/partials/item.tmpl": {Data: []byte("item = - ${name}\n")},
		"views/README.md":          {Data: []byte("not a template")},
		"other.blocks":             {Data: []byte("outside = x\n")},
	}
}

func TestEngineLoad(t *testing.T) {
	e := NewEngineFS(testFS(), WithPrefix("views"))
	require.NoError(t, e.Load())
	assert.Equal(t, []string{"map", "partials/item"}, e.Files())

	b, err := e.Template("partials/item", "item")
	require.NoError(t, err)
	assert.Equal(t, "- x", b.SetText("name", "x").String())

	f, err := e.File("map.blocks")
	require.NoError(t, err)
	assert.Equal(t, "map", f.Name)
}

func TestEngineWithoutPrefix(t *testing.T) {
	e := NewEngineFS(testFS())
	require.NoError(t, e.Load())
	assert.Equal(t, []string{"other", "views/map", "views/partials/item"}, e.Files())
}

func TestEngineExtensions(t *testing.T) {
	e := NewEngineFS(testFS(), WithPrefix("views"), WithExtensions("TMPL"))
	require.NoError(t, e.Load())
	assert.Equal(t, []string{"partials/item"}, e.Files())
}

func TestEngineRender(t *testing.T) {
	e := NewEngineFS(testFS(), WithPrefix("views"))
	require.NoError(t, e.Load())

	var buf bytes.Buffer
	err := e.Render(&buf, "partials/item", "item", Values{"name": "rendered"})
	require.NoError(t, err)
	assert.Equal(t, "- rendered", buf.String())

	err = e.Render(&buf, "partials/item", "nope", nil)
	assert.True(t, errors.Is(err, ErrTemplateNotFound))

	err = e.Render(&buf, "nope", "item", nil)
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestEngineReload(t *testing.T) {
	fsys := fstest.MapFS{
		"a.blocks": {Data: []byte("t = one\n")},
	}
	e := NewEngineFS(fsys)
	require.NoError(t, e.Load())

	// same mod time: not parsed again
	fsys["a.blocks"] = &fstest.MapFile{Data: []byte("t = two\n")}
	require.NoError(t, e.Load())
	b, err := e.Template("a", "t")
	require.NoError(t, err)
	assert.Equal(t, "one", b.String())

	fsys["a.blocks"] = &fstest.MapFile{Data: []byte("t = three\n"), ModTime: time.Now().Add(time.Hour)}
	require.NoError(t, e.Load())
	b, err = e.Template("a", "t")
	require.NoError(t, err)
	assert.Equal(t, "three", b.String())

	delete(fsys, "a.blocks")
	require.NoError(t, e.Load())
	_, err = e.File("a")
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestEngineParseErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"good.blocks": {Data: []byte("t = ok\n")},
		"bad1.blocks": {Data: []byte("missing equals\n")},
		"bad2.blocks": {Data: []byte("t =\n  open\n")},
	}
	e := NewEngineFS(fsys)
	err := e.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))
	assert.Contains(t, err.Error(), "bad1:1:")
	assert.Contains(t, err.Error(), "bad2:1:")

	// files that parsed are still available
	_, err = e.Template("good", "t")
	require.NoError(t, err)

	// broken files are retried on the next load
	fsys["bad1.blocks"] = &fstest.MapFile{Data: []byte("t = fixed\n")}
	fsys["bad2.blocks"] = &fstest.MapFile{Data: []byte("t = fixed\n")}
	require.NoError(t, e.Load())
	assert.Equal(t, []string{"bad1", "bad2", "good"}, e.Files())
}

func TestEngineParseErrorsKeepUnchangedFiles(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fsys := fstest.MapFS{
		"good.blocks": {Data: []byte("t = ok\n")},
		"bad.blocks":  {Data: []byte("missing equals\n")},
	}
	e := NewEngineFS(fsys, WithLogger(logger))
	require.Error(t, e.Load())
	require.Error(t, e.Load())

	out := logs.String()
	assert.Equal(t, 1, strings.Count(out, `msg="template file parsed" file=good`))
	assert.Equal(t, 1, strings.Count(out, `msg="template file unchanged" file=good`))
	assert.Equal(t, 2, strings.Count(out, `msg="template file failed to parse" file=bad`))

	f, err := e.File("good")
	require.NoError(t, err)
	assert.NotZero(t, f.ParsedAt)
}

func TestEngineLogsDuplicates(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fsys := fstest.MapFS{
		"dup.blocks": {Data: []byte("t = one\nt = two\n")},
	}
	e := NewEngineFS(fsys, WithLogger(logger))
	require.NoError(t, e.Load())

	out := logs.String()
	assert.Contains(t, out, "duplicate template name")
	assert.Contains(t, out, "template=t")
	assert.Equal(t, 1, strings.Count(out, "template file parsed"))

	b, err := e.Template("dup", "t")
	require.NoError(t, err)
	assert.Equal(t, "one", b.String())
}

func TestValidExt(t *testing.T) {
	tests := []struct {
		exts     []string
		ext      string
		expected bool
	}{
		{[]string{".blocks", ".tmpl"}, ".blocks", true},
		{[]string{".blocks", ".tmpl"}, "tmpl", true},
		{[]string{"BLOCKS"}, ".blocks", true},
		{[]string{".blocks"}, ".md", false},
		{[]string{".blocks"}, "", false},
		{nil, ".blocks", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, validExt(tt.exts, tt.ext), "%v %q", tt.exts, tt.ext)
	}
}
