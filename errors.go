package blockgen

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is matched by every *ParseError.
	ErrSyntax = errors.New("syntax error")
	// ErrTemplateNotFound is returned when a file has no template with the requested name.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrFileNotFound is returned by the Engine for names it has not loaded.
	ErrFileNotFound = errors.New("file not loaded")
	// ErrArity is returned by File.Call when the argument count does not match the placeholders.
	ErrArity = errors.New("wrong number of arguments")
)

// ParseError reports a grammar violation in template source.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s:%d: %s", file, e.Line, e.Message)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}

func syntaxErrorf(file string, line int, format string, args ...any) *ParseError {
	return &ParseError{
		File:    file,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}
