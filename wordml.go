// Package wordml provides a fluent API for parsing WordprocessingML (.docx)
// documents into a resolved document model.
//
// Basic usage:
//
//	res, err := wordml.Open("report.docx").Parse(ctx)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(res.Document.Text())
//
// With options:
//
//	res, err := wordml.FromBytes(data).
//	    WithLogger(logger).
//	    SkipImages().
//	    SkipHeadersFooters().
//	    Parse(ctx)
//
// Every paragraph and run in the result carries fully resolved formatting,
// list paragraphs carry their rendered labels, and vertically merged table
// cells carry their row spans. For lower-level access see the docx and opc
// packages.
package wordml

import (
	"bytes"
	"errors"
	"io"
)

// ErrNotDOCX is returned when the input is not a WordprocessingML package.
var ErrNotDOCX = errors.New("wordml: input is not a DOCX package")

// Open returns a Parser for the file at filename. The file is opened when
// Parse is called and closed before it returns.
//
// Example:
//
//	res, err := wordml.Open("document.docx").Parse(ctx)
func Open(filename string) *Parser {
	return &Parser{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns a Parser over an in-memory package.
func FromBytes(data []byte) *Parser {
	return FromReader(bytes.NewReader(data), int64(len(data)))
}

// FromReader returns a Parser over r, which holds size bytes. The caller
// keeps ownership of r; it must stay readable until Parse returns.
func FromReader(r io.ReaderAt, size int64) *Parser {
	return &Parser{
		src:     r,
		size:    size,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	res := wordml.Must(wordml.Open("document.docx").Parse(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
