package wordml

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/tsawler/wordml/docx"
	"github.com/tsawler/wordml/opc"
)

// ParseOptions holds configuration for a parse.
type ParseOptions struct {
	logger *log.Logger

	// Media
	imageConcurrency int
	skipImages       bool

	// Optional parts
	skipHeadersFooters bool
	skipMetadata       bool

	// Image text recognition
	recognizer    opc.ImageRecognizer
	recognizeText bool
	ocrLanguage   string
}

// defaultOptions returns the default parse options.
func defaultOptions() ParseOptions {
	return ParseOptions{
		logger: log.New(io.Discard),
	}
}

// clone creates a copy of ParseOptions.
func (o ParseOptions) clone() ParseOptions {
	return ParseOptions{
		logger:             o.logger,
		imageConcurrency:   o.imageConcurrency,
		skipImages:         o.skipImages,
		skipHeadersFooters: o.skipHeadersFooters,
		skipMetadata:       o.skipMetadata,
		recognizer:         o.recognizer,
		recognizeText:      o.recognizeText,
		ocrLanguage:        o.ocrLanguage,
	}
}

// docxOptions converts the options for a docx parse session. The recognizer
// is filled in by the caller once OCR is set up.
func (o ParseOptions) docxOptions() docx.Options {
	return docx.Options{
		Logger:             o.logger,
		ImageConcurrency:   o.imageConcurrency,
		SkipImages:         o.skipImages,
		SkipHeadersFooters: o.skipHeadersFooters,
		SkipMetadata:       o.skipMetadata,
		Recognizer:         o.recognizer,
	}
}
