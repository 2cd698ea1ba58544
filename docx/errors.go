package docx

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequiredPart = errors.New("docx: required part missing")
	ErrMalformedXML        = errors.New("docx: malformed XML")
)

// PartError reports a failure tied to one package part.
type PartError struct {
	Part string
	Err  error
}

func (e *PartError) Error() string {
	return fmt.Sprintf("docx: %s: %v", e.Part, e.Err)
}

func (e *PartError) Unwrap() error {
	return e.Err
}
