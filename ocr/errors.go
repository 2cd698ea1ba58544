package ocr

import (
	"errors"
	"strings"
)

// ErrClosed is returned by a client that has been closed.
var ErrClosed = errors.New("ocr: client closed")

// splitLanguages turns "eng+fra" into its language codes.
func splitLanguages(lang string) []string {
	var out []string
	for _, l := range strings.Split(lang, "+") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return []string{"eng"}
	}
	return out
}
