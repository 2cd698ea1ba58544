// Package xmlutil decodes package parts with encoding/xml, handling byte
// order marks and non-UTF-8 encoding declarations.
package xmlutil

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// NewDecoder returns a decoder for data. A leading byte order mark selects
// the Unicode encoding and is stripped; otherwise the encoding declared in
// the XML prolog is honoured.
func NewDecoder(data []byte) *xml.Decoder {
	var r io.Reader = bytes.NewReader(data)

	transcoded := hasBOM(data)
	if transcoded {
		r = transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	}

	d := xml.NewDecoder(r)
	d.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		// Input is already UTF-8 once the BOM has been honoured, even if the
		// prolog still says utf-16.
		if transcoded && strings.HasPrefix(strings.ToLower(label), "utf-16") {
			return input, nil
		}
		return charset.NewReaderLabel(label, input)
	}
	return d
}

// Unmarshal decodes data into v using NewDecoder.
func Unmarshal(data []byte, v any) error {
	return NewDecoder(data).Decode(v)
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, bomUTF8) ||
		bytes.HasPrefix(data, bomUTF16BE) ||
		bytes.HasPrefix(data, bomUTF16LE)
}

// Attr returns the value of the attribute with the given local name.
func Attr(start xml.StartElement, local string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// ParseInt parses a decimal measurement. Values written with a fractional
// part (some producers emit "720.0") are truncated.
func ParseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// ParseInt64 is ParseInt for EMU-sized values.
func ParseInt64(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int64(f), true
}

// IntPtr returns a pointer to the parsed value of s, or nil when s is empty
// or not a number.
func IntPtr(s string) *int {
	n, ok := ParseInt(s)
	if !ok {
		return nil
	}
	return &n
}

// OnOff interprets an ST_OnOff value. An absent value means true.
func OnOff(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "0", "false", "off":
		return false
	}
	return true
}
