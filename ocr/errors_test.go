package ocr

import (
	"reflect"
	"testing"
)

func TestSplitLanguages(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"eng", []string{"eng"}},
		{"eng+fra", []string{"eng", "fra"}},
		{" deu + ita ", []string{"deu", "ita"}},
		{"", []string{"eng"}},
		{"+", []string{"eng"}},
	}

	for _, tt := range tests {
		if got := splitLanguages(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitLanguages(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
