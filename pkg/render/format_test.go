package render

import (
	"strings"
	"testing"

	"github.com/vadim-stepanov/grid/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{"json", FormatJSON, false},
		{"text", FormatText, false},
		{"txt", FormatText, false},
		{" SVG ", FormatSVG, false},
		{"bmp", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("ParseFormat(%q) error code = %q, want INVALID_FORMAT", tt.in, errors.GetCode(err))
			}
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatErrorListsSupported(t *testing.T) {
	_, err := ParseFormat("bmp")
	if err == nil {
		t.Fatal("ParseFormat accepted bmp")
	}
	msg := errors.UserMessage(err)
	for _, f := range Formats() {
		if !strings.Contains(msg, string(f)) {
			t.Errorf("error %q does not mention %q", msg, f)
		}
	}
}

func TestFormatExtension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatSVG, "svg"},
		{FormatJSON, "json"},
		{FormatText, "txt"},
	}
	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("%v.Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}
