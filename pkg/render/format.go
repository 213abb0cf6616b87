package render

import (
	"strings"

	"github.com/vadim-stepanov/grid/pkg/errors"
)

// Format identifies an output format.
type Format string

const (
	// FormatSVG renders blocks as a vector graphic.
	FormatSVG Format = "svg"

	// FormatJSON exports the layout as structured data.
	FormatJSON Format = "json"

	// FormatText renders an ASCII diagram.
	FormatText Format = "text"
)

// Formats lists all supported output formats.
func Formats() []Format {
	return []Format{FormatSVG, FormatJSON, FormatText}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "svg":
		return FormatSVG, nil
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unknown output format: %q (supported: %s)", s, formatNames())
	}
}

// formatNames returns the supported format names, comma-separated.
func formatNames() string {
	names := make([]string, len(Formats()))
	for i, f := range Formats() {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}
