// Package catalog turns blueprint catalogs into validated production blueprints.
package catalog

import (
	"path/filepath"
	"strings"

	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

// Format names a catalog encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text", "txt" and "json", case-insensitively
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", &UnsupportedFormatError{Format: name}
	}
}

// DetectFormat guesses the format from a file name, falling back to text
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatText
}

// Load parses data in the given format
func Load(data []byte, format Format) ([]*production.Blueprint, error) {
	switch format {
	case FormatText, "":
		return Parse(string(data))
	case FormatJSON:
		return ParseJSON(data)
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
}
