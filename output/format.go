package output

import (
	"fmt"
	"strings"
)

// Format represents the available output formats
type Format string

const (
	// FormatTable is the default human-readable column format
	FormatTable Format = "table"
	// FormatJSON outputs an indented JSON array
	FormatJSON Format = "json"
	// FormatYAML outputs a YAML sequence
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat converts a user supplied name into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (must be table, json or yaml)", s)
	}
}
