// Package qrmarker reads frame ordinals from QR code markers.
package qrmarker

import (
	"regexp"
	"strconv"
	"strings"
)

// markerPattern matches "<optional label> Frame <integer>".
var markerPattern = regexp.MustCompile(`^(?:(.*\S)\s+)?Frame\s+(\d+)$`)

// ParseMarker extracts the label and ordinal from marker text.
// It returns false for any text that does not match the grammar, including
// ordinals that do not fit in an int.
func ParseMarker(text string) (label string, ordinal int, ok bool) {
	m := markerPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return m[1], n, true
}

// FormatMarker builds marker text for an ordinal, the inverse of ParseMarker.
func FormatMarker(label string, ordinal int) string {
	if label == "" {
		return "Frame " + strconv.Itoa(ordinal)
	}
	return label + " Frame " + strconv.Itoa(ordinal)
}
