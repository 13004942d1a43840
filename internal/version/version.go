// Package version parses and compares three-segment semantic versions.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/castleops/featurectl/internal/messages"
)

// Normalize strips an optional leading "v" and validates the X.Y.Z form.
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf(messages.VersionEmpty)
	}
	trimmed = strings.TrimPrefix(trimmed, "v")
	if _, err := parse(trimmed); err != nil {
		return "", err
	}
	return trimmed, nil
}

// Compare compares two semantic versions in X.Y.Z form.
// It returns -1 if a < b, 0 if a == b, and 1 if a > b.
func Compare(a string, b string) (int, error) {
	aParts, err := parse(a)
	if err != nil {
		return 0, err
	}
	bParts, err := parse(b)
	if err != nil {
		return 0, err
	}
	for i := 0; i < len(aParts); i++ {
		if aParts[i] < bParts[i] {
			return -1, nil
		}
		if aParts[i] > bParts[i] {
			return 1, nil
		}
	}
	return 0, nil
}

// parse converts a semantic version into numeric components.
func parse(raw string) ([3]int, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	parts := strings.Split(trimmed, ".")
	if len(parts) != 3 {
		return [3]int{}, fmt.Errorf(messages.VersionInvalidFmt, raw)
	}
	var out [3]int
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return [3]int{}, fmt.Errorf(messages.VersionInvalidSegmentFmt, part, err)
		}
		out[i] = value
	}
	return out, nil
}
