package youtube

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidVideoURL = errors.New("invalid video URL")

var (
	urlIDPattern  = regexp.MustCompile(`(?:v=|youtu\.be/|/shorts/|/embed/)([\w-]{11})`)
	bareIDPattern = regexp.MustCompile(`^[\w-]{11}$`)
)

// ExtractVideoID pulls the canonical 11-character video id out of a URL.
// A bare id passes through unchanged. Anything else is rejected rather
// than coerced.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidVideoURL
	}
	if bareIDPattern.MatchString(raw) {
		return raw, nil
	}
	match := urlIDPattern.FindStringSubmatch(raw)
	if match == nil {
		return "", ErrInvalidVideoURL
	}
	return match[1], nil
}

// IsVideoID reports whether s is already a canonical video id.
func IsVideoID(s string) bool {
	return bareIDPattern.MatchString(s)
}
