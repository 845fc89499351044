package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("cache entry not found")
	ErrUnavailable = errors.New("cache store unavailable")
)

// Store is a flat string key-value store with optional per-entry expiry.
// A ttl of zero means the entry persists until explicitly evicted.
// Implementations must distinguish a miss (ErrNotFound) from a store
// failure (ErrUnavailable) so callers never mask availability problems
// as "regenerate".
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

func TranscriptKey(videoID string) string {
	return "transcript:" + videoID
}

func QuizKey(quizID string) string {
	return "quiz:" + quizID
}
