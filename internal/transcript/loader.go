package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidquiz/internal/cache"
	"vidquiz/internal/youtube"
)

// ErrNotAvailable marks the normal negative outcome: the video exists but
// has no usable transcript. It is never cached, so a video whose captions
// are enabled later is picked up without manual eviction.
var ErrNotAvailable = errors.New("transcript not available")

// Provider fetches timed caption segments for a video id.
type Provider interface {
	FetchTranscript(ctx context.Context, videoID string) ([]youtube.Segment, error)
}

// Loader resolves transcripts cache-first and writes through on miss.
// The check-then-write sequence is deliberately unlocked: two concurrent
// first-fetches for the same video both call the provider and both write
// the same text, which is an accepted idempotent race.
type Loader struct {
	store    cache.Store
	provider Provider
}

func NewLoader(store cache.Store, provider Provider) *Loader {
	return &Loader{store: store, provider: provider}
}

// Load returns the transcript text for videoID and whether it was served
// from cache.
func (l *Loader) Load(ctx context.Context, videoID string) (string, bool, error) {
	key := cache.TranscriptKey(videoID)

	text, err := l.store.Get(ctx, key)
	if err == nil {
		return text, true, nil
	}
	if !errors.Is(err, cache.ErrNotFound) {
		return "", false, err
	}

	segments, err := l.provider.FetchTranscript(ctx, videoID)
	if err != nil {
		if errors.Is(err, youtube.ErrTranscriptsDisabled) || errors.Is(err, youtube.ErrNoTranscript) {
			return "", false, fmt.Errorf("%w: %v", ErrNotAvailable, err)
		}
		return "", false, fmt.Errorf("fetch transcript for %s: %w", videoID, err)
	}

	text = joinSegments(segments)
	if strings.TrimSpace(text) == "" {
		return "", false, ErrNotAvailable
	}

	if err := l.store.Set(ctx, key, text, 0); err != nil {
		return "", false, err
	}
	return text, false, nil
}

func joinSegments(segments []youtube.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment.Text == "" {
			continue
		}
		parts = append(parts, segment.Text)
	}
	return strings.Join(parts, " ")
}
