package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryGetMiss(t *testing.T) {
	store := NewMemory()

	if _, err := store.Get(context.Background(), "transcript:missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}
}

func TestMemorySetGetRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, TranscriptKey("abc123def45"), "hello world", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, TranscriptKey("abc123def45"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("Get = %q, want %q", got, "hello world")
	}
}

func TestMemoryZeroTTLNeverExpires(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	if err := store.Set(ctx, "transcript:v1", "text", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	now = now.Add(1000 * time.Hour)
	if _, err := store.Get(ctx, "transcript:v1"); err != nil {
		t.Fatalf("zero-ttl entry expired: %v", err)
	}
}

func TestMemoryTTLExpiry(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	if err := store.Set(ctx, QuizKey("q1"), "answers", time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	now = now.Add(59 * time.Minute)
	if _, err := store.Get(ctx, QuizKey("q1")); err != nil {
		t.Fatalf("entry expired early: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, QuizKey("q1")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expired Get = %v, want ErrNotFound", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expired entry not collected, Len = %d", store.Len())
	}
}

func TestMemoryOverwrite(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, "k", "old", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(ctx, "k", "new", 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := store.Get(ctx, "k")
	if err != nil || got != "new" {
		t.Fatalf("Get after overwrite = (%q, %v), want (new, nil)", got, err)
	}
}

func TestKeyNamespaces(t *testing.T) {
	if got := TranscriptKey("abc123def45"); got != "transcript:abc123def45" {
		t.Fatalf("TranscriptKey = %q", got)
	}
	if got := QuizKey("id-1"); got != "quiz:id-1" {
		t.Fatalf("QuizKey = %q", got)
	}
}
