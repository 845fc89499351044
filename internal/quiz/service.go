package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vidquiz/internal/cache"
)

const (
	// DefaultAnswerTTL is the secrecy window: how long an answer key stays
	// readable for verification after generation.
	DefaultAnswerTTL = time.Hour

	DefaultMaxQuestions = 20
)

var (
	ErrQuizNotFound         = errors.New("quiz not found or expired")
	ErrInvalidQuestionCount = errors.New("invalid question count")
	ErrTooManyAnswers       = errors.New("more answers than questions")
)

// QuestionSource produces validated questions for a video. The pipeline
// orchestrator satisfies this.
type QuestionSource func(ctx context.Context, videoID string, difficulty Difficulty, count int) ([]Question, error)

// Service owns the quiz lifecycle: it generates question sets, keeps the
// full answer key in the secrecy store for the TTL window, hands out only
// redacted views, and later verifies submissions against the stored key.
type Service struct {
	source       QuestionSource
	store        cache.Store
	ttl          time.Duration
	maxQuestions int

	// newID allows tests to pin quiz identifiers.
	newID func() string
}

func NewService(source QuestionSource, store cache.Store, ttl time.Duration, maxQuestions int) *Service {
	if ttl <= 0 {
		ttl = DefaultAnswerTTL
	}
	if maxQuestions <= 0 {
		maxQuestions = DefaultMaxQuestions
	}
	return &Service{
		source:       source,
		store:        store,
		ttl:          ttl,
		maxQuestions: maxQuestions,
		newID:        uuid.NewString,
	}
}

// storedQuiz is the persisted form, answers included. It is written once
// at generation time and read back once at verification time.
type storedQuiz struct {
	QuizID     string     `json:"quiz_id"`
	VideoID    string     `json:"video_id"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  time.Time  `json:"created_at"`
	Questions  []Question `json:"questions"`
}

// Generate runs the question source and, only on full success, mints a
// quiz id and persists the answer key. Nothing is written when the
// generated batch fails validation.
func (s *Service) Generate(ctx context.Context, videoID string, difficulty Difficulty, count int) (string, []PublicQuestion, error) {
	if count <= 0 || count > s.maxQuestions {
		return "", nil, fmt.Errorf("%w: %d (allowed 1-%d)", ErrInvalidQuestionCount, count, s.maxQuestions)
	}

	questions, err := s.source(ctx, videoID, difficulty, count)
	if err != nil {
		return "", nil, err
	}

	quizID := s.newID()
	stored := storedQuiz{
		QuizID:     quizID,
		VideoID:    videoID,
		Difficulty: difficulty,
		CreatedAt:  time.Now().UTC(),
		Questions:  questions,
	}

	payload, err := json.Marshal(stored)
	if err != nil {
		return "", nil, fmt.Errorf("encode quiz %s: %w", quizID, err)
	}
	if err := s.store.Set(ctx, cache.QuizKey(quizID), string(payload), s.ttl); err != nil {
		return "", nil, err
	}

	return quizID, Redact(questions), nil
}

// Verify compares submitted option indices against the stored answer key.
// A missing or expired key is reported as ErrQuizNotFound, never as
// all-incorrect, so callers can tell an expired session from wrong
// answers. Submitting fewer answers than questions is allowed; the
// missing positions count as incorrect. Only booleans leave here.
func (s *Service) Verify(ctx context.Context, quizID string, answers []int) ([]bool, error) {
	raw, err := s.store.Get(ctx, cache.QuizKey(quizID))
	if errors.Is(err, cache.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrQuizNotFound, quizID)
	}
	if err != nil {
		return nil, err
	}

	var stored storedQuiz
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decode stored quiz %s: %w", quizID, err)
	}

	if len(answers) > len(stored.Questions) {
		return nil, fmt.Errorf("%w: %d answers for %d questions", ErrTooManyAnswers, len(answers), len(stored.Questions))
	}

	results := make([]bool, len(stored.Questions))
	for idx, question := range stored.Questions {
		if idx >= len(answers) {
			continue
		}
		correct := question.CorrectIndex()
		results[idx] = correct >= 0 && answers[idx] == correct
	}
	return results, nil
}
