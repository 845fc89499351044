package httpapi

import (
	"context"

	"vidquiz/internal/quiz"
)

// Pipeline is the slice of the orchestrator the handlers need.
type Pipeline interface {
	LoadTranscript(ctx context.Context, videoID string) (string, bool, error)
	Summarize(ctx context.Context, videoID string) (string, error)
	ExtractTopics(ctx context.Context, videoID string) (string, error)
	AnswerQuestion(ctx context.Context, videoID, question string) (string, error)
}

// QuizService is the quiz lifecycle surface the handlers need.
type QuizService interface {
	Generate(ctx context.Context, videoID string, difficulty quiz.Difficulty, count int) (string, []quiz.PublicQuestion, error)
	Verify(ctx context.Context, quizID string, answers []int) ([]bool, error)
}

type API struct {
	pipeline Pipeline
	quizzes  QuizService
}

func NewAPI(pipeline Pipeline, quizzes QuizService) *API {
	return &API{
		pipeline: pipeline,
		quizzes:  quizzes,
	}
}
