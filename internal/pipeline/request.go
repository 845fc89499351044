package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"vidquiz/internal/quiz"
	"vidquiz/internal/youtube"
)

var ErrInvalidRequest = errors.New("invalid pipeline request")

// Op selects which derivation stage a request runs. Exactly one stage
// runs per request; quiz verification never enters the pipeline because
// it needs no transcript.
type Op string

const (
	OpSummarize Op = "summarize"
	OpTopics    Op = "topics"
	OpAnswer    Op = "answer"
	OpQuiz      Op = "quiz"
)

// Request carries one operation and the fields that operation needs.
// Unused fields stay zero; stages never read another stage's parameters.
type Request struct {
	Op      Op
	VideoID string

	// OpAnswer
	Question string

	// OpQuiz
	Difficulty    quiz.Difficulty
	QuestionCount int
}

// Validate rejects malformed requests before any external call is made.
func (r Request) Validate() error {
	switch r.Op {
	case OpSummarize, OpTopics, OpAnswer, OpQuiz:
	default:
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidRequest, r.Op)
	}

	if !youtube.IsVideoID(r.VideoID) {
		return fmt.Errorf("%w: malformed video id %q", ErrInvalidRequest, r.VideoID)
	}

	switch r.Op {
	case OpAnswer:
		if strings.TrimSpace(r.Question) == "" {
			return fmt.Errorf("%w: question is required", ErrInvalidRequest)
		}
	case OpQuiz:
		if _, err := quiz.ParseDifficulty(string(r.Difficulty)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
		}
		if r.QuestionCount <= 0 {
			return fmt.Errorf("%w: question count must be positive", ErrInvalidRequest)
		}
	}
	return nil
}

// State is the working memory of one request: created fresh, threaded
// through the loader and the selected stage, discarded with the response.
type State struct {
	VideoID    string
	Transcript string
	FromCache  bool

	Question      string
	Difficulty    quiz.Difficulty
	QuestionCount int

	Summary   string
	Topics    string
	Answer    string
	Questions []quiz.Question
}
