package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const optionsPerQuestion = 4

var (
	ErrInvalidDifficulty   = errors.New("invalid difficulty")
	ErrMalformedGeneration = errors.New("generation backend returned malformed questions")
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(raw string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(raw))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, raw)
	}
}

// PublicQuestion is the redacted view handed to callers. It has no answer
// field at all, so redaction is enforced by the type rather than by
// deleting fields at runtime.
type PublicQuestion struct {
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

// Question is the server-held form, answer included. Only the embedded
// PublicQuestion ever crosses the boundary.
type Question struct {
	PublicQuestion
	CorrectOption string `json:"answer"`
}

// CorrectIndex returns the zero-based position of the correct option, or
// -1 if the question is inconsistent.
func (q Question) CorrectIndex() int {
	for idx, option := range q.Options {
		if option == q.CorrectOption {
			return idx
		}
	}
	return -1
}

// Redact strips the answers, preserving question order and option order.
func Redact(questions []Question) []PublicQuestion {
	public := make([]PublicQuestion, 0, len(questions))
	for _, question := range questions {
		public = append(public, question.PublicQuestion)
	}
	return public
}

// ParseGenerated decodes the backend's raw response into validated
// questions. The backend is asked for an object with a "questions" array,
// but a bare array is tolerated. Any schema violation fails the whole
// batch; there are no best-effort partial results.
func ParseGenerated(raw string, want int) ([]Question, error) {
	var payload struct {
		Questions []generatedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil || payload.Questions == nil {
		var list []generatedQuestion
		if listErr := json.Unmarshal([]byte(raw), &list); listErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedGeneration, firstErr(err, listErr))
		}
		payload.Questions = list
	}

	if len(payload.Questions) != want {
		return nil, fmt.Errorf("%w: got %d questions, want %d", ErrMalformedGeneration, len(payload.Questions), want)
	}

	questions := make([]Question, 0, want)
	for idx, item := range payload.Questions {
		question, err := item.validate()
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrMalformedGeneration, idx, err)
		}
		questions = append(questions, question)
	}
	return questions, nil
}

type generatedQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

func (g generatedQuestion) validate() (Question, error) {
	if strings.TrimSpace(g.Question) == "" {
		return Question{}, errors.New("empty question text")
	}
	if len(g.Options) != optionsPerQuestion {
		return Question{}, fmt.Errorf("got %d options, want %d", len(g.Options), optionsPerQuestion)
	}

	seen := make(map[string]bool, optionsPerQuestion)
	answerMatches := 0
	for _, option := range g.Options {
		if strings.TrimSpace(option) == "" {
			return Question{}, errors.New("empty option")
		}
		if seen[option] {
			return Question{}, fmt.Errorf("duplicate option %q", option)
		}
		seen[option] = true
		if option == g.Answer {
			answerMatches++
		}
	}
	if answerMatches != 1 {
		return Question{}, fmt.Errorf("answer %q is not exactly one of the options", g.Answer)
	}

	return Question{
		PublicQuestion: PublicQuestion{Prompt: g.Question, Options: g.Options},
		CorrectOption:  g.Answer,
	}, nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
