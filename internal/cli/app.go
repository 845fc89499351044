package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"vidquiz/internal/pipeline"
	"vidquiz/internal/quiz"
	"vidquiz/internal/youtube"
)

const maxAttempts = 3

// App drives a terminal quiz session against one video, using the same
// service layer as the HTTP front end.
type App struct {
	Orchestrator *pipeline.Orchestrator
	Quizzes      *quiz.Service
}

// RunSummary prints a transcript summary for the video.
func (a *App) RunSummary(ctx context.Context, videoURL string, out io.Writer) error {
	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return err
	}

	summary, err := a.Orchestrator.Summarize(ctx, videoID)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, summary)
	return nil
}

// RunAsk answers a single question about the video from its transcript.
func (a *App) RunAsk(ctx context.Context, videoURL, question string, out io.Writer) error {
	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return err
	}

	answer, err := a.Orchestrator.AnswerQuestion(ctx, videoID, question)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, answer)
	return nil
}

// RunQuiz generates a quiz for the video, asks each question on the
// terminal, then verifies the collected answers server-side and prints
// the score.
func (a *App) RunQuiz(ctx context.Context, videoURL string, difficulty quiz.Difficulty, count int, in io.Reader, out io.Writer) error {
	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Generating a %s quiz with %d questions for %s...\n", difficulty, count, videoID)

	quizID, questions, err := a.Quizzes.Generate(ctx, videoID, difficulty, count)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	answers := make([]int, len(questions))

	for idx, question := range questions {
		printQuestion(out, idx+1, question)

		chosenIndex, ok := getAnswer(reader, out, len(question.Options))
		if !ok {
			fmt.Fprintln(out, "Skipping.")
			answers[idx] = -1
			continue
		}
		answers[idx] = chosenIndex
	}

	results, err := a.Quizzes.Verify(ctx, quizID, answers)
	if err != nil {
		return err
	}

	score := 0
	fmt.Fprintln(out)
	for idx, correct := range results {
		verdict := "wrong"
		if correct {
			verdict = "correct"
			score++
		}
		fmt.Fprintf(out, "Q%d: %s\n", idx+1, verdict)
	}
	fmt.Fprintf(out, "\nFinal score: %d/%d\n", score, len(results))
	return nil
}

func printQuestion(out io.Writer, number int, question quiz.PublicQuestion) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d: %s\n\n", number, question.Prompt)
	for idx, option := range question.Options {
		fmt.Fprintf(out, "%c. %s\n", 'A'+idx, option)
	}
	fmt.Fprintln(out)
}

func getAnswer(reader *bufio.Reader, out io.Writer, optionCount int) (int, bool) {
	if optionCount < 1 {
		return -1, false
	}

	maxLetter := byte('A' + optionCount - 1)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fmt.Fprintf(out, "Answer (A-%c): ", maxLetter)

		userAnswer, err := reader.ReadString('\n')
		if err != nil {
			return -1, false
		}

		userAnswer = strings.ToUpper(strings.TrimSpace(userAnswer))
		if len(userAnswer) == 1 {
			letter := userAnswer[0]
			if letter >= 'A' && letter <= maxLetter {
				return int(letter - 'A'), true
			}
		}

		fmt.Fprintf(out, "Please enter a letter between A and %c.\n", maxLetter)
	}
	return -1, false
}
