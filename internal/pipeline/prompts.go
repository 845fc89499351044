package pipeline

import (
	"fmt"
	"strings"

	"vidquiz/internal/quiz"
)

func summaryInstruction(transcript string) string {
	return "Summarize this transcript:\n\n" + transcript
}

func topicsInstruction(transcript string) string {
	return "Extract the main topics from this transcript. Include approximate timestamps where the transcript content allows them to be derived:\n\n" + transcript
}

func answerInstruction(transcript, question string) string {
	var sb strings.Builder
	sb.WriteString("Answer the question based only on this context. Keep the answer brief.\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(transcript)
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	return sb.String()
}

func quizInstruction(transcript string, difficulty quiz.Difficulty, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d %s level multiple-choice quiz questions from the following transcript. ", count, difficulty)
	sb.WriteString("Each question must have 1 correct answer and 3 plausible distractors. ")
	sb.WriteString(`Respond with a JSON object holding a "questions" array where each item has keys "question", "options" (list of exactly 4 distinct strings) and "answer" (the correct option text, copied verbatim from options).`)
	sb.WriteString("\n\nTranscript:\n")
	sb.WriteString(transcript)
	return sb.String()
}

// clip bounds the transcript text placed into an instruction so very long
// videos do not blow the backend's context window.
func clip(transcript string, maxChars int) string {
	if maxChars <= 0 || len(transcript) <= maxChars {
		return transcript
	}
	return transcript[:maxChars] + "..."
}
