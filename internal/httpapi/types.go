package httpapi

import "vidquiz/internal/quiz"

// videoRequest is the shared request shape: callers send either a video
// URL or a bare video id; the id wins when both are present.
type videoRequest struct {
	VideoURL string `json:"video_url,omitempty"`
	VideoID  string `json:"video_id,omitempty"`
}

type chatRequest struct {
	videoRequest
	Question string `json:"question"`
}

type quizRequest struct {
	videoRequest
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"num_questions"`
}

type verifyRequest struct {
	QuizID      string `json:"quiz_id"`
	UserAnswers []int  `json:"user_answers"`
}

type transcriptResponse struct {
	VideoID    string `json:"video_id"`
	Transcript string `json:"transcript"`
	Cached     bool   `json:"cached"`
}

type summaryResponse struct {
	VideoID string `json:"video_id"`
	Summary string `json:"summary"`
}

type topicsResponse struct {
	VideoID string `json:"video_id"`
	Topics  string `json:"topics"`
}

type chatResponse struct {
	VideoID string `json:"video_id"`
	Answer  string `json:"answer"`
}

type quizResponse struct {
	VideoID    string                `json:"video_id"`
	QuizID     string                `json:"quiz_id"`
	Difficulty string                `json:"difficulty"`
	Questions  []quiz.PublicQuestion `json:"questions"`
}

type verifyResponse struct {
	QuizID  string `json:"quiz_id"`
	Results []bool `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
