package httpapi

import (
	"net/http"

	"vidquiz/internal/quiz"
)

const defaultNumQuestions = 5

func (a *API) HandleTranscript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req videoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	videoID, err := resolveVideoID(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	text, cached, err := a.pipeline.LoadTranscript(r.Context(), videoID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transcriptResponse{
		VideoID:    videoID,
		Transcript: text,
		Cached:     cached,
	})
}

func (a *API) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req videoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	videoID, err := resolveVideoID(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	summary, err := a.pipeline.Summarize(r.Context(), videoID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{VideoID: videoID, Summary: summary})
}

func (a *API) HandleTopics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req videoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	videoID, err := resolveVideoID(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	topics, err := a.pipeline.ExtractTopics(r.Context(), videoID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, topicsResponse{VideoID: videoID, Topics: topics})
}

func (a *API) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	videoID, err := resolveVideoID(req.videoRequest)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	answer, err := a.pipeline.AnswerQuestion(r.Context(), videoID, req.Question)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{VideoID: videoID, Answer: answer})
}

func (a *API) HandleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req quizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	videoID, err := resolveVideoID(req.videoRequest)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	difficulty, err := quiz.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	count := req.NumQuestions
	if count == 0 {
		count = defaultNumQuestions
	}

	quizID, questions, err := a.quizzes.Generate(r.Context(), videoID, difficulty, count)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quizResponse{
		VideoID:    videoID,
		QuizID:     quizID,
		Difficulty: string(difficulty),
		Questions:  questions,
	})
}

func (a *API) HandleVerifyAnswers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.QuizID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "quiz_id is required", Code: codeInvalidInput})
		return
	}

	results, err := a.quizzes.Verify(r.Context(), req.QuizID, req.UserAnswers)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, verifyResponse{QuizID: req.QuizID, Results: results})
}

func (a *API) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
