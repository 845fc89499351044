package httpapi

import "net/http"

func NewRouter(pipeline Pipeline, quizzes QuizService) http.Handler {
	api := NewAPI(pipeline, quizzes)

	mux := http.NewServeMux()
	mux.HandleFunc("/transcript", api.HandleTranscript)
	mux.HandleFunc("/generate-summary", api.HandleSummary)
	mux.HandleFunc("/generate-topics", api.HandleTopics)
	mux.HandleFunc("/chat", api.HandleChat)
	mux.HandleFunc("/generate-quiz", api.HandleGenerateQuiz)
	mux.HandleFunc("/verify-answers", api.HandleVerifyAnswers)
	mux.HandleFunc("/healthz", api.HandleHealth)

	return mux
}
