package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"vidquiz/internal/pipeline"
	"vidquiz/internal/quiz"
	"vidquiz/internal/transcript"
	"vidquiz/internal/youtube"
)

// Stable outcome codes so callers can tell "try again" from "this video
// has no transcript" from "your quiz session expired".
const (
	codeInvalidInput            = "invalid_input"
	codeTranscriptNotAvailable  = "transcript_not_available"
	codeQuizNotFound            = "quiz_not_found"
	codeDependencyFailure       = "dependency_failure"
	msgTranscriptNotAvailable   = "transcript not available for this video"
	msgQuizNotFoundOrExpired    = "quiz not found or expired"
	msgDependencyFailureGeneric = "request failed due to an upstream dependency"
)

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, youtube.ErrInvalidVideoURL),
		errors.Is(err, pipeline.ErrInvalidRequest),
		errors.Is(err, quiz.ErrInvalidDifficulty),
		errors.Is(err, quiz.ErrInvalidQuestionCount),
		errors.Is(err, quiz.ErrTooManyAnswers):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: codeInvalidInput})
	case errors.Is(err, transcript.ErrNotAvailable):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgTranscriptNotAvailable, Code: codeTranscriptNotAvailable})
	case errors.Is(err, quiz.ErrQuizNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgQuizNotFoundOrExpired, Code: codeQuizNotFound})
	default:
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: msgDependencyFailureGeneric, Code: codeDependencyFailure})
	}
}

// resolveVideoID applies the id-wins rule and validates whichever input
// the caller supplied before anything external is touched.
func resolveVideoID(req videoRequest) (string, error) {
	if id := strings.TrimSpace(req.VideoID); id != "" {
		return youtube.ExtractVideoID(id)
	}
	if rawURL := strings.TrimSpace(req.VideoURL); rawURL != "" {
		return youtube.ExtractVideoID(rawURL)
	}
	return "", youtube.ErrInvalidVideoURL
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body", Code: codeInvalidInput})
		return false
	}
	return true
}

func writeMethodNotAllowed(w http.ResponseWriter, allowedMethod string) {
	w.Header().Set("Allow", allowedMethod)
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed", Code: codeInvalidInput})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
