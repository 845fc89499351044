package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vidquiz/internal/quiz"
	"vidquiz/internal/transcript"
)

const testVideoID = "dQw4w9WgXcQ"

type fakePipeline struct {
	transcript string
	cached     bool
	summary    string
	topics     string
	answer     string
	err        error

	lastVideoID  string
	lastQuestion string
}

func (f *fakePipeline) LoadTranscript(_ context.Context, videoID string) (string, bool, error) {
	f.lastVideoID = videoID
	return f.transcript, f.cached, f.err
}

func (f *fakePipeline) Summarize(_ context.Context, videoID string) (string, error) {
	f.lastVideoID = videoID
	return f.summary, f.err
}

func (f *fakePipeline) ExtractTopics(_ context.Context, videoID string) (string, error) {
	f.lastVideoID = videoID
	return f.topics, f.err
}

func (f *fakePipeline) AnswerQuestion(_ context.Context, videoID, question string) (string, error) {
	f.lastVideoID = videoID
	f.lastQuestion = question
	return f.answer, f.err
}

type fakeQuizService struct {
	quizID    string
	questions []quiz.PublicQuestion
	results   []bool
	err       error

	lastQuizID  string
	lastAnswers []int
	lastCount   int
}

func (f *fakeQuizService) Generate(_ context.Context, _ string, _ quiz.Difficulty, count int) (string, []quiz.PublicQuestion, error) {
	f.lastCount = count
	if f.err != nil {
		return "", nil, f.err
	}
	return f.quizID, f.questions, nil
}

func (f *fakeQuizService) Verify(_ context.Context, quizID string, answers []int) ([]bool, error) {
	f.lastQuizID = quizID
	f.lastAnswers = answers
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestHandleTranscriptResolvesURL(t *testing.T) {
	pipeline := &fakePipeline{transcript: "the text", cached: true}
	api := NewAPI(pipeline, &fakeQuizService{})

	rec := postJSON(t, api.HandleTranscript, "/transcript", map[string]string{
		"video_url": "https://www.youtube.com/watch?v=" + testVideoID,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if pipeline.lastVideoID != testVideoID {
		t.Fatalf("resolved video id = %q, want %q", pipeline.lastVideoID, testVideoID)
	}

	var resp transcriptResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Transcript != "the text" || !resp.Cached || resp.VideoID != testVideoID {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleTranscriptPrefersVideoID(t *testing.T) {
	pipeline := &fakePipeline{transcript: "text"}
	api := NewAPI(pipeline, &fakeQuizService{})

	rec := postJSON(t, api.HandleTranscript, "/transcript", map[string]string{
		"video_url": "https://youtu.be/aaaaaaaaaaa",
		"video_id":  testVideoID,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if pipeline.lastVideoID != testVideoID {
		t.Fatalf("video_id should win over video_url, got %q", pipeline.lastVideoID)
	}
}

func TestHandleTranscriptInvalidInput(t *testing.T) {
	api := NewAPI(&fakePipeline{}, &fakeQuizService{})

	rec := postJSON(t, api.HandleTranscript, "/transcript", map[string]string{
		"video_url": "https://example.com/nothing",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != codeInvalidInput {
		t.Fatalf("code = %q, want %q", resp.Code, codeInvalidInput)
	}
}

func TestHandleTranscriptNotAvailable(t *testing.T) {
	api := NewAPI(&fakePipeline{err: transcript.ErrNotAvailable}, &fakeQuizService{})

	rec := postJSON(t, api.HandleTranscript, "/transcript", map[string]string{"video_id": testVideoID})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != codeTranscriptNotAvailable {
		t.Fatalf("code = %q, want %q", resp.Code, codeTranscriptNotAvailable)
	}
}

func TestHandleTranscriptDependencyFailure(t *testing.T) {
	api := NewAPI(&fakePipeline{err: errors.New("backend down")}, &fakeQuizService{})

	rec := postJSON(t, api.HandleTranscript, "/transcript", map[string]string{"video_id": testVideoID})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != codeDependencyFailure {
		t.Fatalf("code = %q, want %q", resp.Code, codeDependencyFailure)
	}
}

func TestHandleChat(t *testing.T) {
	pipeline := &fakePipeline{answer: "42"}
	api := NewAPI(pipeline, &fakeQuizService{})

	rec := postJSON(t, api.HandleChat, "/chat", map[string]string{
		"video_id": testVideoID,
		"question": "what is the answer?",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if pipeline.lastQuestion != "what is the answer?" {
		t.Fatalf("question not forwarded: %q", pipeline.lastQuestion)
	}
}

func TestHandleGenerateQuiz(t *testing.T) {
	quizzes := &fakeQuizService{
		quizID: "q-123",
		questions: []quiz.PublicQuestion{
			{Prompt: "Q1?", Options: []string{"a", "b", "c", "d"}},
		},
	}
	api := NewAPI(&fakePipeline{}, quizzes)

	rec := postJSON(t, api.HandleGenerateQuiz, "/generate-quiz", map[string]any{
		"video_id":      testVideoID,
		"difficulty":    "medium",
		"num_questions": 1,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	body := rec.Body.String()
	if strings.Contains(body, `"answer"`) {
		t.Fatalf("quiz response leaks answers: %s", body)
	}

	var resp quizResponse
	if err := json.NewDecoder(strings.NewReader(body)).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.QuizID != "q-123" || len(resp.Questions) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestHandleGenerateQuizDefaultsCount(t *testing.T) {
	quizzes := &fakeQuizService{quizID: "q-1"}
	api := NewAPI(&fakePipeline{}, quizzes)

	rec := postJSON(t, api.HandleGenerateQuiz, "/generate-quiz", map[string]any{
		"video_id":   testVideoID,
		"difficulty": "easy",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if quizzes.lastCount != defaultNumQuestions {
		t.Fatalf("default count = %d, want %d", quizzes.lastCount, defaultNumQuestions)
	}
}

func TestHandleGenerateQuizBadDifficulty(t *testing.T) {
	api := NewAPI(&fakePipeline{}, &fakeQuizService{})

	rec := postJSON(t, api.HandleGenerateQuiz, "/generate-quiz", map[string]any{
		"video_id":   testVideoID,
		"difficulty": "impossible",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != codeInvalidInput {
		t.Fatalf("code = %q, want %q", resp.Code, codeInvalidInput)
	}
}

func TestHandleGenerateQuizMalformedGeneration(t *testing.T) {
	api := NewAPI(&fakePipeline{}, &fakeQuizService{err: quiz.ErrMalformedGeneration})

	rec := postJSON(t, api.HandleGenerateQuiz, "/generate-quiz", map[string]any{
		"video_id":   testVideoID,
		"difficulty": "hard",
	})

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != codeDependencyFailure {
		t.Fatalf("code = %q, want %q", resp.Code, codeDependencyFailure)
	}
}

func TestHandleVerifyAnswers(t *testing.T) {
	quizzes := &fakeQuizService{results: []bool{true, false, true}}
	api := NewAPI(&fakePipeline{}, quizzes)

	rec := postJSON(t, api.HandleVerifyAnswers, "/verify-answers", map[string]any{
		"quiz_id":      "q-123",
		"user_answers": []int{1, 2, 3},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if quizzes.lastQuizID != "q-123" || len(quizzes.lastAnswers) != 3 {
		t.Fatalf("submission not forwarded: %q %v", quizzes.lastQuizID, quizzes.lastAnswers)
	}

	var resp verifyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Results) != 3 || !resp.Results[0] || resp.Results[1] {
		t.Fatalf("unexpected results: %v", resp.Results)
	}
}

func TestHandleVerifyAnswersNotFound(t *testing.T) {
	api := NewAPI(&fakePipeline{}, &fakeQuizService{err: quiz.ErrQuizNotFound})

	rec := postJSON(t, api.HandleVerifyAnswers, "/verify-answers", map[string]any{
		"quiz_id":      "nonexistent-id",
		"user_answers": []int{0, 0, 0},
	})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != codeQuizNotFound {
		t.Fatalf("code = %q, want %q", resp.Code, codeQuizNotFound)
	}
}

func TestHandleVerifyAnswersRequiresQuizID(t *testing.T) {
	api := NewAPI(&fakePipeline{}, &fakeQuizService{})

	rec := postJSON(t, api.HandleVerifyAnswers, "/verify-answers", map[string]any{
		"user_answers": []int{0},
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandlersRejectWrongMethod(t *testing.T) {
	api := NewAPI(&fakePipeline{}, &fakeQuizService{})

	req := httptest.NewRequest(http.MethodGet, "/transcript", nil)
	rec := httptest.NewRecorder()
	api.HandleTranscript(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("Allow header = %q", allow)
	}
}

func TestHandlersRejectInvalidJSON(t *testing.T) {
	api := NewAPI(&fakePipeline{}, &fakeQuizService{})

	req := httptest.NewRequest(http.MethodPost, "/generate-quiz", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	api.HandleGenerateQuiz(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
