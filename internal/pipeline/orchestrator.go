package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vidquiz/internal/llm"
	"vidquiz/internal/quiz"
	"vidquiz/internal/transcript"
	"vidquiz/internal/youtube"
)

// DefaultMaxPromptChars bounds how much transcript text goes into one
// instruction.
const DefaultMaxPromptChars = 48000

// stage is one node of the request graph. Every stage today fans out from
// the shared transcript load, but the table keeps room for stages that do
// not, and for running several stages against one loaded transcript.
type stage struct {
	name            string
	needsTranscript bool
	run             func(ctx context.Context, state *State) error
}

// Orchestrator sequences one request: validate, load the transcript once,
// run exactly the selected stage. It holds no state between requests.
type Orchestrator struct {
	loader         *transcript.Loader
	backend        llm.Client
	logger         *slog.Logger
	maxPromptChars int
	stages         map[Op]stage
}

func New(loader *transcript.Loader, backend llm.Client, logger *slog.Logger, maxPromptChars int) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if maxPromptChars <= 0 {
		maxPromptChars = DefaultMaxPromptChars
	}

	o := &Orchestrator{
		loader:         loader,
		backend:        backend,
		logger:         logger,
		maxPromptChars: maxPromptChars,
	}
	o.stages = map[Op]stage{
		OpSummarize: {name: "summarizer", needsTranscript: true, run: o.runSummarizer},
		OpTopics:    {name: "topic_extractor", needsTranscript: true, run: o.runTopicExtractor},
		OpAnswer:    {name: "responder", needsTranscript: true, run: o.runResponder},
		OpQuiz:      {name: "question_planner", needsTranscript: true, run: o.runQuestionPlanner},
	}
	return o
}

// Run executes one request. Any stage error aborts the request and the
// partially populated state is discarded.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*State, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	selected, ok := o.stages[req.Op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidRequest, req.Op)
	}

	state := &State{
		VideoID:       req.VideoID,
		Question:      req.Question,
		Difficulty:    req.Difficulty,
		QuestionCount: req.QuestionCount,
	}

	start := time.Now()
	if selected.needsTranscript {
		text, fromCache, err := o.loader.Load(ctx, req.VideoID)
		if err != nil {
			return nil, err
		}
		state.Transcript = text
		state.FromCache = fromCache
	}

	if err := selected.run(ctx, state); err != nil {
		return nil, fmt.Errorf("stage %s: %w", selected.name, err)
	}

	o.logger.Info("pipeline stage complete",
		"op", string(req.Op),
		"video_id", req.VideoID,
		"transcript_cached", state.FromCache,
		"duration", time.Since(start),
	)
	return state, nil
}

func (o *Orchestrator) runSummarizer(ctx context.Context, state *State) error {
	out, err := o.backend.Complete(ctx, summaryInstruction(clip(state.Transcript, o.maxPromptChars)))
	if err != nil {
		return err
	}
	state.Summary = out
	return nil
}

func (o *Orchestrator) runTopicExtractor(ctx context.Context, state *State) error {
	out, err := o.backend.Complete(ctx, topicsInstruction(clip(state.Transcript, o.maxPromptChars)))
	if err != nil {
		return err
	}
	state.Topics = out
	return nil
}

func (o *Orchestrator) runResponder(ctx context.Context, state *State) error {
	out, err := o.backend.Complete(ctx, answerInstruction(clip(state.Transcript, o.maxPromptChars), state.Question))
	if err != nil {
		return err
	}
	state.Answer = out
	return nil
}

func (o *Orchestrator) runQuestionPlanner(ctx context.Context, state *State) error {
	raw, err := o.backend.CompleteJSON(ctx, quizInstruction(clip(state.Transcript, o.maxPromptChars), state.Difficulty, state.QuestionCount))
	if err != nil {
		return err
	}
	questions, err := quiz.ParseGenerated(raw, state.QuestionCount)
	if err != nil {
		return err
	}
	state.Questions = questions
	return nil
}

// LoadTranscript resolves a transcript without running any derivation
// stage.
func (o *Orchestrator) LoadTranscript(ctx context.Context, videoID string) (string, bool, error) {
	if !youtube.IsVideoID(videoID) {
		return "", false, fmt.Errorf("%w: malformed video id %q", ErrInvalidRequest, videoID)
	}
	return o.loader.Load(ctx, videoID)
}

func (o *Orchestrator) Summarize(ctx context.Context, videoID string) (string, error) {
	state, err := o.Run(ctx, Request{Op: OpSummarize, VideoID: videoID})
	if err != nil {
		return "", err
	}
	return state.Summary, nil
}

func (o *Orchestrator) ExtractTopics(ctx context.Context, videoID string) (string, error) {
	state, err := o.Run(ctx, Request{Op: OpTopics, VideoID: videoID})
	if err != nil {
		return "", err
	}
	return state.Topics, nil
}

func (o *Orchestrator) AnswerQuestion(ctx context.Context, videoID, question string) (string, error) {
	state, err := o.Run(ctx, Request{Op: OpAnswer, VideoID: videoID, Question: question})
	if err != nil {
		return "", err
	}
	return state.Answer, nil
}

// GenerateQuestions satisfies quiz.QuestionSource.
func (o *Orchestrator) GenerateQuestions(ctx context.Context, videoID string, difficulty quiz.Difficulty, count int) ([]quiz.Question, error) {
	state, err := o.Run(ctx, Request{Op: OpQuiz, VideoID: videoID, Difficulty: difficulty, QuestionCount: count})
	if err != nil {
		return nil, err
	}
	return state.Questions, nil
}
