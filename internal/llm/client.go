package llm

import "context"

// Client is the text-generation backend the derivation stages delegate to.
// CompleteJSON is the structured variant: the backend is constrained to
// emit a single JSON object, which callers still validate before use.
type Client interface {
	Complete(ctx context.Context, instruction string) (string, error)
	CompleteJSON(ctx context.Context, instruction string) (string, error)
}
