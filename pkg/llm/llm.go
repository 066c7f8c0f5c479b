package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// Name identifies the provider/model pair for responses and logs.
	Name() string
}

// Score is the outcome of a resume review.
type Score struct {
	Score    int      `json:"score"` // 0..100
	Summary  string   `json:"summary"`
	Feedback []string `json:"feedback"`
	Model    string   `json:"model"`
}

// Assistant is the generative capability used by resume flows.
type Assistant interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Score(ctx context.Context, document, targetRole string) (Score, error)
}
