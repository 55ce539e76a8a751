package domain

import "context"

// ChatCompleter sends one chat-completion request and returns the text of the
// first choice with surrounding whitespace trimmed
type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// Tool is a single callable capability an agent can execute
type Tool interface {
	Name() string
	Description() string
	Execute(ctx context.Context, input string) (string, error)
}
