package llm

import "context"

// Options override the factory defaults per call.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int
	SystemPrompt        string
}

// Tool enables provider-side tools on Respond calls, e.g. {Type: "web_search"}.
type Tool struct {
	Type string
}

// Client is a provider-agnostic LLM client.
type Client interface {
	// Complete sends a plain chat-completion request and returns the text.
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
	// Respond uses the richer response API with optional tools (web search).
	// Providers without tool support ignore the tool list.
	Respond(ctx context.Context, input string, tools []Tool, opts Options) (string, error)
}
