// Package llm is the boundary to the external inference service. Every
// provider and decorator implements Completer so they can be stacked.
package llm

import "context"

// Request is a single prompt-in, text-out inference call.
type Request struct {
	Task        string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// Completer returns the raw text the model produced for a prompt. It is safe
// for concurrent use and holds no per-request state.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a plain function to Completer.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
