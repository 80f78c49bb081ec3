package llm

import "context"

// Options bounds a single completion call. JSONMode requests (but does not
// guarantee) a single JSON object as output.
type Options struct {
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

type Client interface {
	Complete(ctx context.Context, system, user string, opts Options) (string, error)
	Name() string
}
