package assistant

import "context"

// Model generates a completion for a fully rendered prompt.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Classifier assigns zero or more labels from the candidate set to a text.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) ([]string, error)
}
