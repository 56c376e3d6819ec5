package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"instrument-rental-backend/internal/logger"
)

// OllamaModel talks to a locally hosted Ollama server.
type OllamaModel struct {
	llm     *ollama.LLM
	timeout time.Duration
}

func NewOllamaModel(serverURL, model string, timeout time.Duration) (*OllamaModel, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing ollama client: %w", err)
	}
	return &OllamaModel{llm: llm, timeout: timeout}, nil
}

func (m *OllamaModel) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	logger.ExternalServiceCall("ollama", "generate")
	out, err := llms.GenerateFromSinglePrompt(ctx, m.llm, prompt,
		llms.WithTemperature(0.7),
	)
	logger.ExternalServiceResult("ollama", "generate", err)
	if err != nil {
		return "", fmt.Errorf("generating completion: %w", err)
	}
	return out, nil
}
