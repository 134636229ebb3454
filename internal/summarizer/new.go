package summarizer

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

// generateFunc matches genai's Models.GenerateContent.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

type implSummarizer struct {
	cfg    config.GeminiConfig
	logger logger.Logger

	connect  func(ctx context.Context) (generateFunc, error)
	once     sync.Once
	generate generateFunc
	connErr  error
}

// New creates a Summarizer backed by the Gemini API. The client is built on
// the first Summarize call and reused afterwards, so a missing API key
// surfaces as a summarization failure instead of a startup error.
func New(cfg config.GeminiConfig, log logger.Logger) Summarizer {
	return &implSummarizer{
		cfg:     cfg,
		logger:  log,
		connect: geminiConnector(cfg),
	}
}

func newWithGenerator(cfg config.GeminiConfig, generate generateFunc, log logger.Logger) *implSummarizer {
	return &implSummarizer{
		cfg:    cfg,
		logger: log,
		connect: func(context.Context) (generateFunc, error) {
			return generate, nil
		},
	}
}

func geminiConnector(cfg config.GeminiConfig) func(ctx context.Context) (generateFunc, error) {
	return func(ctx context.Context) (generateFunc, error) {
		cc := &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
		if cfg.BaseURL != "" {
			cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
		}

		client, err := genai.NewClient(ctx, cc)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		return client.Models.GenerateContent, nil
	}
}

// generator returns the cached client call, connecting once.
func (s *implSummarizer) generator(ctx context.Context) (generateFunc, error) {
	s.once.Do(func() {
		s.generate, s.connErr = s.connect(ctx)
	})
	return s.generate, s.connErr
}
