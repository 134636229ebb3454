package summarizer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meeting-minutes/internal/aligner"
)

// Summarize sends the transcript to Gemini in a single attempt.
func (s *implSummarizer) Summarize(ctx context.Context, utterances []aligner.Utterance) (string, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	prompt := BuildUserPrompt(utterances)

	s.logger.Debug(ctx, "Calling %s with %d utterances (%d prompt bytes)", s.cfg.Model, len(utterances), len(prompt))

	generate, err := s.generator(ctx)
	if err != nil {
		return "", err
	}

	result, err := generate(ctx, s.cfg.Model, genai.Text(prompt), s.generationConfig())
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		if text.Len() > 0 {
			return text.String(), nil
		}
	}

	return "", fmt.Errorf("empty response from Gemini")
}

// BuildUserPrompt renders utterances one per line as "speaker: text" and
// places them into the instruction template.
func BuildUserPrompt(utterances []aligner.Utterance) string {
	lines := make([]string, len(utterances))
	for i, u := range utterances {
		lines[i] = u.String()
	}
	return fmt.Sprintf(userPromptTemplate, strings.Join(lines, "\n"))
}

func (s *implSummarizer) generationConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(s.cfg.Temperature),
		TopP:              genai.Ptr(s.cfg.TopP),
		TopK:              genai.Ptr(s.cfg.TopK),
		MaxOutputTokens:   s.cfg.MaxOutputTokens,
	}
}
