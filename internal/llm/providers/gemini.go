// File path: internal/llm/providers/gemini.go
package providers

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/hadithlens/hadithlens/internal/common"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider serves completions through the Google GenAI SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	common.Logger().Info("llm: Gemini provider configured", "model", model)
	return &GeminiProvider{client: client, model: model}, nil
}

func (g *GeminiProvider) Chat(ctx context.Context, req Request) (string, error) {
	messages, err := NormalizeMessages(req.Messages)
	if err != nil {
		return "", err
	}
	system, turns := splitSystem(messages)
	if len(turns) == 0 {
		return "", ErrNoMessages
	}
	contents := make([]*genai.Content, 0, len(turns))
	for _, msg := range turns {
		var role genai.Role = genai.RoleUser
		if msg.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*req.Temperature))
	}
	common.Logger().Debug("llm: sending gemini request", "model", g.model, "messages", len(contents))
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}
