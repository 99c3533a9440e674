// File path: internal/llm/llm.go
package llm

import (
	"context"
	"os"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/hadithlens/hadithlens/internal/common"
	"github.com/hadithlens/hadithlens/internal/llm/providers"
)

type Message = providers.Message

type Request = providers.Request

type Provider = providers.Provider

var ErrEmptyResponse = providers.ErrEmptyResponse

// Options tune the provider chosen by NewProvider.
type Options struct {
	RPS   float64
	Burst int
}

// NewProvider selects OpenAI when OPENAI_API_KEY is set, Gemini when
// GEMINI_API_KEY is set, and the local echo provider otherwise.
func NewProvider(ctx context.Context, opts Options) Provider {
	logger := common.Logger()
	var provider Provider
	if apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); apiKey != "" {
		clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
		if timeoutStr := strings.TrimSpace(os.Getenv("OPENAI_HTTP_TIMEOUT")); timeoutStr != "" {
			timeout, err := time.ParseDuration(timeoutStr)
			if err != nil {
				logger.Warn("llm: invalid OPENAI_HTTP_TIMEOUT, using default", "value", timeoutStr, "error", err)
			} else {
				clientOpts = append(clientOpts, option.WithRequestTimeout(timeout))
			}
		}
		if endpoint := strings.TrimSpace(os.Getenv("OPENAI_ENDPOINT")); endpoint != "" {
			logger.Info("llm: configuring OpenAI client with custom endpoint", "endpoint", endpoint)
			clientOpts = append(clientOpts, option.WithBaseURL(endpoint))
		}
		client := openai.NewClient(clientOpts...)
		provider = providers.NewOpenAIProvider(client, os.Getenv("OPENAI_CHAT_MODEL"))
	} else if apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); apiKey != "" {
		gemini, err := providers.NewGeminiProvider(ctx, apiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			logger.Error("llm: gemini provider unavailable; falling back to local provider", "error", err)
			provider = providers.NewLocalProvider()
		} else {
			provider = gemini
		}
	} else {
		logger.Warn("llm: no model credentials set; falling back to local provider")
		provider = providers.NewLocalProvider()
	}
	if opts.RPS > 0 {
		logger.Info("llm: outbound calls throttled", "rps", opts.RPS, "burst", opts.Burst)
	}
	return providers.NewThrottled(provider, opts.RPS, opts.Burst)
}

// Temperature returns a pointer for Request.Temperature.
func Temperature(v float64) *float64 {
	return &v
}
